package middleware

import (
	"fmt"
	"strings"

	"github.com/emersion/go-msgauth/authres"
	"github.com/emersion/go-msgauth/dkim"
	"github.com/emersion/go-msgauth/dmarc"
	"github.com/modfin/mailparse"
	"github.com/modfin/mailparse/envelope"
	"github.com/modfin/mailparse/utils"
)

type authSettings struct {
	lookupTXT func(domain string) ([]string, error)
}

type AuthOption func(*authSettings)

// WithLookupTXT replaces DNS for DKIM key and DMARC policy lookups.
func WithLookupTXT(fn func(domain string) ([]string, error)) AuthOption {
	return func(s *authSettings) {
		s.lookupTXT = fn
	}
}

// AddAuthenticationResult verifies the DKIM signatures of each envelope,
// evaluates DMARC alignment of the From domain against them and records
// the outcome in an Authentication-Results field. SPF is not evaluated
// since the connecting address of a stored message is unknown.
func AddAuthenticationResult(hostname string, opts ...AuthOption) Middleware {
	settings := &authSettings{}
	for _, o := range opts {
		if o != nil {
			o(settings)
		}
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			dkims := dkimCheck(e, settings)
			dmarcRes := dmarcCheck(e, settings, dkims)

			var res []authres.Result
			for _, d := range dkims {
				res = append(res, d)
			}
			res = append(res, dmarcRes)

			val := authres.Format(hostname, res)
			_ = e.AddHeader(mailparse.HeaderAuthenticationResults, val)

			return next(e)
		}
	}
}

func dkimCheck(e *envelope.Envelope, settings *authSettings) []*authres.DKIMResult {
	verifications, err := dkim.VerifyWithOptions(e.Data.Reader(), &dkim.VerifyOptions{
		LookupTXT: settings.lookupTXT,
	})
	if err != nil {
		return []*authres.DKIMResult{{Value: authres.ResultPermError, Reason: err.Error()}}
	}
	if len(verifications) == 0 {
		return []*authres.DKIMResult{{Value: authres.ResultNone}}
	}

	var res []*authres.DKIMResult
	for _, v := range verifications {
		var val authres.ResultValue = authres.ResultPass
		reason := ""
		if v.Err != nil {
			reason = v.Err.Error()
			switch {
			case dkim.IsTempFail(v.Err):
				val = authres.ResultTempError
			case dkim.IsPermFail(v.Err):
				val = authres.ResultPermError
			default:
				val = authres.ResultFail
			}
		}

		res = append(res, &authres.DKIMResult{
			Value:      val,
			Reason:     reason,
			Domain:     v.Domain,
			Identifier: v.Identifier,
		})
	}
	return res
}

func dmarcCheck(e *envelope.Envelope, settings *authSettings, dkims []*authres.DKIMResult) *authres.DMARCResult {
	fromDomain := senderDomain(e)

	var errResult = func(reason string) *authres.DMARCResult {
		return &authres.DMARCResult{
			Value:  authres.ResultNone,
			Reason: reason,
			From:   fromDomain,
		}
	}
	if fromDomain == "" {
		return errResult("No From header")
	}

	var (
		r   *dmarc.Record
		err error
	)
	if settings.lookupTXT != nil {
		r, err = dmarc.LookupWithOptions(fromDomain, &dmarc.LookupOptions{LookupTXT: settings.lookupTXT})
	} else {
		r, err = dmarc.Lookup(fromDomain)
	}
	if err != nil {
		if dmarc.IsTempFail(err) {
			return &authres.DMARCResult{Value: authres.ResultTempError, Reason: "DMARC lookup failed", From: fromDomain}
		}
		return errResult("No DMARC policy")
	}

	fromOrgDomain := utils.OrganizationalDomain(fromDomain)
	aligned := false
	for _, d := range dkims {
		if d.Value != authres.ResultPass {
			continue
		}
		domain := strings.ToLower(d.Domain)
		if r.DKIMAlignment == dmarc.AlignmentStrict {
			aligned = domain == fromDomain
		} else {
			aligned = utils.OrganizationalDomain(domain) == fromOrgDomain
		}
		if aligned {
			break
		}
	}

	if aligned {
		return &authres.DMARCResult{Value: authres.ResultPass, From: fromDomain}
	}
	return &authres.DMARCResult{
		Value:  authres.ResultFail,
		Reason: fmt.Sprintf("DKIM failed or not aligned, policy %s", r.Policy),
		From:   fromDomain,
	}
}
