package middleware

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/modfin/mailparse/envelope"
	"github.com/modfin/mailparse/utils"
)

func domainSet(domain []string) map[string]bool {
	var set = map[string]bool{}
	for _, d := range domain {
		set[strings.ToLower(d)] = true
	}
	return set
}

func senderDomain(e *envelope.Envelope) string {
	m, err := e.Mail()
	if err != nil {
		return ""
	}
	from, err := m.From()
	if err != nil {
		return ""
	}
	return utils.DomainOfEmail(from)
}

func recipients(e *envelope.Envelope) []*mail.Address {
	m, err := e.Mail()
	if err != nil {
		return nil
	}
	var res []*mail.Address
	if to, err := m.To(); err == nil {
		res = append(res, to...)
	}
	if cc, err := m.Cc(); err == nil {
		res = append(res, cc...)
	}
	return res
}

// SenderDomainsWhitelist Check if the domain of the From header is in the whitelist
// example usage: middleware.Chain(h, middleware.SenderDomainsWhitelist("example.com", "other-domain.com"))
// if domain is not in the whitelist, the chain stops with ErrFiltered
// if the whitelist contains no domains, all domains are valid
func SenderDomainsWhitelist(domain ...string) Middleware {
	set := domainSet(domain)

	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			if len(set) == 0 {
				return next(e)
			}
			domain := senderDomain(e)
			if !set[domain] {
				return fmt.Errorf("%w: sender domain %q not allowed", ErrFiltered, domain)
			}

			return next(e)
		}
	}
}

// FilterSenderDomains is SenderDomainsWhitelist compared on organizational
// domains, so whitelisting "example.co.uk" lets "mail.example.co.uk" through.
func FilterSenderDomains(domain ...string) Middleware {
	var set = map[string]bool{}
	for _, d := range domain {
		set[utils.OrganizationalDomain(strings.ToLower(d))] = true
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			if len(set) == 0 {
				return next(e)
			}
			domain := utils.OrganizationalDomain(senderDomain(e))
			if !set[domain] {
				return fmt.Errorf("%w: sender organization %q not allowed", ErrFiltered, domain)
			}
			return next(e)
		}
	}
}

// RecipientDomainsWhitelist Check if any domain in the To or Cc headers is in the whitelist
// if no domain is in the whitelist the chain stops with ErrFiltered
// if no domains was provided to RecipientDomainsWhitelist, all domains are allowed
func RecipientDomainsWhitelist(domain ...string) Middleware {
	set := domainSet(domain)
	return func(next HandlerFunc) HandlerFunc {
		return func(e *envelope.Envelope) error {
			if len(set) == 0 {
				return next(e)
			}
			for _, r := range recipients(e) {
				if set[utils.DomainOfEmail(r)] {
					return next(e)
				}
			}
			return fmt.Errorf("%w: recipient domain not allowed", ErrFiltered)
		}
	}
}
