package mailparse

import (
	"errors"
	"fmt"

	"github.com/emersion/go-msgauth/authres"
)

// AuthResults is one Authentication-Results field.
type AuthResults struct {
	Identifier string
	Results    []authres.Result
}

// AuthenticationResults parses every Authentication-Results field, in order.
// Fields that do not parse are skipped and reported in the joined error.
func (p *Part) AuthenticationResults() ([]AuthResults, error) {
	var (
		out  []AuthResults
		errs error
	)
	for i, v := range p.Headers.Values(HeaderAuthenticationResults) {
		id, results, err := authres.Parse(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("authentication-results #%d: %w", i+1, err))
			continue
		}
		out = append(out, AuthResults{Identifier: id, Results: results})
	}
	return out, errs
}
