package utils

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var ErrNoDate = errors.New("no date")

// layouts seen in mail that neither net/mail nor dateparse accept.
var layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700 MST",
	"Mon, 2 Jan 06 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	time.RFC850,
	time.ANSIC,
}

// ParseDate reads a Date header value. RFC 5322 syntax is tried first, then
// the free-form formats mail clients produce.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrNoDate
	}
	if t, err := mail.ParseDate(s); err == nil {
		return t, nil
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, nil
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q cannot be parsed", s)
}
