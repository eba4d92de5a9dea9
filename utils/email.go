package utils

import (
	"net/mail"
	"strings"

	"golang.org/x/net/publicsuffix"
)

func DomainOfEmail(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return DomainOf(email.Address)
}

// DomainOf returns the lowercased part after the last @, or "" if there is none.
func DomainOf(address string) string {
	i := strings.LastIndexByte(address, '@')
	if i < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(address[i+1:], ">"))
}

// OrganizationalDomain reduces a host name to the registrable domain,
// "mail.example.co.uk" becomes "example.co.uk". Names without a public
// suffix are returned as given.
func OrganizationalDomain(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	org, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return org
}
