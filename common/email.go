package common

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email address")

// EmailDomain returns the lower cased domain part of an email address.
func EmailDomain(address string) (string, error) {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return "", ErrInvalidEmail
	}

	at := strings.LastIndexByte(parsed.Address, '@')
	if at < 0 || at == len(parsed.Address)-1 {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(parsed.Address[at+1:]), nil
}

// SameEmailDomain reports whether both addresses belong to the same domain.
func SameEmailDomain(a, b string) bool {
	da, err := EmailDomain(a)
	if err != nil {
		return false
	}

	db, err := EmailDomain(b)
	if err != nil {
		return false
	}

	return da == db
}
