package validators

import (
	"net"
	"strings"
	"unicode"
)

const (
	NameMinLen    = 20
	NameMaxLen    = 60
	AddressMaxLen = 400

	passwordMinLen = 8
	passwordMaxLen = 16
)

// IsValidName enforces the 20-60 character full-name rule.
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLen && n <= NameMaxLen
}

func IsValidAddress(address string) bool {
	return len(address) <= AddressMaxLen
}

// IsValidPassword requires 8-16 characters with at least one uppercase letter
// and one special character.
func IsValidPassword(password string) bool {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return false
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasSpecial
}

// IsEmailDomainValid checks that the address domain resolves at all, catching
// typo'd domains that pass format validation.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
