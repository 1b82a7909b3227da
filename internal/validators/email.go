package validators

import (
	"net"
	"strings"
)

// EmailDomainCheck is swapped out in tests that must not touch DNS.
var EmailDomainCheck = IsEmailDomainValid

// IsEmail checks the address syntax only.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

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
