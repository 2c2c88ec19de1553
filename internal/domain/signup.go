package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)

// NormalizeEmail trims and lower-cases an address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	return email, nil
}

// RequireInstitutionalEmail normalises email and checks that its host is one
// of allowed or a subdomain of one. An entry like ".edu" matches any host
// ending in ".edu".
func RequireInstitutionalEmail(email string, allowed []string) (string, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return "", err
	}

	host := email[strings.LastIndex(email, "@")+1:]
	for _, d := range allowed {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), ".")
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return email, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNonInstitutionalMail, host)
}

// NormalizeInviteCode upper-cases a code and checks its shape.
func NormalizeInviteCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !inviteCodePattern.MatchString(code) {
		return "", ErrInvalidInviteCode
	}
	return code, nil
}
