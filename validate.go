package mockauth

import (
	"net/mail"
	"unicode/utf8"
)

const minPasswordLength = 8

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	return nil
}

// validateNewPassword enforces the account password policy: at least 8
// characters (runes, not bytes) and a matching confirmation.
func validateNewPassword(password, confirm string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
