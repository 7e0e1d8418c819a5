package mockauth

import "errors"

var (
	// ErrUnauthorized is returned when a session token is missing, malformed,
	// expired, or references an account that no longer exists.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrInvalidCredentials is returned on login when either the email is
	// unknown or the password does not match. The two cases share one message
	// so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrAccountUnverified is returned on login when the credentials are
	// correct but the email has not been verified yet.
	ErrAccountUnverified = errors.New("email not verified, please verify your email before logging in")
	// ErrEmailExists is returned by Register when the email is already taken.
	ErrEmailExists = errors.New("email already registered")
	// ErrEmailInvalid is returned when an email address fails to parse.
	ErrEmailInvalid = errors.New("invalid email address")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordTooShort is returned when a password is under 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	// ErrVerificationTokenInvalid is returned by VerifyEmail for tokens that
	// were never issued or were already redeemed.
	ErrVerificationTokenInvalid = errors.New("invalid verification token")
	// ErrResetTokenInvalid is returned by ResetPassword for tokens that were
	// never issued or were already redeemed.
	ErrResetTokenInvalid = errors.New("invalid or expired token")
	// ErrAccountNotFound is returned when an account referenced by a valid
	// token has disappeared from the store.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEngineNotReady is returned by Engine methods called on an engine
	// that was not assembled through Builder.Build.
	ErrEngineNotReady = errors.New("engine not initialized")

	// ErrStoreDuplicateEmail must be returned by AccountStore.CreateAccount
	// when the email is already indexed. The engine maps it to ErrEmailExists.
	ErrStoreDuplicateEmail = errors.New("store: duplicate email")
	// ErrStoreNotFound must be returned by AccountStore lookups that miss.
	ErrStoreNotFound = errors.New("store: not found")
)

// IsValidation reports whether err belongs to the validation class:
// malformed or mismatched input, including unknown single-use tokens.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmailInvalid) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrVerificationTokenInvalid) ||
		errors.Is(err, ErrResetTokenInvalid)
}

// IsConflict reports whether err is the duplicate-email conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailExists)
}

// IsUnauthorized reports whether err belongs to the unauthorized class:
// bad credentials, unverified email, or an invalid/expired session token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountUnverified)
}
