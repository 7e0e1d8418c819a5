package mockauth

import (
	"context"
	"errors"

	"github.com/artintellm/mockauth/internal"
)

// Register creates an unverified account and issues its first verification
// token, which reaches the notifier sink rather than being returned.
//
// Failures are typed: validation errors for malformed input, ErrEmailExists
// when the email is already registered. The returned view never includes the
// password hash.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*AccountView, error) {
	if e == nil || e.store == nil || e.passwordHash == nil {
		return nil, ErrEngineNotReady
	}

	if err := validateEmail(req.Email); err != nil {
		e.metricInc(MetricRegisterInvalid)
		return nil, err
	}
	if err := validateNewPassword(req.Password, req.ConfirmPassword); err != nil {
		e.metricInc(MetricRegisterInvalid)
		return nil, err
	}

	// Early conflict check. The store rejects duplicates as well, so a
	// concurrent register racing past this point still cannot create two
	// accounts for one email.
	if _, err := e.store.GetAccountByEmail(ctx, req.Email); err == nil {
		e.metricInc(MetricRegisterDuplicate)
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrStoreNotFound) {
		return nil, err
	}

	hash, err := e.passwordHash.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account, err := e.store.CreateAccount(ctx, Account{
		Email:                req.Email,
		PasswordHash:         hash,
		FullName:             req.FullName,
		Role:                 RoleUser,
		IsVerified:           false,
		RequiresProfileSetup: true,
	})
	if err != nil {
		if errors.Is(err, ErrStoreDuplicateEmail) {
			e.metricInc(MetricRegisterDuplicate)
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := internal.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	if err := e.store.SaveVerificationToken(ctx, token, account.ID); err != nil {
		return nil, err
	}
	e.emitNotification(ctx, NotifyVerifyEmail, account.Email, token)

	e.metricInc(MetricRegisterSuccess)
	return account.View(), nil
}
