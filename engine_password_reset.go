package mockauth

import (
	"context"
	"errors"

	"github.com/artintellm/mockauth/internal"
)

const (
	// MsgResetMaybeSent is returned whether or not the email exists.
	MsgResetMaybeSent = "Password reset link sent if email exists"
	// MsgPasswordUpdated is returned after a successful reset.
	MsgPasswordUpdated = "Password updated successfully"
)

// ForgotPassword issues a password-reset token keyed to the email. The reply
// is the same generic success message whether or not the email is
// registered; for unknown emails no token is created at all.
func (e *Engine) ForgotPassword(ctx context.Context, email string) (string, error) {
	if e == nil || e.store == nil {
		return "", ErrEngineNotReady
	}

	if _, err := e.store.GetAccountByEmail(ctx, email); err != nil {
		return MsgResetMaybeSent, nil
	}

	token, err := internal.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := e.store.SaveResetToken(ctx, token, email); err != nil {
		return "", err
	}
	e.emitNotification(ctx, NotifyResetPassword, email, token)

	e.metricInc(MetricPasswordResetRequest)
	return MsgResetMaybeSent, nil
}

// ResetPassword redeems a reset token and replaces the password of the
// account matching the token's email. The token is deleted on redemption.
// The new password goes through the same policy as registration.
func (e *Engine) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) (string, error) {
	if e == nil || e.store == nil || e.passwordHash == nil {
		return "", ErrEngineNotReady
	}

	if err := validateNewPassword(newPassword, confirmPassword); err != nil {
		e.metricInc(MetricPasswordResetFailure)
		return "", err
	}
	if token == "" {
		e.metricInc(MetricPasswordResetFailure)
		return "", ErrResetTokenInvalid
	}

	email, err := e.store.ConsumeResetToken(ctx, token)
	if err != nil {
		e.metricInc(MetricPasswordResetFailure)
		return "", ErrResetTokenInvalid
	}

	hash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		return "", err
	}
	if err := e.store.UpdatePasswordHash(ctx, email, hash); err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			// Account vanished between token issue and redemption.
			e.metricInc(MetricPasswordResetFailure)
			return "", ErrResetTokenInvalid
		}
		return "", err
	}

	e.metricInc(MetricPasswordResetSuccess)
	return MsgPasswordUpdated, nil
}
