package mockauth

import (
	"context"

	"github.com/artintellm/mockauth/internal"
)

// Messages returned by the enumeration-safe request operations. The generic
// variants must not change per-account; that is the whole point.
const (
	// MsgVerificationMaybeSent is returned whether or not the email exists.
	MsgVerificationMaybeSent = "If your email exists, a verification link has been sent"
	// MsgAlreadyVerified is returned for accounts that need no verification.
	MsgAlreadyVerified = "Your email is already verified"
	// MsgVerificationSent is returned after a token was actually issued.
	MsgVerificationSent = "Verification email sent successfully"
)

// VerifyEmail redeems a verification token and marks the account verified.
// The token is deleted on redemption; presenting it again fails. The
// verified state is monotonic and never reverts.
func (e *Engine) VerifyEmail(ctx context.Context, token string) (*AccountView, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	if token == "" {
		e.metricInc(MetricEmailVerificationFailure)
		return nil, ErrVerificationTokenInvalid
	}

	accountID, err := e.store.ConsumeVerificationToken(ctx, token)
	if err != nil {
		e.metricInc(MetricEmailVerificationFailure)
		return nil, ErrVerificationTokenInvalid
	}

	account, err := e.store.MarkVerified(ctx, accountID)
	if err != nil {
		// The token pointed at an account that no longer exists.
		e.metricInc(MetricEmailVerificationFailure)
		return nil, ErrVerificationTokenInvalid
	}

	e.metricInc(MetricEmailVerificationSuccess)
	return account.View(), nil
}

// ResendVerification issues a fresh verification token for an unverified
// account. The reply is always a success message: unknown emails get the
// generic text so the operation cannot be used to probe registrations.
// Earlier tokens stay valid until redeemed.
func (e *Engine) ResendVerification(ctx context.Context, email string) (string, error) {
	if e == nil || e.store == nil {
		return "", ErrEngineNotReady
	}

	account, err := e.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return MsgVerificationMaybeSent, nil
	}
	if account.IsVerified {
		return MsgAlreadyVerified, nil
	}

	token, err := internal.NewOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := e.store.SaveVerificationToken(ctx, token, account.ID); err != nil {
		return "", err
	}
	e.emitNotification(ctx, NotifyVerifyEmail, account.Email, token)

	e.metricInc(MetricVerificationResent)
	return MsgVerificationSent, nil
}
