package mockauth

import "context"

// CompleteProfile merges the provided profile fields into the account the
// session token belongs to. Absent fields are left untouched, but
// RequiresProfileSetup is cleared even when no fields were provided at all.
func (e *Engine) CompleteProfile(ctx context.Context, sessionToken string, upd ProfileUpdate) (*AccountView, error) {
	account, err := e.accountForToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	updated, err := e.store.UpdateProfile(ctx, account.ID, upd)
	if err != nil {
		return nil, ErrUnauthorized
	}

	e.metricInc(MetricProfileCompleted)
	return updated.View(), nil
}

// CurrentAccount resolves a session token to the public view of its
// account. Invalid, expired, or dangling tokens fail with ErrUnauthorized.
func (e *Engine) CurrentAccount(ctx context.Context, sessionToken string) (*AccountView, error) {
	account, err := e.accountForToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	return account.View(), nil
}
