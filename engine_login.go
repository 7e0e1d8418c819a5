package mockauth

import (
	"context"
	"errors"
)

// dummyPasswordHash is verified against when the email is unknown so the
// response time does not reveal whether an account exists. It is a fake
// hash of all-zero salt and digest; no password matches it.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=2,p=2$AAAAAAAAAAAAAAAAAAAAAA==$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

// Login checks the credentials and, for verified accounts, issues a bearer
// access token with the configured TTL.
//
// Unknown email and wrong password return the same ErrInvalidCredentials so
// callers cannot enumerate accounts; an unverified account with correct
// credentials returns the distinct ErrAccountUnverified.
func (e *Engine) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	if e == nil || e.store == nil || e.passwordHash == nil || e.jwtManager == nil {
		return nil, ErrEngineNotReady
	}

	account, err := e.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			// Burn a verification anyway to keep timing flat.
			_, _ = e.passwordHash.Verify(pass, dummyPasswordHash)
			e.metricInc(MetricLoginFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := e.passwordHash.Verify(pass, account.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	if !account.IsVerified {
		e.metricInc(MetricLoginUnverified)
		return nil, ErrAccountUnverified
	}

	// Opportunistic hash upgrade when cost parameters have been raised.
	if upgrade, upErr := e.passwordHash.NeedsUpgrade(account.PasswordHash); upErr == nil && upgrade {
		if newHash, hashErr := e.passwordHash.Hash(pass); hashErr == nil {
			_ = e.store.UpdatePasswordHash(ctx, account.Email, newHash)
		}
	}

	tokenStr, err := e.jwtManager.CreateAccess(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	return &LoginResult{
		AccessToken: tokenStr,
		TokenType:   "bearer",
		UserID:      account.ID,
	}, nil
}
