package mockauth

import (
	"context"
	"errors"
	"testing"
)

// loginVerified registers, force-verifies, and logs in one account,
// returning its id and access token.
func loginVerified(t *testing.T, engine *Engine, ts *testAccountStore, email, pass string) (string, string) {
	t.Helper()
	ctx := context.Background()

	view := registerTestAccount(t, engine, email, pass)
	if _, err := ts.MarkVerified(ctx, view.UserID); err != nil {
		t.Fatalf("MarkVerified failed: %v", err)
	}
	result, err := engine.Login(ctx, email, pass)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return view.UserID, result.AccessToken
}

func strptr(s string) *string { return &s }

func TestCompleteProfilePartialMerge(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)
	ctx := context.Background()

	id, token := loginVerified(t, engine, ts, "a@x.com", "pw123456")

	view, err := engine.CompleteProfile(ctx, token, ProfileUpdate{Bio: strptr("x")})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}

	if view.FullName != "Test User" {
		t.Fatalf("FullName must be untouched, got %q", view.FullName)
	}
	if view.Organization != "" {
		t.Fatalf("Organization must be untouched, got %q", view.Organization)
	}
	if view.RequiresProfileSetup {
		t.Fatal("RequiresProfileSetup must be cleared")
	}

	account, err := ts.GetAccountByID(ctx, id)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if account.Bio != "x" {
		t.Fatalf("expected bio %q, got %q", "x", account.Bio)
	}
}

func TestCompleteProfileEmptyUpdateStillClearsFlag(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	_, token := loginVerified(t, engine, ts, "a@x.com", "pw123456")

	view, err := engine.CompleteProfile(context.Background(), token, ProfileUpdate{})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if view.RequiresProfileSetup {
		t.Fatal("RequiresProfileSetup must be cleared even for an empty update")
	}
}

func TestCompleteProfileAllFields(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)
	ctx := context.Background()

	id, token := loginVerified(t, engine, ts, "a@x.com", "pw123456")

	view, err := engine.CompleteProfile(ctx, token, ProfileUpdate{
		FullName:     strptr("Ann Example"),
		Bio:          strptr("engineer"),
		Organization: strptr("ArtIntel"),
		Preferences:  map[string]any{"theme": "dark"},
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if view.FullName != "Ann Example" || view.Organization != "ArtIntel" {
		t.Fatalf("unexpected view: %+v", view)
	}

	account, _ := ts.GetAccountByID(ctx, id)
	if account.Bio != "engineer" || account.Preferences["theme"] != "dark" {
		t.Fatalf("unexpected merged account: %+v", account)
	}
}

func TestCompleteProfileInvalidToken(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	_, err := engine.CompleteProfile(context.Background(), "garbage", ProfileUpdate{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !IsUnauthorized(err) {
		t.Fatal("must classify as unauthorized")
	}
}

func TestCurrentAccountExpiredToken(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)
	ctx := context.Background()

	id, _ := loginVerified(t, engine, ts, "a@x.com", "pw123456")

	account, _ := ts.GetAccountByID(ctx, id)

	// A token issued already expired must never verify.
	expired, err := engine.jwtManager.CreateAccessWithTTL(account.ID, account.Email, 0)
	if err != nil {
		t.Fatalf("CreateAccessWithTTL failed: %v", err)
	}
	if _, err := engine.CurrentAccount(ctx, expired); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestCurrentAccountDanglingToken(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)
	ctx := context.Background()

	id, token := loginVerified(t, engine, ts, "a@x.com", "pw123456")

	// Valid signature, but the subject no longer exists.
	ts.deleteAccount(id)

	if _, err := engine.CurrentAccount(ctx, token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for dangling token, got %v", err)
	}
}

func TestCurrentAccountReturnsPublicView(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)
	ctx := context.Background()

	id, token := loginVerified(t, engine, ts, "a@x.com", "pw123456")

	view, err := engine.CurrentAccount(ctx, token)
	if err != nil {
		t.Fatalf("CurrentAccount failed: %v", err)
	}
	if view.UserID != id || view.Email != "a@x.com" {
		t.Fatalf("unexpected view: %+v", view)
	}
}
