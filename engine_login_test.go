package mockauth

import (
	"context"
	"errors"
	"testing"
)

func TestLoginUnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	registerTestAccount(t, engine, "a@x.com", "pw123456")

	ctx := context.Background()

	_, unknownErr := engine.Login(ctx, "nobody@x.com", "pw123456")
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}

	_, wrongErr := engine.Login(ctx, "a@x.com", "wrong-password")
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}

	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("messages must not reveal which part failed: %q vs %q",
			unknownErr.Error(), wrongErr.Error())
	}
}

func TestLoginUnverifiedRejected(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	registerTestAccount(t, engine, "a@x.com", "pw123456")

	// Correct password, but the email was never verified.
	_, err := engine.Login(context.Background(), "a@x.com", "pw123456")
	if !errors.Is(err, ErrAccountUnverified) {
		t.Fatalf("expected ErrAccountUnverified, got %v", err)
	}
	if !IsUnauthorized(err) {
		t.Fatal("unverified login must classify as unauthorized")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("unverified must be distinct from invalid credentials")
	}
}

func TestLoginFullScenario(t *testing.T) {
	ts := newTestAccountStore()
	sink := NewChannelSink(4)
	engine := newTestEngine(t, ts, sink)
	ctx := context.Background()

	view, err := engine.Register(ctx, RegisterRequest{
		Email:           "a@x.com",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
		FullName:        "Ann",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if view.IsVerified || !view.RequiresProfileSetup {
		t.Fatalf("unexpected fresh account state: %+v", view)
	}

	if _, err := engine.Login(ctx, "a@x.com", "pw123456"); !errors.Is(err, ErrAccountUnverified) {
		t.Fatalf("login before verification: expected ErrAccountUnverified, got %v", err)
	}

	n := waitNotification(t, sink)
	verified, err := engine.VerifyEmail(ctx, n.Token)
	if err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}
	if !verified.IsVerified {
		t.Fatal("expected IsVerified=true after verification")
	}

	result, err := engine.Login(ctx, "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("login after verification failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
	if result.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", result.TokenType)
	}
	if result.UserID != view.UserID {
		t.Fatalf("expected user id %q, got %q", view.UserID, result.UserID)
	}

	// The issued token must resolve back to the same account.
	me, err := engine.CurrentAccount(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("CurrentAccount failed: %v", err)
	}
	if me.UserID != view.UserID {
		t.Fatalf("token resolved to wrong account: %q", me.UserID)
	}
}

func TestLoginUpgradesWeakHash(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)
	ctx := context.Background()

	view := registerTestAccount(t, engine, "a@x.com", "pw123456")
	if _, err := ts.MarkVerified(ctx, view.UserID); err != nil {
		t.Fatalf("MarkVerified failed: %v", err)
	}
	before, _ := ts.GetAccountByID(ctx, view.UserID)

	// Build a second engine with raised cost parameters over the same store.
	strongCfg := testHasherConfig()
	strongCfg.Time = 2
	strong, err := New().
		WithConfig(testConfig()).
		WithStore(ts).
		WithHasherConfig(strongCfg).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer strong.Close()

	if _, err := strong.Login(ctx, "a@x.com", "pw123456"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	after, _ := ts.GetAccountByID(ctx, view.UserID)
	if after.PasswordHash == before.PasswordHash {
		t.Fatal("expected hash to be upgraded on login")
	}
	if ok, err := strong.passwordHash.Verify("pw123456", after.PasswordHash); err != nil || !ok {
		t.Fatalf("upgraded hash must still verify, ok=%v err=%v", ok, err)
	}
}
