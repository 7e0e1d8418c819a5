package mockauth

import (
	"context"
	"errors"
	"testing"
)

func TestVerifyEmailUnknownToken(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	_, err := engine.VerifyEmail(context.Background(), "no-such-token")
	if !errors.Is(err, ErrVerificationTokenInvalid) {
		t.Fatalf("expected ErrVerificationTokenInvalid, got %v", err)
	}
	if !IsValidation(err) {
		t.Fatal("unknown token must classify as validation")
	}
}

func TestVerifyEmailEmptyToken(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	if _, err := engine.VerifyEmail(context.Background(), ""); !errors.Is(err, ErrVerificationTokenInvalid) {
		t.Fatalf("expected ErrVerificationTokenInvalid, got %v", err)
	}
}

func TestVerifyEmailTokenSingleUse(t *testing.T) {
	ts := newTestAccountStore()
	sink := NewChannelSink(4)
	engine := newTestEngine(t, ts, sink)
	ctx := context.Background()

	registerTestAccount(t, engine, "a@x.com", "pw123456")
	n := waitNotification(t, sink)

	view, err := engine.VerifyEmail(ctx, n.Token)
	if err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}
	if !view.IsVerified {
		t.Fatal("expected IsVerified=true")
	}

	if _, err := engine.VerifyEmail(ctx, n.Token); !errors.Is(err, ErrVerificationTokenInvalid) {
		t.Fatalf("expected replayed token to fail, got %v", err)
	}
}

func TestResendVerificationUnknownEmail(t *testing.T) {
	ts := newTestAccountStore()
	engine := newTestEngine(t, ts, nil)

	msg, err := engine.ResendVerification(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("ResendVerification must not fail for unknown emails: %v", err)
	}
	if msg != MsgVerificationMaybeSent {
		t.Fatalf("expected generic message, got %q", msg)
	}
	if got := ts.verificationTokenCount(); got != 0 {
		t.Fatalf("no token may be created for unknown emails, got %d", got)
	}
}

func TestResendVerificationIssuesSecondToken(t *testing.T) {
	ts := newTestAccountStore()
	sink := NewChannelSink(4)
	engine := newTestEngine(t, ts, sink)
	ctx := context.Background()

	registerTestAccount(t, engine, "a@x.com", "pw123456")
	first := waitNotification(t, sink)

	msg, err := engine.ResendVerification(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("ResendVerification failed: %v", err)
	}
	if msg != MsgVerificationSent {
		t.Fatalf("expected %q, got %q", MsgVerificationSent, msg)
	}
	second := waitNotification(t, sink)

	if first.Token == second.Token {
		t.Fatal("resend must issue a fresh token")
	}
	if got := ts.verificationTokenCount(); got != 2 {
		t.Fatalf("expected both tokens outstanding, got %d", got)
	}

	// Older tokens stay valid until redeemed; each redeems exactly once.
	if _, err := engine.VerifyEmail(ctx, first.Token); err != nil {
		t.Fatalf("first token must still verify: %v", err)
	}
	if _, err := engine.VerifyEmail(ctx, second.Token); err != nil {
		t.Fatalf("second token must still verify: %v", err)
	}
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	ts := newTestAccountStore()
	sink := NewChannelSink(4)
	engine := newTestEngine(t, ts, sink)
	ctx := context.Background()

	registerTestAccount(t, engine, "a@x.com", "pw123456")
	n := waitNotification(t, sink)
	if _, err := engine.VerifyEmail(ctx, n.Token); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}

	msg, err := engine.ResendVerification(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("ResendVerification failed: %v", err)
	}
	if msg != MsgAlreadyVerified {
		t.Fatalf("expected %q, got %q", MsgAlreadyVerified, msg)
	}
	if got := ts.verificationTokenCount(); got != 0 {
		t.Fatalf("no new token may be issued for verified accounts, got %d", got)
	}
}

func TestVerifiedStateIsMonotonic(t *testing.T) {
	ts := newTestAccountStore()
	sink := NewChannelSink(4)
	engine := newTestEngine(t, ts, sink)
	ctx := context.Background()

	registerTestAccount(t, engine, "a@x.com", "pw123456")
	n := waitNotification(t, sink)
	if _, err := engine.VerifyEmail(ctx, n.Token); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}

	// Nothing after verification may flip the flag back.
	if _, err := engine.ResendVerification(ctx, "a@x.com"); err != nil {
		t.Fatalf("ResendVerification failed: %v", err)
	}
	account, err := ts.GetAccountByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if !account.IsVerified {
		t.Fatal("IsVerified must never revert to false")
	}
}
