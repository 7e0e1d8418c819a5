// Package main runs the mock authentication API server.
//
// Configuration comes from the environment; SECRET_KEY is required and the
// process refuses to start without it:
//
//	SECRET_KEY=dev-secret ACCESS_TOKEN_EXPIRE_MINUTES=30 \
//	FRONTEND_URL=http://localhost:3000 go run ./cmd/mockauth-server
//
// Two verified demo accounts are seeded at startup:
//
//	admin@artintellm.com / admin1234  (role admin)
//	user@example.com     / user1234   (role user)
//
// Verification and reset tokens are printed to stdout as JSON lines in
// place of real email delivery.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/artintellm/mockauth"
	"github.com/artintellm/mockauth/httpapi"
	"github.com/artintellm/mockauth/password"
	"github.com/artintellm/mockauth/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := mockauth.ConfigFromEnv()
	if err != nil {
		logger.Error("configuration error", "err", err)
		os.Exit(1)
	}

	mem := store.NewMemory()
	if err := seedDemoAccounts(mem); err != nil {
		logger.Error("seeding demo accounts failed", "err", err)
		os.Exit(1)
	}

	engine, err := mockauth.New().
		WithConfig(cfg).
		WithStore(mem).
		WithNotifierSink(mockauth.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		logger.Error("engine build failed", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	server := httpapi.NewServer(engine, cfg.HTTP, logger)

	logger.Info("listening", "addr", cfg.HTTP.ListenAddr, "cors_origin", cfg.HTTP.CORSOrigin)
	if err := http.ListenAndServe(cfg.HTTP.ListenAddr, server.Handler()); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// seedDemoAccounts mirrors the sample data the frontend test-suites expect:
// one admin and one regular user, both verified and profile-complete.
func seedDemoAccounts(mem *store.Memory) error {
	hasher, err := password.NewArgon2(password.DefaultConfig())
	if err != nil {
		return err
	}

	seeds := []struct {
		email    string
		password string
		fullName string
		role     mockauth.AccountRole
	}{
		{"admin@artintellm.com", "admin1234", "Admin User", mockauth.RoleAdmin},
		{"user@example.com", "user1234", "Demo User", mockauth.RoleUser},
	}

	ctx := context.Background()
	for _, seed := range seeds {
		hash, err := hasher.Hash(seed.password)
		if err != nil {
			return err
		}
		_, err = mem.CreateAccount(ctx, mockauth.Account{
			Email:                seed.email,
			PasswordHash:         hash,
			FullName:             seed.fullName,
			Role:                 seed.role,
			IsVerified:           true,
			RequiresProfileSetup: false,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
