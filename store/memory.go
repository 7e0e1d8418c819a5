// Package store provides the in-memory [mockauth.AccountStore] backing the
// mock API. All state lives for the process lifetime; a real deployment
// would swap in a database-backed implementation of the same interface.
package store

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artintellm/mockauth"
)

// Memory is a map-backed account store. A single RWMutex serializes all
// mutations, which satisfies the engine's concurrency contract; contention
// is low and no I/O happens inside the critical sections.
type Memory struct {
	mu                 sync.RWMutex
	byID               map[string]mockauth.Account
	idByEmail          map[string]string
	verificationTokens map[string]string // token -> account id
	resetTokens        map[string]string // token -> email
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		byID:               make(map[string]mockauth.Account),
		idByEmail:          make(map[string]string),
		verificationTokens: make(map[string]string),
		resetTokens:        make(map[string]string),
	}
}

var _ mockauth.AccountStore = (*Memory)(nil)

// CreateAccount assigns a uuid and creation time, indexes the email, and
// persists the account. Duplicate emails are rejected with
// [mockauth.ErrStoreDuplicateEmail]; email comparison is case-sensitive.
func (m *Memory) CreateAccount(_ context.Context, a mockauth.Account) (mockauth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.idByEmail[a.Email]; exists {
		return mockauth.Account{}, mockauth.ErrStoreDuplicateEmail
	}

	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	a.Preferences = maps.Clone(a.Preferences)

	m.byID[a.ID] = a
	m.idByEmail[a.Email] = a.ID

	return cloneAccount(a), nil
}

// GetAccountByEmail looks an account up through the email index.
func (m *Memory) GetAccountByEmail(_ context.Context, email string) (mockauth.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.idByEmail[email]
	if !ok {
		return mockauth.Account{}, mockauth.ErrStoreNotFound
	}
	return cloneAccount(m.byID[id]), nil
}

// GetAccountByID looks an account up by its primary key.
func (m *Memory) GetAccountByID(_ context.Context, id string) (mockauth.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[id]
	if !ok {
		return mockauth.Account{}, mockauth.ErrStoreNotFound
	}
	return cloneAccount(a), nil
}

// MarkVerified flips IsVerified to true and returns the updated account.
// Already-verified accounts pass through unchanged.
func (m *Memory) MarkVerified(_ context.Context, id string) (mockauth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return mockauth.Account{}, mockauth.ErrStoreNotFound
	}
	a.IsVerified = true
	m.byID[id] = a

	return cloneAccount(a), nil
}

// UpdatePasswordHash replaces the hash of the account owning email.
func (m *Memory) UpdatePasswordHash(_ context.Context, email, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.idByEmail[email]
	if !ok {
		return mockauth.ErrStoreNotFound
	}
	a := m.byID[id]
	a.PasswordHash = newHash
	m.byID[id] = a

	return nil
}

// UpdateProfile merges the provided fields and unconditionally clears
// RequiresProfileSetup, even for an empty update.
func (m *Memory) UpdateProfile(_ context.Context, id string, upd mockauth.ProfileUpdate) (mockauth.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return mockauth.Account{}, mockauth.ErrStoreNotFound
	}

	if upd.FullName != nil {
		a.FullName = *upd.FullName
	}
	if upd.Bio != nil {
		a.Bio = *upd.Bio
	}
	if upd.Organization != nil {
		a.Organization = *upd.Organization
	}
	if upd.Preferences != nil {
		a.Preferences = maps.Clone(upd.Preferences)
	}
	a.RequiresProfileSetup = false
	m.byID[id] = a

	return cloneAccount(a), nil
}

// SaveVerificationToken records token -> account id. Saving a new token does
// not remove earlier ones for the same account.
func (m *Memory) SaveVerificationToken(_ context.Context, token, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.verificationTokens[token] = accountID
	return nil
}

// ConsumeVerificationToken resolves and deletes a verification token, so a
// second redemption of the same token misses.
func (m *Memory) ConsumeVerificationToken(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accountID, ok := m.verificationTokens[token]
	if !ok {
		return "", mockauth.ErrStoreNotFound
	}
	delete(m.verificationTokens, token)
	return accountID, nil
}

// SaveResetToken records token -> email.
func (m *Memory) SaveResetToken(_ context.Context, token, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resetTokens[token] = email
	return nil
}

// ConsumeResetToken resolves and deletes a reset token.
func (m *Memory) ConsumeResetToken(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email, ok := m.resetTokens[token]
	if !ok {
		return "", mockauth.ErrStoreNotFound
	}
	delete(m.resetTokens, token)
	return email, nil
}

// PendingTokens reports how many unredeemed tokens of each kind exist.
// Diagnostic only; the engine never calls it.
func (m *Memory) PendingTokens() (verification, reset int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.verificationTokens), len(m.resetTokens)
}

func cloneAccount(a mockauth.Account) mockauth.Account {
	a.Preferences = maps.Clone(a.Preferences)
	return a
}
