package mockauth

import (
	"context"
	"time"
)

// AccountRole is the coarse authorization role assigned at creation.
// No exposed operation mutates it afterwards.
type AccountRole string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser AccountRole = "user"
	// RoleAdmin is assigned only by out-of-band seeding.
	RoleAdmin AccountRole = "admin"
)

// Account is the durable identity record held by an [AccountStore].
// PasswordHash never leaves the engine; see [AccountView].
type Account struct {
	ID                   string
	Email                string
	PasswordHash         string
	FullName             string
	Role                 AccountRole
	IsVerified           bool
	CreatedAt            time.Time
	RequiresProfileSetup bool
	Bio                  string
	Organization         string
	Preferences          map[string]any
}

// AccountView is the subset of [Account] safe to return to a client.
// Organization is present only when set.
type AccountView struct {
	UserID               string `json:"user_id"`
	Email                string `json:"email"`
	FullName             string `json:"full_name"`
	IsVerified           bool   `json:"is_verified"`
	Role                 string `json:"role"`
	Organization         string `json:"organization,omitempty"`
	RequiresProfileSetup bool   `json:"requires_profile_setup"`
}

// View projects an Account into its public representation.
func (a Account) View() *AccountView {
	return &AccountView{
		UserID:               a.ID,
		Email:                a.Email,
		FullName:             a.FullName,
		IsVerified:           a.IsVerified,
		Role:                 string(a.Role),
		Organization:         a.Organization,
		RequiresProfileSetup: a.RequiresProfileSetup,
	}
}

// RegisterRequest carries the registration inputs. ConfirmPassword must
// equal Password; both are validated by the engine, not the store.
type RegisterRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// ProfileUpdate carries the optional profile-completion fields. Nil pointers
// (and a nil Preferences map) mean "leave untouched"; CompleteProfile merges
// only what is present.
type ProfileUpdate struct {
	FullName     *string
	Bio          *string
	Organization *string
	Preferences  map[string]any
}

// LoginResult is returned by [Engine.Login] on success.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

// AccountStore is the storage contract the engine drives. Implementations
// must enforce email uniqueness at creation (return [ErrStoreDuplicateEmail])
// and serialize mutations internally; the engine performs no locking of its
// own. Lookups that miss return [ErrStoreNotFound].
//
// The two token maps are independent: verification tokens resolve to an
// account id, reset tokens resolve to an email. Consume deletes the token,
// so each issued token is honored at most once. Issuing a new token does not
// invalidate previously issued ones.
type AccountStore interface {
	// CreateAccount assigns a fresh id and CreatedAt and persists the
	// account, rejecting duplicate emails.
	CreateAccount(ctx context.Context, a Account) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccountByID(ctx context.Context, id string) (Account, error)
	// MarkVerified flips IsVerified to true. The transition is monotonic;
	// marking an already-verified account is a no-op.
	MarkVerified(ctx context.Context, id string) (Account, error)
	UpdatePasswordHash(ctx context.Context, email, newHash string) error
	// UpdateProfile merges the provided fields and clears
	// RequiresProfileSetup unconditionally.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (Account, error)

	SaveVerificationToken(ctx context.Context, token, accountID string) error
	ConsumeVerificationToken(ctx context.Context, token string) (accountID string, err error)
	SaveResetToken(ctx context.Context, token, email string) error
	ConsumeResetToken(ctx context.Context, token string) (email string, err error)
}
