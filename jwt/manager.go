package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod names an HMAC algorithm accepted by the codec.
type SigningMethod string

const (
	// MethodHS256 is the default signing method.
	MethodHS256 SigningMethod = "HS256"
	// MethodHS384 selects HMAC-SHA384.
	MethodHS384 SigningMethod = "HS384"
	// MethodHS512 selects HMAC-SHA512.
	MethodHS512 SigningMethod = "HS512"
)

// Config holds the codec settings. The secret is process-wide; rotating it
// invalidates all outstanding tokens.
type Config struct {
	Secret        []byte
	SigningMethod SigningMethod
	AccessTTL     time.Duration
	Leeway        time.Duration
}

// Manager signs and verifies access tokens. It is stateless and safe for
// concurrent use.
type Manager struct {
	config Config
	method jwt.SigningMethod
}

// AccessClaims is the payload embedded in every access token: the account id
// as the registered subject, the email, and the registered expiry.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("signing secret required")
	}
	if cfg.AccessTTL < 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}

	var method jwt.SigningMethod
	switch cfg.SigningMethod {
	case MethodHS256, "":
		method = jwt.SigningMethodHS256
	case MethodHS384:
		method = jwt.SigningMethodHS384
	case MethodHS512:
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing method %q", cfg.SigningMethod)
	}

	return &Manager{config: cfg, method: method}, nil
}

// CreateAccess issues a signed token for the given account using the
// configured TTL.
func (m *Manager) CreateAccess(accountID, email string) (string, error) {
	return m.CreateAccessWithTTL(accountID, email, m.config.AccessTTL)
}

// CreateAccessWithTTL issues a signed token with an explicit TTL. A zero or
// negative TTL produces a token that is already expired; ParseAccess will
// reject it.
func (m *Manager) CreateAccessWithTTL(accountID, email string, ttl time.Duration) (string, error) {
	if accountID == "" {
		return "", errors.New("empty account id")
	}

	now := time.Now()
	claims := AccessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(m.method, claims).SignedString(m.config.Secret)
}

// ParseAccess verifies a token and returns its claims. It fails closed: a
// signature mismatch, malformed structure, wrong algorithm, missing subject,
// or past expiry all return an error and never partial claims.
func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}

	return claims, nil
}
