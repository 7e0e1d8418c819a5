package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/artintellm/mockauth"
)

type accountContextKey struct{}

// AccountFromContext returns the account view injected by [Guard].
func AccountFromContext(ctx context.Context) (*mockauth.AccountView, bool) {
	view, ok := ctx.Value(accountContextKey{}).(*mockauth.AccountView)
	return view, ok
}

// Guard rejects requests without a valid bearer token and injects the
// resolved account view into the request context. Failures answer 401 with
// a WWW-Authenticate challenge, matching the OAuth2 bearer scheme.
func Guard(engine *mockauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				unauthorized(w)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			view, err := engine.CurrentAccount(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey{}, view)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}
	return token, true
}
