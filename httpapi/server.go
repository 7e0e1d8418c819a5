package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/artintellm/mockauth"
	"github.com/artintellm/mockauth/middleware"
)

// Server binds the engine to the HTTP surface.
type Server struct {
	engine *mockauth.Engine
	logger *slog.Logger
	cors   string
}

// NewServer wires engine and config into a Server. A nil logger falls back
// to slog.Default.
func NewServer(engine *mockauth.Engine, cfg mockauth.HTTPConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine: engine,
		logger: logger,
		cors:   cfg.CORSOrigin,
	}
}

// Handler builds the full route table, wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/verify-email", s.handleVerifyEmail)
	mux.HandleFunc("POST /api/v1/auth/resend-verification", s.handleResendVerification)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("POST /api/v1/auth/complete-profile", s.handleCompleteProfile)

	guarded := middleware.Guard(s.engine)(http.HandlerFunc(s.handleMe))
	mux.Handle("GET /api/v1/auth/me", guarded)

	mux.HandleFunc("GET /api/v1/auth/google/authorize", s.handleGoogleAuthorize)
	mux.HandleFunc("POST /api/v1/auth/google/callback", s.handleGoogleCallback)

	mux.HandleFunc("GET /api/health", s.handleHealth)

	return middleware.CORS(s.cors)(s.logRequests(mux))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := s.engine.Register(r.Context(), mockauth.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// handleLogin consumes the OAuth2-style password form: username carries the
// email.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	result, err := s.engine.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req emailVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := s.engine.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendVerificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := s.engine.ResendVerification(r.Context(), req.Email)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := s.engine.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordReset
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := s.engine.ResetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// handleCompleteProfile authenticates through the token query parameter, the
// contract the onboarding flow uses right after login.
func (s *Server) handleCompleteProfile(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		unauthorizedError(w, "invalid token")
		return
	}

	var req profileUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := s.engine.CompleteProfile(r.Context(), token, req.toEngine())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	view, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		unauthorizedError(w, "could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Mock Google OAuth endpoints. Real token exchange is out of scope; these
// return the same canned values the frontend integration tests expect.
func (s *Server) handleGoogleAuthorize(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"authorization_url": "https://accounts.google.com/o/oauth2/auth?mock=true",
	})
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("code") == "" {
		writeError(w, http.StatusBadRequest, "missing code")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": "mock_google_token",
		"token_type":   "bearer",
		"user_id":      "google_user_123",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Message: "API is running"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// writeEngineError maps the engine's error taxonomy onto HTTP status codes:
// validation and conflict to 400 (the original surface folds conflicts into
// 400), unauthorized to 401 with a bearer challenge, everything else to 500.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case mockauth.IsValidation(err) || mockauth.IsConflict(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case mockauth.IsUnauthorized(err):
		unauthorizedError(w, err.Error())
	default:
		s.logger.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func unauthorizedError(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, detail)
}
