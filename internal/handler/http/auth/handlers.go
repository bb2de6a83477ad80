package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"personal-site/internal/handler/http/requestid"
	"personal-site/internal/handler/http/respond"
	authservice "personal-site/internal/service/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignInHandler authenticates an email/password pair and issues a
// session token.
type SignInHandler struct {
	Svc    *authservice.Service
	Secret []byte
	TTL    time.Duration
}

func (h SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RecordAuthRequest("signin", "failure")
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	ident, err := h.Svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("sign in rejected",
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("signin", "failure")
		RecordAuthDuration("signin", time.Since(start).Seconds())
		respond.DomainError(w, err)
		return
	}

	signed, err := IssueToken(h.Secret, ident, h.ttl())
	if err != nil {
		logger.Error("token generation failed", slog.Any("error", err))
		RecordAuthRequest("signin", "failure")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("sign in successful",
		slog.String("identity_id", ident.ID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	RecordAuthRequest("signin", "success")
	RecordAuthDuration("signin", time.Since(start).Seconds())

	respond.JSON(w, http.StatusOK, sessionResponse{Token: signed, ID: ident.ID, Email: ident.Email})
}

// SignUpHandler registers a new account, provisions its profile, and
// issues a session token for the fresh identity.
type SignUpHandler struct {
	Svc    *authservice.Service
	Secret []byte
	TTL    time.Duration
}

func (h SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RecordAuthRequest("signup", "failure")
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	ident, err := h.Svc.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("sign up rejected",
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest("signup", "failure")
		RecordAuthDuration("signup", time.Since(start).Seconds())
		respond.DomainError(w, err)
		return
	}

	signed, err := IssueToken(h.Secret, ident, h.ttl())
	if err != nil {
		logger.Error("token generation failed", slog.Any("error", err))
		RecordAuthRequest("signup", "failure")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("account registered",
		slog.String("identity_id", ident.ID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	RecordAuthRequest("signup", "success")
	RecordAuthDuration("signup", time.Since(start).Seconds())

	respond.JSON(w, http.StatusCreated, sessionResponse{Token: signed, ID: ident.ID, Email: ident.Email})
}

// SignOutHandler ends the caller's session.
type SignOutHandler struct {
	Svc *authservice.Service
}

func (h SignOutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.SignOut(r.Context()); err != nil {
		RecordAuthRequest("signout", "failure")
		respond.DomainError(w, err)
		return
	}
	RecordAuthRequest("signout", "success")
	w.WriteHeader(http.StatusNoContent)
}

func (h SignInHandler) ttl() time.Duration {
	if h.TTL > 0 {
		return h.TTL
	}
	return TokenTTL
}

func (h SignUpHandler) ttl() time.Duration {
	if h.TTL > 0 {
		return h.TTL
	}
	return TokenTTL
}

// Register mounts the credential endpoints. A non-positive ttl falls
// back to the default token lifetime.
func Register(mux *http.ServeMux, svc *authservice.Service, secret []byte, ttl time.Duration) {
	mux.Handle("POST /auth/signin", SignInHandler{Svc: svc, Secret: secret, TTL: ttl})
	mux.Handle("POST /auth/signup", SignUpHandler{Svc: svc, Secret: secret, TTL: ttl})
	mux.Handle("POST /auth/signout", SignOutHandler{Svc: svc})
}
