package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/respond"
)

type ctxKey string

const (
	ctxIdentity ctxKey = "identity"
	ctxRole     ctxKey = "role"
)

// RoleResolver resolves the role for an authenticated identity.
type RoleResolver interface {
	ResolveRole(ctx context.Context, id *entity.Identity) (entity.Role, error)
}

// Authn extracts the caller's identity from the Authorization header
// and resolves its role into the request context.
//
// The middleware never turns anonymous callers away: a request without
// a token proceeds with the null role, and read endpoints decide what
// that role may see. Only a malformed or expired token is rejected,
// since that indicates a broken client rather than an anonymous one.
// When the role lookup itself fails the request continues with the
// null role; access stays fail-closed without taking reads down.
func Authn(secret []byte, roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authz := r.Header.Get("Authorization")
			if authz == "" {
				next.ServeHTTP(w, r)
				return
			}

			ident, err := ParseBearer(authz, secret)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized: invalid token"))
				return
			}

			role, err := roles.ResolveRole(r.Context(), ident)
			if err != nil {
				slog.Default().Warn("role resolution failed, continuing with null role",
					slog.String("identity_id", ident.ID),
					slog.Any("error", err))
				role = entity.RoleNone
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), ident, role)))
		})
	}
}

// ContextWithSession returns ctx carrying the authenticated identity
// and its resolved role.
func ContextWithSession(ctx context.Context, ident *entity.Identity, role entity.Role) context.Context {
	ctx = context.WithValue(ctx, ctxIdentity, ident)
	return context.WithValue(ctx, ctxRole, role)
}

// IdentityFromContext returns the authenticated identity, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *entity.Identity {
	if ident, ok := ctx.Value(ctxIdentity).(*entity.Identity); ok {
		return ident
	}
	return nil
}

// RoleFromContext returns the caller's resolved role. Anonymous
// requests carry the null role.
func RoleFromContext(ctx context.Context) entity.Role {
	if role, ok := ctx.Value(ctxRole).(entity.Role); ok {
		return role
	}
	return entity.RoleNone
}
