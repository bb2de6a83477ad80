package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

// lookupTimeout bounds the profile lookup triggered by an identity change.
const lookupTimeout = 5 * time.Second

// Resolver maps an identity to its authorization role by looking up the
// per-identity profile record. The last resolved role is cached for as
// long as that identity remains current; an identity change invalidates
// the cache immediately, before the new lookup completes. In the gap
// the resolver reports the null role: no stale privileges, ever.
type Resolver struct {
	Profiles repository.ProfileRepository
	Logger   *slog.Logger

	mu       sync.Mutex
	curID    string
	role     entity.Role
	resolved bool
}

// NewResolver creates a resolver over the given profile repository.
func NewResolver(profiles repository.ProfileRepository, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{Profiles: profiles, Logger: logger}
}

// ResolveRole resolves the role for an identity. A nil identity and an
// identity without a profile both resolve to the null role; a profile
// whose role field is absent resolves to user. Successful resolutions
// are cached until the current identity changes.
func (r *Resolver) ResolveRole(ctx context.Context, id *entity.Identity) (entity.Role, error) {
	if id == nil {
		return entity.RoleNone, nil
	}

	r.mu.Lock()
	if r.resolved && r.curID == id.ID {
		role := r.role
		r.mu.Unlock()
		return role, nil
	}
	r.mu.Unlock()

	profile, err := r.Profiles.Get(ctx, id.ID)
	if err != nil {
		return entity.RoleNone, fmt.Errorf("resolve role: %w", err)
	}
	role := profile.EffectiveRole()

	r.mu.Lock()
	// 解決中に current identity が切り替わっていたらキャッシュしない。
	// curID=="" かつ未解決は初期状態で、サインアウト後 (resolved) とは
	// 区別する。呼び出し元にはどちらでも今回の結果を返す。
	if r.curID == id.ID || (r.curID == "" && !r.resolved) {
		r.curID = id.ID
		r.role = role
		r.resolved = true
	}
	r.mu.Unlock()

	return role, nil
}

// Role returns the cached role for the current identity. The second
// return value reports whether resolution has completed: false means
// "role unknown / loading", which callers must render as no privileges
// rather than falling back to any previous role.
func (r *Resolver) Role() (entity.Role, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.resolved {
		return entity.RoleNone, false
	}
	return r.role, true
}

// Watch subscribes the resolver to an identity stream. Each delivered
// identity invalidates the cache synchronously inside the delivery,
// then re-resolves in the background. Returns the unsubscribe function.
func (r *Resolver) Watch(stream *Stream) (unsubscribe func()) {
	return stream.Subscribe(func(id *entity.Identity) {
		r.mu.Lock()
		if id == nil {
			// サインアウト: 即座に null ロール確定
			r.curID = ""
			r.role = entity.RoleNone
			r.resolved = true
			r.mu.Unlock()
			return
		}
		r.curID = id.ID
		r.role = entity.RoleNone
		r.resolved = false
		r.mu.Unlock()

		go func(id entity.Identity) {
			ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
			defer cancel()

			profile, err := r.Profiles.Get(ctx, id.ID)
			if err != nil {
				r.Logger.Warn("role resolution failed, staying unprivileged",
					slog.String("identity_id", id.ID),
					slog.Any("error", err))
				return
			}
			role := profile.EffectiveRole()

			r.mu.Lock()
			// 解決中に別の identity へ切り替わっていたら破棄する
			if r.curID == id.ID && !r.resolved {
				r.role = role
				r.resolved = true
			}
			r.mu.Unlock()
		}(*id)
	})
}
