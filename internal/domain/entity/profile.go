package entity

// Role is the authorization level derived from a user profile.
// The zero value RoleNone means "no identity, or identity has no profile
// yet" and must never be treated as an ordinary user: an unprovisioned
// identity gets no privileges at all.
type Role string

const (
	// RoleNone is the null role: unresolved, unprovisioned, or signed out.
	RoleNone Role = ""
	// RoleUser is an ordinary provisioned user.
	RoleUser Role = "user"
	// RoleAdmin may create and mutate articles and see drafts.
	RoleAdmin Role = "admin"
)

// Identity is the authenticated principal issued by the identity
// provider. The core only observes identities, it never mutates them.
type Identity struct {
	ID    string
	Email string
}

// UserProfile is the per-identity provisioning record, keyed by the
// identity ID. It is created exactly once, at registration time, by the
// credential manager. Elevation to admin happens out of band.
type UserProfile struct {
	ID    string
	Email string
	Role  Role
}

// EffectiveRole returns the role recorded on the profile, treating an
// absent role field as RoleUser. A nil profile resolves to RoleNone,
// which is distinct from RoleUser: it signals "not yet provisioned".
func (p *UserProfile) EffectiveRole() Role {
	if p == nil {
		return RoleNone
	}
	if p.Role == RoleNone {
		return RoleUser
	}
	return p.Role
}
