// Package policy holds the content visibility rules. Everything here is
// a pure function over an article and a role: no I/O, no state. Every
// read and write path consults these before acting.
package policy

import "personal-site/internal/domain/entity"

// IsVisible reports whether a role may see an article.
// Drafts are visible only under the admin role; everything else is
// visible to everyone, including anonymous visitors.
func IsVisible(article *entity.Article, role entity.Role) bool {
	if article == nil {
		return false
	}
	if article.IsDraft {
		return role == entity.RoleAdmin
	}
	return true
}

// CanMutate reports whether a role may update or delete articles.
func CanMutate(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// CanCreate reports whether a role may create articles.
func CanCreate(role entity.Role) bool {
	return CanMutate(role)
}
