// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article and UserProfile, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// DefaultImageURL is the well-known fallback image path assigned to
// articles created without an image. Every article carries a renderable
// image reference, so the site never has to deal with an unset field.
const DefaultImageURL = "/articledefalt.png"

// Article represents a single post on the site.
// AuthorID and CreatedAt are assigned once at creation and never change;
// UpdatedAt is reassigned on every mutation. A draft article is visible
// only to the admin role.
type Article struct {
	ID        string
	Title     string
	Body      string
	ImageURL  string
	IsDraft   bool
	Tags      []string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
