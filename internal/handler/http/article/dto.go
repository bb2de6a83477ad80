// Package article provides HTTP handlers for article endpoints.
// It includes handlers for listing, reading, creating, updating, and
// deleting articles, plus image upload.
package article

import (
	"time"

	"personal-site/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url"`
	IsDraft   bool      `json:"is_draft"`
	Tags      []string  `json:"tags"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(a *entity.Article) DTO {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return DTO{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		ImageURL:  a.ImageURL,
		IsDraft:   a.IsDraft,
		Tags:      tags,
		AuthorID:  a.AuthorID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
