// Package repository defines the persistence interfaces consumed by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"personal-site/internal/domain/entity"
)

// ArticleRepository persists article documents.
//
// Get returns (nil, nil) when no article with the given ID exists; the
// use case layer turns that into its not-found error. Visibility is NOT
// a repository concern: repositories return drafts and published
// articles alike, and the policy filter is applied above.
type ArticleRepository interface {
	// List retrieves all articles ordered by created_at descending,
	// ties broken by id ascending for a deterministic order.
	List(ctx context.Context) ([]*entity.Article, error)
	Get(ctx context.Context, id string) (*entity.Article, error)
	// Create persists a fully populated article. The caller assigns the
	// ID and timestamps before calling.
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id string) error
}
