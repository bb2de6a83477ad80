// Package article provides use cases for managing articles on the site.
// It implements the role-gated business logic for creating, updating,
// deleting, and reading articles, delegating persistence to the article
// repository and image uploads to the blob store.
package article

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"personal-site/internal/domain/entity"
	"personal-site/internal/domain/policy"
	"personal-site/internal/observability/metrics"
	"personal-site/internal/repository"
)

// BlobStore uploads binary attachments and returns a retrievable URL.
type BlobStore interface {
	// Put stores the blob under the given path and returns its public URL.
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title    string
	Body     string
	ImageURL string
	IsDraft  bool
	Tags     []string
	AuthorID string
}

// UpdateInput represents the input parameters for updating an existing article.
// Nil fields are left untouched. Note the image semantics: a nil ImageURL
// keeps the stored image, while an explicit empty string resets it to the
// default image path.
type UpdateInput struct {
	Title    *string
	Body     *string
	ImageURL *string
	IsDraft  *bool
	Tags     []string
}

// Service provides article management use cases. Every operation takes
// the caller's resolved role and consults the visibility policy before
// touching the repository.
type Service struct {
	Repo  repository.ArticleRepository
	Blobs BlobStore
}

// List retrieves all articles visible to the given role, ordered by
// creation time descending (ties broken by id ascending, which the
// repository guarantees).
func (s *Service) List(ctx context.Context, role entity.Role) ([]*entity.Article, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	metrics.UpdateArticlesTotal(len(articles))

	visible := make([]*entity.Article, 0, len(articles))
	for _, a := range articles {
		if policy.IsVisible(a, role) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// Get retrieves a single article by ID. A missing article and an
// article the role may not see both return entity.ErrNotFound, so a
// draft's existence is never leaked to non-admins.
func (s *Service) Get(ctx context.Context, id string, role entity.Role) (*entity.Article, error) {
	if id == "" {
		return nil, fmt.Errorf("get article: %w", entity.ErrNotFound)
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if !policy.IsVisible(article, role) {
		return nil, fmt.Errorf("get article: %w", entity.ErrNotFound)
	}
	return article, nil
}

// Create creates a new article. Only roles allowed by the policy may
// create; everyone else gets entity.ErrForbidden without any document
// being written. When no image was supplied the well-known default
// image path is assigned, so every article has a renderable image.
func (s *Service) Create(ctx context.Context, in CreateInput, role entity.Role) (*entity.Article, error) {
	if !policy.CanCreate(role) {
		return nil, fmt.Errorf("create article: %w", entity.ErrForbidden)
	}
	if err := entity.ValidateTitle(in.Title); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = entity.DefaultImageURL
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	art := &entity.Article{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Body:      in.Body,
		ImageURL:  imageURL,
		IsDraft:   in.IsDraft,
		Tags:      tags,
		AuthorID:  in.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update modifies an existing article. Only non-nil fields are applied.
// UpdatedAt is always reassigned; CreatedAt and AuthorID are never
// reassigned, even if the stored record is rewritten in full.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, role entity.Role) (*entity.Article, error) {
	if !policy.CanMutate(role) {
		return nil, fmt.Errorf("update article: %w", entity.ErrForbidden)
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, fmt.Errorf("update article: %w", entity.ErrNotFound)
	}

	if in.Title != nil {
		if err := entity.ValidateTitle(*in.Title); err != nil {
			return nil, fmt.Errorf("update article: %w", err)
		}
		art.Title = *in.Title
	}
	if in.Body != nil {
		art.Body = *in.Body
	}
	if in.ImageURL != nil {
		// 省略はそのまま、明示的な空文字はデフォルト画像に戻す
		if *in.ImageURL == "" {
			art.ImageURL = entity.DefaultImageURL
		} else {
			art.ImageURL = *in.ImageURL
		}
	}
	if in.IsDraft != nil {
		art.IsDraft = *in.IsDraft
	}
	if in.Tags != nil {
		art.Tags = in.Tags
	}
	art.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, art); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return art, nil
}

// Delete removes an article. Missing IDs report entity.ErrNotFound with
// the same shape as Get, for the same draft-privacy reason.
func (s *Service) Delete(ctx context.Context, id string, role entity.Role) error {
	if !policy.CanMutate(role) {
		return fmt.Errorf("delete article: %w", entity.ErrForbidden)
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return fmt.Errorf("delete article: %w", entity.ErrNotFound)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// AttachImage uploads an image blob and returns its retrievable URL.
// The storage path is namespaced by upload time in milliseconds, so two
// uploads of the same filename land on different paths unless they hit
// the same millisecond. That rare collision is accepted: switching to
// content-addressed names would change every observable URL.
func (s *Service) AttachImage(ctx context.Context, filename string, r io.Reader, role entity.Role) (string, error) {
	if !policy.CanMutate(role) {
		return "", fmt.Errorf("attach image: %w", entity.ErrForbidden)
	}
	base := path.Base(filename)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("attach image: %w",
			&entity.ValidationError{Field: "filename", Message: "is required"})
	}

	name := fmt.Sprintf("articles/%d_%s", time.Now().UnixMilli(), base)
	url, err := s.Blobs.Put(ctx, name, r)
	if err != nil {
		return "", fmt.Errorf("attach image: %w", err)
	}
	return url, nil
}
