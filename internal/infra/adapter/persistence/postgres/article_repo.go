// Package postgres implements the repository interfaces on PostgreSQL
// through database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) List(ctx context.Context) ([]*entity.Article, error) {
	defer observe("articles_list")()
	const query = `
SELECT id, title, body, image_url, is_draft, tags, author_id, created_at, updated_at
FROM articles
ORDER BY created_at DESC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	defer observe("articles_get")()
	const query = `
SELECT id, title, body, image_url, is_draft, tags, author_id, created_at, updated_at
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	defer observe("articles_create")()
	const query = `
INSERT INTO articles (id, title, body, image_url, is_draft, tags, author_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	tags, err := json.Marshal(article.Tags)
	if err != nil {
		return fmt.Errorf("Create: marshal tags: %w", err)
	}
	_, err = repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Body, article.ImageURL,
		article.IsDraft, tags, article.AuthorID, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	defer observe("articles_update")()
	// created_at と author_id は書き換えない
	const query = `
UPDATE articles
SET title = $2, body = $3, image_url = $4, is_draft = $5, tags = $6, updated_at = $7
WHERE id = $1`
	tags, err := json.Marshal(article.Tags)
	if err != nil {
		return fmt.Errorf("Update: marshal tags: %w", err)
	}
	result, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Body, article.ImageURL,
		article.IsDraft, tags, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id string) error {
	defer observe("articles_delete")()
	const query = `DELETE FROM articles WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanArticle.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*entity.Article, error) {
	var article entity.Article
	var tags []byte
	if err := s.Scan(&article.ID, &article.Title, &article.Body, &article.ImageURL,
		&article.IsDraft, &tags, &article.AuthorID, &article.CreatedAt, &article.UpdatedAt); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &article.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	return &article, nil
}
