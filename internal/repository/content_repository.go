package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type ContentRepository interface {
	Upsert(ctx context.Context, page *domain.ContentPage) error
	GetBySlug(ctx context.Context, slug string) (*domain.ContentPage, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.ContentPage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Upsert(ctx context.Context, page *domain.ContentPage) error {
	query := `
		INSERT INTO content_pages (id, slug, title, body, published, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE
		SET title = EXCLUDED.title, body = EXCLUDED.body, published = EXCLUDED.published,
			updated_by = EXCLUDED.updated_by, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		page.ID, page.Slug, page.Title, page.Body, page.Published, page.UpdatedBy,
	).Scan(&page.ID, &page.CreatedAt, &page.UpdatedAt)
}

func (r *contentRepository) GetBySlug(ctx context.Context, slug string) (*domain.ContentPage, error) {
	var page domain.ContentPage
	query := `SELECT * FROM content_pages WHERE slug = $1`

	err := r.db.GetContext(ctx, &page, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *contentRepository) List(ctx context.Context, publishedOnly bool) ([]domain.ContentPage, error) {
	var pages []domain.ContentPage
	if publishedOnly {
		query := `SELECT * FROM content_pages WHERE published = true ORDER BY slug`
		err := r.db.SelectContext(ctx, &pages, query)
		return pages, err
	}
	query := `SELECT * FROM content_pages ORDER BY slug`
	err := r.db.SelectContext(ctx, &pages, query)
	return pages, err
}

func (r *contentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM content_pages WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
