package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context, unhandledOnly bool, params domain.PaginationParams) ([]domain.ContactMessage, int64, error)
	MarkHandled(ctx context.Context, id, handledBy uuid.UUID) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Body,
	).Scan(&msg.CreatedAt)
}

func (r *contactRepository) List(ctx context.Context, unhandledOnly bool, params domain.PaginationParams) ([]domain.ContactMessage, int64, error) {
	params.Validate()

	var total int64
	var messages []domain.ContactMessage

	if unhandledOnly {
		if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contact_messages WHERE handled = false`); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM contact_messages
			WHERE handled = false
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		err := r.db.SelectContext(ctx, &messages, query, params.PageSize, params.Offset())
		return messages, total, err
	}

	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contact_messages`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &messages, query, params.PageSize, params.Offset())
	return messages, total, err
}

func (r *contactRepository) MarkHandled(ctx context.Context, id, handledBy uuid.UUID) error {
	query := `UPDATE contact_messages SET handled = true, handled_by = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, handledBy)
	return err
}
