package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, att *domain.Attachment) error {
	query := `
		INSERT INTO attachments (id, entity_type, entity_id, uploaded_by, file_name, file_size, mime_type, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		att.ID, att.EntityType, att.EntityID, att.UploadedBy,
		att.FileName, att.FileSize, att.MimeType, att.StoragePath,
	).Scan(&att.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var att domain.Attachment
	query := `SELECT * FROM attachments WHERE id = $1`

	err := r.db.GetContext(ctx, &att, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	query := `
		SELECT * FROM attachments
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &attachments, query, entityType, entityID)
	return attachments, err
}

func (r *attachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM attachments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
