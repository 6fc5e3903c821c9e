package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type ThreadRepository interface {
	CreateThread(ctx context.Context, thread *domain.Thread, memberIDs []uuid.UUID) error
	GetThread(ctx context.Context, id uuid.UUID) (*domain.Thread, error)
	GetMembers(ctx context.Context, threadID uuid.UUID) ([]domain.ThreadMember, error)
	IsMember(ctx context.Context, threadID, userID uuid.UUID) (bool, error)
	ListThreadsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ThreadOverview, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, threadID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	MarkThreadRead(ctx context.Context, threadID, userID uuid.UUID, at time.Time) error
}

type threadRepository struct {
	db *sqlx.DB
}

func NewThreadRepository(db *sqlx.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) CreateThread(ctx context.Context, thread *domain.Thread, memberIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO direct_message_threads (id, title, created_by)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	if err := tx.QueryRowxContext(ctx, query, thread.ID, thread.Title, thread.CreatedBy).Scan(&thread.CreatedAt); err != nil {
		return err
	}

	memberQuery := `
		INSERT INTO direct_message_thread_members (thread_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	for _, memberID := range memberIDs {
		if _, err := tx.ExecContext(ctx, memberQuery, thread.ID, memberID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *threadRepository) GetThread(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	var thread domain.Thread
	query := `SELECT * FROM direct_message_threads WHERE id = $1`

	err := r.db.GetContext(ctx, &thread, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) GetMembers(ctx context.Context, threadID uuid.UUID) ([]domain.ThreadMember, error) {
	var members []domain.ThreadMember
	query := `
		SELECT m.thread_id, m.user_id, u.full_name, m.last_read_at, m.joined_at
		FROM direct_message_thread_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.thread_id = $1`
	err := r.db.SelectContext(ctx, &members, query, threadID)
	return members, err
}

func (r *threadRepository) IsMember(ctx context.Context, threadID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM direct_message_thread_members WHERE thread_id = $1 AND user_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, threadID, userID)
	return exists, err
}

func (r *threadRepository) ListThreadsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ThreadOverview, error) {
	var threads []domain.Thread
	query := `
		SELECT t.*
		FROM direct_message_threads t
		JOIN direct_message_thread_members m ON m.thread_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.last_message_at DESC NULLS LAST`
	if err := r.db.SelectContext(ctx, &threads, query, userID); err != nil {
		return nil, err
	}

	overviews := make([]domain.ThreadOverview, 0, len(threads))
	for _, thread := range threads {
		members, err := r.GetMembers(ctx, thread.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, domain.ThreadOverview{Thread: thread, Members: members})
	}
	return overviews, nil
}

func (r *threadRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO direct_messages (id, thread_id, sender_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	if err := tx.QueryRowxContext(ctx, query, msg.ID, msg.ThreadID, msg.SenderID, msg.Body).Scan(&msg.CreatedAt); err != nil {
		return err
	}

	// Denormalized so the inbox and the feed never join against messages.
	updateQuery := `
		UPDATE direct_message_threads
		SET last_message_at = $2, last_message_preview = LEFT($3, 120)
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, msg.ThreadID, msg.CreatedAt, msg.Body); err != nil {
		return err
	}

	// Sender has implicitly read their own message.
	readQuery := `
		UPDATE direct_message_thread_members
		SET last_read_at = $3
		WHERE thread_id = $1 AND user_id = $2`
	if _, err := tx.ExecContext(ctx, readQuery, msg.ThreadID, msg.SenderID, msg.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *threadRepository) ListMessages(ctx context.Context, threadID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM direct_messages WHERE thread_id = $1`, threadID); err != nil {
		return nil, 0, err
	}

	var messages []domain.Message
	query := `
		SELECT * FROM direct_messages
		WHERE thread_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &messages, query, threadID, params.PageSize, params.Offset())
	return messages, total, err
}

func (r *threadRepository) MarkThreadRead(ctx context.Context, threadID, userID uuid.UUID, at time.Time) error {
	query := `
		UPDATE direct_message_thread_members
		SET last_read_at = $3
		WHERE thread_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, threadID, userID, at)
	return err
}
