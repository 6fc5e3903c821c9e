package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Ticket, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Ticket, int64, error)
	CreateReply(ctx context.Context, reply *domain.TicketReply) error
	ListReplies(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketReply, error)
}

type ticketRepository struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, user_id, subject, body, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		t.ID, t.UserID, t.Subject, t.Body, t.Priority, t.Status,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	var t domain.Ticket
	query := `SELECT * FROM tickets WHERE id = $1`

	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE tickets SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *ticketRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Ticket, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tickets`); err != nil {
		return nil, 0, err
	}

	var tickets []domain.Ticket
	query := `
		SELECT * FROM tickets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &tickets, query, params.PageSize, params.Offset())
	return tickets, total, err
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Ticket, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM tickets WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	var tickets []domain.Ticket
	query := `
		SELECT * FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &tickets, query, userID, params.PageSize, params.Offset())
	return tickets, total, err
}

func (r *ticketRepository) CreateReply(ctx context.Context, reply *domain.TicketReply) error {
	query := `
		INSERT INTO ticket_replies (id, ticket_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		reply.ID, reply.TicketID, reply.AuthorID, reply.Body,
	).Scan(&reply.CreatedAt)
}

func (r *ticketRepository) ListReplies(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketReply, error) {
	var replies []domain.TicketReply
	query := `SELECT * FROM ticket_replies WHERE ticket_id = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &replies, query, ticketID)
	return replies, err
}
