package ticket

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrAccessDenied   = errors.New("access denied")
	ErrTicketClosed   = errors.New("ticket is closed")
	ErrInvalidStatus  = errors.New("invalid ticket status")
)

// TicketWithReplies is the detail view: the ticket plus its full reply
// history in chronological order.
type TicketWithReplies struct {
	domain.Ticket
	Replies []domain.TicketReply `json:"replies"`
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, user *domain.User, id uuid.UUID) (*TicketWithReplies, error)
	Reply(ctx context.Context, author *domain.User, id uuid.UUID, input domain.ReplyTicketInput) (*domain.TicketReply, error)
	SetStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status string) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Ticket], error)
	ListForUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Ticket], error)
}

type service struct {
	ticketRepo repository.TicketRepository
}

func NewService(ticketRepo repository.TicketRepository) Service {
	return &service{ticketRepo: ticketRepo}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateTicketInput) (*domain.Ticket, error) {
	priority := input.Priority
	if priority == "" {
		priority = "normal"
	}

	t := &domain.Ticket{
		ID:       uuid.New(),
		UserID:   userID,
		Subject:  input.Subject,
		Body:     input.Body,
		Priority: priority,
		Status:   string(domain.TicketOpen),
	}

	if err := s.ticketRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, user *domain.User, id uuid.UUID) (*TicketWithReplies, error) {
	t, err := s.load(ctx, user, id)
	if err != nil {
		return nil, err
	}

	replies, err := s.ticketRepo.ListReplies(ctx, id)
	if err != nil {
		return nil, err
	}

	return &TicketWithReplies{Ticket: *t, Replies: replies}, nil
}

// Reply appends to the ticket. A staff reply on an open ticket moves it to
// in_progress so the queue reflects that someone picked it up.
func (s *service) Reply(ctx context.Context, author *domain.User, id uuid.UUID, input domain.ReplyTicketInput) (*domain.TicketReply, error) {
	t, err := s.load(ctx, author, id)
	if err != nil {
		return nil, err
	}
	if t.Status == string(domain.TicketClosed) {
		return nil, ErrTicketClosed
	}

	reply := &domain.TicketReply{
		ID:       uuid.New(),
		TicketID: id,
		AuthorID: author.ID,
		Body:     input.Body,
	}
	if err := s.ticketRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	if author.ID != t.UserID && t.Status == string(domain.TicketOpen) {
		if err := s.ticketRepo.SetStatus(ctx, id, string(domain.TicketInProgress)); err != nil {
			return nil, err
		}
	}

	return reply, nil
}

func (s *service) SetStatus(ctx context.Context, actor *domain.User, id uuid.UUID, status string) error {
	if !domain.TicketStatus(status).IsValid() {
		return ErrInvalidStatus
	}

	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.ticketRepo.SetStatus(ctx, id, status)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Ticket], error) {
	params.Validate()
	tickets, total, err := s.ticketRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Ticket]{}, err
	}
	return domain.NewPaginatedResponse(tickets, params.Page, params.PageSize, total), nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Ticket], error) {
	params.Validate()
	tickets, total, err := s.ticketRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Ticket]{}, err
	}
	return domain.NewPaginatedResponse(tickets, params.Page, params.PageSize, total), nil
}

// load fetches a ticket and enforces that only staff or the ticket owner
// can touch it.
func (s *service) load(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTicketNotFound
	}
	if !user.HasRole(string(domain.RoleAgent)) && t.UserID != user.ID {
		return nil, ErrAccessDenied
	}
	return t, nil
}
