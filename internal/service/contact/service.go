package contact

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
	"cargobridge/internal/service/email"
)

type Service interface {
	Submit(ctx context.Context, input domain.CreateContactMessageInput) (*domain.ContactMessage, error)
	List(ctx context.Context, unhandledOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.ContactMessage], error)
	MarkHandled(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

type service struct {
	contactRepo  repository.ContactRepository
	emailService email.Service
	log          *zap.Logger
}

func NewService(contactRepo repository.ContactRepository, emailService email.Service, logger *zap.Logger) Service {
	return &service{
		contactRepo:  contactRepo,
		emailService: emailService,
		log:          logger,
	}
}

func (s *service) Submit(ctx context.Context, input domain.CreateContactMessageInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	go func() {
		if err := s.emailService.SendContactAckEmail(context.Background(), msg.Email, msg.Name); err != nil {
			s.log.Error("send contact ack email", zap.String("email", msg.Email), zap.Error(err))
		}
	}()

	return msg, nil
}

func (s *service) List(ctx context.Context, unhandledOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.ContactMessage], error) {
	params.Validate()
	messages, total, err := s.contactRepo.List(ctx, unhandledOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ContactMessage]{}, err
	}
	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}

func (s *service) MarkHandled(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	return s.contactRepo.MarkHandled(ctx, id, actor.ID)
}
