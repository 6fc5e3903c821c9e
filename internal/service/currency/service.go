package currency

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
)

var (
	ErrTransferNotFound = errors.New("currency transfer not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrSameCurrency     = errors.New("from and to currency must differ")
)

type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input domain.CreateCurrencyTransferInput) (*domain.CurrencyTransfer, error)
	GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.CurrencyTransfer, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateCurrencyTransferInput) (*domain.CurrencyTransfer, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.CurrencyTransfer], error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CurrencyTransfer], error)
}

type service struct {
	transferRepo repository.CurrencyTransferRepository
	auditRepo    repository.AuditLogRepository
	publisher    realtime.Publisher
	log          *zap.Logger
}

func NewService(transferRepo repository.CurrencyTransferRepository, auditRepo repository.AuditLogRepository, publisher realtime.Publisher, logger *zap.Logger) Service {
	return &service{
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
		publisher:    publisher,
		log:          logger,
	}
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, input domain.CreateCurrencyTransferInput) (*domain.CurrencyTransfer, error) {
	if input.FromCurrency == input.ToCurrency {
		return nil, ErrSameCurrency
	}

	status := "requested"
	t := &domain.CurrencyTransfer{
		ID:           uuid.New(),
		CustomerID:   customerID,
		FromCurrency: input.FromCurrency,
		ToCurrency:   input.ToCurrency,
		Amount:       input.Amount,
		Status:       &status,
	}

	if err := s.transferRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, t)
	return t, nil
}

func (s *service) GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.CurrencyTransfer, error) {
	t, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransferNotFound
	}
	if !user.HasRole(string(domain.RoleAgent)) && t.CustomerID != user.ID {
		return nil, ErrAccessDenied
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateCurrencyTransferInput) (*domain.CurrencyTransfer, error) {
	t, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTransferNotFound
	}

	old := *t
	if input.Rate != nil {
		t.Rate = input.Rate
	}
	if input.Status != nil {
		t.Status = input.Status
	}
	t.HandledBy = &actor.ID

	if err := s.transferRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "update_currency_transfer",
		EntityType: "currency_transfer",
		EntityID:   t.ID,
		OldValue:   old,
		NewValue:   t,
	}); err != nil {
		s.log.Warn("audit currency transfer update", zap.String("transfer_id", t.ID.String()), zap.Error(err))
	}

	s.publish(ctx, realtime.EventUpdate, t)
	return t, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.CurrencyTransfer], error) {
	params.Validate()
	transfers, total, err := s.transferRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CurrencyTransfer]{}, err
	}
	return domain.NewPaginatedResponse(transfers, params.Page, params.PageSize, total), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CurrencyTransfer], error) {
	params.Validate()
	transfers, total, err := s.transferRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CurrencyTransfer]{}, err
	}
	return domain.NewPaginatedResponse(transfers, params.Page, params.PageSize, total), nil
}

func (s *service) publish(ctx context.Context, eventType realtime.EventType, t *domain.CurrencyTransfer) {
	payload, err := json.Marshal(t)
	if err != nil {
		s.log.Error("marshal currency transfer event", zap.Error(err))
		return
	}
	s.publisher.Publish(ctx, realtime.Event{
		Type:    eventType,
		Table:   realtime.TableCurrency,
		Payload: payload,
	})
}
