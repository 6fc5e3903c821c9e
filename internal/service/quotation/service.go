package quotation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
	"cargobridge/internal/service/email"
	"cargobridge/internal/service/order"
)

var (
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrNotQuotable       = errors.New("quotation is not awaiting a price")
	ErrNotDecidable      = errors.New("quotation has no pending quote to accept or reject")
)

type Service interface {
	Create(ctx context.Context, customerID *uuid.UUID, input domain.CreateQuotationInput) (*domain.Quotation, error)
	GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Quotation, error)
	Quote(ctx context.Context, agent *domain.User, id uuid.UUID, input domain.QuoteQuotationInput) (*domain.Quotation, error)
	Accept(ctx context.Context, customer *domain.User, id uuid.UUID) (*domain.Quotation, *domain.Order, error)
	Reject(ctx context.Context, customer *domain.User, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Quotation], error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Quotation], error)
}

type service struct {
	quotationRepo repository.QuotationRepository
	auditRepo     repository.AuditLogRepository
	orderService  order.Service
	emailService  email.Service
	log           *zap.Logger
}

func NewService(quotationRepo repository.QuotationRepository, auditRepo repository.AuditLogRepository, orderService order.Service, emailService email.Service, logger *zap.Logger) Service {
	return &service{
		quotationRepo: quotationRepo,
		auditRepo:     auditRepo,
		orderService:  orderService,
		emailService:  emailService,
		log:           logger,
	}
}

// Create accepts quotation requests from the public site as well as from
// logged-in customers; customerID is nil for anonymous requests.
func (s *service) Create(ctx context.Context, customerID *uuid.UUID, input domain.CreateQuotationInput) (*domain.Quotation, error) {
	q := &domain.Quotation{
		ID:            uuid.New(),
		CustomerID:    customerID,
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		CargoType:     input.CargoType,
		Origin:        input.Origin,
		Destination:   input.Destination,
		WeightKg:      input.WeightKg,
		VolumeCbm:     input.VolumeCbm,
		TransportMode: input.TransportMode,
		Status:        string(domain.QuotationPending),
		Notes:         input.Notes,
	}

	if err := s.quotationRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Quotation, error) {
	q, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuotationNotFound
	}
	if !canSee(user, q) {
		return nil, ErrAccessDenied
	}
	return q, nil
}

func (s *service) Quote(ctx context.Context, agent *domain.User, id uuid.UUID, input domain.QuoteQuotationInput) (*domain.Quotation, error) {
	q, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuotationNotFound
	}
	if q.Status != string(domain.QuotationPending) {
		return nil, ErrNotQuotable
	}

	old := *q
	q.Status = string(domain.QuotationQuoted)
	q.QuotedPrice = &input.QuotedPrice
	q.Currency = &input.Currency
	if input.Notes != nil {
		q.Notes = input.Notes
	}
	q.QuotedBy = &agent.ID

	if err := s.quotationRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     agent.ID,
		Action:     "quote_quotation",
		EntityType: "quotation",
		EntityID:   q.ID,
		OldValue:   old,
		NewValue:   q,
	}); err != nil {
		s.log.Warn("audit quotation quote", zap.String("quotation_id", q.ID.String()), zap.Error(err))
	}

	go func() {
		if err := s.emailService.SendQuotationReadyEmail(context.Background(), q.Email, q.FullName, q.ID.String()); err != nil {
			s.log.Error("send quotation ready email", zap.String("email", q.Email), zap.Error(err))
		}
	}()

	return q, nil
}

// Accept marks a quoted quotation accepted and books the shipment as a new
// order in the same call.
func (s *service) Accept(ctx context.Context, customer *domain.User, id uuid.UUID) (*domain.Quotation, *domain.Order, error) {
	q, err := s.decide(ctx, customer, id, domain.QuotationAccepted)
	if err != nil {
		return nil, nil, err
	}

	o, err := s.orderService.Create(ctx, customer.ID, domain.CreateOrderInput{
		QuotationID: &q.ID,
		CargoType:   &q.CargoType,
		Origin:      &q.Origin,
		Destination: &q.Destination,
	})
	if err != nil {
		return nil, nil, err
	}
	return q, o, nil
}

func (s *service) Reject(ctx context.Context, customer *domain.User, id uuid.UUID) (*domain.Quotation, error) {
	return s.decide(ctx, customer, id, domain.QuotationRejected)
}

func (s *service) decide(ctx context.Context, customer *domain.User, id uuid.UUID, status domain.QuotationStatus) (*domain.Quotation, error) {
	q, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuotationNotFound
	}
	if q.CustomerID == nil || *q.CustomerID != customer.ID {
		return nil, ErrAccessDenied
	}
	if q.Status != string(domain.QuotationQuoted) {
		return nil, ErrNotDecidable
	}

	q.Status = string(status)
	if err := s.quotationRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Quotation], error) {
	params.Validate()
	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Quotation]{}, err
	}
	return domain.NewPaginatedResponse(quotations, params.Page, params.PageSize, total), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Quotation], error) {
	params.Validate()
	quotations, total, err := s.quotationRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Quotation]{}, err
	}
	return domain.NewPaginatedResponse(quotations, params.Page, params.PageSize, total), nil
}

func canSee(user *domain.User, q *domain.Quotation) bool {
	if user.HasRole(string(domain.RoleAgent)) {
		return true
	}
	return q.CustomerID != nil && *q.CustomerID == user.ID
}
