package exportreq

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
	ErrRequestNotFound = errors.New("export request not found")
	ErrAccessDenied    = errors.New("access denied")
)

type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input domain.CreateExportRequestInput) (*domain.ExportRequest, error)
	GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.ExportRequest, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateExportRequestInput) (*domain.ExportRequest, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ExportRequest], error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ExportRequest], error)
}

type service struct {
	exportRepo repository.ExportRequestRepository
	auditRepo  repository.AuditLogRepository
	publisher  realtime.Publisher
	log        *zap.Logger
}

func NewService(exportRepo repository.ExportRequestRepository, auditRepo repository.AuditLogRepository, publisher realtime.Publisher, logger *zap.Logger) Service {
	return &service{
		exportRepo: exportRepo,
		auditRepo:  auditRepo,
		publisher:  publisher,
		log:        logger,
	}
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, input domain.CreateExportRequestInput) (*domain.ExportRequest, error) {
	status := "submitted"
	req := &domain.ExportRequest{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ProductName: input.ProductName,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		Origin:      input.Origin,
		Destination: input.Destination,
		Incoterm:    input.Incoterm,
		Status:      &status,
	}

	if err := s.exportRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, req)
	return req, nil
}

func (s *service) GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.ExportRequest, error) {
	req, err := s.exportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if !user.HasRole(string(domain.RoleAgent)) && req.CustomerID != user.ID {
		return nil, ErrAccessDenied
	}
	return req, nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateExportRequestInput) (*domain.ExportRequest, error) {
	req, err := s.exportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	old := *req
	if input.Origin != nil {
		req.Origin = input.Origin
	}
	if input.Destination != nil {
		req.Destination = input.Destination
	}
	if input.Incoterm != nil {
		req.Incoterm = input.Incoterm
	}
	if input.Status != nil {
		req.Status = input.Status
	}
	req.HandledBy = &actor.ID

	if err := s.exportRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "update_export_request",
		EntityType: "export_request",
		EntityID:   req.ID,
		OldValue:   old,
		NewValue:   req,
	}); err != nil {
		s.log.Warn("audit export request update", zap.String("request_id", req.ID.String()), zap.Error(err))
	}

	s.publish(ctx, realtime.EventUpdate, req)
	return req, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ExportRequest], error) {
	params.Validate()
	requests, total, err := s.exportRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ExportRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.ExportRequest], error) {
	params.Validate()
	requests, total, err := s.exportRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ExportRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) publish(ctx context.Context, eventType realtime.EventType, req *domain.ExportRequest) {
	payload, err := json.Marshal(req)
	if err != nil {
		s.log.Error("marshal export request event", zap.Error(err))
		return
	}
	s.publisher.Publish(ctx, realtime.Event{
		Type:    eventType,
		Table:   realtime.TableExports,
		Payload: payload,
	})
}
