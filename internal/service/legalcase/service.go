package legalcase

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
	ErrCaseNotFound = errors.New("legal case not found")
	ErrAccessDenied = errors.New("access denied")
)

type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input domain.CreateLegalCaseInput) (*domain.LegalCase, error)
	GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.LegalCase, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateLegalCaseInput) (*domain.LegalCase, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.LegalCase], error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.LegalCase], error)
	ListForLawyer(ctx context.Context, lawyerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.LegalCase], error)
}

type service struct {
	caseRepo  repository.LegalCaseRepository
	auditRepo repository.AuditLogRepository
	publisher realtime.Publisher
	log       *zap.Logger
}

func NewService(caseRepo repository.LegalCaseRepository, auditRepo repository.AuditLogRepository, publisher realtime.Publisher, logger *zap.Logger) Service {
	return &service{
		caseRepo:  caseRepo,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       logger,
	}
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, input domain.CreateLegalCaseInput) (*domain.LegalCase, error) {
	status := "open"
	lc := &domain.LegalCase{
		ID:          uuid.New(),
		CustomerID:  customerID,
		Subject:     input.Subject,
		Description: input.Description,
		CaseType:    input.CaseType,
		Status:      &status,
	}

	if err := s.caseRepo.Create(ctx, lc); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, lc)
	return lc, nil
}

func (s *service) GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.LegalCase, error) {
	lc, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lc == nil {
		return nil, ErrCaseNotFound
	}
	if !user.HasRole(string(domain.RoleLawyer)) && lc.CustomerID != user.ID {
		return nil, ErrAccessDenied
	}
	return lc, nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateLegalCaseInput) (*domain.LegalCase, error) {
	lc, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lc == nil {
		return nil, ErrCaseNotFound
	}

	old := *lc
	if input.AssignedLawyerID != nil {
		lc.AssignedLawyerID = input.AssignedLawyerID
	}
	if input.Status != nil {
		lc.Status = input.Status
	}
	if input.Description != nil {
		lc.Description = input.Description
	}

	if err := s.caseRepo.Update(ctx, lc); err != nil {
		return nil, err
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "update_case",
		EntityType: "case",
		EntityID:   lc.ID,
		OldValue:   old,
		NewValue:   lc,
	}); err != nil {
		s.log.Warn("audit case update", zap.String("case_id", lc.ID.String()), zap.Error(err))
	}

	s.publish(ctx, realtime.EventUpdate, lc)
	return lc, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.LegalCase], error) {
	params.Validate()
	cases, total, err := s.caseRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.LegalCase]{}, err
	}
	return domain.NewPaginatedResponse(cases, params.Page, params.PageSize, total), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.LegalCase], error) {
	params.Validate()
	cases, total, err := s.caseRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.LegalCase]{}, err
	}
	return domain.NewPaginatedResponse(cases, params.Page, params.PageSize, total), nil
}

func (s *service) ListForLawyer(ctx context.Context, lawyerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.LegalCase], error) {
	params.Validate()
	cases, total, err := s.caseRepo.ListByLawyer(ctx, lawyerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.LegalCase]{}, err
	}
	return domain.NewPaginatedResponse(cases, params.Page, params.PageSize, total), nil
}

func (s *service) publish(ctx context.Context, eventType realtime.EventType, lc *domain.LegalCase) {
	payload, err := json.Marshal(lc)
	if err != nil {
		s.log.Error("marshal case event", zap.Error(err))
		return
	}
	s.publisher.Publish(ctx, realtime.Event{
		Type:    eventType,
		Table:   realtime.TableCases,
		Payload: payload,
	})
}
