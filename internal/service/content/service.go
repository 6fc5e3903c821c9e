package content

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
)

var ErrPageNotFound = errors.New("page not found")

type Service interface {
	GetPublished(ctx context.Context, slug string) (*domain.ContentPage, error)
	ListPublished(ctx context.Context) ([]domain.ContentPage, error)
	ListAll(ctx context.Context) ([]domain.ContentPage, error)
	Upsert(ctx context.Context, actor *domain.User, input domain.UpsertContentPageInput) (*domain.ContentPage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	contentRepo repository.ContentRepository
	auditRepo   repository.AuditLogRepository
}

func NewService(contentRepo repository.ContentRepository, auditRepo repository.AuditLogRepository) Service {
	return &service{
		contentRepo: contentRepo,
		auditRepo:   auditRepo,
	}
}

func (s *service) GetPublished(ctx context.Context, slug string) (*domain.ContentPage, error) {
	page, err := s.contentRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if page == nil || !page.Published {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (s *service) ListPublished(ctx context.Context) ([]domain.ContentPage, error) {
	return s.contentRepo.List(ctx, true)
}

func (s *service) ListAll(ctx context.Context) ([]domain.ContentPage, error) {
	return s.contentRepo.List(ctx, false)
}

func (s *service) Upsert(ctx context.Context, actor *domain.User, input domain.UpsertContentPageInput) (*domain.ContentPage, error) {
	old, err := s.contentRepo.GetBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	page := &domain.ContentPage{
		ID:        uuid.New(),
		Slug:      input.Slug,
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
		UpdatedBy: actor.ID,
	}
	if old != nil {
		page.ID = old.ID
	}

	if err := s.contentRepo.Upsert(ctx, page); err != nil {
		return nil, err
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "upsert_content_page",
		EntityType: "content_page",
		EntityID:   page.ID,
		OldValue:   old,
		NewValue:   page,
	}); err != nil {
		return nil, err
	}

	return page, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contentRepo.Delete(ctx, id)
}
