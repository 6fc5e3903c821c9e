package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cargobridge/internal/domain"
	"cargobridge/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrInvalidRole  = errors.New("invalid role")
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	AssignRole(ctx context.Context, actor *domain.User, input domain.AssignRoleInput) error
	Deactivate(ctx context.Context, actor *domain.User, id uuid.UUID) error
}

type service struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

func NewService(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) Service {
	return &service{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	params.Validate()
	users, total, err := s.userRepo.GetAllUsers(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	if !domain.UserRole(role).IsValid() {
		return nil, ErrInvalidRole
	}
	return s.userRepo.ListByRole(ctx, role)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Company != nil {
		user.Company = *input.Company
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) AssignRole(ctx context.Context, actor *domain.User, input domain.AssignRoleInput) error {
	if !domain.UserRole(input.Role).IsValid() {
		return ErrInvalidRole
	}

	target, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	oldRole := target.Role
	if err := s.userRepo.AssignRole(ctx, input.UserID, input.Role); err != nil {
		return err
	}

	return repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "assign_role",
		EntityType: "user",
		EntityID:   input.UserID,
		OldValue:   map[string]string{"role": oldRole},
		NewValue:   map[string]string{"role": input.Role},
	})
}

func (s *service) Deactivate(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	return repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "deactivate_user",
		EntityType: "user",
		EntityID:   id,
		OldValue:   map[string]any{"is_active": true},
		NewValue:   map[string]any{"is_active": false},
	})
}
