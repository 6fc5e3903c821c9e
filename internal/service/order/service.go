package order

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrInvalidStatus = errors.New("invalid order status")
)

type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input domain.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateOrderInput) (*domain.Order, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error)
	ListForAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error)
}

type service struct {
	orderRepo repository.OrderRepository
	auditRepo repository.AuditLogRepository
	publisher realtime.Publisher
	log       *zap.Logger
}

func NewService(orderRepo repository.OrderRepository, auditRepo repository.AuditLogRepository, publisher realtime.Publisher, logger *zap.Logger) Service {
	return &service{
		orderRepo: orderRepo,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       logger,
	}
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, input domain.CreateOrderInput) (*domain.Order, error) {
	status := string(domain.OrderNew)
	o := &domain.Order{
		ID:          uuid.New(),
		Reference:   newReference(),
		CustomerID:  customerID,
		QuotationID: input.QuotationID,
		CargoType:   input.CargoType,
		Origin:      input.Origin,
		Destination: input.Destination,
		Status:      &status,
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.publish(ctx, realtime.EventInsert, o)
	return o, nil
}

func (s *service) GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if !canSee(user, o) {
		return nil, ErrAccessDenied
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateOrderInput) (*domain.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	old := *o
	if input.AssignedAgentID != nil {
		o.AssignedAgentID = input.AssignedAgentID
	}
	if input.Status != nil {
		if !isValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		o.Status = input.Status
	}

	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err := repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actor.ID,
		Action:     "update_order",
		EntityType: "order",
		EntityID:   o.ID,
		OldValue:   old,
		NewValue:   o,
	}); err != nil {
		s.log.Warn("audit order update", zap.String("order_id", o.ID.String()), zap.Error(err))
	}

	s.publish(ctx, realtime.EventUpdate, o)
	return o, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error) {
	params.Validate()
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Order]{}, err
	}
	return domain.NewPaginatedResponse(orders, params.Page, params.PageSize, total), nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error) {
	params.Validate()
	orders, total, err := s.orderRepo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Order]{}, err
	}
	return domain.NewPaginatedResponse(orders, params.Page, params.PageSize, total), nil
}

func (s *service) ListForAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error) {
	params.Validate()
	orders, total, err := s.orderRepo.ListByAgent(ctx, agentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Order]{}, err
	}
	return domain.NewPaginatedResponse(orders, params.Page, params.PageSize, total), nil
}

func (s *service) publish(ctx context.Context, eventType realtime.EventType, o *domain.Order) {
	payload, err := json.Marshal(o)
	if err != nil {
		s.log.Error("marshal order event", zap.Error(err))
		return
	}
	s.publisher.Publish(ctx, realtime.Event{
		Type:    eventType,
		Table:   realtime.TableOrders,
		Payload: payload,
	})
}

func canSee(user *domain.User, o *domain.Order) bool {
	if user.HasRole(string(domain.RoleAgent)) {
		return true
	}
	return o.CustomerID == user.ID
}

func isValidStatus(status string) bool {
	switch domain.OrderStatus(status) {
	case domain.OrderNew, domain.OrderConfirmed, domain.OrderInTransit, domain.OrderDelivered, domain.OrderCancelled:
		return true
	default:
		return false
	}
}

// newReference builds a human-quotable order reference like ORD-20260830-7F3A.
func newReference() string {
	b := make([]byte, 2)
	_, _ = rand.Read(b)
	return fmt.Sprintf("ORD-%s-%02X%02X", time.Now().Format("20060102"), b[0], b[1])
}
