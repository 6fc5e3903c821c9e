package order_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/service/order"
	"cargobridge/tests/mocks"
)

var referencePattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{4}$`)

func TestOrderService_Create(t *testing.T) {
	mockRepo := new(mocks.OrderRepository)
	mockPublisher := new(mocks.Publisher)
	svc := order.NewService(mockRepo, new(mocks.AuditLogRepository), mockPublisher, zap.NewNop())

	ctx := context.Background()
	customerID := uuid.New()
	origin := "Jakarta"

	mockRepo.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.CustomerID == customerID &&
			o.Status != nil && *o.Status == string(domain.OrderNew) &&
			referencePattern.MatchString(o.Reference)
	})).Return(nil).Once()
	mockPublisher.On("Publish", ctx, mock.MatchedBy(func(evt realtime.Event) bool {
		return evt.Type == realtime.EventInsert && evt.Table == realtime.TableOrders && evt.UserID == nil
	})).Once()

	o, err := svc.Create(ctx, customerID, domain.CreateOrderInput{Origin: &origin})

	assert.NoError(t, err)
	assert.Regexp(t, referencePattern, o.Reference)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestOrderService_GetByID(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	mockRepo := new(mocks.OrderRepository)
	svc := order.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.Publisher), zap.NewNop())

	o := &domain.Order{ID: uuid.New(), Reference: "ORD-20260301-AB12", CustomerID: customerID}
	mockRepo.On("GetByID", ctx, o.ID).Return(o, nil)

	t.Run("Owner", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &domain.User{ID: customerID, Role: string(domain.RoleCustomer)}, o.ID)
		assert.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)
	})

	t.Run("Agent", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &domain.User{ID: uuid.New(), Role: string(domain.RoleAgent)}, o.ID)
		assert.NoError(t, err)
		assert.Equal(t, o.ID, got.ID)
	})

	t.Run("Other customer denied", func(t *testing.T) {
		_, err := svc.GetByID(ctx, &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer)}, o.ID)
		assert.ErrorIs(t, err, order.ErrAccessDenied)
	})

	t.Run("Missing", func(t *testing.T) {
		missing := uuid.New()
		mockRepo.On("GetByID", ctx, missing).Return(nil, nil).Once()
		_, err := svc.GetByID(ctx, &domain.User{ID: customerID, Role: string(domain.RoleCustomer)}, missing)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()
	agent := &domain.User{ID: uuid.New(), Role: string(domain.RoleAgent)}

	t.Run("Invalid status", func(t *testing.T) {
		mockRepo := new(mocks.OrderRepository)
		svc := order.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.Publisher), zap.NewNop())

		o := &domain.Order{ID: uuid.New(), Reference: "ORD-20260301-AB12", CustomerID: uuid.New()}
		mockRepo.On("GetByID", ctx, o.ID).Return(o, nil).Once()

		bad := "teleported"
		_, err := svc.Update(ctx, agent, o.ID, domain.UpdateOrderInput{Status: &bad})

		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("Assign and advance", func(t *testing.T) {
		mockRepo := new(mocks.OrderRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockPublisher := new(mocks.Publisher)
		svc := order.NewService(mockRepo, mockAudit, mockPublisher, zap.NewNop())

		o := &domain.Order{ID: uuid.New(), Reference: "ORD-20260301-AB12", CustomerID: uuid.New()}
		status := string(domain.OrderConfirmed)

		mockRepo.On("GetByID", ctx, o.ID).Return(o, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.Order) bool {
			return u.AssignedAgentID != nil && *u.AssignedAgentID == agent.ID &&
				u.Status != nil && *u.Status == status
		})).Return(nil).Once()
		mockAudit.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		mockPublisher.On("Publish", ctx, mock.MatchedBy(func(evt realtime.Event) bool {
			return evt.Type == realtime.EventUpdate && evt.Table == realtime.TableOrders
		})).Once()

		updated, err := svc.Update(ctx, agent, o.ID, domain.UpdateOrderInput{
			AssignedAgentID: &agent.ID,
			Status:          &status,
		})

		assert.NoError(t, err)
		assert.Equal(t, status, *updated.Status)
		mockRepo.AssertExpectations(t)
	})
}
