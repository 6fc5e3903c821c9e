package quotation_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/service/quotation"
	"cargobridge/tests/mocks"
)

func newQuotation(customerID *uuid.UUID, status domain.QuotationStatus) *domain.Quotation {
	return &domain.Quotation{
		ID:            uuid.New(),
		CustomerID:    customerID,
		FullName:      "Budi Santoso",
		Email:         "budi@example.com",
		CargoType:     "electronics",
		Origin:        "Jakarta",
		Destination:   "Rotterdam",
		WeightKg:      1200,
		TransportMode: "sea",
		Status:        string(status),
	}
}

func TestQuotationService_Create(t *testing.T) {
	mockRepo := new(mocks.QuotationRepository)
	svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.OrderService), new(mocks.EmailService), zap.NewNop())

	ctx := context.Background()
	input := domain.CreateQuotationInput{
		FullName:      "Budi Santoso",
		Email:         "budi@example.com",
		CargoType:     "electronics",
		Origin:        "Jakarta",
		Destination:   "Rotterdam",
		WeightKg:      1200,
		TransportMode: "sea",
	}

	t.Run("Anonymous request", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.MatchedBy(func(q *domain.Quotation) bool {
			return q.CustomerID == nil && q.Status == string(domain.QuotationPending)
		})).Return(nil).Once()

		q, err := svc.Create(ctx, nil, input)

		assert.NoError(t, err)
		assert.NotNil(t, q)
		assert.Equal(t, string(domain.QuotationPending), q.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Logged-in customer", func(t *testing.T) {
		customerID := uuid.New()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(q *domain.Quotation) bool {
			return q.CustomerID != nil && *q.CustomerID == customerID
		})).Return(nil).Once()

		q, err := svc.Create(ctx, &customerID, input)

		assert.NoError(t, err)
		assert.Equal(t, customerID, *q.CustomerID)
	})
}

func TestQuotationService_Quote(t *testing.T) {
	ctx := context.Background()
	agent := &domain.User{ID: uuid.New(), Role: string(domain.RoleAgent)}
	input := domain.QuoteQuotationInput{QuotedPrice: 2500, Currency: "USD"}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.QuotationRepository)
		mockAudit := new(mocks.AuditLogRepository)
		mockEmail := new(mocks.EmailService)
		svc := quotation.NewService(mockRepo, mockAudit, new(mocks.OrderService), mockEmail, zap.NewNop())

		customerID := uuid.New()
		pending := newQuotation(&customerID, domain.QuotationPending)

		mockRepo.On("GetByID", ctx, pending.ID).Return(pending, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(q *domain.Quotation) bool {
			return q.Status == string(domain.QuotationQuoted) &&
				q.QuotedPrice != nil && *q.QuotedPrice == 2500 &&
				q.QuotedBy != nil && *q.QuotedBy == agent.ID
		})).Return(nil).Once()
		mockAudit.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		mockEmail.On("SendQuotationReadyEmail", mock.Anything, pending.Email, pending.FullName, pending.ID.String()).Return(nil).Maybe()

		q, err := svc.Quote(ctx, agent, pending.ID, input)

		assert.NoError(t, err)
		assert.Equal(t, string(domain.QuotationQuoted), q.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Already quoted", func(t *testing.T) {
		mockRepo := new(mocks.QuotationRepository)
		svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.OrderService), new(mocks.EmailService), zap.NewNop())

		customerID := uuid.New()
		quoted := newQuotation(&customerID, domain.QuotationQuoted)
		mockRepo.On("GetByID", ctx, quoted.ID).Return(quoted, nil).Once()

		_, err := svc.Quote(ctx, agent, quoted.ID, input)

		assert.ErrorIs(t, err, quotation.ErrNotQuotable)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(mocks.QuotationRepository)
		svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.OrderService), new(mocks.EmailService), zap.NewNop())

		id := uuid.New()
		mockRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := svc.Quote(ctx, agent, id, input)

		assert.ErrorIs(t, err, quotation.ErrQuotationNotFound)
	})
}

func TestQuotationService_Accept(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	customer := &domain.User{ID: customerID, Role: string(domain.RoleCustomer)}

	t.Run("Books an order", func(t *testing.T) {
		mockRepo := new(mocks.QuotationRepository)
		mockOrders := new(mocks.OrderService)
		svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), mockOrders, new(mocks.EmailService), zap.NewNop())

		quoted := newQuotation(&customerID, domain.QuotationQuoted)
		booked := &domain.Order{ID: uuid.New(), Reference: "ORD-20260301-AB12", CustomerID: customerID}

		mockRepo.On("GetByID", ctx, quoted.ID).Return(quoted, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(q *domain.Quotation) bool {
			return q.Status == string(domain.QuotationAccepted)
		})).Return(nil).Once()
		mockOrders.On("Create", ctx, customerID, mock.MatchedBy(func(input domain.CreateOrderInput) bool {
			return input.QuotationID != nil && *input.QuotationID == quoted.ID &&
				input.Origin != nil && *input.Origin == quoted.Origin
		})).Return(booked, nil).Once()

		q, o, err := svc.Accept(ctx, customer, quoted.ID)

		assert.NoError(t, err)
		assert.Equal(t, string(domain.QuotationAccepted), q.Status)
		assert.Equal(t, booked.ID, o.ID)
		mockOrders.AssertExpectations(t)
	})

	t.Run("Only the owner decides", func(t *testing.T) {
		mockRepo := new(mocks.QuotationRepository)
		svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.OrderService), new(mocks.EmailService), zap.NewNop())

		otherID := uuid.New()
		quoted := newQuotation(&otherID, domain.QuotationQuoted)
		mockRepo.On("GetByID", ctx, quoted.ID).Return(quoted, nil).Once()

		_, _, err := svc.Accept(ctx, customer, quoted.ID)

		assert.ErrorIs(t, err, quotation.ErrAccessDenied)
	})

	t.Run("Pending is not decidable", func(t *testing.T) {
		mockRepo := new(mocks.QuotationRepository)
		svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.OrderService), new(mocks.EmailService), zap.NewNop())

		pending := newQuotation(&customerID, domain.QuotationPending)
		mockRepo.On("GetByID", ctx, pending.ID).Return(pending, nil).Once()

		_, _, err := svc.Accept(ctx, customer, pending.ID)

		assert.ErrorIs(t, err, quotation.ErrNotDecidable)
	})
}

func TestQuotationService_GetByID(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()

	mockRepo := new(mocks.QuotationRepository)
	svc := quotation.NewService(mockRepo, new(mocks.AuditLogRepository), new(mocks.OrderService), new(mocks.EmailService), zap.NewNop())

	q := newQuotation(&customerID, domain.QuotationPending)
	mockRepo.On("GetByID", ctx, q.ID).Return(q, nil)

	t.Run("Owner sees it", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &domain.User{ID: customerID, Role: string(domain.RoleCustomer)}, q.ID)
		assert.NoError(t, err)
		assert.Equal(t, q.ID, got.ID)
	})

	t.Run("Agent sees it", func(t *testing.T) {
		got, err := svc.GetByID(ctx, &domain.User{ID: uuid.New(), Role: string(domain.RoleAgent)}, q.ID)
		assert.NoError(t, err)
		assert.Equal(t, q.ID, got.ID)
	})

	t.Run("Other customer does not", func(t *testing.T) {
		_, err := svc.GetByID(ctx, &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer)}, q.ID)
		assert.ErrorIs(t, err, quotation.ErrAccessDenied)
	})
}
