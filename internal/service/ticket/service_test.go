package ticket_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
	"cargobridge/internal/service/ticket"
	"cargobridge/tests/mocks"
)

func openTicket(ownerID uuid.UUID) *domain.Ticket {
	return &domain.Ticket{
		ID:       uuid.New(),
		UserID:   ownerID,
		Subject:  "Damaged container",
		Body:     "Container arrived with a dented door.",
		Priority: "normal",
		Status:   string(domain.TicketOpen),
	}
}

func TestTicketService_Create(t *testing.T) {
	mockRepo := new(mocks.TicketRepository)
	svc := ticket.NewService(mockRepo)

	ctx := context.Background()
	userID := uuid.New()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.UserID == userID &&
			tk.Status == string(domain.TicketOpen) &&
			tk.Priority == "normal"
	})).Return(nil).Once()

	// Priority defaults when the input leaves it blank.
	created, err := svc.Create(ctx, userID, domain.CreateTicketInput{
		Subject: "Damaged container",
		Body:    "Container arrived with a dented door.",
	})

	assert.NoError(t, err)
	assert.Equal(t, "normal", created.Priority)
	mockRepo.AssertExpectations(t)
}

func TestTicketService_Reply(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := &domain.User{ID: ownerID, Role: string(domain.RoleCustomer)}
	agent := &domain.User{ID: uuid.New(), Role: string(domain.RoleAgent)}
	input := domain.ReplyTicketInput{Body: "We are looking into it."}

	t.Run("Staff reply moves open ticket to in_progress", func(t *testing.T) {
		mockRepo := new(mocks.TicketRepository)
		svc := ticket.NewService(mockRepo)

		tk := openTicket(ownerID)
		mockRepo.On("GetByID", ctx, tk.ID).Return(tk, nil).Once()
		mockRepo.On("CreateReply", ctx, mock.MatchedBy(func(r *domain.TicketReply) bool {
			return r.TicketID == tk.ID && r.AuthorID == agent.ID
		})).Return(nil).Once()
		mockRepo.On("SetStatus", ctx, tk.ID, string(domain.TicketInProgress)).Return(nil).Once()

		reply, err := svc.Reply(ctx, agent, tk.ID, input)

		assert.NoError(t, err)
		assert.Equal(t, input.Body, reply.Body)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Owner reply leaves status alone", func(t *testing.T) {
		mockRepo := new(mocks.TicketRepository)
		svc := ticket.NewService(mockRepo)

		tk := openTicket(ownerID)
		mockRepo.On("GetByID", ctx, tk.ID).Return(tk, nil).Once()
		mockRepo.On("CreateReply", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Reply(ctx, owner, tk.ID, input)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Closed ticket rejects replies", func(t *testing.T) {
		mockRepo := new(mocks.TicketRepository)
		svc := ticket.NewService(mockRepo)

		tk := openTicket(ownerID)
		tk.Status = string(domain.TicketClosed)
		mockRepo.On("GetByID", ctx, tk.ID).Return(tk, nil).Once()

		_, err := svc.Reply(ctx, owner, tk.ID, input)

		assert.ErrorIs(t, err, ticket.ErrTicketClosed)
	})

	t.Run("Stranger denied", func(t *testing.T) {
		mockRepo := new(mocks.TicketRepository)
		svc := ticket.NewService(mockRepo)

		tk := openTicket(ownerID)
		stranger := &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer)}
		mockRepo.On("GetByID", ctx, tk.ID).Return(tk, nil).Once()

		_, err := svc.Reply(ctx, stranger, tk.ID, input)

		assert.ErrorIs(t, err, ticket.ErrAccessDenied)
	})
}

func TestTicketService_SetStatus(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := &domain.User{ID: ownerID, Role: string(domain.RoleCustomer)}

	t.Run("Invalid status", func(t *testing.T) {
		svc := ticket.NewService(new(mocks.TicketRepository))

		err := svc.SetStatus(ctx, owner, uuid.New(), "escalated")

		assert.ErrorIs(t, err, ticket.ErrInvalidStatus)
	})

	t.Run("Owner closes their ticket", func(t *testing.T) {
		mockRepo := new(mocks.TicketRepository)
		svc := ticket.NewService(mockRepo)

		tk := openTicket(ownerID)
		mockRepo.On("GetByID", ctx, tk.ID).Return(tk, nil).Once()
		mockRepo.On("SetStatus", ctx, tk.ID, string(domain.TicketClosed)).Return(nil).Once()

		assert.NoError(t, svc.SetStatus(ctx, owner, tk.ID, string(domain.TicketClosed)))
		mockRepo.AssertExpectations(t)
	})
}
