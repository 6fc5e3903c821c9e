package messaging_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/service/messaging"
	"cargobridge/tests/mocks"
)

func TestMessagingService_SendMessage(t *testing.T) {
	ctx := context.Background()
	sender := &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer), FullName: "Budi"}
	threadID := uuid.New()
	input := domain.SendMessageInput{Body: "Is the shipment confirmed?"}

	t.Run("Not a member", func(t *testing.T) {
		mockThreads := new(mocks.ThreadRepository)
		svc := messaging.NewService(mockThreads, new(mocks.UserRepository), new(mocks.Publisher), zap.NewNop())

		mockThreads.On("IsMember", ctx, threadID, sender.ID).Return(false, nil).Once()

		_, err := svc.SendMessage(ctx, sender, threadID, input)

		assert.ErrorIs(t, err, messaging.ErrNotAMember)
	})

	t.Run("Targets each recipient", func(t *testing.T) {
		mockThreads := new(mocks.ThreadRepository)
		mockPublisher := new(mocks.Publisher)
		svc := messaging.NewService(mockThreads, new(mocks.UserRepository), mockPublisher, zap.NewNop())

		recipientA := uuid.New()
		recipientB := uuid.New()
		members := []domain.ThreadMember{
			{ThreadID: threadID, UserID: sender.ID},
			{ThreadID: threadID, UserID: recipientA},
			{ThreadID: threadID, UserID: recipientB},
		}

		mockThreads.On("IsMember", ctx, threadID, sender.ID).Return(true, nil).Once()
		mockThreads.On("CreateMessage", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.ThreadID == threadID && m.SenderID == sender.ID && m.Body == input.Body
		})).Return(nil).Once()
		mockThreads.On("GetMembers", ctx, threadID).Return(members, nil).Once()
		mockPublisher.On("Publish", ctx, mock.MatchedBy(func(evt realtime.Event) bool {
			return evt.Table == realtime.TableMessages && evt.UserID != nil && *evt.UserID == recipientA
		})).Once()
		mockPublisher.On("Publish", ctx, mock.MatchedBy(func(evt realtime.Event) bool {
			return evt.Table == realtime.TableMessages && evt.UserID != nil && *evt.UserID == recipientB
		})).Once()

		msg, err := svc.SendMessage(ctx, sender, threadID, input)

		assert.NoError(t, err)
		assert.Equal(t, input.Body, msg.Body)
		mockPublisher.AssertExpectations(t)
	})
}

func TestMessagingService_CreateThread(t *testing.T) {
	ctx := context.Background()
	creator := &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer), FullName: "Budi"}

	t.Run("Needs another member", func(t *testing.T) {
		svc := messaging.NewService(new(mocks.ThreadRepository), new(mocks.UserRepository), new(mocks.Publisher), zap.NewNop())

		// Listing only yourself collapses to a one-member thread.
		_, err := svc.CreateThread(ctx, creator, domain.CreateThreadInput{
			MemberIDs: []uuid.UUID{creator.ID},
			Body:      "hello",
		})

		assert.ErrorIs(t, err, messaging.ErrNoMembers)
	})

	t.Run("Success posts the first message", func(t *testing.T) {
		mockThreads := new(mocks.ThreadRepository)
		mockUsers := new(mocks.UserRepository)
		mockPublisher := new(mocks.Publisher)
		svc := messaging.NewService(mockThreads, mockUsers, mockPublisher, zap.NewNop())

		otherID := uuid.New()
		other := &domain.User{ID: otherID, FullName: "Ade Agent"}

		mockUsers.On("GetByID", ctx, otherID).Return(other, nil).Once()
		mockThreads.On("CreateThread", ctx, mock.AnythingOfType("*domain.Thread"), mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 2
		})).Return(nil).Once()
		mockThreads.On("IsMember", ctx, mock.AnythingOfType("uuid.UUID"), creator.ID).Return(true, nil).Once()
		mockThreads.On("CreateMessage", ctx, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Body == "hello" && m.SenderID == creator.ID
		})).Return(nil).Once()
		mockThreads.On("GetMembers", ctx, mock.AnythingOfType("uuid.UUID")).Return([]domain.ThreadMember{
			{UserID: creator.ID, FullName: creator.FullName},
			{UserID: otherID, FullName: other.FullName},
		}, nil)
		mockThreads.On("GetThread", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, nil).Once()
		mockPublisher.On("Publish", ctx, mock.Anything).Maybe()

		overview, err := svc.CreateThread(ctx, creator, domain.CreateThreadInput{
			MemberIDs: []uuid.UUID{otherID},
			Body:      "hello",
		})

		assert.NoError(t, err)
		assert.Len(t, overview.Members, 2)
		mockThreads.AssertExpectations(t)
	})

	t.Run("Unknown member rejected", func(t *testing.T) {
		mockThreads := new(mocks.ThreadRepository)
		mockUsers := new(mocks.UserRepository)
		svc := messaging.NewService(mockThreads, mockUsers, new(mocks.Publisher), zap.NewNop())

		ghostID := uuid.New()
		mockUsers.On("GetByID", ctx, ghostID).Return(nil, nil).Once()

		_, err := svc.CreateThread(ctx, creator, domain.CreateThreadInput{
			MemberIDs: []uuid.UUID{ghostID},
			Body:      "hello",
		})

		assert.Error(t, err)
	})
}

func TestMessagingService_ListMessages(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer)}
	threadID := uuid.New()

	mockThreads := new(mocks.ThreadRepository)
	svc := messaging.NewService(mockThreads, new(mocks.UserRepository), new(mocks.Publisher), zap.NewNop())

	mockThreads.On("IsMember", ctx, threadID, user.ID).Return(false, nil).Once()

	_, err := svc.ListMessages(ctx, user, threadID, domain.DefaultPagination())

	assert.ErrorIs(t, err, messaging.ErrNotAMember)
}

func TestMessagingService_MarkThreadRead(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Role: string(domain.RoleCustomer)}
	threadID := uuid.New()

	mockThreads := new(mocks.ThreadRepository)
	svc := messaging.NewService(mockThreads, new(mocks.UserRepository), new(mocks.Publisher), zap.NewNop())

	mockThreads.On("IsMember", ctx, threadID, user.ID).Return(true, nil).Once()
	mockThreads.On("MarkThreadRead", ctx, threadID, user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	assert.NoError(t, svc.MarkThreadRead(ctx, user, threadID))
	mockThreads.AssertExpectations(t)
}
