package feed

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
	"cargobridge/tests/mocks"
)

type engineMocks struct {
	threads   *mocks.ThreadRepository
	orders    *mocks.OrderRepository
	exports   *mocks.ExportRequestRepository
	transfers *mocks.CurrencyTransferRepository
	cases     *mocks.LegalCaseRepository
	store     *mocks.FeedStore
}

func newTestEngine(now time.Time) (*engine, *engineMocks) {
	m := &engineMocks{
		threads:   new(mocks.ThreadRepository),
		orders:    new(mocks.OrderRepository),
		exports:   new(mocks.ExportRequestRepository),
		transfers: new(mocks.CurrencyTransferRepository),
		cases:     new(mocks.LegalCaseRepository),
		store:     new(mocks.FeedStore),
	}
	repos := &repository.Repositories{
		Thread:    m.threads,
		Order:     m.orders,
		Export:    m.exports,
		Currency:  m.transfers,
		LegalCase: m.cases,
	}
	e := NewService(repos, m.store, nil, zap.NewNop()).(*engine)
	e.now = func() time.Time { return now }
	return e, m
}

// lawyerState is a persisted state whose case checkpoint is already set, so
// session setup skips the backfill and its extra save.
func lawyerState(checkpoint time.Time) domain.FeedState {
	state := domain.NewFeedState()
	state.LastSeen[domain.CategoryCase] = checkpoint
	return state
}

func TestEngine_FirstSessionStartsAtNewestRecord(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	existing := domain.LegalCase{ID: uuid.New(), Subject: "Old dispute", CreatedAt: now.Add(-time.Hour)}

	m.store.On("Load", mock.Anything, user.ID).Return(domain.NewFeedState(), nil).Once()
	m.cases.On("ListCreatedAfter", mock.Anything, time.Time{}, 1).Return([]domain.LegalCase{existing}, nil).Once()
	m.store.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil).Once()
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, existing.CreatedAt, fetchLimit).Return([]domain.LegalCase{}, nil)

	items, err := e.List(ctx, user)

	assert.NoError(t, err)
	assert.Empty(t, items)
	m.store.AssertExpectations(t)
	m.cases.AssertExpectations(t)
}

func TestEngine_FirstSessionEmptyCategoryStartsNow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	m.store.On("Load", mock.Anything, user.ID).Return(domain.NewFeedState(), nil).Once()
	m.cases.On("ListCreatedAfter", mock.Anything, time.Time{}, 1).Return([]domain.LegalCase{}, nil).Once()
	m.store.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil).Once()
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, now, fetchLimit).Return([]domain.LegalCase{}, nil)

	items, err := e.List(ctx, user)

	assert.NoError(t, err)
	assert.Empty(t, items)
	m.cases.AssertExpectations(t)
}

func TestEngine_MarkAllAsRead(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-time.Hour)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	fresh := domain.LegalCase{ID: uuid.New(), Subject: "New claim", CreatedAt: now.Add(-time.Minute)}

	m.store.On("Load", mock.Anything, user.ID).Return(lawyerState(checkpoint), nil).Once()
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).Return([]domain.LegalCase{fresh}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, now, fetchLimit).Return([]domain.LegalCase{}, nil)
	m.store.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil)

	count, err := e.UnreadCount(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.NoError(t, e.MarkAllAsRead(ctx, user))

	count, err = e.UnreadCount(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	// The checkpoint moved to now, so a full recompute pulls nothing.
	items, err := e.Refresh(ctx, user)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestEngine_MarkAsRead(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-time.Hour)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	fresh := domain.LegalCase{ID: uuid.New(), Subject: "New claim", CreatedAt: now.Add(-time.Minute)}

	m.store.On("Load", mock.Anything, user.ID).Return(lawyerState(checkpoint), nil).Once()
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).Return([]domain.LegalCase{fresh}, nil)
	m.store.On("Save", mock.Anything, user.ID, mock.Anything).Return(nil)

	items, err := e.List(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	assert.NoError(t, e.MarkAsRead(ctx, user, items[0].ID))

	// Marking again is a no-op, not a second state write.
	assert.NoError(t, e.MarkAsRead(ctx, user, items[0].ID))
	m.store.AssertNumberOfCalls(t, "Save", 1)

	assert.ErrorIs(t, e.MarkAsRead(ctx, user, "no-such-id"), ErrNotificationNotFound)

	count, err := e.UnreadCount(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEngine_RemoveIsSessionLocal(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-time.Hour)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	fresh := domain.LegalCase{ID: uuid.New(), Subject: "New claim", CreatedAt: now.Add(-time.Minute)}

	m.store.On("Load", mock.Anything, user.ID).Return(lawyerState(checkpoint), nil)
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).Return([]domain.LegalCase{fresh}, nil)

	items, err := e.List(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	assert.NoError(t, e.Remove(ctx, user, items[0].ID))

	items, err = e.List(ctx, user)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// Removal survives a recompute within the session.
	items, err = e.Refresh(ctx, user)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// But not across sessions: dismissal is never persisted.
	e.CloseSession(user.ID)
	items, err = e.List(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	assert.ErrorIs(t, e.Remove(ctx, user, "no-such-id"), ErrNotificationNotFound)
}

func TestEngine_StoreFailuresDegrade(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	m.store.On("Load", mock.Anything, user.ID).Return(domain.NewFeedState(), assert.AnError).Once()
	m.cases.On("ListCreatedAfter", mock.Anything, time.Time{}, 1).Return([]domain.LegalCase{}, nil).Once()
	m.store.On("Save", mock.Anything, user.ID, mock.Anything).Return(assert.AnError)
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, now, fetchLimit).Return([]domain.LegalCase{}, nil)

	// Neither the failed load nor the failed save surfaces to the caller.
	items, err := e.List(ctx, user)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestEngine_SourceFailureKeepsLastKnown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-time.Hour)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	fresh := domain.LegalCase{ID: uuid.New(), Subject: "New claim", CreatedAt: now.Add(-time.Minute)}

	m.store.On("Load", mock.Anything, user.ID).Return(lawyerState(checkpoint), nil).Once()
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).
		Return([]domain.LegalCase{fresh}, nil).Once()
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).
		Return([]domain.LegalCase(nil), assert.AnError)

	items, err := e.List(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	// The case pull now fails; the previous snapshot still serves.
	items, err = e.Refresh(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEngine_HandleEventMarksSessionDirty(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-time.Hour)
	e, m := newTestEngine(now)
	user := feedUser(domain.RoleLawyer)
	ctx := context.Background()

	fresh := domain.LegalCase{ID: uuid.New(), Subject: "New claim", CreatedAt: now.Add(-time.Minute)}

	m.store.On("Load", mock.Anything, user.ID).Return(lawyerState(checkpoint), nil).Once()
	m.threads.On("ListThreadsForUser", mock.Anything, user.ID).Return([]domain.ThreadOverview{}, nil)
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).
		Return([]domain.LegalCase{}, nil).Once()
	m.cases.On("ListCreatedAfter", mock.Anything, checkpoint, fetchLimit).
		Return([]domain.LegalCase{fresh}, nil).Once()

	items, err := e.List(ctx, user)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// An event targeted at someone else leaves this session alone.
	otherID := uuid.New()
	e.HandleEvent(realtime.Event{Table: realtime.TableCases, UserID: &otherID})
	items, err = e.List(ctx, user)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// A broadcast event forces the next List to recompute.
	e.HandleEvent(realtime.Event{Table: realtime.TableCases})
	items, err = e.List(ctx, user)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	m.cases.AssertExpectations(t)
}
