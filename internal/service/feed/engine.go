package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/domain"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
)

// fetchLimit bounds each per-category pull. The checkpoint keeps the
// working set small in practice; the limit is a guard against a user who
// has never opened the dashboard.
const fetchLimit = 200

var ErrNotificationNotFound = errors.New("notification not found")

// Service is the per-user notification feed. Notifications are derived
// from the source collections on demand, never stored as rows; only the
// read map and the per-category checkpoints persist.
type Service interface {
	List(ctx context.Context, user *domain.User) ([]domain.AppNotification, error)
	Refresh(ctx context.Context, user *domain.User) ([]domain.AppNotification, error)
	UnreadCount(ctx context.Context, user *domain.User) (int, error)
	MarkAsRead(ctx context.Context, user *domain.User, notificationID string) error
	MarkAllAsRead(ctx context.Context, user *domain.User) error
	Remove(ctx context.Context, user *domain.User, notificationID string) error
	CloseSession(userID uuid.UUID)
	HandleEvent(evt realtime.Event)
}

// session is the in-memory working set for one user. removed holds ids the
// user dismissed this session; dismissal is not persisted, so a removed
// entry whose source record still clears the checkpoint comes back in the
// next session. Accepted trade-off, same as marking it read would not be.
type session struct {
	snapshot Snapshot
	state    domain.FeedState
	items    []domain.AppNotification
	removed  map[string]struct{}
	dirty    bool
	loadedAt time.Time
}

type engine struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session

	threads   repository.ThreadRepository
	orders    repository.OrderRepository
	exports   repository.ExportRequestRepository
	transfers repository.CurrencyTransferRepository
	cases     repository.LegalCaseRepository

	store Store
	hub   *realtime.Hub
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repos *repository.Repositories, store Store, hub *realtime.Hub, logger *zap.Logger) Service {
	return &engine{
		sessions:  make(map[uuid.UUID]*session),
		threads:   repos.Thread,
		orders:    repos.Order,
		exports:   repos.Export,
		transfers: repos.Currency,
		cases:     repos.LegalCase,
		store:     store,
		hub:       hub,
		log:       logger,
		now:       time.Now,
	}
}

// List returns the current feed, refreshing first if the session is new or
// a change-feed event marked it dirty.
func (e *engine) List(ctx context.Context, user *domain.User) ([]domain.AppNotification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, err := e.ensureSession(ctx, user)
	if err != nil {
		return nil, err
	}
	if sess.dirty {
		e.refreshLocked(ctx, user, sess)
	}
	return e.visibleItems(sess), nil
}

// Refresh forces a full recompute against fresh source pulls.
func (e *engine) Refresh(ctx context.Context, user *domain.User) ([]domain.AppNotification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, err := e.ensureSession(ctx, user)
	if err != nil {
		return nil, err
	}
	e.refreshLocked(ctx, user, sess)
	return e.visibleItems(sess), nil
}

func (e *engine) UnreadCount(ctx context.Context, user *domain.User) (int, error) {
	items, err := e.List(ctx, user)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkAsRead is idempotent: marking an already-read notification keeps its
// original read timestamp.
func (e *engine) MarkAsRead(ctx context.Context, user *domain.User, notificationID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, err := e.ensureSession(ctx, user)
	if err != nil {
		return err
	}

	found := false
	for i := range sess.items {
		if sess.items[i].ID == notificationID {
			sess.items[i].Read = true
			found = true
			break
		}
	}
	if !found {
		return ErrNotificationNotFound
	}

	if _, already := sess.state.ReadMap[notificationID]; !already {
		sess.state.ReadMap[notificationID] = e.now()
		e.saveState(ctx, user.ID, sess)
	}
	return nil
}

// MarkAllAsRead marks every currently derived notification read and
// advances each checkpoint to now, so records that existed before this
// moment can never resurface as unread.
func (e *engine) MarkAllAsRead(ctx context.Context, user *domain.User) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, err := e.ensureSession(ctx, user)
	if err != nil {
		return err
	}

	now := e.now()
	for i := range sess.items {
		if !sess.items[i].Read {
			sess.items[i].Read = true
			sess.state.ReadMap[sess.items[i].ID] = now
		}
	}
	for _, cat := range roleCategories(user.Role) {
		sess.state.LastSeen[cat] = now
	}
	e.saveState(ctx, user.ID, sess)
	return nil
}

// Remove hides a notification for the rest of this session only.
func (e *engine) Remove(ctx context.Context, user *domain.User, notificationID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, err := e.ensureSession(ctx, user)
	if err != nil {
		return err
	}

	for _, n := range sess.items {
		if n.ID == notificationID {
			sess.removed[notificationID] = struct{}{}
			return nil
		}
	}
	return ErrNotificationNotFound
}

// CloseSession drops the in-memory working set. Persisted state survives;
// the next List starts a fresh session from it.
func (e *engine) CloseSession(userID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, userID)
}

// HandleEvent sits on the change-feed subscriber. It marks live sessions
// dirty so their next List recomputes, and nudges connected sockets to
// re-pull. Targeted events only touch that user; the rest touch everyone
// with a session, since role gating happens inside derive anyway.
func (e *engine) HandleEvent(evt realtime.Event) {
	e.mu.Lock()
	var affected []uuid.UUID
	if evt.UserID != nil {
		if sess, ok := e.sessions[*evt.UserID]; ok {
			sess.dirty = true
			affected = append(affected, *evt.UserID)
		}
	} else {
		for userID, sess := range e.sessions {
			sess.dirty = true
			affected = append(affected, userID)
		}
	}
	e.mu.Unlock()

	if e.hub == nil {
		return
	}
	for _, userID := range affected {
		if e.hub.HasClients(userID) {
			e.hub.SendToUser(userID, realtime.Envelope{Kind: realtime.KindFeedUpdated, Table: evt.Table})
		}
	}
}

// ensureSession loads or creates the user's session. First contact for a
// category initializes its checkpoint to the newest existing record, or to
// now when the category is empty, so history never floods a first-time
// dashboard. Callers hold e.mu.
func (e *engine) ensureSession(ctx context.Context, user *domain.User) (*session, error) {
	if sess, ok := e.sessions[user.ID]; ok {
		return sess, nil
	}

	state, err := e.store.Load(ctx, user.ID)
	if err != nil {
		e.log.Warn("load feed state, starting fresh",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	sess := &session{
		state:    state,
		removed:  make(map[string]struct{}),
		loadedAt: e.now(),
	}

	if e.ensureCheckpoints(ctx, user, sess) {
		e.saveState(ctx, user.ID, sess)
	}

	e.sessions[user.ID] = sess
	e.refreshLocked(ctx, user, sess)
	return sess, nil
}

// ensureCheckpoints backfills missing per-category checkpoints and reports
// whether anything changed.
func (e *engine) ensureCheckpoints(ctx context.Context, user *domain.User, sess *session) bool {
	changed := false
	for _, cat := range roleCategories(user.Role) {
		if _, ok := sess.state.LastSeen[cat]; ok {
			continue
		}
		sess.state.LastSeen[cat] = e.newestRecordAt(ctx, cat)
		changed = true
	}
	return changed
}

// newestRecordAt returns the newest created_at in the category, or now on
// an empty category or a failed lookup. Erring toward now means at worst a
// freshly created record is missed until the next one arrives, instead of
// dumping the whole table on the user.
func (e *engine) newestRecordAt(ctx context.Context, cat domain.Category) time.Time {
	now := e.now()
	switch cat {
	case domain.CategoryOrder:
		if rows, err := e.orders.ListCreatedAfter(ctx, time.Time{}, 1); err == nil && len(rows) > 0 {
			return rows[0].CreatedAt
		}
	case domain.CategoryExport:
		if rows, err := e.exports.ListCreatedAfter(ctx, time.Time{}, 1); err == nil && len(rows) > 0 {
			return rows[0].CreatedAt
		}
	case domain.CategoryCurrency:
		if rows, err := e.transfers.ListCreatedAfter(ctx, time.Time{}, 1); err == nil && len(rows) > 0 {
			return rows[0].CreatedAt
		}
	case domain.CategoryCase:
		if rows, err := e.cases.ListCreatedAfter(ctx, time.Time{}, 1); err == nil && len(rows) > 0 {
			return rows[0].CreatedAt
		}
	}
	return now
}

// refreshLocked pulls every category the user can see and rederives the
// feed. Each pull is independent; a failed one logs and keeps the
// last-known slice so one broken source cannot blank the whole feed.
// Callers hold e.mu.
func (e *engine) refreshLocked(ctx context.Context, user *domain.User, sess *session) {
	if threads, err := e.threads.ListThreadsForUser(ctx, user.ID); err != nil {
		e.log.Warn("fetch threads for feed", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		sess.snapshot.Threads = threads
	}

	if hasCategory(user.Role, domain.CategoryOrder) {
		if orders, err := e.orders.ListCreatedAfter(ctx, sess.state.LastSeen[domain.CategoryOrder], fetchLimit); err != nil {
			e.log.Warn("fetch orders for feed", zap.String("user_id", user.ID.String()), zap.Error(err))
		} else {
			sess.snapshot.Orders = orders
		}
	}
	if hasCategory(user.Role, domain.CategoryExport) {
		if exports, err := e.exports.ListCreatedAfter(ctx, sess.state.LastSeen[domain.CategoryExport], fetchLimit); err != nil {
			e.log.Warn("fetch export requests for feed", zap.String("user_id", user.ID.String()), zap.Error(err))
		} else {
			sess.snapshot.Exports = exports
		}
	}
	if hasCategory(user.Role, domain.CategoryCurrency) {
		if transfers, err := e.transfers.ListCreatedAfter(ctx, sess.state.LastSeen[domain.CategoryCurrency], fetchLimit); err != nil {
			e.log.Warn("fetch currency transfers for feed", zap.String("user_id", user.ID.String()), zap.Error(err))
		} else {
			sess.snapshot.Transfers = transfers
		}
	}
	if hasCategory(user.Role, domain.CategoryCase) {
		if cases, err := e.cases.ListCreatedAfter(ctx, sess.state.LastSeen[domain.CategoryCase], fetchLimit); err != nil {
			e.log.Warn("fetch cases for feed", zap.String("user_id", user.ID.String()), zap.Error(err))
		} else {
			sess.snapshot.Cases = cases
		}
	}

	sess.items = derive(user, sess.snapshot, sess.state)
	sess.dirty = false
}

// visibleItems filters session-local removals out of the derived list.
func (e *engine) visibleItems(sess *session) []domain.AppNotification {
	out := make([]domain.AppNotification, 0, len(sess.items))
	for _, n := range sess.items {
		if _, gone := sess.removed[n.ID]; gone {
			continue
		}
		out = append(out, n)
	}
	return out
}

// saveState persists best effort. On failure the in-memory state still
// serves this session; the user may see re-unread notifications next
// session, which beats failing the request.
func (e *engine) saveState(ctx context.Context, userID uuid.UUID, sess *session) {
	if err := e.store.Save(ctx, userID, sess.state); err != nil {
		e.log.Warn("save feed state", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
