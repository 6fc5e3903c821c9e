package feed

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"cargobridge/internal/domain"
)

func feedUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Role:     string(role),
		FullName: "Test User",
	}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func snapshotWithOneOfEach(base time.Time) Snapshot {
	return Snapshot{
		Orders: []domain.Order{{
			ID:        uuid.New(),
			Reference: "ORD-20260101-AB12",
			CreatedAt: base.Add(1 * time.Minute),
		}},
		Exports: []domain.ExportRequest{{
			ID:          uuid.New(),
			ProductName: "Coffee beans",
			CreatedAt:   base.Add(2 * time.Minute),
		}},
		Transfers: []domain.CurrencyTransfer{{
			ID:           uuid.New(),
			FromCurrency: "USD",
			ToCurrency:   "EUR",
			Amount:       1500,
			CreatedAt:    base.Add(3 * time.Minute),
		}},
		Cases: []domain.LegalCase{{
			ID:        uuid.New(),
			Subject:   "Customs dispute",
			CreatedAt: base.Add(4 * time.Minute),
		}},
	}
}

func stateWithCheckpoints(at time.Time) domain.FeedState {
	state := domain.NewFeedState()
	for _, cat := range domain.RoleGatedCategories {
		state.LastSeen[cat] = at
	}
	return state
}

func TestDerive_Idempotent(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := feedUser(domain.RoleAdmin)
	snap := snapshotWithOneOfEach(base)
	state := stateWithCheckpoints(base)

	first := derive(user, snap, state)
	second := derive(user, snap, state)

	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
}

func TestDerive_CheckpointGate(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := feedUser(domain.RoleAgent)

	snap := Snapshot{
		Orders: []domain.Order{
			{ID: uuid.New(), Reference: "OLD", CreatedAt: base.Add(-time.Hour)},
			{ID: uuid.New(), Reference: "AT-CHECKPOINT", CreatedAt: base},
			{ID: uuid.New(), Reference: "NEW", CreatedAt: base.Add(time.Minute)},
		},
	}
	state := stateWithCheckpoints(base)

	items := derive(user, snap, state)

	assert.Len(t, items, 1)
	assert.Equal(t, "New order NEW", items[0].Title)
}

func TestDerive_RoleGating(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	snap := snapshotWithOneOfEach(base)
	state := stateWithCheckpoints(base)

	typesFor := func(role domain.UserRole) map[domain.Category]int {
		out := make(map[domain.Category]int)
		for _, n := range derive(feedUser(role), snap, state) {
			out[n.Type]++
		}
		return out
	}

	assert.Equal(t, map[domain.Category]int{}, typesFor(domain.RoleCustomer))
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryOrder:    1,
		domain.CategoryExport:   1,
		domain.CategoryCurrency: 1,
	}, typesFor(domain.RoleAgent))
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryCase: 1,
	}, typesFor(domain.RoleLawyer))
	assert.Equal(t, map[domain.Category]int{
		domain.CategoryOrder:    1,
		domain.CategoryExport:   1,
		domain.CategoryCurrency: 1,
		domain.CategoryCase:     1,
	}, typesFor(domain.RoleAdmin))
}

func TestDerive_Messages(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := feedUser(domain.RoleCustomer)
	other := uuid.New()

	thread := func(lastMsg *time.Time, myLastRead *time.Time) domain.ThreadOverview {
		return domain.ThreadOverview{
			Thread: domain.Thread{
				ID:                 uuid.New(),
				LastMessageAt:      lastMsg,
				LastMessagePreview: strPtr("See attached invoice"),
			},
			Members: []domain.ThreadMember{
				{UserID: user.ID, LastReadAt: myLastRead},
				{UserID: other, FullName: "Ade Agent"},
			},
		}
	}

	t.Run("Unread thread surfaces", func(t *testing.T) {
		snap := Snapshot{Threads: []domain.ThreadOverview{
			thread(timePtr(base), timePtr(base.Add(-time.Hour))),
		}}
		items := derive(user, snap, domain.NewFeedState())

		assert.Len(t, items, 1)
		assert.Equal(t, domain.CategoryMessage, items[0].Type)
		assert.Equal(t, "Ade Agent", items[0].Title)
		assert.Equal(t, "See attached invoice", items[0].Description)
	})

	t.Run("Empty thread skipped", func(t *testing.T) {
		snap := Snapshot{Threads: []domain.ThreadOverview{thread(nil, nil)}}
		assert.Empty(t, derive(user, snap, domain.NewFeedState()))
	})

	t.Run("Caught-up thread skipped", func(t *testing.T) {
		snap := Snapshot{Threads: []domain.ThreadOverview{
			thread(timePtr(base), timePtr(base)),
		}}
		assert.Empty(t, derive(user, snap, domain.NewFeedState()))
	})

	t.Run("Non-member thread skipped", func(t *testing.T) {
		tv := thread(timePtr(base), nil)
		tv.Members = tv.Members[1:]
		snap := Snapshot{Threads: []domain.ThreadOverview{tv}}
		assert.Empty(t, derive(user, snap, domain.NewFeedState()))
	})

	t.Run("Title falls back to thread title", func(t *testing.T) {
		tv := thread(timePtr(base), nil)
		tv.Title = strPtr("Shipment 42")
		tv.Members[1].FullName = ""
		snap := Snapshot{Threads: []domain.ThreadOverview{tv}}
		items := derive(user, snap, domain.NewFeedState())

		assert.Len(t, items, 1)
		assert.Equal(t, "Shipment 42", items[0].Title)
	})
}

func TestDerive_DedupeAndOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := feedUser(domain.RoleAgent)

	older := domain.Order{ID: uuid.New(), Reference: "A", CreatedAt: base.Add(time.Minute)}
	newer := domain.Order{ID: uuid.New(), Reference: "B", CreatedAt: base.Add(2 * time.Minute)}

	snap := Snapshot{Orders: []domain.Order{older, newer, older}}
	items := derive(user, snap, stateWithCheckpoints(base))

	assert.Len(t, items, 2)
	assert.Equal(t, "New order B", items[0].Title)
	assert.Equal(t, "New order A", items[1].Title)
}

func TestDerive_ReadOverlay(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	user := feedUser(domain.RoleLawyer)

	lc := domain.LegalCase{ID: uuid.New(), Subject: "Demurrage claim", CreatedAt: base.Add(time.Minute)}
	snap := Snapshot{Cases: []domain.LegalCase{lc}}
	state := stateWithCheckpoints(base)

	items := derive(user, snap, state)
	assert.Len(t, items, 1)
	assert.False(t, items[0].Read)

	state.ReadMap[items[0].ID] = base.Add(2 * time.Minute)
	items = derive(user, snap, state)
	assert.Len(t, items, 1)
	assert.True(t, items[0].Read)
}

func TestNotifID_Stable(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, notifID(domain.CategoryOrder, id, at), notifID(domain.CategoryOrder, id, at))
	assert.NotEqual(t, notifID(domain.CategoryOrder, id, at), notifID(domain.CategoryOrder, id, at.Add(time.Second)))
	assert.NotEqual(t, notifID(domain.CategoryOrder, id, at), notifID(domain.CategoryCase, id, at))
}
