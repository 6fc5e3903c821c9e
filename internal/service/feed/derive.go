package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cargobridge/internal/domain"
)

// Snapshot is the current pull of every source collection the feed reads.
// Category fetches are independent; a failed fetch leaves the previous
// value in place, so a Snapshot may mix fresh and last-known data.
type Snapshot struct {
	Threads   []domain.ThreadOverview
	Orders    []domain.Order
	Exports   []domain.ExportRequest
	Transfers []domain.CurrencyTransfer
	Cases     []domain.LegalCase
}

// roleCategories returns the checkpoint-gated categories a role receives.
// Message notifications are not listed: they are gated per thread member,
// not per checkpoint, and every role gets them.
func roleCategories(role string) []domain.Category {
	switch role {
	case string(domain.RoleAgent):
		return []domain.Category{domain.CategoryOrder, domain.CategoryExport, domain.CategoryCurrency}
	case string(domain.RoleLawyer):
		return []domain.Category{domain.CategoryCase}
	case string(domain.RoleAdmin):
		return domain.RoleGatedCategories
	default:
		return nil
	}
}

func hasCategory(role string, cat domain.Category) bool {
	for _, c := range roleCategories(role) {
		if c == cat {
			return true
		}
	}
	return false
}

// derive is the reconciliation fold: a pure function of the user, the
// source snapshot and the persisted state. Running it twice with the same
// inputs yields the same output. Checkpoints must already be initialized
// (see Engine.ensureCheckpoints).
func derive(user *domain.User, snap Snapshot, state domain.FeedState) []domain.AppNotification {
	var merged []domain.AppNotification

	merged = append(merged, deriveMessages(user.ID, snap.Threads)...)

	if hasCategory(user.Role, domain.CategoryOrder) {
		merged = append(merged, deriveOrders(snap.Orders, state.LastSeen[domain.CategoryOrder])...)
	}
	if hasCategory(user.Role, domain.CategoryExport) {
		merged = append(merged, deriveExports(snap.Exports, state.LastSeen[domain.CategoryExport])...)
	}
	if hasCategory(user.Role, domain.CategoryCurrency) {
		merged = append(merged, deriveTransfers(snap.Transfers, state.LastSeen[domain.CategoryCurrency])...)
	}
	if hasCategory(user.Role, domain.CategoryCase) {
		merged = append(merged, deriveCases(snap.Cases, state.LastSeen[domain.CategoryCase])...)
	}

	// Dedupe by id, first occurrence wins, then newest first.
	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	for _, n := range merged {
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	for i := range out {
		_, read := state.ReadMap[out[i].ID]
		out[i].Read = read
	}
	return out
}

// deriveMessages emits one notification per thread whose last message is
// newer than the member's own last_read_at. The id embeds the last-message
// timestamp, so a newer message on the same thread is a new notification.
func deriveMessages(userID uuid.UUID, threads []domain.ThreadOverview) []domain.AppNotification {
	var out []domain.AppNotification
	for _, t := range threads {
		if t.LastMessageAt == nil {
			continue
		}

		var me *domain.ThreadMember
		var others []string
		for i := range t.Members {
			if t.Members[i].UserID == userID {
				me = &t.Members[i]
			} else if t.Members[i].FullName != "" {
				others = append(others, t.Members[i].FullName)
			}
		}
		if me == nil {
			continue
		}
		if me.LastReadAt != nil && !t.LastMessageAt.After(*me.LastReadAt) {
			continue
		}

		title := strings.Join(others, ", ")
		if title == "" {
			if t.Title != nil && *t.Title != "" {
				title = *t.Title
			} else {
				title = "New message"
			}
		}

		description := "You have a new message"
		if t.LastMessagePreview != nil && *t.LastMessagePreview != "" {
			description = *t.LastMessagePreview
		}

		out = append(out, domain.AppNotification{
			ID:          notifID(domain.CategoryMessage, t.ID, *t.LastMessageAt),
			Type:        domain.CategoryMessage,
			Title:       title,
			Description: description,
			CreatedAt:   *t.LastMessageAt,
			Meta:        domain.MessageMeta{ThreadID: t.ID},
		})
	}
	return out
}

func deriveOrders(orders []domain.Order, checkpoint time.Time) []domain.AppNotification {
	var out []domain.AppNotification
	for _, o := range orders {
		if !o.CreatedAt.After(checkpoint) {
			continue
		}
		out = append(out, domain.AppNotification{
			ID:          notifID(domain.CategoryOrder, o.ID, o.CreatedAt),
			Type:        domain.CategoryOrder,
			Title:       fmt.Sprintf("New order %s", o.Reference),
			Description: fmt.Sprintf("%s to %s, status %s", orDefault(o.Origin, "unknown origin"), orDefault(o.Destination, "unknown destination"), orDefault(o.Status, "new")),
			CreatedAt:   o.CreatedAt,
			Meta:        domain.OrderMeta{OrderID: o.ID, Reference: o.Reference},
		})
	}
	return out
}

func deriveExports(requests []domain.ExportRequest, checkpoint time.Time) []domain.AppNotification {
	var out []domain.AppNotification
	for _, req := range requests {
		if !req.CreatedAt.After(checkpoint) {
			continue
		}
		out = append(out, domain.AppNotification{
			ID:          notifID(domain.CategoryExport, req.ID, req.CreatedAt),
			Type:        domain.CategoryExport,
			Title:       "New export request",
			Description: fmt.Sprintf("%s, %s to %s", req.ProductName, orDefault(req.Origin, "unknown origin"), orDefault(req.Destination, "unknown destination")),
			CreatedAt:   req.CreatedAt,
			Meta:        domain.ExportMeta{ExportRequestID: req.ID},
		})
	}
	return out
}

func deriveTransfers(transfers []domain.CurrencyTransfer, checkpoint time.Time) []domain.AppNotification {
	var out []domain.AppNotification
	for _, t := range transfers {
		if !t.CreatedAt.After(checkpoint) {
			continue
		}
		out = append(out, domain.AppNotification{
			ID:          notifID(domain.CategoryCurrency, t.ID, t.CreatedAt),
			Type:        domain.CategoryCurrency,
			Title:       "New currency transfer request",
			Description: fmt.Sprintf("%.2f %s to %s", t.Amount, t.FromCurrency, t.ToCurrency),
			CreatedAt:   t.CreatedAt,
			Meta:        domain.CurrencyMeta{TransferID: t.ID},
		})
	}
	return out
}

func deriveCases(cases []domain.LegalCase, checkpoint time.Time) []domain.AppNotification {
	var out []domain.AppNotification
	for _, lc := range cases {
		if !lc.CreatedAt.After(checkpoint) {
			continue
		}
		out = append(out, domain.AppNotification{
			ID:          notifID(domain.CategoryCase, lc.ID, lc.CreatedAt),
			Type:        domain.CategoryCase,
			Title:       "New legal case",
			Description: fmt.Sprintf("%s, status %s", lc.Subject, orDefault(lc.Status, "open")),
			CreatedAt:   lc.CreatedAt,
			Meta:        domain.CaseMeta{CaseID: lc.ID},
		})
	}
	return out
}

// notifID is stable for a given (category, record, record timestamp)
// triple, which is what keeps recomputation from duplicating entries.
func notifID(cat domain.Category, sourceID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s:%s:%d", cat, sourceID, at.UnixNano())
}

func orDefault(s *string, def string) string {
	if s != nil && *s != "" {
		return *s
	}
	return def
}
