package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies which source collection a feed notification was
// derived from.
type Category string

const (
	CategoryMessage  Category = "message"
	CategoryOrder    Category = "order"
	CategoryExport   Category = "export"
	CategoryCurrency Category = "currency"
	CategoryCase     Category = "case"
)

// RoleGatedCategories are the categories guarded by a per-user lastSeen
// checkpoint. Messages are gated by the thread member's own last_read_at
// instead.
var RoleGatedCategories = []Category{CategoryOrder, CategoryExport, CategoryCurrency, CategoryCase}

// AppNotification is synthesized from source records on every
// reconciliation pass; it is never stored server-side as a row. The ID is a
// stable composite of category, source id and source timestamp so repeated
// recomputes never duplicate an entry.
type AppNotification struct {
	ID          string    `json:"id"`
	Type        Category  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Read        bool      `json:"read"`
	Meta        Metadata  `json:"metadata"`
}

// Metadata is a sealed per-category variant: each notification carries only
// the fields relevant to its type, and click routing can switch on the
// concrete type exhaustively.
type Metadata interface {
	notificationMeta()
}

type MessageMeta struct {
	ThreadID uuid.UUID `json:"thread_id"`
}

type OrderMeta struct {
	OrderID   uuid.UUID `json:"order_id"`
	Reference string    `json:"reference,omitempty"`
}

type ExportMeta struct {
	ExportRequestID uuid.UUID `json:"export_request_id"`
}

type CurrencyMeta struct {
	TransferID uuid.UUID `json:"transfer_id"`
}

type CaseMeta struct {
	CaseID uuid.UUID `json:"case_id"`
}

func (MessageMeta) notificationMeta()  {}
func (OrderMeta) notificationMeta()    {}
func (ExportMeta) notificationMeta()   {}
func (CurrencyMeta) notificationMeta() {}
func (CaseMeta) notificationMeta()     {}

// DashboardTarget tells the client which dashboard tab (and optional
// sub-view) a notification click should open. It replaces the old ad hoc
// navigate-dashboard-tab / agent-orders-view browser events.
type DashboardTarget struct {
	Tab  string `json:"tab"`
	View string `json:"view,omitempty"`
}

func (n AppNotification) Target() DashboardTarget {
	switch n.Meta.(type) {
	case MessageMeta:
		return DashboardTarget{Tab: "messages"}
	case OrderMeta:
		return DashboardTarget{Tab: "orders", View: "incoming"}
	case ExportMeta:
		return DashboardTarget{Tab: "exports"}
	case CurrencyMeta:
		return DashboardTarget{Tab: "currency"}
	case CaseMeta:
		return DashboardTarget{Tab: "cases"}
	default:
		return DashboardTarget{Tab: "overview"}
	}
}

// FeedState is the per-user persisted notification state: which synthesized
// ids have been read, and per category, the timestamp below which records
// are considered already seen. Stored as one JSON value per user; stale
// read_map entries are harmless.
type FeedState struct {
	ReadMap  map[string]time.Time   `json:"read_map"`
	LastSeen map[Category]time.Time `json:"last_seen"`
}

func NewFeedState() FeedState {
	return FeedState{
		ReadMap:  make(map[string]time.Time),
		LastSeen: make(map[Category]time.Time),
	}
}

func (s FeedState) Clone() FeedState {
	out := NewFeedState()
	for k, v := range s.ReadMap {
		out.ReadMap[k] = v
	}
	for k, v := range s.LastSeen {
		out.LastSeen[k] = v
	}
	return out
}
