package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Quotation  QuotationRepository
	Export     ExportRequestRepository
	Currency   CurrencyTransferRepository
	Order      OrderRepository
	LegalCase  LegalCaseRepository
	Ticket     TicketRepository
	Thread     ThreadRepository
	Contact    ContactRepository
	Content    ContentRepository
	Attachment AttachmentRepository
	AuditLog   AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Quotation:  NewQuotationRepository(db),
		Export:     NewExportRequestRepository(db),
		Currency:   NewCurrencyTransferRepository(db),
		Order:      NewOrderRepository(db),
		LegalCase:  NewLegalCaseRepository(db),
		Ticket:     NewTicketRepository(db),
		Thread:     NewThreadRepository(db),
		Contact:    NewContactRepository(db),
		Content:    NewContentRepository(db),
		Attachment: NewAttachmentRepository(db),
		AuditLog:   NewAuditLogRepository(db),
	}
}
