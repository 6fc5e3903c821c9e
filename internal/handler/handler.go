package handler

import (
	"go.uber.org/zap"

	"cargobridge/internal/realtime"
	"cargobridge/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Quotation    *QuotationHandler
	Export       *ExportHandler
	Currency     *CurrencyHandler
	Order        *OrderHandler
	Case         *CaseHandler
	Ticket       *TicketHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Contact      *ContactHandler
	Content      *ContentHandler
	Media        *MediaHandler
	Audit        *AuditHandler
	Dashboard    *DashboardHandler
	Public       *PublicHandler
	WS           *WSHandler
}

func NewHandlers(services *service.Services, hub *realtime.Hub, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Quotation:    NewQuotationHandler(services.Quotation),
		Export:       NewExportHandler(services.Export),
		Currency:     NewCurrencyHandler(services.Currency),
		Order:        NewOrderHandler(services.Order),
		Case:         NewCaseHandler(services.LegalCase),
		Ticket:       NewTicketHandler(services.Ticket),
		Message:      NewMessageHandler(services.Messaging),
		Notification: NewNotificationHandler(services.Feed),
		Contact:      NewContactHandler(services.Contact),
		Content:      NewContentHandler(services.Content),
		Media:        NewMediaHandler(services.Media),
		Audit:        NewAuditHandler(services.Audit),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Public:       NewPublicHandler(services.Quotation, services.Contact, services.Content),
		WS:           NewWSHandler(hub, services.Feed, logger),
	}
}
