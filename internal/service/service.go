package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cargobridge/internal/config"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
	"cargobridge/internal/service/audit"
	"cargobridge/internal/service/auth"
	"cargobridge/internal/service/contact"
	"cargobridge/internal/service/content"
	"cargobridge/internal/service/currency"
	"cargobridge/internal/service/dashboard"
	"cargobridge/internal/service/email"
	"cargobridge/internal/service/exportreq"
	"cargobridge/internal/service/feed"
	"cargobridge/internal/service/legalcase"
	"cargobridge/internal/service/media"
	"cargobridge/internal/service/messaging"
	"cargobridge/internal/service/order"
	"cargobridge/internal/service/quotation"
	"cargobridge/internal/service/ticket"
	"cargobridge/internal/service/user"
)

type Services struct {
	Auth      auth.Service
	User      user.Service
	Quotation quotation.Service
	Export    exportreq.Service
	Currency  currency.Service
	Order     order.Service
	LegalCase legalcase.Service
	Ticket    ticket.Service
	Messaging messaging.Service
	Contact   contact.Service
	Content   content.Service
	Media     media.Service
	Email     email.Service
	Audit     audit.Service
	Dashboard dashboard.Service
	Feed      feed.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, hub *realtime.Hub, cfg *config.Config, logger *zap.Logger) *Services {
	publisher := realtime.NewPublisher(redisClient, logger)

	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg, logger)
	userService := user.NewService(repos.User, repos.AuditLog)
	orderService := order.NewService(repos.Order, repos.AuditLog, publisher, logger)
	quotationService := quotation.NewService(repos.Quotation, repos.AuditLog, orderService, emailService, logger)
	exportService := exportreq.NewService(repos.Export, repos.AuditLog, publisher, logger)
	currencyService := currency.NewService(repos.Currency, repos.AuditLog, publisher, logger)
	caseService := legalcase.NewService(repos.LegalCase, repos.AuditLog, publisher, logger)
	ticketService := ticket.NewService(repos.Ticket)
	messagingService := messaging.NewService(repos.Thread, repos.User, publisher, logger)
	contactService := contact.NewService(repos.Contact, emailService, logger)
	contentService := content.NewService(repos.Content, repos.AuditLog)
	mediaService := media.NewService(repos.Attachment, repos.Ticket, repos.LegalCase, minioClient, cfg, logger)
	auditService := audit.NewService(repos.AuditLog)
	dashboardService := dashboard.NewService(repos, redisClient)

	feedStore := feed.NewRedisStore(redisClient)
	feedService := feed.NewService(repos, feedStore, hub, logger)

	return &Services{
		Auth:      authService,
		User:      userService,
		Quotation: quotationService,
		Export:    exportService,
		Currency:  currencyService,
		Order:     orderService,
		LegalCase: caseService,
		Ticket:    ticketService,
		Messaging: messagingService,
		Contact:   contactService,
		Content:   contentService,
		Media:     mediaService,
		Email:     emailService,
		Audit:     auditService,
		Dashboard: dashboardService,
		Feed:      feedService,
	}
}
