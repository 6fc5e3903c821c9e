package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cargobridge/internal/config"
	"cargobridge/internal/handler"
	"cargobridge/internal/middleware"
	"cargobridge/internal/realtime"
	"cargobridge/internal/repository"
	"cargobridge/internal/service"
	"cargobridge/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		logger.Warn("connect to MinIO, attachments will not work", zap.Error(err))
	}

	hub := realtime.NewHub(logger)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, hub, cfg, logger)
	handlers := handler.NewHandlers(services, hub, logger)

	// Change-feed events fan out to the notification engine first so a
	// socket nudge never races a stale feed.
	subscriber := realtime.NewSubscriber(redisClient, logger, services.Feed, hub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go subscriber.Run(ctx)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth, cfg, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, cfg *config.Config, logger *zap.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRatePerMinute, logger)
	publicLimiter := middleware.NewIPRateLimiter(cfg.PublicRatePerMinute, logger)

	v1 := app.Group("/api/v1")

	public := v1.Group("/public", publicLimiter.Handler())
	public.Post("/quotations", h.Public.RequestQuotation)
	public.Post("/contact", h.Public.SubmitContact)
	public.Get("/pages", h.Public.ListPages)
	public.Get("/pages/:slug", h.Public.GetPage)

	authGroup := v1.Group("/auth", authLimiter.Handler())
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerificationEmail)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Get("/ws", h.WS.Upgrade, h.WS.Serve())

	users := protected.Group("/users")
	users.Get("/me", h.Auth.Me)
	users.Put("/me", h.User.UpdateMe)
	users.Get("/", middleware.RequireRole("admin"), h.User.List)
	users.Get("/by-role/:role", middleware.RequireRole("admin"), h.User.ListByRole)
	users.Get("/:id", middleware.RequireRole("admin"), h.User.Get)
	users.Post("/assign-role", middleware.RequireRole("admin"), h.User.AssignRole)
	users.Delete("/:id", middleware.RequireRole("admin"), h.User.Deactivate)

	quotations := protected.Group("/quotations")
	quotations.Post("/", h.Quotation.Create)
	quotations.Get("/mine", h.Quotation.ListMine)
	quotations.Get("/", middleware.RequireAnyRole("agent", "admin"), h.Quotation.List)
	quotations.Get("/:id", h.Quotation.Get)
	quotations.Post("/:id/quote", middleware.RequireAnyRole("agent", "admin"), h.Quotation.Quote)
	quotations.Post("/:id/accept", h.Quotation.Accept)
	quotations.Post("/:id/reject", h.Quotation.Reject)

	orders := protected.Group("/orders")
	orders.Post("/", h.Order.Create)
	orders.Get("/mine", h.Order.ListMine)
	orders.Get("/assigned", middleware.RequireAnyRole("agent", "admin"), h.Order.ListAssigned)
	orders.Get("/", middleware.RequireAnyRole("agent", "admin"), h.Order.List)
	orders.Get("/:id", h.Order.Get)
	orders.Patch("/:id", middleware.RequireAnyRole("agent", "admin"), h.Order.Update)

	exports := protected.Group("/export-requests")
	exports.Post("/", h.Export.Create)
	exports.Get("/mine", h.Export.ListMine)
	exports.Get("/", middleware.RequireAnyRole("agent", "admin"), h.Export.List)
	exports.Get("/:id", h.Export.Get)
	exports.Patch("/:id", middleware.RequireAnyRole("agent", "admin"), h.Export.Update)

	transfers := protected.Group("/currency-transfers")
	transfers.Post("/", h.Currency.Create)
	transfers.Get("/mine", h.Currency.ListMine)
	transfers.Get("/", middleware.RequireAnyRole("agent", "admin"), h.Currency.List)
	transfers.Get("/:id", h.Currency.Get)
	transfers.Patch("/:id", middleware.RequireAnyRole("agent", "admin"), h.Currency.Update)

	cases := protected.Group("/cases")
	cases.Post("/", h.Case.Create)
	cases.Get("/mine", h.Case.ListMine)
	cases.Get("/assigned", middleware.RequireAnyRole("lawyer", "admin"), h.Case.ListAssigned)
	cases.Get("/", middleware.RequireAnyRole("lawyer", "admin"), h.Case.List)
	cases.Get("/:id", h.Case.Get)
	cases.Patch("/:id", middleware.RequireAnyRole("lawyer", "admin"), h.Case.Update)

	tickets := protected.Group("/tickets")
	tickets.Post("/", h.Ticket.Create)
	tickets.Get("/mine", h.Ticket.ListMine)
	tickets.Get("/", middleware.RequireAnyRole("agent", "admin"), h.Ticket.List)
	tickets.Get("/:id", h.Ticket.Get)
	tickets.Post("/:id/replies", h.Ticket.Reply)
	tickets.Patch("/:id/status", h.Ticket.SetStatus)

	threads := protected.Group("/threads")
	threads.Post("/", h.Message.CreateThread)
	threads.Get("/", h.Message.ListThreads)
	threads.Get("/:id/messages", h.Message.ListMessages)
	threads.Post("/:id/messages", h.Message.SendMessage)
	threads.Post("/:id/read", h.Message.MarkThreadRead)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/refresh", h.Notification.Refresh)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Remove)
	notifications.Post("/:id/open", h.Notification.Open)

	attachments := protected.Group("/attachments")
	attachments.Post("/:entity/:id", h.Media.Upload)
	attachments.Get("/:entity/:id", h.Media.ListForEntity)
	attachments.Delete("/:id", h.Media.Delete)

	contacts := protected.Group("/contact-messages", middleware.RequireRole("admin"))
	contacts.Get("/", h.Contact.List)
	contacts.Patch("/:id/handled", h.Contact.MarkHandled)

	pages := protected.Group("/pages", middleware.RequireRole("admin"))
	pages.Get("/", h.Content.ListAll)
	pages.Put("/", h.Content.Upsert)
	pages.Delete("/:id", h.Content.Delete)

	audits := protected.Group("/audit", middleware.RequireRole("admin"))
	audits.Get("/recent", h.Audit.Recent)
	audits.Get("/:entity/:id", h.Audit.ListForEntity)

	protected.Get("/dashboard/stats", middleware.RequireAnyRole("agent", "admin"), h.Dashboard.Stats)
}
