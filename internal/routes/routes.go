package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/sofra/internal/config"
	"github.com/example/sofra/internal/handlers"
	"github.com/example/sofra/internal/middleware"
	"github.com/example/sofra/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	notificationService := services.NewNotificationService(db)
	orderService := services.NewOrderService(db, notificationService, telegramService)
	ratingService := services.NewRatingService(db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)
	menuHandler := handlers.NewMenuHandler(db)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	ratingHandler := handlers.NewRatingHandler(ratingService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify", authHandler.Verify)

	// Public browsing
	businesses := api.Group("/businesses")
	businesses.Get("/", businessHandler.List)
	businesses.Get("/:id", businessHandler.Get)
	businesses.Get("/:id/menu", menuHandler.ListForBusiness)
	businesses.Get("/:id/ratings", ratingHandler.ListForBusiness)
	api.Get("/menu-items/:id/ratings", ratingHandler.ListForMenuItem)

	// Authenticated diner routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	protected.Post("/orders", orderHandler.CreateTicket)
	protected.Get("/orders", orderHandler.ListTickets)

	protected.Get("/notifications", notificationHandler.List)
	protected.Put("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)

	protected.Post("/ratings", ratingHandler.Submit)
	protected.Get("/ratings", ratingHandler.ListMine)
	protected.Get("/orders/:id/rated", ratingHandler.IsRated)

	// Business-scoped routes
	business := protected.Group("/business", middleware.RequireBusiness(db))

	business.Get("/profile", businessHandler.GetMine)
	business.Put("/profile", businessHandler.UpdateMine)

	business.Post("/menu", menuHandler.Create)
	business.Put("/menu/:id", menuHandler.Update)
	business.Delete("/menu/:id", menuHandler.Delete)

	business.Get("/orders/pending", orderHandler.ListPending)
	business.Get("/orders/history", orderHandler.ListHistory)
	business.Get("/orders/counts", orderHandler.Counts)
	business.Post("/orders/accept", orderHandler.Accept)
	business.Post("/orders/:id/reject", orderHandler.Reject)
	business.Post("/orders/deliver", orderHandler.Deliver)
}
