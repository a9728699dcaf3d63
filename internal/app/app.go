package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tourhub_backend/internal/auth"
	"tourhub_backend/internal/config"
	"tourhub_backend/internal/email"
	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/logger"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"
	"tourhub_backend/internal/models/chat"
	"tourhub_backend/internal/payment"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/internal/routes"
	"tourhub_backend/internal/services"
	"tourhub_backend/internal/validator"
	"tourhub_backend/pkg/apperrors"
)

// Run starts the API server. It blocks until the listener fails.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")

	db, err := openDatabase(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("failed to seed first admin: %w", err)
	}

	router := SetupRouter(db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// openDatabase opens the gorm pool. TranslateError is required: the
// repositories match on gorm.ErrDuplicatedKey.
func openDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

func migrate(db *gorm.DB) error {
	// The chat tables live in their own schema.
	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS chat").Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Tour{},
		&models.Review{},
		&models.Booking{},
		&chat.Chat{},
		&chat.Message{},
	)
}

// SetupRouter builds the engine with the full dependency graph. Split from
// Run so tests can drive the router directly.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	v := validator.New()
	base := handlers.NewBaseHandler(v)

	tokens := auth.NewTokenService(
		[]byte(cfg.JWT.Secret),
		time.Duration(cfg.JWT.TTLMinutes)*time.Minute,
	)

	mail := newEmailProvider(cfg)
	checkout := payment.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.APIBase, cfg.Stripe.Currency)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tourRepo := repositories.NewTourRepository(db)
	chatRepo := repositories.NewChatRepository(db)

	tourCRUDRepo := repositories.NewRepository[models.Tour](db).
		WithDefaultScope(repositories.Scope{"secret_tour": false}).
		WithPreloads("Guides")
	reviewCRUDRepo := repositories.NewRepository[models.Review](db).
		WithPreloads("User")
	bookingCRUDRepo := repositories.NewRepository[models.Booking](db).
		WithPreloads("Tour", "User")
	userCRUDRepo := repositories.NewRepository[models.User](db).
		WithDefaultScope(repositories.Scope{"active": true})

	// Services
	authService := services.NewAuthService(userRepo, mail, tokens, cfg.Email.BaseURL)
	userService := services.NewUserService(userRepo)
	tourService := services.NewTourService(tourRepo)
	bookingService := services.NewBookingService(tourCRUDRepo, bookingCRUDRepo, checkout, cfg.Email.BaseURL)
	chatService := services.NewChatService(chatRepo, userRepo)

	// Handlers
	cookieTTL := time.Duration(cfg.JWT.CookieTTLDays) * 24 * time.Hour
	appHandlers := &handlers.AppHandlers{
		Auth: handlers.NewAuthHandler(base, authService, cookieTTL,
			cfg.Server.Env == "production"),
		User: handlers.NewUserHandler(
			handlers.NewCRUD(base, userCRUDRepo, "user"), userService),
		Tour: handlers.NewTourHandler(
			handlers.NewCRUD(base, tourCRUDRepo, "tour").WithIDParam("tourID"), tourService),
		Review: handlers.NewReviewHandler(
			handlers.NewCRUD(base, reviewCRUDRepo, "review")),
		Booking: handlers.NewBookingHandler(
			handlers.NewCRUD(base, bookingCRUDRepo, "booking"), bookingService),
		Chat: handlers.NewChatHandler(base, chatService),
	}

	limiter := middleware.NewRateLimiter(
		cfg.RateLimit.Max,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)

	routes.RegisterRoutes(engine, appHandlers, routes.Deps{
		Protect:     middleware.Protect(tokens, userRepo),
		RateLimiter: limiter,
	})

	return engine
}

// newEmailProvider returns the SMTP sender, or the logging mock when SMTP
// is not configured (local development, CI).
func newEmailProvider(cfg *config.Config) email.Provider {
	sender, err := email.NewSMTPSender(email.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	})
	if err != nil {
		logger.Warn("SMTP not configured, falling back to log-only email provider", "error", err.Error())
		return NewLogEmailProvider()
	}
	return sender
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// absent. Idempotent across restarts.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", cfg.FirstAdminEmail).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:          "Administrator",
		Email:         cfg.FirstAdminEmail,
		PasswordHash:  hash,
		Role:          models.UserRoleAdmin,
		EmailVerified: true,
		Active:        true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("seeded first admin", "email", cfg.FirstAdminEmail)
	return nil
}
