// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/folaeazy/snap-bill/config"
	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/application/usecase/auth"
	"github.com/folaeazy/snap-bill/internal/application/usecase/extraction"
	"github.com/folaeazy/snap-bill/internal/application/usecase/report"
	"github.com/folaeazy/snap-bill/internal/application/usecase/transaction"
	"github.com/folaeazy/snap-bill/internal/infra/db"
	"github.com/folaeazy/snap-bill/internal/infra/server/router"
	"github.com/folaeazy/snap-bill/internal/integration/adapters"
	"github.com/folaeazy/snap-bill/internal/integration/email"
	"github.com/folaeazy/snap-bill/internal/integration/email/templates"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/controller"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/middleware"
	"github.com/folaeazy/snap-bill/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	emailAccountRepo := persistence.NewEmailAccountRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)
	reportCache := persistence.NewReportCache(redisClient)

	// Adapters and services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	extractor := adapters.NewGeminiExtractor(cfg.Gemini.APIKey)

	emailService := email.NewService(emailQueueRepo)

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		emailSender = email.NewMockEmailSender()
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Mailbox gateways
	gmailGateway := email.NewGmailGateway(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret)
	outlookGateway := email.NewOutlookGateway(cfg.OAuth.MicrosoftClientID, cfg.OAuth.MicrosoftClientSecret)
	gatewayResolver := email.NewGatewayResolver(gmailGateway, outlookGateway)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, reportCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, reportCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, reportCache)

	// Report use cases
	monthlySummaryUseCase := report.NewMonthlySummaryUseCase(transactionRepo, reportCache, cfg.Report.CacheTTL)
	categoryBreakdownUseCase := report.NewCategoryBreakdownUseCase(transactionRepo)
	searchTransactionsUseCase := report.NewSearchTransactionsUseCase(transactionRepo)

	// Email extraction use cases
	connectEmailAccountUseCase := extraction.NewConnectEmailAccountUseCase(emailAccountRepo)
	listEmailAccountsUseCase := extraction.NewListEmailAccountsUseCase(emailAccountRepo)
	disconnectEmailAccountUseCase := extraction.NewDisconnectEmailAccountUseCase(emailAccountRepo)
	syncEmailAccountUseCase := extraction.NewSyncEmailAccountUseCase(
		emailAccountRepo,
		transactionRepo,
		gatewayResolver,
		extractor,
		reportCache,
		emailService,
		userRepo,
	)
	importParsedExpenseUseCase := extraction.NewImportParsedExpenseUseCase(transactionRepo, reportCache)

	// Controllers
	healthController := controller.NewHealthController(dbHealthChecker, db.RedisHealthCheck(redisClient))

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		importParsedExpenseUseCase,
	)

	reportController := controller.NewReportController(
		monthlySummaryUseCase,
		categoryBreakdownUseCase,
		searchTransactionsUseCase,
	)

	emailAccountController := controller.NewEmailAccountController(
		connectEmailAccountUseCase,
		listEmailAccountsUseCase,
		disconnectEmailAccountUseCase,
		syncEmailAccountUseCase,
	)

	// Middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		reportController,
		emailAccountController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          gormDB,
		Redis:       redisClient,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}
