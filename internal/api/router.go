package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/laywill/laywill-api/internal/api/handler"
	customMiddleware "github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/config"
	"github.com/laywill/laywill-api/internal/email"
	"github.com/laywill/laywill-api/internal/repository/postgres"
	"github.com/laywill/laywill-api/internal/repository/redis"
	"github.com/laywill/laywill-api/internal/security"
	"github.com/laywill/laywill-api/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	workspaceRepo := postgres.NewWorkspaceRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	verificationRepo := postgres.NewVerificationRepository(db)

	// Initialize rate limiter and workspace hint cache
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	hintCache := redis.NewWorkspaceHintCache(redisClient)

	// Initialize mailer
	mailer := email.NewResendMailer(cfg.Email)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		verificationRepo,
		jwtManager,
		mailer,
		hintCache,
		cfg.Auth,
		cfg.Email.AppURL,
	)
	provisionService := service.NewProvisionService(
		userRepo,
		workspaceRepo,
		accountRepo,
		categoryRepo,
		transactionRepo,
		hintCache,
		cfg.Provision,
	)
	inviteService := service.NewInviteService(
		inviteRepo,
		workspaceRepo,
		hintCache,
		mailer,
		cfg.Invite,
		cfg.Email.AppURL,
	)
	accountService := service.NewAccountService(accountRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo, categoryRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(provisionService, workspaceRepo)
	inviteHandler := handler.NewInviteHandler(inviteService)
	accountHandler := handler.NewAccountHandler(accountService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	// Middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)
	workspaceResolver := customMiddleware.NewWorkspaceResolver(provisionService)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/verify", authHandler.VerifyCode)
			r.Post("/resend-code", authHandler.ResendCode)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)

			// Workspace resolution bootstraps on first call
			r.Get("/workspace/current", workspaceHandler.Current)

			// Invite redemption must work before the caller has a workspace
			r.Post("/invites/accept", inviteHandler.Accept)

			// Workspace-scoped routes
			r.Group(func(r chi.Router) {
				r.Use(workspaceResolver.Resolve)

				r.Post("/workspace/invites", inviteHandler.Create)

				r.Route("/accounts", func(r chi.Router) {
					r.Get("/", accountHandler.List)
					r.Post("/", accountHandler.Create)
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", categoryHandler.List)
					r.Post("/", categoryHandler.Create)
				})

				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", transactionHandler.List)
					r.Post("/", transactionHandler.Create)
					r.Get("/summary", transactionHandler.Summary)
				})
			})
		})
	})

	return r
}
