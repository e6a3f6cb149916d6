package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"text/template"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gorilla/sessions"
	"github.com/myairobotics/myaisells-admin/internal/assets"
	"github.com/myairobotics/myaisells-admin/internal/config"
	"github.com/myairobotics/myaisells-admin/internal/helpvideos"
	"github.com/myairobotics/myaisells-admin/internal/identity"
	"github.com/myairobotics/myaisells-admin/internal/metrics"
	"github.com/myairobotics/myaisells-admin/internal/payments"
	"github.com/myairobotics/myaisells-admin/internal/storage"
	"github.com/myairobotics/myaisells-admin/internal/users"
	"github.com/myairobotics/myaisells-admin/web/handlers"
	"github.com/myairobotics/myaisells-admin/web/middleware"
	admin_sessions "github.com/myairobotics/myaisells-admin/web/sessions"

	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// try to save the config in case it was not found
	if err := cfg.SaveConfig(""); err != nil {
		log.Printf("Failed to save configuration: %v", err)
	}

	// Set up logger
	logger := logging.CreateLogger(logging.LogLevel(cfg.LogLevel), cfg.LogPath, "dashboard")

	// Set up database connection with SQLite optimizations for concurrency
	dbConn, err := sql.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=30000&_synchronous=NORMAL&_cache_size=10000")
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Configure connection pool for better concurrency
	dbConn.SetMaxOpenConns(10)
	dbConn.SetMaxIdleConns(5)
	dbConn.SetConnMaxLifetime(30 * time.Minute)

	// Set up repositories
	adminRepo, err := identity.NewSQLiteAdminRepository(dbConn)
	if err != nil {
		logger.Error("Failed to create admin repository", "error", err)
		os.Exit(1)
	}
	userRepo, err := users.NewSQLiteUserRepository(dbConn)
	if err != nil {
		logger.Error("Failed to create user repository", "error", err)
		os.Exit(1)
	}
	metricsRepo, err := metrics.NewSQLiteMetricsRepository(dbConn)
	if err != nil {
		logger.Error("Failed to create metrics repository", "error", err)
		os.Exit(1)
	}
	paymentRepo, err := payments.NewSQLitePaymentRepository(dbConn)
	if err != nil {
		logger.Error("Failed to create payment repository", "error", err)
		os.Exit(1)
	}
	assetRepo, err := assets.NewSQLiteFileAssetRepository(dbConn)
	if err != nil {
		logger.Error("Failed to create asset repository", "error", err)
		os.Exit(1)
	}
	howToRepo, err := helpvideos.NewSQLiteHowToRepository(dbConn)
	if err != nil {
		logger.Error("Failed to create help video repository", "error", err)
		os.Exit(1)
	}

	// Set up services
	hasher := identity.NewPBKDF2PasswordHasher()
	failureTracker := identity.NewMemoryFailureTracker(identity.LockoutSettings{
		Threshold:  5,
		TimeWindow: 15 * time.Minute,
	})
	adminService := identity.NewAdminService(logger, adminRepo, hasher, failureTracker)
	userService := users.NewUserService(logger, userRepo)
	metricsService := metrics.NewMetricsService(logger, metricsRepo)
	paymentService := payments.NewPaymentService(logger, paymentRepo)

	// Set up the upload workflow
	assetStore, err := storage.NewS3AssetStore(context.Background(), cfg.Storage, assetRepo, logger)
	if err != nil {
		logger.Error("Failed to create asset store", "error", err)
		os.Exit(1)
	}
	previewStore, err := assets.NewPreviewStore(cfg.PreviewDir, logger)
	if err != nil {
		logger.Error("Failed to create preview store", "error", err)
		os.Exit(1)
	}
	prober := helpvideos.NewFFmpegDurationProber(logger)
	workflow := helpvideos.NewUploadWorkflow(logger, assetStore, howToRepo, prober, previewStore)
	defer workflow.Close()

	// Set up session store
	sessionKey, err := admin_sessions.GetOrCreateSessionKey()
	if err != nil {
		logger.Error("Failed to get or create session key", "error", err)
		os.Exit(1)
	}
	sessionStore := sessions.NewCookieStore(sessionKey)
	sessionFactory := admin_sessions.NewAdminSessionFactory(sessionStore)

	// Set up Gin engine
	router := initializeGin(cfg)

	// Serve static files and locally spooled previews
	router.Static("/static", "web/static")
	router.Static(assets.URLPrefix, cfg.PreviewDir)

	// Set up templates
	router.HTMLRender = createTemplateRenderer()

	// Set up handlers
	authHandler := handlers.NewAuthHandler(logger, adminService, sessionFactory)
	homeHandler := handlers.NewHomeHandler(logger)
	metricsHandler := handlers.NewMetricsHandler(logger, metricsService)
	userHandler := handlers.NewUserHandler(logger, userService)
	paymentHandler := handlers.NewPaymentHandler(logger, paymentService)
	howToHandler := handlers.NewHowToHandler(logger, workflow, howToRepo, cfg.PreviewDir+"/incoming")

	// Set up middleware
	authMiddleware := middleware.NewAuthMiddleware(logger, adminService, sessionFactory)

	// Public routes (authentication)
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/login", authMiddleware.RedirectIfAuth, authHandler.ShowLogin)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/setup", authMiddleware.RedirectIfAuth, authHandler.ShowSetup)
		authGroup.POST("/setup", authHandler.Setup)
		authGroup.GET("/logout", authHandler.Logout)
	}

	// Authenticated routes
	authedGroup := router.Group("/")
	authedGroup.Use(authMiddleware.RequireAuth)
	{
		authedGroup.GET("/", homeHandler.ShowDashboard)

		apiGroup := authedGroup.Group("/api")
		{
			metricsGroup := apiGroup.Group("/metrics")
			{
				metricsGroup.GET("/users-count", metricsHandler.GetUserCounts)
				metricsGroup.GET("/users-by-country", metricsHandler.GetUsersByCountry)
				metricsGroup.GET("/subscriptions", metricsHandler.GetSubscriptions)
				metricsGroup.GET("/campaigns", metricsHandler.GetCampaigns)
				metricsGroup.GET("/conversations", metricsHandler.GetConversations)
				metricsGroup.GET("/appointments", metricsHandler.GetAppointments)
				metricsGroup.GET("/downgrade-upgrade", metricsHandler.GetPlanChanges)
			}

			apiGroup.GET("/users", userHandler.ListUsers)
			apiGroup.POST("/user-status-update", userHandler.UpdateUserStatus)
			apiGroup.GET("/payment", paymentHandler.GetPayments)

			howToGroup := apiGroup.Group("/howtos")
			{
				howToGroup.GET("", howToHandler.ListHowTos)

				draftGroup := howToGroup.Group("/draft")
				{
					draftGroup.GET("", howToHandler.GetDraft)
					draftGroup.POST("/items", howToHandler.AddDraftItem)
					draftGroup.PATCH("/items/:id", howToHandler.UpdateDraftItem)
					draftGroup.DELETE("/items/:id", howToHandler.RemoveDraftItem)
					draftGroup.POST("/items/:id/video", howToHandler.UploadDraftVideo)
					draftGroup.DELETE("/items/:id/video", howToHandler.ClearDraftVideo)
					draftGroup.POST("/items/:id/thumbnail", howToHandler.UploadDraftThumbnail)
					draftGroup.DELETE("/items/:id/thumbnail", howToHandler.ClearDraftThumbnail)
					draftGroup.POST("/submit", howToHandler.SubmitDraft)
				}

				howToGroup.GET("/:id", howToHandler.GetHowTo)
			}
		}
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.WebAddr, cfg.WebPort)
	logger.Info("Starting server on " + addr)
	if err := router.Run(addr); err != nil {
		logger.Error("Failed to start server", "error", err)
	}
}

func createTemplateRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	funcMap := template.FuncMap{
		"formatFileSize": func(bytes int64) string {
			if bytes == 0 {
				return "0 MB"
			}
			mb := float64(bytes) / 1048576.0
			return fmt.Sprintf("%.2f MB", mb)
		},
		"toLocal": func(t time.Time) time.Time {
			return t.Local()
		},
	}

	r.AddFromFilesFuncs("layout", funcMap, "web/templates/layout.html")
	r.AddFromFilesFuncs("login", funcMap, "web/templates/layout.html", "web/templates/login.html")
	r.AddFromFilesFuncs("setup", funcMap, "web/templates/layout.html", "web/templates/setup.html")
	r.AddFromFilesFuncs("dashboard", funcMap, "web/templates/layout.html", "web/templates/dashboard.html")
	r.AddFromFilesFuncs("error", funcMap, "web/templates/layout.html", "web/templates/error.html")
	return r
}
