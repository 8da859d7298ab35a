package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/internal/handler"
	mid "github.com/MayankXDev13/ledger-x/internal/middleware"
	"github.com/MayankXDev13/ledger-x/internal/model"
	"github.com/MayankXDev13/ledger-x/pkg/config"
	"github.com/MayankXDev13/ledger-x/pkg/database"
	"github.com/MayankXDev13/ledger-x/pkg/jwtutil"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
	"github.com/MayankXDev13/ledger-x/prometheus"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load("ledgerx")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting ledgerx",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if _, err := database.InitDB(&appConfig.DB); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Contact{},
		&model.LedgerEntry{},
		&model.ContactTag{},
		&model.TransactionTag{},
		&model.ContactTagMap{},
		&model.TransactionTagMap{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// Wire handlers to the database
	handler.Init(database.GetDB())

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Contact lifecycle and per-contact reads
	contactAPI := e.Group("/api/contacts", mid.AuthMiddleware)
	contactAPI.POST("", handler.CreateContact)
	contactAPI.GET("", handler.ListContacts)
	contactAPI.GET("/:id", handler.GetContact)
	contactAPI.PUT("/:id", handler.UpdateContact)
	contactAPI.DELETE("/:id", handler.DeleteContact)
	contactAPI.GET("/:id/balance", handler.GetContactBalance)
	contactAPI.GET("/:id/tag-totals", handler.GetContactTagTotals)
	contactAPI.GET("/:id/entries", handler.ListEntries)
	contactAPI.POST("/:id/entries", handler.AddEntry)
	contactAPI.GET("/:id/tags", handler.ListContactTagLinks)
	contactAPI.PUT("/:id/tags", handler.ReplaceContactTagLinks)
	contactAPI.POST("/:id/tags/:tagId", handler.AttachContactTag)
	contactAPI.DELETE("/:id/tags/:tagId", handler.DetachContactTag)

	// Ledger entries addressed directly
	entryAPI := e.Group("/api/entries", mid.AuthMiddleware)
	entryAPI.PUT("/:id", handler.UpdateEntry)
	entryAPI.DELETE("/:id", handler.DeleteEntry)

	// Transaction tag links
	transactionAPI := e.Group("/api/transactions", mid.AuthMiddleware)
	transactionAPI.GET("/:id/tags", handler.ListTransactionTagLinks)
	transactionAPI.PUT("/:id/tags", handler.ReplaceTransactionTagLinks)

	// Contact tag namespace
	contactTagAPI := e.Group("/api/contact-tags", mid.AuthMiddleware)
	contactTagAPI.GET("", handler.ContactTagAPI.List)
	contactTagAPI.POST("", handler.ContactTagAPI.Create)
	contactTagAPI.PUT("/:id", handler.ContactTagAPI.Update)
	contactTagAPI.DELETE("/:id", handler.ContactTagAPI.Delete)
	contactTagAPI.GET("/:id/usage", handler.ContactTagAPI.Usage)

	// Transaction tag namespace
	transactionTagAPI := e.Group("/api/transaction-tags", mid.AuthMiddleware)
	transactionTagAPI.GET("", handler.TransactionTagAPI.List)
	transactionTagAPI.POST("", handler.TransactionTagAPI.Create)
	transactionTagAPI.PUT("/:id", handler.TransactionTagAPI.Update)
	transactionTagAPI.DELETE("/:id", handler.TransactionTagAPI.Delete)
	transactionTagAPI.GET("/:id/usage", handler.TransactionTagAPI.Usage)

	// Dashboard
	dashboardAPI := e.Group("/api/dashboard", mid.AuthMiddleware)
	dashboardAPI.GET("/metrics", handler.DashboardMetrics)
	dashboardAPI.GET("/recent", handler.RecentTransactions)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
