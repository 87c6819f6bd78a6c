package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"centavo/internal/auth"
	"centavo/internal/config"
	"centavo/internal/database"
	"centavo/internal/handlers"
	"centavo/internal/logger"
	"centavo/internal/middleware"
	"centavo/internal/services"
	"centavo/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if err := dbManager.Migrate(appConfig.CreditDefaultLimit); err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db)
	transactionService := services.NewTransactionService(ledgerService)
	reportService := services.NewReportService(db)
	exportService := services.NewExportService(reportService, dbManager, appConfig.BackupDir)
	authStore := auth.NewStore(appConfig.AuthConfigPath)

	// Handlers
	authHandler := handlers.NewAuthHandler(authStore)
	transactionHandler := handlers.NewTransactionHandler(transactionService, ledgerService, reportService)
	creditHandler := handlers.NewCreditHandler(ledgerService, transactionService)
	planHandler := handlers.NewPlanHandler(ledgerService)
	budgetHandler := handlers.NewBudgetHandler(ledgerService, reportService)
	recurringHandler := handlers.NewRecurringHandler(ledgerService)
	reportHandler := handlers.NewReportHandler(reportService)
	exportHandler := handlers.NewExportHandler(exportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// The PIN gate is the only public surface.
	authRoutes := v1.Group("/auth")
	authRoutes.GET("/status", authHandler.Status)
	authRoutes.POST("/setup", authHandler.Setup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/recovery-question", authHandler.RecoveryQuestion)
	authRoutes.POST("/recover", authHandler.Recover)

	protected := v1.Group("/")
	protected.Use(middleware.SessionGuard())

	protected.GET("/profile", authHandler.Profile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/recent", transactionHandler.GetRecentTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	credit := protected.Group("/credit")
	credit.GET("", creditHandler.GetCreditInfo)
	credit.PUT("/limit", creditHandler.UpdateCreditLimit)
	credit.POST("/payments", creditHandler.PayCredit)
	credit.GET("/reconciliation", creditHandler.ReconcileCredit)

	plans := protected.Group("/plans")
	plans.POST("", planHandler.CreatePlan)
	plans.GET("", planHandler.GetPlans)
	plans.POST("/:id/deposits", planHandler.Deposit)
	plans.DELETE("/:id", planHandler.DeletePlan)

	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.UpsertBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/comparison", budgetHandler.GetBudgetComparison)

	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.AddRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)

	reports := protected.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/expenses-by-category", reportHandler.GetExpensesByCategory)
	reports.GET("/projection", reportHandler.GetProjection)

	export := protected.Group("/export")
	export.GET("/transactions.csv", exportHandler.ExportCSV)
	export.POST("/backup", exportHandler.Backup)

	log.Infof("Starting Centavo server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
