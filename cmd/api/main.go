package main

import (
	"log"
	"os"
	"time"

	"github.com/clancy-dev/receipts-api/internal/application/service"
	"github.com/clancy-dev/receipts-api/internal/config"
	"github.com/clancy-dev/receipts-api/internal/infrastructure/database"
	"github.com/clancy-dev/receipts-api/internal/infrastructure/repository"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/handler"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/routes"
	"github.com/clancy-dev/receipts-api/pkg/email"
	"github.com/clancy-dev/receipts-api/pkg/printer"
	"github.com/clancy-dev/receipts-api/pkg/receiptnumber"
	"github.com/clancy-dev/receipts-api/pkg/render"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	business := render.BusinessView{
		Name:    cfg.Business.Name,
		Title:   cfg.Business.Title,
		Address: cfg.Business.Address,
		Phone:   cfg.Business.Phone,
		Footer:  cfg.Business.Footer,
	}

	// Initialize services
	receiptService := service.NewReceiptService(receiptRepo, receiptnumber.New())
	exportService := service.NewExportService(
		receiptRepo,
		render.NewImageRenderer(cfg.Export.FontPath),
		render.NewPDFRenderer(),
		emailService,
		thermalPrinter,
		cfg.Printer.Type,
		cfg.Printer.Width,
		business,
	)
	businessLocation, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		log.Printf("Warning: Unknown timezone %q, using local time: %v", cfg.Database.Timezone, err)
		businessLocation = time.Local
	}
	dashboardService := service.NewDashboardService(receiptRepo, businessLocation)

	// Initialize handlers
	handlers := &routes.Handlers{
		Receipt:   handler.NewReceiptHandler(receiptService),
		Export:    handler.NewExportHandler(exportService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
