package routes

import (
	"time"

	"github.com/clancy-dev/receipts-api/internal/config"
	domainRepo "github.com/clancy-dev/receipts-api/internal/domain/repository"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/handler"
	"github.com/clancy-dev/receipts-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Receipt   *handler.ReceiptHandler
	Export    *handler.ExportHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		// Replays duplicate receipt submissions instead of storing twice
		v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))

		registerReceiptRoutes(v1, h)

		v1.GET("/dashboard", h.Dashboard.Stats)
		v1.GET("/printer/status", h.Export.PrinterStatus)
	}

	return router
}

func registerReceiptRoutes(v1 *gin.RouterGroup, h *Handlers) {
	receipts := v1.Group("/receipts")
	{
		receipts.POST("", h.Receipt.Create)
		receipts.GET("", h.Receipt.List)
		receipts.GET("/export", h.Export.Excel)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.DELETE("/:id", h.Receipt.Delete)

		// Artifact downloads
		receipts.GET("/:id/image", h.Export.Image)
		receipts.GET("/:id/pdf", h.Export.PDF)
		receipts.GET("/:id/qr", h.Export.QR)

		// Hardware and delivery
		receipts.POST("/:id/print", h.Export.Print)
		receipts.POST("/:id/email", h.Export.Email)
	}
}
