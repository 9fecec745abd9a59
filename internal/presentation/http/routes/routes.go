package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/jewelbill-api/internal/config"
	domainRepo "github.com/sangkips/jewelbill-api/internal/domain/repository"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/handler"
	"github.com/sangkips/jewelbill-api/internal/presentation/http/middleware"
	"github.com/sangkips/jewelbill-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Material  *handler.MaterialHandler
	Bill      *handler.BillHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          logrus.FieldLogger
	RateLimiter     *middleware.RateLimiter
}

// NewRateLimiter builds the request limiter from config
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.RateLimiter {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	return middleware.NewRateLimiter(rlCfg)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(&deps.Cfg.RateLimit)
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		registerAuthRoutes(public, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Settings
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", h.Settings.UpdateSettings)
		settings.GET("/export", h.Settings.Export)
		settings.POST("/import", h.Settings.Import)
	}

	registerMaterialRoutes(protected, h)
	registerBillRoutes(protected, h, deps)
	registerReportRoutes(protected, h)
}

func registerMaterialRoutes(protected *gin.RouterGroup, h *Handlers) {
	materials := protected.Group("/materials")
	{
		materials.GET("", h.Material.List)
		materials.POST("", h.Material.Create)
		materials.GET("/:id", h.Material.Get)
		materials.PUT("/:id", h.Material.Update)
		materials.PATCH("/:id/price", h.Material.UpdatePrice)
		materials.PATCH("/:id/header", h.Material.SetHeader)
		materials.DELETE("/:id", h.Material.Delete)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", idempotency, h.Bill.Create)
		bills.POST("/preview", h.Bill.Preview)
		bills.POST("/estimate", h.Bill.Estimate)
		bills.GET("/next-number", h.Bill.NextNumber)
		bills.GET("/:id", h.Bill.Get)
		bills.PUT("/:id", idempotency, h.Bill.Update)
		bills.DELETE("/:id", h.Bill.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard.GetStats)
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/financial", h.Report.Financial)
		reports.GET("/years", h.Report.Years)
		reports.GET("/gst", h.Report.GST)
		reports.GET("/gst/hsn", h.Report.HSN)
		reports.GET("/gst/export", h.Report.ExportGST)
	}
}
