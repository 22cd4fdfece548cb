package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
)

// Handlers собирает все HTTP хэндлеры приложения.
type Handlers struct {
	Account      *handlers.AccountHandler
	Listing      *handlers.ListingHandler
	Chat         *handlers.ChatHandler
	Notification *handlers.NotificationHandler
	Profile      *handlers.ProfileHandler
	Report       *handlers.ReportHandler
	Health       *handlers.HealthHandler
	WS           *handlers.WSHandler
	// Seed подключается только в development; может быть nil.
	Seed         *handlers.SeedHandler
}

// authAttemptsLimit лимит на регистрацию, активацию и вход.
const authAttemptsLimit = 5

func SetupRouter(cfg *config.Config, limiterStore limiter.Store, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.CredentialMiddleware())

	r.GET("/health", h.Health.Health)
	r.GET("/ws", h.WS.Handle)

	if h.Seed != nil && cfg.Env == "development" {
		r.POST("/seed/", h.Seed.Seed)
	}

	authRateLimit := middleware.RateLimitMiddleware(limiterStore, "auth", authAttemptsLimit, cfg.RateLimitPeriod)
	writeRateLimit := middleware.RateLimitMiddleware(limiterStore, "write", cfg.RateLimitLimit, cfg.RateLimitPeriod)

	auth := r.Group("/")
	auth.Use(authRateLimit)
	{
		auth.POST("/register/", h.Account.Register)
		auth.POST("/activate/", h.Account.Activate)
		auth.POST("/login/", h.Account.Login)
	}

	listings := r.Group("/publicaciones")
	{
		listings.GET("/", h.Listing.List)
		listings.GET("/mias/", h.Listing.Mine)
		listings.GET("/:id/", middleware.IDValidator("id"), h.Listing.Get)
		listings.POST("/", writeRateLimit, h.Listing.Create)
		listings.PUT("/:id/editar/", middleware.IDValidator("id"), writeRateLimit, h.Listing.Update)
		listings.PATCH("/:id/editar/", middleware.IDValidator("id"), writeRateLimit, h.Listing.Update)
		listings.DELETE("/:id/eliminar/", middleware.IDValidator("id"), h.Listing.Delete)
	}

	chats := r.Group("/chats")
	{
		chats.GET("/", h.Chat.List)
		chats.POST("/", writeRateLimit, h.Chat.Create)
		chats.GET("/:id/", middleware.IDValidator("id"), h.Chat.Get)
		chats.PATCH("/:id/completar/", middleware.IDValidator("id"), h.Chat.Complete)
	}
	r.POST("/mensajes/", writeRateLimit, h.Chat.SendMessage)
	r.POST("/calificaciones-chat/", writeRateLimit, h.Chat.Rate)

	notifications := r.Group("/notificaciones")
	{
		notifications.GET("/", h.Notification.List)
		notifications.GET("/no-leidas/", h.Notification.UnreadCount)
		notifications.PATCH("/:id/marcar-leida/", middleware.IDValidator("id"), h.Notification.MarkRead)
		notifications.POST("/marcar-todas-leidas/", h.Notification.MarkAllRead)
	}

	profile := r.Group("/perfil")
	{
		profile.GET("/", h.Profile.Get)
		profile.PUT("/", h.Profile.Update)
		profile.PATCH("/", h.Profile.Update)
		profile.DELETE("/", h.Profile.Delete)
		profile.POST("/crear/", writeRateLimit, h.Profile.Create)
	}

	reports := r.Group("/reportes")
	{
		reports.POST("/", writeRateLimit, h.Report.Create)
		reports.GET("/listar/", h.Report.List)
		reports.PATCH("/:id/moderar/", middleware.IDValidator("id"), h.Report.Moderate)
	}

	return r
}
