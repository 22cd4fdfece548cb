package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pinger проверяет доступность зависимости. *sqlx.DB подходит напрямую.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// OnlineCounter сообщает число открытых WebSocket-подключений. *ws.Hub подходит напрямую.
type OnlineCounter interface {
	Online() int
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db     Pinger
	redis  *redis.Client
	online OnlineCounter
}

// NewHealthHandler создаёт новый health handler. redis и online могут быть nil.
func NewHealthHandler(db Pinger, redisClient *redis.Client, online OnlineCounter) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, online: online}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status           string            `json:"status"`
	Timestamp        time.Time         `json:"timestamp"`
	Checks           map[string]string `json:"checks"`
	WebSocketClients int               `json:"websocket_clients"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unhealthy"
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	// Redis необязателен: без него лимиты считаются в памяти.
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unhealthy"
			status = "unhealthy"
		} else {
			checks["redis"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	resp := HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	}
	if h.online != nil {
		resp.WebSocketClients = h.online.Online()
	}

	c.JSON(statusCode, resp)
}
