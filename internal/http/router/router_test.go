package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitLimit:  100,
		RateLimitPeriod: time.Minute,
	}
	return SetupRouter(cfg, memory.NewStore(), Handlers{
		Account:      handlers.NewAccountHandler(nil),
		Listing:      handlers.NewListingHandler(nil),
		Chat:         handlers.NewChatHandler(nil, nil, nil),
		Notification: handlers.NewNotificationHandler(nil),
		Profile:      handlers.NewProfileHandler(nil),
		Report:       handlers.NewReportHandler(nil),
		Health:       handlers.NewHealthHandler(okPinger{}, nil, nil),
		WS:           handlers.NewWSHandler(nil, nil),
		Seed:         handlers.NewSeedHandler(nil),
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/chats/", http.StatusUnauthorized},
		{http.MethodGet, "/chats/abc/", http.StatusBadRequest},
		{http.MethodPatch, "/chats/0/completar/", http.StatusBadRequest},
		{http.MethodGet, "/publicaciones/mias/", http.StatusUnauthorized},
		{http.MethodGet, "/notificaciones/no-leidas/", http.StatusUnauthorized},
		{http.MethodPost, "/mensajes/", http.StatusUnauthorized},
		{http.MethodPost, "/calificaciones-chat/", http.StatusUnauthorized},
		{http.MethodDelete, "/perfil/", http.StatusUnauthorized},
		{http.MethodPatch, "/reportes/x/moderar/", http.StatusBadRequest},
		{http.MethodPost, "/seed/", http.StatusNotFound},
	}

	for _, tc := range cases {
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSetupRouter_AuthRateLimit(t *testing.T) {
	r := newTestRouter()

	var last int
	for i := 0; i <= authAttemptsLimit; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/login/", strings.NewReader("{"))
		req.RemoteAddr = "192.0.2.10:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestSetupRouter_AuthAndWriteLimitsAreSeparate(t *testing.T) {
	r := newTestRouter()

	send := func(method, path, body string) int {
		req, _ := http.NewRequest(method, path, strings.NewReader(body))
		req.RemoteAddr = "192.0.2.20:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < authAttemptsLimit; i++ {
		assert.Equal(t, http.StatusUnauthorized, send(http.MethodPost, "/mensajes/", `{}`))
	}
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/login/", "{"))

	for i := 1; i < authAttemptsLimit; i++ {
		send(http.MethodPost, "/login/", "{")
	}
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/login/", "{"))
	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPost, "/mensajes/", `{}`))
}
