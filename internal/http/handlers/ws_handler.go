package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/logger"
	"github.com/ignatzorin/skillswap-backend/internal/service"
	"github.com/ignatzorin/skillswap-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений.
type WSHandler struct {
	hub      *ws.Hub
	identity service.IdentityResolver
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, identity service.IdentityResolver) *WSHandler {
	return &WSHandler{
		hub:      hub,
		identity: identity,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /ws?api_key=...
// Браузер не может передать заголовок при апгрейде, поэтому ключ идёт в query.
func (h *WSHandler) Handle(c *gin.Context) {
	student, err := h.identity.ResolveStudent(c.Request.Context(), c.Query("api_key"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту.
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"student_id": student.ID,
				"error":      err.Error(),
			}).Warn("WebSocket upgrade failed")
		}
		return
	}

	ws.NewClient(conn, h.hub, student.ID).Run()
}
