package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

var (
	errListingRequired = apperror.New(apperror.ErrCodeInvalidInput, "publicacion es requerida.")
	errChatRequired    = apperror.New(apperror.ErrCodeInvalidInput, "chat es requerido.")
)

// ChatHandler обслуживает чаты обмена, сообщения и оценки.
type ChatHandler struct {
	chats    *service.ChatService
	messages *service.MessageService
	ratings  *service.RatingService
}

func NewChatHandler(chats *service.ChatService, messages *service.MessageService, ratings *service.RatingService) *ChatHandler {
	return &ChatHandler{chats: chats, messages: messages, ratings: ratings}
}

// Create POST /chats/
func (h *ChatHandler) Create(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.CreateChatRequest
	if !common.BindJSON(c, &req) {
		return
	}
	if req.Publicacion == nil || *req.Publicacion <= 0 {
		common.RespondError(c, errListingRequired)
		return
	}

	chat, err := h.chats.CreateChat(c.Request.Context(), cred, *req.Publicacion)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, chat)
}

// List GET /chats/
func (h *ChatHandler) List(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	chats, err := h.chats.ListMyChats(c.Request.Context(), cred)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, chats)
}

// Get GET /chats/:id/
func (h *ChatHandler) Get(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	chat, err := h.chats.GetChat(c.Request.Context(), cred, id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, chat)
}

// Complete PATCH /chats/:id/completar/
func (h *ChatHandler) Complete(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	chat, err := h.chats.CompleteExchange(c.Request.Context(), cred, id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, chat)
}

// SendMessage POST /mensajes/
func (h *ChatHandler) SendMessage(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !common.BindJSON(c, &req) {
		return
	}
	if req.Chat == nil || *req.Chat <= 0 {
		common.RespondError(c, errChatRequired)
		return
	}

	msg, err := h.messages.SendMessage(c.Request.Context(), cred, *req.Chat, req.Texto)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, msg)
}

// Rate POST /calificaciones-chat/
func (h *ChatHandler) Rate(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.RateChatRequest
	if !common.BindJSON(c, &req) {
		return
	}
	if req.Chat == nil || *req.Chat <= 0 {
		common.RespondError(c, errChatRequired)
		return
	}

	rating, err := h.ratings.RateChat(c.Request.Context(), cred, *req.Chat, req.Puntaje, req.Comentario)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, rating)
}
