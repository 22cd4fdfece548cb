package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register POST /register/
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !common.BindJSON(c, &req) {
		return
	}

	student, token, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Email:          req.Email,
		Password:       req.PasswordValue(),
		AcceptPolicies: req.AceptarPoliticas,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.RegisterResponse{
		ID:            student.ID,
		Email:         student.Email,
		Token:         token.Token,
		TokenExpiraEn: token.ExpiresAt,
	})
}

// Activate POST /activate/
func (h *AccountHandler) Activate(c *gin.Context) {
	var req dto.ActivateRequest
	if !common.BindJSON(c, &req) {
		return
	}

	if err := h.accounts.Activate(c.Request.Context(), req.Token); err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondDetail(c, http.StatusOK, "Cuenta activada correctamente.")
}

// Login POST /login/
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !common.BindJSON(c, &req) {
		return
	}

	apiKey, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.LoginResponse{APIKey: apiKey})
}
