package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func toProfileInput(req dto.ProfileRequest) service.ProfileInput {
	return service.ProfileInput{
		Name:          req.Nombre,
		Bio:           req.Biografia,
		PhotoURL:      req.Foto,
		SkillsOffered: req.HabilidadesOfrecidas,
		SkillsWanted:  req.HabilidadesBuscadas,
	}
}

// Create POST /perfil/crear/
func (h *ProfileHandler) Create(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if !common.BindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), cred, toProfileInput(req))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, profile)
}

// Get GET /perfil/
func (h *ProfileHandler) Get(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), cred)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, profile)
}

// Update PUT|PATCH /perfil/
func (h *ProfileHandler) Update(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if !common.BindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), cred, toProfileInput(req))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, profile)
}

// Delete DELETE /perfil/
func (h *ProfileHandler) Delete(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), cred); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
