package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

type ListingHandler struct {
	listings *service.ListingService
}

func NewListingHandler(listings *service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

func toListingInput(req dto.ListingRequest) service.ListingInput {
	return service.ListingInput{
		Title:       req.Titulo,
		Description: req.Descripcion,
		Skill:       req.Habilidad,
		Active:      req.Estado,
	}
}

// List GET /publicaciones/
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listings.List(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, listings)
}

// Get GET /publicaciones/:id/
func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, listing)
}

// Mine GET /publicaciones/mias/
func (h *ListingHandler) Mine(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	listings, err := h.listings.ListMine(c.Request.Context(), cred)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, listings)
}

// Create POST /publicaciones/
func (h *ListingHandler) Create(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.ListingRequest
	if !common.BindJSON(c, &req) {
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), cred, toListingInput(req))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, listing)
}

// Update PUT|PATCH /publicaciones/:id/editar/
// PATCH меняет только переданные поля, PUT требует все.
func (h *ListingHandler) Update(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ListingRequest
	if !common.BindJSON(c, &req) {
		return
	}

	partial := c.Request.Method == http.MethodPatch
	listing, err := h.listings.Update(c.Request.Context(), cred, id, toListingInput(req), partial)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, listing)
}

// Delete DELETE /publicaciones/:id/eliminar/
func (h *ListingHandler) Delete(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.listings.Delete(c.Request.Context(), cred, id); err != nil {
		common.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
