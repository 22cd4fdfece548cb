package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/dto"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create POST /reportes/
func (h *ReportHandler) Create(c *gin.Context) {
	cred, ok := common.RequireCredential(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !common.BindJSON(c, &req) {
		return
	}
	if req.Publicacion == nil || *req.Publicacion <= 0 {
		common.RespondError(c, errListingRequired)
		return
	}

	report, err := h.reports.Create(c.Request.Context(), cred, *req.Publicacion, req.Motivo)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, report)
}

// List GET /reportes/listar/
// Ключ не проверяется здесь: без прав модератора ответ всегда 403.
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context(), common.Credential(c))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, reports)
}

// Moderate PATCH /reportes/:id/moderar/
func (h *ReportHandler) Moderate(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ModerateReportRequest
	if !common.BindJSON(c, &req) {
		return
	}

	report, err := h.reports.Moderate(c.Request.Context(), common.Credential(c), id, req.Accion)
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, report)
}
