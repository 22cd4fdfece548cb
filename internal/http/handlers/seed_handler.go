package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

const (
	defaultSeedStudents = 5
	defaultSeedListings = 3
	maxSeedStudents     = 50
	maxSeedListings     = 20
)

// SeedHandler наполняет базу демо-данными. Подключается только в development.
type SeedHandler struct {
	seeds *service.SeedService
}

func NewSeedHandler(seeds *service.SeedService) *SeedHandler {
	return &SeedHandler{seeds: seeds}
}

// Seed POST /seed/?estudiantes=5&publicaciones=3
func (h *SeedHandler) Seed(c *gin.Context) {
	students, listings := seedCounts(
		queryInt(c, "estudiantes", defaultSeedStudents),
		queryInt(c, "publicaciones", defaultSeedListings),
	)

	seeded, err := h.seeds.SeedData(c.Request.Context(), students, listings)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, gin.H{
		"password":    service.SeedPassword,
		"estudiantes": seeded,
	})
}

// seedCounts возвращает значения по умолчанию для отрицательных и
// слишком больших количеств.
func seedCounts(students, listings int) (int, int) {
	if students < 1 || students > maxSeedStudents {
		students = defaultSeedStudents
	}
	if listings < 0 || listings > maxSeedListings {
		listings = defaultSeedListings
	}
	return students, listings
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
