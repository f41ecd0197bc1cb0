package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"labreserve/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seedService service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seedService service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string `json:"message"`
	Labs    int    `json:"labs"`
	Users   int    `json:"users"`
}

// SeedLabs godoc
// @Summary Seed the reference labs and a bootstrap admin
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/labs [get]
func (h *SeedHandler) SeedLabs(c echo.Context) error {
	labs, users, err := h.seedService.Seed(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SeedResponse{
		Message: "seed data applied",
		Labs:    labs,
		Users:   users,
	})
}
