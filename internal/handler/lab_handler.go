package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"labreserve/internal/service"
)

// LabHandler handles lab endpoints.
type LabHandler struct {
	labService service.LabService
}

// NewLabHandler creates a new lab handler.
func NewLabHandler(labService service.LabService) *LabHandler {
	return &LabHandler{labService: labService}
}

// LabRequest represents a lab create/update request.
type LabRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Location    string `json:"location" validate:"omitempty,max=100"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"omitempty,min=1"`
	Available   *bool  `json:"available"`
}

func labIDFromPath(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ListLabs godoc
// @Summary List labs
// @Tags labs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Lab
// @Router /labs [get]
func (h *LabHandler) ListLabs(c echo.Context) error {
	labs, err := h.labService.ListLabs(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, labs)
}

// GetLab godoc
// @Summary Get lab by id
// @Tags labs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lab ID"
// @Success 200 {object} model.Lab
// @Failure 404 {object} errors.ErrorResponse
// @Router /labs/{id} [get]
func (h *LabHandler) GetLab(c echo.Context) error {
	id, err := labIDFromPath(c)
	if err != nil {
		return err
	}

	lab, err := h.labService.GetLab(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lab)
}

// CreateLab godoc
// @Summary Create a lab (admin)
// @Tags labs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LabRequest true "Lab data"
// @Success 201 {object} model.Lab
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /labs [post]
func (h *LabHandler) CreateLab(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	var req LabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lab, err := h.labService.CreateLab(c.Request().Context(), actor, service.LabInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
		Available:   req.Available,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, lab)
}

// UpdateLab godoc
// @Summary Update a lab (admin)
// @Tags labs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lab ID"
// @Param request body LabRequest true "Lab data"
// @Success 200 {object} model.Lab
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /labs/{id} [put]
func (h *LabHandler) UpdateLab(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	id, err := labIDFromPath(c)
	if err != nil {
		return err
	}

	var req LabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lab, err := h.labService.UpdateLab(c.Request().Context(), actor, id, service.LabInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
		Available:   req.Available,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, lab)
}

// DeleteLab godoc
// @Summary Delete a lab (admin)
// @Tags labs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lab ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /labs/{id} [delete]
func (h *LabHandler) DeleteLab(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	id, err := labIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.labService.DeleteLab(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "lab deleted"})
}
