package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"labreserve/internal/model"
	"labreserve/internal/service"
)

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents a reservation creation request.
// The owning user is taken from the token, never from the body.
type CreateReservationRequest struct {
	LabID    uint   `json:"lab_id" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Duration int    `json:"duration" validate:"required,min=1,max=24"`
}

// UpdateStatusRequest represents a status transition request.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func reservationIDFromPath(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ListByLabAndDate godoc
// @Summary List reservations for a lab and date
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param lab_id query int true "Lab ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListByLabAndDate(c echo.Context) error {
	labParam := c.QueryParam("lab_id")
	dateParam := c.QueryParam("date")
	if labParam == "" || dateParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "lab_id and date are required")
	}

	labID, err := strconv.Atoi(labParam)
	if err != nil || labID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lab_id")
	}
	date, err := model.ParseDate(dateParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservations, err := h.reservationService.GetByLabAndDate(c.Request().Context(), uint(labID), date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// Create godoc
// @Summary Create a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReservationRequest true "Reservation data"
// @Success 201 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse "missing field or time conflict (with conflicts list)"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.reservationService.Create(c.Request().Context(), actor, service.CreateReservationInput{
		LabID:    req.LabID,
		Date:     date,
		Time:     req.Time,
		Duration: req.Duration,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, reservation)
}

// GetByID godoc
// @Summary Get reservation by id
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	id, err := reservationIDFromPath(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservationService.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// ListByUser godoc
// @Summary List a user's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {array} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Router /reservations/user/{userId} [get]
func (h *ReservationHandler) ListByUser(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil || userID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	reservations, err := h.reservationService.GetByUser(c.Request().Context(), actor, uint(userID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListAll godoc
// @Summary List all reservations (admin)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Reservation
// @Failure 403 {object} errors.ErrorResponse
// @Router /reservations/all [get]
func (h *ReservationHandler) ListAll(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.List(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// ListDaily godoc
// @Summary List reservations for a day: admins see all, faculty their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} model.Reservation
// @Router /reservations/today [get]
func (h *ReservationHandler) ListDaily(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	date := model.Today()
	if dateParam := c.QueryParam("date"); dateParam != "" {
		date, err = model.ParseDate(dateParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	reservations, err := h.reservationService.GetDaily(c.Request().Context(), actor, date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

// SlotGrid godoc
// @Summary Slot calendar for a lab and date
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param lab_id query int true "Lab ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string false "Candidate start time (HH:MM)"
// @Param duration query int false "Candidate duration in hours"
// @Success 200 {array} schedule.Slot
// @Failure 400 {object} errors.ErrorResponse
// @Router /reservations/slots [get]
func (h *ReservationHandler) SlotGrid(c echo.Context) error {
	labParam := c.QueryParam("lab_id")
	dateParam := c.QueryParam("date")
	if labParam == "" || dateParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "lab_id and date are required")
	}

	labID, err := strconv.Atoi(labParam)
	if err != nil || labID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lab_id")
	}
	date, err := model.ParseDate(dateParam)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	duration := 0
	if d := c.QueryParam("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil || duration <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid duration")
		}
	}

	slots, err := h.reservationService.SlotGrid(c.Request().Context(), uint(labID), date, c.QueryParam("time"), duration)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, slots)
}

// UpdateStatus godoc
// @Summary Update reservation status
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Reservation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	id, err := reservationIDFromPath(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reservation, err := h.reservationService.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

// Delete godoc
// @Summary Delete a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}

	id, err := reservationIDFromPath(c)
	if err != nil {
		return err
	}

	if err := h.reservationService.Delete(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reservation deleted"})
}
