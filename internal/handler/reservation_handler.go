package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/service"
)

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents a reservation request.
type CreateReservationRequest struct {
	LivroID uint `json:"livro_id" validate:"required"`
}

// ReservationCreated is the payload returned on a new reservation.
type ReservationCreated struct {
	ID          uint      `json:"id"`
	LivroID     uint      `json:"livro_id"`
	DataReserva time.Time `json:"data_reserva"`
	Status      string    `json:"status"`
}

// Create godoc
// @Summary Reserva um exemplar disponível de um livro
// @Tags reservas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReservationRequest true "Livro a reservar"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservas [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "livro_id é obrigatório"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "livro_id é obrigatório"})
	}

	reservation, err := h.reservationService.Reserve(c.Request().Context(), claims.UserID, req.LivroID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"mensagem": "Reserva criada com sucesso",
		"reserva": ReservationCreated{
			ID:          reservation.ID,
			LivroID:     reservation.LivroID,
			DataReserva: reservation.DataReserva,
			Status:      string(reservation.Status),
		},
	})
}

// List godoc
// @Summary Lista reservas; funcionários veem todas, clientes as próprias
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]model.ReservationView
// @Failure 401 {object} errors.ErrorResponse
// @Router /reservas [get]
func (h *ReservationHandler) List(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	reservations, err := h.reservationService.List(c.Request().Context(), claims)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if reservations == nil {
		reservations = []model.ReservationView{}
	}
	return c.JSON(http.StatusOK, echo.Map{"reservas": reservations})
}

// Return godoc
// @Summary Marca uma reserva como devolvida
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da reserva"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservas/{id}/devolver [put]
func (h *ReservationHandler) Return(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	returnedAt, err := h.reservationService.Return(c.Request().Context(), claims, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"mensagem":       "Livro devolvido com sucesso",
		"data_devolucao": returnedAt,
	})
}

// Cancel godoc
// @Summary Cancela uma reserva (apenas funcionários)
// @Tags reservas
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da reserva"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reservas/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.reservationService.Cancel(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"mensagem": "Reserva cancelada com sucesso"})
}
