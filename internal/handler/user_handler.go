package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/service"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRequest represents a user registration request.
type RegisterUserRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Senha    string `json:"senha" validate:"required,min=6"`
	Perfil   string `json:"perfil" validate:"required"`
	Telefone string `json:"telefone"`
}

// Register godoc
// @Summary Cadastra um novo usuário (apenas funcionários)
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterUserRequest true "Dados do usuário"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /usuarios [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Dados incompletos"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Dados incompletos"})
	}

	user, err := h.userService.Register(c.Request().Context(), service.RegisterUserInput{
		Nome:     req.Nome,
		Email:    req.Email,
		Senha:    req.Senha,
		Perfil:   req.Perfil,
		Telefone: req.Telefone,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"mensagem": "Usuário cadastrado com sucesso",
		"usuario":  usuarioResumo(user),
	})
}

// List godoc
// @Summary Lista todos os usuários (apenas funcionários)
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"usuarios": users})
}

// Get godoc
// @Summary Obtém dados de um usuário
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do usuário"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), claims, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}
