package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"biblioteca/internal/model"
	"biblioteca/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UsuarioResumo is the user summary returned on login.
type UsuarioResumo struct {
	ID     uint   `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Perfil string `json:"perfil"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	Mensagem     string        `json:"mensagem"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refresh_token"`
	Usuario      UsuarioResumo `json:"usuario"`
}

// Login godoc
// @Summary Autentica um usuário e retorna tokens JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credenciais"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Email e senha são obrigatórios"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Email e senha são obrigatórios"})
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Senha)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"mensagem": "Credenciais inválidas"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"mensagem": "erro ao realizar login"})
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Mensagem:     "Login realizado com sucesso",
		Token:        accessToken,
		RefreshToken: refreshToken,
		Usuario:      usuarioResumo(user),
	})
}

// Refresh godoc
// @Summary Emite um novo access token a partir de um refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "refresh_token é obrigatório"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "refresh_token é obrigatório"})
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"mensagem": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"mensagem": "erro ao renovar token"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": accessToken})
}

// Logout godoc
// @Summary Invalida um refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "refresh_token é obrigatório"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "refresh_token é obrigatório"})
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"mensagem": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, echo.Map{"mensagem": "erro ao encerrar sessão"})
	}

	return c.JSON(http.StatusOK, echo.Map{"mensagem": "Sessão encerrada com sucesso"})
}

func usuarioResumo(user *model.User) UsuarioResumo {
	return UsuarioResumo{
		ID:     user.ID,
		Nome:   user.Nome,
		Email:  user.Email,
		Perfil: user.Perfil,
	}
}
