package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"biblioteca/internal/auth"
)

// CurrentClaims extracts the authenticated identity parsed by the JWT
// middleware. Routes behind the middleware always have it; anything else
// is treated as an invalid token.
func CurrentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"mensagem": "Token inválido"})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"mensagem": "Token inválido"})
	}
	return claims, nil
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "id inválido"})
	}
	return uint(id), nil
}
