package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"biblioteca/internal/auth"
	"biblioteca/internal/config"
	"biblioteca/internal/handler"
	"biblioteca/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reservationHandler *handler.ReservationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/login", authHandler.Login)
	api.POST("/refresh", authHandler.Refresh)
	api.POST("/logout", authHandler.Logout)
	api.GET("/livros", bookHandler.List)
	api.GET("/livros/:id", bookHandler.Get)
	api.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":   "online",
			"mensagem": "API de Biblioteca funcionando",
			"versao":   "1.0",
		})
	})

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{"mensagem": "Token inválido"})
		},
	})

	// Routes for any authenticated user
	secured := api.Group("", jwtMiddleware)
	secured.GET("/usuarios/:id", userHandler.Get)
	secured.POST("/reservas", reservationHandler.Create)
	secured.GET("/reservas", reservationHandler.List)
	secured.PUT("/reservas/:id/devolver", reservationHandler.Return)

	// Staff-only routes
	staff := api.Group("", jwtMiddleware, RequireFuncionario)
	staff.POST("/usuarios", userHandler.Register)
	staff.GET("/usuarios", userHandler.List)
	staff.POST("/livros", bookHandler.Create)
	staff.PUT("/livros/:id", bookHandler.Update)
	staff.DELETE("/livros/:id", bookHandler.Delete)
	staff.DELETE("/reservas/:id", reservationHandler.Cancel)
}

// RequireFuncionario rejects requests whose token does not carry the
// staff role. It must run after the JWT middleware.
func RequireFuncionario(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.CurrentClaims(c)
		if err != nil {
			return err
		}
		if claims.Perfil != model.PerfilFuncionario {
			return echo.NewHTTPError(http.StatusForbidden, echo.Map{"mensagem": "Acesso negado. Apenas funcionários podem acessar"})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
