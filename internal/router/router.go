package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"labreserve/internal/auth"
	"labreserve/internal/config"
	"labreserve/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	labHandler *handler.LabHandler,
	reservationHandler *handler.ReservationHandler,
	seedHandler *handler.SeedHandler,
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
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/seed/labs", seedHandler.SeedLabs)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)
	secured.GET("/auth/users", authHandler.ListUsers)
	secured.PUT("/auth/password", authHandler.ChangePassword)

	// Lab routes
	secured.GET("/labs", labHandler.ListLabs)
	secured.GET("/labs/:id", labHandler.GetLab)
	secured.POST("/labs", labHandler.CreateLab)
	secured.PUT("/labs/:id", labHandler.UpdateLab)
	secured.DELETE("/labs/:id", labHandler.DeleteLab)

	// Reservation routes. Static paths are registered before /:id so
	// the router does not swallow them as ids.
	secured.GET("/reservations", reservationHandler.ListByLabAndDate)
	secured.POST("/reservations", reservationHandler.Create)
	secured.GET("/reservations/all", reservationHandler.ListAll)
	secured.GET("/reservations/today", reservationHandler.ListDaily)
	secured.GET("/reservations/slots", reservationHandler.SlotGrid)
	secured.GET("/reservations/user/:userId", reservationHandler.ListByUser)
	secured.GET("/reservations/:id", reservationHandler.GetByID)
	secured.PUT("/reservations/:id", reservationHandler.UpdateStatus)
	secured.DELETE("/reservations/:id", reservationHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
