package server

import (
	"github.com/labstack/echo/v4"

	"github.com/AlexaLeb/MoneyShare/internal/auth"
	"github.com/AlexaLeb/MoneyShare/internal/metrics"
)

// New builds the echo instance with middleware and all API routes
// registered.
func New(h *Handler, jwtManager *auth.JWTManager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestLogger())
	e.Use(Instrument())

	// Public routes
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Authenticated API
	api := e.Group("", RequireAuth(jwtManager))
	api.POST("/chats", h.EnsureChat)
	api.POST("/chats/:id/transactions", h.CreateTransaction)
	api.GET("/chats/:id/transactions", h.History)
	api.DELETE("/transactions/:id", h.DeleteTransaction)
	api.POST("/transactions/:id/participants", h.AddParticipant)
	api.DELETE("/participants/:id", h.RemoveParticipant)
	api.GET("/chats/:id/balances", h.Balances)
	api.GET("/chats/:id/settlement", h.Settlement)

	return e
}
