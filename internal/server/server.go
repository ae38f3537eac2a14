package server

import (
	"loja/internal/config"
	"loja/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Payment *handler.PaymentHandler
}

// New builds the echo instance with every route registered.
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	registerRoutes(e, cfg, h)
	return e
}

// Start blocks serving on addr.
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
