package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/iksnae/devlog/internal/store"
)

// New builds the receiver's echo server wired to the given store
func New(st *store.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	NewHandler(st).RegisterRoutes(e)
	return e
}
