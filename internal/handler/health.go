package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Ping is the liveness probe at GET /api/ping.
func Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"pong": true,
		"now":  time.Now().UTC().Format(time.RFC3339),
	})
}

// Root answers GET / with a plain banner so hitting the server in a browser
// shows something sensible.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "API Project Solar ready!")
}
