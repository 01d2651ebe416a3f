package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// InternalKey guards the payment-flow callback routes (confirm,
// release, cancel). These are invoked by the checkout glue and webhook
// handlers inside our own infrastructure, never by end users, so a
// shared key in the X-Internal-Key header is sufficient.
func InternalKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get("X-Internal-Key")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid internal key"})
			}
			return next(c)
		}
	}
}
