// Package router registers the HTTP routes and their middleware
// chains.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/eventure/seat-reservation/internal/config"
	"github.com/eventure/seat-reservation/internal/handler"
	"github.com/eventure/seat-reservation/internal/middleware"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Cfg      config.Config
	Redis    *redis.Client
	Admin    *handler.AdminHandler
	Public   *handler.PublicHandler
	Checkout *handler.CheckoutHandler
}

// Register wires all routes onto the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	// Public seat-picker endpoints: anonymous, short-TTL Redis cache.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)
	e.GET("/v1/events/:id/seats", d.Public.GetSeats, cache)
	e.GET("/v1/events/:id/seats/available", d.Public.GetAvailableSeats, cache)

	// Checkout: authenticated users, rate limited.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis)
	user := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret))
	user.POST("/events/:id/seats/reserve", d.Checkout.ReserveSeats, limiter)

	// Payment-flow callbacks: internal infrastructure only.
	internal := e.Group("/v1/internal", middleware.InternalKey(d.Cfg.InternalKey))
	internal.POST("/orders/:order_id/confirm", d.Checkout.ConfirmOrder)
	internal.POST("/orders/:order_id/release", d.Checkout.ReleaseOrder)
	internal.POST("/tickets/cancel-seat", d.Checkout.CancelSeat)

	// Administrative surface.
	admin := e.Group("/v1/admin", middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RequireRole("ADMIN"))
	admin.POST("/events/:id/arrangement", d.Admin.CreateArrangement)
	admin.GET("/events/:id/arrangement", d.Admin.GetArrangement)
	admin.PUT("/events/:id/arrangement", d.Admin.UpdateArrangement)
	admin.DELETE("/events/:id/arrangement", d.Admin.DeleteArrangement)
	admin.POST("/events/:id/arrangement/reap", d.Admin.ReapExpired)
}
