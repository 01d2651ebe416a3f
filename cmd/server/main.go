package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/eventure/seat-reservation/internal/clock"
	"github.com/eventure/seat-reservation/internal/config"
	"github.com/eventure/seat-reservation/internal/database"
	"github.com/eventure/seat-reservation/internal/handler"
	"github.com/eventure/seat-reservation/internal/queue"
	"github.com/eventure/seat-reservation/internal/repository"
	"github.com/eventure/seat-reservation/internal/router"
	"github.com/eventure/seat-reservation/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	arrangementRepo := repository.NewArrangementRepo(db)
	eventRepo := repository.NewEventRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)

	clk := clock.NewSystem()
	arrangements := service.NewArrangementService(arrangementRepo, eventRepo, clk)
	bookings := service.NewBookingService(arrangementRepo, enrollmentRepo, clk,
		service.WithHoldTTL(time.Duration(cfg.HoldTTLMin)*time.Minute))

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Cfg:      cfg,
		Redis:    rdb,
		Admin:    handler.NewAdminHandler(arrangements, bookings),
		Public:   handler.NewPublicHandler(bookings),
		Checkout: handler.NewCheckoutHandler(bookings),
	})

	// Notification feed consumer; reconnects forever on its own.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logrus.WithError(err).Error("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
