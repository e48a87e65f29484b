package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-reservation/internal/config"
	"github.com/iliyamo/train-reservation/internal/database"
	"github.com/iliyamo/train-reservation/internal/handler"
	"github.com/iliyamo/train-reservation/internal/middleware"
	"github.com/iliyamo/train-reservation/internal/queue"
	"github.com/iliyamo/train-reservation/internal/repository"
	"github.com/iliyamo/train-reservation/internal/router"
	"github.com/iliyamo/train-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// A fresh database has no users table and therefore no admin who could
	// call the gated init-db endpoint, so the schema and the admin account
	// are created here unless DB_AUTO_INIT=false.  The endpoint stays
	// available for reseeding.
	if cfg.DBAutoInit {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if err := database.Bootstrap(ctx, db, cfg.BcryptCost); err != nil {
			cancel()
			log.Fatalf("bootstrap: %v", err)
		}
		cancel()
	}

	// Redis backs the response cache and rate limiter; nil disables both.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	stations := repository.NewStationRepo(db)
	schedules := repository.NewScheduleRepo(db)
	bookings := repository.NewBookingRepo(db)
	feedback := repository.NewFeedbackRepo(db)

	bookingSvc := service.NewBookingService(bookings)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewStationHandler(stations), handler.NewScheduleHandler(schedules), cfg.JWTSecret, cache)
	router.RegisterBookings(e, handler.NewBookingHandler(bookingSvc, bookings), cfg.JWTSecret)
	router.RegisterFeedback(e, handler.NewFeedbackHandler(feedback), cfg.JWTSecret)
	router.RegisterOps(e, handler.NewOpsHandler(cfg, db), cfg.JWTSecret)

	// Drain booking.created events in the background; the consumer keeps
	// its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
