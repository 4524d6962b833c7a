package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/cache"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/database"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/handler"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/logger"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/middleware"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/queue"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/router"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Production())

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable: cache and login rate limit disabled")
	}
	store := cache.NewStore(config.LoadCacheConfig(), rdb, log)

	publisher := queue.NewPublisher(cfg.AMQPURL, log)
	go queue.StartAuditConsumer(cfg.AMQPURL, log)

	runner := repository.NewRunner(db)
	writer := service.NewWriter(runner, service.NewStores, store, publisher, log)

	userRepo := repository.NewUserRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	leadRepo := repository.NewLeadRepo(db)
	salesRepo := repository.NewSalesRepo(db)
	emergencyRepo := repository.NewEmergencyRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = errorHandler(log)
	e.Use(echomw.Recover())
	e.Use(echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: cfg.RequestTimeout,
	}))
	e.Use(requestLogger(log))

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(userRepo, cfg, log),
		Users:     handler.NewUserHandler(userRepo, groupRepo, cfg, log),
		Customers: handler.NewCustomerHandler(customerRepo, writer, store, log),
		Leads:     handler.NewLeadHandler(leadRepo, writer, store, log),
		Sales:     handler.NewSalesHandler(salesRepo, writer, store, log),
		Emergency: handler.NewEmergencyHandler(emergencyRepo, writer),

		DB:        db,
		JWTSecret: cfg.JWTSecret,
		Groups:    groupRepo,
		LoginGate: middleware.LoginRateLimit(config.LoadRateLimitConfig(), rdb, log),
	}
	router.Register(e, h)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// errorHandler renders unmapped errors as JSON and logs server faults.
// echo.HTTPError instances keep their status and message; everything
// else becomes an opaque 500 so internals never leak.
func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}
		if err := c.JSON(code, echo.Map{"message": msg}); err != nil {
			log.Error().Err(err).Msg("error response write failed")
		}
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	})
}
