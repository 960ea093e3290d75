package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/eventpage/guestbook/handlers"
	"github.com/eventpage/guestbook/internal/config"
	"github.com/eventpage/guestbook/internal/guestbook/handler"
	"github.com/eventpage/guestbook/internal/guestbook/repository"
	"github.com/eventpage/guestbook/internal/guestbook/service"
	"github.com/eventpage/guestbook/pkg/logger"
	"github.com/eventpage/guestbook/pkg/metrics"
	"github.com/eventpage/guestbook/pkg/middleware"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: backend=%s serialize_writes=%v rate_limit=%v", cfg.Guestbook.Backend, cfg.Guestbook.SerializeWrites, cfg.RateLimit.Enabled)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s guestbook store: %v", cfg.Guestbook.Backend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warnf("closing store: %v", err)
		}
	}()
	logger.Infof("guestbook store ready: %s", store.Key())

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS(cfg.Server.CORSAllowOrigin))

	probes := map[string]handlers.Probe{}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis {
			rl := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			defer func() { _ = rl.Close() }()
			if err := rl.Ping(ctx).Err(); err != nil {
				logger.Warnf("rate limiter redis %s unreachable: %v", cfg.Redis.Addr(), err)
			}
			probes["redis"] = func(ctx context.Context) error { return rl.Ping(ctx).Err() }
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rl, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
			logger.Infof("rate limiter: redis fixed window (%s)", win)
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			logger.Infof("rate limiter: in-memory token bucket (rps=%v burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	handlers.RegisterHealth(r, store, probes)
	handlers.RegisterSwagger(r)

	svc := service.NewService(store, cfg.Guestbook.SerializeWrites)
	if !cfg.Guestbook.SerializeWrites {
		logger.Warnf("write serialization disabled: overlapping appends may lose entries")
	}
	handler.RegisterGuestbookRoutes(r, svc)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting guestbook service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("graceful shutdown failed: %v", err)
	}
}
