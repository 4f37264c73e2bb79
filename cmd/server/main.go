package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"meeting-scheduler-api/internal/cache"
	"meeting-scheduler-api/internal/config"
	"meeting-scheduler-api/internal/events"
	"meeting-scheduler-api/internal/handler"
	"meeting-scheduler-api/internal/middleware"
	"meeting-scheduler-api/internal/service"
	"meeting-scheduler-api/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Println("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	st := postgres.New(pool)

	// events are optional: no broker, no publishing
	var pub *events.Publisher
	if cfg.AMQPURL != "" {
		pub, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("events: %v", err)
		}
		defer pub.Close()
		log.Println("connected to rabbitmq")
	}

	calendar := service.NewCalendarService(st)
	cached := cache.NewCalendar(calendar, cfg.CacheSize, cfg.CacheTTL)

	users := service.NewUserService(st, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	admin := service.NewAdminService(st, pub, cached)
	booking := service.NewBookingService(st, pub, cached)

	h := handler.New(users, admin, booking, cached)
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.Default()
	h.Routes(r, cfg.JWTSecret, rl)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Printf("http on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	srv.Shutdown(context.Background())
}
