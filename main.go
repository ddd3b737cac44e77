package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/waitron/waitron/config"
	"github.com/waitron/waitron/internal/consumer"
	"github.com/waitron/waitron/internal/handler"
	"github.com/waitron/waitron/internal/middleware"
	"github.com/waitron/waitron/internal/repository"
	"github.com/waitron/waitron/internal/service"
	"github.com/waitron/waitron/pkg/database"
	"github.com/waitron/waitron/pkg/idempotency"
	"github.com/waitron/waitron/pkg/rabbitmq"
	"github.com/waitron/waitron/pkg/shutdown"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: outbound fan-out of order/ticket events, inbound sync of
	// directory/catalog records. Both are best-effort; the core runs without
	// a broker.
	var publisher *rabbitmq.Publisher
	if p, err := rabbitmq.NewPublisher(cfg.RabbitURL); err != nil {
		log.Printf("RabbitMQ unavailable, events disabled: %v", err)
	} else {
		publisher = p
		defer publisher.Close()
	}

	if mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL); err != nil {
		log.Printf("RabbitMQ unavailable, directory sync disabled: %v", err)
	} else {
		defer mqConsumer.Close()
		if msgs, err := mqConsumer.Consume(); err != nil {
			log.Printf("failed to start directory consumer: %v", err)
		} else {
			consumer.NewDirectoryConsumer(db).Start(msgs)
		}
	}

	// Redis idempotency store for the ticket router; optional.
	var idemStore *idempotency.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		idemStore = idempotency.NewStore(rdb, 24*time.Hour)
	}

	// Repositories
	locationRepo := repository.NewLocationRepository(db)
	tableRepo := repository.NewTableRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	kitchenRepo := repository.NewKitchenRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, locationRepo, tableRepo)
	kitchenSvc := service.NewKitchenService(kitchenRepo, orderRepo, menuRepo, locationRepo, idemStore, wrapPublisher(publisher))
	orderSvc := service.NewOrderService(orderRepo, menuRepo, locationRepo, kitchenSvc, wrapPublisher(publisher))

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "waitron"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewOrderHandler(orderSvc).RegisterRoutes(e)
	handler.NewKitchenHandler(kitchenSvc).RegisterRoutes(e)

	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	go func() {
		log.Printf("Waitron API starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// wrapPublisher avoids handing services a typed-nil *rabbitmq.Publisher
// disguised as a non-nil interface.
func wrapPublisher(p *rabbitmq.Publisher) service.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
