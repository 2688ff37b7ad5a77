package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/airxelerate/flightboard/internal/config"
	"github.com/airxelerate/flightboard/internal/es"
	"github.com/airxelerate/flightboard/internal/handlers"
	"github.com/airxelerate/flightboard/internal/logging"
	authmw "github.com/airxelerate/flightboard/internal/middleware/auth"
	loggingmw "github.com/airxelerate/flightboard/internal/middleware/logging"
	"github.com/airxelerate/flightboard/internal/mykafka"
	"github.com/airxelerate/flightboard/internal/service"
	"github.com/airxelerate/flightboard/internal/token"
	httpserver "github.com/airxelerate/flightboard/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := config.SeedUsers(db); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	prod, err := mykafka.NewProducer(
		[]string{configuration.KAFKA_ADDRESS},
		[]string{"user_events", "flight_events"},
	)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Printf("elasticsearch unavailable, search disabled: %v", err)
		esClient = nil
	}

	codec := token.NewCodec([]byte(configuration.JWT_SECRET), configuration.TOKEN_TTL)
	blacklist := token.NewBlacklist()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	blacklist.StartJanitor(janitorCtx, time.Minute)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	authSvc := &service.AuthService{DB: db, Codec: codec, Blacklist: blacklist, Producer: prod}
	userSvc := &service.UserService{DB: db, Producer: prod}
	flightSvc := &service.FlightService{DB: db, ES: esClient, Index: "flights", Producer: prod}

	httpserver.Register(e, &httpserver.Deps{
		Guard:         authmw.NewGuard(codec, blacklist),
		AuthHandler:   &handlers.AuthHandler{Svc: authSvc},
		UserHandler:   &handlers.UserHandler{Svc: userSvc},
		FlightHandler: &handlers.FlightHandler{Svc: flightSvc},
		SearchHandler: &handlers.SearchHandler{ES: esClient, Index: "flights"},
	})

	srv := &http.Server{
		Addr:         configuration.SERVER_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
