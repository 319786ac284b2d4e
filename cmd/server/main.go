package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Radityatama/produk_inventory/internal/config"
	"github.com/Radityatama/produk_inventory/internal/es"
	"github.com/Radityatama/produk_inventory/internal/events"
	"github.com/Radityatama/produk_inventory/internal/handlers"
	"github.com/Radityatama/produk_inventory/internal/logging"
	"github.com/Radityatama/produk_inventory/internal/service/search"
	"github.com/Radityatama/produk_inventory/internal/session"
	httpserver "github.com/Radityatama/produk_inventory/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	if err := config.SeedAdmin(db, configuration); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	prod, err := events.NewProducer(
		config.CSV(configuration.KAFKA_ADDRESS),
		[]string{events.TopicUserEvents, events.TopicProductEvents},
	)
	if err != nil {
		log.Fatal(err)
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	sessions := &session.Manager{Secret: []byte(configuration.SESSION_SECRET)}
	productHandler := &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             db,
		Sessions:       sessions,
		AuthHandler:    &handlers.AuthHandler{DB: db, Sessions: sessions, Producer: prod},
		ProductHandler: productHandler,
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: search.Index},
		LandingHandler: &handlers.LandingHandler{Sessions: sessions, Products: productHandler},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.SERVER_PORT),
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
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
