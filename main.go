package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "github.com/Tripcarte/easytix-booking/internal/config"
	intdb "github.com/Tripcarte/easytix-booking/internal/db"
	router "github.com/Tripcarte/easytix-booking/internal/http"
	"github.com/Tripcarte/easytix-booking/internal/http/handlers"
	"github.com/Tripcarte/easytix-booking/internal/repositories"
	"github.com/Tripcarte/easytix-booking/internal/services"
	"github.com/Tripcarte/easytix-booking/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	log, err := utils.NewLogger(env.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatal("failed to connect database", zap.String("host", env.DBHost), zap.String("db", env.DBName), zap.Error(err))
	}
	defer intconfig.CloseDB()

	if env.DBMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := intdb.Migrate(ctx, db, log)
		cancel()
		if err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	bookingRepo := repositories.BookingRepository{DB: db}
	catalogRepo := repositories.CatalogRepository{DB: db}
	schemaRepo := repositories.ParticipantSchemaRepository{DB: db}
	tripsRepo := repositories.TripsRepository{DB: db}

	trips := services.TripService{
		Reader:            tripsRepo,
		Catalog:           catalogRepo,
		Schema:            schemaRepo,
		Log:               log,
		DefaultPageLength: env.TripsPageLength,
	}
	hd := handlers.Handler{
		Bookings: services.BookingService{
			Store:   bookingRepo,
			Catalog: catalogRepo,
			Schema:  schemaRepo,
			Log:     log,
		},
		Trips: trips,
		Docs:  services.DocsService{Trips: trips, Log: log},
		DB:    db,
		Log:   log,
	}

	r := router.NewRouter(env, hd, log)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", env.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return
	}

	log.Info("server stopped")
}
