// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tripdesk/internal/config"
	httptransport "tripdesk/internal/http"
	"tripdesk/internal/infra"
	"tripdesk/internal/modules/fleet"
	"tripdesk/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := infra.NewJWTVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		logrus.Fatalf("auth init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		logrus.Fatalf("db init: %v", err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	fleetStore := fleet.NewStore(dbPool)
	statsCache := trip.NewStatsCache(redisClient, time.Duration(cfg.Stats.CacheTTLSeconds)*time.Second)
	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore, fleetStore, statsCache)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Trips:    tripSvc,
		Verifier: verifier,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("server shutdown")
		}
	}()

	logrus.WithField("addr", cfg.HTTP.Addr).Info("starting tripdesk api")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatal(err)
	}
}
