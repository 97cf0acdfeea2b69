// README: Entry point; loads config, wires services, starts the HTTP server.
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

	"shuttle/internal/config"
	httptransport "shuttle/internal/http"
	"shuttle/internal/infra"
	"shuttle/internal/logger"
	"shuttle/internal/maps"
	"shuttle/internal/modules/audit"
	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/metrics"
	"shuttle/internal/modules/notify"
	"shuttle/internal/modules/planner"
	"shuttle/internal/modules/transit"
	"shuttle/internal/modules/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger.Setup(cfg.Log.File, cfg.Log.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier := infra.NewJWTVerifier(cfg.Auth.JWTSecret)

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	recorder := metrics.NewRecorder(redisClient)

	transitStore := transit.NewStore(dbPool)

	var estimator planner.TravelEstimator
	if cfg.Maps.APIKey != "" {
		eta, err := maps.NewETAService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		estimator = eta
	}
	plannerSvc := planner.NewService(transitStore, estimator)

	notifyStore := notify.NewStore(dbPool, redisClient)
	notifySvc := notify.NewService(notifyStore)

	walletStore := wallet.NewStore(dbPool)
	walletSvc := wallet.NewService(walletStore, notifySvc, recorder)

	auditStore := audit.NewStore(dbPool)

	bookingStore := booking.NewStore(dbPool, transitStore, walletStore)
	bookingSvc := booking.NewService(bookingStore, recorder, notifySvc, auditStore, cfg.Fare.Base)

	handler := httptransport.NewRouter(verifier, bookingSvc, plannerSvc, walletSvc, notifySvc, recorder)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
