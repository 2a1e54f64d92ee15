package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal/database"
	"github.com/scythe504/undercover-backend/internal/game"
	"github.com/scythe504/undercover-backend/internal/server"
	"github.com/scythe504/undercover-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	ctx := context.Background()
	catalog := newCatalog(ctx, log)

	engine := game.NewEngine(store.NewRoomStore(), catalog, log, game.DefaultConfig())
	srv := server.NewServer(engine, log)

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}

// newCatalog prefers the postgres word catalog when DATABASE_URL is set
// and falls back to the built-in pairs otherwise.
func newCatalog(ctx context.Context, log *logrus.Logger) database.Catalog {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Info("DATABASE_URL not set, using in-memory word catalog")
		return database.NewMemoryCatalog(nil)
	}

	svc, err := database.New(ctx, connString)
	if err != nil {
		log.WithError(err).Warn("database unavailable, using in-memory word catalog")
		return database.NewMemoryCatalog(nil)
	}
	if err := svc.Seed(ctx); err != nil {
		log.WithError(err).Warn("seeding word pairs failed")
	}
	return svc
}
