package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal/game"
	"github.com/scythe504/undercover-backend/internal/store"
)

type Server struct {
	port int

	engine *game.Engine
	store  *store.RoomStore
	log    *logrus.Logger
}

// NewServer wires the HTTP surface around an engine. PORT comes from the
// environment (godotenv loads .env in main) and defaults to 8080.
func NewServer(engine *game.Engine, log *logrus.Logger) *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		port = 8080
	}

	s := &Server{
		port:   port,
		engine: engine,
		store:  engine.Store(),
		log:    log,
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
