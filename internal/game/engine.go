// Package game is the server-authoritative session engine: turn order,
// discussion timing, voting with revote, elimination with the Mr. White
// guess sub-protocol, and presence handling. One Engine serves every room
// in the process; per-room serialization comes from each Room's mutex.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
	"github.com/scythe504/undercover-backend/internal/database"
	"github.com/scythe504/undercover-backend/internal/store"
	"github.com/scythe504/undercover-backend/internal/utils"
)

type Config struct {
	DiscussionDuration time.Duration
	GracePeriod        time.Duration
	MaxPlayers         int
}

func DefaultConfig() Config {
	return Config{
		DiscussionDuration: internal.DiscussionDuration,
		GracePeriod:        internal.DisconnectGracePeriod,
		MaxPlayers:         internal.MaxPlayersPerRoom,
	}
}

type Engine struct {
	store   *store.RoomStore
	catalog database.Catalog
	names   *utils.GuestNames
	log     *logrus.Logger
	cfg     Config

	// BroadcastFn fans an event out to every connected room member;
	// SendFn targets one player. Overridable so tests can capture events
	// instead of opening sockets.
	BroadcastFn func(room *internal.Room, msg any)
	SendFn      func(p *internal.Player, msg any)
}

func NewEngine(st *store.RoomStore, catalog database.Catalog, log *logrus.Logger, cfg Config) *Engine {
	e := &Engine{
		store:   st,
		catalog: catalog,
		names:   utils.NewGuestNames(),
		log:     log,
		cfg:     cfg,
	}
	e.BroadcastFn = e.broadcastToRoom
	e.SendFn = e.sendToPlayer
	return e
}

func (e *Engine) Store() *store.RoomStore { return e.store }

// CreateRoom allocates an empty room under a fresh code and assigns its
// word pair from the catalog. The pair is immutable for the room's life.
func (e *Engine) CreateRoom(ctx context.Context) (string, error) {
	pair, err := e.catalog.RandomWordPair(ctx)
	if err != nil {
		return "", fmt.Errorf("assign word pair: %w", err)
	}

	for attempt := 0; attempt < 10; attempt++ {
		code := utils.GenerateCode(utils.RoomCodeLength)
		room, ok := e.store.Create(code)
		if !ok {
			continue
		}
		room.Mu.Lock()
		room.WordPair = &pair
		room.Mu.Unlock()

		e.log.WithFields(logrus.Fields{"room": code}).Info("room created")
		return code, nil
	}
	return "", fmt.Errorf("could not allocate a unique room code")
}

// GuestName hands out a reserved guest username for clients joining
// without one.
func (e *Engine) GuestName() string {
	return e.names.Generate()
}

// RandomWordPair draws a pair straight from the catalog without binding
// it to any room.
func (e *Engine) RandomWordPair(ctx context.Context) (internal.WordPair, error) {
	return e.catalog.RandomWordPair(ctx)
}

// deleteRoom cancels the room's timers and drops it from the registry.
// Caller must not hold the room lock.
func (e *Engine) deleteRoom(room *internal.Room) {
	room.Mu.Lock()
	if room.DiscussionTimer != nil {
		room.DiscussionTimer.Stop()
		room.DiscussionTimer = nil
	}
	for name, t := range room.GraceTimers {
		t.Stop()
		delete(room.GraceTimers, name)
	}
	code := room.Code
	room.Mu.Unlock()

	e.store.Delete(code)
	e.log.WithFields(logrus.Fields{"room": code}).Info("room deleted")
}

// sendError delivers a private error event to one player.
func (e *Engine) sendError(p *internal.Player, err error, message string) {
	e.SendFn(p, internal.Message[internal.ErrorData]{
		Type: internal.EventError,
		Data: internal.ErrorData{Code: err.Error(), Message: message},
	})
}
