package game

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// StartGame assigns roles and the word pair, then opens round 1's clue
// phase. Role/word delivery is private per player; the round kickoff is a
// room broadcast.
func (e *Engine) StartGame(ctx context.Context, code string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}

	// The word-pair draw can block on the catalog, so resolve it before
	// taking the room lock. Rooms created over HTTP already carry a pair.
	room.Mu.RLock()
	needsPair := room.WordPair == nil
	room.Mu.RUnlock()

	var pair internal.WordPair
	if needsPair {
		var err error
		pair, err = e.catalog.RandomWordPair(ctx)
		if err != nil {
			return err
		}
	}

	room.Mu.Lock()
	if room.Phase != internal.PhaseLobby {
		room.Mu.Unlock()
		return internal.ErrGameAlreadyStarted
	}
	if room.WordPair == nil {
		room.WordPair = &pair
	}
	if err := AssignRoles(room); err != nil {
		room.Mu.Unlock()
		return err
	}

	room.Phase = internal.PhaseClueCollection
	room.RoundNumber = 1
	room.CurrentPlayerIndex = 0
	room.Clues = room.Clues[:0]
	room.ResetVoting()

	snap := room.Snapshot()
	wordPair := room.WordPair
	players := make([]*internal.Player, len(room.Players))
	copy(players, room.Players)
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":    code,
		"players": len(players),
	}).Info("game started")

	for _, p := range players {
		e.SendFn(p, internal.Message[internal.RoleAssignedData]{
			Type: internal.EventRoleAssigned,
			Data: internal.RoleAssignedData{
				Role: p.Role,
				Word: WordFor(p.Role, wordPair),
			},
		})
	}

	e.BroadcastFn(room, internal.Message[internal.RoomSnapshot]{
		Type: internal.EventStartGame,
		Data: snap,
	})
	e.BroadcastFn(room, internal.Message[internal.NewRoundData]{
		Type: internal.EventNewRound,
		Data: internal.NewRoundData{RoundNumber: snap.RoundNumber, Room: snap},
	})
	return nil
}

// finishGame broadcasts the winner, clears the roster, and parks the room
// in the game-over phase. The room record survives until the last member
// leaves so the result screen can be served.
// Caller must hold the room lock; it is released inside.
func (e *Engine) finishGame(room *internal.Room, winner string) {
	if room.DiscussionTimer != nil {
		room.DiscussionTimer.Stop()
		room.DiscussionTimer = nil
	}
	// Grace timers stay armed: their expiry is the only path that reaps a
	// disconnected member, and post-game it resolves to a plain leave. The
	// room record would otherwise outlive its last live connection.
	room.Phase = internal.PhaseGameOver
	room.Players = room.Players[:0]
	room.PendingGuess = ""
	room.Clues = room.Clues[:0]
	room.Votes = make(map[string]int)
	room.Voted = make(map[string]struct{})
	room.Ballots = make(map[string]string)
	code := room.Code
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{"room": code, "winner": winner}).Info("game over")

	e.BroadcastFn(room, internal.Message[internal.GameOverData]{
		Type: internal.EventGameOver,
		Data: internal.GameOverData{Winner: winner},
	})
}
