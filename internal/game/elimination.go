package game

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// resolveElimination applies the vote outcome to the named player. A
// Mr. White is not removed immediately: the round parks in resolution while
// their one-shot guess is outstanding. Everyone else is removed on the spot
// and the win conditions re-checked.
func (e *Engine) resolveElimination(room *internal.Room, username string) {
	room.Mu.Lock()
	if !room.Phase.CanTransitionTo(internal.PhaseRoundResolution) {
		room.Mu.Unlock()
		return
	}
	room.Phase = internal.PhaseRoundResolution

	target := room.FindPlayer(username)
	if target == nil {
		// Voted player left mid-ballot; fall through to win evaluation.
		e.evaluateWinLocked(room)
		return
	}

	if target.Role == internal.RoleMrWhite {
		room.PendingGuess = username
		room.Mu.Unlock()

		e.log.WithFields(logrus.Fields{
			"room":     room.Code,
			"username": username,
		}).Info("mr. white eliminated, awaiting guess")

		e.SendFn(target, internal.Message[internal.GuessResultData]{
			Type: internal.EventGuessPrompt,
			Data: internal.GuessResultData{},
		})
		return
	}

	e.eliminateLocked(room, target)
}

// eliminateLocked removes target from the roster, announces the
// elimination with the revealed role, and evaluates win conditions.
// Caller holds the room lock; it is released inside.
func (e *Engine) eliminateLocked(room *internal.Room, target *internal.Player) {
	idx := room.PlayerIndex(target.Username)
	room.RemovePlayerAt(idx)
	role := target.Role
	code := room.Code

	e.log.WithFields(logrus.Fields{
		"room":     code,
		"username": target.Username,
		"role":     role,
	}).Info("player eliminated")

	// Announce before win evaluation so clients see the elimination ahead
	// of any game-over or new-round event. The lock is handed to
	// evaluateWinLocked afterwards.
	room.Mu.Unlock()
	e.BroadcastFn(room, internal.Message[internal.PlayerEliminatedData]{
		Type: internal.EventPlayerEliminated,
		Data: internal.PlayerEliminatedData{Username: target.Username, Role: role},
	})

	room.Mu.Lock()
	e.evaluateWinLocked(room)
}

// Guess handles the eliminated Mr. White's one-shot civilian-word guess.
// Any guess from someone without a pending prompt is rejected. A correct
// guess ends the game with the guesser as sole winner; a miss completes
// the deferred elimination.
func (e *Engine) Guess(code, username, guess string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}

	room.Mu.Lock()
	if room.Phase != internal.PhaseRoundResolution || room.PendingGuess == "" || room.PendingGuess != username {
		sender := room.Members[username]
		room.Mu.Unlock()
		if sender != nil {
			e.sendError(sender, internal.ErrInvalidGuessTarget, "no guess is expected from you")
		}
		return internal.ErrInvalidGuessTarget
	}

	target := room.FindPlayer(username)
	room.PendingGuess = ""
	civilianWord := ""
	if room.WordPair != nil {
		civilianWord = room.WordPair.CivilianWord
	}
	correct := normalizeWord(guess) == normalizeWord(civilianWord)
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":     code,
		"username": username,
		"correct":  correct,
	}).Info("mr. white guessed")

	if target != nil {
		e.SendFn(target, internal.Message[internal.GuessResultData]{
			Type: internal.EventGuessResult,
			Data: internal.GuessResultData{Correct: correct, CivilianWord: civilianWord},
		})
	}

	room.Mu.Lock()
	if correct {
		// Outright win for the guesser; no elimination broadcast.
		e.finishGame(room, username)
		return nil
	}

	if target == nil {
		e.evaluateWinLocked(room)
		return nil
	}
	e.eliminateLocked(room, target)
	return nil
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// evaluateWinLocked checks the terminal conditions and either ends the game
// or rolls the room into the next round. Win conditions are monotonic: once
// a team has won no further round can start. Caller holds the room lock;
// it is released inside.
func (e *Engine) evaluateWinLocked(room *internal.Room) {
	civilians := room.CivilianCount()
	impostors := room.ImpostorCount()

	switch {
	case impostors == 0:
		e.finishGame(room, "Civilians")
	case civilians <= 1:
		e.finishGame(room, "Impostors")
	default:
		room.BeginNewRound()
		snap := room.Snapshot()
		room.Mu.Unlock()

		e.log.WithFields(logrus.Fields{
			"room":  room.Code,
			"round": snap.RoundNumber,
		}).Info("new round")

		e.BroadcastFn(room, internal.Message[internal.NewRoundData]{
			Type: internal.EventNewRound,
			Data: internal.NewRoundData{RoundNumber: snap.RoundNumber, Room: snap},
		})
	}
}
