package game

import (
	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// SubmitClue records one clue and advances the turn cursor. Only the player
// at the cursor may submit; wrapping back to index 0 closes the clue phase
// and opens the timed discussion instead of announcing another turn.
func (e *Engine) SubmitClue(code, username, clue string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}

	room.Mu.Lock()
	if room.Phase != internal.PhaseClueCollection {
		room.Mu.Unlock()
		return internal.ErrWrongPhase
	}
	current := room.CurrentPlayer()
	if current == nil || current.Username != username {
		sender := room.Members[username]
		room.Mu.Unlock()
		if sender != nil {
			e.sendError(sender, internal.ErrNotYourTurn, "wait for your turn to give a clue")
		}
		return internal.ErrNotYourTurn
	}

	room.Clues = append(room.Clues, internal.Clue{Username: username, Clue: clue})
	room.CurrentPlayerIndex = (room.CurrentPlayerIndex + 1) % len(room.Players)
	wrapped := room.CurrentPlayerIndex == 0
	if wrapped {
		room.Phase = internal.PhaseDiscussion
	}
	snap := room.Snapshot()
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":     code,
		"username": username,
		"wrapped":  wrapped,
	}).Debug("clue submitted")

	e.BroadcastFn(room, internal.Message[internal.ClueSubmittedData]{
		Type: internal.EventClueSubmitted,
		Data: internal.ClueSubmittedData{Username: username, Clue: clue, Room: snap},
	})

	if wrapped {
		e.BroadcastFn(room, internal.Message[internal.DiscussionData]{
			Type: internal.EventStartDiscussion,
			Data: internal.DiscussionData{
				Room:     snap,
				Duration: e.cfg.DiscussionDuration.Milliseconds(),
			},
		})
		e.startDiscussionTimer(room)
		return nil
	}

	e.BroadcastFn(room, internal.Message[internal.TurnData]{
		Type: internal.EventUpdateTurn,
		Data: internal.TurnData{CurrentPlayerIndex: snap.CurrentPlayerIndex, Room: snap},
	})
	return nil
}
