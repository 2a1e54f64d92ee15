package game

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// Phase timers live on the server so clients can never double-fire or skip
// a transition. Each timer's callback re-checks under the room lock that it
// is still the registered timer before acting; a phase change swaps or nils
// the pointer, which neutralizes any already-fired stale callback.

// startDiscussionTimer schedules the discussion -> voting transition.
// Caller must not hold the room lock.
func (e *Engine) startDiscussionTimer(room *internal.Room) {
	room.Mu.Lock()
	if room.DiscussionTimer != nil {
		room.DiscussionTimer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(e.cfg.DiscussionDuration, func() {
		room.Mu.Lock()
		if room.DiscussionTimer != timer {
			room.Mu.Unlock()
			return
		}
		room.DiscussionTimer = nil
		room.Mu.Unlock()
		e.beginVoting(room)
	})
	room.DiscussionTimer = timer
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":     room.Code,
		"duration": e.cfg.DiscussionDuration,
	}).Debug("discussion timer started")
}

// EndDiscussion handles an inbound startVoting message: the discussion may
// be cut short, but only while a discussion is actually running.
func (e *Engine) EndDiscussion(code string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}
	room.Mu.Lock()
	if room.Phase != internal.PhaseDiscussion {
		room.Mu.Unlock()
		return internal.ErrWrongPhase
	}
	if room.DiscussionTimer != nil {
		room.DiscussionTimer.Stop()
		room.DiscussionTimer = nil
	}
	room.Mu.Unlock()

	e.beginVoting(room)
	return nil
}

// startGraceTimer schedules forced removal for a disconnected player.
// A rejoin cancels it; expiry is treated as an explicit leave so a ghost
// can never block win evaluation. Caller must hold the room lock.
func (e *Engine) startGraceTimer(room *internal.Room, username string) {
	if t, ok := room.GraceTimers[username]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(e.cfg.GracePeriod, func() {
		room.Mu.Lock()
		if room.GraceTimers[username] != timer {
			room.Mu.Unlock()
			return
		}
		delete(room.GraceTimers, username)
		room.Mu.Unlock()

		e.log.WithFields(logrus.Fields{
			"room":     room.Code,
			"username": username,
		}).Info("disconnect grace expired, removing player")
		e.LeaveRoom(room.Code, username)
	})
	room.GraceTimers[username] = timer
}

// cancelGraceTimer stops a pending forced removal. Caller holds the room
// lock. Returns true when a timer was pending.
func (e *Engine) cancelGraceTimer(room *internal.Room, username string) bool {
	t, ok := room.GraceTimers[username]
	if !ok {
		return false
	}
	t.Stop()
	delete(room.GraceTimers, username)
	return true
}
