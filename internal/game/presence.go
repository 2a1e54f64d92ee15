package game

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// JoinRoom adds a player to a lobby, or restores a disconnected member's
// session when the username already belongs to the room. The two join-time
// capacity failures stay distinct: a full lobby and a started game tell the
// client different things.
func (e *Engine) JoinRoom(code, username string, conn *websocket.Conn) (*internal.Player, error) {
	room, ok := e.store.Get(code)
	if !ok {
		return nil, internal.ErrRoomNotFound
	}

	room.Mu.Lock()

	// Rejoin path: a member we are still holding a seat for.
	if existing, member := room.Members[username]; member {
		if existing.IsConnected {
			room.Mu.Unlock()
			return nil, internal.ErrUsernameTaken
		}
		existing.Conn = conn
		existing.IsConnected = true
		e.cancelGraceTimer(room, username)
		snap := room.Snapshot()
		room.Mu.Unlock()

		e.log.WithFields(logrus.Fields{
			"room":     code,
			"username": username,
		}).Info("player reconnected")

		e.SendFn(existing, internal.Message[internal.PlayerReconnectedData]{
			Type: internal.EventRejoinRoom,
			Data: internal.PlayerReconnectedData{Username: username, Room: snap},
		})
		e.BroadcastFn(room, internal.Message[internal.PlayerReconnectedData]{
			Type: internal.EventPlayerReconnected,
			Data: internal.PlayerReconnectedData{Username: username, Room: snap},
		})
		return existing, nil
	}

	if room.HasGameStarted() {
		room.Mu.Unlock()
		return nil, internal.ErrGameAlreadyStarted
	}
	if len(room.Players) >= e.cfg.MaxPlayers {
		room.Mu.Unlock()
		return nil, internal.ErrRoomFull
	}

	// A nil conn is the HTTP join variant: the seat is reserved and the
	// socket binds to it later through the rejoin path.
	player := &internal.Player{
		Username:    username,
		PlayerID:    room.NextPlayerID,
		Conn:        conn,
		IsConnected: conn != nil,
		JoinedAt:    time.Now(),
	}
	room.NextPlayerID++
	room.Players = append(room.Players, player)
	room.Members[username] = player
	snap := room.Snapshot()
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":     code,
		"username": username,
		"players":  len(snap.Players),
	}).Info("player joined")

	e.BroadcastFn(room, internal.Message[internal.PlayerJoinedData]{
		Type: internal.EventPlayerJoined,
		Data: internal.PlayerJoinedData{Room: snap, Username: username},
	})
	e.BroadcastFn(room, internal.Message[internal.PlayerJoinedLobbyData]{
		Type: internal.EventPlayerJoinedLobby,
		Data: internal.PlayerJoinedLobbyData{RoomData: snap},
	})
	return player, nil
}

// LeaveRoom removes a player for good: explicit leave, or grace expiry.
// The room dies with its last member; otherwise the remaining members get
// an updated snapshot, and a live game re-checks win conditions since a
// departure can tip them.
func (e *Engine) LeaveRoom(code, username string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}

	room.Mu.Lock()
	member, isMember := room.Members[username]
	if !isMember {
		room.Mu.Unlock()
		return nil
	}
	delete(room.Members, username)
	e.cancelGraceTimer(room, username)
	if idx := room.PlayerIndex(username); idx >= 0 {
		room.RemovePlayerAt(idx)
	}
	member.IsConnected = false
	member.Conn = nil

	room.RetractVote(username)
	hadPendingGuess := room.PendingGuess == username
	if hadPendingGuess {
		room.PendingGuess = ""
	}

	empty := len(room.Members) == 0
	gameLive := room.HasGameStarted()
	snap := room.Snapshot()
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":     code,
		"username": username,
		"empty":    empty,
	}).Info("player left")

	if empty {
		e.deleteRoom(room)
		return nil
	}

	e.BroadcastFn(room, internal.Message[internal.PlayerLeftData]{
		Type: internal.EventPlayerLeft,
		Data: internal.PlayerLeftData{Username: username, Room: snap},
	})

	if gameLive {
		room.Mu.Lock()
		switch {
		case !room.HasGameStarted():
			room.Mu.Unlock()
		case room.ImpostorCount() == 0:
			e.finishGame(room, "Civilians")
		case room.CivilianCount() <= 1:
			e.finishGame(room, "Impostors")
		case hadPendingGuess:
			// The awaited guesser is gone. Resolve the round as a missed
			// guess with nobody left to eliminate, so the survivors are
			// never stranded in resolution.
			e.evaluateWinLocked(room)
		case room.Phase == internal.PhaseVoting && len(room.Voted) >= len(room.Players):
			// The departure completed the ballot.
			room.Mu.Unlock()
			e.tallyVotes(room)
		default:
			room.Mu.Unlock()
		}
	}
	return nil
}

// HandleDisconnect reacts to a transport-level drop: no roster mutation,
// just a grace window with a visible deadline. Rejoin before expiry
// cancels it; expiry forces a leave.
func (e *Engine) HandleDisconnect(room *internal.Room, player *internal.Player) {
	room.Mu.Lock()
	member, isMember := room.Members[player.Username]
	if !isMember || member != player {
		// Stale session (player already left or reconnected elsewhere).
		room.Mu.Unlock()
		return
	}
	player.IsConnected = false
	player.Conn = nil
	e.startGraceTimer(room, player.Username)
	endTime := time.Now().Add(e.cfg.GracePeriod).UnixMilli()
	room.Mu.Unlock()

	e.log.WithFields(logrus.Fields{
		"room":     room.Code,
		"username": player.Username,
	}).Info("player disconnected, grace window started")

	e.BroadcastFn(room, internal.Message[internal.PlayerDisconnectedData]{
		Type: internal.EventPlayerDisconnected,
		Data: internal.PlayerDisconnectedData{Username: player.Username, EndTime: endTime},
	})
}
