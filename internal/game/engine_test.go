package game

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/undercover-backend/internal"
	"github.com/scythe504/undercover-backend/internal/database"
	"github.com/scythe504/undercover-backend/internal/store"
)

// eventRecorder swaps in for the websocket fan-out so tests can assert on
// the exact event stream without opening connections.
type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	// target is empty for room broadcasts, a username for direct sends.
	target string
	msg    any
}

func (r *eventRecorder) broadcast(room *internal.Room, msg any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{msg: msg})
}

func (r *eventRecorder) send(p *internal.Player, msg any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{target: p.Username, msg: msg})
}

func (r *eventRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// types returns the event type strings in emission order.
func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, eventType(ev.msg))
	}
	return out
}

func (r *eventRecorder) countType(t string) int {
	n := 0
	for _, typ := range r.types() {
		if typ == t {
			n++
		}
	}
	return n
}

// lastOfType returns the most recent event of the given type.
func (r *eventRecorder) lastOfType(t string) (recordedEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if eventType(r.events[i].msg) == t {
			return r.events[i], true
		}
	}
	return recordedEvent{}, false
}

func eventType(msg any) string {
	switch m := msg.(type) {
	case internal.Message[internal.RoomSnapshot]:
		return m.Type
	case internal.Message[internal.PlayerJoinedData]:
		return m.Type
	case internal.Message[internal.PlayerJoinedLobbyData]:
		return m.Type
	case internal.Message[internal.PlayerLeftData]:
		return m.Type
	case internal.Message[internal.RoleAssignedData]:
		return m.Type
	case internal.Message[internal.ClueSubmittedData]:
		return m.Type
	case internal.Message[internal.TurnData]:
		return m.Type
	case internal.Message[internal.DiscussionData]:
		return m.Type
	case internal.Message[internal.VotingData]:
		return m.Type
	case internal.Message[internal.VoteUpdateData]:
		return m.Type
	case internal.Message[internal.VotingCompleteData]:
		return m.Type
	case internal.Message[internal.RevoteData]:
		return m.Type
	case internal.Message[internal.PlayerEliminatedData]:
		return m.Type
	case internal.Message[internal.GuessResultData]:
		return m.Type
	case internal.Message[internal.NewRoundData]:
		return m.Type
	case internal.Message[internal.GameOverData]:
		return m.Type
	case internal.Message[internal.ChatBroadcastData]:
		return m.Type
	case internal.Message[internal.PlayerDisconnectedData]:
		return m.Type
	case internal.Message[internal.PlayerReconnectedData]:
		return m.Type
	case internal.Message[internal.ErrorData]:
		return m.Type
	case internal.Message[string]:
		return m.Type
	default:
		return ""
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *eventRecorder) {
	t.Helper()
	e := NewEngine(store.NewRoomStore(), database.NewMemoryCatalog(nil), testLogger(), cfg)
	rec := &eventRecorder{}
	e.BroadcastFn = rec.broadcast
	e.SendFn = rec.send
	return e, rec
}

func testConfig() Config {
	return Config{
		DiscussionDuration: 20 * time.Millisecond,
		GracePeriod:        20 * time.Millisecond,
		MaxPlayers:         internal.MaxPlayersPerRoom,
	}
}

// newLobby creates a room and joins usernames into it.
func newLobby(t *testing.T, e *Engine, usernames ...string) string {
	t.Helper()
	code, err := e.CreateRoom(context.Background())
	require.NoError(t, err)
	for _, name := range usernames {
		_, err := e.JoinRoom(code, name, nil)
		require.NoError(t, err)
	}
	return code
}

// fixedRoom builds a room with an explicit roster and phase, bypassing the
// shuffle so tests control who holds which role and the turn order.
func fixedRoom(t *testing.T, e *Engine, code string, phase internal.GamePhase, roster map[string]internal.PlayerRole, order []string) *internal.Room {
	t.Helper()
	room, ok := e.Store().Create(code)
	require.True(t, ok)

	room.Mu.Lock()
	room.WordPair = &internal.WordPair{CivilianWord: "apple", UndercoverWord: "pear"}
	for i, name := range order {
		p := &internal.Player{
			Username:    name,
			Role:        roster[name],
			PlayerID:    i,
			IsConnected: true,
			JoinedAt:    time.Now(),
		}
		room.Players = append(room.Players, p)
		room.Members[name] = p
	}
	room.NextPlayerID = len(order)
	room.RoundNumber = 1
	room.Phase = phase
	if phase == internal.PhaseVoting {
		room.ResetVoting()
	}
	room.Mu.Unlock()
	return room
}

func roomPhase(room *internal.Room) internal.GamePhase {
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	return room.Phase
}

func rosterNames(room *internal.Room) []string {
	room.Mu.RLock()
	defer room.Mu.RUnlock()
	names := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		names = append(names, p.Username)
	}
	return names
}
