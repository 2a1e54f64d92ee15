package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/undercover-backend/internal"
)

func TestCreateRoomAssignsWordPair(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())

	code, err := e.CreateRoom(context.Background())
	require.NoError(t, err)
	require.Len(t, code, 6)

	room, ok := e.Store().Get(code)
	require.True(t, ok)
	room.Mu.RLock()
	assert.NotNil(t, room.WordPair)
	assert.Equal(t, internal.PhaseLobby, room.Phase)
	room.Mu.RUnlock()
}

func TestJoinRoomAddsPlayers(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana", "bob")

	room, _ := e.Store().Get(code)
	room.Mu.RLock()
	require.Len(t, room.Players, 2)
	assert.Equal(t, 0, room.Players[0].PlayerID)
	assert.Equal(t, 1, room.Players[1].PlayerID)
	room.Mu.RUnlock()

	assert.Equal(t, 2, rec.countType(internal.EventPlayerJoined))
	assert.Equal(t, 2, rec.countType(internal.EventPlayerJoinedLobby))
}

func TestJoinRoomUnknownCode(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	_, err := e.JoinRoom("NOPE", "ana", nil)
	require.ErrorIs(t, err, internal.ErrRoomNotFound)
}

func TestJoinRoomFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPlayers = 2
	e, _ := newTestEngine(t, cfg)
	code := newLobby(t, e, "ana", "bob")

	_, err := e.JoinRoom(code, "cat", nil)
	require.ErrorIs(t, err, internal.ErrRoomFull)
}

func TestJoinRoomAfterStart(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana", "bob", "cat")
	require.NoError(t, e.StartGame(context.Background(), code))

	_, err := e.JoinRoom(code, "dan", nil)
	require.ErrorIs(t, err, internal.ErrGameAlreadyStarted)
}

func TestJoinRoomDuplicateUsername(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana")

	// The HTTP join reserves a connected=false seat only when conn is nil,
	// so a second nil-conn join for the held seat reports the name taken
	// once the seat is live.
	room, _ := e.Store().Get(code)
	room.Mu.Lock()
	room.Members["ana"].IsConnected = true
	room.Mu.Unlock()

	_, err := e.JoinRoom(code, "ana", nil)
	require.ErrorIs(t, err, internal.ErrUsernameTaken)
}

func TestLeaveRoomRemovesAndBroadcasts(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana", "bob", "cat")
	rec.reset()

	require.NoError(t, e.LeaveRoom(code, "bob"))

	room, _ := e.Store().Get(code)
	assert.ElementsMatch(t, []string{"ana", "cat"}, rosterNames(room))

	ev, ok := rec.lastOfType(internal.EventPlayerLeft)
	require.True(t, ok)
	left := ev.msg.(internal.Message[internal.PlayerLeftData])
	assert.Equal(t, "bob", left.Data.Username)
	assert.Len(t, left.Data.Room.Players, 2)
}

func TestLastLeaveDeletesRoom(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana")

	require.NoError(t, e.LeaveRoom(code, "ana"))
	assert.False(t, e.Store().Exists(code))
}

func TestLeaveUnknownMemberIsNoop(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana")
	rec.reset()

	require.NoError(t, e.LeaveRoom(code, "ghost"))
	assert.True(t, e.Store().Exists(code))
	assert.Empty(t, rec.types())
}

func TestLeaveDuringGameEndsItWhenDecisive(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	roster, order := clueRoster()
	room := fixedRoom(t, e, "PRES01", internal.PhaseClueCollection, roster, order)

	// The sole undercover walking out hands civilians the win.
	require.NoError(t, e.LeaveRoom("PRES01", "cat"))

	over, ok := rec.lastOfType(internal.EventGameOver)
	require.True(t, ok)
	assert.Equal(t, "Civilians", over.msg.(internal.Message[internal.GameOverData]).Data.Winner)
	assert.Equal(t, internal.PhaseGameOver, roomPhase(room))
}

func TestLeaveDuringVotingCompletesBallot(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	roster := map[string]internal.PlayerRole{
		"ana": internal.RoleCivilian,
		"bob": internal.RoleCivilian,
		"cat": internal.RoleCivilian,
		"dan": internal.RoleUndercover,
	}
	room := fixedRoom(t, e, "PRES02", internal.PhaseVoting, roster, []string{"ana", "bob", "cat", "dan"})

	require.NoError(t, e.CastVote("PRES02", "ana", "cat"))
	require.NoError(t, e.CastVote("PRES02", "bob", "cat"))
	require.NoError(t, e.CastVote("PRES02", "dan", "ana"))
	rec.reset()

	// cat never voted; their departure is what completes the ballot.
	require.NoError(t, e.LeaveRoom("PRES02", "cat"))

	assert.Equal(t, 1, rec.countType(internal.EventVotingComplete))
	// The voted player is gone, so no elimination fires; a fresh round starts.
	assert.Equal(t, 0, rec.countType(internal.EventPlayerEliminated))
	assert.Equal(t, internal.PhaseClueCollection, roomPhase(room))
	assert.ElementsMatch(t, []string{"ana", "bob", "dan"}, rosterNames(room))
}

func TestPendingGuesserLeaveResolvesRound(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	roster, order := fiveRoster()
	room := fixedRoom(t, e, "PRES04", internal.PhaseVoting, roster, order)

	castAll(t, e, "PRES04", map[string]string{
		"ana": "eve", "bob": "eve", "cat": "eve", "dan": "eve", "eve": "ana",
	})
	room.Mu.RLock()
	require.Equal(t, "eve", room.PendingGuess)
	room.Mu.RUnlock()
	rec.reset()

	// The guesser walking out must not strand the room in resolution.
	require.NoError(t, e.LeaveRoom("PRES04", "eve"))

	assert.Equal(t, internal.PhaseClueCollection, roomPhase(room))
	room.Mu.RLock()
	assert.Empty(t, room.PendingGuess)
	assert.Equal(t, 2, room.RoundNumber)
	room.Mu.RUnlock()
	assert.ElementsMatch(t, []string{"ana", "bob", "cat", "dan"}, rosterNames(room))

	// No elimination or guess resolution for someone already gone.
	assert.Equal(t, 0, rec.countType(internal.EventPlayerEliminated))
	assert.Equal(t, 0, rec.countType(internal.EventGuessResult))
	assert.Equal(t, 1, rec.countType(internal.EventNewRound))

	// The next round is actually playable.
	require.NoError(t, e.SubmitClue("PRES04", "ana", "crunchy"))
}

func TestEliminatedPlayerStaysMember(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	roster, order := fiveRoster()
	room := fixedRoom(t, e, "PRES03", internal.PhaseVoting, roster, order)

	castAll(t, e, "PRES03", map[string]string{
		"ana": "cat", "bob": "cat", "dan": "cat", "eve": "cat", "cat": "dan",
	})

	// Off the roster but still in the room for spectating.
	assert.NotContains(t, rosterNames(room), "cat")
	room.Mu.RLock()
	_, member := room.Members["cat"]
	room.Mu.RUnlock()
	assert.True(t, member)
}

func TestGuestNameFallback(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	name := e.GuestName()
	assert.NotEmpty(t, name)
	assert.NotEqual(t, name, e.GuestName())
}
