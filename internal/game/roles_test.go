package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/undercover-backend/internal"
)

func TestBuildRoleList(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		undercover int
		mrWhite    int
		civilians  int
		wantErr    error
	}{
		{name: "too few players", n: 2, wantErr: internal.ErrInsufficientPlayers},
		{name: "three players has no mr white", n: 3, undercover: 1, mrWhite: 0, civilians: 2},
		{name: "four players adds mr white", n: 4, undercover: 1, mrWhite: 1, civilians: 2},
		{name: "full room", n: 10, undercover: 1, mrWhite: 1, civilians: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles, err := BuildRoleList(tt.n)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, roles, tt.n)

			counts := map[internal.PlayerRole]int{}
			for _, r := range roles {
				counts[r]++
			}
			assert.Equal(t, tt.undercover, counts[internal.RoleUndercover])
			assert.Equal(t, tt.mrWhite, counts[internal.RoleMrWhite])
			assert.Equal(t, tt.civilians, counts[internal.RoleCivilian])
		})
	}
}

func TestAssignRolesDistribution(t *testing.T) {
	room := &internal.Room{}
	for _, name := range []string{"ana", "bob", "cat", "dan", "eve"} {
		room.Players = append(room.Players, &internal.Player{Username: name})
	}

	require.NoError(t, AssignRoles(room))

	counts := map[internal.PlayerRole]int{}
	for _, p := range room.Players {
		counts[p.Role]++
	}
	assert.Equal(t, 1, counts[internal.RoleUndercover])
	assert.Equal(t, 1, counts[internal.RoleMrWhite])
	assert.Equal(t, 3, counts[internal.RoleCivilian])
	assert.Len(t, room.Players, 5)
}

func TestAssignRolesTooFew(t *testing.T) {
	room := &internal.Room{
		Players: []*internal.Player{{Username: "solo"}, {Username: "duo"}},
	}
	require.ErrorIs(t, AssignRoles(room), internal.ErrInsufficientPlayers)
	for _, p := range room.Players {
		assert.Empty(t, p.Role)
	}
}

func TestWordFor(t *testing.T) {
	pair := &internal.WordPair{CivilianWord: "ocean", UndercoverWord: "lake"}

	assert.Equal(t, "ocean", WordFor(internal.RoleCivilian, pair))
	assert.Equal(t, "lake", WordFor(internal.RoleUndercover, pair))
	assert.Empty(t, WordFor(internal.RoleMrWhite, pair))
	assert.Empty(t, WordFor(internal.RoleCivilian, nil))
}

func TestStartGameAssignsRolesAndWords(t *testing.T) {
	e, rec := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana", "bob", "cat", "dan")
	rec.reset()

	require.NoError(t, e.StartGame(context.Background(), code))

	room, ok := e.Store().Get(code)
	require.True(t, ok)
	assert.Equal(t, internal.PhaseClueCollection, roomPhase(room))

	room.Mu.RLock()
	require.NotNil(t, room.WordPair)
	pair := *room.WordPair
	assert.Equal(t, 1, room.RoundNumber)
	assert.Equal(t, 0, room.CurrentPlayerIndex)
	players := make([]*internal.Player, len(room.Players))
	copy(players, room.Players)
	room.Mu.RUnlock()

	// Every player got exactly one private role event with the right word.
	assert.Equal(t, len(players), rec.countType(internal.EventRoleAssigned))
	for _, p := range players {
		require.NotEmpty(t, p.Role)
		if p.Role == internal.RoleMrWhite {
			continue
		}
		want := pair.CivilianWord
		if p.Role == internal.RoleUndercover {
			want = pair.UndercoverWord
		}
		found := false
		rec.mu.Lock()
		for _, ev := range rec.events {
			m, ok := ev.msg.(internal.Message[internal.RoleAssignedData])
			if ok && ev.target == p.Username {
				assert.Equal(t, want, m.Data.Word)
				found = true
			}
		}
		rec.mu.Unlock()
		assert.True(t, found, "no role event for %s", p.Username)
	}

	assert.Equal(t, 1, rec.countType(internal.EventStartGame))
	assert.Equal(t, 1, rec.countType(internal.EventNewRound))
}

func TestStartGameRejectsRestart(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana", "bob", "cat")

	require.NoError(t, e.StartGame(context.Background(), code))
	require.ErrorIs(t, e.StartGame(context.Background(), code), internal.ErrGameAlreadyStarted)
}

func TestStartGameRequiresThreePlayers(t *testing.T) {
	e, _ := newTestEngine(t, testConfig())
	code := newLobby(t, e, "ana", "bob")

	require.ErrorIs(t, e.StartGame(context.Background(), code), internal.ErrInsufficientPlayers)

	room, _ := e.Store().Get(code)
	assert.Equal(t, internal.PhaseLobby, roomPhase(room))
}
