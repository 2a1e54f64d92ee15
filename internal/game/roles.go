package game

import (
	"math/rand"

	"github.com/scythe504/undercover-backend/internal"
)

// BuildRoleList returns the role distribution for a roster of size n:
// one undercover always, one Mr. White only when n exceeds the minimum
// (a 3-player game has no Mr. White), civilians for the rest.
func BuildRoleList(n int) ([]internal.PlayerRole, error) {
	if n < internal.MinPlayersToStart {
		return nil, internal.ErrInsufficientPlayers
	}
	roles := make([]internal.PlayerRole, 0, n)
	roles = append(roles, internal.RoleUndercover)
	if n >= internal.MrWhiteMinimumPlayers {
		roles = append(roles, internal.RoleMrWhite)
	}
	for len(roles) < n {
		roles = append(roles, internal.RoleCivilian)
	}
	return roles, nil
}

// shuffle is an in-place Fisher-Yates.
func shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// AssignRoles shuffles the role list and the player order independently and
// assigns positionally. Caller holds the room lock. The player slice is
// reordered in place, which also randomizes turn order for the game.
func AssignRoles(room *internal.Room) error {
	roles, err := BuildRoleList(len(room.Players))
	if err != nil {
		return err
	}
	shuffle(roles)
	shuffle(room.Players)
	for i, p := range room.Players {
		p.Role = roles[i]
	}
	return nil
}

// WordFor returns the secret word a role sees. Mr. White gets none.
func WordFor(role internal.PlayerRole, pair *internal.WordPair) string {
	if pair == nil {
		return ""
	}
	switch role {
	case internal.RoleCivilian:
		return pair.CivilianWord
	case internal.RoleUndercover:
		return pair.UndercoverWord
	default:
		return ""
	}
}
