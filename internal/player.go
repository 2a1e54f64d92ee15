package internal

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Player is one roster entry. Username is unique within the room; PlayerID
// is the join-order number and is never reused even after removal.
type Player struct {
	Username string     `json:"username"`
	Role     PlayerRole `json:"playerRole,omitempty"`
	PlayerID int        `json:"playerID"`

	Conn        *websocket.Conn `json:"-"`
	IsConnected bool            `json:"is_connected"`
	JoinedAt    time.Time       `json:"joined_at"`

	// Serializes writes; gorilla connections do not support concurrent writers.
	writeMu sync.Mutex
}

// PlayerSnapshot is the broadcast-safe view of a player. The role is
// included because elimination events and post-game snapshots reveal it;
// hiding it mid-game is the caller's concern.
type PlayerSnapshot struct {
	Username    string     `json:"username"`
	Role        PlayerRole `json:"playerRole,omitempty"`
	PlayerID    int        `json:"playerID"`
	IsConnected bool       `json:"is_connected"`
}

func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Username:    p.Username,
		Role:        p.Role,
		PlayerID:    p.PlayerID,
		IsConnected: p.IsConnected,
	}
}

// SafeWriteJSON writes v to the player's connection under the write mutex.
// Returns nil without writing when the player has no live connection.
func (p *Player) SafeWriteJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}
