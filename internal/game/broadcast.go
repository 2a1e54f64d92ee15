package game

import (
	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// broadcastToRoom writes msg to every connected player. The roster is
// snapshotted under a read lock so no websocket write happens while the
// room mutex is held.
func (e *Engine) broadcastToRoom(room *internal.Room, msg any) {
	room.Mu.RLock()
	players := make([]*internal.Player, 0, len(room.Members))
	for _, p := range room.Members {
		if p.IsConnected && p.Conn != nil {
			players = append(players, p)
		}
	}
	code := room.Code
	room.Mu.RUnlock()

	for _, p := range players {
		if err := p.SafeWriteJSON(msg); err != nil {
			e.log.WithFields(logrus.Fields{
				"room":     code,
				"username": p.Username,
			}).WithError(err).Warn("broadcast write failed")
		}
	}
}

// sendToPlayer writes msg to a single player, dropping it silently when the
// player has no live connection.
func (e *Engine) sendToPlayer(p *internal.Player, msg any) {
	if err := p.SafeWriteJSON(msg); err != nil {
		e.log.WithFields(logrus.Fields{
			"username": p.Username,
		}).WithError(err).Warn("direct write failed")
	}
}
