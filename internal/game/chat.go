package game

import (
	"github.com/scythe504/undercover-backend/internal"
)

// SubmitMessage appends to the room chat and echoes it to everyone. Chat
// persists for the room's life and is allowed in any phase.
func (e *Engine) SubmitMessage(code, username, message string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}

	room.Mu.Lock()
	room.Chat = append(room.Chat, internal.ChatMessage{Username: username, Message: message})
	room.Mu.Unlock()

	e.BroadcastFn(room, internal.Message[internal.ChatBroadcastData]{
		Type: internal.EventNewMessage,
		Data: internal.ChatBroadcastData{Username: username, Message: message},
	})
	return nil
}
