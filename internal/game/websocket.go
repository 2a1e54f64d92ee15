package game

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// session tracks one websocket connection. A connection binds to at most
// one room/player via a join-room message; every later message still
// carries the room code explicitly.
type session struct {
	id     uuid.UUID
	conn   *websocket.Conn
	room   *internal.Room
	player *internal.Player
}

// HandleWebSocket upgrades the connection and runs its read loop until the
// client goes away.
func (e *Engine) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	s := &session{id: uuid.New(), conn: conn}
	e.log.WithFields(logrus.Fields{"session": s.id}).Debug("client connected")
	e.readLoop(s)
}

func (e *Engine) readLoop(s *session) {
	defer func() {
		s.conn.Close()
		if s.room != nil && s.player != nil {
			e.HandleDisconnect(s.room, s.player)
		}
		e.log.WithFields(logrus.Fields{"session": s.id}).Debug("client disconnected")
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &msg); err != nil {
			e.log.WithFields(logrus.Fields{"session": s.id}).WithError(err).Warn("malformed frame")
			continue
		}
		e.dispatch(s, msg)
	}
}

// dispatch routes one inbound message to its engine. Invalid operations are
// dropped or answered with a private error; they never tear the session
// down.
func (e *Engine) dispatch(s *session, msg internal.Message[json.RawMessage]) {
	logger := e.log.WithFields(logrus.Fields{"session": s.id, "type": msg.Type})

	switch msg.Type {
	case internal.MsgJoinRoom:
		var data internal.JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if data.Username == "" {
			data.Username = e.GuestName()
		}
		player, err := e.JoinRoom(data.Code, data.Username, s.conn)
		if err != nil {
			logger.WithError(err).Info("join rejected")
			e.writeSessionError(s, err)
			return
		}
		if room, ok := e.store.Get(data.Code); ok {
			s.room = room
			s.player = player
		}

	case internal.MsgLeaveRoom:
		var data internal.LeaveRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.LeaveRoom(data.Code, data.Username); err != nil {
			logger.WithError(err).Info("leave rejected")
		}
		s.room = nil
		s.player = nil

	case internal.MsgStartGame:
		var data internal.StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.StartGame(context.Background(), data.Code); err != nil {
			logger.WithError(err).Info("start rejected")
			e.writeSessionError(s, err)
		}

	case internal.MsgSubmitClue:
		var data internal.SubmitClueData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.SubmitClue(data.RoomCode, data.Username, data.Clue); err != nil {
			logger.WithError(err).Debug("clue rejected")
		}

	case internal.MsgSubmitMessage:
		var data internal.SubmitMessageData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.SubmitMessage(data.Code, data.Username, data.Message); err != nil {
			logger.WithError(err).Debug("chat rejected")
		}

	case internal.MsgStartVoting:
		var data internal.StartVotingData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.EndDiscussion(data.Code); err != nil {
			logger.WithError(err).Debug("early voting rejected")
		}

	case internal.MsgCastVote:
		var data internal.CastVoteData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.CastVote(data.Code, data.Voter, data.VoteFor); err != nil {
			logger.WithError(err).Debug("vote rejected")
		}

	case internal.MsgGuess:
		var data internal.GuessData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			logger.WithError(err).Warn("bad payload")
			return
		}
		if err := e.Guess(data.Code, data.Username, data.Guess); err != nil {
			logger.WithError(err).Debug("guess rejected")
		}

	default:
		logger.Warn("unknown message type")
	}
}

// writeSessionError reports a failure on a connection that may not be bound
// to a player yet.
func (e *Engine) writeSessionError(s *session, err error) {
	_ = s.conn.WriteJSON(internal.Message[internal.ErrorData]{
		Type: internal.EventError,
		Data: internal.ErrorData{Code: err.Error(), Message: err.Error()},
	})
}
