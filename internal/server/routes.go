package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/scythe504/undercover-backend/internal"
)

// The HTTP surface is setup/query only: thin reads and writes over the
// room store. All gameplay flows through the websocket.
func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/game").Subrouter()
	api.HandleFunc("/create-room", s.CreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/join-room", s.JoinRoom).Methods(http.MethodPost)
	api.HandleFunc("/get-room", s.GetRoom).Methods(http.MethodGet)
	api.HandleFunc("/get-chat", s.GetChat).Methods(http.MethodGet)
	api.HandleFunc("/players", s.GetPlayers).Methods(http.MethodGet)
	api.HandleFunc("/assign-roles-order", s.AssignRolesOrder).Methods(http.MethodPost)

	r.HandleFunc("/api/words/random-word-pair", s.RandomWordPair).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.engine.HandleWebSocket)

	return r
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")

		// Websocket upgrades skip the rest of the CORS handling.
		if strings.ToLower(r.Header.Get("Upgrade")) == "websocket" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateRoom allocates an empty room with its word pair already assigned.
func (s *Server) CreateRoom(w http.ResponseWriter, r *http.Request) {
	code, err := s.engine.CreateRoom(r.Context())
	if err != nil {
		s.log.WithError(err).Error("create room failed")
		writeJSON(w, http.StatusInternalServerError, errorBody("could not create room"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"code": code})
}

// JoinRoom is the HTTP mirror of the socket join: it reserves a seat; the
// websocket binds to it afterwards.
func (s *Server) JoinRoom(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code     string `json:"code"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("code and username are required"))
		return
	}
	if body.Username == "" {
		body.Username = s.engine.GuestName()
	}

	if _, err := s.engine.JoinRoom(body.Code, body.Username, nil); err != nil {
		status, msg := joinErrorStatus(err)
		writeJSON(w, status, errorBody(msg))
		return
	}

	room, _ := s.store.Get(body.Code)
	room.Mu.RLock()
	snap := room.Snapshot()
	room.Mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Joined room",
		"players": snap.Players,
	})
}

func joinErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, internal.ErrRoomNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, internal.ErrRoomFull):
		return http.StatusConflict, "Room is full"
	case errors.Is(err, internal.ErrGameAlreadyStarted):
		return http.StatusConflict, "Game has already started"
	case errors.Is(err, internal.ErrUsernameTaken):
		return http.StatusConflict, "Username is taken in this room"
	default:
		return http.StatusInternalServerError, "Could not join room"
	}
}

func (s *Server) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := s.store.Get(r.URL.Query().Get("code"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Room not found"))
		return
	}
	room.Mu.RLock()
	snap := room.Snapshot()
	pair := room.WordPair
	room.Mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"room": snap, "wordPair": pair})
}

func (s *Server) GetChat(w http.ResponseWriter, r *http.Request) {
	room, ok := s.store.Get(r.URL.Query().Get("code"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Room not found"))
		return
	}
	room.Mu.RLock()
	chat := make([]internal.ChatMessage, len(room.Chat))
	copy(chat, room.Chat)
	room.Mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"chat": chat})
}

func (s *Server) GetPlayers(w http.ResponseWriter, r *http.Request) {
	room, ok := s.store.Get(r.URL.Query().Get("code"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("Room not found"))
		return
	}
	room.Mu.RLock()
	snap := room.Snapshot()
	room.Mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"players": snap.Players})
}

// AssignRolesOrder starts the game over HTTP: role assignment plus the
// round-1 kickoff, exactly as the socket start-game message does.
func (s *Server) AssignRolesOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("code is required"))
		return
	}

	if err := s.engine.StartGame(r.Context(), body.Code); err != nil {
		switch {
		case errors.Is(err, internal.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("Room not found"))
		case errors.Is(err, internal.ErrInsufficientPlayers):
			writeJSON(w, http.StatusBadRequest, errorBody("Need at least 3 players"))
		case errors.Is(err, internal.ErrGameAlreadyStarted):
			writeJSON(w, http.StatusConflict, errorBody("Game has already started"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorBody("Could not start game"))
		}
		return
	}

	room, _ := s.store.Get(body.Code)
	room.Mu.RLock()
	snap := room.Snapshot()
	room.Mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"room": snap})
}

func (s *Server) RandomWordPair(w http.ResponseWriter, r *http.Request) {
	pair, err := s.engine.RandomWordPair(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Error getting word pair"))
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"message": msg}
}
