// Package store owns the process-wide room registry. It is the only state
// shared across connections; each Room carries its own mutex for handler
// serialization, the registry lock only guards the code -> room mapping.
package store

import (
	"sync"
	"time"

	"github.com/scythe504/undercover-backend/internal"
)

type RoomStore struct {
	rooms map[string]*internal.Room
	mu    sync.RWMutex
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*internal.Room),
	}
}

// Get retrieves a room by code.
func (s *RoomStore) Get(code string) (*internal.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Create allocates an empty lobby-phase room under code. Returns false if
// the code is already taken.
func (s *RoomStore) Create(code string) (*internal.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[code]; exists {
		return nil, false
	}
	room := &internal.Room{
		Code:        code,
		Players:     make([]*internal.Player, 0),
		Members:     make(map[string]*internal.Player),
		Clues:       make([]internal.Clue, 0),
		Chat:        make([]internal.ChatMessage, 0),
		Phase:       internal.PhaseLobby,
		Votes:       make(map[string]int),
		Voted:       make(map[string]struct{}),
		Ballots:     make(map[string]string),
		GraceTimers: make(map[string]*time.Timer),
		CreatedAt:   time.Now(),
	}
	s.rooms[code] = room
	return room, true
}

// Delete removes a room from the registry. Pending timers are the caller's
// responsibility; the registry only forgets the mapping.
func (s *RoomStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Exists checks whether a code is taken.
func (s *RoomStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok
}

// Len returns the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
