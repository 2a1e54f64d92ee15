package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Guest names are adjective+noun combos handed to players who join without
// a username. Reservations expire so abandoned names recycle.

var adjectives = []string{
	"Brave", "Clever", "Sneaky", "Quiet", "Witty", "Lucky", "Swift",
	"Grumpy", "Dizzy", "Sleepy", "Curious", "Sly", "Bold", "Shy",
}

var nouns = []string{
	"Penguin", "Walrus", "Falcon", "Badger", "Otter", "Raccoon", "Fox",
	"Panda", "Koala", "Heron", "Lynx", "Moose", "Gecko", "Crab",
}

const guestNameExpiry = 30 * time.Minute

type GuestNames struct {
	mu       sync.Mutex
	reserved map[string]*time.Timer
}

func NewGuestNames() *GuestNames {
	return &GuestNames{
		reserved: make(map[string]*time.Timer),
	}
}

// Generate returns an unreserved guest name and reserves it. Falls back to
// accepting a collision after a bounded number of attempts so a crowded
// process never spins.
func (g *GuestNames) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var name string
	for attempt := 0; attempt < 20; attempt++ {
		name = adjectives[rand.Intn(len(adjectives))] + nouns[rand.Intn(len(nouns))]
		if _, taken := g.reserved[name]; !taken {
			break
		}
	}
	g.reserveLocked(name)
	return name
}

// Reserve marks a name as in use for the expiry window.
func (g *GuestNames) Reserve(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reserveLocked(name)
}

func (g *GuestNames) reserveLocked(name string) {
	if t, ok := g.reserved[name]; ok {
		t.Stop()
	}
	g.reserved[name] = time.AfterFunc(guestNameExpiry, func() {
		g.mu.Lock()
		delete(g.reserved, name)
		g.mu.Unlock()
	})
}

// Reserved reports whether a name is currently held.
func (g *GuestNames) Reserved(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.reserved[name]
	return ok
}
