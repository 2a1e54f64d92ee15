package internal

import (
	"sync"
	"time"
)

const (
	DiscussionDuration    = 30 * time.Second
	DisconnectGracePeriod = 35 * time.Second
	MaxPlayersPerRoom     = 10
	MinPlayersToStart     = 3
	MrWhiteMinimumPlayers = 4
)

type GamePhase string

const (
	PhaseLobby           GamePhase = "lobby"
	PhaseClueCollection  GamePhase = "clue_collection"
	PhaseDiscussion      GamePhase = "discussion"
	PhaseVoting          GamePhase = "voting"
	PhaseRoundResolution GamePhase = "round_resolution"
	PhaseGameOver        GamePhase = "game_over"
)

func (p GamePhase) String() string { return string(p) }

// CanTransitionTo reports whether moving from p to target is a legal
// phase transition. Voting may re-enter itself on a tie revote.
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	valid := map[GamePhase][]GamePhase{
		PhaseLobby:           {PhaseClueCollection},
		PhaseClueCollection:  {PhaseDiscussion},
		PhaseDiscussion:      {PhaseVoting},
		PhaseVoting:          {PhaseVoting, PhaseRoundResolution},
		PhaseRoundResolution: {PhaseClueCollection, PhaseGameOver},
		PhaseGameOver:        {PhaseLobby},
	}
	for _, t := range valid[p] {
		if t == target {
			return true
		}
	}
	return false
}

type PlayerRole string

const (
	RoleCivilian   PlayerRole = "civilian"
	RoleUndercover PlayerRole = "undercover"
	RoleMrWhite    PlayerRole = "mr.white"
)

// IsImpostor reports whether the role counts against the civilian team
// when evaluating win conditions.
func (r PlayerRole) IsImpostor() bool {
	return r == RoleUndercover || r == RoleMrWhite
}

// WordPair is the secret word assignment for one game. Civilians see
// CivilianWord, the undercover sees UndercoverWord, Mr. White sees neither.
// Immutable once attached to a room.
type WordPair struct {
	CivilianWord   string `json:"civilian_word"`
	UndercoverWord string `json:"undercover_word"`
}

type Clue struct {
	Username string `json:"username"`
	Clue     string `json:"clue"`
}

type ChatMessage struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Room is one independent game session keyed by a short code. All mutation
// happens under Mu; handlers snapshot what they need, release the lock, then
// broadcast.
type Room struct {
	Code    string    `json:"code"`
	Players []*Player `json:"players"`

	// Members is everyone whose connection is bound to this room,
	// including eliminated players spectating the rest of the game.
	// Players is the active roster only. The room dies when Members
	// empties, not when the roster does.
	Members map[string]*Player `json:"-"`

	WordPair *WordPair `json:"wordPair,omitempty"`

	// Clues is cleared each new round; Chat persists for the room's life.
	Clues []Clue        `json:"clues"`
	Chat  []ChatMessage `json:"chat"`

	Phase              GamePhase `json:"phase"`
	CurrentPlayerIndex int       `json:"currentPlayerIndex"`
	RoundNumber        int       `json:"roundNumber"`

	// Votes maps candidate username to count; Voted is the set of voters
	// that already cast this round. sum(Votes) == len(Voted) at all times.
	// Ballots maps each voter to their chosen candidate so a leaver's
	// pending vote can be retracted mid-ballot.
	Votes   map[string]int      `json:"votes"`
	Voted   map[string]struct{} `json:"-"`
	Ballots map[string]string   `json:"-"`

	// PendingGuess holds the username of an eliminated Mr. White whose
	// post-elimination guess is still outstanding.
	PendingGuess string `json:"-"`

	// NextPlayerID is the join-order counter; IDs are never reused.
	NextPlayerID int `json:"-"`

	CreatedAt time.Time `json:"createdAt"`

	// Timers are server-authoritative. The stored pointer doubles as a
	// staleness guard: a fired callback that no longer matches is ignored.
	DiscussionTimer *time.Timer            `json:"-"`
	GraceTimers     map[string]*time.Timer `json:"-"`

	Mu sync.RWMutex `json:"-"`
}

// HasGameStarted is derived from the phase enum rather than kept as a
// separate flag; it is serialized via RoomSnapshot for client compatibility.
func (r *Room) HasGameStarted() bool {
	return r.Phase != PhaseLobby && r.Phase != PhaseGameOver
}

// IsGameFull reports whether the roster hit the join cap.
func (r *Room) IsGameFull() bool {
	return len(r.Players) >= MaxPlayersPerRoom
}
