package internal

import "errors"

// Engine error taxonomy. Join-time capacity failures are distinct so clients
// can tell "pick another room" from "too late". DuplicateVote is defined for
// completeness but the voting engine drops duplicates silently.
var (
	ErrRoomNotFound        = errors.New("room-not-found")
	ErrRoomFull            = errors.New("room-full")
	ErrGameAlreadyStarted  = errors.New("game-already-started")
	ErrInsufficientPlayers = errors.New("insufficient-players")
	ErrNotYourTurn         = errors.New("not-your-turn")
	ErrDuplicateVote       = errors.New("duplicate-vote")
	ErrInvalidGuessTarget  = errors.New("invalid-guess-target")
	ErrWrongPhase          = errors.New("wrong-phase")
	ErrUsernameTaken       = errors.New("username-taken")
)
