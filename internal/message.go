package internal

// Message is the wire envelope for every websocket frame, inbound and
// outbound. Data is type-parameterized so handlers can decode lazily with
// json.RawMessage and emit strongly-typed payloads.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound message types (client -> server).
const (
	MsgJoinRoom      = "join-room"
	MsgLeaveRoom     = "leave-room"
	MsgStartGame     = "start-game"
	MsgSubmitClue    = "submitClue"
	MsgSubmitMessage = "submitMessage"
	MsgStartVoting   = "startVoting"
	MsgCastVote      = "cast-vote"
	MsgGuess         = "guess"
)

// Outbound event types (server -> room, or -> one client where noted).
const (
	EventPlayerJoined       = "player-joined"
	EventPlayerJoinedLobby  = "player-joined-lobby"
	EventPlayerLeft         = "player-left"
	EventStartGame          = "start-game"
	EventRoleAssigned       = "role-assigned" // private
	EventClueSubmitted      = "clueSubmitted"
	EventUpdateTurn         = "update-turn"
	EventStartDiscussion    = "startDiscussion"
	EventStartVoting        = "startVoting"
	EventVoteUpdate         = "vote-update"
	EventVoteConfirmation   = "vote-confirmation" // private
	EventVotingComplete     = "voting-complete"
	EventRevote             = "revote"
	EventPlayerEliminated   = "player-eliminated"
	EventGuessPrompt        = "guess-prompt" // private
	EventGuessResult        = "guess-result" // private
	EventNewRound           = "new-round"
	EventGameOver           = "game-over"
	EventNewMessage         = "newMessage"
	EventPlayerDisconnected = "player-disconnected"
	EventPlayerReconnected  = "player-reconnected"
	EventRejoinRoom         = "rejoin-room" // private
	EventError              = "error"       // private
)

// RoomSnapshot is the full-room view sent in join/turn/round events. It
// mirrors the Room's serialized shape plus the derived flags.
type RoomSnapshot struct {
	Code               string           `json:"code"`
	Players            []PlayerSnapshot `json:"players"`
	Clues              []Clue           `json:"clues"`
	Phase              GamePhase        `json:"phase"`
	CurrentPlayerIndex int              `json:"currentPlayerIndex"`
	RoundNumber        int              `json:"roundNumber"`
	Votes              map[string]int   `json:"votes"`
	HasGameStarted     bool             `json:"hasGameStarted"`
	IsGameFull         bool             `json:"isGameFull"`
}

type JoinRoomData struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

type LeaveRoomData struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

type StartGameData struct {
	Code string `json:"room"`
}

type SubmitClueData struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
	Clue     string `json:"clue"`
}

type SubmitMessageData struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type StartVotingData struct {
	Code string `json:"room"`
}

type CastVoteData struct {
	Code    string `json:"code"`
	Voter   string `json:"voter"`
	VoteFor string `json:"voteFor"`
}

type GuessData struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Guess    string `json:"guess"`
}

type PlayerJoinedData struct {
	Room     RoomSnapshot `json:"room"`
	Username string       `json:"username"`
}

type PlayerJoinedLobbyData struct {
	RoomData RoomSnapshot `json:"roomData"`
}

type PlayerLeftData struct {
	Username string       `json:"username"`
	Room     RoomSnapshot `json:"room"`
}

type RoleAssignedData struct {
	Role PlayerRole `json:"role"`
	Word string     `json:"word,omitempty"`
}

type ClueSubmittedData struct {
	Username string       `json:"username"`
	Clue     string       `json:"clue"`
	Room     RoomSnapshot `json:"serverRoom"`
}

type TurnData struct {
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	Room               RoomSnapshot `json:"room"`
}

type DiscussionData struct {
	Room     RoomSnapshot `json:"room"`
	Duration int64        `json:"duration_ms"`
}

type VotingData struct {
	Players []PlayerSnapshot `json:"players"`
}

type VoteUpdateData struct {
	Votes map[string]int `json:"votes"`
}

type VotingCompleteData struct {
	Votes map[string]int `json:"votes"`
}

type RevoteData struct {
	TiedPlayers []string `json:"tiedPlayers"`
}

type PlayerEliminatedData struct {
	Username string     `json:"username"`
	Role     PlayerRole `json:"role"`
}

type GuessResultData struct {
	Correct      bool   `json:"correct"`
	CivilianWord string `json:"civilianWord"`
}

type NewRoundData struct {
	RoundNumber int          `json:"roundNumber"`
	Room        RoomSnapshot `json:"room"`
}

type GameOverData struct {
	Winner string `json:"winner"`
}

type ChatBroadcastData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type PlayerDisconnectedData struct {
	Username string `json:"username"`
	EndTime  int64  `json:"endTime"` // unix ms when the grace window expires
}

type PlayerReconnectedData struct {
	Username string       `json:"username"`
	Room     RoomSnapshot `json:"room"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
