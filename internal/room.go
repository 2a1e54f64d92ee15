package internal

// Methods on Room. All of these assume the caller holds r.Mu.

// FindPlayer returns the player with the given username, or nil.
func (r *Room) FindPlayer(username string) *Player {
	for _, p := range r.Players {
		if p.Username == username {
			return p
		}
	}
	return nil
}

// PlayerIndex returns the roster index for username, or -1.
func (r *Room) PlayerIndex(username string) int {
	for i, p := range r.Players {
		if p.Username == username {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is, or nil when the
// roster is empty.
func (r *Room) CurrentPlayer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	if r.CurrentPlayerIndex < 0 || r.CurrentPlayerIndex >= len(r.Players) {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

// RemovePlayerAt compacts the roster and re-clamps the turn cursor so that
// 0 <= CurrentPlayerIndex < len(Players) holds whenever players remain.
// The cursor decrements when the removed index is at or before it.
func (r *Room) RemovePlayerAt(idx int) *Player {
	if idx < 0 || idx >= len(r.Players) {
		return nil
	}
	removed := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	if idx <= r.CurrentPlayerIndex && r.CurrentPlayerIndex > 0 {
		r.CurrentPlayerIndex--
	}
	if r.CurrentPlayerIndex >= len(r.Players) {
		r.CurrentPlayerIndex = 0
	}
	return removed
}

// CivilianCount counts remaining civilian roles.
func (r *Room) CivilianCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Role == RoleCivilian {
			n++
		}
	}
	return n
}

// ImpostorCount counts remaining undercover plus Mr. White roles.
func (r *Room) ImpostorCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Role.IsImpostor() {
			n++
		}
	}
	return n
}

// ResetVoting reinitializes the ballot for the full current roster. Every
// present player gets a zero-count entry, satisfying the invariant that
// vote keys correspond to players present when voting started.
func (r *Room) ResetVoting() {
	r.Votes = make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		r.Votes[p.Username] = 0
	}
	r.Voted = make(map[string]struct{}, len(r.Players))
	r.Ballots = make(map[string]string, len(r.Players))
}

// RetractVote undoes a voter's cast ballot, if any. Used when a voter
// leaves mid-ballot so a departed player's vote never stands in for a
// live player's.
func (r *Room) RetractVote(voter string) {
	choice, ok := r.Ballots[voter]
	if !ok {
		return
	}
	r.Votes[choice]--
	delete(r.Voted, voter)
	delete(r.Ballots, voter)
}

// BeginNewRound clears per-round state and advances the round counter.
func (r *Room) BeginNewRound() {
	r.ResetVoting()
	r.Clues = r.Clues[:0]
	r.CurrentPlayerIndex = 0
	r.RoundNumber++
	r.PendingGuess = ""
	r.Phase = PhaseClueCollection
}

// Snapshot builds the broadcast view of the room. Caller holds at least a
// read lock.
func (r *Room) Snapshot() RoomSnapshot {
	players := make([]PlayerSnapshot, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p.Snapshot())
	}
	clues := make([]Clue, len(r.Clues))
	copy(clues, r.Clues)
	votes := make(map[string]int, len(r.Votes))
	for k, v := range r.Votes {
		votes[k] = v
	}
	return RoomSnapshot{
		Code:               r.Code,
		Players:            players,
		Clues:              clues,
		Phase:              r.Phase,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		RoundNumber:        r.RoundNumber,
		Votes:              votes,
		HasGameStarted:     r.HasGameStarted(),
		IsGameFull:         r.IsGameFull(),
	}
}
