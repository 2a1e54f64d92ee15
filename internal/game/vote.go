package game

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/scythe504/undercover-backend/internal"
)

// beginVoting opens a ballot over the full current roster. Reached from the
// discussion timer, an early-end request, or a tie revote.
func (e *Engine) beginVoting(room *internal.Room) {
	room.Mu.Lock()
	if room.Phase != internal.PhaseDiscussion && room.Phase != internal.PhaseVoting {
		room.Mu.Unlock()
		return
	}
	room.Phase = internal.PhaseVoting
	room.ResetVoting()
	players := make([]internal.PlayerSnapshot, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, p.Snapshot())
	}
	room.Mu.Unlock()

	e.BroadcastFn(room, internal.Message[internal.VotingData]{
		Type: internal.EventStartVoting,
		Data: internal.VotingData{Players: players},
	})
}

// CastVote records one vote. Duplicate votes are dropped silently; a vote
// for someone not on the ballot is dropped too. Tallying only ever runs
// once every active player has voted. Ties reset the ballot for the whole
// roster and restart voting without advancing the round.
func (e *Engine) CastVote(code, voter, voteFor string) error {
	room, ok := e.store.Get(code)
	if !ok {
		return internal.ErrRoomNotFound
	}

	room.Mu.Lock()
	if room.Phase != internal.PhaseVoting {
		room.Mu.Unlock()
		return internal.ErrWrongPhase
	}
	if _, already := room.Voted[voter]; already {
		room.Mu.Unlock()
		return nil // silently ignored
	}
	if room.FindPlayer(voter) == nil {
		room.Mu.Unlock()
		return nil
	}
	if _, onBallot := room.Votes[voteFor]; !onBallot {
		room.Mu.Unlock()
		return nil
	}

	room.Votes[voteFor]++
	room.Voted[voter] = struct{}{}
	room.Ballots[voter] = voteFor

	votes := make(map[string]int, len(room.Votes))
	for k, v := range room.Votes {
		votes[k] = v
	}
	voterPlayer := room.Members[voter]
	complete := len(room.Voted) == len(room.Players)
	room.Mu.Unlock()

	e.BroadcastFn(room, internal.Message[internal.VoteUpdateData]{
		Type: internal.EventVoteUpdate,
		Data: internal.VoteUpdateData{Votes: votes},
	})
	if voterPlayer != nil {
		e.SendFn(voterPlayer, internal.Message[string]{
			Type: internal.EventVoteConfirmation,
			Data: voter,
		})
	}

	if complete {
		e.tallyVotes(room)
	}
	return nil
}

// tallyVotes resolves a completed ballot: strict plurality, with any tie
// triggering a full-roster revote.
func (e *Engine) tallyVotes(room *internal.Room) {
	room.Mu.Lock()
	if room.Phase != internal.PhaseVoting || len(room.Voted) < len(room.Players) {
		room.Mu.Unlock()
		return
	}

	votes := make(map[string]int, len(room.Votes))
	for k, v := range room.Votes {
		votes[k] = v
	}
	winners := Plurality(room.Votes)

	if len(winners) > 1 {
		room.ResetVoting()
		room.Mu.Unlock()

		e.log.WithFields(logrus.Fields{
			"room": room.Code,
			"tied": winners,
		}).Info("vote tied, revoting")

		e.BroadcastFn(room, internal.Message[internal.VotingCompleteData]{
			Type: internal.EventVotingComplete,
			Data: internal.VotingCompleteData{Votes: votes},
		})
		e.BroadcastFn(room, internal.Message[internal.RevoteData]{
			Type: internal.EventRevote,
			Data: internal.RevoteData{TiedPlayers: winners},
		})
		e.beginVoting(room)
		return
	}

	room.Mu.Unlock()
	e.BroadcastFn(room, internal.Message[internal.VotingCompleteData]{
		Type: internal.EventVotingComplete,
		Data: internal.VotingCompleteData{Votes: votes},
	})

	e.resolveElimination(room, winners[0])
}

// Plurality returns every candidate holding the maximum vote count. The
// result is deterministic for a given vote multiset: candidates are
// collected in a stable order by count comparison only, and a multi-winner
// result always means a tie.
func Plurality(votes map[string]int) []string {
	maxVotes := -1
	var winners []string
	for candidate, count := range votes {
		switch {
		case count > maxVotes:
			maxVotes = count
			winners = []string{candidate}
		case count == maxVotes:
			winners = append(winners, candidate)
		}
	}
	sort.Strings(winners)
	return winners
}
