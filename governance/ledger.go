// Copyright 2025 The govengine Authors
// This file is part of the govengine library.
//
// The govengine library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govengine library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govengine library. If not, see <http://www.gnu.org/licenses/>.

package governance

import (
	"github.com/ethereum/go-ethereum/common"
)

// voteKey is the composite ledger key. Nullifiers are scoped per proposal
// through this key: the same nullifier may appear under two different
// proposal ids.
type voteKey struct {
	proposal common.Hash
	voter    common.Hash
}

// VoteLedger records which voter key has voted on which proposal, enforcing
// at most one vote record per (proposal, voterKey) pair. Not goroutine-safe:
// the engine serializes all access, making check-and-record indivisible.
type VoteLedger struct {
	votes      map[voteKey]*Vote
	byProposal map[common.Hash][]*Vote
}

// NewVoteLedger creates an empty vote ledger
func NewVoteLedger() *VoteLedger {
	return &VoteLedger{
		votes:      make(map[voteKey]*Vote),
		byProposal: make(map[common.Hash][]*Vote),
	}
}

// CheckAndRecord inserts a vote record for (proposalID, voterKey) if none
// exists, in one step. A second record for the same pair is rejected with
// ErrAlreadyVoted and leaves the ledger unchanged.
func (l *VoteLedger) CheckAndRecord(proposalID, voterKey common.Hash, weight uint64, support bool, now uint64) (*Vote, error) {
	key := voteKey{proposal: proposalID, voter: voterKey}
	if _, exists := l.votes[key]; exists {
		return nil, ErrAlreadyVoted
	}
	v := &Vote{
		ProposalID: proposalID,
		VoterKey:   voterKey,
		Weight:     weight,
		Support:    support,
		Timestamp:  now,
	}
	l.votes[key] = v
	l.byProposal[proposalID] = append(l.byProposal[proposalID], v)
	return v, nil
}

// HasVoted reports whether voterKey has a record on proposalID
func (l *VoteLedger) HasVoted(proposalID, voterKey common.Hash) bool {
	_, exists := l.votes[voteKey{proposal: proposalID, voter: voterKey}]
	return exists
}

// Votes returns copies of all vote records for a proposal, in the order
// they were accepted
func (l *VoteLedger) Votes(proposalID common.Hash) []*Vote {
	records := l.byProposal[proposalID]
	out := make([]*Vote, len(records))
	for i, v := range records {
		cp := *v
		out[i] = &cp
	}
	return out
}
