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
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ProposalStore owns the set of proposal records. Proposals live in an
// arena in creation order and are addressed by a stable hash id; they are
// never deleted. The store is not goroutine-safe: the engine serializes
// all access.
type ProposalStore struct {
	arena []*Proposal
	byID  map[common.Hash]*Proposal
	seq   uint64
}

// NewProposalStore creates an empty proposal store
func NewProposalStore() *ProposalStore {
	return &ProposalStore{
		byID: make(map[common.Hash]*Proposal),
	}
}

// Create validates and stores a new proposal, assigning its id from a
// monotonic sequence. The window must not already be closed or start in
// the past relative to now.
func (s *ProposalStore) Create(proposer common.Address, description string, windowStart, windowEnd uint64, rule ApprovalRule, minPeriod, now uint64) (*Proposal, error) {
	if windowEnd <= windowStart || windowStart < now {
		return nil, ErrInvalidWindow
	}
	if windowEnd-windowStart < minPeriod {
		return nil, ErrInvalidWindow
	}
	switch rule.Kind {
	case RuleSimpleMajority:
	case RuleThresholdPercentage:
		if rule.Percent == 0 || rule.Percent > 100 {
			return nil, ErrInvalidRule
		}
	default:
		return nil, ErrInvalidRule
	}

	s.seq++
	p := &Proposal{
		ID:          proposalID(s.seq, proposer, description, windowStart, windowEnd),
		Proposer:    proposer,
		Description: description,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Rule:        rule,
		CreatedAt:   now,
		Status:      StatusCreated,
	}
	s.arena = append(s.arena, p)
	s.byID[p.ID] = p
	return p, nil
}

// Get returns the live proposal record
func (s *ProposalStore) Get(id common.Hash) (*Proposal, error) {
	p, exists := s.byID[id]
	if !exists {
		return nil, ErrProposalNotFound
	}
	return p, nil
}

// Snapshot returns a copy of the proposal, safe to hand to callers
func (s *ProposalStore) Snapshot(id common.Hash) (*Proposal, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

// Active returns copies of all proposals that have not yet been decided,
// in creation order.
func (s *ProposalStore) Active() []*Proposal {
	active := make([]*Proposal, 0)
	for _, p := range s.arena {
		if p.Status == StatusCreated || p.Status == StatusOpen {
			cp := *p
			active = append(active, &cp)
		}
	}
	return active
}

// Len returns the number of stored proposals
func (s *ProposalStore) Len() int {
	return len(s.arena)
}

// MaybeOpen transitions a created proposal to open once its window start
// has been reached, snapshotting the oracle's total weight as the reference
// total for threshold rules. Operations are serialized, so the first one to
// observe the open window takes the snapshot; it is never re-read.
func (s *ProposalStore) MaybeOpen(p *Proposal, oracle BalanceOracle, now uint64) {
	if p.Status != StatusCreated || now < p.WindowStart {
		return
	}
	p.Status = StatusOpen
	if oracle != nil {
		p.ReferenceTotal = oracle.TotalWeight()
	}
}

// proposalID derives a proposal id from the creation sequence number and
// the immutable proposal fields
func proposalID(seq uint64, proposer common.Address, description string, windowStart, windowEnd uint64) common.Hash {
	buf := make([]byte, 8+common.AddressLength+8+8)
	binary.BigEndian.PutUint64(buf[0:8], seq)
	copy(buf[8:8+common.AddressLength], proposer.Bytes())
	binary.BigEndian.PutUint64(buf[8+common.AddressLength:], windowStart)
	binary.BigEndian.PutUint64(buf[16+common.AddressLength:], windowEnd)
	return crypto.Keccak256Hash(buf, []byte(description))
}
