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
	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
)

// ProposalStatus represents the lifecycle status of a proposal
type ProposalStatus uint8

const (
	StatusCreated  ProposalStatus = 0x00 // created, voting window not yet open
	StatusOpen     ProposalStatus = 0x01 // voting window open
	StatusClosed   ProposalStatus = 0x02 // window elapsed, outcome decided
	StatusExecuted ProposalStatus = 0x03 // outcome handed to the action collaborator
)

// String returns a human-readable status name
func (s ProposalStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

// RuleKind represents the kind of approval rule attached to a proposal
type RuleKind uint8

const (
	RuleSimpleMajority      RuleKind = 0x01 // for-votes > against-votes
	RuleThresholdPercentage RuleKind = 0x02 // for-votes >= percent of reference total
)

// ApprovalRule determines how a proposal's accumulated tallies are turned
// into an approval decision once the voting window has elapsed.
type ApprovalRule struct {
	Kind    RuleKind
	Percent uint64 // threshold percentage in (0, 100], RuleThresholdPercentage only
}

// SimpleMajority returns the rule approving a proposal when for-votes
// strictly exceed against-votes.
func SimpleMajority() ApprovalRule {
	return ApprovalRule{Kind: RuleSimpleMajority}
}

// ThresholdPercentage returns the rule approving a proposal when for-votes
// reach percent of the reference total snapshotted at window open.
func ThresholdPercentage(percent uint64) ApprovalRule {
	return ApprovalRule{Kind: RuleThresholdPercentage, Percent: percent}
}

// Proposal represents a governance proposal
type Proposal struct {
	ID          common.Hash    // proposal id, assigned at creation
	Proposer    common.Address // authorized proposer
	Description string         // opaque text payload
	WindowStart uint64         // first timestamp at which votes are accepted
	WindowEnd   uint64         // votes at or after this timestamp are rejected
	Rule        ApprovalRule
	CreatedAt   uint64 // clock reading at creation

	Status         ProposalStatus
	TallyFor       uint64
	TallyAgainst   uint64
	ReferenceTotal uint64 // oracle total weight, snapshotted at window open
	Approved       bool   // meaningful once Status >= StatusClosed
	Executed       bool   // set exactly once by the execution gate
}

// Vote represents a recorded vote on a proposal
type Vote struct {
	ProposalID common.Hash
	VoterKey   common.Hash // identity-derived key or a consumed nullifier
	Weight     uint64
	Support    bool // true = for, false = against
	Timestamp  uint64
}

// EngineConfig holds the configuration for the voting engine
type EngineConfig struct {
	// Weight carried by each anonymous member vote. Anonymity precludes
	// balance-proportional weighting, so every accepted anonymous ballot
	// counts this much.
	MemberWeight uint64

	// Minimum allowed window length (windowEnd - windowStart).
	MinVotingPeriod uint64

	// Registry for engine metrics. Nil disables registration.
	PromRegistry prometheus.Registerer

	// Logger used by all engine components. Nil uses the root logger.
	Logger log.Logger
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MemberWeight:    1,
		MinVotingPeriod: 1,
	}
}
