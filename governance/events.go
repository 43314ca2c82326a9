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
	"github.com/ethereum/go-ethereum/event"
)

// ProposalCreatedEvent is posted when a proposal is stored
type ProposalCreatedEvent struct {
	ID          common.Hash
	WindowStart uint64
	WindowEnd   uint64
}

// VoteCastEvent is posted when a vote is accepted and tallied
type VoteCastEvent struct {
	ID       common.Hash
	VoterKey common.Hash
	Weight   uint64
	Support  bool
}

// ProposalDecidedEvent is posted the first time a proposal's outcome is
// computed
type ProposalDecidedEvent struct {
	ID       common.Hash
	Approved bool
}

// ProposalExecutedEvent is posted when the execution gate flips
type ProposalExecutedEvent struct {
	ID       common.Hash
	Approved bool
}

// SubscribeProposalCreated subscribes to proposal creation events
func (e *Engine) SubscribeProposalCreated(ch chan<- ProposalCreatedEvent) event.Subscription {
	return e.scope.Track(e.createdFeed.Subscribe(ch))
}

// SubscribeVoteCast subscribes to accepted-vote events
func (e *Engine) SubscribeVoteCast(ch chan<- VoteCastEvent) event.Subscription {
	return e.scope.Track(e.voteFeed.Subscribe(ch))
}

// SubscribeProposalDecided subscribes to decision events
func (e *Engine) SubscribeProposalDecided(ch chan<- ProposalDecidedEvent) event.Subscription {
	return e.scope.Track(e.decidedFeed.Subscribe(ch))
}

// SubscribeProposalExecuted subscribes to execution events
func (e *Engine) SubscribeProposalExecuted(ch chan<- ProposalExecutedEvent) event.Subscription {
	return e.scope.Track(e.executedFeed.Subscribe(ch))
}
