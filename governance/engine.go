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
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
)

// Engine is the proposal lifecycle and weighted-voting engine. It wires the
// proposal store, vote ledger, weight resolvers, tally engine and execution
// gate behind one mutex, so every mutating operation applies as a single
// indivisible step against the shared state, in the order the lock is
// acquired. Events and metrics are emitted only after state is committed
// and the lock released.
type Engine struct {
	mu     sync.Mutex
	cfg    *EngineConfig
	clock  Clock
	auth   AuthorizationCheck
	oracle BalanceOracle
	logger log.Logger

	store     *ProposalStore
	ledger    *VoteLedger
	tally     *TallyEngine
	gate      *ExecutionGate
	identity  *IdentityWeightedResolver
	anonymous *AnonymousWeightedResolver

	createdFeed  event.Feed
	voteFeed     event.Feed
	decidedFeed  event.Feed
	executedFeed event.Feed
	scope        event.SubscriptionScope

	metrics *engineMetrics
}

// NewEngine creates a voting engine. The verifier may be nil when anonymous
// voting is not used; anonymous ballots are then rejected as ineligible.
func NewEngine(cfg *EngineConfig, clock Clock, auth AuthorizationCheck, oracle BalanceOracle, verifier ProofVerifier) *Engine {
	if cfg == nil {
		cfg = DefaultEngineConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	e := &Engine{
		cfg:      cfg,
		clock:    clock,
		auth:     auth,
		oracle:   oracle,
		logger:   logger,
		store:    NewProposalStore(),
		ledger:   NewVoteLedger(),
		tally:    NewTallyEngine(),
		gate:     NewExecutionGate(),
		identity: NewIdentityWeightedResolver(oracle),
	}
	if verifier != nil {
		e.anonymous = NewAnonymousWeightedResolver(verifier, cfg.MemberWeight)
	}
	e.initMetrics()
	return e
}

// Stop unsubscribes all event subscribers
func (e *Engine) Stop() {
	e.scope.Close()
}

// PublishRoot accepts a commitment root for anonymous proof verification
func (e *Engine) PublishRoot(root common.Hash) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.anonymous != nil {
		e.anonymous.PublishRoot(root)
		e.logger.Info("Commitment root published", "root", root)
	}
}

// RetireRoot stops accepting anonymous proofs against a root
func (e *Engine) RetireRoot(root common.Hash) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.anonymous != nil {
		e.anonymous.RetireRoot(root)
	}
}

// CreateProposal validates and stores a new proposal and returns its id.
// The proposer must pass the authorization check.
func (e *Engine) CreateProposal(proposer common.Address, description string, windowStart, windowEnd uint64, rule ApprovalRule) (common.Hash, error) {
	e.mu.Lock()
	if e.auth != nil && !e.auth.IsAuthorizedProposer(proposer) {
		e.mu.Unlock()
		return common.Hash{}, ErrUnauthorizedProposer
	}
	now := e.clock.Now()
	p, err := e.store.Create(proposer, description, windowStart, windowEnd, rule, e.cfg.MinVotingPeriod, now)
	if err != nil {
		e.mu.Unlock()
		return common.Hash{}, err
	}
	// A window that is already open needs no separate activation step.
	e.store.MaybeOpen(p, e.oracle, now)
	ev := ProposalCreatedEvent{ID: p.ID, WindowStart: p.WindowStart, WindowEnd: p.WindowEnd}
	e.mu.Unlock()

	e.metrics.proposalsCreated.Inc()
	e.metrics.activeProposals.Inc()
	e.logger.Info("Proposal created", "id", ev.ID, "windowStart", ev.WindowStart, "windowEnd", ev.WindowEnd)
	e.createdFeed.Send(ev)
	return ev.ID, nil
}

// CastVote resolves the ballot's eligibility and weight, records the vote
// and adds it to the tally, all as one step. A rejected ballot leaves the
// ledger and tallies unchanged.
func (e *Engine) CastVote(proposalID common.Hash, support bool, ballot Ballot) (*Vote, error) {
	e.mu.Lock()
	v, err := e.castVote(proposalID, support, ballot)
	var ev VoteCastEvent
	if err == nil {
		ev = VoteCastEvent{ID: v.ProposalID, VoterKey: v.VoterKey, Weight: v.Weight, Support: v.Support}
	}
	e.mu.Unlock()

	if err != nil {
		e.metrics.votesRejected.WithLabelValues(rejectionLabel(err)).Inc()
		return nil, err
	}
	e.metrics.votesAccepted.WithLabelValues(supportLabel(ev.Support)).Inc()
	e.voteFeed.Send(ev)
	cp := *v
	return &cp, nil
}

// castVote holds the engine lock
func (e *Engine) castVote(proposalID common.Hash, support bool, ballot Ballot) (*Vote, error) {
	p, err := e.store.Get(proposalID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	e.store.MaybeOpen(p, e.oracle, now)
	if err := e.tally.CheckWindow(p, now); err != nil {
		return nil, err
	}

	var resolver WeightResolver
	_, anon := ballot.(AnonymousBallot)
	switch {
	case anon && e.anonymous != nil:
		resolver = e.anonymous
	case !anon:
		resolver = e.identity
	default:
		return nil, ErrIneligibleVoter
	}
	res, err := resolver.Resolve(proposalID, ballot)
	if err != nil {
		e.logger.Warn("Vote rejected", "id", proposalID, "err", err)
		return nil, err
	}

	v, err := e.ledger.CheckAndRecord(proposalID, res.VoterKey, res.Weight, support, now)
	if err != nil {
		if anon && errors.Is(err, ErrAlreadyVoted) {
			err = ErrNullifierReused
		}
		e.logger.Warn("Vote rejected", "id", proposalID, "voter", res.VoterKey, "err", err)
		return nil, err
	}
	// The window check above makes this unconditional.
	if err := e.tally.Accumulate(p, res.Weight, support, now); err != nil {
		return nil, err
	}
	return v, nil
}

// CloseAndDecide computes the approval outcome of a proposal whose window
// has elapsed. Safe to call repeatedly; the first call freezes the outcome.
func (e *Engine) CloseAndDecide(proposalID common.Hash) (bool, error) {
	e.mu.Lock()
	p, err := e.store.Get(proposalID)
	if err != nil {
		e.mu.Unlock()
		return false, err
	}
	now := e.clock.Now()
	e.store.MaybeOpen(p, e.oracle, now)
	wasDecided := p.Status == StatusClosed || p.Status == StatusExecuted
	approved, err := e.tally.Decide(p, now)
	var ev ProposalDecidedEvent
	first := err == nil && !wasDecided
	if first {
		ev = ProposalDecidedEvent{ID: p.ID, Approved: approved}
	}
	e.mu.Unlock()

	if err != nil {
		return false, err
	}
	if first {
		e.metrics.proposalsDecided.Inc()
		e.metrics.activeProposals.Dec()
		e.logger.Info("Proposal decided", "id", ev.ID, "approved", ev.Approved)
		e.decidedFeed.Send(ev)
	}
	return approved, nil
}

// Execute transitions a decided proposal to executed, exactly once, and
// returns the frozen approval outcome for the caller to act on. The engine
// performs no governed action itself; state is committed before the
// outcome is released, so re-entering callers find the proposal already
// executed.
func (e *Engine) Execute(proposalID common.Hash) (bool, error) {
	e.mu.Lock()
	p, err := e.store.Get(proposalID)
	if err != nil {
		e.mu.Unlock()
		return false, err
	}
	approved, err := e.gate.Execute(p)
	var ev ProposalExecutedEvent
	if err == nil {
		ev = ProposalExecutedEvent{ID: p.ID, Approved: approved}
	}
	e.mu.Unlock()

	if err != nil {
		return false, err
	}
	e.metrics.proposalsExecuted.Inc()
	e.logger.Info("Proposal executed", "id", ev.ID, "approved", ev.Approved)
	e.executedFeed.Send(ev)
	return approved, nil
}

// GetProposal returns a copy of a proposal
func (e *Engine) GetProposal(proposalID common.Hash) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Snapshot(proposalID)
}

// GetProposalVotes returns copies of all recorded votes for a proposal
func (e *Engine) GetProposalVotes(proposalID common.Hash) ([]*Vote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.store.Get(proposalID); err != nil {
		return nil, err
	}
	return e.ledger.Votes(proposalID), nil
}

// ListActiveProposals returns copies of all proposals not yet decided
func (e *Engine) ListActiveProposals() []*Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Active()
}
