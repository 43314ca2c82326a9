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
	"math/big"
)

// TallyEngine accumulates weighted votes into a proposal's running totals
// and computes the approval decision once the window has elapsed. It
// mutates proposal records owned by the store and carries no state of its
// own.
type TallyEngine struct{}

// NewTallyEngine creates a tally engine
func NewTallyEngine() *TallyEngine {
	return &TallyEngine{}
}

// CheckWindow validates that a vote on p is currently permitted
func (t *TallyEngine) CheckWindow(p *Proposal, now uint64) error {
	if now < p.WindowStart || p.Status == StatusCreated {
		return ErrVotingNotStarted
	}
	if now >= p.WindowEnd || p.Status != StatusOpen {
		return ErrVotingClosed
	}
	return nil
}

// Accumulate adds weight to the proposal's for or against total. The
// window must be open; accumulators are frozen once the proposal closes.
func (t *TallyEngine) Accumulate(p *Proposal, weight uint64, support bool, now uint64) error {
	if err := t.CheckWindow(p, now); err != nil {
		return err
	}
	if support {
		p.TallyFor += weight
	} else {
		p.TallyAgainst += weight
	}
	return nil
}

// Decide computes and freezes the approval outcome once the window has
// elapsed, transitioning the proposal to closed. Repeated calls return the
// memoized outcome rather than recomputing, so a reference total drifting
// after close can never flip the decision.
func (t *TallyEngine) Decide(p *Proposal, now uint64) (bool, error) {
	if p.Status == StatusClosed || p.Status == StatusExecuted {
		return p.Approved, nil
	}
	if now < p.WindowEnd {
		return false, ErrVotingStillOpen
	}
	p.Approved = t.approved(p)
	p.Status = StatusClosed
	return p.Approved, nil
}

// approved evaluates the proposal's rule against its frozen tallies
func (t *TallyEngine) approved(p *Proposal) bool {
	switch p.Rule.Kind {
	case RuleSimpleMajority:
		return p.TallyFor > p.TallyAgainst
	case RuleThresholdPercentage:
		// tallyFor * 100 >= percent * referenceTotal, in big.Int so a
		// large tally cannot overflow uint64 during the comparison.
		lhs := new(big.Int).Mul(new(big.Int).SetUint64(p.TallyFor), big.NewInt(100))
		rhs := new(big.Int).Mul(new(big.Int).SetUint64(p.Rule.Percent), new(big.Int).SetUint64(p.ReferenceTotal))
		return lhs.Cmp(rhs) >= 0
	default:
		return false
	}
}
