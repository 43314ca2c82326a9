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

// ExecutionGate transitions a decided proposal to executed exactly once
// and hands the frozen approval outcome to the caller. The governed action
// itself (fund release, parameter change) belongs to the caller; the gate
// only flips state, and it flips state before the outcome is released, so
// a collaborator re-entering the engine finds the proposal already
// executed.
type ExecutionGate struct{}

// NewExecutionGate creates an execution gate
func NewExecutionGate() *ExecutionGate {
	return &ExecutionGate{}
}

// Execute marks a closed proposal as executed and returns its approval
// outcome. The second call on the same proposal always fails with
// ErrAlreadyExecuted.
func (g *ExecutionGate) Execute(p *Proposal) (bool, error) {
	if p.Executed || p.Status == StatusExecuted {
		return false, ErrAlreadyExecuted
	}
	if p.Status != StatusClosed {
		return false, ErrNotClosed
	}
	p.Executed = true
	p.Status = StatusExecuted
	return p.Approved, nil
}
