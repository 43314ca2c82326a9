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

import "errors"

// Creation errors
var (
	ErrInvalidWindow        = errors.New("invalid voting window")
	ErrInvalidRule          = errors.New("invalid approval rule")
	ErrUnauthorizedProposer = errors.New("proposer is not authorized")
)

// Lookup errors
var (
	ErrProposalNotFound = errors.New("proposal not found")
)

// Voting errors
var (
	ErrVotingNotStarted = errors.New("voting window has not started")
	ErrVotingClosed     = errors.New("voting window has closed")
	ErrVotingStillOpen  = errors.New("voting window is still open")
	ErrAlreadyVoted     = errors.New("voter has already voted on this proposal")
	ErrIneligibleVoter  = errors.New("voter is not eligible")
)

// Anonymous voting errors
var (
	ErrInvalidProof    = errors.New("membership proof verification failed")
	ErrNullifierReused = errors.New("nullifier already consumed for this proposal")
	ErrUnknownRoot     = errors.New("commitment root is not published")
)

// Execution errors
var (
	ErrNotClosed       = errors.New("proposal has not been decided")
	ErrAlreadyExecuted = errors.New("proposal already executed")
	ErrNotExecuted     = errors.New("proposal has not been executed")
)
