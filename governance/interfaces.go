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
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Clock supplies the current logical time used to gate voting windows.
// Readings must be monotonically non-decreasing.
type Clock interface {
	Now() uint64
}

// SystemClock is a Clock backed by wall time in unix seconds
type SystemClock struct{}

// Now returns the current unix timestamp
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// BalanceOracle supplies voting weights for identity-weighted resolution.
// Weights are looked up at vote time, never cached, so a resolved weight
// always reflects current state.
type BalanceOracle interface {
	// WeightOf returns the voting weight of an identity. Zero means the
	// identity is not eligible to vote.
	WeightOf(identity common.Address) uint64

	// TotalWeight returns the total eligible weight, used as the reference
	// total for percentage-threshold rules.
	TotalWeight() uint64
}

// ProofVerifier verifies anonymous membership proofs against a commitment
// root. The proof system behind it is opaque to the engine.
type ProofVerifier interface {
	Verify(proof []byte, root common.Hash, nullifier common.Hash, signal []byte) bool
}

// AuthorizationCheck gates proposal creation
type AuthorizationCheck interface {
	IsAuthorizedProposer(identity common.Address) bool
}

// Ballot is the input to weight resolution. Exactly two implementations
// exist: IdentityBallot and AnonymousBallot. The engine dispatches on the
// concrete type to pick a resolver.
type Ballot interface {
	// VoterKey returns the ledger key this ballot votes under
	VoterKey() common.Hash
}

// IdentityBallot is a transparent ballot cast under a caller identity.
// Its weight is resolved from the balance oracle at vote time.
type IdentityBallot struct {
	Voter common.Address
}

// VoterKey returns the identity padded to a ledger key
func (b IdentityBallot) VoterKey() common.Hash {
	return common.BytesToHash(b.Voter.Bytes())
}

// AnonymousBallot is a ballot cast under a one-time nullifier, unlocked by
// a membership proof against a published commitment root. The signal binds
// the proof to this particular vote.
type AnonymousBallot struct {
	Proof     []byte
	Root      common.Hash
	Nullifier common.Hash
	Signal    []byte
}

// VoterKey returns the nullifier; the ledger scopes it per proposal, so the
// same nullifier may vote on different proposals.
func (b AnonymousBallot) VoterKey() common.Hash {
	return b.Nullifier
}

// Resolution is the outcome of weight resolution: the ledger key the vote
// is recorded under and the weight it carries. Both ballot kinds resolve to
// the same shape, keeping the ledger and tally agnostic to how eligibility
// was established.
type Resolution struct {
	VoterKey common.Hash
	Weight   uint64
}

// WeightResolver turns a ballot into an eligibility decision and a weight
type WeightResolver interface {
	Resolve(proposalID common.Hash, ballot Ballot) (Resolution, error)
}

// ArchiveStore is the cold-storage sink for finished proposals. Put must
// be durable before returning; the engine never reads archives back.
type ArchiveStore interface {
	Put(key common.Hash, value []byte) error
}
