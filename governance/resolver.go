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

// IdentityWeightedResolver resolves transparent ballots. The weight is read
// from the balance oracle on every call so it always reflects current
// state; a cached weight could be replayed after the underlying balance
// moved.
type IdentityWeightedResolver struct {
	oracle BalanceOracle
}

// NewIdentityWeightedResolver creates a resolver backed by the given oracle
func NewIdentityWeightedResolver(oracle BalanceOracle) *IdentityWeightedResolver {
	return &IdentityWeightedResolver{oracle: oracle}
}

// Resolve looks up the ballot identity's current weight. A zero weight
// means the identity is not eligible, and a resolver without an oracle
// rejects every identity ballot.
func (r *IdentityWeightedResolver) Resolve(proposalID common.Hash, ballot Ballot) (Resolution, error) {
	b, ok := ballot.(IdentityBallot)
	if !ok {
		return Resolution{}, ErrIneligibleVoter
	}
	if r.oracle == nil {
		return Resolution{}, ErrIneligibleVoter
	}
	weight := r.oracle.WeightOf(b.Voter)
	if weight == 0 {
		return Resolution{}, ErrIneligibleVoter
	}
	return Resolution{VoterKey: b.VoterKey(), Weight: weight}, nil
}

// AnonymousWeightedResolver resolves anonymous ballots. A ballot is
// eligible when its membership proof verifies against a published
// commitment root; the vote is then keyed by the one-time nullifier and
// carries a fixed per-member weight.
type AnonymousWeightedResolver struct {
	verifier     ProofVerifier
	memberWeight uint64
	roots        map[common.Hash]bool
}

// NewAnonymousWeightedResolver creates a resolver with no published roots
func NewAnonymousWeightedResolver(verifier ProofVerifier, memberWeight uint64) *AnonymousWeightedResolver {
	return &AnonymousWeightedResolver{
		verifier:     verifier,
		memberWeight: memberWeight,
		roots:        make(map[common.Hash]bool),
	}
}

// PublishRoot accepts a commitment root for proof verification. Roots
// accumulate; publishing a new root does not retire earlier ones.
func (r *AnonymousWeightedResolver) PublishRoot(root common.Hash) {
	r.roots[root] = true
}

// RetireRoot stops accepting proofs against a root
func (r *AnonymousWeightedResolver) RetireRoot(root common.Hash) {
	delete(r.roots, root)
}

// IsPublished reports whether proofs against root are accepted
func (r *AnonymousWeightedResolver) IsPublished(root common.Hash) bool {
	return r.roots[root]
}

// Resolve verifies the ballot's membership proof. The nullifier becomes the
// voter key; double use on one proposal surfaces later as a ledger
// rejection, which the engine reports as ErrNullifierReused.
func (r *AnonymousWeightedResolver) Resolve(proposalID common.Hash, ballot Ballot) (Resolution, error) {
	b, ok := ballot.(AnonymousBallot)
	if !ok {
		return Resolution{}, ErrIneligibleVoter
	}
	if !r.roots[b.Root] {
		return Resolution{}, ErrUnknownRoot
	}
	if !r.verifier.Verify(b.Proof, b.Root, b.Nullifier, b.Signal) {
		return Resolution{}, ErrInvalidProof
	}
	return Resolution{VoterKey: b.Nullifier, Weight: r.memberWeight}, nil
}
