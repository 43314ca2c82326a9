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

package membership

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// proof is the wire form of a membership proof: the member credential, its
// leaf index and the sibling path up to the root
type proof struct {
	Credential []byte
	Index      uint64
	Siblings   []common.Hash
}

// ProofFor builds a membership proof for the credential committed at the
// given leaf index. The proof verifies against the root of the set as it
// is now; adding members afterwards changes the root and invalidates it.
func (s *Set) ProofFor(index uint64, credential []byte) ([]byte, error) {
	if index >= uint64(len(s.leaves)) {
		return nil, ErrIndexOutOfSet
	}
	siblings := make([]common.Hash, s.depth)
	level := s.leaves
	idx := int(index)
	for l := 0; l < s.depth; l++ {
		siblings[l] = s.node(level, idx^1, l)
		next := make([]common.Hash, (len(level)+1)/2)
		for i := range next {
			next[i] = nodeHash(s.node(level, 2*i, l), s.node(level, 2*i+1, l))
		}
		level = next
		idx >>= 1
	}
	return rlp.EncodeToBytes(&proof{Credential: credential, Index: index, Siblings: siblings})
}

// Nullifier derives the one-time voter key for a credential and signal.
// Scoping the signal per proposal makes the nullifier single-use there
// while leaving the credential free to vote elsewhere.
func Nullifier(credential, signal []byte) common.Hash {
	return crypto.Keccak256Hash(credential, signal)
}

// Verifier checks membership proofs produced by a Set of matching depth.
// It is stateless beyond the depth and safe for concurrent use.
type Verifier struct {
	depth int
}

// NewVerifier creates a verifier for proofs from sets of the given depth
func NewVerifier(depth int) (Verifier, error) {
	if depth < 1 || depth > MaxDepth {
		return Verifier{}, ErrBadDepth
	}
	return Verifier{depth: depth}, nil
}

// Verifier returns a verifier bound to the set's depth
func (s *Set) Verifier() Verifier {
	return Verifier{depth: s.depth}
}

// Verify decodes the proof, folds the sibling path from the credential
// commitment up to the root and checks that the nullifier binds the
// credential to the signal. The path must hold exactly one sibling per
// tree level; a shortened path can never fold to the root of a deeper
// tree. Any decoding or binding failure verifies false.
func (v Verifier) Verify(proofBytes []byte, root common.Hash, nullifier common.Hash, signal []byte) bool {
	var pr proof
	if err := rlp.DecodeBytes(proofBytes, &pr); err != nil {
		return false
	}
	if len(pr.Siblings) != v.depth {
		return false
	}
	if Nullifier(pr.Credential, signal) != nullifier {
		return false
	}
	node := leafHash(pr.Credential)
	idx := pr.Index
	for _, sibling := range pr.Siblings {
		if idx&1 == 1 {
			node = nodeHash(sibling, node)
		} else {
			node = nodeHash(node, sibling)
		}
		idx >>= 1
	}
	return bytes.Equal(node.Bytes(), root.Bytes())
}
