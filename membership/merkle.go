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

// Package membership maintains a Keccak Merkle commitment set over member
// credentials and verifies membership proofs against its root. The
// verifier satisfies the engine's proof-verifier capability; note that
// proofs produced here reveal the member credential, so deployments that
// need real anonymity must substitute a zero-knowledge verifier behind the
// same interface.
package membership

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Set errors
var (
	ErrSetFull       = errors.New("commitment set is full")
	ErrIndexOutOfSet = errors.New("index outside commitment set")
	ErrBadDepth      = errors.New("tree depth out of range")
)

// MaxDepth bounds tree depth, and with it proof length
const MaxDepth = 32

// Hashing is domain separated: leaves and interior nodes carry distinct
// prefix bytes, so the byte representation of two interior nodes can never
// be replayed as a member credential.
var (
	leafPrefix = []byte{0x00}
	nodePrefix = []byte{0x01}
)

// leafHash commits a member credential
func leafHash(credential []byte) common.Hash {
	return crypto.Keccak256Hash(leafPrefix, credential)
}

// nodeHash combines two child hashes into an interior node
func nodeHash(left, right common.Hash) common.Hash {
	return crypto.Keccak256Hash(nodePrefix, left.Bytes(), right.Bytes())
}

// Set is a fixed-depth Merkle tree over member credential commitments.
// Empty positions hold zero-subtree hashes, so the root is defined for any
// fill level.
type Set struct {
	depth  int
	leaves []common.Hash
	zeros  []common.Hash
}

// NewSet creates a commitment set of capacity 1<<depth
func NewSet(depth int) (*Set, error) {
	if depth < 1 || depth > MaxDepth {
		return nil, ErrBadDepth
	}
	zeros := make([]common.Hash, depth+1)
	for i := 1; i <= depth; i++ {
		zeros[i] = nodeHash(zeros[i-1], zeros[i-1])
	}
	return &Set{depth: depth, zeros: zeros}, nil
}

// Add commits a member credential and returns its leaf index
func (s *Set) Add(credential []byte) (uint64, error) {
	if uint64(len(s.leaves)) >= uint64(1)<<s.depth {
		return 0, ErrSetFull
	}
	s.leaves = append(s.leaves, leafHash(credential))
	return uint64(len(s.leaves) - 1), nil
}

// Len returns the number of committed members
func (s *Set) Len() int {
	return len(s.leaves)
}

// Root returns the current commitment root
func (s *Set) Root() common.Hash {
	level := s.leaves
	for l := 0; l < s.depth; l++ {
		next := make([]common.Hash, (len(level)+1)/2)
		for i := range next {
			next[i] = nodeHash(s.node(level, 2*i, l), s.node(level, 2*i+1, l))
		}
		level = next
	}
	if len(level) == 0 {
		return s.zeros[s.depth]
	}
	return level[0]
}

// node returns the level entry at i, or the zero-subtree hash when the
// position is beyond the filled part of the tree
func (s *Set) node(level []common.Hash, i, l int) common.Hash {
	if i < len(level) {
		return level[i]
	}
	return s.zeros[l]
}
