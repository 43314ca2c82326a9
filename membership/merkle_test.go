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
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

func TestNewSet_DepthBounds(t *testing.T) {
	for _, depth := range []int{0, -1, MaxDepth + 1} {
		if _, err := NewSet(depth); !errors.Is(err, ErrBadDepth) {
			t.Errorf("depth %d: expected ErrBadDepth, got %v", depth, err)
		}
	}
	if _, err := NewSet(MaxDepth); err != nil {
		t.Errorf("max depth must be accepted: %v", err)
	}
}

func TestSet_RootChangesOnAdd(t *testing.T) {
	set, _ := NewSet(4)
	emptyRoot := set.Root()

	if _, err := set.Add([]byte("alice")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	oneRoot := set.Root()
	if oneRoot == emptyRoot {
		t.Error("root unchanged after adding a member")
	}

	set.Add([]byte("bob"))
	if set.Root() == oneRoot {
		t.Error("root unchanged after adding a second member")
	}
	if set.Len() != 2 {
		t.Errorf("expected 2 members, got %d", set.Len())
	}
}

func TestSet_Full(t *testing.T) {
	set, _ := NewSet(2)
	for i := 0; i < 4; i++ {
		if _, err := set.Add([]byte{byte(i)}); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	if _, err := set.Add([]byte{0xff}); !errors.Is(err, ErrSetFull) {
		t.Errorf("expected ErrSetFull, got %v", err)
	}
}

func TestVerifier_Verify(t *testing.T) {
	set, _ := NewSet(8)
	verifier := set.Verifier()

	members := make([][]byte, 5)
	for i := range members {
		members[i] = []byte(fmt.Sprintf("member-%d", i))
		if _, err := set.Add(members[i]); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	root := set.Root()
	signal := []byte("proposal-1")

	for i, credential := range members {
		proof, err := set.ProofFor(uint64(i), credential)
		if err != nil {
			t.Fatalf("proof for member %d failed: %v", i, err)
		}
		nullifier := Nullifier(credential, signal)
		if !verifier.Verify(proof, root, nullifier, signal) {
			t.Errorf("valid proof for member %d rejected", i)
		}
	}
}

func TestVerifier_Rejections(t *testing.T) {
	set, _ := NewSet(8)
	verifier := set.Verifier()

	credential := []byte("alice")
	index, _ := set.Add(credential)
	set.Add([]byte("bob"))
	root := set.Root()
	signal := []byte("proposal-1")
	proof, _ := set.ProofFor(index, credential)
	nullifier := Nullifier(credential, signal)

	if verifier.Verify(proof, common.HexToHash("0x01"), nullifier, signal) {
		t.Error("proof verified against the wrong root")
	}
	if verifier.Verify(proof, root, common.HexToHash("0x01"), signal) {
		t.Error("proof verified with the wrong nullifier")
	}
	if verifier.Verify(proof, root, nullifier, []byte("proposal-2")) {
		t.Error("proof verified with the wrong signal")
	}
	if verifier.Verify([]byte("garbage"), root, nullifier, signal) {
		t.Error("undecodable proof verified")
	}

	// A proof for a credential that was never committed.
	outsider, err := set.ProofFor(index, []byte("mallory"))
	if err != nil {
		t.Fatalf("building outsider proof failed: %v", err)
	}
	if verifier.Verify(outsider, root, Nullifier([]byte("mallory"), signal), signal) {
		t.Error("proof for an uncommitted credential verified")
	}
}

func TestNewVerifier_DepthBounds(t *testing.T) {
	for _, depth := range []int{0, -1, MaxDepth + 1} {
		if _, err := NewVerifier(depth); !errors.Is(err, ErrBadDepth) {
			t.Errorf("depth %d: expected ErrBadDepth, got %v", depth, err)
		}
	}
	if _, err := NewVerifier(MaxDepth); err != nil {
		t.Errorf("max depth must be accepted: %v", err)
	}
}

// An interior node pair presented as a "credential" with a shortened
// sibling path must never fold to the root: the path length is pinned to
// the tree depth and leaf hashing is domain separated from interior
// hashing.
func TestVerifier_InteriorNodeForgery(t *testing.T) {
	set, _ := NewSet(3)
	verifier := set.Verifier()

	for i := 0; i < 4; i++ {
		if _, err := set.Add([]byte(fmt.Sprintf("member-%d", i))); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}
	root := set.Root()
	signal := []byte("proposal-1")

	// The level-2 interior nodes, recomputed the way an observer of the
	// public commitments would.
	left := nodeHash(
		nodeHash(leafHash([]byte("member-0")), leafHash([]byte("member-1"))),
		nodeHash(leafHash([]byte("member-2")), leafHash([]byte("member-3"))),
	)
	right := set.zeros[2]
	if nodeHash(left, right) != root {
		t.Fatal("test reconstruction of the tree is wrong")
	}

	forgedCredential := append(left.Bytes(), right.Bytes()...)
	nullifier := Nullifier(forgedCredential, signal)

	// Shortened paths folding the forged credential toward the root.
	shortPaths := [][]common.Hash{
		{},        // credential claimed to be the root itself
		{right},   // credential claimed to be the left level-2 node
		{set.zeros[1], set.zeros[2]}, // two-level variant
	}
	for _, siblings := range shortPaths {
		blob, err := rlp.EncodeToBytes(&proof{Credential: forgedCredential, Index: 0, Siblings: siblings})
		if err != nil {
			t.Fatalf("failed to encode forged proof: %v", err)
		}
		if verifier.Verify(blob, root, nullifier, signal) {
			t.Fatalf("forged proof with %d siblings verified against the root", len(siblings))
		}
	}

	// Even at full depth the domain separation keeps an interior pair
	// from hashing to an interior node.
	fullPath := []common.Hash{set.zeros[0], set.zeros[1], set.zeros[2]}
	blob, _ := rlp.EncodeToBytes(&proof{Credential: forgedCredential, Index: 0, Siblings: fullPath})
	if verifier.Verify(blob, root, nullifier, signal) {
		t.Fatal("forged full-depth proof verified against the root")
	}
}

func TestVerifier_DepthMismatch(t *testing.T) {
	set, _ := NewSet(4)
	credential := []byte("alice")
	index, _ := set.Add(credential)
	proof, _ := set.ProofFor(index, credential)
	signal := []byte("s")
	nullifier := Nullifier(credential, signal)

	other, _ := NewVerifier(5)
	if other.Verify(proof, set.Root(), nullifier, signal) {
		t.Error("proof verified under a verifier of the wrong depth")
	}
	if !set.Verifier().Verify(proof, set.Root(), nullifier, signal) {
		t.Error("proof rejected under the matching depth")
	}
}

func TestSet_ProofInvalidatedByGrowth(t *testing.T) {
	set, _ := NewSet(4)
	verifier := set.Verifier()

	credential := []byte("alice")
	index, _ := set.Add(credential)
	proof, _ := set.ProofFor(index, credential)
	oldRoot := set.Root()

	set.Add([]byte("bob"))
	signal := []byte("s")
	nullifier := Nullifier(credential, signal)

	if verifier.Verify(proof, set.Root(), nullifier, signal) {
		t.Error("stale proof verified against the new root")
	}
	if !verifier.Verify(proof, oldRoot, nullifier, signal) {
		t.Error("proof must still verify against the root it was built for")
	}
}

func TestSet_ProofForOutOfRange(t *testing.T) {
	set, _ := NewSet(4)
	if _, err := set.ProofFor(0, []byte("x")); !errors.Is(err, ErrIndexOutOfSet) {
		t.Errorf("expected ErrIndexOutOfSet, got %v", err)
	}
}
