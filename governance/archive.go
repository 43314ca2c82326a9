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
	"github.com/ethereum/go-ethereum/rlp"
)

// archivedProposal is the cold-storage record for a finished proposal
type archivedProposal struct {
	Proposal *Proposal
	Votes    []*Vote
}

// ArchiveExecuted encodes an executed proposal together with its vote
// records and writes it to the given cold store, keyed by proposal id. The
// proposal stays in the live store; archiving copies, it never deletes.
func (e *Engine) ArchiveExecuted(proposalID common.Hash, store ArchiveStore) error {
	e.mu.Lock()
	p, err := e.store.Get(proposalID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if p.Status != StatusExecuted {
		e.mu.Unlock()
		return ErrNotExecuted
	}
	record := &archivedProposal{Proposal: new(Proposal), Votes: e.ledger.Votes(proposalID)}
	*record.Proposal = *p
	e.mu.Unlock()

	blob, err := rlp.EncodeToBytes(record)
	if err != nil {
		return err
	}
	if err := store.Put(proposalID, blob); err != nil {
		return err
	}
	e.logger.Info("Proposal archived", "id", proposalID, "votes", len(record.Votes), "size", len(blob))
	return nil
}

// DecodeArchivedProposal decodes a cold-storage record produced by
// ArchiveExecuted
func DecodeArchivedProposal(blob []byte) (*Proposal, []*Vote, error) {
	var record archivedProposal
	if err := rlp.DecodeBytes(blob, &record); err != nil {
		return nil, nil, err
	}
	return record.Proposal, record.Votes, nil
}

// MemoryArchive is an in-memory ArchiveStore
type MemoryArchive struct {
	entries map[common.Hash][]byte
}

// NewMemoryArchive creates an empty in-memory archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{entries: make(map[common.Hash][]byte)}
}

// Put stores a record
func (a *MemoryArchive) Put(key common.Hash, value []byte) error {
	a.entries[key] = value
	return nil
}

// Get returns a stored record
func (a *MemoryArchive) Get(key common.Hash) ([]byte, bool) {
	blob, exists := a.entries[key]
	return blob, exists
}
