// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nightshade implements the Nightshade byzantine-fault-tolerant
// agreement protocol: a fixed set of authorities converge on one block
// proposal by merging BLS-proof-backed opinion triplets received from
// their peers.
package nightshade

import (
	"fmt"

	"github.com/luxfi/ids"
)

// AuthorityId addresses one of the N fixed participants in a session.
type AuthorityId uint64

// BlockHeader binds a proposal's content hash to the authority proposing it.
type BlockHeader struct {
	Author AuthorityId
	Hash   ids.ID
}

// Equal reports whether both fields of two BlockHeaders match.
func (b BlockHeader) Equal(o BlockHeader) bool {
	return b.Author == o.Author && b.Hash == o.Hash
}

// Less orders BlockHeaders lexicographically over (Author, Hash).
func (b BlockHeader) Less(o BlockHeader) bool {
	if b.Author != o.Author {
		return b.Author < o.Author
	}
	for i := range b.Hash {
		if b.Hash[i] != o.Hash[i] {
			return b.Hash[i] < o.Hash[i]
		}
	}
	return false
}

func (b BlockHeader) String() string {
	return fmt.Sprintf("BlockHeader(author=%d, hash=%s)", b.Author, b.Hash)
}
