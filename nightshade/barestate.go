// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"fmt"

	"github.com/luxfi/ids"
)

// BareState is the opinion triplet: how much confidence the authority has
// in the outcome it endorses, and the confidence of the runner-up.
//
// Field order matters: ordering is lexicographic over the declared order
// (PrimaryConfidence, Endorses, SecondaryConfidence).
type BareState struct {
	PrimaryConfidence   int64
	Endorses            BlockHeader
	SecondaryConfidence int64
}

// EmptyBareState is the sentinel used for peers we have not heard from
// yet. It is strictly less than every valid triplet under Compare.
func EmptyBareState() BareState {
	return BareState{
		PrimaryConfidence:   -1,
		Endorses:            BlockHeader{Author: 0, Hash: ids.ID{}},
		SecondaryConfidence: -1,
	}
}

// NewBareState builds the starting triplet for an authority proposing header.
func NewBareState(header BlockHeader) BareState {
	return BareState{
		PrimaryConfidence:   0,
		Endorses:            header,
		SecondaryConfidence: 0,
	}
}

// IsEmpty reports whether bs is the sentinel-empty triplet.
func (bs BareState) IsEmpty() bool {
	return bs.PrimaryConfidence == -1 && bs.SecondaryConfidence == -1
}

// Valid checks the triplet's self-consistency invariant: either the
// sentinel-empty form, or PrimaryConfidence >= SecondaryConfidence >= 0.
func (bs BareState) Valid() bool {
	if bs.IsEmpty() {
		return true
	}
	return bs.PrimaryConfidence >= bs.SecondaryConfidence && bs.SecondaryConfidence >= 0
}

// Compare implements the total lexicographic order over
// (PrimaryConfidence, Endorses, SecondaryConfidence). It returns a
// negative number if bs < o, zero if equal, positive if bs > o.
func (bs BareState) Compare(o BareState) int {
	if bs.PrimaryConfidence != o.PrimaryConfidence {
		if bs.PrimaryConfidence < o.PrimaryConfidence {
			return -1
		}
		return 1
	}
	if !bs.Endorses.Equal(o.Endorses) {
		if bs.Endorses.Less(o.Endorses) {
			return -1
		}
		return 1
	}
	if bs.SecondaryConfidence != o.SecondaryConfidence {
		if bs.SecondaryConfidence < o.SecondaryConfidence {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports bs < o under Compare.
func (bs BareState) Less(o BareState) bool { return bs.Compare(o) < 0 }

// Equal reports bs == o under Compare.
func (bs BareState) Equal(o BareState) bool { return bs.Compare(o) == 0 }

// Max returns the greater of a and b under Compare, and the other (min).
func Max(a, b BareState) (hi, lo BareState) {
	if a.Compare(b) >= 0 {
		return a, b
	}
	return b, a
}

func (bs BareState) String() string {
	return fmt.Sprintf("BareState(primary=%d, endorses=%s, secondary=%d)", bs.PrimaryConfidence, bs.Endorses, bs.SecondaryConfidence)
}
