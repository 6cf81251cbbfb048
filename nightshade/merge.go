// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

// Merge combines two States into the one the receiving authority
// should adopt: it keeps the higher triplet's primary view and folds
// in whichever operand has the better claim on the runner-up slot.
func Merge(a, b State) State {
	hi, lo := a, b
	if b.BareState.Compare(a.BareState) > 0 {
		hi, lo = b, a
	}

	c := hi
	if !hi.BareState.Endorses.Equal(lo.BareState.Endorses) {
		if lo.BareState.PrimaryConfidence > hi.BareState.SecondaryConfidence {
			c.BareState.SecondaryConfidence = lo.BareState.PrimaryConfidence
			c.SecondaryProof = lo.PrimaryProof
		}
	} else {
		if lo.BareState.SecondaryConfidence > hi.BareState.SecondaryConfidence {
			c.BareState.SecondaryConfidence = lo.BareState.SecondaryConfidence
			c.SecondaryProof = lo.SecondaryProof
		}
	}
	return c
}

// Incompatible reports whether x and y, purportedly from the same
// peer, cannot both be honest: merging them must reproduce the larger
// of the two verbatim, since a peer never legitimately contributes
// runner-up information about its own higher state.
func Incompatible(x, y State) bool {
	merged := Merge(x, y)
	hi := x
	if y.BareState.Compare(x.BareState) > 0 {
		hi = y
	}
	return !merged.BareState.Equal(hi.BareState)
}
