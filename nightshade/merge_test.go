// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func st(bs BareState) State { return State{BareState: bs} }

func TestMergeIdempotentOnMax(t *testing.T) {
	s := st(BareState{3, h(1), 1})
	merged := Merge(s, s)
	assert.True(t, merged.BareState.Equal(s.BareState))
}

func TestMergeWithSentinelIsIdentity(t *testing.T) {
	real := st(BareState{2, h(1), 1})
	sentinel := st(EmptyBareState())
	merged := Merge(real, sentinel)
	assert.True(t, merged.BareState.Equal(real.BareState))
}

func TestMergeCommutativeWhenDifferent(t *testing.T) {
	a := st(BareState{4, h(1), 2})
	b := st(BareState{2, h(2), 1})
	ab := Merge(a, b)
	ba := Merge(b, a)
	assert.True(t, ab.BareState.Equal(ba.BareState))
}

func TestMergeDifferentEndorsesPromotesRunnerUp(t *testing.T) {
	hi := st(BareState{4, h(1), 1})
	lo := st(BareState{3, h(2), 0}) // lo.primary(3) > hi.secondary(1)
	merged := Merge(hi, lo)
	assert.Equal(t, int64(3), merged.BareState.SecondaryConfidence)
	assert.True(t, merged.BareState.Endorses.Equal(h(1)))
}

func TestMergeSameEndorsesPromotesHigherSecondary(t *testing.T) {
	a := st(BareState{4, h(1), 1})
	b := st(BareState{4, h(1), 3})
	merged := Merge(a, b)
	assert.Equal(t, int64(3), merged.BareState.SecondaryConfidence)
}

func TestIncompatibleStatesSelfIsFalse(t *testing.T) {
	s := st(BareState{3, h(1), 1})
	assert.False(t, Incompatible(s, s))
}

func TestIncompatibleStatesDetectsEquivocation(t *testing.T) {
	x := st(BareState{4, h(1), 2})
	y := st(BareState{3, h(1), 3})
	assert.True(t, Incompatible(x, y))
}

func TestIncompatibleStatesHonestProgressionIsFalse(t *testing.T) {
	prior := st(BareState{3, h(1), 1})
	next := st(BareState{4, h(1), 1})
	assert.False(t, Incompatible(prior, next))
}

func TestIncompatibleStatesSentinelSecondOperand(t *testing.T) {
	real := st(BareState{2, h(1), 0})
	sentinel := st(EmptyBareState())
	assert.False(t, Incompatible(real, sentinel))
	assert.False(t, Incompatible(sentinel, real))
}
