// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nightshade/cryptoshare/bls"
)

func stateTestKeys(t *testing.T, n int) ([]*bls.SecretKey, []*bls.PublicKey) {
	t.Helper()
	secrets := make([]*bls.SecretKey, n)
	pubs := make([]*bls.PublicKey, n)
	for i := 0; i < n; i++ {
		seed := make([]byte, 32)
		seed[0] = byte(i + 1)
		sk, err := bls.KeyFromSeed(seed)
		require.NoError(t, err)
		secrets[i] = sk
		pubs[i] = sk.PublicKey()
	}
	return secrets, pubs
}

// supermajorityProof builds a real Proof over bs signed by the first
// supermajority-many of secrets, matching how Engine.incrementConfidence
// collects shares.
func supermajorityProof(t *testing.T, bs BareState, secrets []*bls.SecretKey) Proof {
	t.Helper()
	n := len(secrets)
	need := int(SupermajorityThreshold(n)) + 1
	mask := bitset.New(uint(n))
	shares := make([]*bls.Signature, 0, need)
	for i := 0; i < need; i++ {
		mask.Set(uint(i))
		sig, err := secrets[i].Sign(bs.CanonicalBytes())
		require.NoError(t, err)
		shares = append(shares, sig)
	}
	proof, err := BuildProof(bs, mask, shares)
	require.NoError(t, err)
	return proof
}

func TestStateValidateZeroPrimaryRejectsAnyProof(t *testing.T) {
	secrets, pubs := stateTestKeys(t, 4)
	s, err := NewOwnState(h(1), secrets[0])
	require.NoError(t, err)

	require.NoError(t, s.Validate(4, 0, pubs))

	bs := s.BareState
	bad := Proof{BareState: bs}
	s.PrimaryProof = &bad
	assert.ErrorIs(t, s.Validate(4, 0, pubs), ErrMalformedState)
}

func TestStateValidatePositivePrimaryZeroSecondary(t *testing.T) {
	secrets, pubs := stateTestKeys(t, 4)
	predecessor := NewBareState(h(1))
	proof := supermajorityProof(t, predecessor, secrets)

	next := BareState{PrimaryConfidence: 1, Endorses: h(1)}
	sig, err := secrets[0].Sign(next.CanonicalBytes())
	require.NoError(t, err)

	s := State{BareState: next, PrimaryProof: &proof, Signature: sig}
	assert.NoError(t, s.Validate(4, 0, pubs))
}

func TestStateValidateRejectsForgedSignature(t *testing.T) {
	_, pubs := stateTestKeys(t, 4)
	foreignSeed := make([]byte, 32)
	foreignSeed[31] = 0xFF
	other, err := bls.KeyFromSeed(foreignSeed)
	require.NoError(t, err)
	s, err := NewOwnState(h(1), other)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Validate(4, 0, pubs), ErrMalformedState)
}

func TestStateCanCommitThreshold(t *testing.T) {
	cases := []struct {
		primary, secondary int64
		want                bool
	}{
		{primary: 0, secondary: 0, want: false},
		{primary: 2, secondary: 0, want: false},
		{primary: 3, secondary: 0, want: true},
		{primary: 5, secondary: 2, want: true},
		{primary: 5, secondary: 3, want: false},
		{primary: 6, secondary: 3, want: true},
	}
	for _, c := range cases {
		s := State{BareState: BareState{PrimaryConfidence: c.primary, SecondaryConfidence: c.secondary, Endorses: h(1)}}
		assert.Equal(t, c.want, s.CanCommit())
	}
}
