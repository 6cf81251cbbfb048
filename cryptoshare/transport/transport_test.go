// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)

	msg := []byte("envelope hash bytes")
	sig := sk.Sign(msg)
	require.True(t, Verify(sk.PublicKey(), sig, msg))
	require.False(t, Verify(sk.PublicKey(), sig, []byte("tampered")))
}

func TestDistinctKeysDoNotCrossVerify(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	b, err := GenerateKey()
	require.NoError(t, err)

	msg := []byte("message")
	sig := a.Sign(msg)
	require.False(t, Verify(b.PublicKey(), sig, msg))
}

func TestPublicKeyBytesRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)
	raw := sk.PublicKey().Bytes()

	pk, err := PublicKeyFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, pk.Bytes())
}

func TestSignatureBytesRoundTrip(t *testing.T) {
	sk, err := GenerateKey()
	require.NoError(t, err)
	sig := sk.Sign([]byte("x"))

	raw := sig.Bytes()
	sig2, err := SignatureFromBytes(raw)
	require.NoError(t, err)
	require.True(t, Verify(sk.PublicKey(), sig2, []byte("x")))
}
