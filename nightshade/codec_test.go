// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestCanonicalBytesRoundTrip(t *testing.T) {
	bs := BareState{
		PrimaryConfidence:   7,
		Endorses:            BlockHeader{Author: 3, Hash: ids.GenerateTestID()},
		SecondaryConfidence: 2,
	}

	encoded := bs.CanonicalBytes()
	require.Len(t, encoded, bareStateEncodedLen)

	decoded, err := DecodeBareState(encoded)
	require.NoError(t, err)
	require.Equal(t, bs, decoded)
	require.Equal(t, encoded, decoded.CanonicalBytes())
}

func TestDecodeBareStateWrongLength(t *testing.T) {
	_, err := DecodeBareState([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCanonicalBytesNegativeConfidence(t *testing.T) {
	bs := EmptyBareState()
	encoded := bs.CanonicalBytes()
	decoded, err := DecodeBareState(encoded)
	require.NoError(t, err)
	require.Equal(t, bs, decoded)
	require.True(t, decoded.IsEmpty())
}
