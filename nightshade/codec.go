// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"encoding/binary"
	"fmt"
)

// bareStateEncodedLen is the fixed width of a canonically-encoded
// BareState: 8-byte author, 32-byte hash, two 8-byte signed confidences.
const bareStateEncodedLen = 8 + 32 + 8 + 8

// CanonicalBytes deterministically serializes a BareState into the exact
// bytes that both the per-authority share signature and the aggregate
// proof signature cover. The layout is fixed-width and big-endian so it
// is bit-stable across machines and implementations.
func (b BareState) CanonicalBytes() []byte {
	buf := make([]byte, bareStateEncodedLen)
	binary.BigEndian.PutUint64(buf[0:8], uint64(b.Endorses.Author))
	copy(buf[8:40], b.Endorses.Hash[:])
	binary.BigEndian.PutUint64(buf[40:48], uint64(b.PrimaryConfidence))
	binary.BigEndian.PutUint64(buf[48:56], uint64(b.SecondaryConfidence))
	return buf
}

// DecodeBareState parses the canonical encoding produced by CanonicalBytes.
func DecodeBareState(buf []byte) (BareState, error) {
	if len(buf) != bareStateEncodedLen {
		return BareState{}, fmt.Errorf("nightshade: canonical BareState must be %d bytes, got %d", bareStateEncodedLen, len(buf))
	}
	var bs BareState
	bs.Endorses.Author = AuthorityId(binary.BigEndian.Uint64(buf[0:8]))
	copy(bs.Endorses.Hash[:], buf[8:40])
	bs.PrimaryConfidence = int64(binary.BigEndian.Uint64(buf[40:48]))
	bs.SecondaryConfidence = int64(binary.BigEndian.Uint64(buf[48:56]))
	return bs, nil
}
