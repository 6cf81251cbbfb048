// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import "errors"

var (
	// ErrMalformedState means a BareState/Proof/State failed its
	// self-consistency or signature checks.
	ErrMalformedState = errors.New("nightshade: malformed state")

	// ErrEquivocation means the sender has been caught delivering two
	// incompatible opinions; it is now flagged adversarial.
	ErrEquivocation = errors.New("nightshade: equivocation detected")

	// ErrAdversary means the peer was already flagged and the message
	// was dropped without inspection.
	ErrAdversary = errors.New("nightshade: peer is flagged adversarial")

	// ErrUnknownPeer means peer is outside [0, N) or equals owner_id.
	ErrUnknownPeer = errors.New("nightshade: unknown or invalid peer index")

	// ErrInvalidProof means a Proof's mask or aggregate signature did
	// not validate.
	ErrInvalidProof = errors.New("nightshade: invalid proof")
)
