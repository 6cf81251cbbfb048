// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"github.com/luxfi/nightshade/cryptoshare/bls"
	"github.com/luxfi/nightshade/cryptoshare/transport"
	"github.com/luxfi/nightshade/nightshade"
)

// Participants describes the fixed authority set a Reset establishes.
type Participants struct {
	OwnerID         nightshade.AuthorityId
	NumAuthorities  int
	BLSPublicKeys   []*bls.PublicKey
	BLSSecretKey    *bls.SecretKey
	TransportKeys   []*transport.PublicKey
	TransportSecret EnvelopeSigner
}

// Control is the message kind driving the Task between its
// Uninitialized and Running states.
type Control struct {
	Reset        *ResetCommand
	Stop         bool
}

// ResetCommand re-initializes the Task with a new participant set and
// the owner's proposal for this session.
type ResetCommand struct {
	Participants Participants
	OwnBlock     gossipBlockRef
}

// gossipBlockRef is the owner's own starting proposal: a block plus
// the header it will be announced under.
type gossipBlockRef struct {
	Header nightshade.BlockHeader
	Block  Block
}

// NewResetCommand builds a Reset control message.
func NewResetCommand(participants Participants, header nightshade.BlockHeader, block Block) Control {
	return Control{
		Reset: &ResetCommand{
			Participants: participants,
			OwnBlock:     gossipBlockRef{Header: header, Block: block},
		},
	}
}

// NewStopCommand builds a Stop control message.
func NewStopCommand() Control {
	return Control{Stop: true}
}
