// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gossip implements the cooperative task that drives a
// nightshade.Engine from abstract inbound/outbound channels: gossiping
// opinions, serving payload requests, and reporting commit exactly
// once.
package gossip

import (
	"crypto/sha256"

	"github.com/luxfi/nightshade/cryptoshare/transport"
	"github.com/luxfi/nightshade/nightshade"
)

// Body is the payload of a gossip Envelope. Exactly one of
// OpinionUpdate, PayloadRequest, or PayloadReply is set.
type Body struct {
	OpinionUpdate  *Message
	PayloadRequest []nightshade.AuthorityId
	PayloadReply   []SignedBlock
}

// Message pairs a State with the authorities it travels between.
type Message struct {
	SenderID   nightshade.AuthorityId
	ReceiverID nightshade.AuthorityId
	State      nightshade.State
}

// Block is an opaque payload: the core only ever looks at its author
// and content hash.
type Block struct {
	Author  nightshade.AuthorityId
	Payload []byte
}

// ContentHash reports the 32-byte hash binding Block's content,
// matching the hash carried in a BlockHeader.
func (b Block) ContentHash() [32]byte {
	return sha256.Sum256(b.Payload)
}

// SignedBlock is a Block plus its author's transport signature over
// the block's content hash.
type SignedBlock struct {
	Block     Block
	Signature *transport.Signature
}

// Envelope is the unit exchanged over the inbound/outbound gossip
// channels: a Body plus routing and transport-level authentication.
type Envelope struct {
	SenderID            nightshade.AuthorityId
	ReceiverID          nightshade.AuthorityId
	Body                Body
	TransportSignature  *transport.Signature
}

// canonicalBytes serializes Body deterministically for hashing and
// signing. It need not be bit-stable across languages (it is only
// ever produced and consumed by this implementation's own transport
// signatures), only internally consistent between Sign and Verify.
func (b Body) canonicalBytes() []byte {
	var buf []byte
	switch {
	case b.OpinionUpdate != nil:
		buf = append(buf, 'O')
		buf = append(buf, b.OpinionUpdate.State.BareState.CanonicalBytes()...)
	case b.PayloadRequest != nil:
		buf = append(buf, 'R')
		for _, a := range b.PayloadRequest {
			buf = append(buf, byte(a), byte(a>>8), byte(a>>16), byte(a>>24))
		}
	case b.PayloadReply != nil:
		buf = append(buf, 'P')
		for _, sb := range b.PayloadReply {
			h := sb.Block.ContentHash()
			buf = append(buf, byte(sb.Block.Author))
			buf = append(buf, h[:]...)
		}
	}
	return buf
}

// envelopeHash is hash(sender_id || receiver_id || body) per §6's
// normative wire format.
func envelopeHash(sender, receiver nightshade.AuthorityId, body Body) []byte {
	buf := make([]byte, 0, 16+len(body.canonicalBytes()))
	buf = append(buf, byte(sender), byte(sender>>8), byte(sender>>16), byte(sender>>24))
	buf = append(buf, byte(receiver), byte(receiver>>8), byte(receiver>>16), byte(receiver>>24))
	buf = append(buf, body.canonicalBytes()...)
	h := sha256.Sum256(buf)
	return h[:]
}

// EnvelopeSigner is the minimal capability Task needs from an
// authority's transport keypair: sign outbound envelope hashes and
// report the matching public key. *transport.SecretKey satisfies
// this; tests substitute a mock to exercise Task without real
// secp256k1 key generation.
type EnvelopeSigner interface {
	Sign(msg []byte) *transport.Signature
	PublicKey() *transport.PublicKey
}

// NewEnvelope builds and signs an outbound envelope.
func NewEnvelope(sender, receiver nightshade.AuthorityId, body Body, sk EnvelopeSigner) Envelope {
	sig := sk.Sign(envelopeHash(sender, receiver, body))
	return Envelope{
		SenderID:           sender,
		ReceiverID:         receiver,
		Body:               body,
		TransportSignature: sig,
	}
}

// Verify checks e's transport signature against senderKey.
func (e Envelope) Verify(senderKey *transport.PublicKey) bool {
	if e.TransportSignature == nil {
		return false
	}
	return transport.Verify(senderKey, e.TransportSignature, envelopeHash(e.SenderID, e.ReceiverID, e.Body))
}
