// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transport wraps a classical ECDSA keypair used exclusively
// for gossip-envelope authentication. This key is never the same key
// as the BLS share key in cryptoshare/bls — the two schemes protect
// different things (throwaway per-envelope authentication versus
// reusable, aggregatable opinion evidence) and must stay independent.
package transport

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SecretKey signs outbound gossip envelopes.
type SecretKey struct {
	priv *secp256k1.PrivateKey
}

// PublicKey verifies envelope signatures from a peer.
type PublicKey struct {
	pub *secp256k1.PublicKey
}

// Signature is a classical ECDSA signature over an envelope hash.
type Signature struct {
	sig *ecdsa.Signature
}

// GenerateKey creates a fresh transport keypair.
func GenerateKey() (*SecretKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("transport: generate key: %w", err)
	}
	return &SecretKey{priv: priv}, nil
}

// PublicKey returns the public half of sk.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{pub: sk.priv.PubKey()}
}

// Sign signs the sha256 digest of msg — the envelope's canonical hash
// input, not the raw envelope bytes.
func (sk *SecretKey) Sign(msg []byte) *Signature {
	digest := sha256.Sum256(msg)
	return &Signature{sig: ecdsa.Sign(sk.priv, digest[:])}
}

// Bytes returns the 33-byte compressed SEC encoding of pk.
func (pk *PublicKey) Bytes() []byte {
	return pk.pub.SerializeCompressed()
}

// PublicKeyFromBytes parses a compressed public key.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("transport: parse public key: %w", err)
	}
	return &PublicKey{pub: pub}, nil
}

// Bytes returns the DER encoding of sig.
func (sig *Signature) Bytes() []byte {
	return sig.sig.Serialize()
}

// SignatureFromBytes parses a DER-encoded signature.
func SignatureFromBytes(b []byte) (*Signature, error) {
	sig, err := ecdsa.ParseDERSignature(b)
	if err != nil {
		return nil, fmt.Errorf("transport: parse signature: %w", err)
	}
	return &Signature{sig: sig}, nil
}

// Verify checks sig against pk over the sha256 digest of msg.
func Verify(pk *PublicKey, sig *Signature, msg []byte) bool {
	digest := sha256.Sum256(msg)
	return sig.sig.Verify(digest[:], pk.pub)
}
