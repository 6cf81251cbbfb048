// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bls wraps github.com/luxfi/crypto/bls for the two things
// Nightshade needs: an authority's individual share signature over its
// own BareState, and the aggregate signature/public-key math needed to
// build and verify a Proof.
package bls

import (
	"fmt"

	"github.com/luxfi/crypto/bls"
)

// SecretKey is an authority's BLS signing key.
type SecretKey struct {
	sk *bls.SecretKey
}

// PublicKey is an authority's BLS verification key, in compressed form.
type PublicKey struct {
	pk *bls.PublicKey
}

// Signature is either an individual share signature or an aggregate.
type Signature struct {
	sig *bls.Signature
}

// KeyFromSeed derives a secret key deterministically from a 32-byte seed.
func KeyFromSeed(seed []byte) (*SecretKey, error) {
	sk, err := bls.SecretKeyFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("bls: derive secret key: %w", err)
	}
	return &SecretKey{sk: sk}, nil
}

// PublicKey returns the public half of sk.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{pk: sk.sk.PublicKey()}
}

// Sign produces an individual share signature over msg — the canonical
// bytes of a BareState.
func (sk *SecretKey) Sign(msg []byte) (*Signature, error) {
	sig, err := sk.sk.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("bls: sign: %w", err)
	}
	return &Signature{sig: sig}, nil
}

// Bytes returns the compressed encoding of pk.
func (pk *PublicKey) Bytes() []byte {
	return bls.PublicKeyToCompressedBytes(pk.pk)
}

// PublicKeyFromBytes parses the compressed encoding produced by Bytes.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pk, err := bls.PublicKeyFromCompressedBytes(b)
	if err != nil {
		return nil, fmt.Errorf("bls: parse public key: %w", err)
	}
	return &PublicKey{pk: pk}, nil
}

// Bytes returns the encoding of sig.
func (sig *Signature) Bytes() []byte {
	return bls.SignatureToBytes(sig.sig)
}

// SignatureFromBytes parses the encoding produced by Bytes.
func SignatureFromBytes(b []byte) (*Signature, error) {
	sig, err := bls.SignatureFromBytes(b)
	if err != nil {
		return nil, fmt.Errorf("bls: parse signature: %w", err)
	}
	return &Signature{sig: sig}, nil
}

// Aggregate combines share signatures (one per signer in a mask) into a
// single aggregate signature suitable for a Proof.
func Aggregate(sigs []*Signature) (*Signature, error) {
	if len(sigs) == 0 {
		return nil, fmt.Errorf("bls: aggregate: no signatures")
	}
	raw := make([]*bls.Signature, len(sigs))
	for i, s := range sigs {
		raw[i] = s.sig
	}
	agg, err := bls.AggregateSignatures(raw)
	if err != nil {
		return nil, fmt.Errorf("bls: aggregate signatures: %w", err)
	}
	return &Signature{sig: agg}, nil
}

// AggregatePublicKeys combines the public keys of a mask's signers into
// the single key an aggregate signature verifies against.
func AggregatePublicKeys(pks []*PublicKey) (*PublicKey, error) {
	if len(pks) == 0 {
		return nil, fmt.Errorf("bls: aggregate public keys: none given")
	}
	raw := make([]*bls.PublicKey, len(pks))
	for i, pk := range pks {
		raw[i] = pk.pk
	}
	agg, err := bls.AggregatePublicKeys(raw)
	if err != nil {
		return nil, fmt.Errorf("bls: aggregate public keys: %w", err)
	}
	return &PublicKey{pk: agg}, nil
}

// Verify checks sig against pk over msg. Used both for a single share
// signature and for an aggregate signature against an aggregated key.
func Verify(pk *PublicKey, sig *Signature, msg []byte) bool {
	return bls.Verify(pk.pk, sig.sig, msg)
}
