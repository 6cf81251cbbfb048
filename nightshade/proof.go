// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/luxfi/nightshade/cryptoshare/bls"
)

// Proof is evidence that a supermajority of authorities signed some
// BareState with positive confidence: BareState itself carries the
// predecessor triplet (confidence - 1), not the one it justifies.
type Proof struct {
	BareState BareState
	Mask      *bitset.BitSet
	Signature *bls.Signature
}

// SupermajorityThreshold returns floor(2*n/3): a mask must have
// strictly more bits set than this to be valid.
func SupermajorityThreshold(n int) uint64 {
	return uint64(2*n) / 3
}

// signerCount reports how many bits p.Mask has set.
func (p Proof) signerCount() uint64 {
	if p.Mask == nil {
		return 0
	}
	return p.Mask.Count()
}

// Verify checks the supermajority-size requirement and the aggregate
// BLS signature against the masked subset of pubKeys.
func (p Proof) Verify(n int, pubKeys []*bls.PublicKey) error {
	threshold := SupermajorityThreshold(n)
	if p.signerCount() <= threshold {
		return fmt.Errorf("%w: proof mask has %d signers, need more than %d of %d authorities", ErrInvalidProof, p.signerCount(), threshold, n)
	}
	if p.Mask == nil || int(p.Mask.Len()) < n {
		return fmt.Errorf("%w: proof mask shorter than authority set", ErrInvalidProof)
	}

	signers := make([]*bls.PublicKey, 0, p.signerCount())
	for i := uint(0); i < uint(n); i++ {
		if p.Mask.Test(i) {
			if int(i) >= len(pubKeys) {
				return fmt.Errorf("%w: mask references authority %d beyond public key table", ErrInvalidProof, i)
			}
			signers = append(signers, pubKeys[i])
		}
	}

	aggPK, err := bls.AggregatePublicKeys(signers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	if !bls.Verify(aggPK, p.Signature, p.BareState.CanonicalBytes()) {
		return fmt.Errorf("%w: aggregate signature does not verify", ErrInvalidProof)
	}
	return nil
}

// BuildProof aggregates share signatures from the signers set in mask
// into a Proof evidencing bareState.
func BuildProof(bareState BareState, mask *bitset.BitSet, shares []*bls.Signature) (Proof, error) {
	agg, err := bls.Aggregate(shares)
	if err != nil {
		return Proof{}, fmt.Errorf("nightshade: build proof: %w", err)
	}
	return Proof{BareState: bareState, Mask: mask, Signature: agg}, nil
}
