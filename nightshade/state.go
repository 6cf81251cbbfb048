// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"fmt"

	"github.com/luxfi/nightshade/cryptoshare/bls"
)

// State is an opinion package: a triplet plus the proofs backing its
// confidence levels and the sender's own share signature over the
// triplet (reusable as aggregation input by any peer).
type State struct {
	BareState     BareState
	PrimaryProof  *Proof
	SecondaryProof *Proof
	Signature     *bls.Signature
}

// NewOwnState builds the initial signed opinion for an authority that
// starts the session endorsing header.
func NewOwnState(header BlockHeader, sk *bls.SecretKey) (State, error) {
	bs := NewBareState(header)
	sig, err := sk.Sign(bs.CanonicalBytes())
	if err != nil {
		return State{}, fmt.Errorf("nightshade: sign initial state: %w", err)
	}
	return State{BareState: bs, Signature: sig}, nil
}

// Less/Equal defer entirely to the underlying triplet, per spec.
func (s State) Less(o State) bool  { return s.BareState.Less(o.BareState) }
func (s State) Equal(o State) bool { return s.BareState.Equal(o.BareState) }

// CanCommit reports whether an authority holding this triplet should
// commit to its endorsed header: primary confidence must lead the
// runner-up secondary confidence by at least CommitThreshold.
func (s State) CanCommit() bool {
	return s.BareState.PrimaryConfidence >= s.BareState.SecondaryConfidence+CommitThreshold
}

// Validate runs the full §4.2 state-validation procedure for a State
// claimed to originate from authority `from`.
func (s State) Validate(n int, from AuthorityId, pubKeys []*bls.PublicKey) error {
	if !s.BareState.Valid() {
		return fmt.Errorf("%w: bare state fails self-consistency invariant", ErrMalformedState)
	}
	if int(from) >= len(pubKeys) {
		return fmt.Errorf("%w: sender %d has no public key", ErrUnknownPeer, from)
	}
	if s.Signature == nil || !bls.Verify(pubKeys[from], s.Signature, s.BareState.CanonicalBytes()) {
		return fmt.Errorf("%w: share signature does not verify for authority %d", ErrMalformedState, from)
	}

	primary := s.BareState.PrimaryConfidence
	secondary := s.BareState.SecondaryConfidence

	if primary == 0 {
		if s.PrimaryProof != nil || s.SecondaryProof != nil {
			return fmt.Errorf("%w: zero primary confidence must carry no proofs", ErrMalformedState)
		}
		return nil
	}

	if s.PrimaryProof == nil {
		return fmt.Errorf("%w: positive primary confidence requires a primary proof", ErrMalformedState)
	}
	if err := s.PrimaryProof.Verify(n, pubKeys); err != nil {
		return err
	}
	if !s.PrimaryProof.BareState.Endorses.Equal(s.BareState.Endorses) {
		return fmt.Errorf("%w: primary proof endorses a different header", ErrMalformedState)
	}
	if s.PrimaryProof.BareState.PrimaryConfidence != primary-1 {
		return fmt.Errorf("%w: primary proof confidence is not one less than claimed", ErrMalformedState)
	}

	if secondary == 0 {
		if s.SecondaryProof != nil {
			return fmt.Errorf("%w: zero secondary confidence must carry no secondary proof", ErrMalformedState)
		}
		if s.PrimaryProof.BareState.SecondaryConfidence != 0 {
			return fmt.Errorf("%w: primary proof's secondary confidence must be zero", ErrMalformedState)
		}
		want := BareState{
			PrimaryConfidence:   s.PrimaryProof.BareState.PrimaryConfidence + 1,
			Endorses:            s.PrimaryProof.BareState.Endorses,
			SecondaryConfidence: s.PrimaryProof.BareState.SecondaryConfidence,
		}
		if !s.BareState.Equal(want) {
			return fmt.Errorf("%w: bare state does not match primary proof's implied successor", ErrMalformedState)
		}
		return nil
	}

	if s.SecondaryProof == nil {
		return fmt.Errorf("%w: positive secondary confidence requires a secondary proof", ErrMalformedState)
	}
	if err := s.SecondaryProof.Verify(n, pubKeys); err != nil {
		return err
	}
	if s.SecondaryProof.BareState.Endorses.Equal(s.PrimaryProof.BareState.Endorses) {
		return fmt.Errorf("%w: secondary proof must endorse a different header than primary", ErrMalformedState)
	}
	if secondary != s.SecondaryProof.BareState.PrimaryConfidence+1 {
		return fmt.Errorf("%w: secondary confidence is not one more than secondary proof's primary", ErrMalformedState)
	}
	if s.SecondaryProof.BareState.PrimaryConfidence+1 < s.PrimaryProof.BareState.SecondaryConfidence {
		return fmt.Errorf("%w: secondary proof disagrees with primary proof's runner-up view", ErrMalformedState)
	}
	return nil
}
