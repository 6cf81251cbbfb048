// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nightshade

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/luxfi/nightshade/cryptoshare/bls"
	"github.com/luxfi/nightshade/nslog"
)

// CommitThreshold is the margin primary confidence must hold over
// secondary confidence before an endorsement becomes a commitment.
const CommitThreshold = 3

// UpdateResult is what UpdateState returns. Changed is true when the
// peer's State was accepted as strictly better than the one stored for
// it (the owner's own opinion may or may not have moved), and State is
// then the owner's current opinion; Changed is false for a stale or
// repeated delivery.
type UpdateResult struct {
	Changed bool
	State   State
}

// Engine is one authority's per-session decision state. It is not
// goroutine-safe: exactly one goroutine (the owning gossip Task) may
// call UpdateState.
type Engine struct {
	ownerID         AuthorityId
	numAuthorities  int
	states          []State
	isAdversary     []bool
	bestStateCounter int
	seenBareStates  map[BareState]struct{}
	committed       *BlockHeader
	pubKeys         []*bls.PublicKey
	secretKey       *bls.SecretKey
	log             nslog.Logger
}

// New creates an Engine for ownerID out of n authorities, with
// ownBlock as the owner's starting proposal.
func New(ownerID AuthorityId, n int, ownBlock BlockHeader, pubKeys []*bls.PublicKey, secretKey *bls.SecretKey, log nslog.Logger) (*Engine, error) {
	if int(ownerID) >= n {
		return nil, fmt.Errorf("%w: owner %d out of range for %d authorities", ErrUnknownPeer, ownerID, n)
	}
	if ownBlock.Author != ownerID {
		return nil, fmt.Errorf("nightshade: own block author %d does not match owner id %d", ownBlock.Author, ownerID)
	}
	if len(pubKeys) != n {
		return nil, fmt.Errorf("nightshade: expected %d public keys, got %d", n, len(pubKeys))
	}
	if log == nil {
		log = nslog.NewNoOp()
	}

	own, err := NewOwnState(ownBlock, secretKey)
	if err != nil {
		return nil, err
	}

	states := make([]State, n)
	for i := range states {
		states[i] = State{BareState: EmptyBareState()}
	}
	states[ownerID] = own

	e := &Engine{
		ownerID:          ownerID,
		numAuthorities:   n,
		states:           states,
		isAdversary:      make([]bool, n),
		bestStateCounter: 1,
		seenBareStates:   map[BareState]struct{}{own.BareState: {}},
		pubKeys:          pubKeys,
		secretKey:        secretKey,
		log:              log,
	}
	return e, nil
}

// State returns the engine owner's current opinion.
func (e *Engine) State() State {
	return e.states[e.ownerID]
}

// IsFinal reports whether the engine has committed.
func (e *Engine) IsFinal() bool {
	return e.committed != nil
}

// Committed returns the committed header and true, or the zero value
// and false if no commitment has happened yet.
func (e *Engine) Committed() (BlockHeader, bool) {
	if e.committed == nil {
		return BlockHeader{}, false
	}
	return *e.committed, true
}

// SetAdversary flags peer as adversarial without requiring a detected
// incompatibility — used when an out-of-band signal (e.g. a payload
// equivocation in the gossip task) identifies misbehavior.
func (e *Engine) SetAdversary(peer AuthorityId) {
	if int(peer) < len(e.isAdversary) {
		e.isAdversary[peer] = true
	}
}

// IsAdversary reports whether peer is currently flagged.
func (e *Engine) IsAdversary(peer AuthorityId) bool {
	if int(peer) >= len(e.isAdversary) {
		return false
	}
	return e.isAdversary[peer]
}

// UpdateState is the protocol's central operation: ingest State S,
// purportedly from peer, merge it into the owner's opinion, and
// advance confidence/commitment as far as a single ingest allows.
func (e *Engine) UpdateState(peer AuthorityId, s State) (UpdateResult, error) {
	if int(peer) >= e.numAuthorities || peer == e.ownerID {
		return UpdateResult{}, fmt.Errorf("%w: peer %d", ErrUnknownPeer, peer)
	}

	// Step 1: sticky adversary flag and equivocation check.
	if e.isAdversary[peer] {
		return UpdateResult{}, fmt.Errorf("%w: peer %d", ErrAdversary, peer)
	}
	if Incompatible(e.states[peer], s) {
		e.isAdversary[peer] = true
		e.log.Warn("nightshade: flagging peer adversarial", "peer", peer, "prior", e.states[peer].BareState, "incoming", s.BareState)
		return UpdateResult{}, fmt.Errorf("%w: peer %d", ErrEquivocation, peer)
	}

	// Step 2: validate on first sight of this exact triplet.
	if _, seen := e.seenBareStates[s.BareState]; !seen {
		if err := s.Validate(e.numAuthorities, peer, e.pubKeys); err != nil {
			return UpdateResult{}, err
		}
		e.seenBareStates[s.BareState] = struct{}{}
	}

	// Step 3: stale/out-of-order delivery is a no-op.
	if s.BareState.Compare(e.states[peer].BareState) <= 0 {
		return UpdateResult{Changed: false}, nil
	}

	// Step 4: accept, merge into own opinion.
	e.states[peer] = s
	merged := Merge(e.states[e.ownerID], s)
	if !merged.BareState.Equal(e.states[e.ownerID].BareState) {
		sig, err := e.secretKey.Sign(merged.BareState.CanonicalBytes())
		if err != nil {
			return UpdateResult{}, fmt.Errorf("nightshade: re-sign merged state: %w", err)
		}
		merged.Signature = sig
		e.states[e.ownerID] = merged
		e.bestStateCounter = 1
	}
	if s.BareState.Equal(e.states[e.ownerID].BareState) {
		e.bestStateCounter++
	}

	// Step 5: confidence increment, fires at most once per ingest
	// because bestStateCounter resets to 1 as soon as it does.
	threshold := int(SupermajorityThreshold(e.numAuthorities))
	if e.bestStateCounter > threshold {
		if err := e.incrementConfidence(); err != nil {
			return UpdateResult{}, err
		}
	}

	// Step 6: commit check.
	e.checkCommit()

	return UpdateResult{Changed: true, State: e.states[e.ownerID]}, nil
}

// incrementConfidence implements §4.5 step 5: build a Proof out of
// every authority currently agreeing with the owner's best state, and
// adopt the successor triplet.
func (e *Engine) incrementConfidence() error {
	target := e.states[e.ownerID].BareState
	mask := bitset.New(uint(e.numAuthorities))
	shares := make([]*bls.Signature, 0, e.bestStateCounter)
	count := 0
	for a := 0; a < e.numAuthorities; a++ {
		if e.states[a].BareState.Equal(target) {
			mask.Set(uint(a))
			shares = append(shares, e.states[a].Signature)
			count++
		}
	}
	if count != e.bestStateCounter {
		return fmt.Errorf("nightshade: best state counter %d does not match %d matching authorities", e.bestStateCounter, count)
	}

	proof, err := BuildProof(target, mask, shares)
	if err != nil {
		return fmt.Errorf("nightshade: increment confidence: %w", err)
	}

	next := BareState{
		PrimaryConfidence:   target.PrimaryConfidence + 1,
		Endorses:            target.Endorses,
		SecondaryConfidence: target.SecondaryConfidence,
	}
	sig, err := e.secretKey.Sign(next.CanonicalBytes())
	if err != nil {
		return fmt.Errorf("nightshade: sign incremented state: %w", err)
	}

	newState := State{
		BareState:      next,
		PrimaryProof:   &proof,
		SecondaryProof: e.states[e.ownerID].SecondaryProof,
		Signature:      sig,
	}
	if err := newState.Validate(e.numAuthorities, e.ownerID, e.pubKeys); err != nil {
		return fmt.Errorf("nightshade: incremented state failed self-validation: %w", err)
	}

	e.seenBareStates[newState.BareState] = struct{}{}
	e.states[e.ownerID] = newState
	e.bestStateCounter = 1
	e.log.Info("nightshade: confidence incremented", "endorses", next.Endorses, "primary", next.PrimaryConfidence, "secondary", next.SecondaryConfidence)
	return nil
}

// checkCommit implements §4.5 step 6. A mismatch between an existing
// commitment and a newly implied one is a safety-invariant violation:
// it indicates either an implementation bug or an adversary fraction
// beyond the protocol's guarantee, and must abort the process.
func (e *Engine) checkCommit() {
	own := e.states[e.ownerID]
	if !own.CanCommit() {
		return
	}
	if e.committed != nil {
		if !e.committed.Equal(own.BareState.Endorses) {
			panic(fmt.Sprintf("nightshade: commit safety violation: already committed to %s, now implied %s", e.committed, own.BareState.Endorses))
		}
		return
	}
	header := own.BareState.Endorses
	e.committed = &header
	e.log.Info("nightshade: committed", "endorses", header)
}
