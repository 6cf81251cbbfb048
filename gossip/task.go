// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"context"
	"time"

	"github.com/luxfi/nightshade/cryptoshare/transport"
	"github.com/luxfi/nightshade/nightshade"
	"github.com/luxfi/nightshade/nslog"
	"github.com/luxfi/nightshade/nsmetrics"
)

// Task is the cooperative, single-goroutine loop that drives one
// nightshade.Engine from abstract channels. A Task must only ever be
// run by one goroutine at a time; the Engine it owns is not safe for
// concurrent access.
type Task struct {
	control  <-chan Control
	inbound  <-chan Envelope
	outbound chan<- Envelope
	commit   chan<- nightshade.BlockHeader

	log     nslog.Logger
	metrics *nsmetrics.Metrics

	engine          *nightshade.Engine
	participants    Participants
	ownBlock        Block
	payloads        map[nightshade.AuthorityId]Block
	missingPayloads int
	commitReported  bool
	cooldown        *cooldown
}

// NewTask wires a Task to its four channels. The Task starts
// Uninitialized: it does nothing until a Reset arrives on control.
func NewTask(control <-chan Control, inbound <-chan Envelope, outbound chan<- Envelope, commit chan<- nightshade.BlockHeader, log nslog.Logger, metrics *nsmetrics.Metrics) *Task {
	if log == nil {
		log = nslog.NewNoOp()
	}
	return &Task{control: control, inbound: inbound, outbound: outbound, commit: commit, log: log, metrics: metrics}
}

// Run drives the task until ctx is cancelled or the control or inbound
// channel is closed. A Stop control message tears the engine down and
// parks the task until the next Reset revives it.
func (t *Task) Run(ctx context.Context, cooldownInterval time.Duration) error {
	stopped := true
	for {
		if t.engine == nil {
			if !t.waitForReset(ctx, stopped) {
				return ctx.Err()
			}
			stopped = false
			t.cooldown = newCooldown(cooldownInterval)
		}

		if !t.drainControl() {
			stopped = true
			t.teardown()
			continue
		}
		if t.engine == nil {
			continue
		}

		t.drainInbound()
		if t.engine == nil {
			continue
		}

		if !t.cooldown.Ready() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.cooldown.Remaining()):
			case c, ok := <-t.control:
				if !ok {
					return nil
				}
				t.handleControl(c)
				continue
			case env, ok := <-t.inbound:
				if !ok {
					return nil
				}
				t.handleEnvelope(env)
				continue
			}
		}

		t.broadcast()
		t.requestMissingPayloads()
		t.cooldown.Arm()
	}
}

// waitForReset blocks until a Reset control message arrives, or ctx
// is cancelled. Stop is a no-op while uninitialized.
func (t *Task) waitForReset(ctx context.Context, _ bool) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case c, ok := <-t.control:
			if !ok {
				return false
			}
			if c.Reset != nil {
				t.applyReset(*c.Reset)
				return true
			}
			// Stop while uninitialized: no-op, keep waiting.
		}
	}
}

// drainControl processes all pending control messages without
// blocking. Returns false if a Stop was applied (engine torn down).
func (t *Task) drainControl() bool {
	for {
		select {
		case c, ok := <-t.control:
			if !ok {
				return true
			}
			if c.Stop {
				return false
			}
			if c.Reset != nil {
				t.applyReset(*c.Reset)
			}
		default:
			return true
		}
	}
}

func (t *Task) handleControl(c Control) {
	if c.Stop {
		t.teardown()
		return
	}
	if c.Reset != nil {
		t.applyReset(*c.Reset)
	}
}

func (t *Task) applyReset(rc ResetCommand) {
	p := rc.Participants
	engine, err := nightshade.New(p.OwnerID, p.NumAuthorities, rc.OwnBlock.Header, p.BLSPublicKeys, p.BLSSecretKey, t.log)
	if err != nil {
		t.log.Error("gossip: reset failed", "err", err)
		return
	}
	t.engine = engine
	t.participants = p
	t.ownBlock = rc.OwnBlock.Block
	t.payloads = map[nightshade.AuthorityId]Block{p.OwnerID: rc.OwnBlock.Block}
	t.missingPayloads = p.NumAuthorities - 1
	t.commitReported = false
	t.log.Info("gossip: reset", "owner", p.OwnerID, "n", p.NumAuthorities)
}

func (t *Task) teardown() {
	t.engine = nil
	t.payloads = nil
	t.log.Info("gossip: stopped")
}

// drainInbound processes every currently-queued inbound envelope
// without blocking.
func (t *Task) drainInbound() {
	for {
		select {
		case env, ok := <-t.inbound:
			if !ok {
				return
			}
			t.handleEnvelope(env)
			if t.engine == nil {
				return
			}
		default:
			return
		}
	}
}

func (t *Task) handleEnvelope(env Envelope) {
	senderKey := t.transportKeyOf(env.SenderID)
	if senderKey == nil || !env.Verify(senderKey) {
		t.countDrop("bad_signature")
		return
	}

	switch {
	case env.Body.OpinionUpdate != nil:
		t.handleOpinionUpdate(env.SenderID, env.Body.OpinionUpdate.State)
	case env.Body.PayloadRequest != nil:
		t.handlePayloadRequest(env.SenderID, env.Body.PayloadRequest)
	case env.Body.PayloadReply != nil:
		t.handlePayloadReply(env.SenderID, env.Body.PayloadReply)
	}

	t.maybeReportCommit()
}

func (t *Task) handleOpinionUpdate(sender nightshade.AuthorityId, s nightshade.State) {
	author := s.BareState.Endorses.Author
	known, ok := t.payloads[author]
	if !ok {
		t.requestPayload(author)
		t.countDrop("missing_payload")
		return
	}
	if known.ContentHash() != s.BareState.Endorses.Hash {
		t.engine.SetAdversary(author)
		t.countDrop("payload_hash_mismatch")
		return
	}
	if _, err := t.engine.UpdateState(sender, s); err != nil {
		t.log.Debug("gossip: update_state rejected", "sender", sender, "err", err)
		t.countDrop("update_state_error")
		return
	}
	t.reportConfidence()
}

func (t *Task) handlePayloadRequest(requester nightshade.AuthorityId, wanted []nightshade.AuthorityId) {
	reply := make([]SignedBlock, 0, len(wanted))
	for _, author := range wanted {
		block, ok := t.payloads[author]
		if !ok {
			continue
		}
		hash := block.ContentHash()
		sig := t.participants.TransportSecret.Sign(hash[:])
		reply = append(reply, SignedBlock{Block: block, Signature: sig})
	}
	if len(reply) == 0 {
		return
	}
	t.send(requester, Body{PayloadReply: reply})
}

func (t *Task) handlePayloadReply(sender nightshade.AuthorityId, blocks []SignedBlock) {
	for _, sb := range blocks {
		authorKey := t.transportKeyOf(sb.Block.Author)
		hash := sb.Block.ContentHash()
		if authorKey == nil || sb.Signature == nil || !transport.Verify(authorKey, sb.Signature, hash[:]) {
			t.engine.SetAdversary(sender)
			continue
		}
		if existing, ok := t.payloads[sb.Block.Author]; ok {
			if existing.ContentHash() != hash {
				t.engine.SetAdversary(sb.Block.Author)
				delete(t.payloads, sb.Block.Author)
			}
			continue
		}
		t.payloads[sb.Block.Author] = sb.Block
		t.missingPayloads--
	}
}

func (t *Task) requestPayload(author nightshade.AuthorityId) {
	t.send(author, Body{PayloadRequest: []nightshade.AuthorityId{author}})
	if t.metrics != nil {
		t.metrics.PayloadRequests.Inc()
	}
}

func (t *Task) requestMissingPayloads() {
	if t.missingPayloads <= 0 {
		return
	}
	for a := 0; a < t.participants.NumAuthorities; a++ {
		author := nightshade.AuthorityId(a)
		if author == t.participants.OwnerID {
			continue
		}
		if _, ok := t.payloads[author]; !ok {
			t.requestPayload(author)
		}
	}
}

func (t *Task) broadcast() {
	own := t.engine.State()
	for a := 0; a < t.participants.NumAuthorities; a++ {
		receiver := nightshade.AuthorityId(a)
		if receiver == t.participants.OwnerID {
			continue
		}
		t.send(receiver, Body{OpinionUpdate: &Message{
			SenderID:   t.participants.OwnerID,
			ReceiverID: receiver,
			State:      own,
		}})
	}
}

// send is a best-effort, non-blocking outbound send: a slow
// downstream consumer never stalls the task, per the cooldown being
// the sole rate limit.
func (t *Task) send(receiver nightshade.AuthorityId, body Body) {
	env := NewEnvelope(t.participants.OwnerID, receiver, body, t.participants.TransportSecret)
	select {
	case t.outbound <- env:
		if t.metrics != nil {
			t.metrics.GossipSent.Inc()
		}
	default:
		t.log.Warn("gossip: outbound send dropped, downstream slow", "receiver", receiver)
	}
}

func (t *Task) maybeReportCommit() {
	if t.commitReported {
		return
	}
	header, ok := t.engine.Committed()
	if !ok {
		return
	}
	t.commitReported = true
	if t.metrics != nil {
		t.metrics.Commits.Inc()
	}
	select {
	case t.commit <- header:
	default:
		t.log.Warn("gossip: commit notification dropped, channel full")
	}
}

func (t *Task) reportConfidence() {
	if t.metrics == nil {
		return
	}
	s := t.engine.State().BareState
	t.metrics.PrimaryConfidence.Set(float64(s.PrimaryConfidence))
	t.metrics.SecondaryConfidence.Set(float64(s.SecondaryConfidence))
}

func (t *Task) countDrop(reason string) {
	if t.metrics != nil {
		t.metrics.GossipDropped.WithLabelValues(reason).Inc()
	}
}

func (t *Task) transportKeyOf(a nightshade.AuthorityId) *transport.PublicKey {
	if int(a) >= len(t.participants.TransportKeys) {
		return nil
	}
	return t.participants.TransportKeys[a]
}

// TODO(missing-payload-buffering): the spec's recommended optional
// extension — buffering one pending opinion per peer while its
// payload is outstanding — is not implemented; a dropped OpinionUpdate
// relies entirely on the sender's next broadcast tick.
