// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nsconfig holds the parameters a Nightshade session is
// started with: authority count, commit threshold, and the gossip
// broadcast cooldown. The engine does not read the commit threshold
// from here; it always commits at nightshade.CommitThreshold.
package nsconfig

import (
	"fmt"
	"time"
)

// NetworkType names a preset parameter set.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Local   NetworkType = "local"
	Test    NetworkType = "test"
)

// Parameters configures one Nightshade session. CommitThreshold is
// validated and shown by nightshade-sim params; it is not passed to the
// engine.
type Parameters struct {
	NumAuthorities   int
	CommitThreshold  int64
	CooldownInterval time.Duration
}

// DefaultParameters returns the reference-sized session.
func DefaultParameters() Parameters {
	return Parameters{
		NumAuthorities:   7,
		CommitThreshold:  3,
		CooldownInterval: 50 * time.Millisecond,
	}
}

// MainnetParameters sizes a session for a large production authority set.
func MainnetParameters() Parameters {
	p := DefaultParameters()
	p.NumAuthorities = 100
	return p
}

// LocalParameters sizes a session for running several authorities on
// one machine, with a shorter cooldown to make local sims converge fast.
func LocalParameters() Parameters {
	p := DefaultParameters()
	p.NumAuthorities = 4
	p.CooldownInterval = 10 * time.Millisecond
	return p
}

// TestParameters sizes a minimal session for unit tests.
func TestParameters() Parameters {
	p := DefaultParameters()
	p.NumAuthorities = 3
	p.CooldownInterval = time.Millisecond
	return p
}

// Validate checks p's internal consistency.
func (p Parameters) Validate() error {
	if p.NumAuthorities <= 0 {
		return fmt.Errorf("nsconfig: num authorities must be > 0, got %d", p.NumAuthorities)
	}
	if p.CommitThreshold <= 0 {
		return fmt.Errorf("nsconfig: commit threshold must be > 0, got %d", p.CommitThreshold)
	}
	if p.CooldownInterval <= 0 {
		return fmt.Errorf("nsconfig: cooldown interval must be > 0, got %s", p.CooldownInterval)
	}
	return nil
}

// Builder provides a fluent interface for constructing Parameters.
type Builder struct {
	params Parameters
	err    error
}

// NewBuilder starts from DefaultParameters.
func NewBuilder() *Builder {
	return &Builder{params: DefaultParameters()}
}

// FromPreset loads a named preset as the builder's starting point.
func (b *Builder) FromPreset(preset NetworkType) *Builder {
	if b.err != nil {
		return b
	}
	switch preset {
	case Mainnet:
		b.params = MainnetParameters()
	case Local:
		b.params = LocalParameters()
	case Test:
		b.params = TestParameters()
	default:
		b.err = fmt.Errorf("nsconfig: unknown preset %q", preset)
	}
	return b
}

// WithNumAuthorities overrides N.
func (b *Builder) WithNumAuthorities(n int) *Builder {
	if b.err == nil {
		b.params.NumAuthorities = n
	}
	return b
}

// WithCommitThreshold overrides the commit threshold.
func (b *Builder) WithCommitThreshold(t int64) *Builder {
	if b.err == nil {
		b.params.CommitThreshold = t
	}
	return b
}

// WithCooldown overrides the broadcast cooldown.
func (b *Builder) WithCooldown(d time.Duration) *Builder {
	if b.err == nil {
		b.params.CooldownInterval = d
	}
	return b
}

// Build validates and returns the constructed Parameters.
func (b *Builder) Build() (Parameters, error) {
	if b.err != nil {
		return Parameters{}, b.err
	}
	if err := b.params.Validate(); err != nil {
		return Parameters{}, err
	}
	return b.params, nil
}
