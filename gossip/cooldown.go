// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"time"

	"github.com/luxfi/nightshade/utils/timer/mockable"
)

// cooldown enforces the minimum gap between outbound broadcast
// rounds. It is armed after every broadcast and polled before the
// next one; when it has not yet expired the Task waits for Remaining,
// still serving control and inbound messages meanwhile.
type cooldown struct {
	clock    *mockable.Clock
	interval time.Duration
	next     time.Time
}

func newCooldown(interval time.Duration) *cooldown {
	return &cooldown{clock: mockable.NewClock(), interval: interval}
}

// Ready reports whether the cooldown has elapsed.
func (c *cooldown) Ready() bool {
	return !c.clock.Now().Before(c.next)
}

// Remaining returns how long until the cooldown elapses, zero if
// already ready.
func (c *cooldown) Remaining() time.Duration {
	d := c.next.Sub(c.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// Arm resets the cooldown to fire interval from now.
func (c *cooldown) Arm() {
	c.next = c.clock.Now().Add(c.interval)
}
