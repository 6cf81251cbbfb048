// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCooldownReadyAfterArm(t *testing.T) {
	c := newCooldown(50 * time.Millisecond)
	require.True(t, c.Ready(), "a never-armed cooldown is ready immediately")

	c.Arm()
	require.False(t, c.Ready())
	require.Positive(t, c.Remaining())

	c.clock.Set(c.clock.Now().Add(49 * time.Millisecond))
	require.False(t, c.Ready())

	c.clock.Advance(2 * time.Millisecond)
	require.True(t, c.Ready())
	require.Zero(t, c.Remaining())
}
