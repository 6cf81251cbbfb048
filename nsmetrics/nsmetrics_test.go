// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nsmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNewRegistersAllCollectorsExactlyOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	// Gather leaves out a CounterVec with no children; create one so
	// every registered collector yields a family.
	m.GossipDropped.WithLabelValues("bad_signature")

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)
}

func TestNewOnAlreadyUsedRegistryFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	require.Error(t, err, "registering the same collectors twice must be rejected")
}

func TestCountersStartAtZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	require.Zero(t, counterValue(t, m.Commits))
	require.Zero(t, counterValue(t, m.GossipSent))
	require.Zero(t, counterValue(t, m.PayloadRequests))
}

func TestGossipDroppedIsLabeledByReason(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.GossipDropped.WithLabelValues("bad_signature").Inc()
	m.GossipDropped.WithLabelValues("bad_signature").Inc()
	m.GossipDropped.WithLabelValues("missing_payload").Inc()

	require.Equal(t, float64(2), counterValue(t, m.GossipDropped.WithLabelValues("bad_signature")))
	require.Equal(t, float64(1), counterValue(t, m.GossipDropped.WithLabelValues("missing_payload")))
}
