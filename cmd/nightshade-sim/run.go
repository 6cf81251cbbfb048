// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/ids"
	blskeys "github.com/luxfi/nightshade/cryptoshare/bls"
	"github.com/luxfi/nightshade/cryptoshare/transport"
	"github.com/luxfi/nightshade/gossip"
	"github.com/luxfi/nightshade/nightshade"
	"github.com/luxfi/nightshade/nsconfig"
	"github.com/luxfi/nightshade/nslog"
	"github.com/luxfi/nightshade/nsmetrics"

	"github.com/prometheus/client_golang/prometheus"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full-mesh simulation to commitment",
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, _ := cmd.Flags().GetString("preset")
			timeout, _ := cmd.Flags().GetDuration("timeout")

			params, err := nsconfig.NewBuilder().FromPreset(nsconfig.NetworkType(preset)).Build()
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			return runSimulation(params, timeout)
		},
	}
	cmd.Flags().String("preset", "local", "preset name: mainnet, local, test")
	cmd.Flags().Duration("timeout", 10*time.Second, "time budget before giving up")
	return cmd
}

// authority bundles one simulated participant's identity and keys.
type authority struct {
	id             nightshade.AuthorityId
	blsSecret      *blskeys.SecretKey
	blsPublic      *blskeys.PublicKey
	transportSecret *transport.SecretKey
	transportPublic *transport.PublicKey
	block          gossip.Block
	header         nightshade.BlockHeader
}

func newAuthority(id nightshade.AuthorityId) (authority, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return authority{}, fmt.Errorf("generate bls seed: %w", err)
	}
	blsSecret, err := blskeys.KeyFromSeed(seed)
	if err != nil {
		return authority{}, err
	}
	transportSecret, err := transport.GenerateKey()
	if err != nil {
		return authority{}, err
	}

	payload := []byte(fmt.Sprintf("nightshade-sim proposal from authority %d", id))
	hash := sha256.Sum256(payload)
	header := nightshade.BlockHeader{Author: id, Hash: ids.ID(hash)}

	return authority{
		id:              id,
		blsSecret:       blsSecret,
		blsPublic:       blsSecret.PublicKey(),
		transportSecret: transportSecret,
		transportPublic: transportSecret.PublicKey(),
		block:           gossip.Block{Author: id, Payload: payload},
		header:          header,
	}, nil
}

// runSimulation wires N tasks through in-memory channels and runs
// them until every authority commits or the timeout elapses.
func runSimulation(params nsconfig.Parameters, timeout time.Duration) error {
	n := params.NumAuthorities
	log := nslog.New("nightshade-sim")

	authorities := make([]authority, n)
	for i := range authorities {
		a, err := newAuthority(nightshade.AuthorityId(i))
		if err != nil {
			return err
		}
		authorities[i] = a
	}

	blsPublicKeys := make([]*blskeys.PublicKey, n)
	transportPublicKeys := make([]*transport.PublicKey, n)
	for i, a := range authorities {
		blsPublicKeys[i] = a.blsPublic
		transportPublicKeys[i] = a.transportPublic
	}

	controlCh := make([]chan gossip.Control, n)
	inboundCh := make([]chan gossip.Envelope, n)
	outboundCh := make([]chan gossip.Envelope, n)
	commitCh := make([]chan nightshade.BlockHeader, n)
	tasks := make([]*gossip.Task, n)

	reg := prometheus.NewRegistry()
	metrics, err := nsmetrics.New(reg)
	if err != nil {
		return fmt.Errorf("run: metrics: %w", err)
	}

	for i := 0; i < n; i++ {
		controlCh[i] = make(chan gossip.Control, 1)
		inboundCh[i] = make(chan gossip.Envelope, n*4)
		outboundCh[i] = make(chan gossip.Envelope, n*4)
		commitCh[i] = make(chan nightshade.BlockHeader, 1)
		tasks[i] = gossip.NewTask(controlCh[i], inboundCh[i], outboundCh[i], commitCh[i], log, metrics)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			err := tasks[i].Run(ctx, params.CooldownInterval)
			if err == context.Canceled || err == context.DeadlineExceeded {
				return nil
			}
			return err
		})
		g.Go(func() error {
			return route(ctx, outboundCh[i], inboundCh)
		})
	}

	for i := 0; i < n; i++ {
		participants := gossip.Participants{
			OwnerID:         authorities[i].id,
			NumAuthorities:  n,
			BLSPublicKeys:   blsPublicKeys,
			BLSSecretKey:    authorities[i].blsSecret,
			TransportKeys:   transportPublicKeys,
			TransportSecret: authorities[i].transportSecret,
		}
		controlCh[i] <- gossip.NewResetCommand(participants, authorities[i].header, authorities[i].block)
	}

	committed := make(map[nightshade.AuthorityId]nightshade.BlockHeader, n)
	for len(committed) < n {
		select {
		case <-ctx.Done():
			fmt.Printf("timed out with %d/%d authorities committed\n", len(committed), n)
			for i := 0; i < n; i++ {
				controlCh[i] <- gossip.NewStopCommand()
			}
			cancel()
			return g.Wait()
		default:
		}

		received := false
		for i := 0; i < n; i++ {
			if _, ok := committed[nightshade.AuthorityId(i)]; ok {
				continue
			}
			select {
			case h := <-commitCh[i]:
				committed[nightshade.AuthorityId(i)] = h
				fmt.Printf("authority %d committed to %s\n", i, h)
				received = true
			default:
			}
		}
		if !received {
			time.Sleep(time.Millisecond)
		}
	}

	for i := 0; i < n; i++ {
		controlCh[i] <- gossip.NewStopCommand()
	}
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Println("all authorities committed")
	return nil
}

// route forwards every envelope sent on out to the inbound channel of
// its declared receiver, until ctx is cancelled.
func route(ctx context.Context, out <-chan gossip.Envelope, inbound []chan gossip.Envelope) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case env, ok := <-out:
			if !ok {
				return nil
			}
			if int(env.ReceiverID) >= len(inbound) {
				continue
			}
			select {
			case inbound[env.ReceiverID] <- env:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
