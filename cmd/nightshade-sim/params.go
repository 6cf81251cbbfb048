// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/nightshade/nsconfig"
)

func paramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show a named parameter preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("preset")
			p, err := nsconfig.NewBuilder().FromPreset(nsconfig.NetworkType(name)).Build()
			if err != nil {
				return fmt.Errorf("params: %w", err)
			}
			fmt.Printf("preset: %s\n", name)
			fmt.Printf("num authorities:   %d\n", p.NumAuthorities)
			fmt.Printf("commit threshold:  %d\n", p.CommitThreshold)
			fmt.Printf("cooldown interval: %s\n", p.CooldownInterval)
			return nil
		},
	}
	cmd.Flags().String("preset", "local", "preset name: mainnet, local, test")
	return cmd
}
