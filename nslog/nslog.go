// Copyright (C) 2025, The Nightshade Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nslog provides the structured logger Engine and Task log
// through, thin over github.com/luxfi/log.
package nslog

import "github.com/luxfi/log"

// Logger is the structured, geth-style logging interface used
// throughout this module: variadic key-value pairs after a message.
type Logger = log.Logger

// New returns a named production logger.
func New(name string) Logger {
	return log.NewLogger(name)
}

// NewNoOp returns a logger that discards everything, for tests.
func NewNoOp() Logger {
	return log.NewNoOpLogger()
}
