// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package enginestate defines the coarse lifecycle phase the host
// drives the adapter through via SetState.
package enginestate

import "fmt"

// State is the node's coarse lifecycle phase.
type State uint32

const (
	// Initializing is the state before the host has told the VM to do
	// anything else.
	Initializing State = iota
	// StateSyncing means the node is fetching a recent state snapshot
	// rather than replaying history from genesis.
	StateSyncing
	// Bootstrapping means the node is replaying/validating history up
	// to the current tip.
	Bootstrapping
	// NormalOp means the node is caught up and participating in
	// ordinary consensus.
	NormalOp
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case StateSyncing:
		return "StateSyncing"
	case Bootstrapping:
		return "Bootstrapping"
	case NormalOp:
		return "NormalOp"
	default:
		return "Unknown"
	}
}

// FromUint32 validates and converts a wire u32 state code. The adapter
// does not enforce the Initializing -> StateSyncing -> Bootstrapping ->
// NormalOp progression itself -- it forwards whatever valid state the
// host sends and lets the inner VM decide -- but it must reject
// out-of-range codes before forwarding.
func FromUint32(u uint32) (State, error) {
	s := State(u)
	switch s {
	case Initializing, StateSyncing, Bootstrapping, NormalOp:
		return s, nil
	default:
		return 0, fmt.Errorf("unknown engine state code %d", u)
	}
}
