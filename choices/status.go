// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package choices defines the consensus-status lattice blocks move
// through, and the Decidable capability the adapter requires of them.
package choices

// Status represents the status of a block as seen by this node.
//
// Legal transitions:
//
//	Unknown    -> any state, but only by re-fetching the block
//	Processing -> Accepted  (via Decidable.Accept)
//	Processing -> Rejected  (via Decidable.Reject)
//	Accepted, Rejected are terminal.
//
// Accept/Reject on an already-terminal status is not idempotent at
// this layer: the consensus engine guarantees at-most-one call, so a
// second call indicates a caller bug and must fail fatally rather than
// silently succeed.
type Status uint32

const (
	// Unknown is the pre-lifecycle sentinel: the block has not yet been
	// fetched, or this node has no opinion on it.
	Unknown Status = iota
	// Processing means the block has been fetched but not yet decided.
	Processing
	// Accepted is a terminal status.
	Accepted
	// Rejected is a terminal status.
	Rejected
)

func (s Status) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Processing:
		return "Processing"
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	default:
		return "Invalid status"
	}
}

// Valid reports whether s is one of the four declared statuses.
func (s Status) Valid() bool {
	switch s {
	case Unknown, Processing, Accepted, Rejected:
		return true
	default:
		return false
	}
}

// Decided reports whether s is a terminal status.
func (s Status) Decided() bool {
	switch s {
	case Accepted, Rejected:
		return true
	default:
		return false
	}
}

// Fetched reports whether s reflects a block this node has actually
// retrieved (as opposed to the pre-fetch Unknown sentinel).
func (s Status) Fetched() bool {
	switch s {
	case Processing, Accepted, Rejected:
		return true
	default:
		return false
	}
}
