// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package choices

import (
	"context"
	"fmt"

	"github.com/luxfi/rpcchainvm/ids"
)

// Decidable is the capability every block must expose so the adapter
// can drive the parse -> verify -> {accept | reject} lifecycle without
// inspecting block contents.
type Decidable interface {
	// ID returns a unique identifier for this element. An element must
	// return the same ID on every call.
	ID() ids.Id

	// Status returns the element's current status.
	Status() Status

	// Accept marks this element as accepted by every correct node in
	// the network. Calling Accept on a terminal (Accepted or Rejected)
	// element is a caller error and returns ErrDecided.
	Accept(context.Context) error

	// Reject marks this element as not accepted by any correct node in
	// the network. Calling Reject on a terminal element is a caller
	// error and returns ErrDecided.
	Reject(context.Context) error
}

// ErrDecided is returned by Accept/Reject when called on an element
// whose status is already terminal. The consensus engine guarantees
// at-most-one decide call per element, so this indicates a fatal
// programming error rather than a retryable condition.
var ErrDecided = fmt.Errorf("cannot decide an already-decided element")
