// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import "fmt"

// NodeIDLen is the number of bytes in a NodeId.
const NodeIDLen = 20

// NodeId is a 20-byte opaque identifier naming a peer node.
type NodeId [NodeIDLen]byte

// EmptyNodeId is the all-zero NodeId.
var EmptyNodeId = NodeId{}

// ToNodeID constructs a NodeId from a byte slice. It fails if the slice
// is not exactly NodeIDLen bytes long.
func ToNodeID(b []byte) (NodeId, error) {
	var id NodeId
	if len(b) != NodeIDLen {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLen, NodeIDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns a copy of the NodeId's bytes.
func (id NodeId) Bytes() []byte {
	b := make([]byte, NodeIDLen)
	copy(b, id[:])
	return b
}

// String returns the canonical "NodeID-<cb58>" display, matching the
// host's own NodeID display so log lines agree on either side of the
// plugin boundary.
func (id NodeId) String() string {
	return "NodeID-" + cb58(id[:])
}
