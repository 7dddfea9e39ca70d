// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids defines the fixed-width opaque identifier types used
// throughout the plugin boundary: 32-byte Id (chain, block, subnet,
// asset) and 20-byte NodeId. Both display as base58 with a 4-byte
// checksum (cb58), matching the encoding the host consensus engine
// itself uses so log lines and error messages on either side of the
// boundary read identically.
package ids

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// IDLen is the number of bytes in an Id.
const IDLen = 32

// checksumLen is the number of trailing checksum bytes appended before
// base58 encoding.
const checksumLen = 4

// ErrInvalidLen is returned when a byte slice is the wrong length to be
// converted into an Id or NodeId.
var ErrInvalidLen = errors.New("invalid length")

// Id is a 32-byte opaque identifier. The zero value is the empty Id.
type Id [IDLen]byte

// Empty is the all-zero Id.
var Empty = Id{}

// ToID constructs an Id from a byte slice. It fails if the slice is not
// exactly IDLen bytes long.
func ToID(b []byte) (Id, error) {
	var id Id
	if len(b) != IDLen {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLen, IDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns a copy of the Id's bytes. Bytes(ToID(b)) == b for any b
// of the correct length.
func (id Id) Bytes() []byte {
	b := make([]byte, IDLen)
	copy(b, id[:])
	return b
}

// String returns the canonical cb58 display of the Id. Two Ids with
// equal bytes always display identically, and the encoding is stable
// across restarts.
func (id Id) String() string {
	return cb58(id[:])
}

// cb58 base58-encodes data with a trailing 4-byte SHA256 checksum, the
// encoding the host consensus engine uses for every opaque identifier
// it logs or displays.
func cb58(data []byte) string {
	checksummed := make([]byte, len(data)+checksumLen)
	copy(checksummed, data)

	hash := sha256.Sum256(data)
	copy(checksummed[len(data):], hash[len(hash)-checksumLen:])

	return base58.Encode(checksummed)
}
