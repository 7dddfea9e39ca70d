// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nullvm

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/luxfi/rpcchainvm/choices"
	"github.com/luxfi/rpcchainvm/ids"
)

// blockHeaderLen is the length of the fixed header of a nullBlock's
// wire encoding: parent id, height, timestamp (all big-endian). The
// opaque payload follows the header. A block's id is always sha256 of this encoding, so
// ParseBlock(Bytes()) reproduces ID() without any side table.
const blockHeaderLen = ids.IDLen + 8 + 8

func encodeBlock(parent ids.Id, height, timestamp uint64, payload []byte) []byte {
	buf := make([]byte, blockHeaderLen+len(payload))
	copy(buf[:ids.IDLen], parent.Bytes())
	binary.BigEndian.PutUint64(buf[ids.IDLen:ids.IDLen+8], height)
	binary.BigEndian.PutUint64(buf[ids.IDLen+8:blockHeaderLen], timestamp)
	copy(buf[blockHeaderLen:], payload)
	return buf
}

func decodeBlock(b []byte) (parent ids.Id, height, timestamp uint64, err error) {
	if len(b) < blockHeaderLen {
		return ids.Id{}, 0, 0, errShortBlock
	}
	parent, err = ids.ToID(b[:ids.IDLen])
	if err != nil {
		return ids.Id{}, 0, 0, err
	}
	height = binary.BigEndian.Uint64(b[ids.IDLen : ids.IDLen+8])
	timestamp = binary.BigEndian.Uint64(b[ids.IDLen+8 : blockHeaderLen])
	return parent, height, timestamp, nil
}

// nullBlock is the reference block.Block implementation nullVM
// produces: its only business logic is "every parsed block whose
// parent is already known verifies".
type nullBlock struct {
	vm *VM

	id        ids.Id
	parent    ids.Id
	bytes     []byte
	height    uint64
	timestamp uint64

	mu     sync.Mutex
	status choices.Status
}

func (b *nullBlock) ID() ids.Id            { return b.id }
func (b *nullBlock) Parent() ids.Id        { return b.parent }
func (b *nullBlock) Bytes() []byte         { return b.bytes }
func (b *nullBlock) Height() uint64        { return b.height }
func (b *nullBlock) Timestamp() uint64     { return b.timestamp }

func (b *nullBlock) Status() choices.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Verify requires the parent to already be known to the VM; the
// genesis block is its own parent and always verifies.
func (b *nullBlock) Verify(context.Context) error {
	if b.id == b.parent {
		return nil
	}
	b.vm.mu.Lock()
	_, known := b.vm.blocks[b.parent]
	b.vm.mu.Unlock()
	if !known {
		return errUnknownParent
	}
	return nil
}

func (b *nullBlock) Accept(ctx context.Context) error {
	if err := b.decide(choices.Accepted); err != nil {
		return err
	}
	b.vm.mu.Lock()
	b.vm.lastAccepted = b.id
	b.vm.mu.Unlock()
	return nil
}

func (b *nullBlock) Reject(context.Context) error {
	return b.decide(choices.Rejected)
}

func (b *nullBlock) decide(to choices.Status) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status.Decided() {
		return choices.ErrDecided
	}
	b.status = to
	return nil
}
