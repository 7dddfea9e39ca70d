// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nullvm is the minimal reference block.ChainVM this
// repository ships cmd/vmserver with: a single-chain, single-writer
// VM with no consensus logic of its own, whose only purpose is to
// prove the adapter's plumbing end-to-end; it carries no real
// consensus or execution logic.
package nullvm

import (
	"context"
	"crypto/sha256"
	"errors"
	"sync"
	"time"

	"github.com/luxfi/log"
	"github.com/luxfi/rpcchainvm/block"
	"github.com/luxfi/rpcchainvm/choices"
	"github.com/luxfi/rpcchainvm/enginestate"
	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmcontext"
)

var (
	errShortBlock    = errors.New("not found")
	errUnknownParent = errors.New("not found")
	errUnknownBlock  = errors.New("not found")
)

// VM is the reference block.ChainVM implementation. Every block it has
// ever parsed or built stays resident in blocks for the process
// lifetime; acceptable for a demonstration VM, not for a production
// one.
type VM struct {
	log log.Logger

	mu           sync.Mutex
	blocks       map[ids.Id]*nullBlock
	lastAccepted ids.Id
	preference   ids.Id
	nextPayload  uint64

	toEngine chan<- block.Message
}

var _ block.ChainVM = (*VM)(nil)

// New returns an uninitialized VM. Initialize must be called before
// any other method.
func New() *VM {
	return &VM{blocks: make(map[ids.Id]*nullBlock)}
}

// Initialize builds the genesis block from genesisBytes and accepts it
// immediately: this VM has no bootstrapping phase of its own.
func (vm *VM) Initialize(
	ctx context.Context,
	chainCtx *vmcontext.Context,
	dbManager block.DatabaseManager,
	genesisBytes []byte,
	upgradeBytes []byte,
	configBytes []byte,
	toEngine chan<- block.Message,
	fxs []*block.Fx,
	appSender block.AppSender,
) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.log = chainCtx.Log
	vm.toEngine = toEngine

	sum := sha256.Sum256(genesisBytes)
	genesisID, err := ids.ToID(sum[:])
	if err != nil {
		return err
	}

	genesis := &nullBlock{
		vm:        vm,
		id:        genesisID,
		parent:    genesisID,
		bytes:     genesisBytes,
		height:    0,
		timestamp: uint64(time.Now().Unix()),
		status:    choices.Accepted,
	}
	vm.blocks[genesisID] = genesis
	vm.lastAccepted = genesisID
	vm.preference = genesisID

	vm.log.Debug("nullvm initialized", log.Stringer("genesis", genesisID))
	return nil
}

func (vm *VM) SetState(context.Context, enginestate.State) error {
	return nil
}

func (vm *VM) Shutdown(context.Context) error {
	return nil
}

func (vm *VM) LastAccepted(context.Context) (ids.Id, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastAccepted, nil
}

func (vm *VM) GetBlock(_ context.Context, id ids.Id) (block.Block, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	blk, ok := vm.blocks[id]
	if !ok {
		return nil, errUnknownBlock
	}
	return blk, nil
}

// ParseBlock decodes bytes into a block. Parsing the same bytes twice
// returns the same resident block rather than a fresh copy, so status
// observed through a second parse reflects any decision made on the
// first.
func (vm *VM) ParseBlock(_ context.Context, bytes []byte) (block.Block, error) {
	sum := sha256.Sum256(bytes)
	id, err := ids.ToID(sum[:])
	if err != nil {
		return nil, err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if existing, ok := vm.blocks[id]; ok {
		return existing, nil
	}

	parent, height, timestamp, err := decodeBlock(bytes)
	if err != nil {
		return nil, err
	}
	blk := &nullBlock{
		vm:        vm,
		id:        id,
		parent:    parent,
		bytes:     bytes,
		height:    height,
		timestamp: timestamp,
		status:    choices.Processing,
	}
	vm.blocks[id] = blk
	return blk, nil
}

// BuildBlock extends the current preference by one height, stamping a
// monotonically increasing payload so two builds never collide.
func (vm *VM) BuildBlock(context.Context) (block.Block, error) {
	vm.mu.Lock()
	parent, ok := vm.blocks[vm.preference]
	if !ok {
		vm.mu.Unlock()
		return nil, errUnknownParent
	}
	vm.nextPayload++
	payload := make([]byte, 8)
	for i := range payload {
		payload[i] = byte(vm.nextPayload >> (8 * uint(i)))
	}
	height := parent.height + 1
	timestamp := uint64(time.Now().Unix())
	bytes := encodeBlock(parent.id, height, timestamp, payload)
	sum := sha256.Sum256(bytes)
	id, err := ids.ToID(sum[:])
	if err != nil {
		vm.mu.Unlock()
		return nil, err
	}
	blk := &nullBlock{
		vm:        vm,
		id:        id,
		parent:    parent.id,
		bytes:     bytes,
		height:    height,
		timestamp: timestamp,
		status:    choices.Processing,
	}
	vm.blocks[id] = blk
	toEngine := vm.toEngine
	vm.mu.Unlock()

	if toEngine != nil {
		select {
		case toEngine <- block.Message{Type: 0}:
		default:
		}
	}
	return blk, nil
}

func (vm *VM) SetPreference(_ context.Context, id ids.Id) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if _, ok := vm.blocks[id]; !ok {
		return errUnknownBlock
	}
	vm.preference = id
	return nil
}

func (vm *VM) HealthCheck(context.Context) (interface{}, error) {
	return "ok", nil
}

func (vm *VM) Version(context.Context) (string, error) {
	return "nullvm/0.1.0", nil
}

// CreateHandlers has nothing chain-instance-specific to expose.
func (vm *VM) CreateHandlers(context.Context) (map[string]*block.Handler, error) {
	return nil, nil
}

// CreateStaticHandlers exposes the gorilla/rpc JSON-RPC service that
// proves the ghttp sub-server plumbing end-to-end.
func (vm *VM) CreateStaticHandlers(context.Context) (map[string]*block.Handler, error) {
	return map[string]*block.Handler{
		"/rpc": {Router: newRPCHandler(vm)},
	}, nil
}

func (vm *VM) Connected(context.Context, ids.NodeId, string) error { return nil }
func (vm *VM) Disconnected(context.Context, ids.NodeId) error      { return nil }

func (vm *VM) AppRequest(context.Context, ids.NodeId, uint32, time.Time, []byte) error {
	return nil
}
func (vm *VM) AppRequestFailed(context.Context, ids.NodeId, uint32) error { return nil }
func (vm *VM) AppResponse(context.Context, ids.NodeId, uint32, []byte) error {
	return nil
}
func (vm *VM) AppGossip(context.Context, ids.NodeId, []byte) error { return nil }
