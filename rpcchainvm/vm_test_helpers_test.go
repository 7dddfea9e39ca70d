// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcchainvm

import (
	"context"
	"time"

	"github.com/luxfi/rpcchainvm/block"
	"github.com/luxfi/rpcchainvm/choices"
	"github.com/luxfi/rpcchainvm/enginestate"
	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmcontext"
)

// testBlock is a minimal block.Block double: every field is directly
// settable, and Accept/Reject record the resulting status so tests can
// assert on it without a real inner VM.
type testBlock struct {
	id        ids.Id
	parent    ids.Id
	bytes     []byte
	height    uint64
	timestamp uint64
	status    choices.Status

	verifyErr error
	acceptErr error
	rejectErr error
}

func (b *testBlock) ID() ids.Id                   { return b.id }
func (b *testBlock) Status() choices.Status       { return b.status }
func (b *testBlock) Parent() ids.Id               { return b.parent }
func (b *testBlock) Bytes() []byte                { return b.bytes }
func (b *testBlock) Height() uint64               { return b.height }
func (b *testBlock) Timestamp() uint64            { return b.timestamp }
func (b *testBlock) Verify(context.Context) error { return b.verifyErr }

func (b *testBlock) Accept(context.Context) error {
	if b.acceptErr != nil {
		return b.acceptErr
	}
	b.status = choices.Accepted
	return nil
}

func (b *testBlock) Reject(context.Context) error {
	if b.rejectErr != nil {
		return b.rejectErr
	}
	b.status = choices.Rejected
	return nil
}

// testVM is a block.ChainVM double in the function-field style: every
// method is backed by an optional func field, defaulting to a
// zero-value success when unset.
type testVM struct {
	InitializeF func(
		ctx context.Context,
		dbManager block.DatabaseManager,
		genesisBytes, upgradeBytes, configBytes []byte,
		toEngine chan<- block.Message,
		appSender block.AppSender,
	) error
	SetStateF             func(ctx context.Context, state enginestate.State) error
	ShutdownF             func(ctx context.Context) error
	LastAcceptedF         func(ctx context.Context) (ids.Id, error)
	GetBlockF             func(ctx context.Context, id ids.Id) (block.Block, error)
	ParseBlockF           func(ctx context.Context, bytes []byte) (block.Block, error)
	BuildBlockF           func(ctx context.Context) (block.Block, error)
	SetPreferenceF        func(ctx context.Context, id ids.Id) error
	HealthCheckF          func(ctx context.Context) (interface{}, error)
	VersionF              func(ctx context.Context) (string, error)
	CreateHandlersF       func(ctx context.Context) (map[string]*block.Handler, error)
	CreateStaticHandlersF func(ctx context.Context) (map[string]*block.Handler, error)
	ConnectedF            func(ctx context.Context, nodeID ids.NodeId, version string) error
	DisconnectedF         func(ctx context.Context, nodeID ids.NodeId) error
	AppRequestF           func(ctx context.Context, nodeID ids.NodeId, requestID uint32, deadline time.Time, request []byte) error
	AppRequestFailedF     func(ctx context.Context, nodeID ids.NodeId, requestID uint32) error
	AppResponseF          func(ctx context.Context, nodeID ids.NodeId, requestID uint32, response []byte) error
	AppGossipF            func(ctx context.Context, nodeID ids.NodeId, msg []byte) error
}

var _ block.ChainVM = (*testVM)(nil)

func (vm *testVM) Initialize(
	ctx context.Context,
	_ *vmcontext.Context,
	dbManager block.DatabaseManager,
	genesisBytes, upgradeBytes, configBytes []byte,
	toEngine chan<- block.Message,
	fxs []*block.Fx,
	appSender block.AppSender,
) error {
	if vm.InitializeF != nil {
		return vm.InitializeF(ctx, dbManager, genesisBytes, upgradeBytes, configBytes, toEngine, appSender)
	}
	return nil
}

func (vm *testVM) SetState(ctx context.Context, state enginestate.State) error {
	if vm.SetStateF != nil {
		return vm.SetStateF(ctx, state)
	}
	return nil
}

func (vm *testVM) Shutdown(ctx context.Context) error {
	if vm.ShutdownF != nil {
		return vm.ShutdownF(ctx)
	}
	return nil
}

func (vm *testVM) LastAccepted(ctx context.Context) (ids.Id, error) {
	if vm.LastAcceptedF != nil {
		return vm.LastAcceptedF(ctx)
	}
	return ids.Empty, nil
}

func (vm *testVM) GetBlock(ctx context.Context, id ids.Id) (block.Block, error) {
	if vm.GetBlockF != nil {
		return vm.GetBlockF(ctx, id)
	}
	return nil, nil
}

func (vm *testVM) ParseBlock(ctx context.Context, bytes []byte) (block.Block, error) {
	if vm.ParseBlockF != nil {
		return vm.ParseBlockF(ctx, bytes)
	}
	return nil, nil
}

func (vm *testVM) BuildBlock(ctx context.Context) (block.Block, error) {
	if vm.BuildBlockF != nil {
		return vm.BuildBlockF(ctx)
	}
	return nil, nil
}

func (vm *testVM) SetPreference(ctx context.Context, id ids.Id) error {
	if vm.SetPreferenceF != nil {
		return vm.SetPreferenceF(ctx, id)
	}
	return nil
}

func (vm *testVM) HealthCheck(ctx context.Context) (interface{}, error) {
	if vm.HealthCheckF != nil {
		return vm.HealthCheckF(ctx)
	}
	return "", nil
}

func (vm *testVM) Version(ctx context.Context) (string, error) {
	if vm.VersionF != nil {
		return vm.VersionF(ctx)
	}
	return "", nil
}

func (vm *testVM) CreateHandlers(ctx context.Context) (map[string]*block.Handler, error) {
	if vm.CreateHandlersF != nil {
		return vm.CreateHandlersF(ctx)
	}
	return nil, nil
}

func (vm *testVM) CreateStaticHandlers(ctx context.Context) (map[string]*block.Handler, error) {
	if vm.CreateStaticHandlersF != nil {
		return vm.CreateStaticHandlersF(ctx)
	}
	return nil, nil
}

func (vm *testVM) Connected(ctx context.Context, nodeID ids.NodeId, version string) error {
	if vm.ConnectedF != nil {
		return vm.ConnectedF(ctx, nodeID, version)
	}
	return nil
}

func (vm *testVM) Disconnected(ctx context.Context, nodeID ids.NodeId) error {
	if vm.DisconnectedF != nil {
		return vm.DisconnectedF(ctx, nodeID)
	}
	return nil
}

func (vm *testVM) AppRequest(ctx context.Context, nodeID ids.NodeId, requestID uint32, deadline time.Time, request []byte) error {
	if vm.AppRequestF != nil {
		return vm.AppRequestF(ctx, nodeID, requestID, deadline, request)
	}
	return nil
}

func (vm *testVM) AppRequestFailed(ctx context.Context, nodeID ids.NodeId, requestID uint32) error {
	if vm.AppRequestFailedF != nil {
		return vm.AppRequestFailedF(ctx, nodeID, requestID)
	}
	return nil
}

func (vm *testVM) AppResponse(ctx context.Context, nodeID ids.NodeId, requestID uint32, response []byte) error {
	if vm.AppResponseF != nil {
		return vm.AppResponseF(ctx, nodeID, requestID, response)
	}
	return nil
}

func (vm *testVM) AppGossip(ctx context.Context, nodeID ids.NodeId, msg []byte) error {
	if vm.AppGossipF != nil {
		return vm.AppGossipF(ctx, nodeID, msg)
	}
	return nil
}

// fixedID returns the id whose bytes are all b, for readable test
// fixtures.
func fixedID(b byte) ids.Id {
	var id ids.Id
	for i := range id {
		id[i] = b
	}
	return id
}

func fixedNodeID(b byte) ids.NodeId {
	var id ids.NodeId
	for i := range id {
		id[i] = b
	}
	return id
}
