// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block defines the capability the adapter requires of the
// inner VM and of the blocks it produces. The adapter never inspects
// block contents beyond this surface; the inner VM owns the block DAG.
package block

import (
	"context"
	"net/http"
	"time"

	"github.com/luxfi/database"

	"github.com/luxfi/rpcchainvm/choices"
	localdb "github.com/luxfi/rpcchainvm/database"
	"github.com/luxfi/rpcchainvm/enginestate"
	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmcontext"
)

// Block is the capability set the adapter requires of every block the
// inner VM produces. Parents are referenced by id, never by direct
// pointer, so the adapter never needs to reason about cycles in the
// block DAG -- that is the inner VM's responsibility.
type Block interface {
	choices.Decidable

	// Parent returns the id of this block's parent.
	Parent() ids.Id
	// Bytes returns this block's opaque serialized form. parse(bytes).ID()
	// must equal ID() for every block the inner VM returns.
	Bytes() []byte
	// Height returns this block's height in the chain.
	Height() uint64
	// Timestamp returns this block's timestamp, in seconds since the
	// Unix epoch.
	Timestamp() uint64
	// Verify runs the inner VM's validity checks for this block.
	Verify(context.Context) error
}

// Message is an outgoing notification the inner VM wants delivered to
// the host's consensus engine. Type is the wire code the notification
// pump forwards via the messenger client.
type Message struct {
	Type uint32
}

// Fx is a feature-extension descriptor. The adapter threads an empty
// Fx slice through to the inner VM's Initialize: the reference
// implementation passes no subscribers, and this adapter preserves
// the parameter slot without assigning it meaning (see DESIGN.md).
type Fx struct {
	ID ids.Id
}

// AppSender is the capability the inner VM uses to push
// application-level peer messages back out through the host.
type AppSender interface {
	SendAppRequest(ctx context.Context, nodeID ids.NodeId, requestID uint32, request []byte) error
	SendAppResponse(ctx context.Context, nodeID ids.NodeId, requestID uint32, response []byte) error
	SendAppGossip(ctx context.Context, msg []byte) error
}

// Handler is an HTTP endpoint the inner VM wants exposed to the host.
// A Handler with a nil Router is silently skipped when enumerating --
// it is not an error, just an unused extension point.
type Handler struct {
	LockOptions uint32
	Router      http.Handler
}

// DatabaseManager is the subset of *localdb.Manager the ChainVM
// contract depends on, expressed as an interface so test doubles don't
// need a real database.Database.
type DatabaseManager interface {
	Current() database.Database
	CurrentVersion() localdb.Version
}

// ChainVM is the inner VM capability the adapter owns and multiplexes
// host RPCs into. Every method may suspend on I/O; callers must not
// call it from inside another call.
type ChainVM interface {
	// Initialize configures the inner VM for the chain described by
	// chainCtx. toEngine is a bounded channel the inner VM uses to push
	// notifications the adapter's pump forwards to the host, in order.
	Initialize(
		ctx context.Context,
		chainCtx *vmcontext.Context,
		dbManager DatabaseManager,
		genesisBytes []byte,
		upgradeBytes []byte,
		configBytes []byte,
		toEngine chan<- Message,
		fxs []*Fx,
		appSender AppSender,
	) error

	// SetState forwards the host's declared lifecycle phase. The VM may
	// reject a state it considers out of order; the adapter itself does
	// not enforce ordering.
	SetState(ctx context.Context, state enginestate.State) error

	// Shutdown releases any resources held by the inner VM.
	Shutdown(ctx context.Context) error

	// LastAccepted returns the id of the most recently accepted block.
	LastAccepted(ctx context.Context) (ids.Id, error)
	// GetBlock retrieves a block by id.
	GetBlock(ctx context.Context, id ids.Id) (Block, error)
	// ParseBlock deserializes a block from its opaque byte form.
	ParseBlock(ctx context.Context, bytes []byte) (Block, error)
	// BuildBlock builds a new block on top of the current preference.
	BuildBlock(ctx context.Context) (Block, error)
	// SetPreference tells the inner VM which processing block the
	// consensus engine currently prefers.
	SetPreference(ctx context.Context, id ids.Id) error

	// HealthCheck returns an opaque health payload, or an error if
	// unhealthy.
	HealthCheck(ctx context.Context) (interface{}, error)
	// Version returns the inner VM's free-form version string.
	Version(ctx context.Context) (string, error)

	// CreateHandlers returns the chain-specific HTTP extensions the
	// inner VM wants exposed, keyed by URL prefix.
	CreateHandlers(ctx context.Context) (map[string]*Handler, error)
	// CreateStaticHandlers returns HTTP extensions that do not depend
	// on a particular chain instance.
	CreateStaticHandlers(ctx context.Context) (map[string]*Handler, error)

	// Connected is called when the host connects to a peer running the
	// given version string.
	Connected(ctx context.Context, nodeID ids.NodeId, version string) error
	// Disconnected is called when a peer disconnects.
	Disconnected(ctx context.Context, nodeID ids.NodeId) error

	AppRequest(ctx context.Context, nodeID ids.NodeId, requestID uint32, deadline time.Time, request []byte) error
	AppRequestFailed(ctx context.Context, nodeID ids.NodeId, requestID uint32) error
	AppResponse(ctx context.Context, nodeID ids.NodeId, requestID uint32, response []byte) error
	AppGossip(ctx context.Context, nodeID ids.NodeId, msg []byte) error
}

// BatchedChainVM is an optional capability: a VM that can parse many
// blocks, or answer ancestor walks, more efficiently than looping
// single-block calls.
type BatchedChainVM interface {
	ChainVM
	GetAncestors(
		ctx context.Context,
		blkID ids.Id,
		maxBlocksNum int,
		maxBlocksSize int,
		maxBlocksRetrievalTime time.Duration,
	) ([][]byte, error)
	BatchedParseBlock(ctx context.Context, blks [][]byte) ([]Block, error)
}

// HeightIndexedChainVM is an optional capability: a VM that maintains
// an index from block height to accepted block id.
type HeightIndexedChainVM interface {
	ChainVM
	VerifyHeightIndex(ctx context.Context) error
	GetBlockIDAtHeight(ctx context.Context, height uint64) (ids.Id, error)
}

// ValidatorFetcherVM is an optional capability: a VM that can report
// the validator set active as of a given block.
type ValidatorFetcherVM interface {
	ChainVM
	GetValidators(ctx context.Context, blkID ids.Id) (map[ids.NodeId]uint64, error)
}

// StateSyncableVM is the state-sync surface. The adapter's default
// behavior is to return Unimplemented for every method in this family
// without consulting the inner VM; an adapter that wires a concrete
// StateSyncableVM may serve these for real.
type StateSyncableVM interface {
	StateSyncEnabled(ctx context.Context) (bool, error)
	GetOngoingSyncStateSummary(ctx context.Context) (StateSummary, error)
	GetLastStateSummary(ctx context.Context) (StateSummary, error)
	ParseStateSummary(ctx context.Context, bytes []byte) (StateSummary, error)
	GetStateSummary(ctx context.Context, height uint64) (StateSummary, error)
}

// StateSummary is a state-sync snapshot descriptor.
type StateSummary interface {
	ID() ids.Id
	Height() uint64
	Bytes() []byte
	Accept(context.Context) (bool, error)
}
