// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcchainvm implements the VM adapter server: the object that
// owns the inner VM, multiplexes host RPCs into its async interface,
// bridges its outgoing notifications back to the host, brings up
// per-handler HTTP sub-servers on demand, and drives the block state
// machine with the ordering and error-code contracts the host expects.
package rpcchainvm

import (
	"context"
	"sync"
	"time"

	"github.com/luxfi/log"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/luxfi/rpcchainvm/appsender"
	"github.com/luxfi/rpcchainvm/block"
	"github.com/luxfi/rpcchainvm/database"
	"github.com/luxfi/rpcchainvm/enginestate"
	"github.com/luxfi/rpcchainvm/ghttp"
	"github.com/luxfi/rpcchainvm/grpcutils"
	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/messenger"
	"github.com/luxfi/rpcchainvm/notifier"
	"github.com/luxfi/rpcchainvm/rpcdb"
	"github.com/luxfi/rpcchainvm/rpcerrors"
	"github.com/luxfi/rpcchainvm/vmcontext"
	"github.com/luxfi/rpcchainvm/vmpb"
)

var _ vmpb.VMServer = (*Server)(nil)

// closer is the subset of io.Closer the dialed client connections and
// the database manager satisfy; kept narrow so Server doesn't import
// grpc just to spell out ClientConn's type here.
type closer interface {
	Close() error
}

// Server is the adapter core. It implements vmpb.VMServer, owning
// exactly one inner block.ChainVM behind a reader/writer lock:
// write-lock for Initialize/SetState/Shutdown/CreateHandlers/
// CreateStaticHandlers/BuildBlock/ParseBlock/BatchedParseBlock,
// read-lock for everything else.
type Server struct {
	vm  block.ChainVM
	log log.Logger

	lock sync.RWMutex

	serverCloser grpcutils.ServerCloser
	conns        []closer
	dbManager    *database.Manager

	stopOnce sync.Once
	stop     chan struct{}
}

// New builds a Server around vm. vm is not touched until Initialize is
// called.
func New(vm block.ChainVM, logger log.Logger) *Server {
	return &Server{
		vm:   vm,
		log:  logger,
		stop: make(chan struct{}),
	}
}

// broadcastShutdown closes the stop channel exactly once, tearing down
// every handler sub-server subscribed to it. Used both by the
// Shutdown RPC and by a fatal notification-pump failure.
func (s *Server) broadcastShutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Initialize brings the inner VM up: dials every client connection the
// chain needs, spawns the notification pump, and hands control to the
// inner VM. Any failure releases the write lock and leaves no client
// connections open.
func (s *Server) Initialize(ctx context.Context, req *vmpb.InitializeRequest) (*vmpb.InitializeResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	subnetID, err := ids.ToID(req.SubnetId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	chainID, err := ids.ToID(req.ChainId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	xChainID, err := ids.ToID(req.XChainId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	avaxAssetID, err := ids.ToID(req.AvaxAssetId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}

	var dialed []closer
	abort := func(err error) (*vmpb.InitializeResponse, error) {
		for _, c := range dialed {
			_ = c.Close()
		}
		return nil, rpcerrors.ToStatus(err)
	}

	versionedDBs := make([]database.VersionedDatabase, len(req.DbServers))
	for i, dbServer := range req.DbServers {
		version, err := database.ParseVersion(dbServer.Version)
		if err != nil {
			return abort(rpcerrors.New(rpcerrors.Invalid, err))
		}
		conn, err := grpcutils.DialContext(ctx, dbServer.ServerAddr)
		if err != nil {
			return abort(rpcerrors.New(rpcerrors.Unavailable, err))
		}
		dialed = append(dialed, conn)
		versionedDBs[i] = database.VersionedDatabase{
			Database: rpcdb.NewClient(rpcdb.NewGRPCClient(conn)),
			Version:  version,
		}
	}

	dbManager, err := database.NewManagerFromDatabases(versionedDBs)
	if err != nil {
		return abort(rpcerrors.New(rpcerrors.Invalid, err))
	}

	conn, err := grpcutils.DialContext(ctx, req.ServerAddr)
	if err != nil {
		return abort(rpcerrors.New(rpcerrors.Unavailable, err))
	}
	dialed = append(dialed, conn)

	msgClient := messenger.NewClient(vmpb.NewMessengerClient(conn))
	appSenderClient := appsender.NewClient(vmpb.NewAppSenderClient(conn))
	keystoreClient := vmpb.NewKeystoreClient(conn)
	sharedMemoryClient := vmpb.NewSharedMemoryClient(conn)
	aliasReaderClient := vmpb.NewAliasReaderClient(conn)
	subnetLookupClient := vmpb.NewSubnetLookupClient(conn)

	chainCtx := &vmcontext.Context{
		NetworkID:    req.NetworkId,
		SubnetID:     subnetID,
		ChainID:      chainID,
		NodeID:       nodeID,
		XChainID:     xChainID,
		AVAXAssetID:  avaxAssetID,
		Log:          s.log,
		Keystore:     keystoreAdapter{keystoreClient},
		SharedMemory: sharedMemoryAdapter{sharedMemoryClient},
		BCLookup:     aliasLookupAdapter{aliasReaderClient},
		SNLookup:     subnetLookupAdapter{subnetLookupClient},
	}

	toEngine := make(chan block.Message, notifier.Capacity)
	pump := notifier.New(toEngine, msgClient, s.log)
	pumpCtx, cancelPump := context.WithCancel(context.Background())
	go func() {
		<-s.stop
		cancelPump()
	}()
	go func() {
		if err := pump.Run(pumpCtx); err != nil {
			s.log.Error("notification pump failed, broadcasting shutdown", log.Err(err))
			s.broadcastShutdown()
		}
	}()

	if err := s.vm.Initialize(
		ctx,
		chainCtx,
		dbManager,
		req.GenesisBytes,
		req.UpgradeBytes,
		req.ConfigBytes,
		toEngine,
		nil, // fxs/subscribers: accepted and threaded through unused, see DESIGN.md
		appSenderClient,
	); err != nil {
		return abort(rpcerrors.New(rpcerrors.Fatal, err))
	}

	s.dbManager = dbManager
	s.conns = dialed

	lastAcceptedID, err := s.vm.LastAccepted(ctx)
	if err != nil {
		return abort(rpcerrors.New(rpcerrors.Fatal, err))
	}
	blk, err := s.vm.GetBlock(ctx, lastAcceptedID)
	if err != nil {
		return abort(rpcerrors.New(rpcerrors.Fatal, err))
	}

	return &vmpb.InitializeResponse{
		LastAcceptedId:       blk.ID().Bytes(),
		LastAcceptedParentId: blk.Parent().Bytes(),
		Status:               uint32(blk.Status()),
		Height:               blk.Height(),
		Bytes:                blk.Bytes(),
		Timestamp:            secondsToTimestamp(blk.Timestamp()),
	}, nil
}

// SetState forwards the host's declared lifecycle phase, write-locked
// since the inner VM may reconfigure internal state on a transition.
func (s *Server) SetState(ctx context.Context, req *vmpb.SetStateRequest) (*vmpb.SetStateResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	state, err := enginestate.FromUint32(req.State)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	if err := s.vm.SetState(ctx, state); err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}

	lastAcceptedID, err := s.vm.LastAccepted(ctx)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	blk, err := s.vm.GetBlock(ctx, lastAcceptedID)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}

	return &vmpb.SetStateResponse{
		LastAcceptedId:       blk.ID().Bytes(),
		LastAcceptedParentId: blk.Parent().Bytes(),
		Status:               uint32(blk.Status()),
		Height:               blk.Height(),
		Bytes:                blk.Bytes(),
		Timestamp:            secondsToTimestamp(blk.Timestamp()),
	}, nil
}

// Shutdown tears down every handler sub-server, closes every dialed
// client connection and the database manager, and releases the inner
// VM's resources. Write-locked: no other RPC may be in flight.
func (s *Server) Shutdown(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.broadcastShutdown()
	s.serverCloser.Stop()

	err := s.vm.Shutdown(ctx)

	for _, c := range s.conns {
		_ = c.Close()
	}
	if s.dbManager != nil {
		_ = s.dbManager.Close()
	}

	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return nil
}

// CreateHandlers mints a fresh HTTP sub-server per chain-specific
// handler the inner VM registers, write-locked since create_handlers
// may populate VM-internal routing state.
func (s *Server) CreateHandlers(ctx context.Context) (*vmpb.CreateHandlersResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.spawnHandlers(ctx, s.vm.CreateHandlers)
}

// CreateStaticHandlers is CreateHandlers for endpoints that do not
// depend on a particular chain instance.
func (s *Server) CreateStaticHandlers(ctx context.Context) (*vmpb.CreateHandlersResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.spawnHandlers(ctx, s.vm.CreateStaticHandlers)
}

func (s *Server) spawnHandlers(ctx context.Context, handlersFn func(context.Context) (map[string]*block.Handler, error)) (*vmpb.CreateHandlersResponse, error) {
	handlers, err := handlersFn(ctx)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}

	resp := &vmpb.CreateHandlersResponse{}
	for prefix, h := range handlers {
		if h == nil || h.Router == nil {
			continue
		}
		addr, err := ghttp.Spawn(h.Router, &s.serverCloser, s.stop, s.log)
		if err != nil {
			return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
		}
		resp.Handlers = append(resp.Handlers, &vmpb.Handler{
			Prefix:      prefix,
			LockOptions: h.LockOptions,
			ServerAddr:  addr,
		})
	}
	return resp, nil
}

// BuildBlock builds a new block atop the current preference,
// write-locked since building may mutate inner-VM caches.
func (s *Server) BuildBlock(ctx context.Context) (*vmpb.BuildBlockResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	blk, err := s.vm.BuildBlock(ctx)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return &vmpb.BuildBlockResponse{
		Id:        blk.ID().Bytes(),
		ParentId:  blk.Parent().Bytes(),
		Bytes:     blk.Bytes(),
		Height:    blk.Height(),
		Timestamp: secondsToTimestamp(blk.Timestamp()),
	}, nil
}

// ParseBlock deserializes bytes into a block, write-locked since the
// inner VM may memoize parsed blocks.
func (s *Server) ParseBlock(ctx context.Context, req *vmpb.ParseBlockRequest) (*vmpb.ParseBlockResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.parseBlockLocked(ctx, req.Bytes)
}

func (s *Server) parseBlockLocked(ctx context.Context, bytes []byte) (*vmpb.ParseBlockResponse, error) {
	blk, err := s.vm.ParseBlock(ctx, bytes)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return &vmpb.ParseBlockResponse{
		Id:        blk.ID().Bytes(),
		ParentId:  blk.Parent().Bytes(),
		Status:    uint32(blk.Status()),
		Height:    blk.Height(),
		Timestamp: secondsToTimestamp(blk.Timestamp()),
	}, nil
}

// BatchedParseBlock parses many blocks in one round-trip: delegated to
// the inner VM directly when it implements block.BatchedChainVM,
// otherwise a generic loop over ParseBlock that aborts on the first
// error.
func (s *Server) BatchedParseBlock(ctx context.Context, req *vmpb.BatchedParseBlockRequest) (*vmpb.BatchedParseBlockResponse, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if batched, ok := s.vm.(block.BatchedChainVM); ok {
		blks, err := batched.BatchedParseBlock(ctx, req.Request)
		if err != nil {
			return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
		}
		resp := &vmpb.BatchedParseBlockResponse{Response: make([]*vmpb.ParseBlockResponse, len(blks))}
		for i, blk := range blks {
			resp.Response[i] = &vmpb.ParseBlockResponse{
				Id:        blk.ID().Bytes(),
				ParentId:  blk.Parent().Bytes(),
				Status:    uint32(blk.Status()),
				Height:    blk.Height(),
				Timestamp: secondsToTimestamp(blk.Timestamp()),
			}
		}
		return resp, nil
	}

	resp := &vmpb.BatchedParseBlockResponse{Response: make([]*vmpb.ParseBlockResponse, 0, len(req.Request))}
	for _, bytes := range req.Request {
		parsed, err := s.parseBlockLocked(ctx, bytes)
		if err != nil {
			return nil, err
		}
		resp.Response = append(resp.Response, parsed)
	}
	return resp, nil
}

// GetBlock retrieves a block by id, read-locked. A lookup failure is
// not a transport error: it is reported in-body via an error code,
// with every other field zeroed. Only a failure the
// error-code table itself doesn't recognize surfaces as a transport
// error.
func (s *Server) GetBlock(ctx context.Context, req *vmpb.GetBlockRequest) (*vmpb.GetBlockResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	id, err := ids.ToID(req.Id)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}

	blk, vmErr := s.vm.GetBlock(ctx, id)
	if vmErr != nil {
		code, err := rpcerrors.ErrorToErrorCode(vmErr)
		if err != nil {
			return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
		}
		return &vmpb.GetBlockResponse{Err: code}, nil
	}

	return &vmpb.GetBlockResponse{
		ParentId:  blk.Parent().Bytes(),
		Bytes:     blk.Bytes(),
		Status:    uint32(blk.Status()),
		Height:    blk.Height(),
		Timestamp: secondsToTimestamp(blk.Timestamp()),
	}, nil
}

// GetAncestors walks parent links from blkId up to the supplied
// bounds, read-locked. Delegated to the inner VM directly when it
// implements block.BatchedChainVM; otherwise a generic walk stopping
// at the first error, a dag root (a block whose parent is itself), or
// whichever bound is hit first.
func (s *Server) GetAncestors(ctx context.Context, req *vmpb.GetAncestorsRequest) (*vmpb.GetAncestorsResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	blkID, err := ids.ToID(req.BlkId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}

	if batched, ok := s.vm.(block.BatchedChainVM); ok {
		blksBytes, err := batched.GetAncestors(
			ctx,
			blkID,
			int(req.MaxBlocksNum),
			int(req.MaxBlocksSize),
			time.Duration(req.MaxBlocksRetrievalTime),
		)
		if err != nil {
			return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
		}
		return &vmpb.GetAncestorsResponse{BlksBytes: blksBytes}, nil
	}

	deadline := time.Now().Add(time.Duration(req.MaxBlocksRetrievalTime))
	var blksBytes [][]byte
	totalSize := 0
	currentID := blkID
	for len(blksBytes) < int(req.MaxBlocksNum) && time.Now().Before(deadline) {
		blk, err := s.vm.GetBlock(ctx, currentID)
		if err != nil {
			break
		}
		bytes := blk.Bytes()
		if totalSize+len(bytes) > int(req.MaxBlocksSize) && len(blksBytes) > 0 {
			break
		}
		blksBytes = append(blksBytes, bytes)
		totalSize += len(bytes)

		parentID := blk.Parent()
		if parentID == currentID {
			break // dag root: a block that is its own parent
		}
		currentID = parentID
	}
	return &vmpb.GetAncestorsResponse{BlksBytes: blksBytes}, nil
}

// SetPreference tells the inner VM which processing block the host's
// consensus engine currently prefers, read-locked.
func (s *Server) SetPreference(ctx context.Context, req *vmpb.SetPreferenceRequest) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	id, err := ids.ToID(req.Id)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	if err := s.vm.SetPreference(ctx, id); err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return nil
}

// BlockVerify re-parses a block from its bytes and runs the inner
// VM's validity checks, read-locked.
func (s *Server) BlockVerify(ctx context.Context, req *vmpb.BlockVerifyRequest) (*vmpb.BlockVerifyResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	blk, err := s.vm.ParseBlock(ctx, req.Bytes)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	if err := blk.Verify(ctx); err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return &vmpb.BlockVerifyResponse{Timestamp: secondsToTimestamp(blk.Timestamp())}, nil
}

// BlockAccept fetches a block by id and accepts it, read-locked: the
// inner VM is responsible for its own fine-grained locking of
// block-level state.
func (s *Server) BlockAccept(ctx context.Context, req *vmpb.BlockAcceptRequest) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.decideLocked(ctx, req.Id, (block.Block).Accept)
}

// BlockReject is BlockAccept's mirror.
func (s *Server) BlockReject(ctx context.Context, req *vmpb.BlockRejectRequest) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.decideLocked(ctx, req.Id, (block.Block).Reject)
}

func (s *Server) decideLocked(ctx context.Context, rawID []byte, decide func(block.Block, context.Context) error) error {
	id, err := ids.ToID(rawID)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	blk, err := s.vm.GetBlock(ctx, id)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	if err := decide(blk, ctx); err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return nil
}

// Health forwards the inner VM's health payload, read-locked. Only a
// string payload is carried; any other payload type is reported as
// an empty Details string.
func (s *Server) Health(ctx context.Context) (*vmpb.HealthResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	details, err := s.vm.HealthCheck(ctx)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	text, _ := details.(string)
	return &vmpb.HealthResponse{Details: text}, nil
}

// Version forwards the inner VM's free-form version string,
// read-locked.
func (s *Server) Version(ctx context.Context) (*vmpb.VersionResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, err := s.vm.Version(ctx)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}
	return &vmpb.VersionResponse{Version: v}, nil
}

// Connected, Disconnected, and the AppRequest family are read-locked
// peer/app event RPCs: none of them mutate VM-wide state, only
// per-peer bookkeeping the inner VM owns.
func (s *Server) Connected(ctx context.Context, req *vmpb.ConnectedRequest) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	return rpcerrors.ToStatus(wrapFatal(s.vm.Connected(ctx, nodeID, req.Version)))
}

func (s *Server) Disconnected(ctx context.Context, req *vmpb.DisconnectedRequest) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	return rpcerrors.ToStatus(wrapFatal(s.vm.Disconnected(ctx, nodeID)))
}

func (s *Server) AppRequest(ctx context.Context, req *vmpb.AppRequestMsg) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	deadline := timestampToTime(req.Deadline)
	return rpcerrors.ToStatus(wrapFatal(s.vm.AppRequest(ctx, nodeID, req.RequestId, deadline, req.Request)))
}

func (s *Server) AppRequestFailed(ctx context.Context, req *vmpb.AppRequestFailedMsg) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	return rpcerrors.ToStatus(wrapFatal(s.vm.AppRequestFailed(ctx, nodeID, req.RequestId)))
}

func (s *Server) AppResponse(ctx context.Context, req *vmpb.AppResponseMsg) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	return rpcerrors.ToStatus(wrapFatal(s.vm.AppResponse(ctx, nodeID, req.RequestId, req.Response)))
}

func (s *Server) AppGossip(ctx context.Context, req *vmpb.AppGossipMsg) error {
	s.lock.RLock()
	defer s.lock.RUnlock()

	nodeID, err := ids.ToNodeID(req.NodeId)
	if err != nil {
		return rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	return rpcerrors.ToStatus(wrapFatal(s.vm.AppGossip(ctx, nodeID, req.Msg)))
}

// validatorFetcher names the capability FetchValidators probes for,
// matching block.ValidatorFetcherVM without importing it under that
// name everywhere the probe is spelled out.
type validatorFetcher interface {
	GetValidators(ctx context.Context, blkID ids.Id) (map[ids.NodeId]uint64, error)
}

// FetchValidators reports the validator set active as of a block, an
// optional inner-VM capability probed the same way as the state-sync
// and height-indexing surfaces.
func (s *Server) FetchValidators(ctx context.Context, req *vmpb.FetchValidatorsRequest) (*vmpb.FetchValidatorsResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	fetcher, ok := s.vm.(validatorFetcher)
	if !ok {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Unimplemented, errUnimplementedValidators))
	}
	blkID, err := ids.ToID(req.BlkId)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Invalid, err))
	}
	validators, err := fetcher.GetValidators(ctx, blkID)
	if err != nil {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
	}

	resp := &vmpb.FetchValidatorsResponse{
		ValidatorIds: make([][]byte, 0, len(validators)),
		Weights:      make([]uint64, 0, len(validators)),
	}
	for nodeID, weight := range validators {
		resp.ValidatorIds = append(resp.ValidatorIds, nodeID.Bytes())
		resp.Weights = append(resp.Weights, weight)
	}
	return resp, nil
}

// VerifyHeightIndex reports whether the inner VM's height index is
// usable, an optional capability probed the same way FetchValidators
// is.
func (s *Server) VerifyHeightIndex(ctx context.Context) (*vmpb.VerifyHeightIndexResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	indexed, ok := s.vm.(block.HeightIndexedChainVM)
	if !ok {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Unimplemented, errUnimplementedHeightIndex))
	}
	if err := indexed.VerifyHeightIndex(ctx); err != nil {
		code, err := rpcerrors.ErrorToErrorCode(err)
		if err != nil {
			return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
		}
		return &vmpb.VerifyHeightIndexResponse{Err: code}, nil
	}
	return &vmpb.VerifyHeightIndexResponse{}, nil
}

// GetBlockIDAtHeight resolves an accepted block id by height, the
// height-indexing optional capability's second method.
func (s *Server) GetBlockIDAtHeight(ctx context.Context, req *vmpb.GetBlockIDAtHeightRequest) (*vmpb.GetBlockIDAtHeightResponse, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	indexed, ok := s.vm.(block.HeightIndexedChainVM)
	if !ok {
		return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Unimplemented, errUnimplementedHeightIndex))
	}
	id, vmErr := indexed.GetBlockIDAtHeight(ctx, req.Height)
	if vmErr != nil {
		code, err := rpcerrors.ErrorToErrorCode(vmErr)
		if err != nil {
			return nil, rpcerrors.ToStatus(rpcerrors.New(rpcerrors.Fatal, err))
		}
		return &vmpb.GetBlockIDAtHeightResponse{Err: code}, nil
	}
	return &vmpb.GetBlockIDAtHeightResponse{BlkId: id.Bytes()}, nil
}

func wrapFatal(err error) error {
	if err == nil {
		return nil
	}
	return rpcerrors.New(rpcerrors.Fatal, err)
}

func secondsToTimestamp(seconds uint64) *timestamppb.Timestamp {
	return timestamppb.New(time.Unix(int64(seconds), 0))
}

func timestampToTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}

var (
	errUnimplementedValidators  = errUnimplemented("inner VM does not implement validator fetching")
	errUnimplementedHeightIndex = errUnimplemented("inner VM does not implement height indexing")
)

type errUnimplemented string

func (e errUnimplemented) Error() string { return string(e) }
