// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcchainvm

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/luxfi/log"
	"github.com/luxfi/rpcchainvm/block"
	"github.com/luxfi/rpcchainvm/choices"
	"github.com/luxfi/rpcchainvm/enginestate"
	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmpb"
)

func newTestRequest() *vmpb.InitializeRequest {
	return &vmpb.InitializeRequest{
		NetworkId:    5,
		SubnetId:     fixedID(1).Bytes(),
		ChainId:      fixedID(2).Bytes(),
		NodeId:       fixedNodeID(3).Bytes(),
		XChainId:     fixedID(4).Bytes(),
		AvaxAssetId:  fixedID(5).Bytes(),
		GenesisBytes: []byte("genesis"),
		DbServers: []*vmpb.DbServer{
			{ServerAddr: "127.0.0.1:0", Version: "v1.4.0"},
		},
		ServerAddr: "127.0.0.1:0",
	}
}

// TestInitializeHappyPath checks that a well-formed initialize request
// brings up the inner VM and returns its last-accepted block.
func TestInitializeHappyPath(t *testing.T) {
	require := require.New(t)

	lastAccepted := fixedID(9)
	blk := &testBlock{
		id:        lastAccepted,
		parent:    fixedID(8),
		bytes:     []byte("blk"),
		height:    3,
		timestamp: 100,
		status:    choices.Accepted,
	}

	vm := &testVM{
		LastAcceptedF: func(context.Context) (ids.Id, error) { return lastAccepted, nil },
		GetBlockF: func(_ context.Context, id ids.Id) (block.Block, error) {
			require.Equal(lastAccepted, id)
			return blk, nil
		},
	}
	s := New(vm, log.NewNoOpLogger())

	resp, err := s.Initialize(context.Background(), newTestRequest())
	require.NoError(err)
	require.Equal(lastAccepted.Bytes(), resp.LastAcceptedId)
	require.Equal(blk.Parent().Bytes(), resp.LastAcceptedParentId)
	require.Equal(blk.Bytes(), resp.Bytes)
	require.Equal(blk.Height(), resp.Height)
}

// TestInitializeBadDBVersion is Scenario 2: a malformed version string
// on one of the db_servers entries fails initialize before the inner
// VM is ever touched.
func TestInitializeBadDBVersion(t *testing.T) {
	require := require.New(t)

	touched := false
	vm := &testVM{
		InitializeF: func(context.Context, block.DatabaseManager, []byte, []byte, []byte, chan<- block.Message, block.AppSender) error {
			touched = true
			return nil
		},
	}
	s := New(vm, log.NewNoOpLogger())

	req := newTestRequest()
	req.DbServers = []*vmpb.DbServer{{ServerAddr: "127.0.0.1:0", Version: "not-a-version"}}

	_, err := s.Initialize(context.Background(), req)
	require.Error(err)
	require.False(touched)
}

// TestGetBlockNotFound checks that get_block never surfaces a
// transport error for an unknown block; it reports the in-body error
// code with every other field zeroed.
func TestGetBlockNotFound(t *testing.T) {
	require := require.New(t)

	vm := &testVM{
		GetBlockF: func(context.Context, ids.Id) (block.Block, error) {
			return nil, errors.New("not found")
		},
	}
	s := New(vm, log.NewNoOpLogger())

	resp, err := s.GetBlock(context.Background(), &vmpb.GetBlockRequest{Id: fixedID(7).Bytes()})
	require.NoError(err)
	require.NotZero(resp.Err)
	require.Nil(resp.Bytes)
	require.Zero(resp.Height)
}

// TestGetBlockUnrecognizedErrorIsTransportFailure covers the one case
// get_block still surfaces a transport error for: an error that
// doesn't map to a known in-body code.
func TestGetBlockUnrecognizedErrorIsTransportFailure(t *testing.T) {
	require := require.New(t)

	vm := &testVM{
		GetBlockF: func(context.Context, ids.Id) (block.Block, error) {
			return nil, errors.New("disk on fire")
		},
	}
	s := New(vm, log.NewNoOpLogger())

	_, err := s.GetBlock(context.Background(), &vmpb.GetBlockRequest{Id: fixedID(7).Bytes()})
	require.Error(err)
}

// TestSetStateOutOfRange is Scenario 4: an engine-state code the
// adapter doesn't recognize is rejected before it ever reaches the
// inner VM.
func TestSetStateOutOfRange(t *testing.T) {
	require := require.New(t)

	touched := false
	vm := &testVM{
		SetStateF: func(context.Context, enginestate.State) error {
			touched = true
			return nil
		},
	}
	s := New(vm, log.NewNoOpLogger())

	_, err := s.SetState(context.Background(), &vmpb.SetStateRequest{State: 99})
	require.Error(err)
	require.False(touched)
}

// TestSetStateValid exercises the in-range counterpart: a known state
// code is forwarded and the resulting last-accepted block is reported.
func TestSetStateValid(t *testing.T) {
	require := require.New(t)

	lastAccepted := fixedID(6)
	blk := &testBlock{id: lastAccepted, parent: fixedID(5), bytes: []byte("b"), height: 1, status: choices.Accepted}
	var seen enginestate.State
	vm := &testVM{
		SetStateF:     func(_ context.Context, s enginestate.State) error { seen = s; return nil },
		LastAcceptedF: func(context.Context) (ids.Id, error) { return lastAccepted, nil },
		GetBlockF:     func(context.Context, ids.Id) (block.Block, error) { return blk, nil },
	}
	s := New(vm, log.NewNoOpLogger())

	resp, err := s.SetState(context.Background(), &vmpb.SetStateRequest{State: uint32(enginestate.Bootstrapping)})
	require.NoError(err)
	require.Equal(enginestate.Bootstrapping, seen)
	require.Equal(lastAccepted.Bytes(), resp.LastAcceptedId)
}

// TestCreateHandlersSkipsNilRouter is Scenario 6: a handler with a nil
// Router is silently dropped rather than spawned or erroring.
func TestCreateHandlersSkipsNilRouter(t *testing.T) {
	require := require.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	vm := &testVM{
		CreateHandlersF: func(context.Context) (map[string]*block.Handler, error) {
			return map[string]*block.Handler{
				"/unused": {Router: nil},
				"/live":   {Router: mux, LockOptions: 1},
			}, nil
		},
	}
	s := New(vm, log.NewNoOpLogger())
	defer s.serverCloser.Stop()

	resp, err := s.CreateHandlers(context.Background())
	require.NoError(err)
	require.Len(resp.Handlers, 1)
	require.Equal("/live", resp.Handlers[0].Prefix)
	require.NotEmpty(resp.Handlers[0].ServerAddr)
}

// TestBlockAcceptRejectUseDecideLocked exercises both BlockAccept and
// BlockReject, confirming each drives the right terminal status
// through the shared decideLocked method-expression dispatch.
func TestBlockAcceptRejectUseDecideLocked(t *testing.T) {
	require := require.New(t)

	acceptBlk := &testBlock{id: fixedID(1), status: choices.Processing}
	rejectBlk := &testBlock{id: fixedID(2), status: choices.Processing}

	vm := &testVM{
		GetBlockF: func(_ context.Context, id ids.Id) (block.Block, error) {
			switch id {
			case acceptBlk.id:
				return acceptBlk, nil
			case rejectBlk.id:
				return rejectBlk, nil
			default:
				return nil, errors.New("not found")
			}
		},
	}
	s := New(vm, log.NewNoOpLogger())

	require.NoError(s.BlockAccept(context.Background(), &vmpb.BlockAcceptRequest{Id: acceptBlk.id.Bytes()}))
	require.Equal(choices.Accepted, acceptBlk.Status())

	require.NoError(s.BlockReject(context.Background(), &vmpb.BlockRejectRequest{Id: rejectBlk.id.Bytes()}))
	require.Equal(choices.Rejected, rejectBlk.Status())
}

// TestGetAncestorsGenericFallback exercises the parent-walk fallback
// used when the inner VM does not implement block.BatchedChainVM:
// walking stops at the block-count bound and at a self-parenting dag
// root.
func TestGetAncestorsGenericFallback(t *testing.T) {
	require := require.New(t)

	root := &testBlock{id: fixedID(0), bytes: []byte("r")}
	root.parent = root.id // dag root: its own parent
	mid := &testBlock{id: fixedID(1), parent: root.id, bytes: []byte("m")}
	tip := &testBlock{id: fixedID(2), parent: mid.id, bytes: []byte("t")}

	byID := map[ids.Id]*testBlock{root.id: root, mid.id: mid, tip.id: tip}
	vm := &testVM{
		GetBlockF: func(_ context.Context, id ids.Id) (block.Block, error) {
			b, ok := byID[id]
			if !ok {
				return nil, errors.New("not found")
			}
			return b, nil
		},
	}
	s := New(vm, log.NewNoOpLogger())

	resp, err := s.GetAncestors(context.Background(), &vmpb.GetAncestorsRequest{
		BlkId:                  tip.id.Bytes(),
		MaxBlocksNum:           10,
		MaxBlocksSize:          1 << 20,
		MaxBlocksRetrievalTime: int64(time.Second),
	})
	require.NoError(err)
	require.Equal([][]byte{tip.Bytes(), mid.Bytes(), root.Bytes()}, resp.BlksBytes)
}

// TestBatchedParseBlockGenericFallback exercises the per-block loop
// fallback used when the inner VM does not implement
// block.BatchedChainVM.
func TestBatchedParseBlockGenericFallback(t *testing.T) {
	require := require.New(t)

	calls := 0
	vm := &testVM{
		ParseBlockF: func(_ context.Context, bytes []byte) (block.Block, error) {
			calls++
			return &testBlock{id: fixedID(bytes[0]), bytes: bytes}, nil
		},
	}
	s := New(vm, log.NewNoOpLogger())

	resp, err := s.BatchedParseBlock(context.Background(), &vmpb.BatchedParseBlockRequest{
		Request: [][]byte{{1}, {2}, {3}},
	})
	require.NoError(err)
	require.Equal(3, calls)
	require.Len(resp.Response, 3)
}

// TestReadLockedCallsRunConcurrently checks that read-locked RPCs do
// not serialize against one another. Two
// BlockVerify calls block on a shared gate and only proceed once both
// have entered it, which would deadlock if the read lock excluded
// concurrent readers.
func TestReadLockedCallsRunConcurrently(t *testing.T) {
	require := require.New(t)

	var wg sync.WaitGroup
	wg.Add(2)
	vm := &testVM{
		ParseBlockF: func(context.Context, []byte) (block.Block, error) {
			wg.Done()
			wg.Wait() // only returns once both callers have arrived
			return &testBlock{id: fixedID(1)}, nil
		},
	}
	s := New(vm, log.NewNoOpLogger())

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := s.BlockVerify(context.Background(), &vmpb.BlockVerifyRequest{Bytes: []byte("x")})
			done <- err
		}()
	}

	timeout := time.After(5 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			require.NoError(err)
		case <-timeout:
			t.Fatal("concurrent read-locked calls deadlocked")
		}
	}
}

// TestFetchValidatorsUnimplementedByDefault confirms the
// optional-capability probe falls back to Unimplemented when the
// inner VM doesn't satisfy validatorFetcher.
func TestFetchValidatorsUnimplementedByDefault(t *testing.T) {
	require := require.New(t)

	s := New(&testVM{}, log.NewNoOpLogger())
	_, err := s.FetchValidators(context.Background(), &vmpb.FetchValidatorsRequest{BlkId: fixedID(1).Bytes()})
	require.Error(err)
	require.Equal(codes.Unimplemented, status.Code(err))
}

// TestVerifyHeightIndexUnimplementedByDefault is the height-index
// surface's analogous default.
func TestVerifyHeightIndexUnimplementedByDefault(t *testing.T) {
	require := require.New(t)

	s := New(&testVM{}, log.NewNoOpLogger())
	_, err := s.VerifyHeightIndex(context.Background())
	require.Error(err)
	require.Equal(codes.Unimplemented, status.Code(err))
}
