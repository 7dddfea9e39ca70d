// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nullvm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/log"
	"github.com/luxfi/rpcchainvm/choices"
	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmcontext"
)

// fixedDanglingParent returns a parent id that is never stored in any
// VM's block map, so Verify against it must fail.
func fixedDanglingParent() ids.Id {
	var id ids.Id
	for i := range id {
		id[i] = 0xff
	}
	return id
}

func newInitializedVM(t *testing.T) *VM {
	t.Helper()
	vm := New()
	chainCtx := &vmcontext.Context{Log: log.NewNoOpLogger()}
	require.NoError(t, vm.Initialize(
		context.Background(),
		chainCtx,
		nil,
		[]byte("genesis"),
		nil,
		nil,
		nil,
		nil,
		nil,
	))
	return vm
}

func TestInitializeAcceptsGenesis(t *testing.T) {
	require := require.New(t)

	vm := newInitializedVM(t)
	last, err := vm.LastAccepted(context.Background())
	require.NoError(err)

	blk, err := vm.GetBlock(context.Background(), last)
	require.NoError(err)
	require.Equal(choices.Accepted, blk.Status())
	require.Equal(blk.ID(), blk.Parent()) // genesis is its own parent
}

func TestBuildBlockExtendsPreference(t *testing.T) {
	require := require.New(t)

	vm := newInitializedVM(t)
	genesisID, err := vm.LastAccepted(context.Background())
	require.NoError(err)

	blk, err := vm.BuildBlock(context.Background())
	require.NoError(err)
	require.Equal(genesisID, blk.Parent())
	require.Equal(uint64(1), blk.Height())
	require.Equal(choices.Processing, blk.Status())

	require.NoError(vm.SetPreference(context.Background(), blk.ID()))
	require.NoError(blk.Verify(context.Background()))
}

func TestParseBlockReturnsResidentBlock(t *testing.T) {
	require := require.New(t)

	vm := newInitializedVM(t)
	built, err := vm.BuildBlock(context.Background())
	require.NoError(err)

	require.NoError(built.Accept(context.Background()))

	parsed, err := vm.ParseBlock(context.Background(), built.Bytes())
	require.NoError(err)
	require.Equal(built.ID(), parsed.ID())
	require.Equal(choices.Accepted, parsed.Status())
}

func TestVerifyUnknownParentFails(t *testing.T) {
	require := require.New(t)

	vm := newInitializedVM(t)
	bogus := encodeBlock(fixedDanglingParent(), 99, 0, []byte("x"))
	blk, err := vm.ParseBlock(context.Background(), bogus)
	require.NoError(err)
	require.Error(blk.Verify(context.Background()))
}

func TestAcceptAlreadyDecidedBlockFails(t *testing.T) {
	require := require.New(t)

	vm := newInitializedVM(t)
	blk, err := vm.BuildBlock(context.Background())
	require.NoError(err)

	require.NoError(blk.Accept(context.Background()))
	require.ErrorIs(blk.Accept(context.Background()), choices.ErrDecided)
}

func TestVersionServiceRoundTrip(t *testing.T) {
	require := require.New(t)

	vm := newInitializedVM(t)
	svc := &versionService{vm: vm}
	var reply VersionReply
	require.NoError(svc.Version(nil, &VersionArgs{}, &reply))
	require.Equal("nullvm/0.1.0", reply.Version)
}
