// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vmcontext defines the per-chain identity and host-service
// client bundle handed to the inner VM on initialize.
package vmcontext

import (
	"github.com/luxfi/log"

	"github.com/luxfi/rpcchainvm/ids"
)

// Keystore is a thin client to the host's keystore service.
type Keystore interface {
	GetDatabase(username, password string) (interface{}, error)
}

// SharedMemory is a thin client to the host's cross-chain atomic-memory
// service.
type SharedMemory interface {
	Get(peerChainID ids.Id, keys [][]byte) ([][]byte, error)
}

// AliasLookup is a thin client to the host's blockchain-alias service.
type AliasLookup interface {
	Lookup(alias string) (ids.Id, error)
	PrimaryAlias(id ids.Id) (string, error)
}

// SubnetLookup is a thin client to the host's subnet-membership
// service.
type SubnetLookup interface {
	SubnetID(chainID ids.Id) (ids.Id, error)
}

// Context is the per-chain identity and auxiliary-service bundle the
// adapter builds during initialize and hands to the inner VM. Every
// client field is owned by the Context and is dropped (its connection
// closed) along with it on adapter shutdown or initialize failure.
type Context struct {
	NetworkID uint32
	SubnetID  ids.Id
	ChainID   ids.Id
	NodeID    ids.NodeId

	XChainID    ids.Id
	AVAXAssetID ids.Id

	Log log.Logger

	Keystore     Keystore
	SharedMemory SharedMemory
	BCLookup     AliasLookup
	SNLookup     SubnetLookup
}
