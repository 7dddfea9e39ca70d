// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcchainvm

import (
	"context"

	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmpb"
)

// keystoreAdapter, sharedMemoryAdapter, aliasLookupAdapter and
// subnetLookupAdapter translate the raw-bytes vmpb clients into the
// ids.Id-typed vmcontext capabilities the inner VM sees, and supply
// the background context these fire-and-forget auxiliary services
// don't carry one through for.
type keystoreAdapter struct {
	client vmpb.KeystoreClient
}

func (k keystoreAdapter) GetDatabase(username, password string) (interface{}, error) {
	return k.client.GetDatabase(context.Background(), username, password)
}

type sharedMemoryAdapter struct {
	client vmpb.SharedMemoryClient
}

func (m sharedMemoryAdapter) Get(peerChainID ids.Id, keys [][]byte) ([][]byte, error) {
	return m.client.Get(context.Background(), peerChainID.Bytes(), keys)
}

type aliasLookupAdapter struct {
	client vmpb.AliasReaderClient
}

func (a aliasLookupAdapter) Lookup(alias string) (ids.Id, error) {
	b, err := a.client.Lookup(context.Background(), alias)
	if err != nil {
		return ids.Empty, err
	}
	return ids.ToID(b)
}

func (a aliasLookupAdapter) PrimaryAlias(id ids.Id) (string, error) {
	return a.client.PrimaryAlias(context.Background(), id.Bytes())
}

type subnetLookupAdapter struct {
	client vmpb.SubnetLookupClient
}

func (n subnetLookupAdapter) SubnetID(chainID ids.Id) (ids.Id, error) {
	b, err := n.client.SubnetID(context.Background(), chainID.Bytes())
	if err != nil {
		return ids.Empty, err
	}
	return ids.ToID(b)
}
