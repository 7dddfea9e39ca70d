// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcdb is the plugin-side client for the host's versioned
// database service: the same pattern as vmpb, a hand-shaped Go
// rendering of a wire schema the host, not this repository, fixes.
package rpcdb

import "context"

type HasRequest struct{ Key []byte }
type HasResponse struct{ Has bool }

type GetRequest struct{ Key []byte }
type GetResponse struct{ Value []byte }

type PutRequest struct{ Key, Value []byte }

type DeleteRequest struct{ Key []byte }

type CompactRequest struct{ Start, Limit []byte }

type WriteBatchRequest struct {
	Puts    []*PutRequest
	Deletes []*DeleteRequest
}

type IteratorNextRequest struct{ Id uint64 }
type IteratorNextResponse struct {
	Key   []byte
	Value []byte
	Ok    bool
}
type IteratorStartRequest struct {
	Start  []byte
	Prefix []byte
}
type IteratorStartResponse struct{ Id uint64 }
type IteratorErrorRequest struct{ Id uint64 }
type IteratorReleaseRequest struct{ Id uint64 }

// DatabaseClient is the gRPC-facing capability the host's database
// service exposes, one RPC per Database method this adapter needs.
type DatabaseClient interface {
	Has(ctx context.Context, req *HasRequest) (*HasResponse, error)
	Get(ctx context.Context, req *GetRequest) (*GetResponse, error)
	Put(ctx context.Context, req *PutRequest) error
	Delete(ctx context.Context, req *DeleteRequest) error
	WriteBatch(ctx context.Context, req *WriteBatchRequest) error
	Compact(ctx context.Context, req *CompactRequest) error
	Close(ctx context.Context) error
	HealthCheck(ctx context.Context) (interface{}, error)

	IteratorStart(ctx context.Context, req *IteratorStartRequest) (*IteratorStartResponse, error)
	IteratorNext(ctx context.Context, req *IteratorNextRequest) (*IteratorNextResponse, error)
	IteratorError(ctx context.Context, req *IteratorErrorRequest) error
	IteratorRelease(ctx context.Context, req *IteratorReleaseRequest) error
}
