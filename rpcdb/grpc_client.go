// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcdb

import (
	"context"

	"google.golang.org/grpc"
)

// grpcClient is the over-the-wire DatabaseClient: every method is one
// Invoke call against the dialed connection.
type grpcClient struct {
	cc grpc.ClientConnInterface
}

// NewGRPCClient wraps a dialed connection to one of the host's
// versioned database servers.
func NewGRPCClient(cc grpc.ClientConnInterface) DatabaseClient {
	return &grpcClient{cc: cc}
}

func (c *grpcClient) Has(ctx context.Context, req *HasRequest) (*HasResponse, error) {
	resp := new(HasResponse)
	if err := c.cc.Invoke(ctx, "/rpcdb.Database/Has", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *grpcClient) Get(ctx context.Context, req *GetRequest) (*GetResponse, error) {
	resp := new(GetResponse)
	if err := c.cc.Invoke(ctx, "/rpcdb.Database/Get", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *grpcClient) Put(ctx context.Context, req *PutRequest) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/Put", req, &struct{}{})
}

func (c *grpcClient) Delete(ctx context.Context, req *DeleteRequest) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/Delete", req, &struct{}{})
}

func (c *grpcClient) WriteBatch(ctx context.Context, req *WriteBatchRequest) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/WriteBatch", req, &struct{}{})
}

func (c *grpcClient) Compact(ctx context.Context, req *CompactRequest) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/Compact", req, &struct{}{})
}

func (c *grpcClient) Close(ctx context.Context) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/Close", &struct{}{}, &struct{}{})
}

func (c *grpcClient) HealthCheck(ctx context.Context) (interface{}, error) {
	resp := new(struct{ Details string })
	if err := c.cc.Invoke(ctx, "/rpcdb.Database/HealthCheck", &struct{}{}, resp); err != nil {
		return nil, err
	}
	return resp.Details, nil
}

func (c *grpcClient) IteratorStart(ctx context.Context, req *IteratorStartRequest) (*IteratorStartResponse, error) {
	resp := new(IteratorStartResponse)
	if err := c.cc.Invoke(ctx, "/rpcdb.Database/IteratorStart", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *grpcClient) IteratorNext(ctx context.Context, req *IteratorNextRequest) (*IteratorNextResponse, error) {
	resp := new(IteratorNextResponse)
	if err := c.cc.Invoke(ctx, "/rpcdb.Database/IteratorNext", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *grpcClient) IteratorError(ctx context.Context, req *IteratorErrorRequest) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/IteratorError", req, &struct{}{})
}

func (c *grpcClient) IteratorRelease(ctx context.Context, req *IteratorReleaseRequest) error {
	return c.cc.Invoke(ctx, "/rpcdb.Database/IteratorRelease", req, &struct{}{})
}
