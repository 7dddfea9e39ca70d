// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package appsender adapts the host's app-sender RPC service into the
// block.AppSender capability the inner VM calls to push outbound peer
// messages.
package appsender

import (
	"context"

	"github.com/luxfi/rpcchainvm/ids"
	"github.com/luxfi/rpcchainvm/vmpb"
)

// Client is a thin request-reply client: every call is a single RPC
// to the host, no local state.
type Client struct {
	client vmpb.AppSenderClient
}

// NewClient wraps a dialed app-sender service connection.
func NewClient(client vmpb.AppSenderClient) *Client {
	return &Client{client: client}
}

func (c *Client) SendAppRequest(ctx context.Context, nodeID ids.NodeId, requestID uint32, request []byte) error {
	return c.client.SendAppRequest(ctx, &vmpb.SendAppRequestMsg{
		NodeIds:   [][]byte{nodeID.Bytes()},
		RequestId: requestID,
		Request:   request,
	})
}

func (c *Client) SendAppResponse(ctx context.Context, nodeID ids.NodeId, requestID uint32, response []byte) error {
	return c.client.SendAppResponse(ctx, &vmpb.SendAppResponseMsg{
		NodeId:    nodeID.Bytes(),
		RequestId: requestID,
		Response:  response,
	})
}

func (c *Client) SendAppGossip(ctx context.Context, msg []byte) error {
	return c.client.SendAppGossip(ctx, &vmpb.SendAppGossipMsg{Msg: msg})
}
