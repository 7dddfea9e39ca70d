// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package messenger adapts the host's messenger RPC service into the
// single Notify call the notification pump uses to forward inner-VM
// messages.
package messenger

import (
	"context"

	"github.com/luxfi/rpcchainvm/vmpb"
)

// Notifier is the capability the notification pump depends on.
type Notifier interface {
	Notify(ctx context.Context, code uint32) error
}

// Client is a thin request-reply client to the host's messenger
// service.
type Client struct {
	client vmpb.MessengerClient
}

// NewClient wraps a dialed messenger service connection.
func NewClient(client vmpb.MessengerClient) *Client {
	return &Client{client: client}
}

// Notify forwards a single message code to the host. It is never
// retried: the pump treats a failed notify as fatal rather than
// something to resend, since a duplicate delivery would violate the
// host's at-most-once invariant.
func (c *Client) Notify(ctx context.Context, code uint32) error {
	return c.client.Notify(ctx, &vmpb.NotifyRequest{Message: code})
}
