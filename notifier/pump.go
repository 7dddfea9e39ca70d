// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package notifier implements the engine-notification pump: the
// single consumer that drains the bounded channel the inner VM uses
// to push messages, forwarding each one to the host messenger in
// order.
package notifier

import (
	"context"

	"github.com/luxfi/log"

	"github.com/luxfi/rpcchainvm/block"
	"github.com/luxfi/rpcchainvm/messenger"
)

// Capacity is the bounded channel size the adapter creates on
// initialize. Chosen to let the inner VM emit a burst of notifications
// without blocking on the host's gRPC round-trip, while still applying
// backpressure if the host falls far behind.
const Capacity = 100

// Pump is the dedicated consumer of one inner-VM's notification
// channel. It must not outlive the adapter that created it: adapter
// shutdown cancels the context Run is given.
type Pump struct {
	messages <-chan block.Message
	notify   messenger.Notifier
	log      log.Logger
}

// New builds a Pump reading from messages and forwarding to notify.
func New(messages <-chan block.Message, notify messenger.Notifier, logger log.Logger) *Pump {
	return &Pump{messages: messages, notify: notify, log: logger}
}

// Run drains messages one at a time, in FIFO order, until the channel
// closes or ctx is cancelled (the adapter is shutting down -- neither
// is an error) or a Notify call fails (fatal -- the caller must broadcast
// shutdown; the pump never retries a failed notification, since the
// host guarantees at-most-one delivery per message).
func (p *Pump) Run(ctx context.Context) error {
	for {
		select {
		case msg, ok := <-p.messages:
			if !ok {
				return nil
			}
			if err := p.notify.Notify(ctx, msg.Type); err != nil {
				p.log.Error("notification pump: host messenger rejected message", log.Uint32("type", msg.Type), log.Err(err))
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
