// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/rpcchainvm/block"
)

type recordingNotifier struct {
	delivered []uint32
	failAt    uint32
}

func (r *recordingNotifier) Notify(_ context.Context, code uint32) error {
	if r.failAt != 0 && code == r.failAt {
		return errors.New("host rejected notification")
	}
	r.delivered = append(r.delivered, code)
	return nil
}

func TestPumpForwardsInOrder(t *testing.T) {
	require := require.New(t)

	ch := make(chan block.Message, Capacity)
	ch <- block.Message{Type: 1}
	ch <- block.Message{Type: 2}
	ch <- block.Message{Type: 3}
	close(ch)

	rec := &recordingNotifier{}
	p := New(ch, rec, log.NewNoOpLogger())

	err := p.Run(context.Background())
	require.NoError(err)
	require.Equal([]uint32{1, 2, 3}, rec.delivered)
}

func TestPumpStopsOnNotifyFailure(t *testing.T) {
	require := require.New(t)

	ch := make(chan block.Message, Capacity)
	ch <- block.Message{Type: 1}
	ch <- block.Message{Type: 2}
	ch <- block.Message{Type: 3}
	close(ch)

	rec := &recordingNotifier{failAt: 2}
	p := New(ch, rec, log.NewNoOpLogger())

	err := p.Run(context.Background())
	require.Error(err)
	require.Equal([]uint32{1}, rec.delivered)
}

func TestPumpTerminatesOnChannelClose(t *testing.T) {
	require := require.New(t)

	ch := make(chan block.Message)
	close(ch)

	rec := &recordingNotifier{}
	p := New(ch, rec, log.NewNoOpLogger())

	err := p.Run(context.Background())
	require.NoError(err)
	require.Empty(rec.delivered)
}
