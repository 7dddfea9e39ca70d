// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcdb

import (
	"context"

	luxdb "github.com/luxfi/database"
)

// batch buffers writes locally and flushes them as a single
// WriteBatch RPC, mirroring the point of a batch: one round-trip for
// many mutations instead of one per mutation.
type batch struct {
	client DatabaseClient
	puts   []*PutRequest
	dels   []*DeleteRequest
	size   int
}

func (b *batch) Put(key, value []byte) error {
	b.puts = append(b.puts, &PutRequest{Key: key, Value: value})
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.dels = append(b.dels, &DeleteRequest{Key: key})
	b.size += len(key)
	return nil
}

func (b *batch) ValueSize() int {
	return b.size
}

func (b *batch) Write() error {
	return b.client.WriteBatch(context.Background(), &WriteBatchRequest{Puts: b.puts, Deletes: b.dels})
}

func (b *batch) Reset() {
	b.puts = nil
	b.dels = nil
	b.size = 0
}

func (b *batch) Replay(w luxdb.KeyValueWriterDeleter) error {
	for _, p := range b.puts {
		if err := w.Put(p.Key, p.Value); err != nil {
			return err
		}
	}
	for _, d := range b.dels {
		if err := w.Delete(d.Key); err != nil {
			return err
		}
	}
	return nil
}

func (b *batch) Inner() luxdb.Batch {
	return b
}
