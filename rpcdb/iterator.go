// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcdb

import "context"

// iterator is a cursor into a server-side iterator the host keeps
// alive by id between Next calls, released explicitly rather than
// left for the host to garbage-collect.
type iterator struct {
	client DatabaseClient
	id     uint64
	key    []byte
	value  []byte
	err    error
	done   bool
}

func (it *iterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}
	resp, err := it.client.IteratorNext(context.Background(), &IteratorNextRequest{Id: it.id})
	if err != nil {
		it.err = err
		return false
	}
	if !resp.Ok {
		it.done = true
		return false
	}
	it.key, it.value = resp.Key, resp.Value
	return true
}

func (it *iterator) Error() error {
	if it.err != nil {
		return it.err
	}
	if it.done {
		return it.client.IteratorError(context.Background(), &IteratorErrorRequest{Id: it.id})
	}
	return nil
}

func (it *iterator) Key() []byte   { return it.key }
func (it *iterator) Value() []byte { return it.value }

func (it *iterator) Release() {
	_ = it.client.IteratorRelease(context.Background(), &IteratorReleaseRequest{Id: it.id})
}
