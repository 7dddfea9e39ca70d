// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcdb

import (
	"context"

	luxdb "github.com/luxfi/database"
)

// Client adapts one dialed database service connection into a
// luxdb.Database, the shape database.Manager and the inner VM expect.
// Every method is a single round-trip; there is no local cache.
type Client struct {
	client DatabaseClient
}

// NewClient wraps a dialed database service connection.
func NewClient(client DatabaseClient) *Client {
	return &Client{client: client}
}

func (c *Client) Has(key []byte) (bool, error) {
	resp, err := c.client.Has(context.Background(), &HasRequest{Key: key})
	if err != nil {
		return false, err
	}
	return resp.Has, nil
}

func (c *Client) Get(key []byte) ([]byte, error) {
	resp, err := c.client.Get(context.Background(), &GetRequest{Key: key})
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

func (c *Client) Put(key, value []byte) error {
	return c.client.Put(context.Background(), &PutRequest{Key: key, Value: value})
}

func (c *Client) Delete(key []byte) error {
	return c.client.Delete(context.Background(), &DeleteRequest{Key: key})
}

func (c *Client) Compact(start, limit []byte) error {
	return c.client.Compact(context.Background(), &CompactRequest{Start: start, Limit: limit})
}

func (c *Client) Close() error {
	return c.client.Close(context.Background())
}

func (c *Client) HealthCheck(ctx context.Context) (interface{}, error) {
	return c.client.HealthCheck(ctx)
}

func (c *Client) NewBatch() luxdb.Batch {
	return &batch{client: c.client}
}

func (c *Client) NewIterator() luxdb.Iterator {
	return c.newIterator(nil, nil)
}

func (c *Client) NewIteratorWithStart(start []byte) luxdb.Iterator {
	return c.newIterator(start, nil)
}

func (c *Client) NewIteratorWithPrefix(prefix []byte) luxdb.Iterator {
	return c.newIterator(nil, prefix)
}

func (c *Client) NewIteratorWithStartAndPrefix(start, prefix []byte) luxdb.Iterator {
	return c.newIterator(start, prefix)
}

func (c *Client) newIterator(start, prefix []byte) luxdb.Iterator {
	resp, err := c.client.IteratorStart(context.Background(), &IteratorStartRequest{Start: start, Prefix: prefix})
	if err != nil {
		return &iterator{client: c.client, err: err}
	}
	return &iterator{client: c.client, id: resp.Id}
}
