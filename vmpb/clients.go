// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vmpb

import (
	"context"

	"google.golang.org/grpc"
)

// NotifyRequest is the single message the messenger service accepts:
// the inner VM's u32 notification code.
type NotifyRequest struct {
	Message uint32
}

// MessengerClient is the plugin-side stub for the host's messenger
// service: the single RPC the notification pump calls.
type MessengerClient interface {
	Notify(ctx context.Context, in *NotifyRequest, opts ...grpc.CallOption) error
}

type messengerClient struct {
	cc grpc.ClientConnInterface
}

// NewMessengerClient wraps a dialed connection to the host's messenger
// service.
func NewMessengerClient(cc grpc.ClientConnInterface) MessengerClient {
	return &messengerClient{cc: cc}
}

func (c *messengerClient) Notify(ctx context.Context, in *NotifyRequest, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/vmpb.Messenger/Notify", in, &struct{}{}, opts...)
}

// SendAppRequestMsg/SendAppResponseMsg/SendAppGossipMsg are the
// app-sender service's request shapes.
type SendAppRequestMsg struct {
	NodeIds   [][]byte
	RequestId uint32
	Request   []byte
}

type SendAppResponseMsg struct {
	NodeId    []byte
	RequestId uint32
	Response  []byte
}

type SendAppGossipMsg struct {
	NodeIds [][]byte
	Msg     []byte
}

// AppSenderClient is the plugin-side stub for the host's app-sender
// service.
type AppSenderClient interface {
	SendAppRequest(ctx context.Context, in *SendAppRequestMsg, opts ...grpc.CallOption) error
	SendAppResponse(ctx context.Context, in *SendAppResponseMsg, opts ...grpc.CallOption) error
	SendAppGossip(ctx context.Context, in *SendAppGossipMsg, opts ...grpc.CallOption) error
}

type appSenderClient struct {
	cc grpc.ClientConnInterface
}

// NewAppSenderClient wraps a dialed connection to the host's
// app-sender service.
func NewAppSenderClient(cc grpc.ClientConnInterface) AppSenderClient {
	return &appSenderClient{cc: cc}
}

func (c *appSenderClient) SendAppRequest(ctx context.Context, in *SendAppRequestMsg, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/vmpb.AppSender/SendAppRequest", in, &struct{}{}, opts...)
}

func (c *appSenderClient) SendAppResponse(ctx context.Context, in *SendAppResponseMsg, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/vmpb.AppSender/SendAppResponse", in, &struct{}{}, opts...)
}

func (c *appSenderClient) SendAppGossip(ctx context.Context, in *SendAppGossipMsg, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/vmpb.AppSender/SendAppGossip", in, &struct{}{}, opts...)
}

// KeystoreClient, SharedMemoryClient, AliasReaderClient and
// SubnetLookupClient are the remaining host-side auxiliary services
// the Context fans its handles out to. Their request/response shapes
// are narrow enough that each stub below takes plain arguments and
// invokes the RPC by method name with unexported request/response
// structs, instead of exported per-message types.
type KeystoreClient interface {
	GetDatabase(ctx context.Context, username, password string, opts ...grpc.CallOption) (interface{}, error)
}

type keystoreClient struct{ cc grpc.ClientConnInterface }

// NewKeystoreClient wraps a dialed connection to the host's keystore
// service.
func NewKeystoreClient(cc grpc.ClientConnInterface) KeystoreClient {
	return &keystoreClient{cc: cc}
}

type getDatabaseRequest struct{ Username, Password string }
type getDatabaseResponse struct{ ServerAddr string }

func (c *keystoreClient) GetDatabase(ctx context.Context, username, password string, opts ...grpc.CallOption) (interface{}, error) {
	resp := new(getDatabaseResponse)
	if err := c.cc.Invoke(ctx, "/vmpb.Keystore/GetDatabase", &getDatabaseRequest{Username: username, Password: password}, resp, opts...); err != nil {
		return nil, err
	}
	return resp.ServerAddr, nil
}

type SharedMemoryClient interface {
	Get(ctx context.Context, peerChainID []byte, keys [][]byte, opts ...grpc.CallOption) ([][]byte, error)
}

type sharedMemoryClient struct{ cc grpc.ClientConnInterface }

// NewSharedMemoryClient wraps a dialed connection to the host's
// cross-chain atomic-memory service.
func NewSharedMemoryClient(cc grpc.ClientConnInterface) SharedMemoryClient {
	return &sharedMemoryClient{cc: cc}
}

type sharedMemoryGetRequest struct {
	PeerChainId []byte
	Keys        [][]byte
}
type sharedMemoryGetResponse struct{ Values [][]byte }

func (c *sharedMemoryClient) Get(ctx context.Context, peerChainID []byte, keys [][]byte, opts ...grpc.CallOption) ([][]byte, error) {
	resp := new(sharedMemoryGetResponse)
	if err := c.cc.Invoke(ctx, "/vmpb.SharedMemory/Get", &sharedMemoryGetRequest{PeerChainId: peerChainID, Keys: keys}, resp, opts...); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

type AliasReaderClient interface {
	Lookup(ctx context.Context, alias string, opts ...grpc.CallOption) ([]byte, error)
	PrimaryAlias(ctx context.Context, id []byte, opts ...grpc.CallOption) (string, error)
}

type aliasReaderClient struct{ cc grpc.ClientConnInterface }

// NewAliasReaderClient wraps a dialed connection to the host's
// blockchain-alias service.
func NewAliasReaderClient(cc grpc.ClientConnInterface) AliasReaderClient {
	return &aliasReaderClient{cc: cc}
}

type aliasLookupRequest struct{ Alias string }
type aliasLookupResponse struct{ Id []byte }
type primaryAliasRequest struct{ Id []byte }
type primaryAliasResponse struct{ Alias string }

func (c *aliasReaderClient) Lookup(ctx context.Context, alias string, opts ...grpc.CallOption) ([]byte, error) {
	resp := new(aliasLookupResponse)
	if err := c.cc.Invoke(ctx, "/vmpb.AliasReader/Lookup", &aliasLookupRequest{Alias: alias}, resp, opts...); err != nil {
		return nil, err
	}
	return resp.Id, nil
}

func (c *aliasReaderClient) PrimaryAlias(ctx context.Context, id []byte, opts ...grpc.CallOption) (string, error) {
	resp := new(primaryAliasResponse)
	if err := c.cc.Invoke(ctx, "/vmpb.AliasReader/PrimaryAlias", &primaryAliasRequest{Id: id}, resp, opts...); err != nil {
		return "", err
	}
	return resp.Alias, nil
}

type SubnetLookupClient interface {
	SubnetID(ctx context.Context, chainID []byte, opts ...grpc.CallOption) ([]byte, error)
}

type subnetLookupClient struct{ cc grpc.ClientConnInterface }

// NewSubnetLookupClient wraps a dialed connection to the host's
// subnet-membership service.
func NewSubnetLookupClient(cc grpc.ClientConnInterface) SubnetLookupClient {
	return &subnetLookupClient{cc: cc}
}

type subnetIDRequest struct{ ChainId []byte }
type subnetIDResponse struct{ SubnetId []byte }

func (c *subnetLookupClient) SubnetID(ctx context.Context, chainID []byte, opts ...grpc.CallOption) ([]byte, error) {
	resp := new(subnetIDResponse)
	if err := c.cc.Invoke(ctx, "/vmpb.SubnetLookup/SubnetID", &subnetIDRequest{ChainId: chainID}, resp, opts...); err != nil {
		return nil, err
	}
	return resp.SubnetId, nil
}
