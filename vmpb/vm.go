// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vmpb holds the request/response message shapes and service
// interfaces for the host<->plugin RPC boundary. The on-wire byte
// layout of this schema is fixed by the host and out of scope for this
// repository; what follows is the Go-side shape of that schema, in the
// form protoc-gen-go-grpc would emit it, so the adapter has a concrete
// interface to implement and test against.
package vmpb

import (
	"context"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// DbServer is one {server_addr, version} entry the host supplies on
// initialize.
type DbServer struct {
	ServerAddr string
	Version    string
}

// InitializeRequest carries everything the host knows about the chain
// being brought up.
type InitializeRequest struct {
	NetworkId    uint32
	SubnetId     []byte
	ChainId      []byte
	NodeId       []byte
	XChainId     []byte
	AvaxAssetId  []byte
	GenesisBytes []byte
	UpgradeBytes []byte
	ConfigBytes  []byte
	DbServers    []*DbServer
	ServerAddr   string // aggregator address the plugin dials back into
}

// InitializeResponse carries the last-accepted block as of initialize.
type InitializeResponse struct {
	LastAcceptedId       []byte
	LastAcceptedParentId []byte
	Status               uint32
	Height               uint64
	Bytes                []byte
	Timestamp            *timestamppb.Timestamp
}

type SetStateRequest struct {
	State uint32
}

type SetStateResponse struct {
	LastAcceptedId       []byte
	LastAcceptedParentId []byte
	Status               uint32
	Height               uint64
	Bytes                []byte
	Timestamp            *timestamppb.Timestamp
}

type BuildBlockResponse struct {
	Id        []byte
	ParentId  []byte
	Bytes     []byte
	Height    uint64
	Timestamp *timestamppb.Timestamp
}

type ParseBlockRequest struct {
	Bytes []byte
}

type ParseBlockResponse struct {
	Id        []byte
	ParentId  []byte
	Status    uint32
	Height    uint64
	Timestamp *timestamppb.Timestamp
}

type BatchedParseBlockRequest struct {
	Request [][]byte
}

type BatchedParseBlockResponse struct {
	Response []*ParseBlockResponse
}

type GetBlockRequest struct {
	Id []byte
}

// GetBlockResponse is the one response shaped by get_block's
// distinctive contract: a non-zero Err means "block unknown to the
// inner VM", not a transport failure, so the remaining fields are
// zeroed and Status must be ignored by the caller.
type GetBlockResponse struct {
	ParentId  []byte
	Bytes     []byte
	Status    uint32
	Height    uint64
	Timestamp *timestamppb.Timestamp
	Err       uint32
}

type GetAncestorsRequest struct {
	BlkId                  []byte
	MaxBlocksNum           int32
	MaxBlocksSize          int32
	MaxBlocksRetrievalTime int64 // nanoseconds
}

type GetAncestorsResponse struct {
	BlksBytes [][]byte
}

type SetPreferenceRequest struct {
	Id []byte
}

type BlockVerifyRequest struct {
	Bytes []byte
}

type BlockVerifyResponse struct {
	Timestamp *timestamppb.Timestamp
}

type BlockAcceptRequest struct {
	Id []byte
}

type BlockRejectRequest struct {
	Id []byte
}

type HealthResponse struct {
	Details string
}

type VersionResponse struct {
	Version string
}

type ConnectedRequest struct {
	NodeId  []byte
	Version string
}

type DisconnectedRequest struct {
	NodeId []byte
}

type AppRequestMsg struct {
	NodeId    []byte
	RequestId uint32
	Deadline  *timestamppb.Timestamp
	Request   []byte
}

type AppRequestFailedMsg struct {
	NodeId    []byte
	RequestId uint32
}

type AppResponseMsg struct {
	NodeId    []byte
	RequestId uint32
	Response  []byte
}

type AppGossipMsg struct {
	NodeId []byte
	Msg    []byte
}

type Handler struct {
	Prefix      string
	LockOptions uint32
	ServerAddr  string
}

type CreateHandlersResponse struct {
	Handlers []*Handler
}

type VerifyHeightIndexResponse struct {
	Err uint32
}

type GetBlockIDAtHeightRequest struct {
	Height uint64
}

type GetBlockIDAtHeightResponse struct {
	BlkId []byte
	Err   uint32
}

type FetchValidatorsRequest struct {
	BlkId []byte
}

type FetchValidatorsResponse struct {
	ValidatorIds [][]byte
	Weights      []uint64
}

// VMServer is the interface the plugin process implements and the
// host dials into. Every method corresponds 1:1 to a wire RPC.
type VMServer interface {
	Initialize(context.Context, *InitializeRequest) (*InitializeResponse, error)
	SetState(context.Context, *SetStateRequest) (*SetStateResponse, error)
	Shutdown(context.Context) error

	CreateHandlers(context.Context) (*CreateHandlersResponse, error)
	CreateStaticHandlers(context.Context) (*CreateHandlersResponse, error)

	BuildBlock(context.Context) (*BuildBlockResponse, error)
	ParseBlock(context.Context, *ParseBlockRequest) (*ParseBlockResponse, error)
	BatchedParseBlock(context.Context, *BatchedParseBlockRequest) (*BatchedParseBlockResponse, error)
	GetBlock(context.Context, *GetBlockRequest) (*GetBlockResponse, error)
	GetAncestors(context.Context, *GetAncestorsRequest) (*GetAncestorsResponse, error)
	SetPreference(context.Context, *SetPreferenceRequest) error

	BlockVerify(context.Context, *BlockVerifyRequest) (*BlockVerifyResponse, error)
	BlockAccept(context.Context, *BlockAcceptRequest) error
	BlockReject(context.Context, *BlockRejectRequest) error

	Health(context.Context) (*HealthResponse, error)
	Version(context.Context) (*VersionResponse, error)

	Connected(context.Context, *ConnectedRequest) error
	Disconnected(context.Context, *DisconnectedRequest) error
	AppRequest(context.Context, *AppRequestMsg) error
	AppRequestFailed(context.Context, *AppRequestFailedMsg) error
	AppResponse(context.Context, *AppResponseMsg) error
	AppGossip(context.Context, *AppGossipMsg) error

	VerifyHeightIndex(context.Context) (*VerifyHeightIndexResponse, error)
	GetBlockIDAtHeight(context.Context, *GetBlockIDAtHeightRequest) (*GetBlockIDAtHeightResponse, error)
	FetchValidators(context.Context, *FetchValidatorsRequest) (*FetchValidatorsResponse, error)
}
