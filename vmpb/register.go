// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vmpb

import (
	"context"

	"google.golang.org/grpc"
)

// RegisterVMServer registers srv on s under the fixed VM service name
// the host dials. Method routing mirrors what protoc-gen-go-grpc
// would generate for this schema.
func RegisterVMServer(s grpc.ServiceRegistrar, srv VMServer) {
	s.RegisterService(&vmServiceDesc, srv)
}

var vmServiceDesc = grpc.ServiceDesc{
	ServiceName: "vmpb.VM",
	HandlerType: (*VMServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Initialize", func(ctx context.Context, srv VMServer, req *InitializeRequest) (interface{}, error) {
			return srv.Initialize(ctx, req)
		}),
		unaryMethod("SetState", func(ctx context.Context, srv VMServer, req *SetStateRequest) (interface{}, error) {
			return srv.SetState(ctx, req)
		}),
		unaryMethod("Shutdown", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return struct{}{}, srv.Shutdown(ctx)
		}),
		unaryMethod("CreateHandlers", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return srv.CreateHandlers(ctx)
		}),
		unaryMethod("CreateStaticHandlers", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return srv.CreateStaticHandlers(ctx)
		}),
		unaryMethod("BuildBlock", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return srv.BuildBlock(ctx)
		}),
		unaryMethod("ParseBlock", func(ctx context.Context, srv VMServer, req *ParseBlockRequest) (interface{}, error) {
			return srv.ParseBlock(ctx, req)
		}),
		unaryMethod("BatchedParseBlock", func(ctx context.Context, srv VMServer, req *BatchedParseBlockRequest) (interface{}, error) {
			return srv.BatchedParseBlock(ctx, req)
		}),
		unaryMethod("GetBlock", func(ctx context.Context, srv VMServer, req *GetBlockRequest) (interface{}, error) {
			return srv.GetBlock(ctx, req)
		}),
		unaryMethod("GetAncestors", func(ctx context.Context, srv VMServer, req *GetAncestorsRequest) (interface{}, error) {
			return srv.GetAncestors(ctx, req)
		}),
		unaryMethod("SetPreference", func(ctx context.Context, srv VMServer, req *SetPreferenceRequest) (interface{}, error) {
			return struct{}{}, srv.SetPreference(ctx, req)
		}),
		unaryMethod("BlockVerify", func(ctx context.Context, srv VMServer, req *BlockVerifyRequest) (interface{}, error) {
			return srv.BlockVerify(ctx, req)
		}),
		unaryMethod("BlockAccept", func(ctx context.Context, srv VMServer, req *BlockAcceptRequest) (interface{}, error) {
			return struct{}{}, srv.BlockAccept(ctx, req)
		}),
		unaryMethod("BlockReject", func(ctx context.Context, srv VMServer, req *BlockRejectRequest) (interface{}, error) {
			return struct{}{}, srv.BlockReject(ctx, req)
		}),
		unaryMethod("Health", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return srv.Health(ctx)
		}),
		unaryMethod("Version", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return srv.Version(ctx)
		}),
		unaryMethod("Connected", func(ctx context.Context, srv VMServer, req *ConnectedRequest) (interface{}, error) {
			return struct{}{}, srv.Connected(ctx, req)
		}),
		unaryMethod("Disconnected", func(ctx context.Context, srv VMServer, req *DisconnectedRequest) (interface{}, error) {
			return struct{}{}, srv.Disconnected(ctx, req)
		}),
		unaryMethod("AppRequest", func(ctx context.Context, srv VMServer, req *AppRequestMsg) (interface{}, error) {
			return struct{}{}, srv.AppRequest(ctx, req)
		}),
		unaryMethod("AppRequestFailed", func(ctx context.Context, srv VMServer, req *AppRequestFailedMsg) (interface{}, error) {
			return struct{}{}, srv.AppRequestFailed(ctx, req)
		}),
		unaryMethod("AppResponse", func(ctx context.Context, srv VMServer, req *AppResponseMsg) (interface{}, error) {
			return struct{}{}, srv.AppResponse(ctx, req)
		}),
		unaryMethod("AppGossip", func(ctx context.Context, srv VMServer, req *AppGossipMsg) (interface{}, error) {
			return struct{}{}, srv.AppGossip(ctx, req)
		}),
		unaryMethod("VerifyHeightIndex", func(ctx context.Context, srv VMServer, _ *struct{}) (interface{}, error) {
			return srv.VerifyHeightIndex(ctx)
		}),
		unaryMethod("GetBlockIDAtHeight", func(ctx context.Context, srv VMServer, req *GetBlockIDAtHeightRequest) (interface{}, error) {
			return srv.GetBlockIDAtHeight(ctx, req)
		}),
		unaryMethod("FetchValidators", func(ctx context.Context, srv VMServer, req *FetchValidatorsRequest) (interface{}, error) {
			return srv.FetchValidators(ctx, req)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vm.proto",
}

// unaryMethod adapts a typed handler function into the untyped shape
// grpc.MethodDesc requires, decoding the request with the codec the
// server was configured with.
func unaryMethod[Req any](
	name string,
	handler func(ctx context.Context, srv VMServer, req *Req) (interface{}, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv interface{},
			ctx context.Context,
			dec func(interface{}) error,
			interceptor grpc.UnaryServerInterceptor,
		) (interface{}, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return handler(ctx, srv.(VMServer), req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/vmpb.VM/" + name}
			return interceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return handler(ctx, srv.(VMServer), req.(*Req))
			})
		},
	}
}
