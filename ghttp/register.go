// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ghttp

import (
	"context"

	"google.golang.org/grpc"
)

// RegisterServer attaches srv to s under the ghttp service name.
func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "ghttp.HTTP",
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Handle",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				in := new(Request)
				if err := dec(in); err != nil {
					return nil, err
				}
				return srv.(Server).Handle(ctx, in)
			},
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ghttp.proto",
}
