// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package grpcutils holds the small gRPC plumbing the adapter shares
// across the main VM service and every dynamically spawned handler
// sub-server.
package grpcutils

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// ServerCloser tracks every gRPC server the adapter has spun up so
// shutdown can stop them all together.
type ServerCloser struct {
	servers []*grpc.Server
}

// Add registers a server to be closed.
func (s *ServerCloser) Add(server *grpc.Server) {
	s.servers = append(s.servers, server)
}

// Stop gracefully stops every registered server.
func (s *ServerCloser) Stop() {
	for _, srv := range s.servers {
		srv.GracefulStop()
	}
}

// NewListener binds an ephemeral TCP port on the loopback interface and
// returns the bound listener. Handler sub-servers serve on this
// listener directly, so the port is never released between allocation
// and use.
func NewListener() (net.Listener, error) {
	return net.Listen("tcp", "127.0.0.1:0")
}

// NewServer returns a gRPC server with the adapter's default options.
func NewServer() *grpc.Server {
	return grpc.NewServer()
}

// Serve blocks serving server on listener. Callers run this in a
// detached goroutine; it returns when the server is stopped.
func Serve(listener net.Listener, server *grpc.Server) error {
	return server.Serve(listener)
}

// Dial opens an insecure client connection to addr. Every connection
// the adapter dials during initialize -- messenger, keystore, shared
// memory, alias/subnet lookup, each versioned database -- is opened
// with the same options, through this helper or DialContext.
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// DialContext behaves exactly like Dial; ctx is not used.
// grpc.NewClient connects lazily, so nothing is dialed here.
func DialContext(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}
