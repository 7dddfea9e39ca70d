// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcchainvm

import (
	"context"
	"errors"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"

	"github.com/luxfi/log"
	"github.com/luxfi/rpcchainvm/block"
	"github.com/luxfi/rpcchainvm/vmpb"
)

// Handshake is the go-plugin handshake both sides of the boundary must
// agree on bit-for-bit. The magic cookie only guards against launching
// this binary directly outside of go-plugin; it carries no security
// meaning.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "VM_PLUGIN",
	MagicCookieValue: "lux_rpcchainvm",
}

// PluginMap is the go-plugin plugin set this binary serves: a single
// "vm" entry.
func PluginMap(vm block.ChainVM, logger log.Logger) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		"vm": &grpcPlugin{server: New(vm, logger)},
	}
}

// grpcPlugin adapts Server into the interface go-plugin's GRPC bring-up
// expects. Only the server half is implemented: this binary is the
// plugin, never the host, so GRPCClient is never called in practice.
type grpcPlugin struct {
	plugin.Plugin
	server *Server
}

func (p *grpcPlugin) GRPCServer(_ *plugin.GRPCBroker, s *grpc.Server) error {
	vmpb.RegisterVMServer(s, p.server)
	return nil
}

func (p *grpcPlugin) GRPCClient(context.Context, *plugin.GRPCBroker, *grpc.ClientConn) (interface{}, error) {
	return nil, errors.New("rpcchainvm: this binary serves the plugin side only, it has no gRPC client")
}
