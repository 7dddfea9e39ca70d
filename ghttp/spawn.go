// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ghttp

import (
	"net/http"

	"github.com/luxfi/log"

	"github.com/luxfi/rpcchainvm/grpcutils"
)

// Spawn binds an ephemeral listener, serves handler behind a fresh
// gRPC server on it, and returns the address the host should dial.
// The server is registered with closer so adapter shutdown stops it
// along with every other sub-server, and it also stops early if stop
// is closed -- the broadcast every handler sub-server subscribes to
// so a single shutdown call tears all of them down without the
// adapter tracking each one individually.
func Spawn(handler http.Handler, closer *grpcutils.ServerCloser, stop <-chan struct{}, logger log.Logger) (string, error) {
	listener, err := grpcutils.NewListener()
	if err != nil {
		return "", err
	}

	server := grpcutils.NewServer()
	RegisterServer(server, NewServer(handler))
	closer.Add(server)

	go func() {
		<-stop
		server.GracefulStop()
	}()
	go func() {
		if err := grpcutils.Serve(listener, server); err != nil {
			logger.Debug("handler sub-server stopped", log.Err(err))
		}
	}()

	return listener.Addr().String(), nil
}
