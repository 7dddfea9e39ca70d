// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package nullvm

import (
	"context"
	"net/http"

	"github.com/gorilla/rpc"
	"github.com/gorilla/rpc/json"
)

// versionService is the single JSON-RPC method nullvm exposes:
// enough to prove a chain-specific handler round-trips through the
// adapter's ghttp sub-server.
type versionService struct {
	vm *VM
}

// VersionArgs is empty: the call takes no parameters.
type VersionArgs struct{}

// VersionReply carries the inner VM's free-form version string.
type VersionReply struct {
	Version string `json:"version"`
}

func (s *versionService) Version(_ *http.Request, _ *VersionArgs, reply *VersionReply) error {
	v, err := s.vm.Version(context.Background())
	if err != nil {
		return err
	}
	reply.Version = v
	return nil
}

// newRPCHandler builds the gorilla/rpc JSON-RPC server wrapping vm's
// single service.
func newRPCHandler(vm *VM) http.Handler {
	s := rpc.NewServer()
	s.RegisterCodec(json.NewCodec(), "application/json")
	if err := s.RegisterService(&versionService{vm: vm}, ""); err != nil {
		panic(err)
	}
	return s
}
