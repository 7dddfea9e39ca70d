// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ghttp

import "context"

// Request is the Go-side shape of a single HTTP request sent across
// the gRPC handler sub-server boundary. It carries just enough of
// net/http.Request to reconstruct one on the handler side.
type Request struct {
	Method     string
	RequestURI string
	Header     map[string]*HeaderValues
	Body       []byte
}

// HeaderValues mirrors a multi-valued http.Header entry.
type HeaderValues struct {
	Values []string
}

// Response is the Go-side shape of the recorded net/http.Response the
// handler produced, sent back across the boundary.
type Response struct {
	Code   int32
	Header map[string]*HeaderValues
	Body   []byte
}

// Server is the gRPC-facing capability a handler sub-server exposes:
// take one HTTP request, run it through the wrapped handler, return
// the recorded response. The host is the only caller.
type Server interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}
