// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ghttp lets the adapter expose an inner VM's opaque
// http.Handler across the plugin boundary: each CreateHandlers /
// CreateStaticHandlers entry gets its own ephemeral gRPC server
// wrapping one Server, so the host can route HTTP traffic to a
// process it never binds a socket for directly.
package ghttp

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
)

// server adapts a single http.Handler into the gRPC-reachable Server
// capability.
type server struct {
	handler http.Handler
}

// NewServer wraps handler. A nil handler is valid: the host still
// gets a reachable address, every request just 404s, matching a
// router registered with an empty prefix.
func NewServer(handler http.Handler) Server {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	return &server{handler: handler}
}

// Handle reconstructs an *http.Request from req, runs it through the
// wrapped handler with a recording ResponseWriter, and returns the
// recorded response. It never returns a transport-level error for an
// ordinary HTTP failure status: that belongs in the response body,
// same as any other HTTP round-trip.
func (s *server) Handle(_ context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequest(req.Method, req.RequestURI, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		for _, v := range values.Values {
			httpReq.Header.Add(key, v)
		}
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httpReq)

	header := make(map[string]*HeaderValues, len(rec.Header()))
	for key, values := range rec.Header() {
		header[key] = &HeaderValues{Values: values}
	}

	return &Response{
		Code:   int32(rec.Code),
		Header: header,
		Body:   rec.Body.Bytes(),
	}, nil
}
