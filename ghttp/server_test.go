// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ghttp

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerHandleRoutesToWrappedHandler(t *testing.T) {
	require := require.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Reply", "pong")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	srv := NewServer(mux)
	resp, err := srv.Handle(context.Background(), &Request{
		Method:     http.MethodGet,
		RequestURI: "/ping",
	})
	require.NoError(err)
	require.Equal(int32(http.StatusOK), resp.Code)
	require.Equal([]byte("pong"), resp.Body)
	require.Equal([]string{"pong"}, resp.Header["X-Reply"].Values)
}

func TestServerNilHandlerIs404(t *testing.T) {
	require := require.New(t)

	srv := NewServer(nil)
	resp, err := srv.Handle(context.Background(), &Request{
		Method:     http.MethodGet,
		RequestURI: "/anything",
	})
	require.NoError(err)
	require.Equal(int32(http.StatusNotFound), resp.Code)
}

func TestServerForwardsHeadersAndBody(t *testing.T) {
	require := require.New(t)

	var gotBody []byte
	var gotHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Request")
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusAccepted)
	})

	srv := NewServer(mux)
	resp, err := srv.Handle(context.Background(), &Request{
		Method:     http.MethodPost,
		RequestURI: "/echo",
		Header:     map[string]*HeaderValues{"X-Request": {Values: []string{"hello"}}},
		Body:       []byte("payload"),
	})
	require.NoError(err)
	require.Equal(int32(http.StatusAccepted), resp.Code)
	require.Equal("hello", gotHeader)
	require.Equal([]byte("payload"), gotBody)
}
