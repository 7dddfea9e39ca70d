// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rpcerrors centralizes the error kinds the adapter core
// needs to represent and their mapping onto gRPC transport status
// codes.
package rpcerrors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies why an adapter operation failed.
type Kind int

const (
	// Invalid is malformed input: a bad version string, an
	// out-of-range enum code, a wrong-length id slice.
	Invalid Kind = iota
	// Unavailable is a remote dial failure during initialize.
	Unavailable
	// NotFound is used only for get_block; it is surfaced in-body,
	// never as a transport error.
	NotFound
	// Fatal is the kind the adapter gives every inner-VM failure it
	// returns, including an illegal lifecycle transition. It surfaces
	// as transport Unknown. Only a notification-pump failure is logged
	// and broadcasts shutdown; a repeated Accept/Reject is returned to
	// the host like any other inner-VM error.
	Fatal
	// Unimplemented is a schema RPC the adapter deliberately does not
	// serve.
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Unavailable:
		return "Unavailable"
	case NotFound:
		return "NotFound"
	case Fatal:
		return "Fatal"
	case Unimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with the Kind the adapter needs to
// decide how to propagate it.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds an Error of the given kind.
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// Newf builds an Error of the given kind from a format string.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Cause: fmt.Errorf(format, args...)}
}

// ToStatus maps err onto the gRPC transport status the host sees.
// Invalid/Unavailable/Fatal all surface as transport Unknown -- the
// host only needs to distinguish "plugin malfunction" from the
// deliberate Unimplemented case and from get_block's in-body NotFound
// (which never reaches this function).
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *Error
	if errors.As(err, &rpcErr) && rpcErr.Kind == Unimplemented {
		return status.Error(codes.Unimplemented, rpcErr.Error())
	}
	return status.Error(codes.Unknown, err.Error())
}

// errorToErrCode is the fixed table of in-body error codes get_block
// (and the other "error as data" RPCs) use instead of a transport
// failure. 0 always means success.
var errorToErrCode = map[string]uint32{
	"not found": 1,
}

// ErrNoErrorCode is returned by ErrorToErrorCode when err does not map
// to a known code; this is the one case where the adapter must
// surface a transport error even from get_block.
var ErrNoErrorCode = errors.New("error has no known error code")

// ErrorToErrorCode maps err to its in-body error code. A nil err maps
// to 0. An err whose message does not match a known mapping returns
// ErrNoErrorCode so the caller can fall back to a transport error.
func ErrorToErrorCode(err error) (uint32, error) {
	if err == nil {
		return 0, nil
	}
	if code, ok := errorToErrCode[err.Error()]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrNoErrorCode, err)
}
