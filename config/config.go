// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the flags cmd/vmserver accepts and binds them
// through viper, the flag/viper pairing used across the sibling plugin
// VM binaries in this family of repositories.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// ListenAddrKey is the flag/viper key for a listen address for the
	// VM's own gRPC service. cmd/vmserver reads it into Config but does
	// not pass it on: go-plugin always chooses the address.
	ListenAddrKey = "listen-addr"
	// HandshakeVersionKey is the flag/viper key for the go-plugin
	// protocol version this binary speaks.
	HandshakeVersionKey = "handshake-version"
	// LogLevelKey is the flag/viper key for the root logger's level.
	LogLevelKey = "log-level"
)

const (
	defaultHandshakeVersion = 1
	defaultLogLevel         = "info"
)

// Config is the small set of knobs cmd/vmserver needs before it can
// bring up the adapter and hand control to go-plugin.
type Config struct {
	ListenAddr       string
	HandshakeVersion uint
	LogLevel         string
}

// RegisterFlags declares this package's flags on fs. Call before
// fs.Parse.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(ListenAddrKey, "", "address for the plugin's gRPC service (not applied by cmd/vmserver: go-plugin assigns the address)")
	fs.Uint(HandshakeVersionKey, defaultHandshakeVersion, "go-plugin handshake protocol version")
	fs.String(LogLevelKey, defaultLogLevel, "root logger level")
}

// FromViper builds a Config by reading the keys RegisterFlags
// declared out of v. Callers are expected to have already bound fs to
// v with v.BindPFlags.
func FromViper(v *viper.Viper) Config {
	return Config{
		ListenAddr:       v.GetString(ListenAddrKey),
		HandshakeVersion: v.GetUint(HandshakeVersionKey),
		LogLevel:         v.GetString(LogLevelKey),
	}
}
