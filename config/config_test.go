// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	require := require.New(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(fs.Parse(nil))

	v := viper.New()
	require.NoError(v.BindPFlags(fs))

	cfg := FromViper(v)
	require.Equal("", cfg.ListenAddr)
	require.Equal(uint(defaultHandshakeVersion), cfg.HandshakeVersion)
	require.Equal(defaultLogLevel, cfg.LogLevel)
}

func TestFromViperOverride(t *testing.T) {
	require := require.New(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(fs.Parse([]string{"--listen-addr=127.0.0.1:9999", "--log-level=debug", "--handshake-version=2"}))

	v := viper.New()
	require.NoError(v.BindPFlags(fs))

	cfg := FromViper(v)
	require.Equal("127.0.0.1:9999", cfg.ListenAddr)
	require.Equal("debug", cfg.LogLevel)
	require.Equal(uint(2), cfg.HandshakeVersion)
}
