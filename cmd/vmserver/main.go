// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command vmserver is the plugin binary entrypoint: it wires flags,
// builds the inner VM, and hands control to go-plugin, which takes
// over stdio and brings up the adapter's gRPC service once the host
// dials in.
package main

import (
	"fmt"
	"os"

	goplugin "github.com/hashicorp/go-plugin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/luxfi/log"
	"github.com/luxfi/rpcchainvm/config"
	"github.com/luxfi/rpcchainvm/nullvm"
	"github.com/luxfi/rpcchainvm/rpcchainvm"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "vmserver:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("vmserver", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	cfg := config.FromViper(v)
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	logger := log.NewNoOpLogger()
	vm := nullvm.New()

	handshake := rpcchainvm.Handshake
	handshake.ProtocolVersion = cfg.HandshakeVersion

	goplugin.Serve(&goplugin.ServeConfig{
		HandshakeConfig: handshake,
		Plugins:         rpcchainvm.PluginMap(vm, logger),
		GRPCServer:      goplugin.DefaultGRPCServer,
	})
	return nil
}

// validateLogLevel rejects an unrecognized --log-level before the
// plugin ever hands control to go-plugin. Wiring cfg.LogLevel through
// to a concrete non-noop github.com/luxfi/log backend is left to the
// embedding binary (see DESIGN.md): the corpus never shows that
// constructor, only the NewNoOpLogger used throughout its tests.
func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unrecognized log level %q", level)
	}
}
