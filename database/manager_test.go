// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/rpcchainvm/rpcdb"
)

func mustVersion(t *testing.T, s string) Version {
	t.Helper()
	v, err := ParseVersion(s)
	require.NoError(t, err)
	return v
}

// TestManagerCurrentIsHighestVersion: given [v1.0.0, v1.2.3, v1.2.0],
// current must be 1.2.3.
func TestManagerCurrentIsHighestVersion(t *testing.T) {
	require := require.New(t)

	dbs := []VersionedDatabase{
		{Version: mustVersion(t, "v1.0.0")},
		{Version: mustVersion(t, "v1.2.3")},
		{Version: mustVersion(t, "v1.2.0")},
	}

	m, err := NewManagerFromDatabases(dbs)
	require.NoError(err)
	require.Equal(Version{1, 2, 3}, m.CurrentVersion())
}

func TestManagerPreservesInsertionOrder(t *testing.T) {
	require := require.New(t)

	dbs := []VersionedDatabase{
		{Version: mustVersion(t, "v0.0.1")},
		{Version: mustVersion(t, "v0.0.2")},
	}
	m, err := NewManagerFromDatabases(dbs)
	require.NoError(err)

	all := m.All()
	require.Len(all, 2)
	require.Equal(Version{0, 0, 1}, all[0].Version)
	require.Equal(Version{0, 0, 2}, all[1].Version)
}

func TestManagerEmptyFails(t *testing.T) {
	require := require.New(t)

	_, err := NewManagerFromDatabases(nil)
	require.ErrorIs(err, ErrEmptyManager)
}

func TestManagerTieBreaksOnLatestEntry(t *testing.T) {
	require := require.New(t)

	first := rpcdb.NewClient(nil)
	latest := rpcdb.NewClient(nil)
	dbs := []VersionedDatabase{
		{Database: first, Version: mustVersion(t, "v1.0.0")},
		{Database: latest, Version: mustVersion(t, "v1.0.0")},
	}
	m, err := NewManagerFromDatabases(dbs)
	require.NoError(err)
	require.Equal(Version{1, 0, 0}, m.CurrentVersion())
	require.Same(latest, m.Current())
}

func TestParseVersionStripsLeadingV(t *testing.T) {
	require := require.New(t)

	v, err := ParseVersion("v2.3.4")
	require.NoError(err)
	require.Equal(Version{2, 3, 4}, v)

	v2, err := ParseVersion("2.3.4")
	require.NoError(err)
	require.Equal(v, v2)
}

func TestParseVersionInvalid(t *testing.T) {
	require := require.New(t)

	_, err := ParseVersion("xyzzy")
	require.Error(err)

	_, err = ParseVersion("1.2")
	require.Error(err)
}
