// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package database

import (
	"errors"

	luxdb "github.com/luxfi/database"
)

// ErrEmptyManager is returned when constructing a Manager from an
// empty slice of versioned databases. Initialize always supplies at
// least one database server, so a successful initialize guarantees a
// non-empty Manager.
var ErrEmptyManager = errors.New("database manager must have at least one database")

// Manager owns a non-empty set of versioned database handles and
// resolves "current" as the entry with the highest version, ties
// broken by the latest entry in insertion order (the version_string
// the host assigns is expected to be unique per server, but the host
// may resend an unchanged entry across reconnects -- last-wins keeps
// resolution deterministic either way).
type Manager struct {
	dbs     []VersionedDatabase
	current VersionedDatabase
}

// NewManagerFromDatabases builds a Manager from the databases dialed
// during initialize, preserving their insertion order.
func NewManagerFromDatabases(dbs []VersionedDatabase) (*Manager, error) {
	if len(dbs) == 0 {
		return nil, ErrEmptyManager
	}

	current := dbs[0]
	for _, vdb := range dbs[1:] {
		if vdb.Version.Compare(current.Version) >= 0 {
			current = vdb
		}
	}

	cp := make([]VersionedDatabase, len(dbs))
	copy(cp, dbs)
	return &Manager{dbs: cp, current: current}, nil
}

// Current returns the database client of the highest version.
func (m *Manager) Current() luxdb.Database {
	return m.current.Database
}

// CurrentVersion returns the version of the current database.
func (m *Manager) CurrentVersion() Version {
	return m.current.Version
}

// All returns every versioned database in insertion order.
func (m *Manager) All() []VersionedDatabase {
	cp := make([]VersionedDatabase, len(m.dbs))
	copy(cp, m.dbs)
	return cp
}

// Close closes every underlying database, returning the first error
// encountered while still attempting to close the rest.
func (m *Manager) Close() error {
	var firstErr error
	for _, vdb := range m.dbs {
		if err := vdb.Database.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
