// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package database resolves the set of versioned database handles the
// host hands the adapter on initialize into the single "current"
// database the inner VM is given.
package database

import (
	luxdb "github.com/luxfi/database"
)

// VersionedDatabase pairs a database client with the semantic version
// the host reported alongside it.
type VersionedDatabase struct {
	Database luxdb.Database
	Version  Version
}
