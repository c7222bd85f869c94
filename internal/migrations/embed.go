// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

// CatalogSQL creates the catalog tables for a local SQLite catalog.
// Statements are idempotent.
//
//go:embed sql/001_catalog.sql
var CatalogSQL string
