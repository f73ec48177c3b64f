// Package db provides the embedded default catalog document.
package db

import _ "embed"

// DefaultCatalog contains the initial store inventory in catalog JSON format.
//
//go:embed catalog.json
var DefaultCatalog []byte
