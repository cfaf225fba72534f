// Package store is the gorm backed persistence gateway.
//
// Existence checks run as one bulk query per page. A match and its roster are
// inserted in a single transaction; a unique violation from a concurrent
// writer is reported as models.ErrDuplicateKey, which callers treat as success.
package store
