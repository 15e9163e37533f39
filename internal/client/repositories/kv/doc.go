// Package kv implements the raw key/value persistence underneath the secure
// store: one SQLite table, upsert on write, idempotent delete. Values are
// opaque here; encryption happens one layer up in securestore.
package kv
