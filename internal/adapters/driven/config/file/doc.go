// Package file provides a TOML-backed configuration store.
//
// Configuration lives in a single config.toml under the aegis config
// directory. Nested tables are flattened into dot-notation keys, so
// [tracking] interval_ms = 15000 is read as "tracking.interval_ms".
// A companion Watcher re-loads the store when the file changes on disk,
// which lets a running tracker pick up a new interval without restart.
package file
