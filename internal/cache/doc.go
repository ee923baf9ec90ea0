// Package cache persists fetched suggestion lists on disk.
//
// Results are keyed by the exact query term. Entries expire after a
// configurable TTL (24 hours by default); fresh entries serve repeated
// queries across runs and keep --offline-less sessions useful when the
// network flaps. Writes are atomic (temp file + rename) and a corrupted
// cache file is discarded rather than reported.
//
// Use [Lock] around save cycles when multiple sugg processes may write
// the same cache file.
package cache
