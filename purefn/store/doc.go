// Package store provides second tier stores for purefn.MemoCache.
//
// Ristretto is a bounded, admission-controlled cache: it may decline or drop
// entries, which a MemoCache treats as a miss. MemDB is an unbounded
// in-memory database that keeps every value until it is deleted.
package store
