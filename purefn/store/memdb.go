package store

import (
	"context"
	"fmt"

	memdb "github.com/hashicorp/go-memdb"
	"github.com/on-the-ground/memo_ive_go/purefn"
	"github.com/on-the-ground/memo_ive_go/shared/helper"
)

const (
	memoTable = "memo"
	idIndex   = "id"
)

var _ purefn.Store[int, any] = (*MemDB[int, any])(nil)

type record[K comparable, V any] struct {
	ID    string
	Key   K
	Value V
}

// MemDB stores memoized values in a go-memdb table, indexed by the rendering
// of their key.
type MemDB[K comparable, V any] struct {
	db        *memdb.MemDB
	partition func(K) string
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memoTable: {
				Name: memoTable,
				Indexes: map[string]*memdb.IndexSchema{
					idIndex: {
						Name:    idIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
}

// NewMemDB returns an empty MemDB. Keys are rendered with partition, which
// defaults to helper.PartitionKey; equal keys must render equally.
func NewMemDB[K comparable, V any](partition func(K) string) (*MemDB[K, V], error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("memdb store: %w", err)
	}
	if partition == nil {
		partition = func(key K) string { return helper.PartitionKey(key) }
	}
	return &MemDB[K, V]{db: db, partition: partition}, nil
}

func (m *MemDB[K, V]) Load(ctx context.Context, key K) (value V, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return value, false, err
	}
	txn := m.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(memoTable, idIndex, m.partition(key))
	if err != nil || raw == nil {
		return value, false, err
	}
	rec, ok := raw.(*record[K, V])
	if !ok {
		return value, false, fmt.Errorf("%w: %T", helper.ErrUnexpectedType, raw)
	}
	// two keys may share a rendering; only the exact key is a hit
	if rec.Key != key {
		return value, false, nil
	}
	return rec.Value, true, nil
}

func (m *MemDB[K, V]) Store(ctx context.Context, key K, value V) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := m.db.Txn(true)
	defer txn.Abort()

	rec := &record[K, V]{ID: m.partition(key), Key: key, Value: value}
	if err := txn.Insert(memoTable, rec); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (m *MemDB[K, V]) Delete(ctx context.Context, key K) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := m.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(memoTable, idIndex, m.partition(key))
	if err != nil || raw == nil {
		return err
	}
	if rec, ok := raw.(*record[K, V]); !ok || rec.Key != key {
		return nil
	}
	if err := txn.Delete(memoTable, raw); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Len returns the number of stored values.
func (m *MemDB[K, V]) Len() (int, error) {
	txn := m.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(memoTable, idIndex)
	if err != nil {
		return 0, err
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}
