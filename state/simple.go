// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	_ Mutable = (*SimpleMutable)(nil)

	ErrCommitted = errors.New("already committed")
)

// SimpleMutable buffers changes on top of [Database] until [Commit] is
// called. Dropping a SimpleMutable discards every change it holds.
type SimpleMutable struct {
	db Database

	changes   map[string]maybe.Maybe[[]byte]
	committed bool
}

func NewSimpleMutable(db Database) *SimpleMutable {
	return &SimpleMutable{db: db, changes: make(map[string]maybe.Maybe[[]byte])}
}

func (s *SimpleMutable) GetValue(_ context.Context, k []byte) ([]byte, error) {
	if v, ok := s.changes[string(k)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return v.Value(), nil
	}
	return s.db.Get(k)
}

func (s *SimpleMutable) Insert(_ context.Context, k []byte, v []byte) error {
	s.changes[string(k)] = maybe.Some(slices.Clone(v))
	return nil
}

func (s *SimpleMutable) Remove(_ context.Context, k []byte) error {
	s.changes[string(k)] = maybe.Nothing[[]byte]()
	return nil
}

// Changes returns the number of keys modified.
func (s *SimpleMutable) Changes() int {
	return len(s.changes)
}

// Commit writes every buffered change to the underlying database in a single
// batch. Keys are written in sorted order so the batch is deterministic.
func (s *SimpleMutable) Commit(_ context.Context) error {
	if s.committed {
		return ErrCommitted
	}
	batch := s.db.NewBatch()
	keys := maps.Keys(s.changes)
	slices.Sort(keys)
	for _, k := range keys {
		v := s.changes[k]
		var err error
		if v.IsNothing() {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Put([]byte(k), v.Value())
		}
		if err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.committed = true
	return nil
}
