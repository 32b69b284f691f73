// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x1/ (genesis)
//   -> marker written when the genesis is loaded

const genesisPrefix byte = 0x1

var genesisKey = []byte{genesisPrefix}

type Allocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

type Genesis struct {
	Allocations []*Allocation `json:"allocations"`
}

// GenesisLoaded reports whether a genesis was committed to [im].
func GenesisLoaded(ctx context.Context, im state.Immutable) (bool, error) {
	_, err := im.GetValue(ctx, genesisKey)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Load credits every allocation and commits the result in one batch. A
// database can only be initialized once.
func (g *Genesis) Load(ctx context.Context, db state.Database) error {
	mu := state.NewSimpleMutable(db)
	loaded, err := GenesisLoaded(ctx, mu)
	if err != nil {
		return err
	}
	if loaded {
		return ErrGenesisLoaded
	}
	seen := make(map[codec.Address]struct{}, len(g.Allocations))
	for _, alloc := range g.Allocations {
		if _, ok := seen[alloc.Address]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAllocation, alloc.Address)
		}
		seen[alloc.Address] = struct{}{}

		acct, err := GetAccount(ctx, mu, alloc.Address)
		if err != nil {
			return err
		}
		acct.Lamports, err = smath.Add(acct.Lamports, alloc.Balance)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		if err := SetAccount(ctx, mu, alloc.Address, acct); err != nil {
			return err
		}
	}
	if err := mu.Insert(ctx, genesisKey, []byte{1}); err != nil {
		return err
	}
	return mu.Commit(ctx)
}
