// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/ava-labs/hypervault/codec"
)

// FindProgramAddress returns the first off-curve address derived from
// [seeds] and [programID] together with the bump seed that produced it.
func FindProgramAddress(seeds [][]byte, programID codec.Address) (codec.Address, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return codec.EmptyAddress, 0, fmt.Errorf("%w: %w", ErrInvalidSeeds, err)
	}
	return addr, bump, nil
}

// CreateProgramAddress returns the address for [seeds], which must include
// the bump seed, or ErrInvalidSeeds if the result lies on the curve.
func CreateProgramAddress(seeds [][]byte, programID codec.Address) (codec.Address, error) {
	addr, err := solana.CreateProgramAddress(seeds, programID)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: %w", ErrInvalidSeeds, err)
	}
	return addr, nil
}
