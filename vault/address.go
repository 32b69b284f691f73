// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
)

// VaultSeeds returns the seeds of [owner]'s vault, without the bump.
func VaultSeeds(owner codec.Address) [][]byte {
	return [][]byte{[]byte(VaultSeed), owner.Bytes()}
}

// DeriveVaultAddress returns the canonical vault address of [owner] under
// [programID] and its bump seed. The address is never on the curve, so no
// private key can sign for it.
func DeriveVaultAddress(programID codec.Address, owner codec.Address) (codec.Address, uint8, error) {
	return ledger.FindProgramAddress(VaultSeeds(owner), programID)
}

func vaultSignerSeeds(owner codec.Address, bump uint8) [][]byte {
	return append(VaultSeeds(owner), []byte{bump})
}
