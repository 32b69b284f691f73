// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"fmt"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
)

func requireSigner(owner *ledger.AccountInfo) error {
	if !owner.IsSigner() {
		return fmt.Errorf("%w: %s did not sign", ledger.ErrInvalidAccountOwner, owner.Key())
	}
	return nil
}

func requireOwnedBy(vault *ledger.AccountInfo, programID codec.Address) error {
	if !vault.IsOwnedBy(programID) {
		return fmt.Errorf("%w: %s is owned by %s", ledger.ErrInvalidAccountOwner, vault.Key(), vault.Owner())
	}
	return nil
}

func requireVaultOf(programID codec.Address, owner *ledger.AccountInfo, vault *ledger.AccountInfo) error {
	expected, _, err := DeriveVaultAddress(programID, owner.Key())
	if err != nil {
		return err
	}
	if vault.Key() != expected {
		return fmt.Errorf("%w: %s is not the vault of %s", ledger.ErrInvalidAccountData, vault.Key(), owner.Key())
	}
	return nil
}
