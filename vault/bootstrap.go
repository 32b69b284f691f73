// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"

	"go.uber.org/zap"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
)

// ensureVault creates [vault] when it holds no lamports, funding it with the
// minimum reserve from [owner]. An existing vault must be owned by
// [programID].
func ensureVault(
	ctx context.Context,
	ic ledger.InvokeContext,
	programID codec.Address,
	owner *ledger.AccountInfo,
	vault *ledger.AccountInfo,
) error {
	if vault.Lamports() > 0 {
		if err := requireOwnedBy(vault, programID); err != nil {
			return err
		}
		ic.Log().Debug("vault already exists",
			zap.Stringer("programID", programID),
			zap.Stringer("vault", vault.Key()),
		)
		return nil
	}

	_, bump, err := DeriveVaultAddress(programID, owner.Key())
	if err != nil {
		return err
	}
	reserve := ic.Rent().MinimumBalance(VaultDataLen)
	create := ledger.CreateAccount(owner.Key(), vault.Key(), reserve, VaultDataLen, programID)
	if err := ic.InvokeSigned(ctx, create, vaultSignerSeeds(owner.Key(), bump)); err != nil {
		return err
	}
	copy(vault.Data(), VaultDiscriminator[:])

	ic.Log().Info("vault created",
		zap.Stringer("programID", programID),
		zap.Stringer("owner", owner.Key()),
		zap.Stringer("vault", vault.Key()),
		zap.Uint64("reserve", reserve),
	)
	return nil
}
