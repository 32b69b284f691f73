// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/consts"
	"github.com/ava-labs/hypervault/state"
)

// State
// 0x0/ (account)
//   -> [address] => borsh(Account)

const accountPrefix byte = 0x0

// [accountPrefix] + [address]
func AccountKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = accountPrefix
	copy(k[1:], addr[:])
	return k
}

// GetAccount returns the account stored at [addr]. Addresses that were
// never written are empty system accounts.
func GetAccount(ctx context.Context, im state.Immutable, addr codec.Address) (*Account, error) {
	v, err := im.GetValue(ctx, AccountKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return NewSystemAccount(0), nil
	}
	if err != nil {
		return nil, err
	}
	acct, err := UnmarshalAccount(v)
	if err != nil {
		return nil, fmt.Errorf("%w: account %s: %w", ErrInvalidAccountData, addr, err)
	}
	return acct, nil
}

// SetAccount persists [acct], removing it when it is empty.
func SetAccount(ctx context.Context, mu state.Mutable, addr codec.Address, acct *Account) error {
	k := AccountKey(addr)
	if acct.IsEmpty() {
		return mu.Remove(ctx, k)
	}
	v, err := acct.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, k, v)
}
