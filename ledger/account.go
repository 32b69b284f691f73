// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/near/borsh-go"

	"github.com/ava-labs/hypervault/codec"
)

// Account is the persisted record of an address.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      codec.Address
	Executable bool
}

// NewSystemAccount returns an account with no data owned by the system
// program. Addresses that were never written load as NewSystemAccount(0).
func NewSystemAccount(lamports uint64) *Account {
	return &Account{Lamports: lamports, Owner: SystemProgramID}
}

func (a *Account) Marshal() ([]byte, error) {
	return borsh.Serialize(*a)
}

func UnmarshalAccount(b []byte) (*Account, error) {
	var a Account
	if err := borsh.Deserialize(&a, b); err != nil {
		return nil, err
	}
	return &a, nil
}

// IsEmpty reports whether the account can be dropped from storage.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && a.Owner == SystemProgramID
}

// AccountInfo is the view of an account handed to a program for one
// instruction. Infos that name the same address share the underlying
// [Account].
type AccountInfo struct {
	key        codec.Address
	isSigner   bool
	isWritable bool

	account *Account
}

func NewAccountInfo(key codec.Address, isSigner bool, isWritable bool, account *Account) *AccountInfo {
	return &AccountInfo{
		key:        key,
		isSigner:   isSigner,
		isWritable: isWritable,
		account:    account,
	}
}

func (a *AccountInfo) Key() codec.Address {
	return a.key
}

func (a *AccountInfo) IsSigner() bool {
	return a.isSigner
}

func (a *AccountInfo) IsWritable() bool {
	return a.isWritable
}

func (a *AccountInfo) Lamports() uint64 {
	return a.account.Lamports
}

func (a *AccountInfo) SetLamports(v uint64) {
	a.account.Lamports = v
}

func (a *AccountInfo) Owner() codec.Address {
	return a.account.Owner
}

func (a *AccountInfo) IsOwnedBy(program codec.Address) bool {
	return a.account.Owner == program
}

func (a *AccountInfo) SetOwner(owner codec.Address) {
	a.account.Owner = owner
}

func (a *AccountInfo) Executable() bool {
	return a.account.Executable
}

// Data returns the account data. Writes to the returned slice modify the
// account.
func (a *AccountInfo) Data() []byte {
	return a.account.Data
}

func (a *AccountInfo) DataLen() int {
	return len(a.account.Data)
}

// Realloc resizes the account data to n bytes, zero filling any growth.
func (a *AccountInfo) Realloc(n int) {
	if n <= len(a.account.Data) {
		a.account.Data = a.account.Data[:n]
		return
	}
	data := make([]byte, n)
	copy(data, a.account.Data)
	a.account.Data = data
}
