// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"

	"github.com/ava-labs/hypervault/codec"
)

type AccountMeta struct {
	Address    codec.Address
	IsSigner   bool
	IsWritable bool
}

func NewAccountMeta(addr codec.Address, isSigner bool, isWritable bool) AccountMeta {
	return AccountMeta{Address: addr, IsSigner: isSigner, IsWritable: isWritable}
}

// Instruction is a single call into a program.
type Instruction struct {
	ProgramID codec.Address
	Accounts  []AccountMeta
	Data      []byte
}

// Program processes instructions addressed to it. Any error aborts the
// enclosing transaction and discards every change it made.
type Program interface {
	Process(ctx context.Context, ic InvokeContext, accounts []*AccountInfo, data []byte) error
}

// ProgramFunc adapts a function to [Program].
type ProgramFunc func(ctx context.Context, ic InvokeContext, accounts []*AccountInfo, data []byte) error

func (f ProgramFunc) Process(ctx context.Context, ic InvokeContext, accounts []*AccountInfo, data []byte) error {
	return f(ctx, ic, accounts, data)
}
