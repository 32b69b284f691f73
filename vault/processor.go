// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"fmt"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
)

// minAccounts are the owner and the vault. The program and system program
// accounts only need to be present for cross-program calls.
const minAccounts = 2

var _ ledger.Program = (*Processor)(nil)

// Processor is the vault program.
type Processor struct {
	programID codec.Address
}

func NewProcessor(programID codec.Address) *Processor {
	return &Processor{programID: programID}
}

func (p *Processor) ProgramID() codec.Address {
	return p.programID
}

func (p *Processor) Process(
	ctx context.Context,
	ic ledger.InvokeContext,
	accounts []*ledger.AccountInfo,
	data []byte,
) error {
	id, payload, err := splitOpcode(data)
	if err != nil {
		return err
	}
	if len(accounts) < minAccounts {
		return fmt.Errorf("%w: have %d, need %d", ledger.ErrNotEnoughAccountKeys, len(accounts), minAccounts)
	}
	ix, err := decodePayload(id, payload)
	if err != nil {
		return err
	}

	owner, vault := accounts[0], accounts[1]
	switch ix := ix.(type) {
	case Deposit:
		return deposit(ctx, ic, p.programID, owner, vault, ix.Amount)
	case Withdraw:
		return withdraw(ctx, ic, p.programID, owner, vault)
	default:
		return fmt.Errorf("%w: unknown instruction %T", ledger.ErrInvalidInstructionData, ix)
	}
}
