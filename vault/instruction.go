// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"fmt"

	"github.com/near/borsh-go"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/consts"
	"github.com/ava-labs/hypervault/ledger"
)

var (
	_ Instruction = Deposit{}
	_ Instruction = Withdraw{}
)

// Instruction is implemented only by [Deposit] and [Withdraw].
type Instruction interface {
	ID() uint8
	Bytes() []byte

	isInstruction()
}

type Deposit struct {
	Amount uint64
}

func (Deposit) ID() uint8 {
	return DepositID
}

func (d Deposit) Bytes() []byte {
	amount, err := borsh.Serialize(d.Amount)
	if err != nil {
		panic(err)
	}
	return append([]byte{DepositID}, amount...)
}

func (Deposit) isInstruction() {}

// Withdraw moves everything above the minimum reserve back to the owner.
type Withdraw struct{}

func (Withdraw) ID() uint8 {
	return WithdrawID
}

func (Withdraw) Bytes() []byte {
	return []byte{WithdrawID}
}

func (Withdraw) isInstruction() {}

// Decode parses instruction data into a [Deposit] or [Withdraw].
func Decode(data []byte) (Instruction, error) {
	id, payload, err := splitOpcode(data)
	if err != nil {
		return nil, err
	}
	return decodePayload(id, payload)
}

func splitOpcode(data []byte) (uint8, []byte, error) {
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("%w: empty", ledger.ErrInvalidInstructionData)
	}
	switch id := data[0]; id {
	case DepositID, WithdrawID:
		return id, data[1:], nil
	default:
		return 0, nil, fmt.Errorf("%w: unknown opcode %d", ledger.ErrInvalidInstructionData, id)
	}
}

func decodePayload(id uint8, payload []byte) (Instruction, error) {
	if id == WithdrawID {
		// Trailing bytes are ignored.
		return Withdraw{}, nil
	}
	if len(payload) != consts.Uint64Len {
		return nil, fmt.Errorf("%w: amount is %d bytes", ledger.ErrInvalidInstructionData, len(payload))
	}
	var amount uint64
	if err := borsh.Deserialize(&amount, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrInvalidInstructionData, err)
	}
	if amount == 0 {
		return nil, fmt.Errorf("%w: zero amount", ledger.ErrInvalidAccountData)
	}
	return Deposit{Amount: amount}, nil
}

// NewDepositInstruction builds a deposit of [amount] from [owner] into its
// vault.
func NewDepositInstruction(programID codec.Address, owner codec.Address, amount uint64) (ledger.Instruction, error) {
	vault, _, err := DeriveVaultAddress(programID, owner)
	if err != nil {
		return ledger.Instruction{}, err
	}
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []ledger.AccountMeta{
			ledger.NewAccountMeta(owner, true, true),
			ledger.NewAccountMeta(vault, false, true),
			ledger.NewAccountMeta(programID, false, false),
			ledger.NewAccountMeta(ledger.SystemProgramID, false, false),
		},
		Data: Deposit{Amount: amount}.Bytes(),
	}, nil
}

// NewWithdrawInstruction builds a withdrawal of everything above the
// reserve from [owner]'s vault.
func NewWithdrawInstruction(programID codec.Address, owner codec.Address) (ledger.Instruction, error) {
	vault, _, err := DeriveVaultAddress(programID, owner)
	if err != nil {
		return ledger.Instruction{}, err
	}
	return ledger.Instruction{
		ProgramID: programID,
		Accounts: []ledger.AccountMeta{
			ledger.NewAccountMeta(owner, true, true),
			ledger.NewAccountMeta(vault, false, true),
			ledger.NewAccountMeta(programID, false, false),
		},
		Data: Withdraw{}.Bytes(),
	}, nil
}
