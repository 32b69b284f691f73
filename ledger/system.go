// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"go.uber.org/zap"

	"github.com/ava-labs/hypervault/codec"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// MaxPermittedDataLength is the largest data region an account may hold.
const MaxPermittedDataLength uint64 = 10 * 1024 * 1024

var (
	SystemProgramID = solana.SystemProgramID

	// NativeLoaderID owns the accounts of built-in programs.
	NativeLoaderID = solana.MustPublicKeyFromBase58("NativeLoader1111111111111111111111111111111")
)

// System instruction tags. Each is encoded as a little-endian u32.
const (
	SystemCreateAccount uint32 = 0
	SystemAssign        uint32 = 1
	SystemTransfer      uint32 = 2
	SystemAllocate      uint32 = 8

	systemTagLen = 4
)

type createAccountArgs struct {
	Lamports uint64
	Space    uint64
	Owner    codec.Address
}

type assignArgs struct {
	Owner codec.Address
}

type transferArgs struct {
	Lamports uint64
}

type allocateArgs struct {
	Space uint64
}

func systemInstruction(tag uint32, args any, accounts ...AccountMeta) Instruction {
	payload, err := borsh.Serialize(args)
	if err != nil {
		// Argument structs only hold fixed size fields.
		panic(err)
	}
	data := make([]byte, systemTagLen, systemTagLen+len(payload))
	binary.LittleEndian.PutUint32(data, tag)
	return Instruction{
		ProgramID: SystemProgramID,
		Accounts:  accounts,
		Data:      append(data, payload...),
	}
}

// CreateAccount funds [to] with [lamports] from [from], allocates [space]
// bytes of data and assigns it to [owner]. Both accounts must sign.
func CreateAccount(from, to codec.Address, lamports uint64, space uint64, owner codec.Address) Instruction {
	return systemInstruction(
		SystemCreateAccount,
		createAccountArgs{Lamports: lamports, Space: space, Owner: owner},
		NewAccountMeta(from, true, true),
		NewAccountMeta(to, true, true),
	)
}

func Transfer(from, to codec.Address, lamports uint64) Instruction {
	return systemInstruction(
		SystemTransfer,
		transferArgs{Lamports: lamports},
		NewAccountMeta(from, true, true),
		NewAccountMeta(to, false, true),
	)
}

func Assign(account, owner codec.Address) Instruction {
	return systemInstruction(
		SystemAssign,
		assignArgs{Owner: owner},
		NewAccountMeta(account, true, true),
	)
}

func Allocate(account codec.Address, space uint64) Instruction {
	return systemInstruction(
		SystemAllocate,
		allocateArgs{Space: space},
		NewAccountMeta(account, true, true),
	)
}

var _ Program = (*SystemProgram)(nil)

// SystemProgram owns every plain account and is the only program that can
// create accounts or move lamports out of them.
type SystemProgram struct{}

func (SystemProgram) Process(_ context.Context, ic InvokeContext, accounts []*AccountInfo, data []byte) error {
	if len(data) < systemTagLen {
		return ErrInvalidInstructionData
	}
	tag := binary.LittleEndian.Uint32(data)
	payload := data[systemTagLen:]

	switch tag {
	case SystemCreateAccount:
		var args createAccountArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		if len(accounts) < 2 {
			return ErrNotEnoughAccountKeys
		}
		return createAccount(ic, accounts[0], accounts[1], args)
	case SystemAssign:
		var args assignArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		if len(accounts) < 1 {
			return ErrNotEnoughAccountKeys
		}
		return assign(accounts[0], args.Owner)
	case SystemTransfer:
		var args transferArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		if len(accounts) < 2 {
			return ErrNotEnoughAccountKeys
		}
		return transfer(ic, accounts[0], accounts[1], args.Lamports)
	case SystemAllocate:
		var args allocateArgs
		if err := decodeArgs(payload, &args); err != nil {
			return err
		}
		if len(accounts) < 1 {
			return ErrNotEnoughAccountKeys
		}
		return allocate(accounts[0], args.Space)
	default:
		return fmt.Errorf("%w: unknown system instruction %d", ErrInvalidInstructionData, tag)
	}
}

func decodeArgs(payload []byte, args any) error {
	if err := borsh.Deserialize(args, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstructionData, err)
	}
	return nil
}

func createAccount(ic InvokeContext, from, to *AccountInfo, args createAccountArgs) error {
	if !to.IsSigner() {
		return fmt.Errorf("%w: create account %s", ErrMissingRequiredSignature, to.Key())
	}
	if to.Lamports() > 0 || to.DataLen() > 0 || !to.IsOwnedBy(SystemProgramID) {
		ic.Log().Debug("create account: account already in use",
			zap.Stringer("address", to.Key()),
		)
		return fmt.Errorf("%w: %s", ErrAccountAlreadyInUse, to.Key())
	}
	if minimum := ic.Rent().MinimumBalance(args.Space); args.Lamports < minimum {
		return fmt.Errorf("%w: have %d, need %d", ErrAccountNotRentExempt, args.Lamports, minimum)
	}
	if err := allocate(to, args.Space); err != nil {
		return err
	}
	if err := assign(to, args.Owner); err != nil {
		return err
	}
	return transfer(ic, from, to, args.Lamports)
}

func assign(account *AccountInfo, owner codec.Address) error {
	if account.Owner() == owner {
		return nil
	}
	if !account.IsSigner() {
		return fmt.Errorf("%w: assign %s", ErrMissingRequiredSignature, account.Key())
	}
	if !account.IsOwnedBy(SystemProgramID) {
		return fmt.Errorf("%w: %s", ErrModifiedProgramID, account.Key())
	}
	account.SetOwner(owner)
	return nil
}

func allocate(account *AccountInfo, space uint64) error {
	if !account.IsSigner() {
		return fmt.Errorf("%w: allocate %s", ErrMissingRequiredSignature, account.Key())
	}
	if account.DataLen() > 0 || !account.IsOwnedBy(SystemProgramID) {
		return fmt.Errorf("%w: %s", ErrAccountAlreadyInUse, account.Key())
	}
	if space > MaxPermittedDataLength {
		return fmt.Errorf("%w: %d > %d", ErrAccountDataTooLarge, space, MaxPermittedDataLength)
	}
	account.Realloc(int(space))
	return nil
}

func transfer(ic InvokeContext, from, to *AccountInfo, lamports uint64) error {
	if !from.IsSigner() {
		return fmt.Errorf("%w: transfer from %s", ErrMissingRequiredSignature, from.Key())
	}
	if from.DataLen() > 0 {
		return fmt.Errorf("%w: transfer from an account that carries data", ErrInvalidArgument)
	}
	if lamports > from.Lamports() {
		ic.Log().Debug("transfer: insufficient lamports",
			zap.Stringer("from", from.Key()),
			zap.Uint64("balance", from.Lamports()),
			zap.Uint64("lamports", lamports),
		)
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, from.Lamports(), lamports)
	}
	// from and to may name the same account, so debit before reading the
	// destination balance.
	from.SetLamports(from.Lamports() - lamports)
	credited, err := smath.Add(to.Lamports(), lamports)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	to.SetLamports(credited)
	return nil
}
