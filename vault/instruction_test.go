// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/ledger"
)

func TestDecode(t *testing.T) {
	tests := map[string]struct {
		data     []byte
		expected Instruction
		err      error
	}{
		"empty": {
			err: ledger.ErrInvalidInstructionData,
		},
		"unknown opcode": {
			data: []byte{2},
			err:  ledger.ErrInvalidInstructionData,
		},
		"deposit": {
			data:     []byte{0, 0xF4, 0x01, 0, 0, 0, 0, 0, 0},
			expected: Deposit{Amount: 500},
		},
		"deposit max": {
			data:     []byte{0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			expected: Deposit{Amount: ^uint64(0)},
		},
		"deposit short payload": {
			data: []byte{0, 1, 2, 3},
			err:  ledger.ErrInvalidInstructionData,
		},
		"deposit long payload": {
			data: []byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0},
			err:  ledger.ErrInvalidInstructionData,
		},
		"deposit no payload": {
			data: []byte{0},
			err:  ledger.ErrInvalidInstructionData,
		},
		"deposit zero": {
			data: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0},
			err:  ledger.ErrInvalidAccountData,
		},
		"withdraw": {
			data:     []byte{1},
			expected: Withdraw{},
		},
		"withdraw trailing bytes": {
			data:     []byte{1, 9, 9},
			expected: Withdraw{},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			ix, err := Decode(tt.data)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.expected, ix)
		})
	}
}

func TestInstructionBytes(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0, 0xF4, 0x01, 0, 0, 0, 0, 0, 0}, Deposit{Amount: 500}.Bytes())
	require.Equal([]byte{1}, Withdraw{}.Bytes())

	ix, err := Decode(Deposit{Amount: 12_345}.Bytes())
	require.NoError(err)
	require.Equal(Deposit{Amount: 12_345}, ix)
}

func TestInstructionBuilders(t *testing.T) {
	require := require.New(t)

	owner := codec.Address{7}
	vault, _, err := DeriveVaultAddress(DefaultProgramID, owner)
	require.NoError(err)

	dep, err := NewDepositInstruction(DefaultProgramID, owner, 10)
	require.NoError(err)
	require.Equal(DefaultProgramID, dep.ProgramID)
	require.Equal([]ledger.AccountMeta{
		{Address: owner, IsSigner: true, IsWritable: true},
		{Address: vault, IsWritable: true},
		{Address: DefaultProgramID},
		{Address: ledger.SystemProgramID},
	}, dep.Accounts)
	require.Equal(Deposit{Amount: 10}.Bytes(), dep.Data)

	wd, err := NewWithdrawInstruction(DefaultProgramID, owner)
	require.NoError(err)
	require.Equal([]ledger.AccountMeta{
		{Address: owner, IsSigner: true, IsWritable: true},
		{Address: vault, IsWritable: true},
		{Address: DefaultProgramID},
	}, wd.Accounts)
	require.Equal([]byte{WithdrawID}, wd.Data)
}
