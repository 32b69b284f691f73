// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/crypto/ed25519"
)

func TestProgramInvariants(t *testing.T) {
	var (
		owned    = codec.Address{0x01}
		foreign  = codec.Address{0x02}
		plain    = codec.Address{0x03}
		readonly = codec.Address{0x04}
	)
	tests := map[string]struct {
		process func(accounts []*AccountInfo) error
		err     error
		check   func(t *testing.T, l *Ledger)
	}{
		"debit owned credit plain": {
			process: func(accounts []*AccountInfo) error {
				accounts[0].SetLamports(accounts[0].Lamports() - 10)
				accounts[2].SetLamports(accounts[2].Lamports() + 10)
				return nil
			},
			check: func(t *testing.T, l *Ledger) {
				requireLamports(t, l, owned, 90)
				requireLamports(t, l, plain, 110)
			},
		},
		"modify owned data": {
			process: func(accounts []*AccountInfo) error {
				accounts[0].Data()[0] = 9
				return nil
			},
			check: func(t *testing.T, l *Ledger) {
				acct, err := l.GetAccount(context.Background(), owned)
				require.NoError(t, err)
				require.Equal(t, []byte{9, 0, 0, 0}, acct.Data)
			},
		},
		"reassign zeroed owned account": {
			process: func(accounts []*AccountInfo) error {
				accounts[0].SetOwner(otherProgramID)
				return nil
			},
			check: func(t *testing.T, l *Ledger) {
				acct, err := l.GetAccount(context.Background(), owned)
				require.NoError(t, err)
				require.Equal(t, otherProgramID, acct.Owner)
			},
		},
		"debit foreign": {
			process: func(accounts []*AccountInfo) error {
				accounts[1].SetLamports(accounts[1].Lamports() - 10)
				accounts[0].SetLamports(accounts[0].Lamports() + 10)
				return nil
			},
			err: ErrExternalAccountLamportSpend,
		},
		"credit readonly": {
			process: func(accounts []*AccountInfo) error {
				accounts[0].SetLamports(accounts[0].Lamports() - 10)
				accounts[3].SetLamports(accounts[3].Lamports() + 10)
				return nil
			},
			err: ErrReadonlyLamportChange,
		},
		"mint lamports": {
			process: func(accounts []*AccountInfo) error {
				accounts[0].SetLamports(accounts[0].Lamports() + 10)
				return nil
			},
			err: ErrUnbalancedInstruction,
		},
		"modify foreign data": {
			process: func(accounts []*AccountInfo) error {
				accounts[1].Data()[0] = 2
				return nil
			},
			err: ErrExternalAccountDataModified,
		},
		"modify readonly data": {
			process: func(accounts []*AccountInfo) error {
				accounts[3].Data()[0] = 2
				return nil
			},
			err: ErrExternalAccountDataModified,
		},
		"reassign foreign": {
			process: func(accounts []*AccountInfo) error {
				accounts[1].SetOwner(testProgramID)
				return nil
			},
			err: ErrModifiedProgramID,
		},
		"reassign owned with data": {
			process: func(accounts []*AccountInfo) error {
				accounts[0].Data()[0] = 1
				accounts[0].SetOwner(otherProgramID)
				return nil
			},
			err: ErrModifiedProgramID,
		},
		"program error": {
			process: func([]*AccountInfo) error {
				return ErrInvalidArgument
			},
			err: ErrInvalidArgument,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			l, db := newTestLedger(t, DefaultRent())
			putAccount(t, db, owned, &Account{Lamports: 100, Data: make([]byte, 4), Owner: testProgramID})
			putAccount(t, db, foreign, &Account{Lamports: 100, Data: []byte{1}, Owner: otherProgramID})
			putAccount(t, db, plain, NewSystemAccount(100))
			putAccount(t, db, readonly, &Account{Lamports: 100, Data: []byte{1}, Owner: testProgramID})
			require.NoError(l.Register(testProgramID, ProgramFunc(
				func(_ context.Context, _ InvokeContext, accounts []*AccountInfo, _ []byte) error {
					return tt.process(accounts)
				},
			)))

			_, err := l.Execute(context.Background(), NewTransaction(Instruction{
				ProgramID: testProgramID,
				Accounts: []AccountMeta{
					NewAccountMeta(owned, false, true),
					NewAccountMeta(foreign, false, true),
					NewAccountMeta(plain, false, true),
					NewAccountMeta(readonly, false, false),
				},
			}))
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				for _, addr := range []codec.Address{owned, foreign, plain, readonly} {
					requireLamports(t, l, addr, 100)
				}
				return
			}
			tt.check(t, l)
		})
	}
}

func TestCrossProgramInvocation(t *testing.T) {
	const reserve = 50

	var (
		payer  = newKey(t)
		reader = newKey(t)
		seeds  = [][]byte{[]byte("seed"), payer.Address().Bytes()}
	)
	pda, bump, err := FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)
	signerSeeds := append(seeds, []byte{bump})
	_, otherBump, err := FindProgramAddress([][]byte{[]byte("other")}, testProgramID)
	require.NoError(t, err)
	otherSeeds := [][]byte{[]byte("other"), {otherBump}}

	tests := map[string]struct {
		process func(ctx context.Context, ic InvokeContext, accounts []*AccountInfo) error
		err     error
		check   func(t *testing.T, l *Ledger)
	}{
		"transfer from signer": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, Transfer(payer.Address(), pda, 10))
			},
			check: func(t *testing.T, l *Ledger) {
				requireLamports(t, l, payer.Address(), 990)
				requireLamports(t, l, pda, 10)
			},
		},
		"create derived account": {
			process: func(ctx context.Context, ic InvokeContext, accounts []*AccountInfo) error {
				ix := CreateAccount(payer.Address(), pda, reserve, 8, ic.ProgramID())
				if err := ic.InvokeSigned(ctx, ix, signerSeeds); err != nil {
					return err
				}
				// The callee made the program the owner.
				accounts[1].Data()[0] = 7
				return nil
			},
			check: func(t *testing.T, l *Ledger) {
				acct, err := l.GetAccount(context.Background(), pda)
				require.NoError(t, err)
				require.Equal(t, testProgramID, acct.Owner)
				require.Equal(t, uint64(reserve), acct.Lamports)
				require.Equal(t, []byte{7, 0, 0, 0, 0, 0, 0, 0}, acct.Data)
				requireLamports(t, l, payer.Address(), 1_000-reserve)
			},
		},
		"create derived account without seeds": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, CreateAccount(payer.Address(), pda, reserve, 8, ic.ProgramID()))
			},
			err: ErrPrivilegeEscalation,
		},
		"create derived account with wrong seeds": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				ix := CreateAccount(payer.Address(), pda, reserve, 8, ic.ProgramID())
				return ic.InvokeSigned(ctx, ix, otherSeeds)
			},
			err: ErrPrivilegeEscalation,
		},
		"writable escalation": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, Transfer(payer.Address(), reader.Address(), 10))
			},
			err: ErrPrivilegeEscalation,
		},
		"signer escalation": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, Transfer(pda, payer.Address(), 0))
			},
			err: ErrPrivilegeEscalation,
		},
		"program not passed": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, Instruction{ProgramID: otherProgramID})
			},
			err: ErrMissingAccount,
		},
		"account not passed": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, Transfer(payer.Address(), codec.Address{0x09}, 1))
			},
			err: ErrMissingAccount,
		},
		"caller changes verified first": {
			process: func(ctx context.Context, ic InvokeContext, accounts []*AccountInfo) error {
				accounts[0].SetLamports(accounts[0].Lamports() - 1)
				accounts[1].SetLamports(accounts[1].Lamports() + 1)
				return ic.Invoke(ctx, Transfer(payer.Address(), pda, 10))
			},
			err: ErrExternalAccountLamportSpend,
		},
		"callee error": {
			process: func(ctx context.Context, ic InvokeContext, _ []*AccountInfo) error {
				return ic.Invoke(ctx, Transfer(payer.Address(), pda, 1_001))
			},
			err: ErrInsufficientFunds,
		},
		"unbounded recursion": {
			process: func(ctx context.Context, ic InvokeContext, accounts []*AccountInfo) error {
				metas := make([]AccountMeta, len(accounts))
				for i, a := range accounts {
					metas[i] = NewAccountMeta(a.Key(), a.IsSigner(), a.IsWritable())
				}
				return ic.Invoke(ctx, Instruction{ProgramID: ic.ProgramID(), Accounts: metas})
			},
			err: ErrCallDepth,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			l, db := newTestLedger(t, fixedRent(reserve))
			putAccount(t, db, payer.Address(), NewSystemAccount(1_000))
			require.NoError(l.Register(testProgramID, ProgramFunc(
				func(ctx context.Context, ic InvokeContext, accounts []*AccountInfo, _ []byte) error {
					return tt.process(ctx, ic, accounts)
				},
			)))

			_, err := execute(l, []ed25519.PrivateKey{payer}, Instruction{
				ProgramID: testProgramID,
				Accounts: []AccountMeta{
					NewAccountMeta(payer.Address(), true, true),
					NewAccountMeta(pda, false, true),
					NewAccountMeta(SystemProgramID, false, false),
					NewAccountMeta(testProgramID, false, false),
					NewAccountMeta(reader.Address(), false, false),
				},
			})
			require.ErrorIs(err, tt.err)
			if tt.err != nil {
				requireLamports(t, l, payer.Address(), 1_000)
				requireLamports(t, l, pda, 0)
				return
			}
			tt.check(t, l)
		})
	}
}

func TestFindProgramAddress(t *testing.T) {
	require := require.New(t)

	seeds := [][]byte{[]byte("vault"), {1, 2, 3}}
	addr, bump, err := FindProgramAddress(seeds, testProgramID)
	require.NoError(err)
	require.False(ed25519.IsOnCurve(addr[:]))

	created, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgramID)
	require.NoError(err)
	require.Equal(addr, created)

	_, err = CreateProgramAddress([][]byte{make([]byte, 33)}, testProgramID)
	require.ErrorIs(err, ErrInvalidSeeds)
}
