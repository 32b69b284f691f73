// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/hypervault/codec"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// MaxInvokeStackHeight bounds the number of nested program frames,
// including the top-level instruction.
const MaxInvokeStackHeight = 5

// InvokeContext is the host surface available to a running program.
type InvokeContext interface {
	// ProgramID is the id of the program currently executing.
	ProgramID() codec.Address
	Rent() RentSchedule
	Log() logging.Logger

	// Invoke calls another program with a subset of the current accounts.
	// Privileges may not exceed those the caller holds.
	Invoke(ctx context.Context, ix Instruction) error
	// InvokeSigned is Invoke where each entry of [signerSeeds] additionally
	// grants signer status to CreateProgramAddress(seeds, ProgramID()).
	InvokeSigned(ctx context.Context, ix Instruction, signerSeeds ...[][]byte) error
}

type snapshot struct {
	lamports   uint64
	owner      codec.Address
	data       []byte
	executable bool
}

func takeSnapshot(a *Account) snapshot {
	return snapshot{
		lamports:   a.Lamports,
		owner:      a.Owner,
		data:       bytes.Clone(a.Data),
		executable: a.Executable,
	}
}

func (s snapshot) changed(a *Account) bool {
	return s.lamports != a.Lamports ||
		s.owner != a.Owner ||
		s.executable != a.Executable ||
		!bytes.Equal(s.data, a.Data)
}

type privilege struct {
	signer   bool
	writable bool
}

// frame is one program invocation on the stack.
type frame struct {
	programID  codec.Address
	accounts   []*AccountInfo
	privileges map[codec.Address]privilege
	pre        map[codec.Address]snapshot
}

func newFrame(programID codec.Address, accounts []*AccountInfo) *frame {
	f := &frame{
		programID:  programID,
		accounts:   accounts,
		privileges: make(map[codec.Address]privilege, len(accounts)),
	}
	for _, a := range accounts {
		p := f.privileges[a.key]
		p.signer = p.signer || a.isSigner
		p.writable = p.writable || a.isWritable
		f.privileges[a.key] = p
	}
	f.resnapshot()
	return f
}

func (f *frame) resnapshot() {
	f.pre = make(map[codec.Address]snapshot, len(f.privileges))
	for _, a := range f.accounts {
		if _, ok := f.pre[a.key]; ok {
			continue
		}
		f.pre[a.key] = takeSnapshot(a.account)
	}
}

// verify checks every account of the frame against the state it had when
// the frame started (or when it last returned from a nested call).
func (f *frame) verify() error {
	var (
		preSum, postSum uint64
		err             error
		seen            = make(map[codec.Address]struct{}, len(f.pre))
	)
	for _, a := range f.accounts {
		if _, ok := seen[a.key]; ok {
			continue
		}
		seen[a.key] = struct{}{}

		pre := f.pre[a.key]
		if err := verifyAccount(f.programID, pre, a.account, f.privileges[a.key].writable); err != nil {
			return fmt.Errorf("%w: account %s", err, a.key)
		}
		preSum, err = smath.Add(preSum, pre.lamports)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
		}
		postSum, err = smath.Add(postSum, a.account.Lamports)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
		}
	}
	if preSum != postSum {
		return fmt.Errorf("%w: before=%d after=%d", ErrUnbalancedInstruction, preSum, postSum)
	}
	return nil
}

func verifyAccount(programID codec.Address, pre snapshot, post *Account, writable bool) error {
	owned := pre.owner == programID
	if pre.owner != post.Owner {
		if !owned || !writable || pre.executable || !isZeroed(post.Data) {
			return ErrModifiedProgramID
		}
	}
	if post.Lamports < pre.lamports && !owned {
		return ErrExternalAccountLamportSpend
	}
	if post.Lamports != pre.lamports && (!writable || pre.executable) {
		return ErrReadonlyLamportChange
	}
	if pre.executable != post.Executable {
		return ErrExecutableModified
	}
	if !bytes.Equal(pre.data, post.Data) {
		if pre.executable {
			return ErrExecutableModified
		}
		if !writable || !owned {
			return ErrExternalAccountDataModified
		}
	}
	return nil
}

func isZeroed(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

type invokeContext struct {
	e *executor
	f *frame
}

func (ic *invokeContext) ProgramID() codec.Address {
	return ic.f.programID
}

func (ic *invokeContext) Rent() RentSchedule {
	return ic.e.l.rent
}

func (ic *invokeContext) Log() logging.Logger {
	return ic.e.l.log
}

func (ic *invokeContext) Invoke(ctx context.Context, ix Instruction) error {
	return ic.e.invoke(ctx, ic.f, ix, nil)
}

func (ic *invokeContext) InvokeSigned(ctx context.Context, ix Instruction, signerSeeds ...[][]byte) error {
	return ic.e.invoke(ctx, ic.f, ix, signerSeeds)
}

// executor runs the instructions of one transaction against a set of
// loaded accounts.
type executor struct {
	l        *Ledger
	accounts map[codec.Address]*Account
	stack    []*frame
}

func (e *executor) process(ctx context.Context, programID codec.Address, accounts []*AccountInfo, data []byte) error {
	if len(e.stack) >= MaxInvokeStackHeight {
		return fmt.Errorf("%w: height=%d", ErrCallDepth, len(e.stack))
	}
	program, ok := e.l.programs[programID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedProgramID, programID)
	}
	f := newFrame(programID, accounts)
	e.stack = append(e.stack, f)
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
	}()

	e.l.metrics.instructions.Inc()
	if err := program.Process(ctx, &invokeContext{e: e, f: f}, accounts, data); err != nil {
		return err
	}
	return f.verify()
}

func (e *executor) invoke(ctx context.Context, caller *frame, ix Instruction, signerSeeds [][][]byte) error {
	e.l.metrics.cpiCalls.Inc()
	if _, ok := caller.privileges[ix.ProgramID]; !ok {
		return fmt.Errorf("%w: program %s", ErrMissingAccount, ix.ProgramID)
	}

	signers := make(map[codec.Address]struct{}, len(signerSeeds))
	for _, seeds := range signerSeeds {
		addr, err := CreateProgramAddress(seeds, caller.programID)
		if err != nil {
			return err
		}
		signers[addr] = struct{}{}
	}

	infos := make([]*AccountInfo, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		p, ok := caller.privileges[meta.Address]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingAccount, meta.Address)
		}
		if meta.IsWritable && !p.writable {
			return fmt.Errorf("%w: %s is not writable", ErrPrivilegeEscalation, meta.Address)
		}
		if _, derived := signers[meta.Address]; meta.IsSigner && !p.signer && !derived {
			return fmt.Errorf("%w: %s did not sign", ErrPrivilegeEscalation, meta.Address)
		}
		infos = append(infos, NewAccountInfo(meta.Address, meta.IsSigner, meta.IsWritable, e.accounts[meta.Address]))
	}

	// Changes made by the caller so far are checked against its own
	// privileges before the callee can build on them.
	if err := caller.verify(); err != nil {
		return err
	}
	if err := e.process(ctx, ix.ProgramID, infos, ix.Data); err != nil {
		return err
	}
	caller.resnapshot()
	return nil
}
