// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"errors"
	"fmt"
)

// ProgramError is the typed failure reported by a program or by the host
// while executing an instruction. Context is attached with fmt.Errorf("%w")
// and the kind is recovered with errors.Is or [ErrorKind].
type ProgramError uint32

const (
	ErrInvalidArgument ProgramError = iota + 1
	ErrInvalidInstructionData
	ErrInvalidAccountData
	ErrInvalidAccountOwner
	ErrNotEnoughAccountKeys
	ErrInsufficientFunds
	ErrMissingRequiredSignature
	ErrAccountAlreadyInUse
	ErrAccountNotRentExempt
	ErrInvalidSeeds
	ErrIncorrectProgramID
	ErrPrivilegeEscalation
	ErrExternalAccountLamportSpend
	ErrReadonlyLamportChange
	ErrExternalAccountDataModified
	ErrExecutableModified
	ErrModifiedProgramID
	ErrUnbalancedInstruction
	ErrUnsupportedProgramID
	ErrMissingAccount
	ErrCallDepth
	ErrAccountDataTooLarge
	ErrArithmeticOverflow
)

var programErrors = map[ProgramError]string{
	ErrInvalidArgument:             "invalid program argument",
	ErrInvalidInstructionData:      "invalid instruction data",
	ErrInvalidAccountData:          "invalid account data for instruction",
	ErrInvalidAccountOwner:         "invalid account owner",
	ErrNotEnoughAccountKeys:        "insufficient account keys for instruction",
	ErrInsufficientFunds:           "insufficient funds for instruction",
	ErrMissingRequiredSignature:    "missing required signature for instruction",
	ErrAccountAlreadyInUse:         "account already in use",
	ErrAccountNotRentExempt:        "account is not rent exempt",
	ErrInvalidSeeds:                "provided seeds do not result in a valid address",
	ErrIncorrectProgramID:          "incorrect program id for instruction",
	ErrPrivilegeEscalation:         "cross-program invocation with unauthorized signer or writable account",
	ErrExternalAccountLamportSpend: "instruction spent from the balance of an account it does not own",
	ErrReadonlyLamportChange:       "instruction changed the balance of a read-only account",
	ErrExternalAccountDataModified: "instruction modified data of an account it does not own",
	ErrExecutableModified:          "instruction changed an executable account",
	ErrModifiedProgramID:           "instruction illegally modified the program id of an account",
	ErrUnbalancedInstruction:       "sum of account balances before and after instruction do not match",
	ErrUnsupportedProgramID:        "unsupported program id",
	ErrMissingAccount:              "an account required by the instruction is missing",
	ErrCallDepth:                   "cross-program invocation call depth too deep",
	ErrAccountDataTooLarge:         "account data too large",
	ErrArithmeticOverflow:          "arithmetic overflowed",
}

func (e ProgramError) Error() string {
	if msg, ok := programErrors[e]; ok {
		return msg
	}
	return fmt.Sprintf("program error %d", uint32(e))
}

// ErrorKind returns the first [ProgramError] in err's chain.
func ErrorKind(err error) (ProgramError, bool) {
	var pe ProgramError
	if errors.As(err, &pe) {
		return pe, true
	}
	return 0, false
}

var (
	ErrNoInstructions      = errors.New("no instructions")
	ErrTooManyInstructions = errors.New("too many instructions")
	ErrTooManyAccounts     = errors.New("too many accounts")
	ErrSignatureCount      = errors.New("signature count does not match signers")
	ErrMissingSigner       = errors.New("missing private key for signer")
	ErrTrailingBytes       = errors.New("trailing bytes")
	ErrDuplicateProgram    = errors.New("program already registered")
	ErrDuplicateAllocation = errors.New("duplicate genesis allocation")
	ErrGenesisLoaded       = errors.New("genesis already loaded")
)
