// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/ava-labs/hypervault/consts"
)

const AddressLen = consts.AddressLen

// Address is the 32 byte identity of a ledger account. Account owners use
// their ed25519 public key; program derived addresses are off-curve.
type Address = solana.PublicKey

var EmptyAddress = Address{}

// ParseAddress accepts either the base58 form used by the ledger or a
// 0x-prefixed hex string.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, "0x") {
		b, err := LoadHex(s, AddressLen)
		if err != nil {
			return EmptyAddress, err
		}
		return Address(b), nil
	}
	return solana.PublicKeyFromBase58(s)
}

// MustParseAddress panics if s cannot be parsed. Only use it for constants.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}
