// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"crypto/sha256"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/consts"
)

const (
	DepositID  uint8 = 0
	WithdrawID uint8 = 1

	// VaultSeed prefixes the owner address when deriving a vault address.
	VaultSeed = "vault"

	DiscriminatorLen = 8
	// VaultDataLen is the discriminator followed by eight reserved bytes.
	VaultDataLen = DiscriminatorLen + consts.Uint64Len
)

var (
	DefaultProgramID = codec.MustParseAddress("BiiPnsjAjAbnCTXsUAuKyt6monTwcJ7zfWeWDYB2k1w7")

	// VaultDiscriminator marks initialized vault data.
	VaultDiscriminator = discriminator("account:Vault")
)

func discriminator(name string) [DiscriminatorLen]byte {
	h := sha256.Sum256([]byte(name))
	var d [DiscriminatorLen]byte
	copy(d[:], h[:DiscriminatorLen])
	return d
}
