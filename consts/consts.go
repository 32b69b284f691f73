// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen    = 1
	IntLen     = 4
	Uint64Len  = 8
	AddressLen = 32
	MaxInt     = int(^uint(0) >> 1)
	MaxUint64  = ^uint64(0)

	// MaxTransactionSize mirrors the ledger packet limit.
	MaxTransactionSize = 1232
)
