// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "math"

const (
	// AccountStorageOverhead is the number of bytes charged for every
	// account on top of its data.
	AccountStorageOverhead uint64 = 128

	DefaultLamportsPerByteYear uint64  = 3480
	DefaultExemptionThreshold  float64 = 2.0
)

// RentSchedule determines the minimum balance an account must hold for its
// data to be retained.
type RentSchedule interface {
	MinimumBalance(dataLen uint64) uint64
}

type Rent struct {
	LamportsPerByteYear uint64  `json:"lamportsPerByteYear" yaml:"lamportsPerByteYear"`
	ExemptionThreshold  float64 `json:"exemptionThreshold"  yaml:"exemptionThreshold"`
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// MinimumBalance returns (overhead + dataLen) * lamportsPerByteYear *
// threshold, saturating at MaxUint64.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	bytes := float64(AccountStorageOverhead) + float64(dataLen)
	v := bytes * float64(r.LamportsPerByteYear) * r.ExemptionThreshold
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}
