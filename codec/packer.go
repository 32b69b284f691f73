// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Packer is a wrapper struct for the Packer struct
// from avalanchego/utils/wrappers/packing.go. A bool [required] parameter is
// added to many unpacking methods, which signals the packer to add an error
// if the expected method does not unpack properly.
type Packer struct {
	p *wrappers.Packer
}

// NewReader returns a Packer instance with the current byte array [src] and a
// maximum size of [limit].
func NewReader(src []byte, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{Bytes: src, MaxSize: limit},
	}
}

// NewWriter returns a Packer instance with an initial size of [initial] and a
// maximum size of [limit].
func NewWriter(initial, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{MaxSize: limit, Bytes: make([]byte, 0, initial)},
	}
}

// Bytes returns the byte slice of the packer.
func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

// Err returns any error encountered while packing or unpacking.
func (p *Packer) Err() error {
	return p.p.Err
}

// Offset returns the number of bytes read so far.
func (p *Packer) Offset() int {
	return p.p.Offset
}

// Empty returns whether every byte has been read.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

func (p *Packer) addErr(err error) {
	p.p.Add(err)
}

func (p *Packer) PackBool(b bool) {
	p.p.PackBool(b)
}

func (p *Packer) UnpackBool() bool {
	return p.p.UnpackBool()
}

func (p *Packer) PackInt(v uint32) {
	p.p.PackInt(v)
}

// UnpackInt unpacks a uint32. If [required] is set, a zero value is an error.
func (p *Packer) UnpackInt(required bool) uint32 {
	v := p.p.UnpackInt()
	if required && v == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	return v
}

func (p *Packer) PackFixedBytes(b []byte) {
	p.p.PackFixedBytes(b)
}

// UnpackFixedBytes copies [size] bytes into [dest], which must be at least
// [size] long.
func (p *Packer) UnpackFixedBytes(size int, dest []byte) {
	copy(dest, p.p.UnpackFixedBytes(size))
}

func (p *Packer) PackAddress(a Address) {
	p.p.PackFixedBytes(a[:])
}

func (p *Packer) UnpackAddress(dest *Address) {
	copy((*dest)[:], p.p.UnpackFixedBytes(AddressLen))
}

func (p *Packer) PackBytes(b []byte) {
	p.p.PackBytes(b)
}

// UnpackBytes unpacks a length prefixed byte slice into [dest]. A negative
// [limit] disables the length check. If [required] is set, an empty slice is
// an error.
func (p *Packer) UnpackBytes(limit int, required bool, dest *[]byte) {
	start := p.p.Offset
	b := p.p.UnpackBytes()
	if p.p.Errored() {
		*dest = nil
		return
	}
	if limit >= 0 && len(b) > limit {
		p.p.Offset = start
		p.addErr(ErrTooManyItems)
		*dest = nil
		return
	}
	if required && len(b) == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	*dest = b
}
