// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"

	"github.com/ava-labs/hypervault/codec"
	"github.com/ava-labs/hypervault/consts"
	"github.com/ava-labs/hypervault/crypto"
	"github.com/ava-labs/hypervault/crypto/ed25519"
)

const (
	MaxInstructions = 64
	MaxAccounts     = 64
)

// Message is the signed portion of a [Transaction].
type Message struct {
	Instructions []Instruction
}

// AccountKeys returns every address the message references, programs
// included, in order of first appearance.
func (m *Message) AccountKeys() []codec.Address {
	seen := make(map[codec.Address]struct{})
	keys := []codec.Address{}
	add := func(addr codec.Address) {
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		keys = append(keys, addr)
	}
	for _, ix := range m.Instructions {
		add(ix.ProgramID)
		for _, meta := range ix.Accounts {
			add(meta.Address)
		}
	}
	return keys
}

// Signers returns every address marked as a signer, in order of first
// appearance. The transaction carries one signature per signer in this
// order.
func (m *Message) Signers() []codec.Address {
	seen := make(map[codec.Address]struct{})
	signers := []codec.Address{}
	for _, ix := range m.Instructions {
		for _, meta := range ix.Accounts {
			if !meta.IsSigner {
				continue
			}
			if _, ok := seen[meta.Address]; ok {
				continue
			}
			seen[meta.Address] = struct{}{}
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

func (m *Message) Marshal(p *codec.Packer) {
	p.PackInt(uint32(len(m.Instructions)))
	for _, ix := range m.Instructions {
		p.PackAddress(ix.ProgramID)
		p.PackInt(uint32(len(ix.Accounts)))
		for _, meta := range ix.Accounts {
			p.PackAddress(meta.Address)
			p.PackBool(meta.IsSigner)
			p.PackBool(meta.IsWritable)
		}
		p.PackBytes(ix.Data)
	}
}

func (m *Message) Bytes() ([]byte, error) {
	p := codec.NewWriter(consts.MaxTransactionSize, consts.MaxTransactionSize)
	m.Marshal(p)
	return p.Bytes(), p.Err()
}

func UnmarshalMessage(p *codec.Packer) (*Message, error) {
	count := p.UnpackInt(true)
	if count > MaxInstructions {
		return nil, fmt.Errorf("%w: %d", ErrTooManyInstructions, count)
	}
	m := &Message{Instructions: make([]Instruction, 0, count)}
	for i := uint32(0); i < count && p.Err() == nil; i++ {
		var ix Instruction
		p.UnpackAddress(&ix.ProgramID)
		accounts := p.UnpackInt(false)
		if accounts > MaxAccounts {
			return nil, fmt.Errorf("%w: %d", ErrTooManyAccounts, accounts)
		}
		ix.Accounts = make([]AccountMeta, accounts)
		for j := range ix.Accounts {
			p.UnpackAddress(&ix.Accounts[j].Address)
			ix.Accounts[j].IsSigner = p.UnpackBool()
			ix.Accounts[j].IsWritable = p.UnpackBool()
		}
		p.UnpackBytes(consts.MaxTransactionSize, false, &ix.Data)
		m.Instructions = append(m.Instructions, ix)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

type Transaction struct {
	Message    *Message
	Signatures []ed25519.Signature
}

func NewTransaction(instructions ...Instruction) *Transaction {
	return &Transaction{Message: &Message{Instructions: instructions}}
}

// Sign signs the message with the key of every signer. [keys] may be given
// in any order and may include unused keys.
func (t *Transaction) Sign(keys ...ed25519.PrivateKey) error {
	msg, err := t.Message.Bytes()
	if err != nil {
		return err
	}
	byAddress := make(map[codec.Address]ed25519.PrivateKey, len(keys))
	for _, k := range keys {
		byAddress[k.Address()] = k
	}
	signers := t.Message.Signers()
	sigs := make([]ed25519.Signature, len(signers))
	for i, signer := range signers {
		k, ok := byAddress[signer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSigner, signer)
		}
		sigs[i] = ed25519.Sign(msg, k)
	}
	t.Signatures = sigs
	return nil
}

// Verify checks one signature per signer over the message bytes.
func (t *Transaction) Verify() error {
	if len(t.Message.Instructions) == 0 {
		return ErrNoInstructions
	}
	signers := t.Message.Signers()
	if len(signers) != len(t.Signatures) {
		return fmt.Errorf("%w: signers=%d signatures=%d", ErrSignatureCount, len(signers), len(t.Signatures))
	}
	msg, err := t.Message.Bytes()
	if err != nil {
		return err
	}
	if len(signers) >= ed25519.MinBatchSize {
		batch := ed25519.NewBatch(len(signers))
		for i, signer := range signers {
			batch.Add(msg, ed25519.PublicKey(signer), t.Signatures[i])
		}
		if !batch.Verify() {
			return fmt.Errorf("%w: %w", ErrMissingRequiredSignature, crypto.ErrInvalidSignature)
		}
		return nil
	}
	for i, signer := range signers {
		if !ed25519.Verify(msg, ed25519.PublicKey(signer), t.Signatures[i]) {
			return fmt.Errorf("%w: %w: %s", ErrMissingRequiredSignature, crypto.ErrInvalidSignature, signer)
		}
	}
	return nil
}

func (t *Transaction) Bytes() ([]byte, error) {
	p := codec.NewWriter(consts.MaxTransactionSize, consts.MaxTransactionSize)
	t.Message.Marshal(p)
	p.PackInt(uint32(len(t.Signatures)))
	for _, sig := range t.Signatures {
		p.PackFixedBytes(sig[:])
	}
	return p.Bytes(), p.Err()
}

func UnmarshalTransaction(b []byte) (*Transaction, error) {
	p := codec.NewReader(b, consts.MaxTransactionSize)
	msg, err := UnmarshalMessage(p)
	if err != nil {
		return nil, err
	}
	count := p.UnpackInt(false)
	if count > MaxAccounts {
		return nil, fmt.Errorf("%w: %d signatures", ErrTooManyAccounts, count)
	}
	sigs := make([]ed25519.Signature, count)
	for i := range sigs {
		p.UnpackFixedBytes(ed25519.SignatureLen, sigs[i][:])
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %d", ErrTrailingBytes, len(b)-p.Offset())
	}
	return &Transaction{Message: msg, Signatures: sigs}, nil
}
