// Package buffers implements the growable column-buffer primitives of
// spec.md §3.4/§4.B: primitive/bytes/offsets buffers and the validity
// bitset that every nullable column carries alongside its data.
package buffers

import "errors"

// ErrNotNullable is returned when a null is pushed onto a non-nullable buffer
// (spec.md §3.4: "Pushing a null for a non-nullable builder is a fatal error").
var ErrNotNullable = errors.New("buffers: push null on non-nullable buffer")

// Bitset is an LSB-first validity bitmap: bit i lives in byte i/8, 1 means
// present (spec.md §3.4, §4.B).
type Bitset struct {
	bits []byte
	len  int
}

// NewBitset returns an empty Bitset.
func NewBitset() *Bitset { return &Bitset{} }

// Len returns the number of bits pushed so far.
func (b *Bitset) Len() int { return b.len }

// Reserve pre-sizes the underlying byte slice for `additional` more bits.
func (b *Bitset) Reserve(additional int) {
	need := (b.len+additional+7)/8 + 1
	if need > len(b.bits) {
		grown := make([]byte, need)
		copy(grown, b.bits)
		b.bits = grown
	}
}

// Push appends one bit.
func (b *Bitset) Push(v bool) {
	idx := b.len / 8
	if idx >= len(b.bits) {
		b.bits = append(b.bits, 0)
	}
	if v {
		b.bits[idx] |= 1 << uint(b.len%8)
	}
	b.len++
}

// Get returns the bit at position i.
func (b *Bitset) Get(i int) bool {
	idx := i / 8
	if idx >= len(b.bits) {
		return false
	}
	return b.bits[idx]&(1<<uint(i%8)) != 0
}

// Set overwrites the bit at position i, which must already exist.
func (b *Bitset) Set(i int, v bool) {
	idx := i / 8
	if v {
		b.bits[idx] |= 1 << uint(i%8)
	} else {
		b.bits[idx] &^= 1 << uint(i%8)
	}
}

// Bytes returns the packed byte slice backing the bitset (trimmed to len).
func (b *Bitset) Bytes() []byte {
	need := (b.len + 7) / 8
	if need > len(b.bits) {
		return b.bits
	}
	return b.bits[:need]
}

// Take detaches the current Bitset and leaves an empty successor in its
// place, mirroring array.Builder.NewArray()'s reset semantics (spec.md §3.5).
func (b *Bitset) Take() *Bitset {
	out := &Bitset{bits: b.bits, len: b.len}
	b.bits = nil
	b.len = 0
	return out
}
