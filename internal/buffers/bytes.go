package buffers

// OffsetKind bounds the two Arrow offset widths (spec.md §3.1: O = i32 or i64).
type OffsetKind interface{ ~int32 | ~int64 }

// BytesBuffer is the `offsets: [O]` + `data: [u8]` pair backing Utf8/Binary
// columns of either width (spec.md §3.4).
type BytesBuffer[O OffsetKind] struct {
	data     []byte
	offsets  []O
	validity *Bitset
	nullable bool
}

// NewBytesBuffer returns an empty buffer with offsets = [0].
func NewBytesBuffer[O OffsetKind](nullable bool) *BytesBuffer[O] {
	b := &BytesBuffer[O]{offsets: []O{0}, nullable: nullable}
	if nullable {
		b.validity = NewBitset()
	}
	return b
}

func (b *BytesBuffer[O]) Len() int         { return len(b.offsets) - 1 }
func (b *BytesBuffer[O]) Data() []byte     { return b.data }
func (b *BytesBuffer[O]) Offsets() []O     { return b.offsets }
func (b *BytesBuffer[O]) Validity() *Bitset { return b.validity }

func (b *BytesBuffer[O]) Reserve(additional int) {
	if b.validity != nil {
		b.validity.Reserve(additional)
	}
}

// PushBytes appends one value.
func (b *BytesBuffer[O]) PushBytes(v []byte) {
	b.data = append(b.data, v...)
	b.offsets = append(b.offsets, O(len(b.data)))
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// PushNull appends an empty value with validity bit 0.
func (b *BytesBuffer[O]) PushNull() error {
	if !b.nullable {
		return ErrNotNullable
	}
	b.offsets = append(b.offsets, O(len(b.data)))
	b.validity.Push(false)
	return nil
}

// PushDefault appends an empty value as present.
func (b *BytesBuffer[O]) PushDefault() {
	b.offsets = append(b.offsets, O(len(b.data)))
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// Get returns the i-th value.
func (b *BytesBuffer[O]) Get(i int) []byte {
	return b.data[b.offsets[i]:b.offsets[i+1]]
}

// Take detaches the current contents and leaves an empty successor.
func (b *BytesBuffer[O]) Take() *BytesBuffer[O] {
	out := &BytesBuffer[O]{data: b.data, offsets: b.offsets, nullable: b.nullable}
	if b.validity != nil {
		out.validity = b.validity.Take()
	}
	b.data = nil
	b.offsets = []O{0}
	return out
}
