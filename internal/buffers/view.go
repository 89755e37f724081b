package buffers

// viewSpillBlock caps how many bytes accumulate in one spill buffer before
// a new one is started (spec.md §3.4 BinaryView encoding; the exact block
// size is an implementation choice, not a wire invariant -- the bit-exact
// 128-bit descriptor layout is only required at the Arrow FFI boundary,
// which arrowio materializes with the real arrow-go view builders).
const viewSpillBlock = 32 * 1024

// ViewDescriptor is the logical form of a BinaryView/Utf8View element: short
// values (<=12 bytes) are inlined, longer ones are spilled into a numbered
// buffer and referenced by a 4-byte prefix + buffer index + offset
// (spec.md §3.4).
type ViewDescriptor struct {
	Length      int32
	Inline      [12]byte
	Prefix      [4]byte
	BufferIndex int32
	Offset      int32
}

// BytesViewBuffer backs Utf8View/BinaryView columns.
type BytesViewBuffer struct {
	descriptors []ViewDescriptor
	buffers     [][]byte
	validity    *Bitset
	nullable    bool
}

func NewBytesViewBuffer(nullable bool) *BytesViewBuffer {
	b := &BytesViewBuffer{nullable: nullable, buffers: [][]byte{{}}}
	if nullable {
		b.validity = NewBitset()
	}
	return b
}

func (b *BytesViewBuffer) Len() int             { return len(b.descriptors) }
func (b *BytesViewBuffer) Validity() *Bitset     { return b.validity }
func (b *BytesViewBuffer) Descriptors() []ViewDescriptor { return b.descriptors }
func (b *BytesViewBuffer) Buffers() [][]byte     { return b.buffers }

// PushBytes appends one value, inlining it if short or spilling it otherwise.
func (b *BytesViewBuffer) PushBytes(v []byte) {
	d := ViewDescriptor{Length: int32(len(v))}
	if len(v) <= 12 {
		copy(d.Inline[:], v)
	} else {
		copy(d.Prefix[:], v[:4])
		cur := b.buffers[len(b.buffers)-1]
		if len(cur)+len(v) > viewSpillBlock && len(cur) > 0 {
			b.buffers = append(b.buffers, nil)
			cur = b.buffers[len(b.buffers)-1]
		}
		d.BufferIndex = int32(len(b.buffers) - 1)
		d.Offset = int32(len(cur))
		b.buffers[len(b.buffers)-1] = append(cur, v...)
	}
	b.descriptors = append(b.descriptors, d)
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// PushNull appends an empty descriptor with validity bit 0.
func (b *BytesViewBuffer) PushNull() error {
	if !b.nullable {
		return ErrNotNullable
	}
	b.descriptors = append(b.descriptors, ViewDescriptor{})
	b.validity.Push(false)
	return nil
}

// PushDefault appends an empty, present descriptor.
func (b *BytesViewBuffer) PushDefault() {
	b.descriptors = append(b.descriptors, ViewDescriptor{})
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// Get reconstructs the i-th value's bytes.
func (b *BytesViewBuffer) Get(i int) []byte {
	d := b.descriptors[i]
	if d.Length <= 12 {
		return append([]byte{}, d.Inline[:d.Length]...)
	}
	buf := b.buffers[d.BufferIndex]
	return append([]byte(nil), buf[d.Offset:d.Offset+d.Length]...)
}

// Take detaches the current contents and leaves an empty successor.
func (b *BytesViewBuffer) Take() *BytesViewBuffer {
	out := &BytesViewBuffer{descriptors: b.descriptors, buffers: b.buffers, nullable: b.nullable}
	if b.validity != nil {
		out.validity = b.validity.Take()
	}
	b.descriptors = nil
	b.buffers = [][]byte{{}}
	return out
}
