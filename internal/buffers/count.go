package buffers

// CountBuffer is a length-only, validity-carrying buffer: it tracks how
// many rows a Struct/FixedSizeList/Null/UnknownVariant builder has seen
// without owning any value storage of its own (spec.md §4.B, §4.E.1).
type CountBuffer struct {
	length   int
	validity *Bitset
	nullable bool
}

// NewCountBuffer returns an empty CountBuffer.
func NewCountBuffer(nullable bool) *CountBuffer {
	b := &CountBuffer{nullable: nullable}
	if nullable {
		b.validity = NewBitset()
	}
	return b
}

func (b *CountBuffer) Len() int         { return b.length }
func (b *CountBuffer) Validity() *Bitset { return b.validity }

// StartSeq records one present row.
func (b *CountBuffer) StartSeq() {
	b.length++
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// PushNullSeq records one absent row.
func (b *CountBuffer) PushNullSeq() error {
	if !b.nullable {
		return ErrNotNullable
	}
	b.length++
	b.validity.Push(false)
	return nil
}

// Take detaches the current contents and leaves an empty successor.
func (b *CountBuffer) Take() *CountBuffer {
	out := &CountBuffer{length: b.length, nullable: b.nullable}
	if b.validity != nil {
		out.validity = b.validity.Take()
	}
	b.length = 0
	return out
}
