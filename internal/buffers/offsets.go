package buffers

// OffsetsBuffer is the `offsets: [O]` array owned by a List/LargeList
// builder; the child values themselves live in a separately owned child
// builder (spec.md §3.4, §4.E.2).
type OffsetsBuffer[O OffsetKind] struct {
	offsets  []O
	validity *Bitset
	nullable bool
	open     bool
}

// NewOffsetsBuffer returns an empty buffer with offsets = [0].
func NewOffsetsBuffer[O OffsetKind](nullable bool) *OffsetsBuffer[O] {
	b := &OffsetsBuffer[O]{offsets: []O{0}, nullable: nullable}
	if nullable {
		b.validity = NewBitset()
	}
	return b
}

func (b *OffsetsBuffer[O]) Len() int         { return len(b.offsets) - 1 }
func (b *OffsetsBuffer[O]) Offsets() []O     { return b.offsets }
func (b *OffsetsBuffer[O]) Validity() *Bitset { return b.validity }

// StartSeq duplicates the last offset, opening a new tentative row
// (spec.md §4.E.2: "StartSequence duplicates the last offset").
func (b *OffsetsBuffer[O]) StartSeq() {
	last := b.offsets[len(b.offsets)-1]
	b.offsets = append(b.offsets, last)
	b.open = true
}

// PushItem increments the tentative offset by one element.
func (b *OffsetsBuffer[O]) PushItem() {
	b.offsets[len(b.offsets)-1]++
}

// EndSeq commits the open row: the just-extended offset becomes final and
// the row's validity bit is set to 1.
func (b *OffsetsBuffer[O]) EndSeq() {
	b.open = false
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// PushNullSeq appends a duplicate of the last offset with validity bit 0
// and does not touch the child builder (spec.md §4.E.2).
func (b *OffsetsBuffer[O]) PushNullSeq() error {
	if !b.nullable {
		return ErrNotNullable
	}
	last := b.offsets[len(b.offsets)-1]
	b.offsets = append(b.offsets, last)
	b.validity.Push(false)
	return nil
}

// PushDefaultSeq appends an empty, present row (used by serialize_default_value).
func (b *OffsetsBuffer[O]) PushDefaultSeq() {
	last := b.offsets[len(b.offsets)-1]
	b.offsets = append(b.offsets, last)
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// Take detaches the current contents and leaves an empty successor.
func (b *OffsetsBuffer[O]) Take() *OffsetsBuffer[O] {
	out := &OffsetsBuffer[O]{offsets: b.offsets, nullable: b.nullable}
	if b.validity != nil {
		out.validity = b.validity.Take()
	}
	b.offsets = []O{0}
	return out
}
