package buffers

// PrimitiveBuffer is the growable `values: [T]` plus optional validity
// bitmap backing every scalar Arrow column (spec.md §3.4, §4.B).
type PrimitiveBuffer[T any] struct {
	values   []T
	validity *Bitset
	nullable bool
}

// NewPrimitiveBuffer returns an empty buffer; nullable controls whether
// PushNull is permitted (PushDefault always is).
func NewPrimitiveBuffer[T any](nullable bool) *PrimitiveBuffer[T] {
	b := &PrimitiveBuffer[T]{nullable: nullable}
	if nullable {
		b.validity = NewBitset()
	}
	return b
}

func (b *PrimitiveBuffer[T]) Len() int      { return len(b.values) }
func (b *PrimitiveBuffer[T]) Nullable() bool { return b.nullable }
func (b *PrimitiveBuffer[T]) Values() []T    { return b.values }
func (b *PrimitiveBuffer[T]) Validity() *Bitset { return b.validity }

// Reserve pre-sizes the values slice (and validity bitmap, if any).
func (b *PrimitiveBuffer[T]) Reserve(additional int) {
	if cap(b.values)-len(b.values) < additional {
		grown := make([]T, len(b.values), len(b.values)+additional)
		copy(grown, b.values)
		b.values = grown
	}
	if b.validity != nil {
		b.validity.Reserve(additional)
	}
}

// PushValue appends v. On a nullable buffer the validity bit is set to 1.
func (b *PrimitiveBuffer[T]) PushValue(v T) {
	b.values = append(b.values, v)
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// PushNull appends a zero value with validity bit 0. Returns ErrNotNullable
// if the buffer was created non-nullable.
func (b *PrimitiveBuffer[T]) PushNull() error {
	if !b.nullable {
		return ErrNotNullable
	}
	var zero T
	b.values = append(b.values, zero)
	b.validity.Push(false)
	return nil
}

// PushDefault appends a zero value as if present (validity bit 1 if
// nullable). Used by serialize_default_value() for non-nullable fields
// filled in by EndStruct (spec.md §4.E.1).
func (b *PrimitiveBuffer[T]) PushDefault() {
	var zero T
	b.values = append(b.values, zero)
	if b.validity != nil {
		b.validity.Push(true)
	}
}

// Take detaches the current contents and leaves an empty, reusable
// successor (spec.md §3.5, §4.E: `take()`).
func (b *PrimitiveBuffer[T]) Take() *PrimitiveBuffer[T] {
	out := &PrimitiveBuffer[T]{values: b.values, nullable: b.nullable}
	if b.validity != nil {
		out.validity = b.validity.Take()
	}
	b.values = nil
	return out
}
