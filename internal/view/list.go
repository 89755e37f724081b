package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
)

// typedListView reads a List/LargeList column: offsets delimit each row's
// slice of the single child view (spec.md §4.F "list/struct/union views:
// positional accessors returning sub-views at index i").
type typedListView[O buffers.OffsetKind] struct {
	base
	offsets *buffers.OffsetsBuffer[O]
	child   View
}

func newTypedListView[O buffers.OffsetKind](b base, offsets *buffers.OffsetsBuffer[O], child View) *typedListView[O] {
	b.n = offsets.Len()
	return &typedListView[O]{base: b, offsets: offsets, child: child}
}

func (v *typedListView[O]) IsSome(i int) bool {
	return !v.field.Nullable || v.offsets.Validity().Get(i)
}

func (v *typedListView[O]) bounds(i int) (int, int, error) {
	off := v.offsets.Offsets()
	if i < 0 || i+1 >= len(off) {
		return 0, 0, v.ctx(fieldpath.New(fieldpath.IndexOutOfRange, "index %d out of range", i))
	}
	start, end := off[i], off[i+1]
	if end < start {
		return 0, 0, v.ctx(fieldpath.New(fieldpath.NonMonotonicOffsets, "offsets not monotonic at %d", i))
	}
	return int(start), int(end), nil
}

func (v *typedListView[O]) DeserializeSeq(i int, vis event.Visitor) (any, error) {
	start, end, err := v.bounds(i)
	if err != nil {
		return nil, err
	}
	cur := start
	return vis.VisitSeq(func() (any, bool, error) {
		if cur >= end {
			return nil, false, nil
		}
		j := cur
		cur++
		val, err := v.child.DeserializeAny(j, vis)
		return val, true, err
	})
}

func (v *typedListView[O]) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeSeq)(i, vis)
}

// fixedSizeListView reads a FixedSizeList(child, n) column: row i occupies
// child positions [i*n, (i+1)*n).
type fixedSizeListView struct {
	base
	presence *buffers.CountBuffer
	child    View
	size     int32
}

func newFixedSizeListView(b base, presence *buffers.CountBuffer, child View, size int32) *fixedSizeListView {
	b.n = presence.Len()
	return &fixedSizeListView{base: b, presence: presence, child: child, size: size}
}

func (v *fixedSizeListView) IsSome(i int) bool {
	return !v.field.Nullable || v.presence.Validity().Get(i)
}

func (v *fixedSizeListView) DeserializeSeq(i int, vis event.Visitor) (any, error) {
	start := int(v.size) * i
	end := start + int(v.size)
	cur := start
	return vis.VisitSeq(func() (any, bool, error) {
		if cur >= end {
			return nil, false, nil
		}
		j := cur
		cur++
		val, err := v.child.DeserializeAny(j, vis)
		return val, true, err
	})
}

func (v *fixedSizeListView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeSeq)(i, vis)
}
