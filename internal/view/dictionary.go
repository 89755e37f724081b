package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
)

// dictionaryView reads a Dictionary(indexType, valueType) column: each row
// is an index into the deduplicated value list the builder accumulated
// (spec.md §4.E.6).
type dictionaryView struct {
	base
	indices *buffers.PrimitiveBuffer[int64]
	values  []string
}

func newDictionaryView(b base, indices *buffers.PrimitiveBuffer[int64], values []string) *dictionaryView {
	b.n = indices.Len()
	return &dictionaryView{base: b, indices: indices, values: values}
}

func (v *dictionaryView) IsSome(i int) bool {
	return !v.field.Nullable || v.indices.Validity().Get(i)
}

func (v *dictionaryView) DeserializeStr(i int, vis event.Visitor) (any, error) {
	idx := v.indices.Values()[i]
	if idx < 0 || int(idx) >= len(v.values) {
		return nil, v.ctx(fieldpath.New(fieldpath.IndexOutOfRange, "dictionary index %d out of range", idx))
	}
	return vis.VisitStr(v.values[idx])
}

func (v *dictionaryView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeStr)(i, vis)
}
