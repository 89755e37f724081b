package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/schema"
)

// structView reads a Struct(children) column: VisitStruct is driven once
// per declared child field, in schema order, regardless of the order the
// host originally supplied them in at build time (spec.md §5: "the builder
// preserves struct field order in its output arrays").
type structView struct {
	base
	presence *buffers.CountBuffer
	children []View
	fields   []schema.Field
}

func newStructView(b base, presence *buffers.CountBuffer, children []View, fields []schema.Field) *structView {
	b.n = presence.Len()
	return &structView{base: b, presence: presence, children: children, fields: fields}
}

func (v *structView) IsSome(i int) bool {
	return !v.field.Nullable || v.presence.Validity().Get(i)
}

func (v *structView) DeserializeStruct(i int, vis event.Visitor) (any, error) {
	cur := 0
	return vis.VisitStruct(func() (string, any, bool, error) {
		if cur >= len(v.children) {
			return "", nil, false, nil
		}
		j := cur
		cur++
		val, err := v.children[j].DeserializeAny(i, vis)
		return v.fields[j].Name, val, true, err
	})
}

func (v *structView) DeserializeMap(i int, vis event.Visitor) (any, error) {
	cur := 0
	return vis.VisitMap(func() (any, any, bool, error) {
		if cur >= len(v.children) {
			return nil, nil, false, nil
		}
		j := cur
		cur++
		val, err := v.children[j].DeserializeAny(i, vis)
		key, kerr := vis.VisitStr(v.fields[j].Name)
		if kerr != nil {
			return nil, nil, true, kerr
		}
		return key, val, true, err
	})
}

func (v *structView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeStruct)(i, vis)
}
