package view

import (
	"sync"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// unionView reads a dense Union(variants) column: row i belongs to variant
// types[i] and lives at position offsets[i] of that variant's own child
// view (spec.md §4.F: "Union reader (dense) pre-computes the initial
// variant-local offset of each type id by scanning the types/offsets
// arrays"). A union value is surfaced to the host as a one-entry map,
// {variantName: value}, the same shape a host-side serde enum round-trips
// through on the write side (event.Variant carries the name that a single
// StructField-less map key reconstructs).
//
// spec.md §4.F also says "Validity of offsets and indices is enforced on
// first access, not construction": the consecutive-per-type-id check
// (spec.md §3.1, §8 "Union offsets") runs lazily, once, the first time any
// row is read, rather than eagerly when the view tree is built.
type unionView struct {
	base
	types     *buffers.PrimitiveBuffer[int8]
	offsets   *buffers.PrimitiveBuffer[int32]
	children  []View
	idByTypeID map[int8]int
	names     map[int8]string

	validateOnce sync.Once
	validateErr  error
}

func newUnionView(b base, types *buffers.PrimitiveBuffer[int8], offsets *buffers.PrimitiveBuffer[int32], children []View, variants []schema.UnionVariant) *unionView {
	b.n = types.Len()
	idByTypeID := make(map[int8]int, len(variants))
	names := make(map[int8]string, len(variants))
	for i, va := range variants {
		idByTypeID[va.TypeID] = i
		names[va.TypeID] = va.Field.Name
	}
	return &unionView{base: b, types: types, offsets: offsets, children: children, idByTypeID: idByTypeID, names: names}
}

func (v *unionView) IsSome(i int) bool { return true }

func (v *unionView) validate() error {
	v.validateOnce.Do(func() {
		next := make(map[int8]int32)
		for i, t := range v.types.Values() {
			want := next[t]
			if v.offsets.Values()[i] != want {
				v.validateErr = v.ctx(fieldpath.New(fieldpath.NonMonotonicOffsets,
					"union type %d offsets not consecutive at row %d", t, i))
				return
			}
			next[t] = want + 1
		}
	})
	return v.validateErr
}

func (v *unionView) DeserializeMap(i int, vis event.Visitor) (any, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	typeID := v.types.Values()[i]
	childIdx, ok := v.idByTypeID[typeID]
	if !ok {
		return nil, v.ctx(fieldpath.New(fieldpath.UnknownVariant, "union type id %d has no declared variant", typeID))
	}
	offset := int(v.offsets.Values()[i])
	done := false
	return vis.VisitMap(func() (any, any, bool, error) {
		if done {
			return nil, nil, false, nil
		}
		done = true
		key, err := vis.VisitStr(v.names[typeID])
		if err != nil {
			return nil, nil, true, err
		}
		val, err := v.children[childIdx].DeserializeAny(offset, vis)
		return key, val, true, err
	})
}

func (v *unionView) DeserializeAny(i int, vis event.Visitor) (any, error) { return v.DeserializeMap(i, vis) }

// unknownVariantView backs the catch-all arm a Union uses under the
// UnknownVariant strategy; every row decodes to an explicit null.
type unknownVariantView struct {
	base
	count *buffers.CountBuffer
}

func newUnknownVariantView(b base, count *buffers.CountBuffer) *unknownVariantView {
	b.n = count.Len()
	return &unknownVariantView{base: b, count: count}
}

func (v *unknownVariantView) IsSome(i int) bool { return false }

func (v *unknownVariantView) DeserializeAny(i int, vis event.Visitor) (any, error) { return vis.VisitNull() }
