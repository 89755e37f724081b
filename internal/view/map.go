package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
)

// mapView reads a Map(entry, sorted) column, physically a List of Entry
// structs (spec.md §4.E.8/§4.F): it drives VisitMap instead of VisitSeq,
// decoding each entry's key/value pair from the shared Struct{key,value}
// child view at the entry's flat position.
type mapView struct {
	base
	offsets *buffers.OffsetsBuffer[int32]
	entry   *structView
}

func newMapView(b base, offsets *buffers.OffsetsBuffer[int32], entry *structView) *mapView {
	b.n = offsets.Len()
	return &mapView{base: b, offsets: offsets, entry: entry}
}

func (v *mapView) IsSome(i int) bool {
	return !v.field.Nullable || v.offsets.Validity().Get(i)
}

func (v *mapView) DeserializeMap(i int, vis event.Visitor) (any, error) {
	off := v.offsets.Offsets()
	start, end := off[i], off[i+1]
	cur := int(start)
	return vis.VisitMap(func() (any, any, bool, error) {
		if cur >= int(end) {
			return nil, nil, false, nil
		}
		j := cur
		cur++
		key, err := v.entry.children[0].DeserializeAny(j, vis)
		if err != nil {
			return nil, nil, true, err
		}
		val, err := v.entry.children[1].DeserializeAny(j, vis)
		return key, val, true, err
	})
}

func (v *mapView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return withOption(v.field.Nullable, func(i int) bool { return !v.IsSome(i) }, v.DeserializeMap)(i, vis)
}
