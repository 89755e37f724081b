package view

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/builder"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// nullView reads a Null column: every row decodes to an explicit null.
type nullView struct {
	base
	count *buffers.CountBuffer
}

func newNullView(b base, count *buffers.CountBuffer) *nullView {
	b.n = count.Len()
	return &nullView{base: b, count: count}
}

func (v *nullView) IsSome(i int) bool { return false }

func (v *nullView) DeserializeAny(i int, vis event.Visitor) (any, error) {
	return vis.VisitNull()
}

// New constructs the View tree for field from snapshot, the value returned
// by the matching builder.Builder's Snapshot() (spec.md §4.F: the view tree
// mirrors the builder tree). path is this node's field path, threaded the
// same way builder.New threads it.
func New(field schema.Field, path string, snapshot any) (View, error) {
	b := base{field: field, path: path}
	if s, ok := field.Strategy(); ok && s == schema.UnknownVariant {
		cb, ok := snapshot.(*buffers.CountBuffer)
		if !ok {
			return nil, fieldpath.New(fieldpath.IncompatibleType, "expected CountBuffer snapshot for UnknownVariant")
		}
		return newUnknownVariantView(b, cb), nil
	}
	switch field.DataType.Kind {
	case schema.Null:
		return newCountView(b, snapshot)
	case schema.Boolean:
		buf, ok := snapshot.(*buffers.PrimitiveBuffer[bool])
		if !ok {
			return nil, typeMismatch(field)
		}
		return newBoolView(b, buf), nil
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64,
		schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64,
		schema.Float16, schema.Float32, schema.Float64:
		return newNumericView(b, field.DataType.Kind, snapshot), nil
	case schema.Utf8, schema.Binary:
		buf, ok := snapshot.(*buffers.BytesBuffer[int32])
		if !ok {
			return nil, typeMismatch(field)
		}
		return newTypedBytesView(b, buf), nil
	case schema.LargeUtf8, schema.LargeBinary:
		buf, ok := snapshot.(*buffers.BytesBuffer[int64])
		if !ok {
			return nil, typeMismatch(field)
		}
		return newTypedBytesView(b, buf), nil
	case schema.Utf8View, schema.BinaryView:
		buf, ok := snapshot.(*buffers.BytesViewBuffer)
		if !ok {
			return nil, typeMismatch(field)
		}
		return newViewView(b, buf), nil
	case schema.FixedSizeBinary:
		buf, ok := snapshot.(*buffers.BytesBuffer[int32])
		if !ok {
			return nil, typeMismatch(field)
		}
		return newFixedSizeBinaryView(b, buf), nil
	case schema.Date32, schema.Date64, schema.Time32, schema.Time64,
		schema.Timestamp, schema.Duration:
		buf, ok := snapshot.(*buffers.PrimitiveBuffer[int64])
		if !ok {
			return nil, typeMismatch(field)
		}
		return newTemporalView(b, buf, field.DataType.Kind), nil
	case schema.Decimal128:
		buf, ok := snapshot.(*buffers.PrimitiveBuffer[[16]byte])
		if !ok {
			return nil, typeMismatch(field)
		}
		return newDecimal128View(b, buf), nil
	case schema.List:
		ls, ok := snapshot.(builder.ListSnapshot32)
		if !ok {
			return nil, typeMismatch(field)
		}
		child, err := New(*field.DataType.Child, fieldpath.Element(path), ls.Child.Snapshot())
		if err != nil {
			return nil, err
		}
		return newTypedListView(b, ls.Offsets, child), nil
	case schema.LargeList:
		ls, ok := snapshot.(builder.ListSnapshot64)
		if !ok {
			return nil, typeMismatch(field)
		}
		child, err := New(*field.DataType.Child, fieldpath.Element(path), ls.Child.Snapshot())
		if err != nil {
			return nil, err
		}
		return newTypedListView(b, ls.Offsets, child), nil
	case schema.FixedSizeList:
		fs, ok := snapshot.(builder.FixedSizeListSnapshot)
		if !ok {
			return nil, typeMismatch(field)
		}
		child, err := New(*field.DataType.Child, fieldpath.Element(path), fs.Child.Snapshot())
		if err != nil {
			return nil, err
		}
		return newFixedSizeListView(b, fs.Presence, child, fs.Size), nil
	case schema.Struct:
		return newStructViewFromSnapshot(b, field, path, snapshot)
	case schema.Map:
		ms, ok := snapshot.(builder.MapSnapshot)
		if !ok {
			return nil, typeMismatch(field)
		}
		entryView, err := newStructViewFromSnapshot(base{field: *field.DataType.Entry, path: fieldpath.Child(path, "entries")},
			*field.DataType.Entry, fieldpath.Child(path, "entries"), ms.Entry.Snapshot())
		if err != nil {
			return nil, err
		}
		return newMapView(b, ms.Offsets, entryView.(*structView)), nil
	case schema.Dictionary:
		ds, ok := snapshot.(builder.DictionarySnapshot)
		if !ok {
			return nil, typeMismatch(field)
		}
		return newDictionaryView(b, ds.Indices, ds.Values), nil
	case schema.Union:
		us, ok := snapshot.(builder.UnionSnapshot)
		if !ok {
			return nil, typeMismatch(field)
		}
		children := make([]View, len(field.DataType.Variants))
		for i, va := range field.DataType.Variants {
			cv, err := New(va.Field, fieldpath.Variant(path, va.TypeID), us.Children[i].Snapshot())
			if err != nil {
				return nil, err
			}
			children[i] = cv
		}
		return newUnionView(b, us.Types, us.Offsets, children, field.DataType.Variants), nil
	default:
		return nil, fieldpath.New(fieldpath.IncompatibleType, "unsupported kind %s", field.DataType.Kind)
	}
}

func newCountView(b base, snapshot any) (View, error) {
	cb, ok := snapshot.(*buffers.CountBuffer)
	if !ok {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "expected CountBuffer snapshot for Null")
	}
	return newNullView(b, cb), nil
}

func newStructViewFromSnapshot(b base, field schema.Field, path string, snapshot any) (View, error) {
	ss, ok := snapshot.(builder.StructSnapshot)
	if !ok {
		return nil, typeMismatch(field)
	}
	children := make([]View, len(field.DataType.Children))
	for i, cf := range field.DataType.Children {
		cv, err := New(cf, fieldpath.Child(path, cf.Name), ss.Children[i].Snapshot())
		if err != nil {
			return nil, err
		}
		children[i] = cv
	}
	return newStructView(b, ss.Presence, children, field.DataType.Children), nil
}

func typeMismatch(field schema.Field) error {
	return fieldpath.New(fieldpath.IncompatibleType, "snapshot does not match declared type %s for field %q", field.DataType.Kind, field.Name)
}
