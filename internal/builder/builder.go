// Package builder implements the concrete Sinks of spec.md §4.E: a tree of
// per-Kind column builders mirroring the schema, each driven by the event
// stream of package event and each able to detach (Take) its accumulated
// buffers into a finished column. Grounded on loicalleyne-bodkin's
// mapFieldBuilders/fieldPos tree (bodkin.go, schema.go), generalized from a
// dispatch over concrete *array.Builder types to a dispatch over our own
// neutral schema.Kind.
package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// Builder is one node of the builder tree: a Sink that also knows its own
// length and logical type, and can detach what it has accumulated so far.
type Builder interface {
	event.Sink
	Len() int
	Field() schema.Field
	// Snapshot detaches and returns what this node has accumulated so far,
	// leaving it empty to keep accumulating. Its concrete Go type is
	// determined by Field().DataType.Kind -- see snapshot.go.
	Snapshot() any
}

// New constructs the Builder for field, dispatching on its Kind and
// recursing into children for nested kinds. path is this node's field path
// (fieldpath.Root for the outermost struct), carried for error annotation.
func New(field schema.Field, path string) (Builder, error) {
	base := base{field: field, path: path}
	if s, ok := field.Strategy(); ok && s == schema.UnknownVariant {
		return newUnknownVariantBuilder(base), nil
	}
	switch field.DataType.Kind {
	case schema.Null:
		return newNullBuilder(base), nil
	case schema.Boolean:
		return newBoolBuilder(base), nil
	case schema.Int8, schema.Int16, schema.Int32, schema.Int64,
		schema.Uint8, schema.Uint16, schema.Uint32, schema.Uint64,
		schema.Float16, schema.Float32, schema.Float64:
		return newNumericBuilder(base)
	case schema.Utf8, schema.LargeUtf8, schema.Binary, schema.LargeBinary:
		return newBytesBuilder(base)
	case schema.Utf8View, schema.BinaryView:
		return newViewBuilder(base), nil
	case schema.FixedSizeBinary:
		return newFixedSizeBinaryBuilder(base), nil
	case schema.Date32, schema.Date64, schema.Time32, schema.Time64,
		schema.Timestamp, schema.Duration:
		return newTemporalBuilder(base)
	case schema.Decimal128:
		return newDecimal128Builder(base), nil
	case schema.List, schema.LargeList:
		return newListBuilder(base)
	case schema.FixedSizeList:
		return newFixedSizeListBuilder(base)
	case schema.Struct:
		return newStructBuilder(base)
	case schema.Map:
		return newMapBuilder(base)
	case schema.Dictionary:
		return newDictionaryBuilder(base)
	case schema.Union:
		return newUnionBuilder(base)
	default:
		return nil, fieldpath.New(fieldpath.IncompatibleType, "unsupported kind %s", field.DataType.Kind)
	}
}

// base is embedded by every concrete builder for the bookkeeping every node
// needs: its Field and path.
type base struct {
	field schema.Field
	path  string
}

func (b base) Field() schema.Field { return b.field }

func (b base) ctx(err error) error {
	return fieldpath.Annotate(err, b.path, b.field.DataType.Kind.String())
}

func (b base) unexpected(tag event.Tag) error {
	return b.ctx(fieldpath.New(fieldpath.UnexpectedEvent,
		"%s builder got unexpected event %s", b.field.DataType.Kind, tag))
}
