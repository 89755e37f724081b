// Package arrowio is the peripheral adapter spec.md §1 carves out of the
// neutral core: a thin bridge from our schema.Schema to the real
// github.com/apache/arrow-go/v18 types, exercised by the CLI and by
// round-trip tests rather than by the core builder/view/tracer trees
// themselves. Grounded on loicalleyne-bodkin's bodkin.go
// (ExportSchemaFile/ImportSchemaFile via arrow/flight) and types.go
// (goType2Arrow/arrowTypeID2Type) for the Go<->Arrow type mapping shape.
package arrowio

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/arrowtrait/traitarrow/schema"
)

// ToArrowSchema converts a schema.Schema to a real arrow.Schema.
func ToArrowSchema(sc *schema.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(sc.Fields))
	for i, f := range sc.Fields {
		af, err := toArrowField(f)
		if err != nil {
			return nil, fmt.Errorf("arrowio: field %q: %w", f.Name, err)
		}
		fields[i] = af
	}
	return arrow.NewSchema(fields, nil), nil
}

func toArrowField(f schema.Field) (arrow.Field, error) {
	dt, err := toArrowType(f.DataType)
	if err != nil {
		return arrow.Field{}, err
	}
	var md arrow.Metadata
	if strat, ok := f.Strategy(); ok {
		md = arrow.NewMetadata([]string{schema.StrategyKey}, []string{string(strat)})
	}
	return arrow.Field{Name: f.Name, Type: dt, Nullable: f.Nullable, Metadata: md}, nil
}

func toArrowType(dt schema.DataType) (arrow.DataType, error) {
	switch dt.Kind {
	case schema.Null:
		return arrow.Null, nil
	case schema.Boolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case schema.Int8:
		return arrow.PrimitiveTypes.Int8, nil
	case schema.Int16:
		return arrow.PrimitiveTypes.Int16, nil
	case schema.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case schema.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case schema.Uint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case schema.Uint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case schema.Uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case schema.Uint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case schema.Float16:
		return arrow.FixedWidthTypes.Float16, nil
	case schema.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case schema.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case schema.Utf8:
		return arrow.BinaryTypes.String, nil
	case schema.LargeUtf8:
		return arrow.BinaryTypes.LargeString, nil
	case schema.Utf8View:
		return arrow.BinaryTypes.StringView, nil
	case schema.Binary:
		return arrow.BinaryTypes.Binary, nil
	case schema.LargeBinary:
		return arrow.BinaryTypes.LargeBinary, nil
	case schema.BinaryView:
		return arrow.BinaryTypes.BinaryView, nil
	case schema.FixedSizeBinary:
		return &arrow.FixedSizeBinaryType{ByteWidth: int(dt.FixedSize)}, nil
	case schema.Date32:
		return arrow.FixedWidthTypes.Date32, nil
	case schema.Date64:
		return arrow.FixedWidthTypes.Date64, nil
	case schema.Time32:
		return timeUnitType32(dt.Unit), nil
	case schema.Time64:
		return timeUnitType64(dt.Unit), nil
	case schema.Timestamp:
		tz := ""
		if dt.Timezone != nil {
			tz = *dt.Timezone
		}
		return &arrow.TimestampType{Unit: toArrowUnit(dt.Unit), TimeZone: tz}, nil
	case schema.Duration:
		return &arrow.DurationType{Unit: toArrowUnit(dt.Unit)}, nil
	case schema.Decimal128:
		return &arrow.Decimal128Type{Precision: int32(dt.Precision), Scale: int32(dt.Scale)}, nil
	case schema.List:
		cf, err := toArrowField(*dt.Child)
		if err != nil {
			return nil, err
		}
		return arrow.ListOfField(cf), nil
	case schema.LargeList:
		cf, err := toArrowField(*dt.Child)
		if err != nil {
			return nil, err
		}
		return arrow.LargeListOfField(cf), nil
	case schema.FixedSizeList:
		cf, err := toArrowField(*dt.Child)
		if err != nil {
			return nil, err
		}
		return arrow.FixedSizeListOfField(dt.FixedSize, cf), nil
	case schema.Struct:
		fields := make([]arrow.Field, len(dt.Children))
		for i, c := range dt.Children {
			cf, err := toArrowField(c)
			if err != nil {
				return nil, err
			}
			fields[i] = cf
		}
		return arrow.StructOf(fields...), nil
	case schema.Map:
		ef, err := toArrowField(*dt.Entry)
		if err != nil {
			return nil, err
		}
		st, ok := ef.Type.(*arrow.StructType)
		if !ok || st.NumFields() != 2 {
			return nil, fmt.Errorf("arrowio: map entry must be a two-field struct")
		}
		mt := arrow.MapOf(st.Field(0).Type, st.Field(1).Type)
		mt.KeysSorted = dt.Sorted
		mt.SetItemNullable(st.Field(1).Nullable)
		return mt, nil
	case schema.Dictionary:
		idx, err := toArrowType(*dt.IndexType)
		if err != nil {
			return nil, err
		}
		val, err := toArrowType(*dt.ValueType)
		if err != nil {
			return nil, err
		}
		return &arrow.DictionaryType{IndexType: idx, ValueType: val}, nil
	case schema.Union:
		fields := make([]arrow.Field, len(dt.Variants))
		codes := make([]arrow.UnionTypeCode, len(dt.Variants))
		for i, v := range dt.Variants {
			vf, err := toArrowField(v.Field)
			if err != nil {
				return nil, err
			}
			fields[i] = vf
			codes[i] = arrow.UnionTypeCode(v.TypeID)
		}
		return arrow.DenseUnionOf(fields, codes), nil
	default:
		return nil, fmt.Errorf("arrowio: unsupported Kind %s", dt.Kind)
	}
}

func toArrowUnit(u schema.TimeUnit) arrow.TimeUnit {
	switch u {
	case schema.Second:
		return arrow.Second
	case schema.Millisecond:
		return arrow.Millisecond
	case schema.Microsecond:
		return arrow.Microsecond
	default:
		return arrow.Nanosecond
	}
}

func timeUnitType32(u schema.TimeUnit) arrow.DataType {
	if u == schema.Millisecond {
		return arrow.FixedWidthTypes.Time32ms
	}
	return arrow.FixedWidthTypes.Time32s
}

func timeUnitType64(u schema.TimeUnit) arrow.DataType {
	if u == schema.Nanosecond {
		return arrow.FixedWidthTypes.Time64ns
	}
	return arrow.FixedWidthTypes.Time64us
}

// FromArrowSchema converts a real arrow.Schema back to a schema.Schema,
// recovering Strategy annotations from each field's SERDE_ARROW:strategy
// metadata key if present.
func FromArrowSchema(as *arrow.Schema) (*schema.Schema, error) {
	fields := make([]schema.Field, as.NumFields())
	for i, af := range as.Fields() {
		f, err := fromArrowField(af)
		if err != nil {
			return nil, fmt.Errorf("arrowio: field %q: %w", af.Name, err)
		}
		fields[i] = f
	}
	return &schema.Schema{Fields: fields}, nil
}

func fromArrowField(af arrow.Field) (schema.Field, error) {
	dt, err := fromArrowType(af.Type)
	if err != nil {
		return schema.Field{}, err
	}
	f := schema.NewField(af.Name, dt, af.Nullable)
	if v := af.Metadata.FindKey(schema.StrategyKey); v >= 0 {
		f = f.WithStrategy(schema.Strategy(af.Metadata.Values()[v]))
	}
	return f, nil
}

func fromArrowType(at arrow.DataType) (schema.DataType, error) {
	switch t := at.(type) {
	case *arrow.BooleanType:
		return schema.BooleanType, nil
	case *arrow.Int8Type:
		return schema.Int8Type, nil
	case *arrow.Int16Type:
		return schema.Int16Type, nil
	case *arrow.Int32Type:
		return schema.Int32Type, nil
	case *arrow.Int64Type:
		return schema.Int64Type, nil
	case *arrow.Uint8Type:
		return schema.Uint8Type, nil
	case *arrow.Uint16Type:
		return schema.Uint16Type, nil
	case *arrow.Uint32Type:
		return schema.Uint32Type, nil
	case *arrow.Uint64Type:
		return schema.Uint64Type, nil
	case *arrow.Float16Type:
		return schema.DataType{Kind: schema.Float16}, nil
	case *arrow.Float32Type:
		return schema.Float32Type, nil
	case *arrow.Float64Type:
		return schema.Float64Type, nil
	case *arrow.StringType:
		return schema.Utf8Type, nil
	case *arrow.LargeStringType:
		return schema.LargeUtf8Type, nil
	case *arrow.StringViewType:
		return schema.Utf8ViewType, nil
	case *arrow.BinaryType:
		return schema.BinaryType, nil
	case *arrow.LargeBinaryType:
		return schema.LargeBinaryType, nil
	case *arrow.BinaryViewType:
		return schema.BinaryViewType, nil
	case *arrow.FixedSizeBinaryType:
		return schema.FixedSizeBinaryOf(int32(t.ByteWidth)), nil
	case *arrow.Date32Type:
		return schema.Date32Type, nil
	case *arrow.Date64Type:
		return schema.Date64Type, nil
	case *arrow.Time32Type:
		return schema.Time32Of(fromArrowUnit(t.Unit)), nil
	case *arrow.Time64Type:
		return schema.Time64Of(fromArrowUnit(t.Unit)), nil
	case *arrow.TimestampType:
		var tz *string
		if t.TimeZone != "" {
			z := t.TimeZone
			tz = &z
		}
		return schema.TimestampOf(fromArrowUnit(t.Unit), tz), nil
	case *arrow.DurationType:
		return schema.DurationOf(fromArrowUnit(t.Unit)), nil
	case *arrow.Decimal128Type:
		return schema.Decimal128Of(uint8(t.Precision), int8(t.Scale)), nil
	case *arrow.ListType:
		cf, err := fromArrowField(t.ElemField())
		if err != nil {
			return schema.DataType{}, err
		}
		return schema.ListOf(cf), nil
	case *arrow.LargeListType:
		cf, err := fromArrowField(t.ElemField())
		if err != nil {
			return schema.DataType{}, err
		}
		return schema.LargeListOf(cf), nil
	case *arrow.FixedSizeListType:
		cf, err := fromArrowField(t.ElemField())
		if err != nil {
			return schema.DataType{}, err
		}
		return schema.FixedSizeListOf(cf, t.Len()), nil
	case *arrow.StructType:
		children := make([]schema.Field, t.NumFields())
		for i := 0; i < t.NumFields(); i++ {
			cf, err := fromArrowField(t.Field(i))
			if err != nil {
				return schema.DataType{}, err
			}
			children[i] = cf
		}
		return schema.StructOf(children...), nil
	case *arrow.MapType:
		keyField := schema.NewField("key", mustFromArrowType(t.KeyType()), false)
		valField := schema.NewField("value", mustFromArrowType(t.ItemType()), t.ItemField().Nullable)
		entry := schema.NewField("entries", schema.StructOf(keyField, valField), false)
		return schema.MapOf(entry, t.KeysSorted), nil
	case *arrow.DictionaryType:
		idx, err := fromArrowType(t.IndexType)
		if err != nil {
			return schema.DataType{}, err
		}
		val, err := fromArrowType(t.ValueType)
		if err != nil {
			return schema.DataType{}, err
		}
		return schema.DictionaryOf(idx, val), nil
	case arrow.UnionType:
		variants := make([]schema.UnionVariant, t.NumFields())
		codes := t.TypeCodes()
		for i := 0; i < t.NumFields(); i++ {
			vf, err := fromArrowField(t.Field(i))
			if err != nil {
				return schema.DataType{}, err
			}
			variants[i] = schema.UnionVariant{TypeID: int8(codes[i]), Field: vf}
		}
		return schema.UnionOf(variants...), nil
	default:
		return schema.DataType{}, fmt.Errorf("arrowio: unsupported arrow.DataType %s", at)
	}
}

func mustFromArrowType(at arrow.DataType) schema.DataType {
	dt, err := fromArrowType(at)
	if err != nil {
		return schema.DataType{Kind: schema.Null}
	}
	return dt
}

func fromArrowUnit(u arrow.TimeUnit) schema.TimeUnit {
	switch u {
	case arrow.Second:
		return schema.Second
	case arrow.Millisecond:
		return schema.Millisecond
	case arrow.Microsecond:
		return schema.Microsecond
	default:
		return schema.Nanosecond
	}
}

// ExportSchema serializes a schema.Schema as an Arrow IPC schema message,
// mirroring Bodkin.ExportSchemaBytes.
func ExportSchema(sc *schema.Schema) ([]byte, error) {
	as, err := ToArrowSchema(sc)
	if err != nil {
		return nil, err
	}
	return flight.SerializeSchema(as, memory.DefaultAllocator), nil
}

// ImportSchema deserializes an Arrow IPC schema message back to a
// schema.Schema, mirroring Bodkin.ImportSchemaBytes.
func ImportSchema(data []byte) (*schema.Schema, error) {
	as, err := flight.DeserializeSchema(data, memory.DefaultAllocator)
	if err != nil {
		return nil, err
	}
	return FromArrowSchema(as)
}

// ExportSchemaFile writes sc's Arrow IPC schema message to exportPath,
// mirroring Bodkin.ExportSchemaFile.
func ExportSchemaFile(sc *schema.Schema, exportPath string) error {
	bs, err := ExportSchema(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(exportPath, bs, 0644)
}

// ImportSchemaFile reads an Arrow IPC schema message from importPath,
// mirroring Bodkin.ImportSchemaFile.
func ImportSchemaFile(importPath string) (*schema.Schema, error) {
	dat, err := os.ReadFile(importPath)
	if err != nil {
		return nil, err
	}
	return ImportSchema(dat)
}
