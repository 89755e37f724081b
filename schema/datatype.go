package schema

// DataType is the tagged variant of §3.1: a Kind plus whatever parameters
// that Kind carries. Only the fields relevant to Kind are meaningful; the
// rest are left at their zero value. This mirrors the teacher's dispatch on
// a single arrow.Type id (types.go, arrowTypeID2Type) rather than a Go
// interface hierarchy, since the set of variants is closed and small.
type DataType struct {
	Kind Kind

	// FixedSizeBinary(n), FixedSizeList(n)
	FixedSize int32

	// Time32/Time64/Timestamp/Duration
	Unit TimeUnit
	// Timestamp(unit, tz); nil means no timezone argument was supplied.
	Timezone *string

	// Decimal128(precision, scale)
	Precision uint8
	Scale     int8

	// List/LargeList/FixedSizeList
	Child *Field

	// Struct
	Children []Field

	// Map
	Entry  *Field // always a two-field Struct{key,value}
	Sorted bool

	// Dictionary
	IndexType *DataType
	ValueType *DataType

	// Union (dense only, per spec.md §9 open question)
	Variants []UnionVariant
}

// UnionVariant pairs a wire-level type id with the variant's Field.
type UnionVariant struct {
	TypeID int8
	Field  Field
}

func scalar(k Kind) DataType { return DataType{Kind: k} }

var (
	NullType    = scalar(Null)
	BooleanType = scalar(Boolean)
	Int8Type    = scalar(Int8)
	Int16Type   = scalar(Int16)
	Int32Type   = scalar(Int32)
	Int64Type   = scalar(Int64)
	Uint8Type   = scalar(Uint8)
	Uint16Type  = scalar(Uint16)
	Uint32Type  = scalar(Uint32)
	Uint64Type  = scalar(Uint64)
	Float16Type = scalar(Float16)
	Float32Type = scalar(Float32)
	Float64Type = scalar(Float64)
	Utf8Type    = scalar(Utf8)
	LargeUtf8Type = scalar(LargeUtf8)
	Utf8ViewType  = scalar(Utf8View)
	BinaryType      = scalar(Binary)
	LargeBinaryType = scalar(LargeBinary)
	BinaryViewType  = scalar(BinaryView)
	Date32Type      = scalar(Date32)
	Date64Type      = scalar(Date64)
)

// FixedSizeBinaryOf builds FixedSizeBinary(n).
func FixedSizeBinaryOf(n int32) DataType { return DataType{Kind: FixedSizeBinary, FixedSize: n} }

// Time32Of/Time64Of/DurationOf build the respective temporal type with unit.
func Time32Of(u TimeUnit) DataType  { return DataType{Kind: Time32, Unit: u} }
func Time64Of(u TimeUnit) DataType  { return DataType{Kind: Time64, Unit: u} }
func DurationOf(u TimeUnit) DataType { return DataType{Kind: Duration, Unit: u} }

// TimestampOf builds Timestamp(unit, tz); tz == nil means no timezone.
func TimestampOf(u TimeUnit, tz *string) DataType {
	return DataType{Kind: Timestamp, Unit: u, Timezone: tz}
}

// Decimal128Of builds Decimal128(precision, scale).
func Decimal128Of(precision uint8, scale int8) DataType {
	return DataType{Kind: Decimal128, Precision: precision, Scale: scale}
}

// ListOf/LargeListOf build List(child)/LargeList(child).
func ListOf(child Field) DataType      { return DataType{Kind: List, Child: &child} }
func LargeListOf(child Field) DataType { return DataType{Kind: LargeList, Child: &child} }

// FixedSizeListOf builds FixedSizeList(child, n).
func FixedSizeListOf(child Field, n int32) DataType {
	return DataType{Kind: FixedSizeList, Child: &child, FixedSize: n}
}

// StructOf builds Struct(children).
func StructOf(children ...Field) DataType { return DataType{Kind: Struct, Children: children} }

// MapOf builds Map(entry, sorted); entry must be a two-field Struct{key,value}.
func MapOf(entry Field, sorted bool) DataType {
	return DataType{Kind: Map, Entry: &entry, Sorted: sorted}
}

// DictionaryOf builds Dictionary(indexType, valueType).
func DictionaryOf(index, value DataType) DataType {
	return DataType{Kind: Dictionary, IndexType: &index, ValueType: &value}
}

// UnionOf builds Union(variants); dense layout only.
func UnionOf(variants ...UnionVariant) DataType {
	return DataType{Kind: Union, Variants: variants}
}

// Equal reports deep structural equality between two DataTypes.
func (d DataType) Equal(o DataType) bool {
	if d.Kind != o.Kind {
		return false
	}
	switch d.Kind {
	case FixedSizeBinary, FixedSizeList:
		if d.FixedSize != o.FixedSize {
			return false
		}
	case Time32, Time64, Duration:
		if d.Unit != o.Unit {
			return false
		}
	case Timestamp:
		if d.Unit != o.Unit {
			return false
		}
		if (d.Timezone == nil) != (o.Timezone == nil) {
			return false
		}
		if d.Timezone != nil && *d.Timezone != *o.Timezone {
			return false
		}
	case Decimal128:
		if d.Precision != o.Precision || d.Scale != o.Scale {
			return false
		}
	}
	if d.Kind == FixedSizeList || d.Kind == List || d.Kind == LargeList {
		if (d.Child == nil) != (o.Child == nil) {
			return false
		}
		if d.Child != nil && !d.Child.Equal(*o.Child) {
			return false
		}
	}
	if d.Kind == Struct {
		if len(d.Children) != len(o.Children) {
			return false
		}
		for i := range d.Children {
			if !d.Children[i].Equal(o.Children[i]) {
				return false
			}
		}
	}
	if d.Kind == Map {
		if (d.Entry == nil) != (o.Entry == nil) {
			return false
		}
		if d.Entry != nil && !d.Entry.Equal(*o.Entry) {
			return false
		}
		if d.Sorted != o.Sorted {
			return false
		}
	}
	if d.Kind == Dictionary {
		if (d.IndexType == nil) != (o.IndexType == nil) || (d.ValueType == nil) != (o.ValueType == nil) {
			return false
		}
		if d.IndexType != nil && !d.IndexType.Equal(*o.IndexType) {
			return false
		}
		if d.ValueType != nil && !d.ValueType.Equal(*o.ValueType) {
			return false
		}
	}
	if d.Kind == Union {
		if len(d.Variants) != len(o.Variants) {
			return false
		}
		for i := range d.Variants {
			if d.Variants[i].TypeID != o.Variants[i].TypeID {
				return false
			}
			if !d.Variants[i].Field.Equal(o.Variants[i].Field) {
				return false
			}
		}
	}
	return true
}

// IsInteger reports whether the Kind is one of the signed/unsigned integer
// scalars; used by builders and the tracer's coercion rules.
func (k Kind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether an integer Kind is signed.
func (k Kind) IsSigned() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the Kind is one of the floating-point scalars.
func (k Kind) IsFloat() bool {
	switch k {
	case Float16, Float32, Float64:
		return true
	default:
		return false
	}
}
