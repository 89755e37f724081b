package schema

// StrategyKey is the Field.Metadata key under which a Strategy is stored.
const StrategyKey = "SERDE_ARROW:strategy"

// Strategy is a closed set of annotations that disambiguate an otherwise
// ambiguous event<->type mapping (spec.md §3.3).
type Strategy string

const (
	// StrategyNone is the zero value: no strategy applies.
	StrategyNone Strategy = ""

	UtcStrAsDate64                Strategy = "UtcStrAsDate64"
	NaiveStrAsDate64               Strategy = "NaiveStrAsDate64"
	TupleAsStruct                 Strategy = "TupleAsStruct"
	MapAsStruct                   Strategy = "MapAsStruct"
	EnumsWithNamedFieldsAsStructs Strategy = "EnumsWithNamedFieldsAsStructs"
	UnknownVariant                Strategy = "UnknownVariant"
)

// Field is name + logical type + nullability + metadata (spec.md §3.2).
type Field struct {
	Name     string
	DataType DataType
	Nullable bool
	Metadata map[string]string
}

// NewField builds a Field, normalizing a Null data type to always-nullable
// per spec.md §3.2 ("A Null field is always treated as nullable").
func NewField(name string, dt DataType, nullable bool) Field {
	if dt.Kind == Null {
		nullable = true
	}
	return Field{Name: name, DataType: dt, Nullable: nullable}
}

// Strategy returns the field's Strategy annotation, if any.
func (f Field) Strategy() (Strategy, bool) {
	if f.Metadata == nil {
		return StrategyNone, false
	}
	s, ok := f.Metadata[StrategyKey]
	if !ok || s == "" {
		return StrategyNone, false
	}
	return Strategy(s), true
}

// WithStrategy returns a copy of f with its Strategy metadata key set.
func (f Field) WithStrategy(s Strategy) Field {
	m := make(map[string]string, len(f.Metadata)+1)
	for k, v := range f.Metadata {
		m[k] = v
	}
	if s == StrategyNone {
		delete(m, StrategyKey)
	} else {
		m[StrategyKey] = string(s)
	}
	f.Metadata = m
	return f
}

// Equal reports deep structural equality between two Fields, including
// metadata (order-insensitive) and nullability.
func (f Field) Equal(o Field) bool {
	if f.Name != o.Name || f.Nullable != o.Nullable {
		return false
	}
	if !f.DataType.Equal(o.DataType) {
		return false
	}
	if len(f.Metadata) != len(o.Metadata) {
		return false
	}
	for k, v := range f.Metadata {
		if o.Metadata[k] != v {
			return false
		}
	}
	return true
}
