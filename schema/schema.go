package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/sjson"
)

// Schema is an ordered list of top-level Fields (spec.md §4.A, §6.1).
type Schema struct {
	Fields []Field
}

// jsonField is the wire shape of a single field (spec.md §6.1): data_type is
// either the short textual form or the tagged-variant object form.
type jsonField struct {
	Name     string            `json:"name"`
	DataType json.RawMessage   `json:"data_type"`
	Nullable *bool             `json:"nullable,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Strategy *string           `json:"strategy,omitempty"`
	Children []jsonField       `json:"children,omitempty"`
}

// rawDataType is the "Arrow-style" tagged variant object form accepted as an
// alternative to the short textual string (spec.md §4.A).
type rawDataType struct {
	Type      string  `json:"type"`
	Unit      string  `json:"unit,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	Precision uint8   `json:"precision,omitempty"`
	Scale     int8    `json:"scale,omitempty"`
	ByteWidth int32   `json:"byte_width,omitempty"`
	ListSize  int32   `json:"list_size,omitempty"`
}

// FromValue interprets a self-describing value (JSON bytes/string, or an
// already-decoded map[string]any/[]any tree) as a Schema (spec.md §4.A).
func FromValue(v any) (*Schema, error) {
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidType, err)
		}
		raw = b
	}
	return FromJSON(raw)
}

// FromJSON parses the wire JSON shape of §6.1: either a bare array of
// fields, or an object {"fields": [...]}.
func FromJSON(raw []byte) (*Schema, error) {
	trimmed := skipSpace(raw)
	var jfs []jsonField
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(raw, &jfs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidType, err)
		}
	} else {
		var wrapper struct {
			Fields []jsonField `json:"fields"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidType, err)
		}
		jfs = wrapper.Fields
	}
	fields := make([]Field, 0, len(jfs))
	for _, jf := range jfs {
		f, err := fieldFromJSON(jf)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return &Schema{Fields: fields}, nil
}

func skipSpace(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return b[i:]
}

func fieldFromJSON(jf jsonField) (Field, error) {
	children := make([]Field, 0, len(jf.Children))
	for _, c := range jf.Children {
		cf, err := fieldFromJSON(c)
		if err != nil {
			return Field{}, err
		}
		children = append(children, cf)
	}

	dt, err := dataTypeFromJSON(jf.DataType, children)
	if err != nil {
		return Field{}, err
	}

	nullable := dt.Kind == Null
	if jf.Nullable != nil {
		nullable = *jf.Nullable
	}

	var strategy Strategy
	haveMetaStrategy := false
	if jf.Metadata != nil {
		if s, ok := jf.Metadata[StrategyKey]; ok && s != "" {
			strategy = Strategy(s)
			haveMetaStrategy = true
		}
	}
	if jf.Strategy != nil && *jf.Strategy != "" {
		if haveMetaStrategy && Strategy(*jf.Strategy) != strategy {
			return Field{}, fmt.Errorf("%w: field %q has both metadata and strategy key set", ErrConflictingStrategy, jf.Name)
		}
		strategy = Strategy(*jf.Strategy)
	}

	f := NewField(jf.Name, dt, nullable)
	if jf.Metadata != nil {
		m := make(map[string]string, len(jf.Metadata))
		for k, v := range jf.Metadata {
			m[k] = v
		}
		f.Metadata = m
	}
	if strategy != StrategyNone {
		f = f.WithStrategy(strategy)
	}
	if dt.Kind == Null && jf.Nullable != nil && !*jf.Nullable {
		return Field{}, fmt.Errorf("%w: field %q is Null and must be nullable", ErrInvalidNullability, jf.Name)
	}
	return f, nil
}

// dataTypeFromJSON resolves the short-string or tagged-object data_type and
// attaches any out-of-band children required by the Kind.
func dataTypeFromJSON(raw json.RawMessage, children []Field) (DataType, error) {
	trimmed := skipSpace(raw)
	var dt DataType
	var err error
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return DataType{}, fmt.Errorf("%w: %v", ErrInvalidType, err)
		}
		dt, err = ParseDataType(s)
		if err != nil {
			return DataType{}, err
		}
	} else {
		var r rawDataType
		if err := json.Unmarshal(raw, &r); err != nil {
			return DataType{}, fmt.Errorf("%w: %v", ErrInvalidType, err)
		}
		dt, err = dataTypeFromRaw(r)
		if err != nil {
			return DataType{}, err
		}
	}
	return attachChildren(dt, children)
}

func dataTypeFromRaw(r rawDataType) (DataType, error) {
	k, ok := identToKind[r.Type]
	if !ok {
		return DataType{}, fmt.Errorf("%w: unknown type %q", ErrInvalidType, r.Type)
	}
	switch k {
	case FixedSizeBinary:
		return FixedSizeBinaryOf(r.ByteWidth), nil
	case FixedSizeList:
		return DataType{Kind: FixedSizeList, FixedSize: r.ListSize}, nil
	case Time32, Time64, Duration:
		u, ok := parseTimeUnit(r.Unit)
		if !ok {
			return DataType{}, fmt.Errorf("%w: unknown time unit %q", ErrInvalidType, r.Unit)
		}
		return DataType{Kind: k, Unit: u}, nil
	case Timestamp:
		u, ok := parseTimeUnit(r.Unit)
		if !ok {
			return DataType{}, fmt.Errorf("%w: unknown time unit %q", ErrInvalidType, r.Unit)
		}
		return TimestampOf(u, r.Timezone), nil
	case Decimal128:
		return Decimal128Of(r.Precision, r.Scale), nil
	default:
		return scalar(k), nil
	}
}

// attachChildren binds children parsed out of band to the nested Kinds that
// require them (spec.md §4.A: "children is required for ... List, Struct,
// Map, Union, Dictionary, FixedSizeList(n)").
func attachChildren(dt DataType, children []Field) (DataType, error) {
	switch dt.Kind {
	case List, LargeList:
		if len(children) != 1 {
			return DataType{}, fmt.Errorf("%w: %s requires exactly one child", ErrInvalidChildren, dt.Kind)
		}
		c := children[0]
		dt.Child = &c
	case FixedSizeList:
		if len(children) != 1 {
			return DataType{}, fmt.Errorf("%w: FixedSizeList requires exactly one child", ErrInvalidChildren)
		}
		c := children[0]
		dt.Child = &c
	case Struct:
		dt.Children = children
	case Map:
		if len(children) != 1 || children[0].DataType.Kind != Struct || len(children[0].DataType.Children) != 2 {
			return DataType{}, fmt.Errorf("%w: Map requires one Struct{key,value} child", ErrInvalidChildren)
		}
		c := children[0]
		dt.Entry = &c
	case Dictionary:
		if len(children) != 2 {
			return DataType{}, fmt.Errorf("%w: Dictionary requires exactly two children named key and value", ErrInvalidChildren)
		}
		var key, value *Field
		for i := range children {
			switch children[i].Name {
			case "key":
				key = &children[i]
			case "value":
				value = &children[i]
			}
		}
		if key == nil || value == nil {
			return DataType{}, fmt.Errorf("%w: Dictionary children must be named key and value", ErrInvalidChildren)
		}
		if !key.DataType.Kind.IsInteger() {
			return DataType{}, fmt.Errorf("%w: Dictionary key must be an integer type", ErrInvalidChildren)
		}
		dt.IndexType = &key.DataType
		dt.ValueType = &value.DataType
	case Union:
		variants := make([]UnionVariant, len(children))
		for i, c := range children {
			variants[i] = UnionVariant{TypeID: int8(i), Field: c}
		}
		dt.Variants = variants
	default:
		if len(children) != 0 {
			return DataType{}, fmt.Errorf("%w: %s does not accept children", ErrInvalidChildren, dt.Kind)
		}
	}
	return dt, nil
}

// ToJSON serializes the Schema to the wire shape {"fields": [...]}.
func (s *Schema) ToJSON() ([]byte, error) {
	jfs := make([]jsonField, len(s.Fields))
	for i, f := range s.Fields {
		jf, err := fieldToJSON(f)
		if err != nil {
			return nil, err
		}
		jfs[i] = jf
	}
	return json.Marshal(struct {
		Fields []jsonField `json:"fields"`
	}{Fields: jfs})
}

func fieldToJSON(f Field) (jsonField, error) {
	jf := jsonField{Name: f.Name, Nullable: boolPtr(f.Nullable)}
	if len(f.Metadata) > 0 {
		jf.Metadata = f.Metadata
	}
	dt := f.DataType
	children, err := childrenToJSON(dt)
	if err != nil {
		return jsonField{}, err
	}
	jf.Children = children
	raw, err := json.Marshal(dt.String())
	if err != nil {
		return jsonField{}, err
	}
	jf.DataType = raw
	return jf, nil
}

func childrenToJSON(dt DataType) ([]jsonField, error) {
	switch dt.Kind {
	case List, LargeList, FixedSizeList:
		if dt.Child == nil {
			return nil, fmt.Errorf("%w: %s is missing its child", ErrInvalidChildren, dt.Kind)
		}
		jf, err := fieldToJSON(*dt.Child)
		if err != nil {
			return nil, err
		}
		return []jsonField{jf}, nil
	case Struct:
		out := make([]jsonField, len(dt.Children))
		for i, c := range dt.Children {
			jf, err := fieldToJSON(c)
			if err != nil {
				return nil, err
			}
			out[i] = jf
		}
		return out, nil
	case Map:
		if dt.Entry == nil {
			return nil, fmt.Errorf("%w: Map is missing its entry struct", ErrInvalidChildren)
		}
		jf, err := fieldToJSON(*dt.Entry)
		if err != nil {
			return nil, err
		}
		return []jsonField{jf}, nil
	case Dictionary:
		if dt.IndexType == nil || dt.ValueType == nil {
			return nil, fmt.Errorf("%w: Dictionary is missing key/value types", ErrInvalidChildren)
		}
		key := NewField("key", *dt.IndexType, false)
		value := NewField("value", *dt.ValueType, true)
		kj, err := fieldToJSON(key)
		if err != nil {
			return nil, err
		}
		vj, err := fieldToJSON(value)
		if err != nil {
			return nil, err
		}
		return []jsonField{kj, vj}, nil
	case Union:
		out := make([]jsonField, len(dt.Variants))
		for i, v := range dt.Variants {
			jf, err := fieldToJSON(v.Field)
			if err != nil {
				return nil, err
			}
			out[i] = jf
		}
		return out, nil
	default:
		return nil, nil
	}
}

func boolPtr(b bool) *bool { return &b }

// Validate enforces the invariants of spec.md §3.1.
func (s *Schema) Validate() error {
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if seen[f.Name] {
			return fmt.Errorf("%w: duplicate top-level field %q", ErrInvalidChildren, f.Name)
		}
		seen[f.Name] = true
		if err := validateField(f); err != nil {
			return err
		}
	}
	return nil
}

func validateField(f Field) error {
	if f.DataType.Kind == Null && !f.Nullable {
		return fmt.Errorf("%w: field %q is Null and must be nullable", ErrInvalidNullability, f.Name)
	}
	dt := f.DataType
	switch dt.Kind {
	case List, LargeList, FixedSizeList:
		if dt.Child == nil {
			return fmt.Errorf("%w: %s field %q has no child", ErrInvalidChildren, dt.Kind, f.Name)
		}
		if dt.Kind == FixedSizeList && dt.FixedSize < 0 {
			return fmt.Errorf("%w: FixedSizeList field %q has negative size", ErrInvalidChildren, f.Name)
		}
		return validateField(*dt.Child)
	case Struct:
		seen := make(map[string]bool, len(dt.Children))
		for _, c := range dt.Children {
			if seen[c.Name] {
				return fmt.Errorf("%w: duplicate struct field %q in %q", ErrInvalidChildren, c.Name, f.Name)
			}
			seen[c.Name] = true
			if err := validateField(c); err != nil {
				return err
			}
		}
		return nil
	case Map:
		if dt.Entry == nil || dt.Entry.DataType.Kind != Struct || len(dt.Entry.DataType.Children) != 2 {
			return fmt.Errorf("%w: Map field %q entry must be a two-field Struct", ErrInvalidChildren, f.Name)
		}
		return validateField(*dt.Entry)
	case Dictionary:
		if dt.IndexType == nil || !dt.IndexType.Kind.IsInteger() {
			return fmt.Errorf("%w: Dictionary field %q index type must be an integer", ErrInvalidChildren, f.Name)
		}
		if dt.ValueType == nil {
			return fmt.Errorf("%w: Dictionary field %q has no value type", ErrInvalidChildren, f.Name)
		}
		return nil
	case Union:
		for _, v := range dt.Variants {
			if err := validateField(v.Field); err != nil {
				return err
			}
		}
		return nil
	case FixedSizeBinary:
		if dt.FixedSize < 0 {
			return fmt.Errorf("%w: FixedSizeBinary field %q has negative size", ErrInvalidChildren, f.Name)
		}
	}
	return nil
}

// PatchStrategy rewrites a single top-level field's strategy metadata key
// directly in a serialized schema document, without a full decode/remarshal
// round trip -- useful when a caller already holds the schema bytes (e.g.
// freshly loaded from storage) and wants to attach a strategy discovered
// later by the tracer.
func PatchStrategy(doc []byte, fieldName string, s Strategy) ([]byte, error) {
	sc, err := FromJSON(doc)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, f := range sc.Fields {
		if f.Name == fieldName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: no field named %q", ErrInvalidChildren, fieldName)
	}
	path := fmt.Sprintf("fields.%d.metadata.%s", idx, StrategyKey)
	return sjson.SetBytes(doc, path, string(s))
}
