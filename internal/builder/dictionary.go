package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// dictionaryBuilder backs Dictionary(indexType, valueType): repeated string
// values are deduplicated into an append-only value list, and each row
// records only the index into it (spec.md §3.3 string_dictionary_encoding).
// Non-string dictionary values are an extension the tracer never emits and
// are out of scope here, matching spec.md's own closed set of coercions.
type dictionaryBuilder struct {
	base
	seen    map[string]int64
	values  []string
	indices *buffers.PrimitiveBuffer[int64]
}

func newDictionaryBuilder(b base) (Builder, error) {
	if b.field.DataType.ValueType == nil || !isStringLike(b.field.DataType.ValueType.Kind) {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "dictionary values must be string-like")
	}
	return &dictionaryBuilder{
		base: b, seen: make(map[string]int64),
		indices: buffers.NewPrimitiveBuffer[int64](b.field.Nullable),
	}, nil
}

func isStringLike(k schema.Kind) bool {
	switch k {
	case schema.Utf8, schema.LargeUtf8, schema.Utf8View:
		return true
	default:
		return false
	}
}

func (db *dictionaryBuilder) Len() int { return db.indices.Len() }

func (db *dictionaryBuilder) Accept(e event.Event) error {
	switch e.Tag {
	case event.Str, event.OwnedStr:
		idx, ok := db.seen[e.Str]
		if !ok {
			idx = int64(len(db.values))
			db.values = append(db.values, e.Str)
			db.seen[e.Str] = idx
		}
		db.indices.PushValue(idx)
		return nil
	case event.Null:
		return db.ctx(db.indices.PushNull())
	case event.Default:
		db.indices.PushDefault()
		return nil
	default:
		return db.unexpected(e.Tag)
	}
}

// Take detaches the index column and the accumulated unique dictionary
// values, in first-seen order.
func (db *dictionaryBuilder) Take() (*buffers.PrimitiveBuffer[int64], []string) {
	values := db.values
	db.values = nil
	db.seen = make(map[string]int64)
	return db.indices.Take(), values
}

func (db *dictionaryBuilder) Snapshot() any {
	indices, values := db.Take()
	return DictionarySnapshot{Indices: indices, Values: values}
}
