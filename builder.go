// Package traitarrow is the top-level driver spec.md §4.H describes: a
// thin entry point that owns an outer struct builder configured from a
// schema.Schema, and symmetrically a view tree exposed as a Deserializer.
// Grounded on loicalleyne-bodkin's Bodkin type (bodkin.go), the single
// outward-facing handle wrapping the builder tree's root; generalized here
// from Bodkin's incremental-unification role to a fixed-schema push/build
// driver over the neutral event/builder/view stack instead of arrow-go
// builders directly.
package traitarrow

import (
	"github.com/arrowtrait/traitarrow/hostshim"
	"github.com/arrowtrait/traitarrow/internal/builder"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// Builder owns one outer struct builder covering every field of a
// schema.Schema (spec.md §4.H: "push(record), extend(records),
// build_arrays()/build_record_batch()").
type Builder struct {
	sc *schema.Schema
	b  builder.Builder
}

// rootField wraps a Schema's fields as a single non-nullable Struct field,
// the shape every builder/view in this tree already expects to be rooted
// at (internal/builder's struct protocol, hostshim's WalkRow).
func rootField(sc *schema.Schema) schema.Field {
	return schema.NewField("$root", schema.StructOf(sc.Fields...), false)
}

// NewBuilder constructs a Builder for sc.
func NewBuilder(sc *schema.Schema) (*Builder, error) {
	b, err := builder.New(rootField(sc), fieldpath.Root)
	if err != nil {
		return nil, err
	}
	return &Builder{sc: sc, b: b}, nil
}

// Push coerces a (JSON text/bytes, map[string]any, or arbitrary Go value
// via hostshim) and feeds it to the outer builder as one row.
func (u *Builder) Push(a any) error {
	return hostshim.WalkRow(a, loggingSink{u.b})
}

// Extend pushes every row in rows in order, stopping at the first error.
func (u *Builder) Extend(rows []any) error {
	for _, r := range rows {
		if err := u.Push(r); err != nil {
			return err
		}
	}
	return nil
}

// Len reports how many rows have been pushed so far.
func (u *Builder) Len() int { return u.b.Len() }

// Schema returns the schema.Schema this Builder was constructed from.
func (u *Builder) Schema() *schema.Schema { return u.sc }

// BuildArrays detaches the accumulated columns into a view tree and
// returns it as a Deserializer, the read-side counterpart spec.md §4.H
// calls out ("given (schema, arrays) construct a view tree"). The
// Builder keeps its identity and may continue accepting rows afterward;
// Snapshot() leaves each buffer empty rather than freezing the builder.
func (u *Builder) BuildArrays() (*Deserializer, error) {
	snap := u.b.Snapshot()
	ss, ok := snap.(builder.StructSnapshot)
	if !ok {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "unexpected root snapshot type %T", snap)
	}
	return newDeserializerFromSnapshot(u.b.Field(), ss)
}
