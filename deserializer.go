package traitarrow

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/hostshim"
	"github.com/arrowtrait/traitarrow/internal/builder"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/internal/view"
	"github.com/arrowtrait/traitarrow/schema"
)

// Deserializer is the read-side counterpart of Builder: a positional view
// tree over a fixed set of columns, exposed either as a raw
// event.RandomAccessDeserializer for a caller-supplied host visitor (§4.D's
// "a positional Deserializer consumes a ViewTree and drives a host
// visitor") or, via Row, decoded directly into plain Go values through
// hostshim.GoVisitor.
type Deserializer struct {
	v view.View
}

// NewDeserializer builds a Deserializer directly from a schema.Schema and
// a root StructSnapshot -- typically one Builder.BuildArrays() produced,
// but equally one read back from storage and reconstructed independently
// of any Builder.
func NewDeserializer(sc *schema.Schema, snapshot builder.StructSnapshot) (*Deserializer, error) {
	return newDeserializerFromSnapshot(rootField(sc), snapshot)
}

func newDeserializerFromSnapshot(root schema.Field, snapshot builder.StructSnapshot) (*Deserializer, error) {
	v, err := view.New(root, fieldpath.Root, snapshot)
	if err != nil {
		return nil, err
	}
	return &Deserializer{v: v}, nil
}

// Len reports the number of rows available.
func (d *Deserializer) Len() int { return d.v.Len() }

// IsEmpty reports whether there are no rows.
func (d *Deserializer) IsEmpty() bool { return d.v.Len() == 0 }

// View exposes the underlying RandomAccessDeserializer tree directly, for
// callers that want to drive their own host visitor instead of Row's
// built-in map[string]any reconstruction.
func (d *Deserializer) View() event.RandomAccessDeserializer { return d.v }

// Row decodes row i into a plain Go value (map[string]any for the root
// struct shape) via hostshim.GoVisitor.
func (d *Deserializer) Row(i int) (any, error) {
	return event.At(d.v, i)(hostshim.GoVisitor{})
}

// Rows decodes every row via Row, in order.
func (d *Deserializer) Rows() ([]any, error) {
	out := make([]any, d.v.Len())
	for i := range out {
		row, err := d.Row(i)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
