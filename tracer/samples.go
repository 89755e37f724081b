package tracer

import (
	"github.com/arrowtrait/traitarrow/hostshim"
	"github.com/arrowtrait/traitarrow/schema"
)

// FromSamples traces a schema from a slice of sample rows -- JSON
// text/bytes, map[string]any, or arbitrary Go values hostshim.ToMap can
// coerce (spec.md §4.G: "FromSamples(values, options)"). Each value is
// coerced to a row independently and fed through the same event stream a
// struct builder would consume.
func FromSamples(values []any, opts ...Option) (*schema.Schema, error) {
	t := New(opts...)
	for _, v := range values {
		if err := hostshim.WalkRow(v, t); err != nil {
			return nil, err
		}
	}
	return t.Finalize()
}
