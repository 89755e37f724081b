package tracer

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// Tracer accumulates event evidence across any number of sample rows and
// converges it to a schema.Schema (spec.md §4.G). It implements event.Sink
// so a host can feed it the same event stream it would otherwise feed a
// root struct builder.
type Tracer struct {
	opts Options
	root *node
}

// New starts a Tracer whose top level is an (initially empty) struct of
// fields, matching how a Schema is itself an ordered list of top-level
// Fields (spec.md §4.A).
func New(opts ...Option) *Tracer {
	o := newOptions(opts)
	root := newNode(fieldpath.Root, fieldpath.Root, &o)
	root.shape = shapeStruct
	root.fields = newOrderedFields()
	root.seenThisRow = map[string]bool{}
	return &Tracer{opts: o, root: root}
}

// Accept feeds one event of the top-level row stream (spec.md §4.G). A
// caller traces N rows by wrapping each with StartStruct/EndStruct (or
// StartMap/EndMap under MapAsStruct) the same way a real struct builder
// would be driven.
func (t *Tracer) Accept(e event.Event) error { return t.root.accept(e) }

// Finalize converges the accumulated evidence into a schema.Schema. It may
// be called repeatedly; tracing may continue afterward with more rows.
func (t *Tracer) Finalize() (*schema.Schema, error) {
	f, err := t.root.toField()
	if err != nil {
		return nil, err
	}
	sc := &schema.Schema{Fields: f.DataType.Children}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}
