package tracer

import (
	"regexp"

	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
	omap "github.com/wk8/go-ordered-map/v2"
)

// shape tags a node's TracerState (spec.md §4.G: "TracerState ∈ {Unknown,
// Primitive, List, Struct, Tuple, Union, Map}"). Tuple is folded into
// Struct here (as the builder side is, via TupleAsStruct) rather than kept
// as a sixth shape: a tuple is a struct whose fields happen to be named by
// position, and nothing downstream needs to tell the two apart once that
// single strategy bit is set.
type shape int

const (
	shapeUnknown shape = iota
	shapePrimitive
	shapeList
	shapeStruct
	shapeUnion
	shapeMap
)

// node is one tree position of the tracer (spec.md §4.G). It owns its
// children directly, mirroring the no-back-reference discipline of
// internal/builder and internal/view (spec.md §9 "Shared state across the
// tree").
type node struct {
	name string
	path string
	opts *Options

	shape    shape
	nullable bool

	// shapePrimitive
	dtype    schema.DataType
	strategy schema.Strategy

	// shapeList
	child *node

	// shapeStruct
	fields      *omap.OrderedMap[string, *node]
	tupleLike   bool
	seenThisRow map[string]bool
	// mapEntryDecode marks a shapeStruct node that is actually tracing a
	// StartMap stream under MapAsStruct (spec.md §4.G: "map_as_struct=true:
	// encountering StartMap creates a struct tracer"); its fields are
	// discovered from the literal string keys in the entry stream rather
	// than from StructField markers. mePhase is its tiny per-entry state:
	// 0 idle, 1 expecting the entry's key literal.
	mapEntryDecode bool
	mePhase        int

	// shapeUnion
	variants *omap.OrderedMap[string, *node]

	// shapeMap (MapAsStruct disabled): key/value are the two column
	// tracers every entry's key/value resolve to; entry is the synthetic
	// two-field struct node every Item routes through, mirroring
	// internal/builder's mapBuilder which routes every Item at the same
	// entry structBuilder (spec.md §4.E.3: "Map's wire shape as
	// List<Struct<key,value>>").
	key   *node
	value *node
	entry *node

	router *nodeRouter
}

func newOrderedFields() *omap.OrderedMap[string, *node] {
	return omap.New[string, *node]()
}

func newNode(name, path string, opts *Options) *node {
	return &node{name: name, path: path, opts: opts}
}

// nodeRouter forwards one nested value's events to a child node, the tracer
// analogue of internal/builder's valueRouter.
type nodeRouter struct {
	child *node
	depth int
}

func (r *nodeRouter) Feed(e event.Event) (done bool, err error) {
	if err := r.child.accept(e); err != nil {
		return false, err
	}
	switch e.Tag {
	case event.StartSequence, event.StartTuple, event.StartStruct, event.StartMap:
		r.depth++
		return false, nil
	case event.EndSequence, event.EndTuple, event.EndStruct, event.EndMap:
		r.depth--
		return r.depth == 0, nil
	case event.Some, event.Variant, event.StructField, event.Item:
		return false, nil
	default:
		return r.depth == 0, nil
	}
}

var (
	utcDateRe   = regexp.MustCompile(`^[+-]?\d{4,6}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)
	naiveDateRe = regexp.MustCompile(`^[+-]?\d{4,6}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`)
)

// accept is the tracer's per-node Sink.Accept: it either resolves an
// Unknown node's shape from the first event it sees, or forwards to the
// handler for its established shape (spec.md §4.G: "each event either
// transitions the current node or creates children").
func (n *node) accept(e event.Event) error {
	if n.router != nil {
		done, err := n.router.Feed(e)
		if err != nil {
			return err
		}
		if done {
			n.router = nil
			n.afterChildComplete()
		}
		return nil
	}
	switch n.shape {
	case shapeUnknown:
		return n.acceptUnknown(e)
	case shapePrimitive:
		return n.acceptPrimitive(e)
	case shapeList:
		return n.acceptList(e)
	case shapeStruct:
		return n.acceptStruct(e)
	case shapeUnion:
		return n.acceptUnion(e)
	case shapeMap:
		return n.acceptMap(e)
	default:
		return fieldpath.New(fieldpath.Custom, "tracer: unreachable shape")
	}
}

// afterChildComplete lets a container shape react once a routed child value
// finishes. Every shape's next item is bracketed by its own fresh
// Item/StructField/Variant marker, so there is nothing left to do here; kept
// as a hook in case a future shape needs multi-phase routing within one
// value.
func (n *node) afterChildComplete() {}

// ensureMapEntry lazily builds the synthetic two-field struct node
// ("key","value") every map Item routes through, the tracer analogue of
// internal/builder's mapBuilder.entry.
func (n *node) ensureMapEntry() *node {
	if n.entry == nil {
		n.key = newNode("key", fieldpath.Key(n.path), n.opts)
		n.value = newNode("value", fieldpath.Value(n.path), n.opts)
		e := newNode("entries", n.path, n.opts)
		e.shape = shapeStruct
		e.fields = newOrderedFields()
		e.fields.Set("key", n.key)
		e.fields.Set("value", n.value)
		e.seenThisRow = map[string]bool{}
		n.entry = e
	}
	return n.entry
}

func (n *node) ctx(err error) error {
	return fieldpath.Annotate(err, n.path, n.dtype.Kind.String())
}
