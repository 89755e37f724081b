package builder

import "github.com/arrowtrait/traitarrow/event"

// valueRouter forwards a single nested value's events to a child Sink and
// reports when that value is complete. It is the mechanism every container
// builder (list, struct, map, union) uses to recurse without the flat event
// stream itself carrying any tree structure: Start*/End* pairs nest a depth
// counter, any other event at depth 0 is itself a complete scalar value.
type valueRouter struct {
	child event.Sink
	depth int
}

// Feed forwards e to the router's child and reports whether the value this
// router was opened for is now fully consumed.
func (r *valueRouter) Feed(e event.Event) (done bool, err error) {
	if err := r.child.Accept(e); err != nil {
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
		// Non-terminal markers: the value they introduce follows.
		return false, nil
	default:
		return r.depth == 0, nil
	}
}

// drainSink discards every event it receives. Paired with valueRouter it
// consumes and ignores one entire value subtree -- the mechanism an
// unresolved struct field name uses to skip its value without aborting the
// row (spec.md §4.E.1, §4.D).
type drainSink struct{}

func (drainSink) Accept(event.Event) error { return nil }
