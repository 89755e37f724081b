package tracer

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
)

// acceptList handles a node already resolved to shapeList: every Item opens
// a router onto the single shared element tracer (spec.md §4.E.3's list
// builder routes every Item at the same child the same way).
func (n *node) acceptList(e event.Event) error {
	switch e.Tag {
	case event.StartSequence, event.StartTuple, event.EndSequence, event.EndTuple:
		return nil
	case event.Item:
		n.router = &nodeRouter{child: n.child}
		return nil
	case event.Null:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on list node", e.Tag)
	}
}

// acceptStruct handles a node resolved to shapeStruct: StructField(name)
// opens a router onto that field's tracer, discovering fields in the order
// first seen (spec.md §4.G field discovery). A field absent from a given
// row is marked nullable at EndStruct rather than erroring -- partial rows
// are evidence of optionality, not a conflict. MapAsStruct nodes (StartMap
// instead of StartStruct) are handled by the companion method below since
// their fields come from literal entry keys instead of StructField markers.
func (n *node) acceptStruct(e event.Event) error {
	if n.mapEntryDecode {
		return n.acceptStructAsMap(e)
	}
	switch e.Tag {
	case event.StartStruct, event.StartTuple:
		n.seenThisRow = map[string]bool{}
		return nil
	case event.EndStruct, event.EndTuple:
		for pair := n.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !n.seenThisRow[pair.Key] {
				pair.Value.nullable = true
			}
		}
		return nil
	case event.StructField:
		name := e.VariantName
		child, ok := n.fields.Get(name)
		if !ok {
			child = newNode(name, fieldpath.Child(n.path, name), n.opts)
			n.fields.Set(name, child)
		}
		n.seenThisRow[name] = true
		n.router = &nodeRouter{child: child}
		return nil
	case event.Null:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on struct node", e.Tag)
	}
}

// acceptStructAsMap traces a StartMap stream into struct fields keyed by the
// literal string seen for each entry (spec.md §4.G "map_as_struct=true").
// Its state machine is just wide enough to read one Item's key (a bare
// Str/OwnedStr, per spec.md §4.D's map grammar "StartMap, (Str(k),
// <value>)*, EndMap") before routing the value portion to that key's field.
func (n *node) acceptStructAsMap(e event.Event) error {
	if n.mePhase == 1 {
		if e.Tag != event.Str && e.Tag != event.OwnedStr {
			return fieldpath.New(fieldpath.IncompatibleType, "tracer: map-as-struct key must be a string, got %s", e.Tag)
		}
		key := e.Str
		child, ok := n.fields.Get(key)
		if !ok {
			child = newNode(key, fieldpath.Child(n.path, key), n.opts)
			n.fields.Set(key, child)
		}
		n.seenThisRow[key] = true
		n.mePhase = 0
		n.router = &nodeRouter{child: child}
		return nil
	}
	switch e.Tag {
	case event.StartMap:
		n.seenThisRow = map[string]bool{}
		return nil
	case event.EndMap:
		for pair := n.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !n.seenThisRow[pair.Key] {
				pair.Value.nullable = true
			}
		}
		return nil
	case event.Item:
		n.mePhase = 1
		return nil
	case event.Null:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on map-as-struct node", e.Tag)
	}
}

// acceptMap handles a node resolved to shapeMap (MapAsStruct disabled):
// every Item routes through the shared entry struct node (key, value),
// matching the `Item, StartStruct, StructField("key"), <k>,
// StructField("value"), <v>, EndStruct` wire shape internal/builder's
// mapBuilder expects from its own entry structBuilder.
func (n *node) acceptMap(e event.Event) error {
	switch e.Tag {
	case event.StartMap, event.EndMap:
		return nil
	case event.Item:
		n.router = &nodeRouter{child: n.ensureMapEntry()}
		return nil
	case event.Null:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on map node", e.Tag)
	}
}

// acceptUnion handles a node resolved to shapeUnion: each Variant(name)
// opens a router onto that variant's tracer, discovering variants in the
// order first seen (spec.md §4.E.9's union builder does the analogous
// thing at write time, assigning a fresh type id to each newly seen name).
func (n *node) acceptUnion(e event.Event) error {
	switch e.Tag {
	case event.Variant:
		name := e.VariantName
		child, ok := n.variants.Get(name)
		if !ok {
			child = newNode(name, fieldpath.Child(n.path, name), n.opts)
			n.variants.Set(name, child)
		}
		n.router = &nodeRouter{child: child}
		return nil
	case event.Null:
		n.nullable = true
		return nil
	case event.Default:
		return nil
	default:
		return fieldpath.New(fieldpath.UnexpectedEvent, "tracer: unexpected event %s on union node", e.Tag)
	}
}
