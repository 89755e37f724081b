package tracer

import (
	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

// toField converts one node's accumulated evidence into a schema.Field
// (spec.md §4.G: tracing "converges to a Schema"). An explicit Overwrite
// for this node's path wins outright, the same way WithOverwrite documents
// it: "replaces a traced subtree wholesale".
func (n *node) toField() (schema.Field, error) {
	if n.opts.Overwrites != nil {
		if ov, ok := n.opts.Overwrites[n.path]; ok {
			return ov, nil
		}
	}
	switch n.shape {
	case shapeUnknown:
		if !n.opts.AllowNullFields {
			return schema.Field{}, n.ctx(fieldpath.New(fieldpath.MissingField,
				"field %q was never observed with a typed value", n.path))
		}
		return schema.NewField(n.name, schema.NullType, true), nil
	case shapePrimitive:
		f := schema.NewField(n.name, n.dtype, n.nullable)
		if n.strategy != schema.StrategyNone {
			f = f.WithStrategy(n.strategy)
		}
		return f, nil
	case shapeList:
		childField, err := n.child.toField()
		if err != nil {
			return schema.Field{}, err
		}
		return schema.NewField(n.name, schema.ListOf(childField), n.nullable), nil
	case shapeStruct:
		return n.structToField()
	case shapeMap:
		return n.mapToField()
	case shapeUnion:
		return n.unionToField()
	default:
		return schema.Field{}, fieldpath.New(fieldpath.Custom, "tracer: unreachable shape in toField")
	}
}

func (n *node) structToField() (schema.Field, error) {
	children := make([]schema.Field, 0, n.fields.Len())
	for pair := n.fields.Oldest(); pair != nil; pair = pair.Next() {
		cf, err := pair.Value.toField()
		if err != nil {
			return schema.Field{}, err
		}
		children = append(children, cf)
	}
	f := schema.NewField(n.name, schema.StructOf(children...), n.nullable)
	switch {
	case n.tupleLike:
		f = f.WithStrategy(schema.TupleAsStruct)
	case n.mapEntryDecode:
		f = f.WithStrategy(schema.MapAsStruct)
	}
	return f, nil
}

func (n *node) mapToField() (schema.Field, error) {
	var keyField, valueField schema.Field
	var err error
	if n.key != nil {
		keyField, err = n.key.toField()
		if err != nil {
			return schema.Field{}, err
		}
	} else {
		keyField = schema.NewField("key", n.stringType(), false)
	}
	if n.value != nil {
		valueField, err = n.value.toField()
		if err != nil {
			return schema.Field{}, err
		}
	} else {
		valueField = schema.NewField("value", schema.NullType, true)
	}
	entry := schema.NewField("entries", schema.StructOf(
		schema.NewField("key", keyField.DataType, false),
		schema.NewField("value", valueField.DataType, valueField.Nullable),
	), false)
	return schema.NewField(n.name, schema.MapOf(entry, false), n.nullable), nil
}

// unionToField applies spec.md §4.G's enum collapsing rules:
// EnumsWithoutDataAsStrings folds a union whose variants never carried a
// payload into a single string column (SPEC_FULL supplemented feature 4);
// EnumsWithNamedFieldsAsStructs tags each struct-shaped variant with its
// strategy; the union itself is kept, and the builder/view pair build and
// read such a variant as an ordinary struct child.
func (n *node) unionToField() (schema.Field, error) {
	variants := make([]schema.UnionVariant, 0, n.variants.Len())
	allNull := true
	var typeID int8
	for pair := n.variants.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.shape != shapeUnknown {
			allNull = false
		}
		vf, err := pair.Value.toField()
		if err != nil {
			return schema.Field{}, err
		}
		if n.opts.EnumsWithNamedFieldsAsStructs && vf.DataType.Kind == schema.Struct {
			vf = vf.WithStrategy(schema.EnumsWithNamedFieldsAsStructs)
		}
		variants = append(variants, schema.UnionVariant{TypeID: typeID, Field: vf})
		typeID++
	}
	if n.opts.EnumsWithoutDataAsStrings && allNull && len(variants) > 0 {
		return schema.NewField(n.name, n.stringType(), n.nullable), nil
	}
	return schema.NewField(n.name, schema.UnionOf(variants...), n.nullable), nil
}
