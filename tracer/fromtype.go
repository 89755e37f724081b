package tracer

import (
	"reflect"
	"time"

	"github.com/arrowtrait/traitarrow/internal/fieldpath"
	"github.com/arrowtrait/traitarrow/schema"
)

var timeType = reflect.TypeOf(time.Time{})

// FromType traces a schema directly from T's Go type shape, with no sample
// values (spec.md §4.G "FromType(options)"). Unlike FromSamples, a
// self-describing type graph has no input-driven bound on recursion (a
// struct can reference itself), so every recursive step consumes one unit
// of Options.FromTypeBudget and fails with TooDeeplyNested once it runs out
// (SPEC_FULL supplemented feature 2). A zero budget means unbounded.
func FromType[T any](opts ...Option) (*schema.Schema, error) {
	o := newOptions(opts)
	rt := reflect.TypeOf((*T)(nil)).Elem()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fieldpath.New(fieldpath.IncompatibleType, "FromType requires a struct type, got %s", rt.Kind())
	}
	budget := o.FromTypeBudget
	fields, err := structFieldsFromType(rt, fieldpath.Root, &o, &budget)
	if err != nil {
		return nil, err
	}
	sc := &schema.Schema{Fields: fields}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func fieldFromType(rt reflect.Type, name, path string, opts *Options, budget *int) (schema.Field, error) {
	if opts.Overwrites != nil {
		if ov, ok := opts.Overwrites[path]; ok {
			return ov, nil
		}
	}
	if opts.FromTypeBudget > 0 {
		if *budget <= 0 {
			return schema.Field{}, fieldpath.New(fieldpath.TooDeeplyNested, "from_type_budget exhausted at %q", path)
		}
		*budget--
	}

	nullable := false
	for rt.Kind() == reflect.Pointer {
		nullable = true
		rt = rt.Elem()
	}
	if rt == timeType {
		return schema.NewField(name, schema.Date64Type, nullable).WithStrategy(schema.UtcStrAsDate64), nil
	}
	switch rt.Kind() {
	case reflect.Bool:
		return schema.NewField(name, schema.BooleanType, nullable), nil
	case reflect.String:
		return schema.NewField(name, stringTypeForOptions(opts), nullable), nil
	case reflect.Int, reflect.Int64:
		return schema.NewField(name, schema.Int64Type, nullable), nil
	case reflect.Int8:
		return schema.NewField(name, schema.Int8Type, nullable), nil
	case reflect.Int16:
		return schema.NewField(name, schema.Int16Type, nullable), nil
	case reflect.Int32:
		return schema.NewField(name, schema.Int32Type, nullable), nil
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return schema.NewField(name, schema.Uint64Type, nullable), nil
	case reflect.Uint8:
		return schema.NewField(name, schema.Uint8Type, nullable), nil
	case reflect.Uint16:
		return schema.NewField(name, schema.Uint16Type, nullable), nil
	case reflect.Uint32:
		return schema.NewField(name, schema.Uint32Type, nullable), nil
	case reflect.Float32:
		return schema.NewField(name, schema.Float32Type, nullable), nil
	case reflect.Float64:
		return schema.NewField(name, schema.Float64Type, nullable), nil
	case reflect.Slice, reflect.Array:
		if rt.Elem().Kind() == reflect.Uint8 {
			return schema.NewField(name, schema.BinaryType, nullable), nil
		}
		child, err := fieldFromType(rt.Elem(), "element", fieldpath.Element(path), opts, budget)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.NewField(name, schema.ListOf(child), nullable), nil
	case reflect.Map:
		if opts.MapAsStruct {
			return schema.Field{}, fieldpath.New(fieldpath.IncompatibleType,
				"FromType cannot enumerate a map's literal keys for MapAsStruct at %q", path)
		}
		keyField, err := fieldFromType(rt.Key(), "key", fieldpath.Key(path), opts, budget)
		if err != nil {
			return schema.Field{}, err
		}
		valueField, err := fieldFromType(rt.Elem(), "value", fieldpath.Value(path), opts, budget)
		if err != nil {
			return schema.Field{}, err
		}
		entry := schema.NewField("entries", schema.StructOf(
			schema.NewField("key", keyField.DataType, false),
			schema.NewField("value", valueField.DataType, valueField.Nullable),
		), false)
		return schema.NewField(name, schema.MapOf(entry, false), nullable), nil
	case reflect.Struct:
		children, err := structFieldsFromType(rt, path, opts, budget)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.NewField(name, schema.StructOf(children...), nullable), nil
	case reflect.Interface:
		return schema.NewField(name, schema.NullType, true), nil
	default:
		return schema.Field{}, fieldpath.New(fieldpath.IncompatibleType, "FromType: unsupported Go kind %s at %q", rt.Kind(), path)
	}
}

func structFieldsFromType(rt reflect.Type, path string, opts *Options, budget *int) ([]schema.Field, error) {
	fields := make([]schema.Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			if comma := indexComma(tag); comma >= 0 {
				tag = tag[:comma]
			}
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		f, err := fieldFromType(sf.Type, name, fieldpath.Child(path, name), opts, budget)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func stringTypeForOptions(opts *Options) schema.DataType {
	if opts.StringDictionaryEncoding {
		vt := schema.Utf8Type
		if opts.StringsAsLargeUtf8 {
			vt = schema.LargeUtf8Type
		}
		return schema.DictionaryOf(schema.Uint32Type, vt)
	}
	if opts.StringsAsLargeUtf8 {
		return schema.LargeUtf8Type
	}
	return schema.Utf8Type
}

func indexComma(s string) int {
	for i, r := range s {
		if r == ',' {
			return i
		}
	}
	return -1
}
