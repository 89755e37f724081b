// Package hostshim stands in for spec.md §1's "external collaborator": the
// concrete host visitor/framework that actually produces or consumes the
// neutral event stream. It walks arbitrary Go values (decoded JSON,
// map[string]any, structs, slices) into event.Sink on the write side, and
// implements event.Visitor to rebuild plain Go values on the read side.
// Grounded on loicalleyne-bodkin's reader.InputMap, which turns arbitrary
// structured input into map[string]any via goccy/go-json (UseNumber) for
// JSON text and go-viper/mapstructure/v2 for everything else.
package hostshim

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"

	"github.com/arrowtrait/traitarrow/event"
)

var (
	ErrUndefinedInput = errors.New("hostshim: nil input")
	ErrInvalidInput   = errors.New("hostshim: invalid input")
)

// ToMap decodes arbitrary structured input into map[string]any: JSON text
// or bytes decode through goccy/go-json with UseNumber (so integers survive
// round-trip instead of collapsing to float64), anything else decodes
// through mapstructure with struct fields keyed by their json tag (the same
// names walkReflectStruct emits). Adapted from loicalleyne-bodkin's
// reader.InputMap.
func ToMap(a any) (map[string]any, error) {
	m := map[string]any{}
	switch input := a.(type) {
	case nil:
		return nil, ErrUndefinedInput
	case map[string]any:
		return input, nil
	case []byte:
		return decodeJSONMap(input)
	case string:
		return decodeJSONMap([]byte(input))
	default:
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: &m})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := dec.Decode(a); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return m, nil
}

func decodeJSONMap(raw []byte) (map[string]any, error) {
	m := map[string]any{}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	if err := d.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return m, nil
}

// WalkRow coerces a through ToMap and feeds it to sink as one bracketed
// StartStruct/.../EndStruct row (spec.md §4.E.1) -- the shape both the
// tracer and a root struct builder expect to be driven with.
func WalkRow(a any, sink event.Sink) error {
	m, err := ToMap(a)
	if err != nil {
		return err
	}
	return WalkStruct(m, sink)
}

// WalkStruct feeds one map[string]any as a StructField-bracketed struct.
// Keys are visited in sorted order so repeated traces of maps with the
// same keys produce a stable field order.
func WalkStruct(m map[string]any, sink event.Sink) error {
	if err := sink.Accept(event.EvStartStruct()); err != nil {
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := sink.Accept(event.EvStructField(k)); err != nil {
			return err
		}
		if err := WalkValue(m[k], sink); err != nil {
			return err
		}
	}
	return sink.Accept(event.EvEndStruct())
}

// WalkValue pushes one arbitrary Go value's event(s) to sink, recursing
// into nested containers as needed.
func WalkValue(v any, sink event.Sink) error {
	if v == nil {
		return sink.Accept(event.EvNull())
	}
	switch t := v.(type) {
	case bool:
		return sink.Accept(event.EvBool(t))
	case string:
		return sink.Accept(event.EvOwnedStr(t))
	case json.Number:
		return walkJSONNumber(t, sink)
	case []byte:
		return sink.Accept(event.EvOwnedStr(string(t)))
	case time.Time:
		return sink.Accept(event.EvOwnedStr(t.UTC().Format("2006-01-02T15:04:05.999999999Z")))
	case int:
		return sink.Accept(event.EvI64(int64(t)))
	case int8:
		return sink.Accept(event.EvI8(t))
	case int16:
		return sink.Accept(event.EvI16(t))
	case int32:
		return sink.Accept(event.EvI32(t))
	case int64:
		return sink.Accept(event.EvI64(t))
	case uint:
		return sink.Accept(event.EvU64(uint64(t)))
	case uint8:
		return sink.Accept(event.EvU8(t))
	case uint16:
		return sink.Accept(event.EvU16(t))
	case uint32:
		return sink.Accept(event.EvU32(t))
	case uint64:
		return sink.Accept(event.EvU64(t))
	case float32:
		return sink.Accept(event.EvF32(t))
	case float64:
		return sink.Accept(event.EvF64(t))
	case map[string]any:
		return WalkStruct(t, sink)
	case []any:
		return walkSlice(t, sink)
	}
	return walkReflect(reflect.ValueOf(v), sink)
}

func walkJSONNumber(n json.Number, sink event.Sink) error {
	if i, err := n.Int64(); err == nil {
		return sink.Accept(event.EvI64(i))
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return sink.Accept(event.EvF64(f))
}

func walkSlice(xs []any, sink event.Sink) error {
	if err := sink.Accept(event.EvStartSequence()); err != nil {
		return err
	}
	for _, x := range xs {
		if err := sink.Accept(event.EvItem()); err != nil {
			return err
		}
		if err := WalkValue(x, sink); err != nil {
			return err
		}
	}
	return sink.Accept(event.EvEndSequence())
}

// walkReflect is the fallback for concrete Go types that didn't match one
// of WalkValue's direct cases: a typed slice/array, a pointer, a struct
// value (as opposed to map[string]any), or a typed map.
func walkReflect(rv reflect.Value, sink event.Sink) error {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return sink.Accept(event.EvNull())
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if err := sink.Accept(event.EvStartSequence()); err != nil {
			return err
		}
		for i := 0; i < rv.Len(); i++ {
			if err := sink.Accept(event.EvItem()); err != nil {
				return err
			}
			if err := WalkValue(rv.Index(i).Interface(), sink); err != nil {
				return err
			}
		}
		return sink.Accept(event.EvEndSequence())
	case reflect.Map:
		return walkReflectMap(rv, sink)
	case reflect.Struct:
		return walkReflectStruct(rv, sink)
	case reflect.Bool:
		return sink.Accept(event.EvBool(rv.Bool()))
	case reflect.String:
		return sink.Accept(event.EvOwnedStr(rv.String()))
	case reflect.Int, reflect.Int64:
		return sink.Accept(event.EvI64(rv.Int()))
	case reflect.Int8:
		return sink.Accept(event.EvI8(int8(rv.Int())))
	case reflect.Int16:
		return sink.Accept(event.EvI16(int16(rv.Int())))
	case reflect.Int32:
		return sink.Accept(event.EvI32(int32(rv.Int())))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return sink.Accept(event.EvU64(rv.Uint()))
	case reflect.Uint8:
		return sink.Accept(event.EvU8(uint8(rv.Uint())))
	case reflect.Uint16:
		return sink.Accept(event.EvU16(uint16(rv.Uint())))
	case reflect.Uint32:
		return sink.Accept(event.EvU32(uint32(rv.Uint())))
	case reflect.Float32:
		return sink.Accept(event.EvF32(float32(rv.Float())))
	case reflect.Float64:
		return sink.Accept(event.EvF64(rv.Float()))
	default:
		return fmt.Errorf("%w: unsupported Go kind %s", ErrInvalidInput, rv.Kind())
	}
}

// walkReflectMap emits a `StartMap, (Item, <entry-struct>)*, EndMap` stream
// (spec.md §4.E.3's Map-as-List<Struct<key,value>> wire shape), sorting
// keys by their string form for determinism.
func walkReflectMap(rv reflect.Value, sink event.Sink) error {
	if err := sink.Accept(event.EvStartMap()); err != nil {
		return err
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	for _, k := range keys {
		if err := sink.Accept(event.EvItem()); err != nil {
			return err
		}
		if err := sink.Accept(event.EvStartStruct()); err != nil {
			return err
		}
		if err := sink.Accept(event.EvStructField("key")); err != nil {
			return err
		}
		if err := WalkValue(k.Interface(), sink); err != nil {
			return err
		}
		if err := sink.Accept(event.EvStructField("value")); err != nil {
			return err
		}
		if err := WalkValue(rv.MapIndex(k).Interface(), sink); err != nil {
			return err
		}
		if err := sink.Accept(event.EvEndStruct()); err != nil {
			return err
		}
	}
	return sink.Accept(event.EvEndMap())
}

func walkReflectStruct(rv reflect.Value, sink event.Sink) error {
	if err := sink.Accept(event.EvStartStruct()); err != nil {
		return err
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
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
		if err := sink.Accept(event.EvStructField(name)); err != nil {
			return err
		}
		if err := WalkValue(rv.Field(i).Interface(), sink); err != nil {
			return err
		}
	}
	return sink.Accept(event.EvEndStruct())
}

func indexComma(s string) int {
	for i, r := range s {
		if r == ',' {
			return i
		}
	}
	return -1
}
