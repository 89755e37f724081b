package hostshim

import (
	"fmt"

	"github.com/arrowtrait/traitarrow/event"
)

// GoVisitor is the read-side event.Visitor that rebuilds plain Go values
// (map[string]any for struct/map rows, []any for sequences, native scalars
// otherwise) from a column's decoded events -- the read-side mirror of
// WalkValue. It carries no state of its own; every method's return value
// is what a caller gets back from RandomAccessDeserializer.DeserializeAny.
type GoVisitor struct{}

var _ event.Visitor = GoVisitor{}

func (GoVisitor) VisitNull() (any, error)         { return nil, nil }
func (GoVisitor) VisitBool(v bool) (any, error)    { return v, nil }
func (GoVisitor) VisitI8(v int8) (any, error)      { return v, nil }
func (GoVisitor) VisitI16(v int16) (any, error)    { return v, nil }
func (GoVisitor) VisitI32(v int32) (any, error)    { return v, nil }
func (GoVisitor) VisitI64(v int64) (any, error)    { return v, nil }
func (GoVisitor) VisitU8(v uint8) (any, error)     { return v, nil }
func (GoVisitor) VisitU16(v uint16) (any, error)   { return v, nil }
func (GoVisitor) VisitU32(v uint32) (any, error)   { return v, nil }
func (GoVisitor) VisitU64(v uint64) (any, error)   { return v, nil }
func (GoVisitor) VisitF32(v float32) (any, error)  { return v, nil }
func (GoVisitor) VisitF64(v float64) (any, error)  { return v, nil }
func (GoVisitor) VisitStr(v string) (any, error)   { return v, nil }

func (GoVisitor) VisitSeq(next func() (any, bool, error)) (any, error) {
	out := []any{}
	for {
		v, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

func (GoVisitor) VisitStruct(next func() (string, any, bool, error)) (any, error) {
	out := map[string]any{}
	for {
		k, v, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out[k] = v
	}
	return out, nil
}

func (GoVisitor) VisitMap(next func() (any, any, bool, error)) (any, error) {
	out := map[string]any{}
	for {
		k, v, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if ks, isStr := k.(string); isStr {
			out[ks] = v
		} else {
			out[fmt.Sprint(k)] = v
		}
	}
	return out, nil
}
