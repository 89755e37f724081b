package builder

import (
	"github.com/arrowtrait/traitarrow/event"
	"github.com/arrowtrait/traitarrow/internal/buffers"
)

// nullBuilder accepts only Null/Default events; every row is absent
// (spec.md §4.E.1: the Null column carries no data, only a length).
type nullBuilder struct {
	base
	buf *buffers.CountBuffer
}

func newNullBuilder(b base) *nullBuilder {
	return &nullBuilder{base: b, buf: buffers.NewCountBuffer(true)}
}

func (nb *nullBuilder) Len() int { return nb.buf.Len() }

func (nb *nullBuilder) Accept(e event.Event) error {
	switch e.Tag {
	case event.Null, event.Default:
		return nb.buf.PushNullSeq()
	default:
		return nb.unexpected(e.Tag)
	}
}

// Take detaches the accumulated rows.
func (nb *nullBuilder) Take() *buffers.CountBuffer { return nb.buf.Take() }

func (nb *nullBuilder) Snapshot() any { return nb.Take() }

// boolBuilder backs Boolean columns.
type boolBuilder struct {
	base
	buf *buffers.PrimitiveBuffer[bool]
}

func newBoolBuilder(b base) *boolBuilder {
	return &boolBuilder{base: b, buf: buffers.NewPrimitiveBuffer[bool](b.field.Nullable)}
}

func (bb *boolBuilder) Len() int { return bb.buf.Len() }

func (bb *boolBuilder) Accept(e event.Event) error {
	switch e.Tag {
	case event.Bool:
		bb.buf.PushValue(e.Bool)
		return nil
	case event.Null:
		return bb.ctx(bb.buf.PushNull())
	case event.Default:
		bb.buf.PushDefault()
		return nil
	default:
		return bb.unexpected(e.Tag)
	}
}

func (bb *boolBuilder) Take() *buffers.PrimitiveBuffer[bool] { return bb.buf.Take() }

func (bb *boolBuilder) Snapshot() any { return bb.Take() }
