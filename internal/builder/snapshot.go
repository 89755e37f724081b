package builder

import "github.com/arrowtrait/traitarrow/internal/buffers"

// The snapshot types below are what Builder.Snapshot() returns for the
// container kinds, bundling a detached buffer with the child Builder(s) it
// indexes into. internal/view type-asserts the result to the snapshot type
// its schema.Field's Kind implies -- the Field already pins down which Go
// type Snapshot() must have returned, so no further tagging is needed.
type ListSnapshot32 struct {
	Offsets *buffers.OffsetsBuffer[int32]
	Child   Builder
}

type ListSnapshot64 struct {
	Offsets *buffers.OffsetsBuffer[int64]
	Child   Builder
}

type FixedSizeListSnapshot struct {
	Presence *buffers.CountBuffer
	Child    Builder
	Size     int32
}

type StructSnapshot struct {
	Presence *buffers.CountBuffer
	Children []Builder
}

type MapSnapshot struct {
	Offsets *buffers.OffsetsBuffer[int32]
	Entry   Builder
}

type DictionarySnapshot struct {
	Indices *buffers.PrimitiveBuffer[int64]
	Values  []string
}

type UnionSnapshot struct {
	Types    *buffers.PrimitiveBuffer[int8]
	Offsets  *buffers.PrimitiveBuffer[int32]
	Children []Builder
}
