package buffers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsetPushGetSet(t *testing.T) {
	b := NewBitset()
	b.Push(true)
	b.Push(false)
	b.Push(true)
	assert.Equal(t, 3, b.Len())
	assert.True(t, b.Get(0))
	assert.False(t, b.Get(1))
	assert.True(t, b.Get(2))

	b.Set(1, true)
	assert.True(t, b.Get(1))
}

func TestBitsetTakeResets(t *testing.T) {
	b := NewBitset()
	b.Push(true)
	b.Push(false)

	taken := b.Take()
	assert.Equal(t, 2, taken.Len())
	assert.Equal(t, 0, b.Len())
	b.Push(true)
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Get(0))
}

func TestPrimitiveBufferPushAndNull(t *testing.T) {
	b := NewPrimitiveBuffer[int64](true)
	b.PushValue(10)
	require.NoError(t, b.PushNull())
	b.PushValue(30)

	assert.Equal(t, []int64{10, 0, 30}, b.Values())
	assert.True(t, b.Validity().Get(0))
	assert.False(t, b.Validity().Get(1))
	assert.True(t, b.Validity().Get(2))
}

func TestPrimitiveBufferNonNullableRejectsNull(t *testing.T) {
	b := NewPrimitiveBuffer[int64](false)
	err := b.PushNull()
	assert.ErrorIs(t, err, ErrNotNullable)
}

func TestPrimitiveBufferTakeLeavesEmptySuccessor(t *testing.T) {
	b := NewPrimitiveBuffer[int32](false)
	b.PushValue(1)
	b.PushValue(2)

	taken := b.Take()
	assert.Equal(t, 2, taken.Len())
	assert.Equal(t, 0, b.Len())
	b.PushValue(3)
	assert.Equal(t, []int32{3}, b.Values())
}

func TestBytesBufferPushAndGet(t *testing.T) {
	b := NewBytesBuffer[int32](true)
	b.PushBytes([]byte("hello"))
	require.NoError(t, b.PushNull())
	b.PushBytes([]byte("world"))

	assert.Equal(t, []byte("hello"), b.Get(0))
	assert.Equal(t, []byte{}, b.Get(1))
	assert.Equal(t, []byte("world"), b.Get(2))
	assert.True(t, b.Validity().Get(0))
	assert.False(t, b.Validity().Get(1))
}

func TestBytesBufferTake(t *testing.T) {
	b := NewBytesBuffer[int64](false)
	b.PushBytes([]byte("a"))
	taken := b.Take()
	assert.Equal(t, 1, taken.Len())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, []int64{0}, b.Offsets())
}

func TestCountBufferStartAndNull(t *testing.T) {
	b := NewCountBuffer(true)
	b.StartSeq()
	require.NoError(t, b.PushNullSeq())
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.Validity().Get(0))
	assert.False(t, b.Validity().Get(1))
}

func TestCountBufferNonNullableRejectsNull(t *testing.T) {
	b := NewCountBuffer(false)
	err := b.PushNullSeq()
	assert.ErrorIs(t, err, ErrNotNullable)
}

func TestOffsetsBufferSequenceLifecycle(t *testing.T) {
	b := NewOffsetsBuffer[int32](true)

	b.StartSeq()
	b.PushItem()
	b.PushItem()
	b.EndSeq()

	b.StartSeq()
	b.EndSeq()

	require.NoError(t, b.PushNullSeq())

	assert.Equal(t, []int32{0, 2, 2, 2}, b.Offsets())
	assert.Equal(t, 3, b.Len())
	assert.True(t, b.Validity().Get(0))
	assert.True(t, b.Validity().Get(1))
	assert.False(t, b.Validity().Get(2))
}

func TestOffsetsBufferPushDefaultSeq(t *testing.T) {
	b := NewOffsetsBuffer[int32](false)
	b.PushDefaultSeq()
	assert.Equal(t, []int32{0, 0}, b.Offsets())
	assert.Equal(t, 1, b.Len())
}

func TestBytesViewBufferInlineAndSpilled(t *testing.T) {
	b := NewBytesViewBuffer(true)
	short := []byte("hi")
	long := []byte("this value is definitely longer than twelve bytes")

	b.PushBytes(short)
	b.PushBytes(long)
	require.NoError(t, b.PushNull())

	assert.Equal(t, short, b.Get(0))
	assert.Equal(t, long, b.Get(1))
	assert.Equal(t, []byte{}, b.Get(2))
	assert.True(t, b.Validity().Get(0))
	assert.False(t, b.Validity().Get(2))
}
