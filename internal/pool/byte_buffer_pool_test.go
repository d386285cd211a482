package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, len(bb.B))
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(TailBufferDefaultSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_MustWriteAndWriteTo(t *testing.T) {
	bb := NewByteBuffer(TailBufferDefaultSize)
	bb.MustWrite([]byte("pv.power="))
	bb.MustWrite([]byte("1234"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)
	assert.Equal(t, "pv.power=1234", out.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(TailBufferDefaultSize)
	bb.MustWrite([]byte("data"))

	_, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(TailBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, TailBufferDefaultSize)...)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), TailBufferDefaultSize+1024)
	assert.Equal(t, TailBufferDefaultSize, len(bb.B))
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(TailBufferDefaultSize)
	data := []byte("channel definitions must survive a reallocation")
	bb.B = append(bb.B, data...)

	bb.Grow(TailBufferDefaultSize * 2)

	assert.Equal(t, data, bb.B)
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(TailBufferDefaultSize)

	bb.ExtendOrGrow(TailBufferDefaultSize + 10)

	assert.Equal(t, TailBufferDefaultSize+10, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), TailBufferDefaultSize+10)
}

func TestTailAndFilePools_DifferentDefaultSizes(t *testing.T) {
	tail := GetTailBuffer()
	file := GetFileBuffer()
	defer PutTailBuffer(tail)
	defer PutFileBuffer(file)

	assert.GreaterOrEqual(t, cap(tail.B), TailBufferDefaultSize)
	assert.GreaterOrEqual(t, cap(file.B), FileBufferDefaultSize)
	assert.Less(t, TailBufferDefaultSize, FileBufferDefaultSize)
}

func TestPutTailBuffer_NilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		PutTailBuffer(nil)
	})
}

func TestGetPutTailBuffer_ResetsOnReturn(t *testing.T) {
	bb := GetTailBuffer()
	bb.MustWrite([]byte("sensitive"))

	PutTailBuffer(bb)

	assert.Equal(t, 0, len(bb.B))
}

func TestByteBufferPool_MaxThresholdDiscardsOversizedBuffer(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.Grow(10000)
	assert.Greater(t, cap(bb.B), 4096)

	p.Put(bb)

	fresh := p.Get()
	assert.LessOrEqual(t, cap(fresh.B), 4096*2)
}

func TestByteBufferPool_ZeroThresholdAcceptsAnySize(t *testing.T) {
	p := NewByteBufferPool(1024, 0)

	bb := p.Get()
	bb.Grow(1024 * 1024)
	p.Put(bb)

	bb2 := p.Get()
	assert.NotNil(t, bb2)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const goroutines = 50
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				bb := GetTailBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutTailBuffer(bb)
			}
		}()
	}
	wg.Wait()
}

type errorWriter struct {
	err error
}

func (ew *errorWriter) Write(p []byte) (int, error) {
	return 0, ew.err
}
