package system

import (
	"bytes"
	"sync"
)

// maxPooledBuffer caps the size of buffers returned to the pool so one huge
// frame does not pin memory for the rest of a run.
const maxPooledBuffer = 1 << 20

// BufferPool reuses encode buffers across frames to reduce GC pressure.
type BufferPool struct {
	pool sync.Pool
}

var globalPool = NewBufferPool()

// NewBufferPool creates an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// GetBuffer returns an empty buffer from the shared pool.
func GetBuffer() *bytes.Buffer {
	return globalPool.Get()
}

// PutBuffer returns a buffer to the shared pool.
func PutBuffer(b *bytes.Buffer) {
	globalPool.Put(b)
}

func (p *BufferPool) Get() *bytes.Buffer {
	b := p.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func (p *BufferPool) Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxPooledBuffer {
		return
	}
	p.pool.Put(b)
}
