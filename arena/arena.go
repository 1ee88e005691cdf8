// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena

import (
	"sync"
	"unsafe"
)

// defaultChunkSize is sized to comfortably hold one request's headers and
// decoded path parameters without a second chunk in the common case.
const defaultChunkSize = 8 * 1024

// chunkPool recycles chunk-sized byte slices across requests so a bursty
// request rate does not turn into a bursty allocation rate.
var chunkPool = sync.Pool{
	New: func() any {
		b := make([]byte, defaultChunkSize)
		return &b
	},
}

// Arena is a growable sequence of chunks bump-allocated from and released
// as a single unit. The zero value is not usable; construct with [Get] or
// [New].
//
// Arena is not safe for concurrent use: it is scoped to one request, owned
// by whichever goroutine is handling that request.
type Arena struct {
	chunks []*[]byte
	offset int // bump offset into the last chunk
}

// New creates a standalone Arena outside the shared pool. Prefer [Get]/[Put]
// on any hot path; New is for callers that need an arena with a lifetime
// the pool's reset-on-Put semantics don't fit (tests, one-off tooling).
func New() *Arena {
	return &Arena{}
}

// Get returns an Arena from the shared pool, ready for use.
func Get() *Arena {
	a := arenaPool.Get().(*Arena)
	return a
}

// Release returns a's chunks to the shared chunk pool and resets the
// arena to empty. Everything previously allocated from a must not be used
// afterward.
func (a *Arena) Release() {
	for _, c := range a.chunks {
		chunkPool.Put(c)
	}
	a.chunks = a.chunks[:0]
	a.offset = 0
}

// Put is an alias for a.Release that also returns the Arena struct itself
// to the arena pool, for symmetry with Get.
func Put(a *Arena) {
	a.Release()
	arenaPool.Put(a)
}

var arenaPool = sync.Pool{
	New: func() any { return &Arena{} },
}

// align rounds n up to a multiple of alignment, which must be a power of 2.
func align(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Alloc returns size bytes aligned to align, bumping the current chunk's
// offset or growing a new chunk if the current one does not have room. The
// returned slice is zeroed only on first use of a fresh pooled chunk byte
// range; callers that need a guaranteed-zero region should use [Slice] or
// [NewT], or clear it themselves.
func (a *Arena) Alloc(size, alignment int) []byte {
	if alignment < 1 {
		alignment = 1
	}
	if size <= 0 {
		return nil
	}

	if len(a.chunks) > 0 {
		cur := *a.chunks[len(a.chunks)-1]
		start := align(a.offset, alignment)
		if start+size <= len(cur) {
			a.offset = start + size
			return cur[start : start+size]
		}
	}

	chunkSize := defaultChunkSize
	if size > chunkSize {
		chunkSize = size
	}

	var chunk *[]byte
	if chunkSize == defaultChunkSize {
		chunk = chunkPool.Get().(*[]byte)
	} else {
		b := make([]byte, chunkSize)
		chunk = &b
	}
	a.chunks = append(a.chunks, chunk)
	a.offset = size
	return (*chunk)[:size]
}

// Bytes copies src into the arena and returns the copy. The returned slice
// shares no memory with src.
func Bytes(a *Arena, src []byte) []byte {
	dst := a.Alloc(len(src), 1)
	copy(dst, src)
	return dst
}

// String copies src into the arena and returns it as a string backed by
// arena memory. The string must not outlive the arena.
func String(a *Arena, src string) string {
	if len(src) == 0 {
		return ""
	}
	dst := a.Alloc(len(src), 1)
	copy(dst, src)
	return unsafe.String(unsafe.SliceData(dst), len(dst))
}

// Slice allocates a zeroed slice of n elements of T from the arena.
func Slice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * n
	alignment := int(unsafe.Alignof(zero))
	buf := a.Alloc(size, alignment)
	clear(buf) // recycled chunks still hold the previous request's bytes
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(buf))), n)
}

// NewT allocates a zeroed T from the arena and returns a pointer to it.
func NewT[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	alignment := int(unsafe.Alignof(zero))
	buf := a.Alloc(size, alignment)
	clear(buf)
	return (*T)(unsafe.Pointer(unsafe.SliceData(buf)))
}
