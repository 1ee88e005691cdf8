// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena_test

import (
	"testing"

	"code.hybscloud.com/katana/arena"
)

func TestAllocBumpsWithinChunk(t *testing.T) {
	a := arena.New()

	b1 := a.Alloc(16, 1)
	b2 := a.Alloc(16, 1)

	if len(b1) != 16 || len(b2) != 16 {
		t.Fatalf("Alloc returned wrong length: %d, %d", len(b1), len(b2))
	}

	b1[0] = 0xAA
	if b2[0] == 0xAA {
		t.Fatal("second allocation overlaps the first")
	}
}

func TestAllocGrowsNewChunk(t *testing.T) {
	a := arena.New()

	first := a.Alloc(8*1024, 1) // fills the default chunk exactly
	second := a.Alloc(16, 1)    // must start a new chunk

	first[0] = 1
	second[0] = 2
	if first[0] == second[0] {
		t.Fatal("allocations across chunk boundary alias")
	}
}

func TestBytesCopiesIndependently(t *testing.T) {
	a := arena.New()

	src := []byte("hello")
	got := arena.Bytes(a, src)
	src[0] = 'X'

	if string(got) != "hello" {
		t.Fatalf("Bytes: got %q, want %q (copy should not alias src)", got, "hello")
	}
}

func TestStringCopiesIndependently(t *testing.T) {
	a := arena.New()

	src := []byte("world")
	s := arena.String(a, string(src))
	src[0] = 'X'

	if s != "world" {
		t.Fatalf("String: got %q, want %q", s, "world")
	}
}

type point struct {
	X, Y int64
}

func TestSliceAndNewT(t *testing.T) {
	a := arena.New()

	pts := arena.Slice[point](a, 3)
	if len(pts) != 3 {
		t.Fatalf("Slice: got len %d, want 3", len(pts))
	}
	pts[1].X = 7

	p := arena.NewT[point](a)
	p.Y = 9
	if pts[1].X != 7 {
		t.Fatal("NewT allocation clobbered the earlier slice")
	}
}

func TestReleaseResetsArena(t *testing.T) {
	a := arena.Get()
	_ = a.Alloc(64, 1)
	a.Release()

	again := a.Alloc(64, 1)
	if len(again) != 64 {
		t.Fatalf("Alloc after Release: got len %d, want 64", len(again))
	}
}

func TestGetPutRoundTrip(t *testing.T) {
	a := arena.Get()
	_ = a.Alloc(128, 1)
	arena.Put(a)

	b := arena.Get()
	buf := b.Alloc(128, 1)
	if len(buf) != 128 {
		t.Fatalf("Alloc after Get/Put: got len %d, want 128", len(buf))
	}
	arena.Put(b)
}
