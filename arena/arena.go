// Package arena implements a per-record bump allocator.
//
// It exists to back the command tree (cmdtree): every Command, its section
// statistics, and the small parameter spans recorded alongside it are
// allocated here and released in a single batch when the owning record is
// destroyed. This mirrors the contract of the teacher's
// core/memory/arena.Arena, but is a pure-Go rewrite: gapid's arena is a cgo
// wrapper around a native bump allocator because gapid ultimately needs a
// byte-exact memory image to drive replay on the GPU. This core only needs
// Go-visible command objects, so the native half of that design is dropped
// and the bump/block/geometric-growth contract is kept.
package arena

import (
	"context"
	"fmt"

	"github.com/nyorain/vil/internal/keys"
)

const (
	initialBlockSize = 4 * 1024
	maxBlockSize     = 1 << 20
)

// Arena is a bump allocator. All allocations made through an Arena are
// released together when Dispose is called; freeing individual allocations
// is a no-op (see Free), so any container built on top of an Arena must
// tolerate that: a slice grown from arena memory keeps its old backing
// capacity allocated until Dispose.
type Arena struct {
	blocks      []block
	cur         int
	numAllocs   int
	numBytes    int
	nextBlockSz int
}

type block struct {
	data []byte
	off  int
}

// New constructs a new, empty Arena.
func New() *Arena {
	return &Arena{nextBlockSz: initialBlockSize}
}

// Stats holds allocation statistics of an Arena, mirroring
// core/memory/arena.Stats.
type Stats struct {
	NumAllocations    int
	NumBytesAllocated int
}

func (s Stats) String() string {
	return fmt.Sprintf("{allocs: %v, bytes: %v}", s.NumAllocations, s.NumBytesAllocated)
}

// Stats returns statistics of the current state of the Arena.
func (a *Arena) Stats() Stats {
	return Stats{NumAllocations: a.numAllocs, NumBytesAllocated: a.numBytes}
}

// Dispose releases every block owned by the arena. The Arena must not be
// used afterwards. Dispose is idempotent.
func (a *Arena) Dispose() {
	a.blocks = nil
	a.cur = 0
	a.numAllocs = 0
	a.numBytes = 0
}

// Allocate returns a byte slice of the given size, aligned to align bytes
// (align must be a power of two), backed by arena-owned memory. It never
// fails short of true OOM - a failed block allocation panics, since
// recording cannot meaningfully continue without memory (spec §4.1 failure
// mode: "fatal").
func (a *Arena) Allocate(size, align int) []byte {
	if size < 0 || align <= 0 || align&(align-1) != 0 {
		panic("arena: invalid size/align")
	}
	if len(a.blocks) == 0 {
		a.grow(size + align)
	}
	for {
		b := &a.blocks[a.cur]
		start := alignUp(b.off, align)
		if start+size <= len(b.data) {
			b.off = start + size
			a.numAllocs++
			a.numBytes += size
			return b.data[start : start+size : start+size]
		}
		if a.cur == len(a.blocks)-1 {
			a.grow(size + align)
			continue
		}
		a.cur++
	}
}

func (a *Arena) grow(minSize int) {
	sz := a.nextBlockSz
	for sz < minSize {
		sz *= 2
	}
	a.blocks = append(a.blocks, block{data: make([]byte, sz)})
	a.cur = len(a.blocks) - 1
	if a.nextBlockSz < maxBlockSize {
		a.nextBlockSz *= 2
		if a.nextBlockSz > maxBlockSize {
			a.nextBlockSz = maxBlockSize
		}
	}
}

// Free is a no-op: individual allocations are never released early. Present
// only so callers that model C-style ownership (e.g. ported container
// logic) compile against the same shape as the teacher's Arena.Free.
func (a *Arena) Free([]byte) {}

func alignUp(off, align int) int {
	return (off + align - 1) &^ (align - 1)
}

// New2 allocates and zero-initializes a T in the arena and returns a
// pointer to it. Named distinctly from the package-level New() constructor;
// T must be trivially destructible (no finalizers are ever run - spec
// §4.1: "no non-trivial destructors").
func New2[T any](a *Arena) *T {
	var zero T
	size := int(sizeOf(zero))
	buf := a.Allocate(size, alignOf(zero))
	p := (*T)(bytesToPointer(buf))
	*p = zero
	return p
}

// NewSlice allocates an uninitialized span of n T values in the arena and
// returns it as a Go slice backed by arena memory. T must be trivially
// destructible.
func NewSlice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	elemSize := int(sizeOf(zero))
	buf := a.Allocate(elemSize*n, alignOf(zero))
	return sliceFromBytes[T](buf, n)
}

// NewString copies s into the arena and returns a string built from that
// copy. The string(buf) conversion copies the bytes again, so the returned
// string is heap-backed, not arena-backed (Go strings are immutable, so no
// NUL terminator bookkeeping is required the way the teacher's C++
// string-copy helper needs one).
func NewString(a *Arena, s string) string {
	buf := a.Allocate(len(s), 1)
	copy(buf, s)
	return string(buf)
}

type arenaKeyTy string

const arenaKey = arenaKeyTy("arena")

// Get returns the Arena attached to the given context, mirroring
// core/memory/arena.Get.
func Get(ctx context.Context) *Arena {
	if val := ctx.Value(arenaKey); val != nil {
		return val.(*Arena)
	}
	panic("arena missing from context")
}

// Put amends a Context by attaching an Arena reference to it, mirroring
// core/memory/arena.Put.
func Put(ctx context.Context, a *Arena) context.Context {
	return keys.WithValue(ctx, arenaKey, a)
}
