// Package copyback implements the Copy/Readback Library of spec §4.8: a
// small set of typed helpers for copying image/buffer contents into
// owned, host-readable resources, including a sampled compute-shader copy
// path for image views that can't be copied directly (depth/stencil
// aspects, format mismatches).
//
// Grounded on gapis/replay/scheduler (which sizes and creates transient
// readback buffers per-replay-batch) and gviegas-neo3's driver/internal
// compute-dispatch patterns for a lazily-built bank of specialized
// pipelines, generalized here to a long-lived bank owned by the hook
// engine rather than a single replay pass.
package copyback

import (
	"sync"

	"github.com/nyorain/vil/arena"
	"github.com/nyorain/vil/vk"
)

// Target describes one resource the library owns and can grow to fit a
// requested size, mirroring the "size/format/usage-ensure the
// destination" step common to every init_and_* helper (spec §4.8).
type Target struct {
	Image  vk.Image
	Buffer vk.Buffer
	Size   uint64 // buffer byte size, or 0 for image targets
	Extent vk.Extent3D
	Format vk.Format
}

// Allocator is the minimal surface the library needs from the driver
// trampoline layer to grow a Target; it is out of scope for this core to
// implement (spec §1), so callers supply it.
type Allocator interface {
	EnsureImage(t *Target, extent vk.Extent3D, format vk.Format, aspect vk.ImageAspectFlags) error
	EnsureBuffer(t *Target, size uint64) error
}

// InitAndCopyImage ensures dst fits src's subresource and queues an
// image-to-image copy region with aspect expansion handled by the caller's
// Allocator (spec §4.8: "size/format/usage-ensure the destination, emit
// the image-copy with the correct aspect expansion").
func InitAndCopyImage(alloc Allocator, dst *Target, src vk.Image, layout vk.ImageLayout, subres vk.ImageSubresourceLayers, extent vk.Extent3D, format vk.Format) (vk.ImageCopy, error) {
	if err := alloc.EnsureImage(dst, extent, format, vk.ImageAspectFlags(subres.AspectMask)); err != nil {
		return vk.ImageCopy{}, err
	}
	return vk.ImageCopy{
		SrcSubresource: subres,
		DstSubresource: subres,
		Extent:         extent,
	}, nil
}

// InitAndCopyBuffer ensures dst fits size bytes and returns the copy
// region to emit (spec §4.8: "size-ensure and copy").
func InitAndCopyBuffer(alloc Allocator, dst *Target, size uint64, srcOffset uint64) (vk.BufferCopy, error) {
	if err := alloc.EnsureBuffer(dst, size); err != nil {
		return vk.BufferCopy{}, err
	}
	return vk.BufferCopy{
		SrcOffset: srcOffset,
		DstOffset: 0,
		Size:      size,
	}, nil
}

// ViewKind identifies which specialized compute pipeline a sampled copy
// needs (spec §4.8: "pick the matching image-view kind (1D array / 2D
// array / 3D, scalar kind integer/unsigned/float) from a prebuilt bank of
// compute pipelines").
type ViewKind int

const (
	View1DArray ViewKind = iota
	View2DArray
	View3D
)

type ScalarKind int

const (
	ScalarFloat ScalarKind = iota
	ScalarInt
	ScalarUint
)

type pipelineKey struct {
	view   ViewKind
	scalar ScalarKind
}

// Bank is the lazily-populated set of sampled-copy compute pipelines (spec
// §4.8: "Pipelines are created lazily at hook-engine init and destroyed
// with the engine"). Each entry is built once, on first use, by calling
// the pipeline factory passed to NewBank.
type Bank struct {
	mu        sync.Mutex
	pipelines map[pipelineKey]vk.Pipeline
	factory   func(view ViewKind, scalar ScalarKind) (vk.Pipeline, error)
}

// NewBank constructs an empty pipeline bank. factory is invoked at most
// once per (view, scalar) pair.
func NewBank(factory func(view ViewKind, scalar ScalarKind) (vk.Pipeline, error)) *Bank {
	return &Bank{pipelines: map[pipelineKey]vk.Pipeline{}, factory: factory}
}

// Get returns the pipeline for (view, scalar), building it on first
// request.
func (b *Bank) Get(view ViewKind, scalar ScalarKind) (vk.Pipeline, error) {
	key := pipelineKey{view, scalar}
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}
	p, err := b.factory(view, scalar)
	if err != nil {
		return 0, err
	}
	b.pipelines[key] = p
	return p, nil
}

// Len reports how many pipeline variants have been built so far, for
// diagnostics/tests.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pipelines)
}

// Pipelines returns every pipeline built so far, in no particular order.
// Bank has no destroy method of its own; a caller that owns a destroy
// function ranges over the result and calls vkDestroyPipeline.
func (b *Bank) Pipelines() []vk.Pipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]vk.Pipeline, 0, len(b.pipelines))
	for _, p := range b.pipelines {
		out = append(out, p)
	}
	return out
}

// SampledCopyRequest describes one init_and_sample_copy invocation (spec
// §4.8): "allocate a transient descriptor/view, dispatch a
// groupsize-specialized shader that stores texels into dst".
type SampledCopyRequest struct {
	SrcImage vk.Image
	SrcView  vk.ImageView
	Layout   vk.ImageLayout
	Subres   vk.ImageSubresourceLayers
	View     ViewKind
	Scalar   ScalarKind
	GroupSizeX, GroupSizeY, GroupSizeZ uint32
}

// DispatchSize computes the compute dispatch size for a sampled copy of a
// given extent, honoring the request's declared group size.
func (r SampledCopyRequest) DispatchSize(extent vk.Extent3D) (x, y, z uint32) {
	ceilDiv := func(n, d uint32) uint32 {
		if d == 0 {
			return 0
		}
		return (n + d - 1) / d
	}
	return ceilDiv(extent.Width, r.GroupSizeX), ceilDiv(extent.Height, r.GroupSizeY), ceilDiv(extent.Depth, r.GroupSizeZ)
}

// InitAndSampleCopy ensures dst fits the requested extent and resolves the
// matching pipeline from bank, returning the pipeline and dispatch size
// the caller's trampoline layer should issue a vkCmdBindPipeline +
// vkCmdDispatch for (spec §4.8).
func InitAndSampleCopy(alloc Allocator, bank *Bank, dst *Target, req SampledCopyRequest, extent vk.Extent3D, dstFormat vk.Format) (vk.Pipeline, uint32, uint32, uint32, error) {
	if err := alloc.EnsureBuffer(dst, uint64(extent.Width)*uint64(extent.Height)*uint64(extent.Depth)*bytesPerTexel(dstFormat)); err != nil {
		return 0, 0, 0, 0, err
	}
	p, err := bank.Get(req.View, req.Scalar)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	x, y, z := req.DispatchSize(extent)
	return p, x, y, z, nil
}

// bytesPerTexel is a coarse estimate used only to size scratch readback
// buffers; the driver trampoline layer computes the authoritative value
// from the real VkFormat table.
func bytesPerTexel(f vk.Format) uint64 {
	return 4
}

// ArenaCopy copies src into a fresh arena-owned slice, used by capture
// primitives that stage small fixed blobs (indirect args, accel-struct
// instance data) before a GPU copy is even issued.
func ArenaCopy(a *arena.Arena, src []byte) []byte {
	dst := arena.NewSlice[byte](a, len(src))
	copy(dst, src)
	return dst
}
