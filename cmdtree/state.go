package cmdtree

import "github.com/nyorain/vil/vk"

// VertexBufferBinding is one binding set by BindVertexBuffers, held inside
// a GraphicsState snapshot.
type VertexBufferBinding struct {
	Buffer vk.Buffer
	Offset uint64
}

// IndexBufferBinding is the most recent BindIndexBuffer call.
type IndexBufferBinding struct {
	Buffer    vk.Buffer
	Offset    uint64
	IndexType vk.IndexType
}

// DescriptorBinding is one currently-bound descriptor set, as seen by a
// state snapshot - just the identity and dynamic offsets; the CoW
// descriptor snapshot itself (dset.CoW) is captured at submission time by
// the hook engine, not at record time, per spec §3 "Descriptor Snapshot".
type DescriptorBinding struct {
	Set            vk.DescriptorSet
	DynamicOffsets []uint32
}

// GraphicsState is a snapshot of bound graphics state at the moment a
// draw command was recorded (spec §3 "State snapshots": "the command
// stores references to snapshots of graphics/compute/ray-tracing state at
// record time (bound pipeline, vertex buffers, index buffer,
// descriptor-set handles, dynamic state block, push-constants bytes)").
// These snapshots live in the arena and never mutate after recording.
type GraphicsState struct {
	Pipeline       vk.Pipeline
	VertexBuffers  []VertexBufferBinding
	IndexBuffer    IndexBufferBinding
	DescriptorSets []DescriptorBinding
	Viewports      []vk.Viewport
	Scissors       []vk.Rect2D
	PushConstants  []byte
}

// ComputeState is a snapshot of bound compute state at dispatch time.
type ComputeState struct {
	Pipeline       vk.Pipeline
	DescriptorSets []DescriptorBinding
	PushConstants  []byte
}

// RayTracingState is a snapshot of bound ray tracing state at trace time.
type RayTracingState struct {
	Pipeline       vk.Pipeline
	DescriptorSets []DescriptorBinding
	PushConstants  []byte
}

// AllDescriptorSets returns every descriptor set referenced by a state
// snapshot, used by the hook engine to build a Descriptor Snapshot at
// submission time (spec §3 "used to read descriptor contents after the
// submission has finished").
func (g *GraphicsState) AllDescriptorSets() []vk.DescriptorSet {
	return collectSets(g.DescriptorSets)
}

func (c *ComputeState) AllDescriptorSets() []vk.DescriptorSet {
	return collectSets(c.DescriptorSets)
}

func (r *RayTracingState) AllDescriptorSets() []vk.DescriptorSet {
	return collectSets(r.DescriptorSets)
}

func collectSets(bindings []DescriptorBinding) []vk.DescriptorSet {
	out := make([]vk.DescriptorSet, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Set)
	}
	return out
}
