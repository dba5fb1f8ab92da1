package cmdtree

import "github.com/nyorain/vil/vk"

// base is embedded by every bespoke command type, providing Kind/Name/
// Category so each concrete type only needs to implement RecordOnto,
// Match and Accept - mirroring how gapis/api's generated commands share a handful of
// helper methods rather than reimplementing CmdName per type.
type base struct{ kind Kind }

func (b *base) Kind() Kind         { return b.kind }
func (b *base) Name() string       { return b.kind.Name() }
func (b *base) Category() Category { return b.kind.Category() }

// ---- bind ----

type BindPipelineCmd struct {
	base
	Pipeline  vk.Pipeline
	BindPoint vk.PipelineBindPoint
}

func NewBindPipeline(pipeline vk.Pipeline, bp vk.PipelineBindPoint) *BindPipelineCmd {
	return &BindPipelineCmd{base: base{KindBindPipeline}, Pipeline: pipeline, BindPoint: bp}
}

func (c *BindPipelineCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BindPipelineCmd) Match(other Command) float64 {
	o, ok := other.(*BindPipelineCmd)
	if !ok {
		return 0
	}
	if c.Pipeline == o.Pipeline && c.BindPoint == o.BindPoint {
		return 1
	}
	if c.BindPoint == o.BindPoint {
		return 0.4
	}
	return 0
}
func (c *BindPipelineCmd) Accept(v Visitor) { dispatch(c, v) }

type BindDescriptorSetsCmd struct {
	base
	BindPoint      vk.PipelineBindPoint
	Layout         vk.PipelineLayout
	FirstSet       uint32
	Sets           []vk.DescriptorSet
	DynamicOffsets []uint32
}

func NewBindDescriptorSets(bp vk.PipelineBindPoint, layout vk.PipelineLayout, first uint32, sets []vk.DescriptorSet, dynOffsets []uint32) *BindDescriptorSetsCmd {
	return &BindDescriptorSetsCmd{base: base{KindBindDescriptorSets}, BindPoint: bp, Layout: layout, FirstSet: first, Sets: sets, DynamicOffsets: dynOffsets}
}

func (c *BindDescriptorSetsCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BindDescriptorSetsCmd) Match(other Command) float64 {
	o, ok := other.(*BindDescriptorSetsCmd)
	if !ok || c.BindPoint != o.BindPoint || c.FirstSet != o.FirstSet {
		return 0
	}
	return setOverlap(c.Sets, o.Sets)
}
func (c *BindDescriptorSetsCmd) Accept(v Visitor) { dispatch(c, v) }

func setOverlap(a, b []vk.DescriptorSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	n := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			n++
		}
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	if max == 0 {
		return 1
	}
	return float64(n) / float64(max)
}

type BindVertexBuffersCmd struct {
	base
	FirstBinding uint32
	Buffers      []vk.Buffer
	Offsets      []uint64
}

func NewBindVertexBuffers(first uint32, buffers []vk.Buffer, offsets []uint64) *BindVertexBuffersCmd {
	return &BindVertexBuffersCmd{base: base{KindBindVertexBuffers}, FirstBinding: first, Buffers: buffers, Offsets: offsets}
}
func (c *BindVertexBuffersCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BindVertexBuffersCmd) Match(other Command) float64 {
	o, ok := other.(*BindVertexBuffersCmd)
	if !ok || c.FirstBinding != o.FirstBinding {
		return 0
	}
	n := 0
	for i := 0; i < len(c.Buffers) && i < len(o.Buffers); i++ {
		if c.Buffers[i] == o.Buffers[i] {
			n++
		}
	}
	if len(c.Buffers) == 0 {
		return 1
	}
	return float64(n) / float64(len(c.Buffers))
}
func (c *BindVertexBuffersCmd) Accept(v Visitor) { dispatch(c, v) }

type BindIndexBufferCmd struct {
	base
	Buffer    vk.Buffer
	Offset    uint64
	IndexType vk.IndexType
}

func NewBindIndexBuffer(buf vk.Buffer, offset uint64, it vk.IndexType) *BindIndexBufferCmd {
	return &BindIndexBufferCmd{base: base{KindBindIndexBuffer}, Buffer: buf, Offset: offset, IndexType: it}
}
func (c *BindIndexBufferCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BindIndexBufferCmd) Match(other Command) float64 {
	o, ok := other.(*BindIndexBufferCmd)
	if !ok {
		return 0
	}
	if c.Buffer == o.Buffer {
		return 1
	}
	return 0
}
func (c *BindIndexBufferCmd) Accept(v Visitor) { dispatch(c, v) }

type PushConstantsCmd struct {
	base
	Layout     vk.PipelineLayout
	StageFlags uint32
	Offset     uint32
	Data       []byte // arena-copied
}

func NewPushConstants(layout vk.PipelineLayout, stages, offset uint32, data []byte) *PushConstantsCmd {
	return &PushConstantsCmd{base: base{KindPushConstants}, Layout: layout, StageFlags: stages, Offset: offset, Data: data}
}
func (c *PushConstantsCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *PushConstantsCmd) Match(other Command) float64 {
	o, ok := other.(*PushConstantsCmd)
	if !ok || c.Offset != o.Offset || len(c.Data) != len(o.Data) {
		return 0
	}
	return 1
}
func (c *PushConstantsCmd) Accept(v Visitor) { dispatch(c, v) }

// ---- draw ----

type DrawCmd struct {
	base
	VertexCount, InstanceCount, FirstVertex, FirstInstance uint32
	State                                                  *GraphicsState
}

func NewDraw(vertexCount, instanceCount, firstVertex, firstInstance uint32, s *GraphicsState) *DrawCmd {
	return &DrawCmd{base: base{KindDraw}, VertexCount: vertexCount, InstanceCount: instanceCount, FirstVertex: firstVertex, FirstInstance: firstInstance, State: s}
}
func (c *DrawCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *DrawCmd) Match(other Command) float64 {
	o, ok := other.(*DrawCmd)
	if !ok {
		return 0
	}
	return numericMatch4(c.VertexCount, c.InstanceCount, c.FirstVertex, c.FirstInstance,
		o.VertexCount, o.InstanceCount, o.FirstVertex, o.FirstInstance)
}
func (c *DrawCmd) Accept(v Visitor) { dispatch(c, v) }

type DrawIndexedCmd struct {
	base
	IndexCount, InstanceCount, FirstIndex, FirstInstance uint32
	VertexOffset                                         int32
	State                                                *GraphicsState
}

func NewDrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32, s *GraphicsState) *DrawIndexedCmd {
	return &DrawIndexedCmd{base: base{KindDrawIndexed}, IndexCount: indexCount, InstanceCount: instanceCount, FirstIndex: firstIndex, VertexOffset: vertexOffset, FirstInstance: firstInstance, State: s}
}
func (c *DrawIndexedCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *DrawIndexedCmd) Match(other Command) float64 {
	o, ok := other.(*DrawIndexedCmd)
	if !ok {
		return 0
	}
	return numericMatch4(c.IndexCount, c.InstanceCount, c.FirstIndex, c.FirstInstance,
		o.IndexCount, o.InstanceCount, o.FirstIndex, o.FirstInstance)
}
func (c *DrawIndexedCmd) Accept(v Visitor) { dispatch(c, v) }

func numericMatch4[T ~uint32 | ~int32](a1, a2, a3, a4, b1, b2, b3, b4 T) float64 {
	n := 0
	if a1 == b1 {
		n++
	}
	if a2 == b2 {
		n++
	}
	if a3 == b3 {
		n++
	}
	if a4 == b4 {
		n++
	}
	return float64(n) / 4
}

// IndirectDrawCmd covers DrawIndirect and DrawIndexedIndirect, which share
// every field beyond the Indexed discriminant (spec §4.6 "Indirect
// command" capture treats both uniformly).
type IndirectDrawCmd struct {
	base
	Buffer  vk.Buffer
	Offset  uint64
	Count   uint32
	Stride  uint32
	Indexed bool
	State   *GraphicsState
}

func NewDrawIndirect(buf vk.Buffer, offset uint64, count, stride uint32, indexed bool, s *GraphicsState) *IndirectDrawCmd {
	kind := KindDrawIndirect
	if indexed {
		kind = KindDrawIndexedIndirect
	}
	return &IndirectDrawCmd{base: base{kind}, Buffer: buf, Offset: offset, Count: count, Stride: stride, Indexed: indexed, State: s}
}
func (c *IndirectDrawCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *IndirectDrawCmd) Match(other Command) float64 {
	o, ok := other.(*IndirectDrawCmd)
	if !ok || c.Indexed != o.Indexed {
		return 0
	}
	if c.Buffer == o.Buffer && c.Offset == o.Offset {
		return 1
	}
	if c.Buffer == o.Buffer {
		return 0.6
	}
	return 0.1
}
func (c *IndirectDrawCmd) Accept(v Visitor) { dispatch(c, v) }

// IndirectDrawCountCmd covers DrawIndirectCount / DrawIndexedIndirectCount
// (spec §8 scenario E3).
type IndirectDrawCountCmd struct {
	base
	Buffer            vk.Buffer
	Offset            uint64
	CountBuffer       vk.Buffer
	CountBufferOffset uint64
	MaxDrawCount      uint32
	Stride            uint32
	Indexed           bool
	State             *GraphicsState
}

func NewDrawIndirectCount(buf vk.Buffer, offset uint64, countBuf vk.Buffer, countOffset uint64, maxDraws, stride uint32, indexed bool, s *GraphicsState) *IndirectDrawCountCmd {
	kind := KindDrawIndirectCount
	if indexed {
		kind = KindDrawIndexedIndirectCount
	}
	return &IndirectDrawCountCmd{base: base{kind}, Buffer: buf, Offset: offset, CountBuffer: countBuf, CountBufferOffset: countOffset, MaxDrawCount: maxDraws, Stride: stride, Indexed: indexed, State: s}
}
func (c *IndirectDrawCountCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *IndirectDrawCountCmd) Match(other Command) float64 {
	o, ok := other.(*IndirectDrawCountCmd)
	if !ok || c.Indexed != o.Indexed {
		return 0
	}
	if c.Buffer == o.Buffer && c.CountBuffer == o.CountBuffer {
		return 1
	}
	return 0.2
}
func (c *IndirectDrawCountCmd) Accept(v Visitor) { dispatch(c, v) }

// ---- dispatch ----

type DispatchCmd struct {
	base
	X, Y, Z uint32
	State   *ComputeState
}

func NewDispatch(x, y, z uint32, s *ComputeState) *DispatchCmd {
	return &DispatchCmd{base: base{KindDispatch}, X: x, Y: y, Z: z, State: s}
}
func (c *DispatchCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *DispatchCmd) Match(other Command) float64 {
	o, ok := other.(*DispatchCmd)
	if !ok {
		return 0
	}
	if c.X == o.X && c.Y == o.Y && c.Z == o.Z {
		return 1
	}
	return 0.3
}
func (c *DispatchCmd) Accept(v Visitor) { dispatch(c, v) }

type DispatchIndirectCmd struct {
	base
	Buffer vk.Buffer
	Offset uint64
	State  *ComputeState
}

func NewDispatchIndirect(buf vk.Buffer, offset uint64, s *ComputeState) *DispatchIndirectCmd {
	return &DispatchIndirectCmd{base: base{KindDispatchIndirect}, Buffer: buf, Offset: offset, State: s}
}
func (c *DispatchIndirectCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *DispatchIndirectCmd) Match(other Command) float64 {
	o, ok := other.(*DispatchIndirectCmd)
	if !ok {
		return 0
	}
	if c.Buffer == o.Buffer && c.Offset == o.Offset {
		return 1
	}
	return 0.2
}
func (c *DispatchIndirectCmd) Accept(v Visitor) { dispatch(c, v) }

// ---- trace-rays ----

type TraceRaysCmd struct {
	base
	Width, Height, Depth uint32
	State                *RayTracingState
}

func NewTraceRays(w, h, d uint32, s *RayTracingState) *TraceRaysCmd {
	return &TraceRaysCmd{base: base{KindTraceRaysKHR}, Width: w, Height: h, Depth: d, State: s}
}
func (c *TraceRaysCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *TraceRaysCmd) Match(other Command) float64 {
	o, ok := other.(*TraceRaysCmd)
	if !ok {
		return 0
	}
	if c.Width == o.Width && c.Height == o.Height && c.Depth == o.Depth {
		return 1
	}
	return 0.3
}
func (c *TraceRaysCmd) Accept(v Visitor) { dispatch(c, v) }

// ---- transfer ----

type CopyBufferCmd struct {
	base
	Src, Dst vk.Buffer
	Regions  []vk.BufferCopy
}

func NewCopyBuffer(src, dst vk.Buffer, regions []vk.BufferCopy) *CopyBufferCmd {
	return &CopyBufferCmd{base: base{KindCopyBuffer}, Src: src, Dst: dst, Regions: regions}
}
func (c *CopyBufferCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *CopyBufferCmd) Match(other Command) float64 {
	o, ok := other.(*CopyBufferCmd)
	if !ok {
		return 0
	}
	if c.Src == o.Src && c.Dst == o.Dst {
		return 1
	}
	return 0
}
func (c *CopyBufferCmd) Accept(v Visitor) { dispatch(c, v) }

type CopyImageCmd struct {
	base
	Src, Dst           vk.Image
	SrcLayout, DstLayout vk.ImageLayout
	Regions            []vk.ImageCopy
}

func NewCopyImage(src, dst vk.Image, srcLayout, dstLayout vk.ImageLayout, regions []vk.ImageCopy) *CopyImageCmd {
	return &CopyImageCmd{base: base{KindCopyImage}, Src: src, Dst: dst, SrcLayout: srcLayout, DstLayout: dstLayout, Regions: regions}
}
func (c *CopyImageCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *CopyImageCmd) Match(other Command) float64 {
	o, ok := other.(*CopyImageCmd)
	if !ok {
		return 0
	}
	if c.Src == o.Src && c.Dst == o.Dst {
		return 1
	}
	return 0
}
func (c *CopyImageCmd) Accept(v Visitor) { dispatch(c, v) }

type CopyBufferImageCmd struct {
	base
	Buffer  vk.Buffer
	Image   vk.Image
	Layout  vk.ImageLayout
	Regions []vk.BufferImageCopy
	// ToImage is true for vkCmdCopyBufferToImage, false for
	// vkCmdCopyImageToBuffer.
	ToImage bool
}

func NewCopyBufferToImage(buf vk.Buffer, img vk.Image, layout vk.ImageLayout, regions []vk.BufferImageCopy) *CopyBufferImageCmd {
	return &CopyBufferImageCmd{base: base{KindCopyBufferToImage}, Buffer: buf, Image: img, Layout: layout, Regions: regions, ToImage: true}
}
func NewCopyImageToBuffer(img vk.Image, buf vk.Buffer, layout vk.ImageLayout, regions []vk.BufferImageCopy) *CopyBufferImageCmd {
	return &CopyBufferImageCmd{base: base{KindCopyImageToBuffer}, Buffer: buf, Image: img, Layout: layout, Regions: regions, ToImage: false}
}
func (c *CopyBufferImageCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *CopyBufferImageCmd) Match(other Command) float64 {
	o, ok := other.(*CopyBufferImageCmd)
	if !ok || c.ToImage != o.ToImage {
		return 0
	}
	if c.Buffer == o.Buffer && c.Image == o.Image {
		return 1
	}
	return 0
}
func (c *CopyBufferImageCmd) Accept(v Visitor) { dispatch(c, v) }

// ClearAttachmentCmd resolves through the framebuffer attachment list at
// hook time (spec §4.6: "ClearAttachment resolves through the framebuffer
// attachment list").
type ClearAttachmentCmd struct {
	base
	AttachmentIndex uint32
	IsDepthStencil  bool
	Value           vk.ClearValue
	Rect            vk.Rect2D
}

func NewClearAttachment(idx uint32, depthStencil bool, value vk.ClearValue, rect vk.Rect2D) *ClearAttachmentCmd {
	return &ClearAttachmentCmd{base: base{KindClearAttachment}, AttachmentIndex: idx, IsDepthStencil: depthStencil, Value: value, Rect: rect}
}
func (c *ClearAttachmentCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *ClearAttachmentCmd) Match(other Command) float64 {
	o, ok := other.(*ClearAttachmentCmd)
	if !ok {
		return 0
	}
	if c.AttachmentIndex == o.AttachmentIndex {
		return 1
	}
	return 0
}
func (c *ClearAttachmentCmd) Accept(v Visitor) { dispatch(c, v) }

// ---- render pass / dynamic rendering sections ----

type BeginRenderPassCmd struct {
	base
	Section
	RenderPass  vk.RenderPass
	Framebuffer vk.Framebuffer
	RenderArea  vk.Rect2D
	ClearValues []vk.ClearValue
	Desc        *vk.RenderPassDesc
	Inline      bool // false => SECONDARY_COMMAND_BUFFERS content
}

func NewBeginRenderPass(rp vk.RenderPass, fb vk.Framebuffer, area vk.Rect2D, clears []vk.ClearValue, desc *vk.RenderPassDesc, inline bool) *BeginRenderPassCmd {
	c := &BeginRenderPassCmd{base: base{KindBeginRenderPass}, RenderPass: rp, Framebuffer: fb, RenderArea: area, ClearValues: clears, Desc: desc, Inline: inline}
	c.Section = newSection(KindBeginRenderPass)
	return c
}
func (c *BeginRenderPassCmd) Kind() Kind         { return c.base.kind }
func (c *BeginRenderPassCmd) Name() string       { return c.base.Name() }
func (c *BeginRenderPassCmd) Category() Category { return c.base.Category() }
func (c *BeginRenderPassCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BeginRenderPassCmd) Match(other Command) float64 {
	o, ok := other.(*BeginRenderPassCmd)
	if !ok {
		return 0
	}
	direct := 0.0
	if c.RenderPass == o.RenderPass {
		direct += 0.5
	}
	if c.Framebuffer == o.Framebuffer {
		direct += 0.2
	}
	return direct + 0.3*c.Stats().matchScore(o.Stats())
}
func (c *BeginRenderPassCmd) Accept(v Visitor) { dispatch(c, v) }
func (c *BeginRenderPassCmd) AppendChild(ch Command) { c.Section.append(ch) }

type NextSubpassCmd struct {
	base
	Section
	SubpassIndex uint32
}

func NewNextSubpass(index uint32) *NextSubpassCmd {
	c := &NextSubpassCmd{base: base{KindNextSubpass}, SubpassIndex: index}
	c.Section = newSection(KindNextSubpass)
	return c
}
func (c *NextSubpassCmd) Kind() Kind         { return c.base.kind }
func (c *NextSubpassCmd) Category() Category { return c.base.Category() }
func (c *NextSubpassCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *NextSubpassCmd) Match(other Command) float64 {
	o, ok := other.(*NextSubpassCmd)
	if !ok {
		return 0
	}
	if c.SubpassIndex == o.SubpassIndex {
		return 1
	}
	return 0.2
}
func (c *NextSubpassCmd) Accept(v Visitor) { dispatch(c, v) }
func (c *NextSubpassCmd) AppendChild(ch Command) { c.Section.append(ch) }

// EndCmd is a plain, childless closing marker - EndRenderPass,
// EndRendering, EndDebugLabel, EndConditionalRendering (spec §4.2
// invariant: "ending markers ... do not carry children").
type EndCmd struct{ base }

func NewEnd(kind Kind) *EndCmd { return &EndCmd{base{kind}} }
func (c *EndCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *EndCmd) Match(other Command) float64                          { return DefaultMatch(c, other) }
func (c *EndCmd) Accept(v Visitor)                                     { dispatch(c, v) }

type BeginRenderingCmd struct {
	base
	Section
	RenderArea vk.Rect2D
	LayerCount uint32
	Colors     []vk.AttachmentRef
	DepthStencil *vk.AttachmentRef
}

func NewBeginRendering(area vk.Rect2D, layers uint32, colors []vk.AttachmentRef, ds *vk.AttachmentRef) *BeginRenderingCmd {
	c := &BeginRenderingCmd{base: base{KindBeginRendering}, RenderArea: area, LayerCount: layers, Colors: colors, DepthStencil: ds}
	c.Section = newSection(KindBeginRendering)
	return c
}
func (c *BeginRenderingCmd) Kind() Kind         { return c.base.kind }
func (c *BeginRenderingCmd) Category() Category { return c.base.Category() }
func (c *BeginRenderingCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BeginRenderingCmd) Match(other Command) float64 {
	o, ok := other.(*BeginRenderingCmd)
	if !ok {
		return 0
	}
	return 0.5 + 0.5*c.Stats().matchScore(o.Stats())
}
func (c *BeginRenderingCmd) Accept(v Visitor) { dispatch(c, v) }
func (c *BeginRenderingCmd) AppendChild(ch Command) { c.Section.append(ch) }

// ---- debug label / conditional rendering / execute-commands sections ----

type BeginDebugLabelCmd struct {
	base
	Section
	Label string
}

func NewBeginDebugLabel(label string) *BeginDebugLabelCmd {
	c := &BeginDebugLabelCmd{base: base{KindBeginDebugLabel}, Label: label}
	c.Section = newSection(KindBeginDebugLabel)
	return c
}
func (c *BeginDebugLabelCmd) Kind() Kind         { return c.base.kind }
func (c *BeginDebugLabelCmd) Category() Category { return c.base.Category() }
func (c *BeginDebugLabelCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *BeginDebugLabelCmd) Match(other Command) float64 {
	o, ok := other.(*BeginDebugLabelCmd)
	if !ok {
		return 0
	}
	if c.Label == o.Label {
		return 1
	}
	return 0.2
}
func (c *BeginDebugLabelCmd) Accept(v Visitor) { dispatch(c, v) }
func (c *BeginDebugLabelCmd) AppendChild(ch Command) { c.Section.append(ch) }

type BeginConditionalRenderingCmd struct {
	base
	Section
	Buffer vk.Buffer
	Offset uint64
}

func NewBeginConditionalRendering(buf vk.Buffer, offset uint64) *BeginConditionalRenderingCmd {
	c := &BeginConditionalRenderingCmd{base: base{KindBeginConditionalRendering}, Buffer: buf, Offset: offset}
	c.Section = newSection(KindBeginConditionalRendering)
	return c
}
func (c *BeginConditionalRenderingCmd) Kind() Kind         { return c.base.kind }
func (c *BeginConditionalRenderingCmd) Category() Category { return c.base.Category() }
func (c *BeginConditionalRenderingCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) {
	rec.Emit(c)
}
func (c *BeginConditionalRenderingCmd) Match(other Command) float64 {
	o, ok := other.(*BeginConditionalRenderingCmd)
	if !ok {
		return 0
	}
	if c.Buffer == o.Buffer {
		return 1
	}
	return 0.2
}
func (c *BeginConditionalRenderingCmd) Accept(v Visitor)      { dispatch(c, v) }
func (c *BeginConditionalRenderingCmd) AppendChild(ch Command) { c.Section.append(ch) }

// ExecuteCommandsCmd both executes secondary command buffers and, per
// spec §4.2, hosts one ExecuteCommandsChild section per executed secondary
// so that the secondary's own command tree can be walked inline (matching
// the matcher's recursive descent through sections).
type ExecuteCommandsCmd struct {
	base
	Section
	CommandBuffers []vk.CommandBuffer
}

func NewExecuteCommands(cbs []vk.CommandBuffer) *ExecuteCommandsCmd {
	c := &ExecuteCommandsCmd{base: base{KindExecuteCommands}, CommandBuffers: cbs}
	c.Section = newSection(KindExecuteCommands)
	return c
}
func (c *ExecuteCommandsCmd) Kind() Kind         { return c.base.kind }
func (c *ExecuteCommandsCmd) Category() Category { return c.base.Category() }
func (c *ExecuteCommandsCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) { rec.Emit(c) }
func (c *ExecuteCommandsCmd) Match(other Command) float64 {
	o, ok := other.(*ExecuteCommandsCmd)
	if !ok {
		return 0
	}
	return 0.3 + 0.7*c.Stats().matchScore(o.Stats())
}
func (c *ExecuteCommandsCmd) Accept(v Visitor) { dispatch(c, v) }
func (c *ExecuteCommandsCmd) AppendChild(ch Command) { c.Section.append(ch) }

// ---- acceleration structures ----

// AccelStructGeometryInput describes one geometry or instance input to a
// BuildAccelerationStructures command (spec §4.6: "for each
// BuildAccelerationStructures command anywhere in the record ... copy its
// geometry/instance input data into owned buffers").
type AccelStructGeometryInput struct {
	VertexBuffer  vk.Buffer
	VertexOffset  uint64
	VertexStride  uint64
	VertexCount   uint32
	IndexBuffer   vk.Buffer
	IndexOffset   uint64
	IndexCount    uint32
	InstanceBuffer vk.Buffer
	InstanceCount  uint32
	// ArrayOfPointers is true when instance data is provided as an array
	// of device addresses rather than a tightly packed array (spec §9 open
	// question: "Policy for accel-struct instance snapshotting when
	// array-of-pointers layout is used").
	ArrayOfPointers bool
}

type BuildAccelerationStructuresCmd struct {
	base
	Dst    []vk.AccelerationStructure
	Src    []vk.AccelerationStructure // non-null entries indicate an update rather than a build
	Inputs []AccelStructGeometryInput
}

func NewBuildAccelerationStructures(dst, src []vk.AccelerationStructure, inputs []AccelStructGeometryInput) *BuildAccelerationStructuresCmd {
	return &BuildAccelerationStructuresCmd{base: base{KindBuildAccelerationStructuresKHR}, Dst: dst, Src: src, Inputs: inputs}
}
func (c *BuildAccelerationStructuresCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) {
	rec.Emit(c)
}
func (c *BuildAccelerationStructuresCmd) Match(other Command) float64 {
	o, ok := other.(*BuildAccelerationStructuresCmd)
	if !ok || len(c.Dst) != len(o.Dst) {
		return 0
	}
	n := 0
	for i := range c.Dst {
		if c.Dst[i] == o.Dst[i] {
			n++
		}
	}
	if len(c.Dst) == 0 {
		return 1
	}
	return float64(n) / float64(len(c.Dst))
}
func (c *BuildAccelerationStructuresCmd) Accept(v Visitor) { dispatch(c, v) }

// CopyAccelerationStructureCmd records the (src, dst) pair for an
// acceleration-structure-to-acceleration-structure copy (spec §4.6: "For
// copies between accel structs, record the (src, dst) pair").
type CopyAccelerationStructureCmd struct {
	base
	Src, Dst vk.AccelerationStructure
}

func NewCopyAccelerationStructure(src, dst vk.AccelerationStructure) *CopyAccelerationStructureCmd {
	return &CopyAccelerationStructureCmd{base: base{KindCopyAccelerationStructureKHR}, Src: src, Dst: dst}
}
func (c *CopyAccelerationStructureCmd) RecordOnto(rec Recorder, _ vk.CommandBuffer, _ uint32) {
	rec.Emit(c)
}
func (c *CopyAccelerationStructureCmd) Match(other Command) float64 {
	o, ok := other.(*CopyAccelerationStructureCmd)
	if !ok {
		return 0
	}
	if c.Src == o.Src && c.Dst == o.Dst {
		return 1
	}
	return 0
}
func (c *CopyAccelerationStructureCmd) Accept(v Visitor) { dispatch(c, v) }
