package hook

import (
	"sync"

	"github.com/nyorain/vil/arena"
	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vk"
)

// HookRecord is one built instrumented secondary command buffer (spec
// §4.6 "Building a hook record"): the result of walking the source
// command list once, descending into the target path, and emitting the
// capture primitives requested by Ops at the selected command.
//
// HookRecords are shared-ownership (spec §5: "Hook states are
// shared-ownership; the UI and the completed-hooks FIFO both hold strong
// refs") and own every intermediate resource created for capture (spec
// §4.6: "All intermediate resources ... are owned by the hook record and
// destroyed with it").
type HookRecord struct {
	mu sync.Mutex

	arena *arena.Arena

	// CommandBuffer is the instrumented secondary command buffer the
	// driver should submit instead of the application's original.
	CommandBuffer vk.CommandBuffer

	sourceRecord *cmdtree.CommandRecord
	targetPath   []int
	targetKind   cmdtree.Kind
	ops          Ops

	// owned is every resource wrapper this record allocated for capture
	// destinations, released by the final Unref.
	owned []*registry.Wrapper

	pending   bool // true while a submission using this record hasn't completed yet
	refs      int32
	destroyed bool

	Captures CaptureData
}

// newHookRecord allocates a fresh HookRecord for the given source record
// and resolved target path.
func newHookRecord(src *cmdtree.CommandRecord, path []int, kind cmdtree.Kind, ops Ops) *HookRecord {
	return &HookRecord{
		arena:        arena.New(),
		sourceRecord: src,
		targetPath:   path,
		targetKind:   kind,
		ops:          ops,
		refs:         1,
	}
}

// Arena returns the arena backing this hook record's allocations
// (captured byte blobs, owned-resource bookkeeping slices).
func (h *HookRecord) Arena() *arena.Arena { return h.arena }

// MatchesTarget reports whether this hook record was built against the
// given path and kind, used by Engine.Hook's reuse check (spec §4.6 step
// 3: "whose target path still resolves to the same commands").
func (h *HookRecord) MatchesTarget(path []int, kind cmdtree.Kind) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.targetKind != kind || len(h.targetPath) != len(path) {
		return false
	}
	for i := range path {
		if h.targetPath[i] != path[i] {
			return false
		}
	}
	return true
}

// OpsEqual reports whether this record was built with ops-equivalent
// configuration, used by Engine.Hook's reuse check.
func (h *HookRecord) OpsEqual(ops Ops) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ops.Equal(ops)
}

// Pending reports whether a submission using this record is still in
// flight.
func (h *HookRecord) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending
}

func (h *HookRecord) setPending(v bool) {
	h.mu.Lock()
	h.pending = v
	h.mu.Unlock()
}

// TrackOwned registers a resource this hook record allocated as a capture
// destination, so the final Unref can release it.
func (h *HookRecord) TrackOwned(w *registry.Wrapper) {
	h.mu.Lock()
	h.owned = append(h.owned, w)
	h.mu.Unlock()
}

// Ref increments the hook record's reference count.
func (h *HookRecord) Ref() *HookRecord {
	h.mu.Lock()
	h.refs++
	h.mu.Unlock()
	return h
}

// Unref drops a reference, destroying the record's owned resources and
// arena once the count reaches zero.
func (h *HookRecord) Unref() {
	h.mu.Lock()
	h.refs--
	destroy := h.refs <= 0 && !h.destroyed
	var owned []*registry.Wrapper
	if destroy {
		h.destroyed = true
		owned = h.owned
		h.owned = nil
	}
	h.mu.Unlock()

	if !destroy {
		return
	}
	for _, w := range owned {
		w.Unref()
	}
	h.arena.Dispose()
}

// descentState tracks how deep the builder has walked into the target
// path while building a hook record (spec §4.6: "Maintain
// (next-hook-level, max-hook-level) describing how deep into the target
// path we are").
type descentState struct {
	nextHookLevel int
	maxHookLevel  int
}

func newDescentState(path []int) descentState {
	return descentState{nextHookLevel: 0, maxHookLevel: len(path)}
}

func (d descentState) atTarget() bool { return d.nextHookLevel == d.maxHookLevel }

func (d descentState) descend() descentState {
	return descentState{nextHookLevel: d.nextHookLevel + 1, maxHookLevel: d.maxHookLevel}
}

// Builder walks a source CommandRecord's tree and emits an instrumented
// copy onto a Recorder, descending along a target path and invoking
// capture primitives at the selected command (spec §4.6 "Building a hook
// record").
type Builder struct {
	Record *HookRecord
	Ops    Ops
	// Capturer performs the actual driver-level capture work (barriers,
	// copies, pipeline binds) for each requested op; it is the seam
	// between this package's pure tree-walking logic and the (out of
	// scope) driver trampoline layer.
	Capturer Capturer
}

// Capturer is implemented by the driver trampoline layer to perform the
// actual Vulkan calls the capture primitives require. Every method
// receives the HookRecord so it can stash results into Record.Captures and
// track owned resources via Record.TrackOwned.
type Capturer interface {
	EmitTiming(rec *HookRecord) *TimingCapture
	EmitIndirectCopy(rec *HookRecord, cmd cmdtree.Command) *IndirectCapture
	EmitAttachmentCopy(rec *HookRecord, sel AttachmentSelector) *AttachmentCapture
	EmitDescriptorCopy(rec *HookRecord, sel DescriptorSelector, snapshot map[vk.DescriptorSet]*dsetCoWRef) *DescriptorCapture
	EmitTransferCopy(rec *HookRecord, idx int, cmd cmdtree.Command, full bool) *TransferCapture
	EmitVertexCopy(rec *HookRecord, state interface{ AllDescriptorSets() []vk.DescriptorSet }) *VertexCapture
	EmitAccelStructBuild(rec *HookRecord, idx int, cmd *cmdtree.BuildAccelerationStructuresCmd) *AccelStructBuildCapture
	EmitAccelStructCopy(rec *HookRecord, cmd *cmdtree.CopyAccelerationStructureCmd) *AccelStructCopyCapture
}

// dsetCoWRef is the pointee type of the snapshot map passed to
// EmitDescriptorCopy. It is an alias of the empty interface rather than
// dset.CoW, so EmitDescriptorCopy's signature stays stable if dset's CoW
// internals change shape.
type dsetCoWRef = interface{}

// Build walks root (the source record's root section), descending along
// path, and emits every command - instrumented at the target - onto rec
// via the given Recorder (spec §4.6 "Building a hook record"). No
// render-pass splitting, transform feedback or barrier commands are
// emitted; Capturer has no methods for them.
func (b *Builder) Build(root cmdtree.Parent, rec cmdtree.Recorder) {
	b.walk(root, rec, newDescentState(b.Record.targetPath))
}

func (b *Builder) walk(p cmdtree.Parent, rec cmdtree.Recorder, state descentState) {
	children := p.Children()
	for i, c := range children {
		onPath := !state.atTarget() && i == pathIndexAt(b.Record.targetPath, state.nextHookLevel)
		if onPath {
			if child, ok := c.(cmdtree.Parent); ok {
				next := state.descend()
				if next.atTarget() {
					b.emitSelected(c, rec)
					b.walk(child, rec, next)
					continue
				}
				c.RecordOnto(rec, 0, b.Record.sourceRecord.QueueFamily())
				b.walk(child, rec, next)
				continue
			}
			b.emitSelected(c, rec)
			continue
		}
		if child, ok := c.(cmdtree.Parent); ok {
			c.RecordOnto(rec, 0, b.Record.sourceRecord.QueueFamily())
			b.walk(child, rec, descentState{nextHookLevel: state.maxHookLevel, maxHookLevel: state.maxHookLevel})
			continue
		}
		c.RecordOnto(rec, 0, b.Record.sourceRecord.QueueFamily())
		if bc, ok := c.(*cmdtree.BuildAccelerationStructuresCmd); ok && b.Ops.AccelStructBuilds {
			if cap := b.Capturer.EmitAccelStructBuild(b.Record, i, bc); cap != nil {
				b.Record.Captures.AccelStructBuilds = append(b.Record.Captures.AccelStructBuilds, *cap)
			}
		}
		if ac, ok := c.(*cmdtree.CopyAccelerationStructureCmd); ok {
			if cap := b.Capturer.EmitAccelStructCopy(b.Record, ac); cap != nil {
				b.Record.Captures.AccelStructCopies = append(b.Record.Captures.AccelStructCopies, *cap)
			}
		}
	}
}

// emitSelected emits the selected command with its captures: the
// beforeDst captures, one EmitTiming call, the command, then the afterDst
// captures. No transform feedback, barrier, second timestamp, or
// vertex/index-buffer capture is emitted, so Ops.VertexBuffers,
// Ops.IndexBuffer and Ops.TransformFeedback have no effect here.
// Descriptor bindings and the transfer capture each carry their own Before
// flag (spec E4/E5) and are routed to the beforeDst or afterDst slot
// accordingly; everything else has a fixed slot.
func (b *Builder) emitSelected(c cmdtree.Command, rec cmdtree.Recorder) {
	// beforeDst (step 1).
	if b.Ops.IndirectCommand {
		b.Record.Captures.Indirect = b.Capturer.EmitIndirectCopy(b.Record, c)
	}
	if (b.Ops.TransferSrc || b.Ops.TransferDst) && b.Ops.TransferBefore {
		b.Record.Captures.Transfer = b.Capturer.EmitTransferCopy(b.Record, b.Ops.TransferIdx, c, b.Ops.CopyFullTransferBuffer)
	}
	b.emitDescriptorCaptures(true)

	if b.Ops.Timing {
		b.Record.Captures.Timing = b.Capturer.EmitTiming(b.Record)
	}
	c.RecordOnto(rec, 0, b.Record.sourceRecord.QueueFamily())

	// afterDst (step 8).
	for _, sel := range b.Ops.Attachments {
		if cap := b.Capturer.EmitAttachmentCopy(b.Record, sel); cap != nil {
			b.Record.Captures.Attachments = append(b.Record.Captures.Attachments, *cap)
		}
	}
	if (b.Ops.TransferSrc || b.Ops.TransferDst) && !b.Ops.TransferBefore {
		b.Record.Captures.Transfer = b.Capturer.EmitTransferCopy(b.Record, b.Ops.TransferIdx, c, b.Ops.CopyFullTransferBuffer)
	}
	b.emitDescriptorCaptures(false)
}

func (b *Builder) emitDescriptorCaptures(before bool) {
	for _, sel := range b.Ops.DescriptorBindings {
		if sel.Before != before {
			continue
		}
		if cap := b.Capturer.EmitDescriptorCopy(b.Record, sel, nil); cap != nil {
			b.Record.Captures.DescriptorBindings = append(b.Record.Captures.DescriptorBindings, *cap)
		}
	}
}

func pathIndexAt(path []int, level int) int {
	if level < 0 || level >= len(path) {
		return -1
	}
	return path[level]
}
