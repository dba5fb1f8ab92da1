// Package hook implements the Command Hook/Interception Engine of spec
// §3/§4.6: per submission, it decides whether to replace the
// application's command buffer with an instrumented one that captures
// timing, indirect arguments, attachments, descriptor bindings, transfers,
// and acceleration-structure build inputs around a selected target
// command. Ops also has switches for vertex/index buffers and transform
// feedback; Builder emits no capture for them.
//
// Grounded on gapis/api/vulkan's custom_replay.go (which rewrites a
// captured command stream to insert readback commands around a selected
// atom) and frame_loop.go (which tracks which commands must be replayed
// unmodified vs. intercepted, and splits render passes around a hooked
// subpass); generalized from gapid's offline, whole-trace replay to a
// live, per-submission interception decision.
package hook

import "github.com/nyorain/vil/cmdtree"

// DescriptorSelector identifies one descriptor slot to capture (spec
// §4.6: "a selected (set, binding, element, imageAsBuffer?)").
type DescriptorSelector struct {
	SetIndex    int // index into the target command's bound descriptor sets
	Binding     uint32
	Element     uint32
	ImageAsBuffer bool

	// Before selects whether this binding is captured at the record's
	// *beforeDst* step (pre-command) or its *afterDst* step
	// (post-command) (spec §4.6 step list items 1/8; E4: "before=true"
	// captures the pre-dispatch contents, "before=false" the
	// post-dispatch contents).
	Before bool
}

// AttachmentSelector identifies one render pass attachment to capture
// (spec §4.6: "choose the attachment by (type = color|input|depthStencil,
// id)").
type AttachmentType int

const (
	AttachmentColor AttachmentType = iota
	AttachmentInput
	AttachmentDepthStencil
)

type AttachmentSelector struct {
	Type AttachmentType
	ID   uint32
}

// Ops configures what a hook record captures around the selected command
// (spec §4.6 "set_ops"). The zero value captures nothing but still allows
// the command to be found and re-emitted unmodified.
type Ops struct {
	Timing             bool
	IndirectCommand    bool
	Attachments        []AttachmentSelector
	DescriptorBindings []DescriptorSelector
	TransferSrc        bool
	TransferDst        bool
	VertexBuffers      bool
	IndexBuffer        bool
	TransformFeedback  bool
	AccelStructBuilds  bool

	// TransferBefore selects whether the transfer capture happens at the
	// beforeDst step (pre-command, e.g. to see a CopyBuffer's source
	// contents before it executes) or the afterDst step (post-command)
	// (spec §4.6 step list items 1/8; E5: "transferSrc, before=true").
	TransferBefore bool

	// TransferIdx is the index, within the selected command's own
	// region/subresource list, that the transfer capture derives its
	// source/destination range from (spec §4.6 "Transfer capture... at
	// index transferIdx").
	TransferIdx int

	// CopyFullTransferBuffer, when true, captures the full [0, size)
	// range of a buffer transfer regardless of the command's own
	// offset/size; when false, exactly the command's (offset, size)
	// range is copied (spec §8 property 10).
	CopyFullTransferBuffer bool

	MaxBufCopySize   uint64
	MaxDrawCount     uint32 // bound for DrawIndirectCount-family capture
	VertexBufferCap  uint64
}

// Equal reports whether two Ops configurations are equivalent, used by
// SetOps to decide whether prior hook records must be invalidated (spec
// §4.6: "Changing ops invalidates prior hook records so their captured
// layouts match current needs").
func (o Ops) Equal(other Ops) bool {
	if o.Timing != other.Timing || o.IndirectCommand != other.IndirectCommand ||
		o.TransferSrc != other.TransferSrc || o.TransferDst != other.TransferDst ||
		o.VertexBuffers != other.VertexBuffers || o.IndexBuffer != other.IndexBuffer ||
		o.TransformFeedback != other.TransformFeedback || o.AccelStructBuilds != other.AccelStructBuilds ||
		o.TransferBefore != other.TransferBefore || o.TransferIdx != other.TransferIdx ||
		o.CopyFullTransferBuffer != other.CopyFullTransferBuffer ||
		o.MaxBufCopySize != other.MaxBufCopySize || o.MaxDrawCount != other.MaxDrawCount ||
		o.VertexBufferCap != other.VertexBufferCap {
		return false
	}
	if len(o.Attachments) != len(other.Attachments) || len(o.DescriptorBindings) != len(other.DescriptorBindings) {
		return false
	}
	for i := range o.Attachments {
		if o.Attachments[i] != other.Attachments[i] {
			return false
		}
	}
	for i := range o.DescriptorBindings {
		if o.DescriptorBindings[i] != other.DescriptorBindings[i] {
			return false
		}
	}
	return true
}

// Target identifies the command the user wants to inspect (spec §4.6
// "set_target"): either a specific command reached via path, or a
// whole-command-buffer hook.
type Target struct {
	Record *cmdtree.CommandRecord
	Path   []int // child-index path from the record's root to the target command
	Kind   cmdtree.Kind

	// HookAll requests hooking every submission of this command buffer
	// regardless of path matching (spec §4.6: "the user has selected 'hook
	// all of this command buffer'").
	HookAll bool

	// Invalidate carries set_target's "invalidate?" parameter (spec §4.6).
	// Engine does not read it; setting it has no effect on any record.
	Invalidate bool
}
