package hook

import (
	"github.com/nyorain/vil/copyback"
	"github.com/nyorain/vil/dset"
	"github.com/nyorain/vil/vk"
)

// TimingCapture holds the two timestamp query results bracketing the
// selected command (spec §4.6 "Timing": "two timestamp writes around the
// command").
type TimingCapture struct {
	QueryPool        vk.QueryPool
	BeforeQueryIndex uint32
	AfterQueryIndex  uint32

	// NeededTimeNanos is filled in during post-processing once both
	// timestamps have been read back (spec §4.7: "read timestamps and
	// compute a needed-time delta").
	NeededTimeNanos uint64
	Available       bool
}

// IndirectCapture holds the owned copy of an indirect draw/dispatch's
// argument buffer (and, for the *Count family, the draw-count word) (spec
// §4.6 "Indirect command").
type IndirectCapture struct {
	Args        copyback.Target
	CountTarget *copyback.Target // non-nil only for DrawIndirectCount-family
	MaxDrawCount uint32

	// ResolvedCount is filled in during post-processing by reading
	// CountTarget back (spec §4.7: "for DrawIndirectCount, read back the
	// captured count to bound the displayed command list").
	ResolvedCount uint32
}

// AttachmentCapture holds one captured render pass attachment (spec §4.6
// "Attachments").
type AttachmentCapture struct {
	Selector AttachmentSelector
	Image    copyback.Target
}

// DescriptorCapture holds one captured descriptor binding (spec §4.6
// "Descriptor binding capture").
type DescriptorCapture struct {
	Selector DescriptorSelector
	// One of Image/Buffer is populated depending on the descriptor type;
	// AccelStructQueued is set instead for acceleration-structure
	// descriptors, which require an async snapshot op rather than a
	// synchronous copy.
	Image             *copyback.Target
	Buffer            *copyback.Target
	AccelStructQueued bool
	Valid             bool // false if the CoW lookup reported an invalid/destroyed handle
}

// TransferCapture holds the source and/or destination data for one
// transfer command, keyed by its index within the record (spec §4.6
// "Transfer capture").
type TransferCapture struct {
	CommandIndex int
	Src, Dst     *copyback.Target
}

// VertexCapture holds copies of bound vertex buffers and the index buffer
// (spec §4.6 "Vertex buffers / index buffer").
type VertexCapture struct {
	VertexBuffers []copyback.Target
	IndexBuffer   *copyback.Target
}

// TransformFeedbackCapture holds the owned xfb output buffer (spec §4.6
// "Transform feedback").
type TransformFeedbackCapture struct {
	Buffer copyback.Target
}

// AccelStructBuildCapture holds the owned copy of one
// BuildAccelerationStructures command's geometry/instance inputs (spec
// §4.6 "Acceleration structure builds").
type AccelStructBuildCapture struct {
	CommandIndex int
	Inputs       []copyback.Target
}

// AccelStructCopyCapture records one accel-struct-to-accel-struct copy's
// (src, dst) pair (spec §4.6: "For copies between accel structs, record
// the (src, dst) pair").
type AccelStructCopyCapture struct {
	Src, Dst vk.AccelerationStructure
}

// CaptureData is everything a HookRecord gathered, used by the Submission
// Tracker's completion path and by the UI (spec §4.7 "post-process
// captured data").
type CaptureData struct {
	Timing            *TimingCapture
	Indirect          *IndirectCapture
	Attachments       []AttachmentCapture
	DescriptorBindings []DescriptorCapture
	Transfer          *TransferCapture
	Vertex            *VertexCapture
	TransformFeedback *TransformFeedbackCapture
	AccelStructBuilds []AccelStructBuildCapture
	AccelStructCopies []AccelStructCopyCapture

	// DescriptorSnapshot is the Descriptor Snapshot captured at hook(),
	// per spec §3: "a map from set identity to CoW pointer ... Used by the
	// hook to read descriptor contents after the submission has
	// finished."
	DescriptorSnapshot map[vk.DescriptorSet]*dset.CoW
}
