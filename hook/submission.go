package hook

import (
	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/copyback"
	"github.com/nyorain/vil/dset"
	"github.com/nyorain/vil/vk"
)

// CommandHookSubmission bundles a chosen HookRecord with a fresh
// Descriptor Snapshot for one submission (spec §4.6 step 5: "Create a
// CommandHookSubmission bundling the chosen hook record and a fresh
// descriptor snapshot; register it as the record's current writer").
//
// It also doubles as the record's writer reservation described in spec
// §5 ("Command records are shared-ownership; destructors must never run
// while a submission writer is alive") and §4.7 ("Failed QueueSubmit ...
// does not leak the hook submission; its writer reservation is released
// in the submission's destructor").
type CommandHookSubmission struct {
	HookRecord *HookRecord
	Snapshot   map[vk.DescriptorSet]*dset.CoW

	source   *cmdtree.CommandRecord
	released bool
}

// newSubmission builds a CommandHookSubmission, taking a writer reference
// on both the hook record and the source CommandRecord.
func newSubmission(hr *HookRecord, source *cmdtree.CommandRecord, snapshot map[vk.DescriptorSet]*dset.CoW) *CommandHookSubmission {
	hr.Ref()
	hr.setPending(true)
	source.Ref()
	return &CommandHookSubmission{HookRecord: hr, Snapshot: snapshot, source: source}
}

// Release drops the submission's reservation on both the hook record and
// the source CommandRecord. It is idempotent, matching spec §4.7's
// destructor-release guarantee for both the success and QueueSubmit
// failure paths.
func (s *CommandHookSubmission) Release() {
	if s.released {
		return
	}
	s.released = true
	s.HookRecord.setPending(false)
	s.HookRecord.Unref()
	s.source.Unref()
}

// Complete runs the completion-path post-processing described in spec
// §4.7: reading back timing/indirect-count data and finalizing the hook
// state. invalidated indicates the hook's target changed or the user
// moved on while the submission was in flight (spec §4.7: "If the hook
// was invalidated ... the hook record is destroyed").
func (s *CommandHookSubmission) Complete(invalidated bool, readback Readback) {
	defer s.Release()
	if invalidated {
		return
	}
	cap := &s.HookRecord.Captures
	if cap.Timing != nil {
		before, after, ok := readback.Timestamps(cap.Timing.QueryPool, cap.Timing.BeforeQueryIndex, cap.Timing.AfterQueryIndex)
		if ok && after >= before {
			cap.Timing.NeededTimeNanos = after - before
			cap.Timing.Available = true
		}
	}
	if cap.Indirect != nil && cap.Indirect.CountTarget != nil {
		cap.Indirect.ResolvedCount = readback.DrawCount(*cap.Indirect.CountTarget)
		if cap.Indirect.ResolvedCount > cap.Indirect.MaxDrawCount {
			cap.Indirect.ResolvedCount = cap.Indirect.MaxDrawCount
		}
	}
}

// Readback is the minimal surface the completion path needs to pull
// timestamp and count data back off the GPU; the driver trampoline layer
// implements it (vkGetQueryPoolResults, mapped-memory reads).
type Readback interface {
	Timestamps(pool vk.QueryPool, before, after uint32) (beforeNanos, afterNanos uint64, ok bool)
	DrawCount(target copyback.Target) uint32
}
