// Package submission implements the Submission Tracker of spec §4.7: per
// submission, it keeps the fences/semaphores needed to know when a hook
// record's results can be read back, and drives the completion path.
//
// Grounded on gapis/replay/scheduler's batching of in-flight replay
// requests behind fence waits, generalized from a single offline replay
// batch to many concurrently in-flight application submissions.
package submission

import (
	"context"
	"sync"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/hook"
	"github.com/nyorain/vil/vilerr"
	"github.com/nyorain/vil/vk"
	"github.com/nyorain/vil/vlog"
)

// FenceStatus mirrors vkGetFenceStatus's three outcomes.
type FenceStatus int

const (
	FenceNotReady FenceStatus = iota
	FenceSignaled
	FenceDeviceLost
)

// Fencer is the minimal surface the tracker needs from the driver
// trampoline layer to observe submission completion (spec §5: "Fence
// waits may use either blocking waits or polling").
type Fencer interface {
	Status(f vk.Fence) FenceStatus
	Wait(ctx context.Context, f vk.Fence) FenceStatus
}

// Submission is one in-flight vkQueueSubmit batch (spec §4.7: "Each
// in-flight submission tracks: original submission descriptor, the hook
// submission (if any), an application fence or internal fence, and the
// batch of command records it references").
type Submission struct {
	Queue   vk.Queue
	Fence   vk.Fence
	// InternalFence is true when Fence was allocated by the layer itself
	// because the application submitted without one (spec §4.7 needs a
	// fence to poll regardless of what the application provided).
	InternalFence bool

	Records []*cmdtree.CommandRecord
	Hook    *hook.CommandHookSubmission

	completed bool
	failed    bool
}

// Tracker owns every in-flight Submission for one device queue set (spec
// §4.7 "Submission Tracker").
type Tracker struct {
	mu      sync.Mutex
	fencer  Fencer
	pending []*Submission
}

func NewTracker(fencer Fencer) *Tracker {
	return &Tracker{fencer: fencer}
}

// Submit registers a newly issued submission. records is every CommandRecord
// the batch submitted, each given an extra reference for the duration of
// the submission (spec §5: "Command records are shared-ownership;
// destructors must never run while a submission writer is alive").
func (t *Tracker) Submit(queue vk.Queue, fence vk.Fence, internalFence bool, records []*cmdtree.CommandRecord, hookSub *hook.CommandHookSubmission) *Submission {
	for _, r := range records {
		r.Ref()
	}
	s := &Submission{Queue: queue, Fence: fence, InternalFence: internalFence, Records: records, Hook: hookSub}
	t.mu.Lock()
	t.pending = append(t.pending, s)
	t.mu.Unlock()
	return s
}

// Fail reports that vkQueueSubmit itself failed for s: the hook
// submission (if any) is released and s is dropped without ever having
// been added to pending, so it does not leak (spec §4.7: "Failed
// QueueSubmit on the instrumented command buffer does not leak the hook
// submission; its writer reservation is released in the submission's
// destructor").
func (t *Tracker) Fail(s *Submission) {
	s.failed = true
	t.releaseRecords(s)
	if s.Hook != nil {
		s.Hook.Release()
	}
}

// Poll checks every pending submission's fence and runs the completion
// path for any that have signaled, returning the submissions that
// completed this call. engineInvalidated reports, for a given
// CommandHookSubmission, whether its hook record's target has since
// changed (spec §4.7: "If the hook was invalidated ... the hook record is
// destroyed").
func (t *Tracker) Poll(ctx context.Context, readback hook.Readback, engineInvalidated func(*hook.CommandHookSubmission) bool) []*Submission {
	t.mu.Lock()
	pending := t.pending
	t.mu.Unlock()

	var done []*Submission
	var stillPending []*Submission
	for _, s := range pending {
		status := t.fencer.Status(s.Fence)
		switch status {
		case FenceNotReady:
			stillPending = append(stillPending, s)
		case FenceDeviceLost:
			vlog.Errorf(ctx, "device lost while waiting on submission fence")
			t.complete(s, true, readback, engineInvalidated)
			done = append(done, s)
		case FenceSignaled:
			t.complete(s, false, readback, engineInvalidated)
			done = append(done, s)
		}
	}

	t.mu.Lock()
	t.pending = stillPending
	t.mu.Unlock()
	return done
}

// WaitOne blocks on one submission's fence directly, for callers (e.g. the
// GUI path) that need fresh data now rather than on the next poll tick
// (spec §5: "GUI path may wait for a submission so it can display fresh
// data ... Such waits must release the device mutex first" - releasing
// that mutex is the caller's responsibility, since it is held outside this
// package).
func (t *Tracker) WaitOne(ctx context.Context, s *Submission, readback hook.Readback, engineInvalidated func(*hook.CommandHookSubmission) bool) {
	status := t.fencer.Wait(ctx, s.Fence)
	t.complete(s, status == FenceDeviceLost, readback, engineInvalidated)
	t.mu.Lock()
	for i, p := range t.pending {
		if p == s {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			break
		}
	}
	t.mu.Unlock()
}

func (t *Tracker) complete(s *Submission, deviceLost bool, readback hook.Readback, engineInvalidated func(*hook.CommandHookSubmission) bool) {
	if s.completed {
		return
	}
	s.completed = true
	defer t.releaseRecords(s)

	if s.Hook == nil {
		return
	}
	invalidated := deviceLost
	if engineInvalidated != nil {
		invalidated = invalidated || engineInvalidated(s.Hook)
	}
	s.Hook.Complete(invalidated, readback)
}

func (t *Tracker) releaseRecords(s *Submission) {
	for _, r := range s.Records {
		r.Unref()
	}
}

// PendingCount returns the number of submissions still awaiting
// completion, for diagnostics/tests.
func (t *Tracker) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// DeviceFault is the vendor-specific fault payload fetched when
// VK_EXT_device_fault is enabled (spec §4.7: "if device-fault extensions
// are enabled, the engine fetches and logs fault info (addresses and
// vendor blobs)").
type DeviceFault struct {
	Addresses []uint64
	VendorBlob []byte
}

// LogDeviceFault logs a fetched device fault at Error severity (spec §4.7
// "surfaced through the normal Vulkan error channel"). Fetching the fault
// itself is a driver call out of scope for this core; callers that have
// already queried vkGetDeviceFaultInfoEXT pass the result here.
func LogDeviceFault(ctx context.Context, f DeviceFault) error {
	vlog.Errorf(ctx, "device fault", "addresses", len(f.Addresses), "vendor_blob_bytes", len(f.VendorBlob))
	return vilerr.Tiered(vilerr.TierFatal, vilerr.ErrDeviceLost)
}
