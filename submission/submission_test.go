package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/copyback"
	"github.com/nyorain/vil/hook"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vilerr"
	"github.com/nyorain/vil/vk"
)

type noopRecorder struct{}

func (noopRecorder) Emit(cmd cmdtree.Command) {}

type noopCapturer struct{}

func (noopCapturer) EmitTiming(rec *hook.HookRecord) *hook.TimingCapture { return nil }
func (noopCapturer) EmitIndirectCopy(rec *hook.HookRecord, cmd cmdtree.Command) *hook.IndirectCapture {
	return nil
}
func (noopCapturer) EmitAttachmentCopy(rec *hook.HookRecord, sel hook.AttachmentSelector) *hook.AttachmentCapture {
	return nil
}
func (noopCapturer) EmitDescriptorCopy(rec *hook.HookRecord, sel hook.DescriptorSelector, snapshot map[vk.DescriptorSet]*interface{}) *hook.DescriptorCapture {
	return nil
}
func (noopCapturer) EmitTransferCopy(rec *hook.HookRecord, idx int, cmd cmdtree.Command, full bool) *hook.TransferCapture {
	return nil
}
func (noopCapturer) EmitVertexCopy(rec *hook.HookRecord, state interface{ AllDescriptorSets() []vk.DescriptorSet }) *hook.VertexCapture {
	return nil
}
func (noopCapturer) EmitAccelStructBuild(rec *hook.HookRecord, idx int, cmd *cmdtree.BuildAccelerationStructuresCmd) *hook.AccelStructBuildCapture {
	return nil
}
func (noopCapturer) EmitAccelStructCopy(rec *hook.HookRecord, cmd *cmdtree.CopyAccelerationStructureCmd) *hook.AccelStructCopyCapture {
	return nil
}

func registryForTest() *registry.Registry { return registry.New(3) }

type fakeFencer struct {
	status map[vk.Fence]FenceStatus
}

func newFakeFencer() *fakeFencer { return &fakeFencer{status: map[vk.Fence]FenceStatus{}} }

func (f *fakeFencer) Status(fence vk.Fence) FenceStatus {
	if s, ok := f.status[fence]; ok {
		return s
	}
	return FenceNotReady
}

func (f *fakeFencer) Wait(ctx context.Context, fence vk.Fence) FenceStatus {
	return f.Status(fence)
}

type fakeReadback struct{}

func (fakeReadback) Timestamps(pool vk.QueryPool, before, after uint32) (uint64, uint64, bool) {
	return 0, 0, false
}
func (fakeReadback) DrawCount(target copyback.Target) uint32 { return 0 }

func TestSubmitTracksPending(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)

	tr.Submit(vk.Queue(1), vk.Fence(1), false, []*cmdtree.CommandRecord{rec}, nil)
	if tr.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1", tr.PendingCount())
	}
}

func TestPollLeavesNotReadySubmissionsPending(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)
	tr.Submit(vk.Queue(1), vk.Fence(1), false, []*cmdtree.CommandRecord{rec}, nil)

	done := tr.Poll(context.Background(), fakeReadback{}, nil)
	if len(done) != 0 {
		t.Fatalf("expected no completions, got %d", len(done))
	}
	if tr.PendingCount() != 1 {
		t.Fatal("submission should still be pending")
	}
}

func TestPollCompletesSignaledSubmission(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)
	sub := tr.Submit(vk.Queue(1), vk.Fence(1), false, []*cmdtree.CommandRecord{rec}, nil)
	fencer.status[vk.Fence(1)] = FenceSignaled

	done := tr.Poll(context.Background(), fakeReadback{}, nil)
	if len(done) != 1 || done[0] != sub {
		t.Fatal("expected the signaled submission to be reported as done")
	}
	if tr.PendingCount() != 0 {
		t.Fatal("completed submission should be removed from pending")
	}
}

func TestPollRunsHookCompletionOnCompletion(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)

	// Build a hook submission the long way, through a real Engine, so
	// CommandHookSubmission's fields are populated the way production code
	// would populate them.
	reg := registryForTest()
	e := hook.NewEngine(reg, noopCapturer{})
	src := cmdtree.New(0)
	draw := cmdtree.NewDraw(1, 1, 0, 0, nil)
	src.Append(nil, draw)
	path, _ := cmdtree.PathTo(src.Root(), draw)
	e.SetTarget(hook.Target{Record: src, Path: path, Kind: cmdtree.KindDraw})
	_, hookSub, err := e.Hook(src, vk.CommandBuffer(1), noopRecorder{})
	if err != nil {
		t.Fatalf("unexpected error building hook submission: %v", err)
	}

	tr.Submit(vk.Queue(1), vk.Fence(2), false, []*cmdtree.CommandRecord{rec}, hookSub)
	fencer.status[vk.Fence(2)] = FenceSignaled

	done := tr.Poll(context.Background(), fakeReadback{}, func(*hook.CommandHookSubmission) bool { return false })
	if len(done) != 1 {
		t.Fatalf("expected one completion, got %d", len(done))
	}
	if hookSub.HookRecord.Pending() {
		t.Fatal("expected the hook record to no longer be pending after completion")
	}
}

func TestFailReleasesWithoutPending(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)
	sub := &Submission{Queue: vk.Queue(1), Fence: vk.Fence(3), Records: []*cmdtree.CommandRecord{rec}}

	tr.Fail(sub)
	if tr.PendingCount() != 0 {
		t.Fatal("failed submission must never be added to pending")
	}
}

func TestWaitOneRemovesFromPending(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)
	sub := tr.Submit(vk.Queue(1), vk.Fence(4), false, []*cmdtree.CommandRecord{rec}, nil)
	fencer.status[vk.Fence(4)] = FenceSignaled

	tr.WaitOne(context.Background(), sub, fakeReadback{}, nil)
	if tr.PendingCount() != 0 {
		t.Fatal("expected WaitOne to remove the submission from pending")
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	fencer := newFakeFencer()
	tr := NewTracker(fencer)
	rec := cmdtree.New(0)
	sub := tr.Submit(vk.Queue(1), vk.Fence(5), false, []*cmdtree.CommandRecord{rec}, nil)
	fencer.status[vk.Fence(5)] = FenceSignaled

	tr.Poll(context.Background(), fakeReadback{}, nil)
	// A second, manual complete call must be a no-op rather than double
	// releasing the record refs.
	tr.complete(sub, false, fakeReadback{}, nil)
}

func TestLogDeviceFaultReturnsFatalTier(t *testing.T) {
	err := LogDeviceFault(context.Background(), DeviceFault{Addresses: []uint64{1, 2}, VendorBlob: []byte{0xAA}})
	if vilerr.TierOf(err) != vilerr.TierFatal {
		t.Fatalf("TierOf(err) = %v, want TierFatal", vilerr.TierOf(err))
	}
	if !errors.Is(err, vilerr.ErrDeviceLost) {
		t.Fatal("expected the returned error to wrap ErrDeviceLost")
	}
}
