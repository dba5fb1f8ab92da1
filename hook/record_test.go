package hook

import (
	"testing"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vk"
)

type fakeRecorder struct {
	emitted []cmdtree.Command
}

func (f *fakeRecorder) Emit(cmd cmdtree.Command) { f.emitted = append(f.emitted, cmd) }

type fakeCapturer struct {
	timingCalls      int
	indirectCalls    int
	attachmentCalls  int
	descriptorCalls  int
	transferCalls    int
	vertexCalls      int
	accelBuildCalls  int
	accelCopyCalls   int
}

func (f *fakeCapturer) EmitTiming(rec *HookRecord) *TimingCapture {
	f.timingCalls++
	return &TimingCapture{BeforeQueryIndex: 0, AfterQueryIndex: 1}
}

func (f *fakeCapturer) EmitIndirectCopy(rec *HookRecord, cmd cmdtree.Command) *IndirectCapture {
	f.indirectCalls++
	return &IndirectCapture{}
}

func (f *fakeCapturer) EmitAttachmentCopy(rec *HookRecord, sel AttachmentSelector) *AttachmentCapture {
	f.attachmentCalls++
	return &AttachmentCapture{Selector: sel}
}

func (f *fakeCapturer) EmitDescriptorCopy(rec *HookRecord, sel DescriptorSelector, snapshot map[vk.DescriptorSet]*dsetCoWRef) *DescriptorCapture {
	f.descriptorCalls++
	return &DescriptorCapture{Selector: sel, Valid: true}
}

func (f *fakeCapturer) EmitTransferCopy(rec *HookRecord, idx int, cmd cmdtree.Command, full bool) *TransferCapture {
	f.transferCalls++
	return &TransferCapture{CommandIndex: idx}
}

func (f *fakeCapturer) EmitVertexCopy(rec *HookRecord, state interface{ AllDescriptorSets() []vk.DescriptorSet }) *VertexCapture {
	f.vertexCalls++
	return &VertexCapture{}
}

func (f *fakeCapturer) EmitAccelStructBuild(rec *HookRecord, idx int, cmd *cmdtree.BuildAccelerationStructuresCmd) *AccelStructBuildCapture {
	f.accelBuildCalls++
	return &AccelStructBuildCapture{CommandIndex: idx}
}

func (f *fakeCapturer) EmitAccelStructCopy(rec *HookRecord, cmd *cmdtree.CopyAccelerationStructureCmd) *AccelStructCopyCapture {
	f.accelCopyCalls++
	return &AccelStructCopyCapture{Src: cmd.Src, Dst: cmd.Dst}
}

func TestHookRecordMatchesTarget(t *testing.T) {
	hr := newHookRecord(nil, []int{0, 1}, cmdtree.KindDraw, Ops{})
	if !hr.MatchesTarget([]int{0, 1}, cmdtree.KindDraw) {
		t.Fatal("expected matching path and kind to match")
	}
	if hr.MatchesTarget([]int{0, 2}, cmdtree.KindDraw) {
		t.Fatal("different path should not match")
	}
	if hr.MatchesTarget([]int{0, 1}, cmdtree.KindDispatch) {
		t.Fatal("different kind should not match")
	}
}

func TestHookRecordOpsEqual(t *testing.T) {
	hr := newHookRecord(nil, nil, cmdtree.KindDraw, Ops{Timing: true})
	if !hr.OpsEqual(Ops{Timing: true}) {
		t.Fatal("expected equal ops to match")
	}
	if hr.OpsEqual(Ops{Timing: false}) {
		t.Fatal("expected different ops to not match")
	}
}

func TestHookRecordRefUnrefDisposesArena(t *testing.T) {
	hr := newHookRecord(nil, nil, cmdtree.KindDraw, Ops{})
	hr.Ref()
	hr.Unref()
	if hr.destroyed {
		t.Fatal("record should still be alive after dropping only one of two refs")
	}
	hr.Unref()
	if !hr.destroyed {
		t.Fatal("record should be destroyed once refs reach zero")
	}
}

func TestHookRecordTrackOwnedReleasedOnDestroy(t *testing.T) {
	reg := registry.New(3)
	w := reg.Register(registry.KindBuffer, 1, nil)

	hr := newHookRecord(nil, nil, cmdtree.KindDraw, Ops{})
	hr.TrackOwned(w)
	if len(hr.owned) != 1 {
		t.Fatalf("owned = %d entries, want 1 before destroy", len(hr.owned))
	}

	hr.Unref()
	if hr.owned != nil {
		t.Fatal("owned should be cleared once the hook record is destroyed")
	}
}

func TestHookRecordPendingToggle(t *testing.T) {
	hr := newHookRecord(nil, nil, cmdtree.KindDraw, Ops{})
	if hr.Pending() {
		t.Fatal("fresh hook record should not be pending")
	}
	hr.setPending(true)
	if !hr.Pending() {
		t.Fatal("expected pending after setPending(true)")
	}
}

func TestBuilderBuildEmitsSelectedCommandCaptures(t *testing.T) {
	r := cmdtree.New(0)
	rp := cmdtree.NewBeginRenderPass(1, 1, vk.Rect2D{}, nil, nil, true)
	r.Append(nil, rp)
	draw := cmdtree.NewDraw(3, 1, 0, 0, nil)
	r.Append(rp, draw)

	path, ok := cmdtree.PathTo(r.Root(), draw)
	if !ok {
		t.Fatal("PathTo should find the draw command")
	}

	ops := Ops{Timing: true, DescriptorBindings: []DescriptorSelector{{Binding: 0}}}
	hr := newHookRecord(r, path, cmdtree.KindDraw, ops)
	cap := &fakeCapturer{}
	b := &Builder{Record: hr, Ops: ops, Capturer: cap}
	recorder := &fakeRecorder{}

	b.Build(r.Root(), recorder)

	if cap.timingCalls != 1 {
		t.Fatalf("timingCalls = %d, want 1", cap.timingCalls)
	}
	if cap.descriptorCalls != 1 {
		t.Fatalf("descriptorCalls = %d, want 1", cap.descriptorCalls)
	}
	if len(recorder.emitted) == 0 {
		t.Fatal("expected at least the draw command to be re-emitted")
	}
}

func TestBuilderEmitSelectedRoutesTransferAndDescriptorsByBefore(t *testing.T) {
	r := cmdtree.New(0)
	draw := cmdtree.NewDraw(3, 1, 0, 0, nil)
	r.Append(nil, draw)

	ops := Ops{
		TransferSrc:    true,
		TransferBefore: true,
		TransferIdx:    2,
		DescriptorBindings: []DescriptorSelector{
			{SetIndex: 0, Binding: 0, Before: true},
			{SetIndex: 0, Binding: 1, Before: false},
		},
	}
	hr := newHookRecord(r, nil, cmdtree.KindDraw, ops)
	cap := &fakeCapturer{}
	b := &Builder{Record: hr, Ops: ops, Capturer: cap}
	recorder := &fakeRecorder{}

	b.emitSelected(draw, recorder)

	if cap.transferCalls != 1 {
		t.Fatalf("transferCalls = %d, want 1", cap.transferCalls)
	}
	if hr.Captures.Transfer == nil || hr.Captures.Transfer.CommandIndex != 2 {
		t.Fatalf("expected transfer capture to use TransferIdx 2, got %+v", hr.Captures.Transfer)
	}
	if cap.descriptorCalls != 2 {
		t.Fatalf("descriptorCalls = %d, want 2", cap.descriptorCalls)
	}
	if len(hr.Captures.DescriptorBindings) != 2 {
		t.Fatalf("expected both before and after descriptor captures, got %d", len(hr.Captures.DescriptorBindings))
	}
}

func TestBuilderEmitSelectedRoutesTransferAfterByDefault(t *testing.T) {
	r := cmdtree.New(0)
	draw := cmdtree.NewDraw(3, 1, 0, 0, nil)
	r.Append(nil, draw)

	ops := Ops{TransferDst: true, TransferIdx: 1}
	hr := newHookRecord(r, nil, cmdtree.KindDraw, ops)
	cap := &fakeCapturer{}
	b := &Builder{Record: hr, Ops: ops, Capturer: cap}
	recorder := &fakeRecorder{}

	b.emitSelected(draw, recorder)

	if cap.transferCalls != 1 {
		t.Fatalf("transferCalls = %d, want 1", cap.transferCalls)
	}
	if hr.Captures.Transfer == nil || hr.Captures.Transfer.CommandIndex != 1 {
		t.Fatalf("expected transfer capture to use TransferIdx 1, got %+v", hr.Captures.Transfer)
	}
}

func TestBuilderBuildEmitsAccelStructCaptures(t *testing.T) {
	r := cmdtree.New(0)
	build := cmdtree.NewBuildAccelerationStructures(
		[]vk.AccelerationStructure{1}, []vk.AccelerationStructure{0}, nil)
	r.Append(nil, build)
	cp := cmdtree.NewCopyAccelerationStructure(1, 2)
	r.Append(nil, cp)

	ops := Ops{AccelStructBuilds: true}
	hr := newHookRecord(r, nil, cmdtree.Kind(-1), ops)
	cap := &fakeCapturer{}
	b := &Builder{Record: hr, Ops: ops, Capturer: cap}
	recorder := &fakeRecorder{}

	b.Build(r.Root(), recorder)

	if cap.accelBuildCalls != 1 {
		t.Fatalf("accelBuildCalls = %d, want 1", cap.accelBuildCalls)
	}
	if cap.accelCopyCalls != 1 {
		t.Fatalf("accelCopyCalls = %d, want 1", cap.accelCopyCalls)
	}
	if len(hr.Captures.AccelStructBuilds) != 1 || len(hr.Captures.AccelStructCopies) != 1 {
		t.Fatal("expected both capture slices to be populated")
	}
}
