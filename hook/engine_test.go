package hook

import (
	"testing"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vilerr"
	"github.com/nyorain/vil/vk"
)

func buildSimpleRecord() (*cmdtree.CommandRecord, cmdtree.Command) {
	r := cmdtree.New(0)
	draw := cmdtree.NewDraw(3, 1, 0, 0, nil)
	r.Append(nil, draw)
	return r, draw
}

func TestEngineHookIgnoresNonTargetRecord(t *testing.T) {
	reg := registry.New(3)
	e := NewEngine(reg, &fakeCapturer{})
	r, _ := buildSimpleRecord()

	cb, sub, err := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub != nil {
		t.Fatal("expected no submission for a record that isn't a hook target")
	}
	if cb != vk.CommandBuffer(1) {
		t.Fatal("expected the original command buffer to be returned unchanged")
	}
}

func TestEngineHookBuildsRecordForTarget(t *testing.T) {
	reg := registry.New(3)
	cap := &fakeCapturer{}
	e := NewEngine(reg, cap)
	r, draw := buildSimpleRecord()
	path, _ := cmdtree.PathTo(r.Root(), draw)

	e.SetTarget(Target{Record: r, Path: path, Kind: cmdtree.KindDraw})

	_, sub, err := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub == nil {
		t.Fatal("expected a submission for a hooked target record")
	}
	if !sub.HookRecord.Pending() {
		t.Fatal("expected the hook record to be marked pending")
	}
}

func TestEngineHookReusesMatchingRecord(t *testing.T) {
	reg := registry.New(3)
	cap := &fakeCapturer{}
	e := NewEngine(reg, cap)
	r, draw := buildSimpleRecord()
	path, _ := cmdtree.PathTo(r.Root(), draw)
	e.SetTarget(Target{Record: r, Path: path, Kind: cmdtree.KindDraw})

	_, sub1, _ := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	sub1.Release()
	_, sub2, _ := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})

	if sub1.HookRecord != sub2.HookRecord {
		t.Fatal("expected the same hook record to be reused across Hook calls with no ops/target change")
	}
}

func TestEngineHookRejectsInvalidatedRecord(t *testing.T) {
	reg := registry.New(3)
	e := NewEngine(reg, &fakeCapturer{})
	r, draw := buildSimpleRecord()
	path, _ := cmdtree.PathTo(r.Root(), draw)
	e.SetTarget(Target{Record: r, Path: path, Kind: cmdtree.KindDraw})
	r.Invalidate()

	_, sub, err := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	if err != vilerr.ErrInvalidated {
		t.Fatalf("err = %v, want ErrInvalidated", err)
	}
	if sub != nil {
		t.Fatal("expected no submission for an invalidated record")
	}
}

func TestEngineSetOpsInvalidatesIdleRecords(t *testing.T) {
	reg := registry.New(3)
	e := NewEngine(reg, &fakeCapturer{})
	r, draw := buildSimpleRecord()
	path, _ := cmdtree.PathTo(r.Root(), draw)
	e.SetTarget(Target{Record: r, Path: path, Kind: cmdtree.KindDraw})

	_, sub1, _ := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	sub1.Release()

	e.SetOps(Ops{Timing: true})

	_, sub2, _ := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	if sub1.HookRecord == sub2.HookRecord {
		t.Fatal("expected SetOps to force a fresh hook record")
	}
}

func TestEngineHookAllMatchesAnyRecord(t *testing.T) {
	reg := registry.New(3)
	e := NewEngine(reg, &fakeCapturer{})
	r, _ := buildSimpleRecord()
	e.SetTarget(Target{HookAll: true})

	_, sub, err := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub == nil {
		t.Fatal("expected HookAll to mark every record as a target")
	}
}

func TestEngineClearTargetStopsHooking(t *testing.T) {
	reg := registry.New(3)
	e := NewEngine(reg, &fakeCapturer{})
	r, draw := buildSimpleRecord()
	path, _ := cmdtree.PathTo(r.Root(), draw)
	e.SetTarget(Target{Record: r, Path: path, Kind: cmdtree.KindDraw})
	e.ClearTarget()

	_, sub, err := e.Hook(r, vk.CommandBuffer(1), &fakeRecorder{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub != nil {
		t.Fatal("expected no submission once the target has been cleared")
	}
}

func TestEnginePushCompletedEvictsOldest(t *testing.T) {
	reg := registry.New(3)
	e := NewEngine(reg, &fakeCapturer{})

	first := newHookRecord(nil, nil, cmdtree.KindDraw, Ops{})
	e.pushCompleted(first)
	for i := 0; i < completedCap; i++ {
		e.pushCompleted(newHookRecord(nil, nil, cmdtree.KindDraw, Ops{}))
	}

	completed := e.Completed()
	if len(completed) != completedCap {
		t.Fatalf("len(Completed()) = %d, want %d", len(completed), completedCap)
	}
	for _, hr := range completed {
		if hr == first {
			t.Fatal("oldest completed record should have been evicted")
		}
	}
}
