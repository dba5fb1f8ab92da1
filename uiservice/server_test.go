package uiservice

import (
	"context"
	"testing"

	"google.golang.org/grpc"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/hook"
	"github.com/nyorain/vil/registry"
	"github.com/nyorain/vil/vk"
)

type fakeStream struct {
	grpc.ServerStream
	sent []*DescriptorBindingEntry
}

func (f *fakeStream) Send(m *DescriptorBindingEntry) error {
	f.sent = append(f.sent, m)
	return nil
}

func buildRecordWithDraw() (*cmdtree.CommandRecord, cmdtree.Command) {
	r := cmdtree.New(0)
	draw := cmdtree.NewDraw(1, 1, 0, 0, nil)
	r.Append(nil, draw)
	return r, draw
}

func TestSetTargetRejectsUnknownRecord(t *testing.T) {
	reg := registry.New(3)
	engine := hook.NewEngine(reg, noopCapturer{})
	srv := NewServer(engine, func(id uint64) *cmdtree.CommandRecord { return nil })

	reply, err := srv.SetTarget(context.Background(), &SetTargetRequest{RecordId: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Accepted {
		t.Fatal("expected SetTarget to reject an unknown record id")
	}
	if reply.Error == "" {
		t.Fatal("expected an error message for an unknown record id")
	}
}

func TestSetTargetAcceptsKnownRecordAndConfiguresEngine(t *testing.T) {
	reg := registry.New(3)
	engine := hook.NewEngine(reg, noopCapturer{})
	rec, draw := buildRecordWithDraw()
	path, _ := cmdtree.PathTo(rec.Root(), draw)

	lookup := func(id uint64) *cmdtree.CommandRecord {
		if id == 7 {
			return rec
		}
		return nil
	}
	srv := NewServer(engine, lookup)

	pathI32 := make([]int32, len(path))
	for i, p := range path {
		pathI32[i] = int32(p)
	}

	reply, err := srv.SetTarget(context.Background(), &SetTargetRequest{
		RecordId:      7,
		Path:          pathI32,
		Kind:          uint32(cmdtree.KindDraw),
		CaptureTiming: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reply.Accepted {
		t.Fatalf("expected SetTarget to accept a known record id, got error %q", reply.Error)
	}

	_, sub, err := engine.Hook(rec, 0, noopRecorderUI{})
	if err != nil {
		t.Fatalf("unexpected Hook error: %v", err)
	}
	if sub == nil {
		t.Fatal("expected the configured target to make the record a hook target")
	}
}

func TestGetHookStateEmptyWhenNoCompletedRecords(t *testing.T) {
	reg := registry.New(3)
	engine := hook.NewEngine(reg, noopCapturer{})
	srv := NewServer(engine, func(uint64) *cmdtree.CommandRecord { return nil })

	state, err := srv.GetHookState(context.Background(), &GetHookStateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Available || state.DescriptorCaptureCount != 0 {
		t.Fatal("expected a zero-value HookState when nothing has completed")
	}
}

func TestStreamDescriptorSnapshotErrorsWhenNoCompletedRecords(t *testing.T) {
	reg := registry.New(3)
	engine := hook.NewEngine(reg, noopCapturer{})
	srv := NewServer(engine, func(uint64) *cmdtree.CommandRecord { return nil })

	if err := srv.StreamDescriptorSnapshot(&GetHookStateRequest{}, &fakeStream{}); err == nil {
		t.Fatal("expected an error when no completed hook state is available")
	}
}

type noopRecorderUI struct{}

func (noopRecorderUI) Emit(cmd cmdtree.Command) {}

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
