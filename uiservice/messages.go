// Package uiservice is the data-plane contract exposed to an external UI
// process (spec §6 "Interface exposed to the UI", see uiservice.proto for
// the wire schema). It is new relative to spec.md's distillation, added so
// this module concretely exercises the protobuf/grpc stack the teacher
// depends on for its own gapis<->gapir and gapis<->UI boundaries
// (gapir/client, gapis/client).
//
// Message types below are hand-maintained in the classic golang/protobuf
// v1 struct-tag style (Reset/String/ProtoMessage) rather than generated by
// protoc-gen-go, since this module's toolchain-less build can't run
// protoc; golang/protobuf's legacy wrapping path marshals struct-tagged
// messages of this shape without a hand-written ProtoReflect
// implementation.
package uiservice

import "fmt"

type ListRecordsRequest struct{}

func (m *ListRecordsRequest) Reset()         { *m = ListRecordsRequest{} }
func (m *ListRecordsRequest) String() string { return "ListRecordsRequest{}" }
func (*ListRecordsRequest) ProtoMessage()    {}

type RecordSummary struct {
	RecordId      uint64 `protobuf:"varint,1,opt,name=record_id,json=recordId,proto3"`
	QueueFamily   uint32 `protobuf:"varint,2,opt,name=queue_family,json=queueFamily,proto3"`
	TotalCommands uint32 `protobuf:"varint,3,opt,name=total_commands,json=totalCommands,proto3"`
	DrawCount     uint32 `protobuf:"varint,4,opt,name=draw_count,json=drawCount,proto3"`
	DispatchCount uint32 `protobuf:"varint,5,opt,name=dispatch_count,json=dispatchCount,proto3"`
	SyncCount     uint32 `protobuf:"varint,6,opt,name=sync_count,json=syncCount,proto3"`
	Invalidated   bool   `protobuf:"varint,7,opt,name=invalidated,proto3"`
}

func (m *RecordSummary) Reset()      { *m = RecordSummary{} }
func (m *RecordSummary) ProtoMessage() {}
func (m *RecordSummary) String() string {
	return fmt.Sprintf("RecordSummary{id=%d commands=%d}", m.RecordId, m.TotalCommands)
}

type ListRecordsReply struct {
	Records []*RecordSummary `protobuf:"bytes,1,rep,name=records,proto3"`
}

func (m *ListRecordsReply) Reset()         { *m = ListRecordsReply{} }
func (m *ListRecordsReply) ProtoMessage()  {}
func (m *ListRecordsReply) String() string { return fmt.Sprintf("ListRecordsReply{n=%d}", len(m.Records)) }

type SetTargetRequest struct {
	RecordId                uint64  `protobuf:"varint,1,opt,name=record_id,json=recordId,proto3"`
	Path                     []int32 `protobuf:"varint,2,rep,packed,name=path,proto3"`
	Kind                     uint32  `protobuf:"varint,3,opt,name=kind,proto3"`
	HookAll                  bool    `protobuf:"varint,4,opt,name=hook_all,json=hookAll,proto3"`
	Invalidate               bool    `protobuf:"varint,5,opt,name=invalidate,proto3"`
	CaptureTiming            bool    `protobuf:"varint,10,opt,name=capture_timing,proto3"`
	CaptureIndirect          bool    `protobuf:"varint,11,opt,name=capture_indirect,proto3"`
	CaptureTransferSrc       bool    `protobuf:"varint,12,opt,name=capture_transfer_src,proto3"`
	CaptureTransferDst       bool    `protobuf:"varint,13,opt,name=capture_transfer_dst,proto3"`
	CaptureVertexBuffers     bool    `protobuf:"varint,14,opt,name=capture_vertex_buffers,proto3"`
	CaptureIndexBuffer       bool    `protobuf:"varint,15,opt,name=capture_index_buffer,proto3"`
	CaptureTransformFeedback bool    `protobuf:"varint,16,opt,name=capture_transform_feedback,proto3"`
	CaptureAccelStructBuilds bool    `protobuf:"varint,17,opt,name=capture_accel_struct_builds,proto3"`
	TransferBefore           bool    `protobuf:"varint,18,opt,name=transfer_before,proto3"`
	TransferIdx              int32   `protobuf:"varint,19,opt,name=transfer_idx,proto3"`
	CopyFullTransferBuffer   bool    `protobuf:"varint,20,opt,name=copy_full_transfer_buffer,proto3"`
}

func (m *SetTargetRequest) Reset()         { *m = SetTargetRequest{} }
func (m *SetTargetRequest) ProtoMessage()  {}
func (m *SetTargetRequest) String() string { return fmt.Sprintf("SetTargetRequest{record=%d}", m.RecordId) }

type SetTargetReply struct {
	Accepted bool   `protobuf:"varint,1,opt,name=accepted,proto3"`
	Error    string `protobuf:"bytes,2,opt,name=error,proto3"`
}

func (m *SetTargetReply) Reset()         { *m = SetTargetReply{} }
func (m *SetTargetReply) ProtoMessage()  {}
func (m *SetTargetReply) String() string { return fmt.Sprintf("SetTargetReply{accepted=%v}", m.Accepted) }

type GetHookStateRequest struct {
	RecordId uint64 `protobuf:"varint,1,opt,name=record_id,json=recordId,proto3"`
}

func (m *GetHookStateRequest) Reset()         { *m = GetHookStateRequest{} }
func (m *GetHookStateRequest) ProtoMessage()  {}
func (m *GetHookStateRequest) String() string { return fmt.Sprintf("GetHookStateRequest{record=%d}", m.RecordId) }

type HookState struct {
	Available              bool   `protobuf:"varint,1,opt,name=available,proto3"`
	NeededTimeNanos         uint64 `protobuf:"varint,2,opt,name=needed_time_nanos,proto3"`
	ResolvedDrawCount       uint32 `protobuf:"varint,3,opt,name=resolved_draw_count,proto3"`
	AttachmentCaptureCount  uint32 `protobuf:"varint,4,opt,name=attachment_capture_count,proto3"`
	DescriptorCaptureCount  uint32 `protobuf:"varint,5,opt,name=descriptor_capture_count,proto3"`
}

func (m *HookState) Reset()        { *m = HookState{} }
func (m *HookState) ProtoMessage() {}
func (m *HookState) String() string {
	return fmt.Sprintf("HookState{available=%v needed=%dns}", m.Available, m.NeededTimeNanos)
}

type DescriptorBindingEntry struct {
	SetIndex uint32 `protobuf:"varint,1,opt,name=set_index,proto3"`
	Binding  uint32 `protobuf:"varint,2,opt,name=binding,proto3"`
	Element  uint32 `protobuf:"varint,3,opt,name=element,proto3"`
	Valid    bool   `protobuf:"varint,4,opt,name=valid,proto3"`
	Data     []byte `protobuf:"bytes,5,opt,name=data,proto3"`
}

func (m *DescriptorBindingEntry) Reset()        { *m = DescriptorBindingEntry{} }
func (m *DescriptorBindingEntry) ProtoMessage() {}
func (m *DescriptorBindingEntry) String() string {
	return fmt.Sprintf("DescriptorBindingEntry{set=%d binding=%d}", m.SetIndex, m.Binding)
}
