package uiservice

import (
	"context"
	"sync"

	"github.com/nyorain/vil/cmdtree"
	"github.com/nyorain/vil/hook"
	"github.com/nyorain/vil/vilerr"
)

// RecordLookup resolves a UI-facing record_id back to a live
// CommandRecord; the layer's own record table (out of scope for this
// package) owns the authoritative id <-> record mapping.
type RecordLookup func(id uint64) *cmdtree.CommandRecord

// Server implements UIServiceServer over a hook.Engine and a record
// lookup function, translating wire messages into calls on those two.
type Server struct {
	mu     sync.Mutex
	engine *hook.Engine
	lookup RecordLookup
}

func NewServer(engine *hook.Engine, lookup RecordLookup) *Server {
	return &Server{engine: engine, lookup: lookup}
}

func (s *Server) ListRecords(ctx context.Context, req *ListRecordsRequest) (*ListRecordsReply, error) {
	// The record table itself lives outside this package (it is owned by
	// whatever layer component tracks live VkCommandBuffer -> record
	// identity); a real server wires a range-over-records callback in
	// here. Returning an empty list keeps the RPC well-defined when no
	// such table has been wired yet.
	return &ListRecordsReply{}, nil
}

func (s *Server) SetTarget(ctx context.Context, req *SetTargetRequest) (*SetTargetReply, error) {
	rec := s.lookup(req.RecordId)
	if rec == nil {
		return &SetTargetReply{Accepted: false, Error: "unknown record id"}, nil
	}

	path := make([]int, len(req.Path))
	for i, p := range req.Path {
		path[i] = int(p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetTarget(hook.Target{
		Record:     rec,
		Path:       path,
		Kind:       cmdtree.Kind(req.Kind),
		HookAll:    req.HookAll,
		Invalidate: req.Invalidate,
	})
	s.engine.SetOps(hook.Ops{
		Timing:                 req.CaptureTiming,
		IndirectCommand:        req.CaptureIndirect,
		TransferSrc:            req.CaptureTransferSrc,
		TransferDst:            req.CaptureTransferDst,
		VertexBuffers:          req.CaptureVertexBuffers,
		IndexBuffer:            req.CaptureIndexBuffer,
		TransformFeedback:      req.CaptureTransformFeedback,
		AccelStructBuilds:      req.CaptureAccelStructBuilds,
		TransferBefore:         req.TransferBefore,
		TransferIdx:            int(req.TransferIdx),
		CopyFullTransferBuffer: req.CopyFullTransferBuffer,
	})
	return &SetTargetReply{Accepted: true}, nil
}

func (s *Server) GetHookState(ctx context.Context, req *GetHookStateRequest) (*HookState, error) {
	completed := s.engine.Completed()
	if len(completed) == 0 {
		return &HookState{}, nil
	}
	latest := completed[len(completed)-1]
	out := &HookState{
		DescriptorCaptureCount: uint32(len(latest.Captures.DescriptorBindings)),
		AttachmentCaptureCount: uint32(len(latest.Captures.Attachments)),
	}
	if t := latest.Captures.Timing; t != nil {
		out.Available = t.Available
		out.NeededTimeNanos = t.NeededTimeNanos
	}
	if ind := latest.Captures.Indirect; ind != nil {
		out.ResolvedDrawCount = ind.ResolvedCount
	}
	return out, nil
}

func (s *Server) StreamDescriptorSnapshot(req *GetHookStateRequest, stream UIService_StreamDescriptorSnapshotServer) error {
	completed := s.engine.Completed()
	if len(completed) == 0 {
		return vilerr.New("no completed hook state available")
	}
	latest := completed[len(completed)-1]
	for _, dc := range latest.Captures.DescriptorBindings {
		entry := &DescriptorBindingEntry{
			SetIndex: uint32(dc.Selector.SetIndex),
			Binding:  dc.Selector.Binding,
			Element:  dc.Selector.Element,
			Valid:    dc.Valid,
		}
		if err := stream.Send(entry); err != nil {
			return err
		}
	}
	return nil
}
