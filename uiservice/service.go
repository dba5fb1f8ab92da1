package uiservice

import (
	"context"

	"google.golang.org/grpc"
)

// UIServiceServer is implemented by the data-plane server backing the four
// operations spec §6 names.
type UIServiceServer interface {
	ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsReply, error)
	SetTarget(context.Context, *SetTargetRequest) (*SetTargetReply, error)
	GetHookState(context.Context, *GetHookStateRequest) (*HookState, error)
	StreamDescriptorSnapshot(*GetHookStateRequest, UIService_StreamDescriptorSnapshotServer) error
}

// UIService_StreamDescriptorSnapshotServer is the server-side stream
// handle for the StreamDescriptorSnapshot RPC.
type UIService_StreamDescriptorSnapshotServer interface {
	Send(*DescriptorBindingEntry) error
	grpc.ServerStream
}

type uiServiceStreamDescriptorSnapshotServer struct {
	grpc.ServerStream
}

func (s *uiServiceStreamDescriptorSnapshotServer) Send(m *DescriptorBindingEntry) error {
	return s.ServerStream.SendMsg(m)
}

// RegisterUIServiceServer registers srv with s, mirroring the pattern
// protoc-gen-go-grpc would emit for uiservice.proto's service declaration.
func RegisterUIServiceServer(s grpc.ServiceRegistrar, srv UIServiceServer) {
	s.RegisterService(&uiServiceServiceDesc, srv)
}

func handlerListRecords(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListRecordsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UIServiceServer).ListRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/vil.UIService/ListRecords"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UIServiceServer).ListRecords(ctx, req.(*ListRecordsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerSetTarget(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetTargetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UIServiceServer).SetTarget(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/vil.UIService/SetTarget"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UIServiceServer).SetTarget(ctx, req.(*SetTargetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerGetHookState(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetHookStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UIServiceServer).GetHookState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/vil.UIService/GetHookState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UIServiceServer).GetHookState(ctx, req.(*GetHookStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerStreamDescriptorSnapshot(srv interface{}, stream grpc.ServerStream) error {
	m := new(GetHookStateRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UIServiceServer).StreamDescriptorSnapshot(m, &uiServiceStreamDescriptorSnapshotServer{stream})
}

var uiServiceServiceDesc = grpc.ServiceDesc{
	ServiceName: "vil.UIService",
	HandlerType: (*UIServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListRecords", Handler: handlerListRecords},
		{MethodName: "SetTarget", Handler: handlerSetTarget},
		{MethodName: "GetHookState", Handler: handlerGetHookState},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamDescriptorSnapshot", Handler: handlerStreamDescriptorSnapshot, ServerStreams: true},
	},
	Metadata: "uiservice.proto",
}

// UIServiceClient is the client-side stub.
type UIServiceClient interface {
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsReply, error)
	SetTarget(ctx context.Context, in *SetTargetRequest, opts ...grpc.CallOption) (*SetTargetReply, error)
	GetHookState(ctx context.Context, in *GetHookStateRequest, opts ...grpc.CallOption) (*HookState, error)
	StreamDescriptorSnapshot(ctx context.Context, in *GetHookStateRequest, opts ...grpc.CallOption) (UIService_StreamDescriptorSnapshotClient, error)
}

type UIService_StreamDescriptorSnapshotClient interface {
	Recv() (*DescriptorBindingEntry, error)
	grpc.ClientStream
}

type uiServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUIServiceClient(cc grpc.ClientConnInterface) UIServiceClient {
	return &uiServiceClient{cc}
}

func (c *uiServiceClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsReply, error) {
	out := new(ListRecordsReply)
	if err := c.cc.Invoke(ctx, "/vil.UIService/ListRecords", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *uiServiceClient) SetTarget(ctx context.Context, in *SetTargetRequest, opts ...grpc.CallOption) (*SetTargetReply, error) {
	out := new(SetTargetReply)
	if err := c.cc.Invoke(ctx, "/vil.UIService/SetTarget", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *uiServiceClient) GetHookState(ctx context.Context, in *GetHookStateRequest, opts ...grpc.CallOption) (*HookState, error) {
	out := new(HookState)
	if err := c.cc.Invoke(ctx, "/vil.UIService/GetHookState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *uiServiceClient) StreamDescriptorSnapshot(ctx context.Context, in *GetHookStateRequest, opts ...grpc.CallOption) (UIService_StreamDescriptorSnapshotClient, error) {
	stream, err := c.cc.(interface {
		NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error)
	}).NewStream(ctx, &uiServiceServiceDesc.Streams[0], "/vil.UIService/StreamDescriptorSnapshot", opts...)
	if err != nil {
		return nil, err
	}
	x := &uiServiceStreamDescriptorSnapshotClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type uiServiceStreamDescriptorSnapshotClient struct {
	grpc.ClientStream
}

func (x *uiServiceStreamDescriptorSnapshotClient) Recv() (*DescriptorBindingEntry, error) {
	m := new(DescriptorBindingEntry)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
