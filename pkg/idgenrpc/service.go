// Package idgenrpc declares the idgen.v1.IDService gRPC contract on top of
// protobuf well-known types, so servers and clients need no generated code.
//
// IDs travel as UInt64Value. Batches travel as a ListValue of decimal strings
// because structpb numbers are float64 and cannot hold 63-bit values.
package idgenrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "idgen.v1.IDService"

	NextFullMethodName      = "/idgen.v1.IDService/Next"
	NextBatchFullMethodName = "/idgen.v1.IDService/NextBatch"
	DecodeFullMethodName    = "/idgen.v1.IDService/Decode"
	InfoFullMethodName      = "/idgen.v1.IDService/Info"
)

// IDServiceServer is the server API for IDService.
type IDServiceServer interface {
	Next(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	NextBatch(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error)
	Decode(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
	Info(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// IDServiceClient is the client API for IDService.
type IDServiceClient interface {
	Next(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	NextBatch(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
	Decode(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
	Info(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type idServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIDServiceClient(cc grpc.ClientConnInterface) IDServiceClient {
	return &idServiceClient{cc: cc}
}

func (c *idServiceClient) Next(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, NextFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) NextBatch(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, NextBatchFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) Decode(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DecodeFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idServiceClient) Info(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, InfoFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterIDServiceServer registers srv on s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDService_ServiceDesc, srv)
}

func _IDService_Next_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Next(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NextFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Next(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_NextBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).NextBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NextBatchFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).NextBatch(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_Decode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Decode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DecodeFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Decode(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_Info_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Info(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: InfoFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Info(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// IDService_ServiceDesc is the grpc.ServiceDesc for IDService.
var IDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Next", Handler: _IDService_Next_Handler},
		{MethodName: "NextBatch", Handler: _IDService_NextBatch_Handler},
		{MethodName: "Decode", Handler: _IDService_Decode_Handler},
		{MethodName: "Info", Handler: _IDService_Info_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idgen/v1/idgen.proto",
}
