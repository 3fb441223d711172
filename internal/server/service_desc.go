package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "kiosk.v1.KioskService"

// Full method names.
const (
	MethodProcessWake     = "/" + ServiceName + "/ProcessWake"
	MethodProcessBible    = "/" + ServiceName + "/ProcessBible"
	MethodLookupVerse     = "/" + ServiceName + "/LookupVerse"
	MethodParseTranscript = "/" + ServiceName + "/ParseTranscript"
	MethodResetStrikes    = "/" + ServiceName + "/ResetStrikes"
	MethodInfo            = "/" + ServiceName + "/Info"
	MethodSynthesize      = "/" + ServiceName + "/Synthesize"
)

// KioskServer is the server API for the kiosk service. Requests and replies
// are protobuf Structs whose fields mirror the JSON shapes in codec.go.
type KioskServer interface {
	ProcessWake(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProcessBible(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LookupVerse(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ParseTranscript(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResetStrikes(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Info(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Synthesize(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// KioskServiceDesc describes the kiosk service for grpc.Server registration.
var KioskServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KioskServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ProcessWake", Handler: structHandler(MethodProcessWake, KioskServer.ProcessWake)},
		{MethodName: "ProcessBible", Handler: structHandler(MethodProcessBible, KioskServer.ProcessBible)},
		{MethodName: "LookupVerse", Handler: structHandler(MethodLookupVerse, KioskServer.LookupVerse)},
		{MethodName: "ParseTranscript", Handler: structHandler(MethodParseTranscript, KioskServer.ParseTranscript)},
		{MethodName: "ResetStrikes", Handler: emptyHandler(MethodResetStrikes, KioskServer.ResetStrikes)},
		{MethodName: "Info", Handler: emptyHandler(MethodInfo, KioskServer.Info)},
		{MethodName: "Synthesize", Handler: structHandler(MethodSynthesize, KioskServer.Synthesize)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kiosk/v1/kiosk.proto",
}

// RegisterKioskServer registers srv on s.
func RegisterKioskServer(s grpc.ServiceRegistrar, srv KioskServer) {
	s.RegisterService(&KioskServiceDesc, srv)
}

func structHandler(fullMethod string, call func(KioskServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KioskServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KioskServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func emptyHandler(fullMethod string, call func(KioskServer, context.Context, *emptypb.Empty) (*structpb.Struct, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KioskServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KioskServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}
