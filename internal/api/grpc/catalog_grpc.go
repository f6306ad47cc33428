package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is described with protobuf well-known types, so it needs no
// generated message code.
const (
	CatalogServiceName = "mrlabs.v1.CatalogService"

	ListExperimentsMethod = "/" + CatalogServiceName + "/ListExperiments"
	GetExperimentMethod   = "/" + CatalogServiceName + "/GetExperiment"
	ExportScriptMethod    = "/" + CatalogServiceName + "/ExportScript"
	ExportSampleMethod    = "/" + CatalogServiceName + "/ExportSample"

	FilenameHeader = "x-artifact-filename"
	MIMETypeHeader = "x-artifact-mime-type"
	RequestIDKey   = "x-request-id"
)

// CatalogServiceServer is the server API for the experiment catalog.
type CatalogServiceServer interface {
	ListExperiments(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetExperiment(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ExportScript(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	ExportSample(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListExperiments", Handler: listExperimentsHandler},
		{MethodName: "GetExperiment", Handler: getExperimentHandler},
		{MethodName: "ExportScript", Handler: exportScriptHandler},
		{MethodName: "ExportSample", Handler: exportSampleHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mrlabs/v1/catalog.proto",
}

func listExperimentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListExperiments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListExperimentsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ListExperiments(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getExperimentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetExperiment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetExperimentMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetExperiment(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func exportScriptHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ExportScript(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ExportScriptMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ExportScript(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func exportSampleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ExportSample(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ExportSampleMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ExportSample(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
