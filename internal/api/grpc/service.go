package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shared/logging"
	"github.com/nemanja-m/mrlabs/internal/shell"
)

type CatalogService struct {
	source shell.Source
	logger logging.Logger
}

func NewCatalogService(source shell.Source, logger logging.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		logger: logger,
	}
}

func (s *CatalogService) ListExperiments(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	names := s.source.Names()
	values := make([]*structpb.Value, 0, len(names))
	for _, name := range names {
		values = append(values, structpb.NewStringValue(name))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *CatalogService) GetExperiment(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	exp, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	return experimentToStruct(exp), nil
}

func (s *CatalogService) ExportScript(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	exp, err := s.lookup(req)
	if err != nil {
		return nil, err
	}
	return s.sendArtifact(ctx, shell.ExportScript(exp))
}

func (s *CatalogService) ExportSample(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	exp, err := s.lookup(req)
	if err != nil {
		return nil, err
	}

	artifact, err := shell.ExportSample(exp)
	if errors.Is(err, shell.ErrNoSample) {
		return nil, status.Errorf(codes.FailedPrecondition, "%s for %q", shell.ErrNoSample, exp.Name)
	}
	if err != nil {
		s.logger.Error("Failed to export sample", "name", exp.Name, "error", err)
		return nil, status.Error(codes.Internal, "failed to export sample")
	}
	return s.sendArtifact(ctx, artifact)
}

func (s *CatalogService) lookup(req *wrapperspb.StringValue) (catalog.Experiment, error) {
	name := req.GetValue()
	if name == "" {
		return catalog.Experiment{}, status.Error(codes.InvalidArgument, "experiment name required")
	}

	exp, err := s.source.Get(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return catalog.Experiment{}, status.Error(codes.NotFound, err.Error())
		}
		s.logger.Error("Failed to get experiment", "name", name, "error", err)
		return catalog.Experiment{}, status.Error(codes.Internal, "failed to get experiment")
	}
	return exp, nil
}

func (s *CatalogService) sendArtifact(ctx context.Context, artifact shell.Artifact) (*wrapperspb.BytesValue, error) {
	header := metadata.Pairs(
		FilenameHeader, artifact.Filename,
		MIMETypeHeader, artifact.MIMEType,
	)
	if err := grpc.SetHeader(ctx, header); err != nil {
		s.logger.Error("Failed to set artifact headers", "filename", artifact.Filename, "error", err)
		return nil, status.Error(codes.Internal, "failed to set artifact headers")
	}
	return wrapperspb.Bytes(artifact.Data), nil
}

func experimentToStruct(exp catalog.Experiment) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"name":              structpb.NewStringValue(exp.Name),
			"filename":          structpb.NewStringValue(exp.Filename),
			"code":              structpb.NewStringValue(exp.Code),
			"execution_command": structpb.NewStringValue(exp.ExecutionCommand),
			"sample_file":       structpb.NewStringValue(exp.SampleFile),
		},
	}
}

func structToExperiment(st *structpb.Struct) catalog.Experiment {
	fields := st.GetFields()
	return catalog.Experiment{
		Name:             fields["name"].GetStringValue(),
		Filename:         fields["filename"].GetStringValue(),
		Code:             fields["code"].GetStringValue(),
		ExecutionCommand: fields["execution_command"].GetStringValue(),
		SampleFile:       fields["sample_file"].GetStringValue(),
	}
}
