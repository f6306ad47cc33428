package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shared/config"
	"github.com/nemanja-m/mrlabs/internal/shell"
)

type CatalogClient struct {
	conn       *grpc.ClientConn
	serverAddr string
}

func NewCatalogClient(serverAddr string, cfg config.ClientGRPCConfig, opts ...grpc.DialOption) (*CatalogClient, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(
			keepalive.ClientParameters{
				Time:                cfg.KeepaliveTime,
				Timeout:             cfg.KeepaliveTimeout,
				PermitWithoutStream: true,
			},
		),
	}, opts...)

	conn, err := grpc.NewClient(serverAddr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog server: %w", err)
	}

	return &CatalogClient{
		conn:       conn,
		serverAddr: serverAddr,
	}, nil
}

func (c *CatalogClient) Names(ctx context.Context) ([]string, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, ListExperimentsMethod, &emptypb.Empty{}, out); err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}

	names := make([]string, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		names = append(names, v.GetStringValue())
	}
	return names, nil
}

func (c *CatalogClient) Get(ctx context.Context, name string) (catalog.Experiment, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, GetExperimentMethod, wrapperspb.String(name), out); err != nil {
		return catalog.Experiment{}, fromStatus(name, err)
	}
	return structToExperiment(out), nil
}

func (c *CatalogClient) ExportScript(ctx context.Context, name string) (shell.Artifact, error) {
	return c.export(ctx, ExportScriptMethod, name)
}

// ExportSample returns shell.ErrNoSample when the experiment offers no sample file.
func (c *CatalogClient) ExportSample(ctx context.Context, name string) (shell.Artifact, error) {
	return c.export(ctx, ExportSampleMethod, name)
}

func (c *CatalogClient) export(ctx context.Context, method, name string) (shell.Artifact, error) {
	var header metadata.MD
	out := new(wrapperspb.BytesValue)
	if err := c.conn.Invoke(ctx, method, wrapperspb.String(name), out, grpc.Header(&header)); err != nil {
		return shell.Artifact{}, fromStatus(name, err)
	}

	return shell.Artifact{
		Data:     out.GetValue(),
		Filename: firstValue(header, FilenameHeader),
		MIMEType: firstValue(header, MIMETypeHeader),
	}, nil
}

func (c *CatalogClient) Close() error {
	return c.conn.Close()
}

// fromStatus maps gRPC status codes back to catalog and shell errors.
func fromStatus(name string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return &catalog.NotFoundError{Name: name}
	case codes.FailedPrecondition:
		return shell.ErrNoSample
	}
	return fmt.Errorf("catalog server call failed: %w", err)
}

func firstValue(md metadata.MD, key string) string {
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
