package cli

import (
	"context"

	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shell"
)

// Backend is where the CLI reads experiments from: the embedded registry or a
// remote catalog server.
type Backend interface {
	Names(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (catalog.Experiment, error)
	ExportScript(ctx context.Context, name string) (shell.Artifact, error)
	ExportSample(ctx context.Context, name string) (shell.Artifact, error)
}

// LocalBackend serves experiments from an in-process registry.
type LocalBackend struct {
	source shell.Source
}

func NewLocalBackend(source shell.Source) *LocalBackend {
	return &LocalBackend{source: source}
}

func (b *LocalBackend) Names(context.Context) ([]string, error) {
	return b.source.Names(), nil
}

func (b *LocalBackend) Get(_ context.Context, name string) (catalog.Experiment, error) {
	return b.source.Get(name)
}

func (b *LocalBackend) ExportScript(_ context.Context, name string) (shell.Artifact, error) {
	exp, err := b.source.Get(name)
	if err != nil {
		return shell.Artifact{}, err
	}
	return shell.ExportScript(exp), nil
}

func (b *LocalBackend) ExportSample(_ context.Context, name string) (shell.Artifact, error) {
	exp, err := b.source.Get(name)
	if err != nil {
		return shell.Artifact{}, err
	}
	return shell.ExportSample(exp)
}
