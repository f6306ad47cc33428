package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	grpcapi "github.com/nemanja-m/mrlabs/internal/api/grpc"
	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shared/config"
	"github.com/nemanja-m/mrlabs/internal/shared/logging"
	"github.com/nemanja-m/mrlabs/internal/shell"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const usage = `mrlabs - browse and export MapReduce exercise scripts.

Usage:
  mrlabs [options] <command> [arguments]

Commands:
  list [-match <glob>]        List experiment names in display order.
  show <name>                 Print an experiment's code and execution command.
  export [-dir <path>] <name> Write the experiment's script and sample file.

Options:
`

// Run parses args and executes one command against either the embedded catalog or,
// when a server address is configured, a remote catalog server.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("mrlabs", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprint(stderr, usage)
		flagSet.PrintDefaults()
	}

	configPath := flagSet.String("config", "", "Path to the client config file.")
	serverAddr := flagSet.String("server", "", "Catalog server gRPC address. Empty uses the embedded catalog.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return &ExitError{Code: 2, Message: "command required"}
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	if *serverAddr != "" {
		cfg.Server.Addr = *serverAddr
	}

	logger, err := logging.FromConfig(stderr, cfg.Logging)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	var backend Backend
	if cfg.Server.Addr != "" {
		client, err := grpcapi.NewCatalogClient(cfg.Server.Addr, cfg.Server.GRPC)
		if err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		defer client.Close()

		if cfg.Server.GRPC.CallTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Server.GRPC.CallTimeout)
			defer cancel()
		}
		logger.Debug("Using remote catalog", "addr", cfg.Server.Addr)
		backend = client
	} else {
		logger.Debug("Using embedded catalog", "experiments", catalog.Default().Len())
		backend = NewLocalBackend(catalog.Default())
	}

	return dispatch(ctx, backend, flagSet.Args(), stdout, stderr)
}

func dispatch(ctx context.Context, backend Backend, args []string, stdout, stderr io.Writer) error {
	command, rest := args[0], args[1:]
	switch command {
	case "list":
		return runList(ctx, backend, rest, stdout, stderr)
	case "show":
		return runShow(ctx, backend, rest, stdout)
	case "export":
		return runExport(ctx, backend, rest, stdout, stderr)
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command: %q", command)}
	}
}

func runList(ctx context.Context, backend Backend, args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("list", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	match := flagSet.String("match", "", "Only list names matching this glob pattern.")
	if err := flagSet.Parse(args); err != nil {
		return parseError(err)
	}
	if *match != "" && !doublestar.ValidatePattern(*match) {
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid pattern: %q", *match)}
	}

	names, err := backend.Names(ctx)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	for _, name := range names {
		if *match != "" {
			ok, err := doublestar.Match(*match, name)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			if !ok {
				continue
			}
		}
		fmt.Fprintln(stdout, name)
	}
	return nil
}

func runShow(ctx context.Context, backend Backend, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return &ExitError{Code: 2, Message: "usage: mrlabs show <name>"}
	}

	exp, err := backend.Get(ctx, args[0])
	if err != nil {
		return lookupError(ctx, backend, err)
	}
	names, err := backend.Names(ctx)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	if err := shell.Render(stdout, shell.ViewOf(exp, names)); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	return nil
}

func runExport(ctx context.Context, backend Backend, args []string, stdout, stderr io.Writer) error {
	flagSet := flag.NewFlagSet("export", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	dir := flagSet.String("dir", ".", "Directory to write the exported files into.")
	if err := flagSet.Parse(args); err != nil {
		return parseError(err)
	}
	if flagSet.NArg() != 1 {
		return &ExitError{Code: 2, Message: "usage: mrlabs export [-dir <path>] <name>"}
	}
	name := flagSet.Arg(0)

	script, err := backend.ExportScript(ctx, name)
	if err != nil {
		return lookupError(ctx, backend, err)
	}
	artifacts := []shell.Artifact{script}

	sample, err := backend.ExportSample(ctx, name)
	switch {
	case err == nil:
		artifacts = append(artifacts, sample)
	case errors.Is(err, shell.ErrNoSample):
	default:
		return lookupError(ctx, backend, err)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return &ExitError{Code: 1, Message: fmt.Sprintf("failed to create %s: %v", *dir, err)}
	}
	for _, artifact := range artifacts {
		path, err := writeArtifact(*dir, artifact)
		if err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		fmt.Fprintln(stdout, path)
	}
	return nil
}

func writeArtifact(dir string, artifact shell.Artifact) (string, error) {
	filename := filepath.Base(artifact.Filename)
	if filename == "." || filename == string(filepath.Separator) || strings.TrimSpace(filename) == "" {
		return "", fmt.Errorf("invalid artifact filename: %q", artifact.Filename)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func lookupError(ctx context.Context, backend Backend, err error) error {
	var nf *catalog.NotFoundError
	if errors.As(err, &nf) {
		msg := fmt.Sprintf("unknown experiment: %q", nf.Name)
		if names, listErr := backend.Names(ctx); listErr == nil {
			msg += fmt.Sprintf(". Available experiments: %s", strings.Join(names, ", "))
		}
		return &ExitError{Code: 1, Message: msg}
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return &ExitError{Code: 2, Message: err.Error()}
}
