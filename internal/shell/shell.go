package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/nemanja-m/mrlabs/internal/catalog"
)

const (
	PageTitle     = "MapReduce Experiments"
	SelectorTitle = "Experiments"
	SelectorLabel = "Choose an Experiment"

	ScriptMIMEType = "application/bash"
	SampleMIMEType = "application/octet-stream"
)

// ErrNoSample means the experiment has no synthesized sample file. Callers hide the
// sample download instead of reporting a failure.
var ErrNoSample = errors.New("no sample available")

// Source is the read-only experiment lookup the shell presents.
type Source interface {
	Get(name string) (catalog.Experiment, error)
	Names() []string
}

// Artifact is a downloadable file.
type Artifact struct {
	Data     []byte
	Filename string
	MIMEType string
}

// Download describes a download action offered on a view.
type Download struct {
	Heading  string
	Label    string
	Filename string
}

// View is everything needed to display one selected experiment.
type View struct {
	Title            string
	Names            []string
	Selected         string
	Code             string
	ExecutionCommand string
	Script           Download
	Sample           *Download
}

type Shell struct {
	source Source
}

func New(source Source) *Shell {
	return &Shell{source: source}
}

func (s *Shell) Names() []string {
	return s.source.Names()
}

// Select builds the view for the named experiment.
func (s *Shell) Select(name string) (View, error) {
	exp, err := s.source.Get(name)
	if err != nil {
		return View{}, err
	}
	return ViewOf(exp, s.source.Names()), nil
}

// SelectDefault builds the view for the first registered experiment.
func (s *Shell) SelectDefault() (View, error) {
	names := s.source.Names()
	if len(names) == 0 {
		return View{}, fmt.Errorf("no experiments registered")
	}
	return s.Select(names[0])
}

// ViewOf builds the view for exp with names populating the selection control.
func ViewOf(exp catalog.Experiment, names []string) View {
	v := View{
		Title:            exp.Name,
		Names:            names,
		Selected:         exp.Name,
		Code:             exp.Code,
		ExecutionCommand: exp.ExecutionCommand,
		Script: Download{
			Heading:  "Download " + exp.Filename,
			Label:    "Download " + exp.Filename,
			Filename: exp.Filename,
		},
	}
	if HasSample(exp) {
		v.Sample = &Download{
			Heading:  "Sample File: " + exp.SampleFile,
			Label:    "Download " + exp.SampleFile,
			Filename: exp.SampleFile,
		}
	}
	return v
}

// HasSample reports whether ExportSample would produce an artifact for exp.
func HasSample(exp catalog.Experiment) bool {
	return exp.SampleFile != "" && catalog.ParseSampleKind(exp.SampleFile) != catalog.SampleNone
}

// ExportScript returns the experiment's script exactly as displayed.
func ExportScript(exp catalog.Experiment) Artifact {
	return Artifact{
		Data:     []byte(exp.Code),
		Filename: exp.Filename,
		MIMEType: ScriptMIMEType,
	}
}

// ExportSample returns the synthesized sample file named by exp.SampleFile, or
// ErrNoSample when that name has no known content.
func ExportSample(exp catalog.Experiment) (Artifact, error) {
	if exp.SampleFile == "" {
		return Artifact{}, ErrNoSample
	}
	data, ok := catalog.SampleContent(catalog.ParseSampleKind(exp.SampleFile))
	if !ok {
		return Artifact{}, ErrNoSample
	}
	return Artifact{
		Data:     data,
		Filename: exp.SampleFile,
		MIMEType: SampleMIMEType,
	}, nil
}

// ExportAll returns the script artifact followed by the sample artifact when one
// is available.
func ExportAll(exp catalog.Experiment) []Artifact {
	artifacts := []Artifact{ExportScript(exp)}
	if sample, err := ExportSample(exp); err == nil {
		artifacts = append(artifacts, sample)
	}
	return artifacts
}

// Render writes a plain-text rendition of v. Code and command are written verbatim.
func Render(w io.Writer, v View) error {
	ew := &errWriter{w: w}

	ew.printf("# %s\n\n", v.Title)
	ew.printf("## Code\n\n```bash\n%s\n```\n\n", v.Code)
	ew.printf("## Execution Command\n\n```bash\n%s\n```\n\n", v.ExecutionCommand)
	ew.printf("## %s\n\n", v.Script.Heading)
	if v.Sample != nil {
		ew.printf("## %s\n\n", v.Sample.Heading)
	}

	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
