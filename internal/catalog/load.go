package catalog

import (
	"fmt"
	"io/fs"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const (
	ManifestFile  = "experiments.yaml"
	scriptPattern = "scripts/**/*.sh"
)

type manifest struct {
	Experiments []manifestEntry `yaml:"experiments"`
}

type manifestEntry struct {
	Name             string `yaml:"name"`
	Filename         string `yaml:"filename"`
	Script           string `yaml:"script"`
	ExecutionCommand string `yaml:"execution_command"`
	SampleFile       string `yaml:"sample_file"`
}

// Load builds a registry from the manifest and script files in fsys. Every field of
// every experiment must be non-empty, names must be unique and every script file
// under scripts/ must belong to exactly one experiment.
func Load(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Experiments) == 0 {
		return nil, fmt.Errorf("manifest %s lists no experiments", ManifestFile)
	}

	r := &Registry{
		names:       make([]string, 0, len(m.Experiments)),
		experiments: make(map[string]Experiment, len(m.Experiments)),
	}
	scripts := make(map[string]string, len(m.Experiments)) // script path -> experiment

	for i, entry := range m.Experiments {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("experiment #%d: %w", i+1, err)
		}
		if _, exists := r.experiments[entry.Name]; exists {
			return nil, fmt.Errorf("duplicate experiment name: %q", entry.Name)
		}
		if owner, taken := scripts[entry.Script]; taken {
			return nil, fmt.Errorf("script %s used by both %q and %q", entry.Script, owner, entry.Name)
		}

		code, err := fs.ReadFile(fsys, entry.Script)
		if err != nil {
			return nil, fmt.Errorf("experiment %q: failed to read script: %w", entry.Name, err)
		}
		if len(code) == 0 {
			return nil, fmt.Errorf("experiment %q: script %s is empty", entry.Name, entry.Script)
		}

		scripts[entry.Script] = entry.Name
		r.names = append(r.names, entry.Name)
		r.experiments[entry.Name] = Experiment{
			Name:             entry.Name,
			Filename:         entry.Filename,
			Code:             string(code),
			ExecutionCommand: entry.ExecutionCommand,
			SampleFile:       entry.SampleFile,
		}
	}

	found, err := doublestar.Glob(fsys, scriptPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	for _, path := range found {
		if _, referenced := scripts[path]; !referenced {
			return nil, fmt.Errorf("script %s is not referenced by any experiment", path)
		}
	}

	return r, nil
}

func (e manifestEntry) validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("name is required")
	case e.Filename == "":
		return fmt.Errorf("%q: filename is required", e.Name)
	case e.Script == "":
		return fmt.Errorf("%q: script is required", e.Name)
	case e.ExecutionCommand == "":
		return fmt.Errorf("%q: execution_command is required", e.Name)
	case e.SampleFile == "":
		return fmt.Errorf("%q: sample_file is required", e.Name)
	}
	return nil
}
