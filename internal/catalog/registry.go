package catalog

import (
	"embed"
	"io/fs"
)

//go:embed content
var contentFS embed.FS

var defaultRegistry = mustLoadEmbedded()

// Registry is an ordered, read-only set of experiments. It is never mutated after
// Load returns, so concurrent readers need no locking.
type Registry struct {
	names       []string
	experiments map[string]Experiment
}

// Default returns the registry built from the content embedded in the binary.
func Default() *Registry {
	return defaultRegistry
}

func mustLoadEmbedded() *Registry {
	sub, err := fs.Sub(contentFS, "content")
	if err != nil {
		panic("catalog: " + err.Error())
	}
	r, err := Load(sub)
	if err != nil {
		panic("catalog: embedded content is invalid: " + err.Error())
	}
	return r
}

// Get returns the experiment registered under name.
func (r *Registry) Get(name string) (Experiment, error) {
	exp, exists := r.experiments[name]
	if !exists {
		return Experiment{}, &NotFoundError{Name: name}
	}
	return exp, nil
}

// Names returns experiment names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

func (r *Registry) All() []Experiment {
	all := make([]Experiment, 0, len(r.names))
	for _, name := range r.names {
		all = append(all, r.experiments[name])
	}
	return all
}

func (r *Registry) Len() int {
	return len(r.names)
}
