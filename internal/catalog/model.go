package catalog

import (
	"errors"
	"fmt"
)

// Experiment is one registered exercise: a script to display and download, the
// command that runs it, and the name of an optional sample input file.
type Experiment struct {
	Name             string
	Filename         string
	Code             string
	ExecutionCommand string
	SampleFile       string
}

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = errors.New("experiment not found")

// NotFoundError reports a lookup of an experiment name that is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("experiment not found: %q", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
