package docs

import "fmt"

// BuildToolError wraps a failure from the external documentation build tool.
// The lifecycle engine absorbs these at its boundary; they never propagate
// past a dispatch call.
type BuildToolError struct {
	Op  string
	Err error
}

func (e *BuildToolError) Error() string {
	return fmt.Sprintf("build tool %s: %v", e.Op, e.Err)
}

func (e *BuildToolError) Unwrap() error {
	return e.Err
}

// Project is the external documentation-project capability for one
// documentable unit. Implementations own the on-disk layout; the engine only
// observes existence and drives transitions.
type Project interface {
	// Exists reports whether build-tool scaffolding is present on disk.
	Exists() bool

	// Create scaffolds the project.
	Create(author, title, version string) error

	// GenerateFiles produces the source-description files.
	GenerateFiles() error

	// Build produces the final artifacts.
	Build() error

	// SourceDir returns the directory holding the project's source files
	// (configuration and generated descriptions).
	SourceDir() string

	// SourceFiles lists the produced description files. Used only for the
	// core tree's post-processing step.
	SourceFiles() ([]string, error)
}

// ProjectFactory constructs the Project bound to a (source root, output
// root) pair. The engine reconstructs the project fresh on every call; no
// project state is carried between invocations.
type ProjectFactory func(sourceRoot, outputRoot string) Project
