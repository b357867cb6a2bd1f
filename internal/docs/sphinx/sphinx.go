// Package sphinx implements the docs.Project capability by shelling out to
// the Sphinx toolchain (sphinx-quickstart, sphinx-apidoc, sphinx-build).
package sphinx

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mattjoyce/herald/internal/docs"
	"github.com/mattjoyce/herald/internal/log"
)

// maxStderrBytes caps the amount of tool stderr carried into error messages.
const maxStderrBytes = 16 * 1024

// Project is a Sphinx documentation project rooted at outputRoot describing
// the packages under sourceRoot. The layout is the separated quickstart
// layout: configuration and generated descriptions under <output>/source,
// artifacts under <output>/build.
type Project struct {
	sourceRoot string
	outputRoot string
	logger     *slog.Logger
}

var _ docs.Project = (*Project)(nil)

// New creates a project handle. Nothing is probed until a lifecycle call.
func New(sourceRoot, outputRoot string) *Project {
	return &Project{
		sourceRoot: sourceRoot,
		outputRoot: outputRoot,
		logger:     log.WithComponent("sphinx"),
	}
}

// Factory is a docs.ProjectFactory producing Sphinx projects.
func Factory(sourceRoot, outputRoot string) docs.Project {
	return New(sourceRoot, outputRoot)
}

// Exists reports whether quickstart scaffolding is present: the project
// configuration file is the marker.
func (p *Project) Exists() bool {
	info, err := os.Stat(filepath.Join(p.SourceDir(), "conf.py"))
	return err == nil && !info.IsDir()
}

// Create scaffolds the project with sphinx-quickstart.
func (p *Project) Create(author, title, version string) error {
	if err := os.MkdirAll(p.outputRoot, 0o755); err != nil {
		return &docs.BuildToolError{Op: "create", Err: err}
	}

	return p.run("create", "sphinx-quickstart",
		"--quiet", "--sep",
		"-p", title,
		"-a", author,
		"-v", version,
		"--ext-autodoc",
		p.outputRoot,
	)
}

// GenerateFiles produces one description file per package module with
// sphinx-apidoc, overwriting stale descriptions.
func (p *Project) GenerateFiles() error {
	return p.run("generate", "sphinx-apidoc",
		"--force",
		"-o", p.SourceDir(),
		p.sourceRoot,
	)
}

// Build renders the final HTML artifacts with sphinx-build.
func (p *Project) Build() error {
	return p.run("build", "sphinx-build",
		"-b", "html",
		p.SourceDir(),
		filepath.Join(p.outputRoot, "build"),
	)
}

// SourceDir returns the directory holding conf.py and the generated
// description files.
func (p *Project) SourceDir() string {
	return filepath.Join(p.outputRoot, "source")
}

// SourceFiles lists the generated description files.
func (p *Project) SourceFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(p.SourceDir(), "*.rst"))
	if err != nil {
		return nil, &docs.BuildToolError{Op: "list", Err: err}
	}
	return files, nil
}

// run executes one tool invocation, capturing stderr into the returned
// error. The call blocks until the tool exits; dispatch is a low-frequency
// operator path, so no timeout is enforced.
func (p *Project) run(op, tool string, args ...string) error {
	cmd := exec.Command(tool, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	p.logger.Debug("running build tool", "tool", tool, "args", args)

	if err := cmd.Run(); err != nil {
		detail := truncate(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return &docs.BuildToolError{Op: op, Err: err}
	}
	return nil
}

func truncate(s string) string {
	if len(s) > maxStderrBytes {
		return s[:maxStderrBytes]
	}
	return s
}
