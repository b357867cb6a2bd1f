package docs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/report"
)

// coreAuthor and coreTitle are the metadata used when scaffolding the core
// tree's own documentation project.
const (
	coreAuthor = "Herald Development Team"
	coreTitle  = "Herald"
)

// unknownAuthor is used for custom packages and plugins, whose authors are
// not known to the core.
const unknownAuthor = "Unknown"

// Engine drives the create/generate/build lifecycle for documentable units.
// State is observed from disk on every call; nothing is carried in memory
// between invocations. All failures are reported through the sink and
// absorbed - a docs command never crashes the host.
type Engine struct {
	resolver *Resolver
	factory  ProjectFactory
	sink     report.Sink
	version  string
	logger   *slog.Logger
}

// NewEngine creates a lifecycle engine. version is stamped into created
// projects and into the core tree's configuration on build.
func NewEngine(resolver *Resolver, factory ProjectFactory, sink report.Sink, version string) *Engine {
	return &Engine{
		resolver: resolver,
		factory:  factory,
		sink:     sink,
		version:  version,
		logger:   log.WithComponent("docs"),
	}
}

// HandleDocs routes a docs sub-command invocation. Unrecognized actions
// report usage and perform no lifecycle call.
func (e *Engine) HandleDocs(action, pkg string) {
	switch action {
	case "create":
		e.Create(pkg)
	case "generate":
		e.Generate(pkg)
	case "build":
		e.Build(pkg)
	default:
		e.sink.Emit(fmt.Sprintf(
			"Invalid action: %q. Valid actions are: create, generate and build.", action))
	}
}

// Create scaffolds the documentation project for pkg. Creating an existing
// project is a reported no-op.
func (e *Engine) Create(pkg string) {
	unit, ok := e.resolve(pkg)
	if !ok {
		return
	}

	if unit.project.Exists() {
		e.sink.Emit(fmt.Sprintf("Documentation project already exists for %s.", unit.label))
		return
	}

	author, title := unknownAuthor, pkg
	if unit.category == CategoryCore {
		author, title = coreAuthor, coreTitle
	}

	if err := unit.project.Create(author, title, e.version); err != nil {
		e.logger.Error("create failed", "package", pkg, "error", err)
		e.sink.Emit(fmt.Sprintf("An error occurred while creating documentation project for %s.", unit.label))
		return
	}

	e.sink.Emit(fmt.Sprintf("Documentation project has been created for %s.", unit.label))
}

// Generate produces the source-description files for pkg's project. The
// core tree additionally scrubs its module-path prefix from every produced
// file. Generating an absent project is a reported no-op.
func (e *Engine) Generate(pkg string) {
	unit, ok := e.resolve(pkg)
	if !ok {
		return
	}

	if !unit.project.Exists() {
		e.sink.Emit(fmt.Sprintf("Documentation project does not exist for %s.", unit.label))
		return
	}

	if err := unit.project.GenerateFiles(); err != nil {
		e.logger.Error("generate failed", "package", pkg, "error", err)
		e.sink.Emit(fmt.Sprintf("An error occurred while generating project files for %s.", unit.label))
		return
	}

	if unit.category == CategoryCore {
		if err := e.scrubCorePrefix(unit.project); err != nil {
			e.logger.Error("post-processing failed", "package", pkg, "error", err)
			e.sink.Emit(fmt.Sprintf("An error occurred while generating project files for %s.", unit.label))
			return
		}
	}

	e.sink.Emit(fmt.Sprintf("Project files have been generated for %s.", unit.label))
}

// Build produces the final artifacts for pkg's project. The core tree
// additionally rewrites the version/release lines of the project
// configuration first. Building an absent project is a reported no-op.
func (e *Engine) Build(pkg string) {
	unit, ok := e.resolve(pkg)
	if !ok {
		return
	}

	if !unit.project.Exists() {
		e.sink.Emit(fmt.Sprintf("Documentation project does not exist for %s.", unit.label))
		return
	}

	if unit.category == CategoryCore {
		if err := e.stampCoreVersion(unit.project); err != nil {
			e.logger.Error("version stamp failed", "package", pkg, "error", err)
			e.sink.Emit(fmt.Sprintf("An error occurred while building project files for %s.", unit.label))
			return
		}
	}

	if err := unit.project.Build(); err != nil {
		e.logger.Error("build failed", "package", pkg, "error", err)
		e.sink.Emit(fmt.Sprintf("An error occurred while building project files for %s.", unit.label))
		return
	}

	e.sink.Emit(fmt.Sprintf("Project files have been built for %s.", unit.label))
}

// unit is a documentable unit resolved for one call. It is rebuilt from
// (category, package name) on every invocation.
type unit struct {
	category Category
	label    string
	project  Project
}

// resolve classifies pkg and constructs its project. A rejected package
// reports the three valid categories and short-circuits the lifecycle.
func (e *Engine) resolve(pkg string) (unit, bool) {
	category, ok := e.resolver.Classify(pkg)
	if !ok {
		e.sink.Emit(fmt.Sprintf("%q is not %s, a custom package or a plugin.", pkg, CoreName))
		return unit{}, false
	}

	sourceRoot, outputRoot := e.resolver.Paths(category, pkg)

	label := CoreName
	switch category {
	case CategoryCustom:
		label = fmt.Sprintf("custom package %q", pkg)
	case CategoryPlugin:
		label = fmt.Sprintf("plugin %q", pkg)
	}

	return unit{
		category: category,
		label:    label,
		project:  e.factory(sourceRoot, outputRoot),
	}, true
}

// scrubCorePrefix strips the core module-path prefix from every produced
// description file so documented names match import paths.
func (e *Engine) scrubCorePrefix(project Project) error {
	files, err := project.SourceFiles()
	if err != nil {
		return err
	}

	prefix := CoreName + "."
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		cleaned := strings.ReplaceAll(string(data), prefix, "")
		if cleaned == string(data) {
			continue
		}
		if err := os.WriteFile(path, []byte(cleaned), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// stampCoreVersion rewrites the version and release lines of the core
// project's configuration file to the running core version.
func (e *Engine) stampCoreVersion(project Project) error {
	confPath := filepath.Join(project.SourceDir(), "conf.py")

	data, err := os.ReadFile(confPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", confPath, err)
	}

	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "version") || strings.HasPrefix(line, "release") {
			key := strings.Fields(line)[0]
			lines[i] = fmt.Sprintf("%s = '%s'", key, e.version)
		}
	}

	if err := os.WriteFile(confPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", confPath, err)
	}
	return nil
}
