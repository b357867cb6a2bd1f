// Package core assembles the herald top-level command: the registry with
// all built-in sub-commands, the dispatcher, and the collaborators the
// handlers delegate to.
//
// Core is constructed once at startup and passed explicitly; there is no
// process-wide singleton. The registry is embedded by composition and
// exposed through delegated methods, so other subsystems can register their
// own sub-commands without inheriting anything.
package core

import (
	"log/slog"
	"time"

	"github.com/mattjoyce/herald/internal/command"
	"github.com/mattjoyce/herald/internal/docs"
	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/plugin"
	"github.com/mattjoyce/herald/internal/report"
)

// Version is the herald core version surfaced by the version sub-command
// and stamped into documentation projects.
const Version = "1.2.0"

// ServerCommander issues a raw command line to the host server. Used by the
// delayed-execution sub-command to re-enter the host's command path.
type ServerCommander interface {
	ServerCommand(line string)
}

// Delayer schedules a fire-once callback. No cancellation handle is
// exposed.
type Delayer interface {
	Schedule(delay time.Duration, fn func())
}

// DumpFunc writes one diagnostic dump to the named file.
type DumpFunc func(filename string) error

// Deps are the collaborators handlers delegate to. Sink is required;
// everything else degrades to a reported "not available" when nil.
type Deps struct {
	Sink           report.Sink
	Loader         plugin.Loader
	PluginsDir     string
	Roots          docs.Roots
	ProjectFactory docs.ProjectFactory
	CreditsPath    string
	Delayer        Delayer
	Server         ServerCommander
	Audit          command.Auditor
	Dumps          map[string]DumpFunc
	Auth           *command.Registry
}

// Core is the top-level command manager.
type Core struct {
	registry   *command.Registry
	dispatcher *command.Dispatcher
	sink       report.Sink
	plugins    *plugin.Manager
	engine     *docs.Engine
	deps       Deps
	logger     *slog.Logger
}

// New builds the core and registers every built-in sub-command.
func New(deps Deps) *Core {
	registry := command.NewRegistry("herald", "herald base command.")

	c := &Core{
		registry:   registry,
		dispatcher: command.NewDispatcher(registry, deps.Sink, deps.Audit),
		sink:       deps.Sink,
		plugins:    plugin.NewManager(deps.PluginsDir, deps.Loader, deps.Sink),
		engine:     docs.NewEngine(docs.NewResolver(deps.Roots), deps.ProjectFactory, deps.Sink, Version),
		deps:       deps,
		logger:     log.WithComponent("core"),
	}

	registry.Register("load", c.loadPlugin, "<plugin>")
	registry.Register("unload", c.unloadPlugin, "<plugin>")
	registry.Register("reload", c.reloadPlugin, "<plugin>")

	registry.Register("delay", c.delayExecution, "<delay>", "<command>", "[arguments]")
	registry.Register("dump", c.dumpData, "<dump_type>", "<filename>")

	registry.Register("list", c.printPlugins)
	registry.Register("version", c.printVersion)
	registry.Register("credits", c.printCredits)
	registry.Register("help", c.printHelp)

	registry.Register("docs", c.docsHandler, "<action>", "<package>")

	if deps.Auth != nil {
		registry.RegisterSub("auth", deps.Auth)
	}

	return c
}

// Registry exposes the underlying registry so other subsystems can
// register or override sub-commands.
func (c *Core) Registry() *command.Registry {
	return c.registry
}

// Commands returns the sorted names of all registered sub-commands.
func (c *Core) Commands() []string {
	return c.registry.Names()
}

// Plugins exposes the plugin manager.
func (c *Core) Plugins() *plugin.Manager {
	return c.plugins
}

// Dispatch routes one raw console line.
func (c *Core) Dispatch(line string) {
	c.dispatcher.Dispatch(line)
}
