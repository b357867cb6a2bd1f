package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattjoyce/herald/internal/credits"
	"github.com/mattjoyce/herald/internal/report"
)

// loadPlugin handles "load <plugin>".
func (c *Core) loadPlugin(args []string) {
	if len(args) < 1 {
		c.sink.Emit("Usage: herald load <plugin>")
		return
	}
	c.plugins.Load(args[0])
}

// unloadPlugin handles "unload <plugin>".
func (c *Core) unloadPlugin(args []string) {
	if len(args) < 1 {
		c.sink.Emit("Usage: herald unload <plugin>")
		return
	}
	c.plugins.Unload(args[0])
}

// reloadPlugin handles "reload <plugin>".
func (c *Core) reloadPlugin(args []string) {
	if len(args) < 1 {
		c.sink.Emit("Usage: herald reload <plugin>")
		return
	}
	c.plugins.Reload(args[0])
}

// delayExecution handles "delay <delay> <command> [arguments]": the command
// tail is re-issued to the host server after the delay.
func (c *Core) delayExecution(args []string) {
	if len(args) < 2 {
		c.sink.Emit("Usage: herald delay <delay> <command> [arguments]")
		return
	}

	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil || seconds < 0 {
		c.sink.Emit(fmt.Sprintf("Invalid delay: %q.", args[0]))
		return
	}

	if c.deps.Delayer == nil || c.deps.Server == nil {
		c.sink.Emit("Delayed execution is not available.")
		return
	}

	line := strings.Join(args[1:], " ")
	c.deps.Delayer.Schedule(time.Duration(seconds*float64(time.Second)), func() {
		c.deps.Server.ServerCommand(line)
	})
}

// dumpData handles "dump <dump_type> <filename>".
func (c *Core) dumpData(args []string) {
	if len(args) < 2 {
		c.sink.Emit("Usage: herald dump <dump_type> <filename>")
		return
	}

	dumpType, filename := args[0], args[1]
	dump, ok := c.deps.Dumps[dumpType]
	if !ok {
		var out strings.Builder
		fmt.Fprintf(&out, "Invalid dump_type %q. The valid types are:", dumpType)

		types := make([]string, 0, len(c.deps.Dumps))
		for name := range c.deps.Dumps {
			types = append(types, name)
		}
		sort.Strings(types)
		for _, name := range types {
			out.WriteString("\n\t" + name)
		}
		c.sink.Emit(out.String())
		return
	}

	if err := dump(filename); err != nil {
		c.logger.Error("dump failed", "dump_type", dumpType, "error", err)
		c.sink.Emit(fmt.Sprintf("An error occurred while dumping %s.", dumpType))
		return
	}
	c.sink.Emit(fmt.Sprintf("Data has been dumped to %q.", filename))
}

// printPlugins handles "list": all currently loaded plugins with their
// public information.
func (c *Core) printPlugins(args []string) {
	c.sink.Emit(report.Listing(c.registry.Prefix(), "Loaded plugins:", c.plugins.Entries()))
}

// printVersion handles "version".
func (c *Core) printVersion(args []string) {
	c.sink.Emit(report.Version(Version))
}

// printCredits handles "credits".
func (c *Core) printCredits(args []string) {
	groups, err := credits.Load(c.deps.CreditsPath)
	if err != nil {
		c.logger.Error("failed to load credits", "path", c.deps.CreditsPath, "error", err)
		c.sink.Emit("Unable to load credits.")
		return
	}
	c.sink.Emit(report.Credits(c.registry.Prefix(), "Credits:", groups))
}

// printHelp handles "help".
func (c *Core) printHelp(args []string) {
	c.sink.Emit(report.Help(
		c.registry.Prefix(), c.registry.Description(),
		c.registry.Name(), c.registry.Usages(),
	))
}

// docsHandler handles "docs <action> <package>".
func (c *Core) docsHandler(args []string) {
	if len(args) < 2 {
		c.sink.Emit("Usage: herald docs <action> <package>")
		return
	}
	c.engine.HandleDocs(args[0], args[1])
}
