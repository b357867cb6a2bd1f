package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattjoyce/herald/internal/api"
	"github.com/mattjoyce/herald/internal/auth"
	"github.com/mattjoyce/herald/internal/config"
	"github.com/mattjoyce/herald/internal/core"
	"github.com/mattjoyce/herald/internal/docs"
	"github.com/mattjoyce/herald/internal/docs/sphinx"
	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/report"
	"github.com/mattjoyce/herald/internal/scheduler"
	"github.com/mattjoyce/herald/internal/storage"
)

const defaultConfigPath = "config.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		os.Exit(runServe(args))
	case "check":
		os.Exit(runCheck(args))
	case "lock":
		os.Exit(runLock(args))
	case "version":
		fmt.Printf("herald version %s\n", core.Version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`herald - Embeddable console command core for game servers

Usage:
  herald <command> [flags]

Commands:
  serve     Run the console in the foreground (stdin + HTTP bridge)
  check     Validate configuration syntax and integrity
  lock      Authorize current config state (update integrity hashes)
  version   Show version information
  help      Show this help message
`)
}

// loopback re-issues delayed command lines through the console itself.
// Standalone herald has no host game server to hand them back to.
type loopback struct {
	core *core.Core
}

func (l *loopback) ServerCommand(line string) {
	if l.core != nil {
		l.core.Dispatch(line)
	}
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log.Setup(cfg.LogLevel)
	logger := log.WithComponent("main")
	logger.Info("herald starting", "version", core.Version, "config", *configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var audit *storage.AuditStore
	if cfg.Audit.Path != "" {
		db, err := storage.OpenSQLite(ctx, cfg.Audit.Path)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.Audit.Path, "error", err)
			return 1
		}
		defer db.Close()
		audit = storage.NewAuditStore(db)
		logger.Info("audit trail opened", "path", cfg.Audit.Path)
	}

	authStore, err := auth.NewStore(filepath.Join(cfg.Paths.DataDir, "auth.yaml"))
	if err != nil {
		logger.Error("failed to open auth store", "error", err)
		return 1
	}

	// Console output goes to stdout; the recorder retains it for the HTTP
	// bridge to hand back per request.
	stdout := report.SinkFunc(func(message string) { fmt.Println(message) })
	recorder := report.NewRecorder(stdout)

	sched := scheduler.New(cfg.Scheduler.TickInterval)
	sched.Start(ctx)
	defer sched.Stop()

	server := &loopback{}

	deps := core.Deps{
		Sink:           recorder,
		Loader:         noopLoader{},
		PluginsDir:     cfg.Paths.PluginsDir,
		Roots:          rootsFromConfig(cfg),
		ProjectFactory: sphinx.Factory,
		CreditsPath:    filepath.Join(filepath.Dir(*configPath), "credits.yaml"),
		Delayer:        sched,
		Server:         server,
		Auth:           auth.Commands(authStore, recorder),
	}
	if audit != nil {
		deps.Audit = &auditAdapter{store: audit}
		deps.Dumps = map[string]core.DumpFunc{
			"audit": auditDump(audit),
		}
	}

	c := core.New(deps)
	server.core = c

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	if cfg.Console.Listen != "" {
		var reader api.AuditReader
		if audit != nil {
			reader = audit
		}
		bridge := api.New(api.Config{
			Listen: cfg.Console.Listen,
			Token:  cfg.Console.Token,
		}, c, recorder, reader)
		go func() {
			if err := bridge.Start(ctx); err != nil && err != context.Canceled {
				errCh <- fmt.Errorf("console bridge: %w", err)
			}
		}()
		logger.Info("console bridge enabled", "listen", cfg.Console.Listen)
	}

	// Interactive console on stdin.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			c.Dispatch(scanner.Text())
			recorder.Drain()
		}
	}()

	logger.Info("herald running (press Ctrl+C to stop)")

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	case err := <-errCh:
		logger.Error("component failed", "error", err)
		cancel()
		return 1
	}

	logger.Info("herald stopped")
	return 0
}

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	if _, err := config.Load(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration check FAILED: %v\n", err)
		return 1
	}

	fmt.Println("Configuration check PASSED.")
	return 0
}

func runLock(args []string) int {
	fs := flag.NewFlagSet("lock", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse flags: %v\n", err)
		return 1
	}

	configDir := filepath.Dir(*configPath)
	if err := config.GenerateChecksums(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to lock config in %s: %v\n", configDir, err)
		return 1
	}

	fmt.Printf("Successfully locked configuration in %s\n", configDir)
	return 0
}

// noopLoader is the standalone plugin loader: there is no host runtime to
// hand plugin code to, so loading only tracks state.
type noopLoader struct{}

func (noopLoader) Load(name string) error   { return nil }
func (noopLoader) Unload(name string) error { return nil }

// auditAdapter bridges the dispatcher's context-free audit hook onto the
// SQLite store.
type auditAdapter struct {
	store *storage.AuditStore
}

func (a *auditAdapter) Record(line, command, outcome string) error {
	return a.store.Record(context.Background(), line, command, outcome)
}

// auditDump writes the most recent audit entries to a file.
func auditDump(store *storage.AuditStore) core.DumpFunc {
	return func(filename string) error {
		entries, err := store.Recent(context.Background(), 500)
		if err != nil {
			return err
		}

		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()

		for _, entry := range entries {
			if _, err := fmt.Fprintf(f, "%s\t%s\t%s\t%s\n",
				entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.Outcome, entry.Command, entry.Line); err != nil {
				return err
			}
		}
		return f.Sync()
	}
}

func rootsFromConfig(cfg *config.Config) docs.Roots {
	return docs.Roots{
		PackagesDir:     cfg.Paths.PackagesDir,
		PackagesDocsDir: cfg.Paths.PackagesDocsDir,
		CustomDir:       cfg.Paths.CustomDir,
		CustomDocsDir:   cfg.Paths.CustomDocsDir,
		PluginsDir:      cfg.Paths.PluginsDir,
		PluginsDocsDir:  cfg.Paths.PluginsDocsDir,
	}
}
