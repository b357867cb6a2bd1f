// Package plugin manages the set of loaded plugins and enumerates the
// plugins installed on disk.
//
// Physical import/unimport of plugin code is behind the Loader interface;
// this package only tracks which plugins are loaded and surfaces their
// manifest information to the listing report.
package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/report"
)

// Loader physically imports and unimports plugin code. It is an external
// collaborator; errors are reported and absorbed by the manager.
type Loader interface {
	Load(name string) error
	Unload(name string) error
}

// LoadedPlugin is one currently loaded plugin. Manifest may be nil when the
// plugin ships no plugin.yaml.
type LoadedPlugin struct {
	Name     string
	Manifest *Manifest
}

// Manager tracks loaded plugins by name. Like the registry it is guarded by
// one lock held per call, never across Loader invocations.
type Manager struct {
	mu         sync.RWMutex
	pluginsDir string
	loader     Loader
	sink       report.Sink
	loaded     map[string]*LoadedPlugin
	logger     *slog.Logger
}

// NewManager creates a manager over pluginsDir using loader, reporting
// through sink.
func NewManager(pluginsDir string, loader Loader, sink report.Sink) *Manager {
	return &Manager{
		pluginsDir: pluginsDir,
		loader:     loader,
		sink:       sink,
		loaded:     make(map[string]*LoadedPlugin),
		logger:     log.WithComponent("plugin"),
	}
}

// Load loads the named installed plugin. Loading a loaded plugin or an
// uninstalled name is a reported no-op.
func (m *Manager) Load(name string) {
	if m.isLoaded(name) {
		m.sink.Emit(fmt.Sprintf("Plugin %q is already loaded.", name))
		return
	}
	if !m.isInstalled(name) {
		m.sink.Emit(fmt.Sprintf("Plugin %q does not exist.", name))
		return
	}

	if err := m.loader.Load(name); err != nil {
		m.logger.Error("load failed", "plugin", name, "error", err)
		m.sink.Emit(fmt.Sprintf("Unable to load plugin %q.", name))
		return
	}

	manifest, err := loadManifest(m.pluginDir(name))
	if err != nil && !os.IsNotExist(err) {
		m.logger.Warn("invalid manifest ignored", "plugin", name, "error", err)
	}
	if err != nil {
		manifest = nil
	}

	m.mu.Lock()
	m.loaded[name] = &LoadedPlugin{Name: name, Manifest: manifest}
	m.mu.Unlock()

	m.sink.Emit(fmt.Sprintf("Plugin %q has been loaded successfully.", name))
}

// Unload unloads the named plugin. Unloading a plugin that is not loaded is
// a reported no-op.
func (m *Manager) Unload(name string) {
	if !m.isLoaded(name) {
		m.sink.Emit(fmt.Sprintf("Plugin %q is not loaded.", name))
		return
	}

	if err := m.loader.Unload(name); err != nil {
		m.logger.Error("unload failed", "plugin", name, "error", err)
		m.sink.Emit(fmt.Sprintf("Unable to unload plugin %q.", name))
		return
	}

	m.mu.Lock()
	delete(m.loaded, name)
	m.mu.Unlock()

	m.sink.Emit(fmt.Sprintf("Plugin %q has been unloaded successfully.", name))
}

// Reload unloads then reloads the named plugin.
func (m *Manager) Reload(name string) {
	m.Unload(name)
	m.Load(name)
}

// Entries returns one listing entry per loaded plugin, sorted by name.
func (m *Manager) Entries() []report.PluginEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.loaded))
	for name := range m.loaded {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]report.PluginEntry, 0, len(names))
	for _, name := range names {
		entry := report.PluginEntry{Name: name}
		if manifest := m.loaded[name].Manifest; manifest != nil {
			entry.Info = manifest.InfoItems()
		}
		entries = append(entries, entry)
	}
	return entries
}

// Installed enumerates the plugin directories on disk, sorted.
func (m *Manager) Installed() []string {
	entries, err := os.ReadDir(m.pluginsDir)
	if err != nil {
		m.logger.Warn("failed to enumerate plugins", "dir", m.pluginsDir, "error", err)
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (m *Manager) isLoaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.loaded[name]
	return ok
}

func (m *Manager) isInstalled(name string) bool {
	for _, installed := range m.Installed() {
		if installed == name {
			return true
		}
	}
	return false
}

func (m *Manager) pluginDir(name string) string {
	return filepath.Join(m.pluginsDir, name)
}
