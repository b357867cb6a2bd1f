package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/report"
)

func TestMain(m *testing.M) {
	log.Setup("ERROR")
	os.Exit(m.Run())
}

type fakeLoader struct {
	loaded    []string
	unloaded  []string
	loadErr   error
	unloadErr error
}

func (f *fakeLoader) Load(name string) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = append(f.loaded, name)
	return nil
}

func (f *fakeLoader) Unload(name string) error {
	if f.unloadErr != nil {
		return f.unloadErr
	}
	f.unloaded = append(f.unloaded, name)
	return nil
}

func installPlugin(t *testing.T, pluginsDir, name, manifest string) {
	t.Helper()
	dir := filepath.Join(pluginsDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "plugin.yaml"), []byte(manifest), 0o644))
	}
}

func newTestManager(t *testing.T) (*Manager, *fakeLoader, *[]string, string) {
	t.Helper()
	pluginsDir := t.TempDir()
	loader := &fakeLoader{}
	var messages []string
	sink := report.SinkFunc(func(msg string) { messages = append(messages, msg) })
	return NewManager(pluginsDir, loader, sink), loader, &messages, pluginsDir
}

func TestManager_LoadUnload(t *testing.T) {
	mgr, loader, messages, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "admin", "")

	mgr.Load("admin")
	assert.Equal(t, []string{"admin"}, loader.loaded)
	require.Len(t, *messages, 1)
	assert.Equal(t, `Plugin "admin" has been loaded successfully.`, (*messages)[0])

	mgr.Unload("admin")
	assert.Equal(t, []string{"admin"}, loader.unloaded)
	assert.Equal(t, `Plugin "admin" has been unloaded successfully.`, (*messages)[1])
}

func TestManager_LoadTwiceIsNoop(t *testing.T) {
	mgr, loader, messages, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "admin", "")

	mgr.Load("admin")
	mgr.Load("admin")

	assert.Equal(t, []string{"admin"}, loader.loaded)
	assert.Equal(t, `Plugin "admin" is already loaded.`, (*messages)[1])
}

func TestManager_LoadMissingPlugin(t *testing.T) {
	mgr, loader, messages, _ := newTestManager(t)

	mgr.Load("ghost")

	assert.Empty(t, loader.loaded)
	require.Len(t, *messages, 1)
	assert.Equal(t, `Plugin "ghost" does not exist.`, (*messages)[0])
}

func TestManager_UnloadNotLoaded(t *testing.T) {
	mgr, _, messages, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "admin", "")

	mgr.Unload("admin")

	require.Len(t, *messages, 1)
	assert.Equal(t, `Plugin "admin" is not loaded.`, (*messages)[0])
}

func TestManager_LoaderFailureIsAbsorbed(t *testing.T) {
	mgr, loader, messages, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "admin", "")
	loader.loadErr = errors.New("syntax error")

	assert.NotPanics(t, func() { mgr.Load("admin") })

	require.Len(t, *messages, 1)
	assert.Equal(t, `Unable to load plugin "admin".`, (*messages)[0])
	assert.Empty(t, mgr.Entries())
}

func TestManager_Reload(t *testing.T) {
	mgr, loader, messages, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "admin", "")

	mgr.Load("admin")
	mgr.Reload("admin")

	assert.Equal(t, []string{"admin", "admin"}, loader.loaded)
	assert.Equal(t, []string{"admin"}, loader.unloaded)
	require.Len(t, *messages, 3)
	assert.Equal(t, `Plugin "admin" has been unloaded successfully.`, (*messages)[1])
	assert.Equal(t, `Plugin "admin" has been loaded successfully.`, (*messages)[2])
}

func TestManager_EntriesSortedWithInfo(t *testing.T) {
	mgr, _, _, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "zulu", "")
	installPlugin(t, pluginsDir, "alpha", `
name: alpha
verbose_name: Alpha
author: someone
version: "2.1"
settings:
  - name: alpha_level
    help: Required level
    default: "2"
`)
	installPlugin(t, pluginsDir, "mu", "")

	mgr.Load("zulu")
	mgr.Load("alpha")
	mgr.Load("mu")

	entries := mgr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "mu", entries[1].Name)
	assert.Equal(t, "zulu", entries[2].Name)

	// Manifest info in declaration order, settings last.
	require.Len(t, entries[0].Info, 4)
	assert.Equal(t, "verbose_name", entries[0].Info[0].Key)
	assert.Equal(t, report.Text("Alpha"), entries[0].Info[0].Value)
	assert.Equal(t, "public_setting", entries[0].Info[3].Key)
	assert.Equal(t, report.Setting{Name: "alpha_level", Help: "Required level", Current: "2"}, entries[0].Info[3].Value)

	// No manifest: bare entry.
	assert.Empty(t, entries[1].Info)
}

func TestManager_Installed(t *testing.T) {
	mgr, _, _, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "beta", "")
	installPlugin(t, pluginsDir, "alpha", "")
	require.NoError(t, os.WriteFile(filepath.Join(pluginsDir, "stray.txt"), []byte("x"), 0o644))

	assert.Equal(t, []string{"alpha", "beta"}, mgr.Installed())
}

func TestManager_InvalidManifestStillLoads(t *testing.T) {
	mgr, _, messages, pluginsDir := newTestManager(t)
	installPlugin(t, pluginsDir, "broken", "::: not yaml :::")

	mgr.Load("broken")

	require.Len(t, *messages, 1)
	assert.Equal(t, `Plugin "broken" has been loaded successfully.`, (*messages)[0])

	entries := mgr.Entries()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Info)
}
