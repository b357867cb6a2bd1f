package auth

import (
	"os"
	"path/filepath"
	"strings"
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

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "auth.yaml"))
	require.NoError(t, err)
	return store
}

func TestStore_GrantAndLevel(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Grant("bob", 3))

	level, ok := store.Level("bob")
	require.True(t, ok)
	assert.Equal(t, 3, level)

	_, ok = store.Level("alice")
	assert.False(t, ok)
}

func TestStore_GrantOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Grant("bob", 1))
	require.NoError(t, store.Grant("bob", 5))

	level, _ := store.Level("bob")
	assert.Equal(t, 5, level)
}

func TestStore_RevokeUnknownIsNoop(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Revoke("ghost"))
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.yaml")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Grant("bob", 2))
	require.NoError(t, store.Grant("alice", 4))
	require.NoError(t, store.Revoke("bob"))

	reopened, err := NewStore(path)
	require.NoError(t, err)

	level, ok := reopened.Level("alice")
	require.True(t, ok)
	assert.Equal(t, 4, level)

	_, ok = reopened.Level("bob")
	assert.False(t, ok)
}

func TestStore_PlayersSorted(t *testing.T) {
	store := newTestStore(t)
	for _, player := range []string{"zed", "alice", "mike"} {
		require.NoError(t, store.Grant(player, 1))
	}

	assert.Equal(t, []string{"alice", "mike", "zed"}, store.Players())
}

func TestStore_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a\n- mapping\n"), 0o600))

	_, err := NewStore(path)
	assert.Error(t, err)
}

func commandsFixture(t *testing.T) (*Store, *[]string, func(string, []string)) {
	t.Helper()

	store := newTestStore(t)
	var messages []string
	reg := Commands(store, report.SinkFunc(func(msg string) { messages = append(messages, msg) }))

	run := func(name string, args []string) {
		entry, ok := reg.Lookup(name)
		require.True(t, ok, "sub-command %q not registered", name)
		entry.Handler(args)
	}
	return store, &messages, run
}

func TestCommands_Grant(t *testing.T) {
	store, messages, run := commandsFixture(t)

	run("grant", []string{"bob", "2"})

	level, ok := store.Level("bob")
	require.True(t, ok)
	assert.Equal(t, 2, level)
	assert.Equal(t, `Player "bob" has been granted level 2.`, (*messages)[len(*messages)-1])
}

func TestCommands_GrantRejectsBadLevel(t *testing.T) {
	store, messages, run := commandsFixture(t)

	run("grant", []string{"bob", "admin"})

	_, ok := store.Level("bob")
	assert.False(t, ok)
	assert.Equal(t, `Invalid level: "admin".`, (*messages)[len(*messages)-1])
}

func TestCommands_GrantUsage(t *testing.T) {
	_, messages, run := commandsFixture(t)

	run("grant", []string{"bob"})

	assert.Equal(t, "Usage: auth grant <player> <level>", (*messages)[len(*messages)-1])
}

func TestCommands_Revoke(t *testing.T) {
	store, messages, run := commandsFixture(t)
	require.NoError(t, store.Grant("bob", 2))

	run("revoke", []string{"bob"})

	_, ok := store.Level("bob")
	assert.False(t, ok)
	assert.Equal(t, `Authorization has been revoked for player "bob".`, (*messages)[len(*messages)-1])
}

func TestCommands_ListFramedAndSorted(t *testing.T) {
	store, messages, run := commandsFixture(t)
	require.NoError(t, store.Grant("zed", 1))
	require.NoError(t, store.Grant("alice", 3))

	run("list", nil)

	msg := (*messages)[len(*messages)-1]
	assert.Contains(t, msg, "[auth] Authorized players:")
	assert.Contains(t, msg, report.Rule())
	assert.Contains(t, msg, "\talice: 3\n")
	assert.Contains(t, msg, "\tzed: 1\n")
	assert.Less(t, strings.Index(msg, "alice"), strings.Index(msg, "zed"))
}
