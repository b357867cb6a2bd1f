// Package auth is the authorization sub-command tree: a small file-backed
// player/level store surfaced as a nested registry under the top-level
// command.
package auth

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/herald/internal/command"
	"github.com/mattjoyce/herald/internal/report"
)

// Store persists player authorization levels to a YAML file.
type Store struct {
	mu     sync.Mutex
	path   string
	levels map[string]int
}

// NewStore opens the store at path, loading existing grants if present.
func NewStore(path string) (*Store, error) {
	store := &Store{path: path, levels: make(map[string]int)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("read auth store: %w", err)
	}
	if err := yaml.Unmarshal(data, &store.levels); err != nil {
		return nil, fmt.Errorf("parse auth store: %w", err)
	}
	return store, nil
}

// Grant sets the authorization level for player and persists.
func (s *Store) Grant(player string, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[player] = level
	return s.save()
}

// Revoke removes player and persists. Revoking an unknown player is a no-op.
func (s *Store) Revoke(player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.levels, player)
	return s.save()
}

// Level returns the granted level for player.
func (s *Store) Level(player string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	level, ok := s.levels[player]
	return level, ok
}

// Players returns all granted players sorted by name.
func (s *Store) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]string, 0, len(s.levels))
	for player := range s.levels {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}

// save is called with the lock held.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.levels)
	if err != nil {
		return fmt.Errorf("marshal auth store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write auth store: %w", err)
	}
	return nil
}

// Commands builds the nested auth registry served under the top-level
// command. Handlers validate their own arguments and report through sink.
func Commands(store *Store, sink report.Sink) *command.Registry {
	reg := command.NewRegistry("auth", "Authorization commands.")

	reg.Register("grant", func(args []string) {
		if len(args) < 2 {
			sink.Emit("Usage: auth grant <player> <level>")
			return
		}
		level, err := strconv.Atoi(args[1])
		if err != nil {
			sink.Emit(fmt.Sprintf("Invalid level: %q.", args[1]))
			return
		}
		if err := store.Grant(args[0], level); err != nil {
			sink.Emit(fmt.Sprintf("Unable to grant authorization to %q.", args[0]))
			return
		}
		sink.Emit(fmt.Sprintf("Player %q has been granted level %d.", args[0], level))
	}, "<player>", "<level>")

	reg.Register("revoke", func(args []string) {
		if len(args) < 1 {
			sink.Emit("Usage: auth revoke <player>")
			return
		}
		if err := store.Revoke(args[0]); err != nil {
			sink.Emit(fmt.Sprintf("Unable to revoke authorization from %q.", args[0]))
			return
		}
		sink.Emit(fmt.Sprintf("Authorization has been revoked for player %q.", args[0]))
	}, "<player>")

	reg.Register("list", func(args []string) {
		var out string
		out = reg.Prefix() + "Authorized players:\n" + report.Rule() + "\n\n"
		for _, player := range store.Players() {
			level, _ := store.Level(player)
			out += fmt.Sprintf("\t%s: %d\n", player, level)
		}
		out += "\n" + report.Rule()
		sink.Emit(out)
	})

	return reg
}
