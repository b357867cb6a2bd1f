package command

import (
	"log/slog"
	"strings"

	"github.com/mattjoyce/herald/internal/log"
	"github.com/mattjoyce/herald/internal/report"
)

// Dispatch outcomes recorded to the audit trail.
const (
	OutcomeOK      = "ok"
	OutcomeUnknown = "unknown"
	OutcomeError   = "error"
)

// Auditor records one dispatched line. Implementations must not fail loudly;
// the dispatcher logs audit errors and never surfaces them to the operator.
type Auditor interface {
	Record(line, command, outcome string) error
}

// Dispatcher resolves raw console lines against a registry and invokes the
// matching handler. It is exception-opaque to its caller: a panicking
// handler produces one internal-error report and dispatch returns normally.
type Dispatcher struct {
	registry *Registry
	sink     report.Sink
	audit    Auditor
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher for registry reporting through sink.
// audit may be nil.
func NewDispatcher(registry *Registry, sink report.Sink, audit Auditor) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		sink:     sink,
		audit:    audit,
		logger:   log.WithComponent("dispatch"),
	}
}

// Dispatch tokenizes line by whitespace, resolves the first token against
// the registry and invokes the handler with the remaining tokens. Empty or
// unrecognized input produces the registry's help listing. Dispatch never
// panics and never returns an error to the host; every call produces text.
func (d *Dispatcher) Dispatch(line string) {
	tokens := strings.Fields(line)
	name, outcome := d.dispatchInto(d.registry, d.registry.Name(), tokens)
	d.record(line, name, outcome)
}

// dispatchInto resolves tokens against reg, recursing through nested
// sub-registries. topCommand is the full command path used in help output.
// It returns the resolved command name (empty when unknown) and the outcome.
func (d *Dispatcher) dispatchInto(reg *Registry, topCommand string, tokens []string) (string, string) {
	if len(tokens) == 0 {
		d.emitHelp(reg, topCommand)
		return "", OutcomeUnknown
	}

	entry, ok := reg.Lookup(tokens[0])
	if !ok {
		d.emitHelp(reg, topCommand)
		return "", OutcomeUnknown
	}

	if entry.Sub != nil {
		name, outcome := d.dispatchInto(entry.Sub, topCommand+" "+entry.Name, tokens[1:])
		if name != "" {
			name = entry.Name + " " + name
		} else {
			name = entry.Name
		}
		return name, outcome
	}

	if d.invoke(entry, tokens[1:]) {
		return entry.Name, OutcomeOK
	}
	return entry.Name, OutcomeError
}

// invoke runs the handler, absorbing any panic at the dispatch boundary. A
// single malformed sub-command must never crash the host process.
func (d *Dispatcher) invoke(entry *Entry, args []string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", "command", entry.Name, "panic", r)
			d.sink.Emit(d.registry.Prefix() + "An internal error occurred while executing this command.")
			ok = false
		}
	}()

	entry.Handler(args)
	return true
}

// emitHelp reports the registry's help listing: prefix, description and the
// sorted usage lines.
func (d *Dispatcher) emitHelp(reg *Registry, topCommand string) {
	d.sink.Emit(report.Help(reg.Prefix(), reg.Description(), topCommand, reg.Usages()))
}

func (d *Dispatcher) record(line, name, outcome string) {
	if d.audit == nil {
		return
	}
	if err := d.audit.Record(line, name, outcome); err != nil {
		d.logger.Error("failed to record dispatch", "error", err)
	}
}
