// Package report renders the fixed-format diagnostic reports emitted by the
// command core.
//
// Every report shares the same framing: the registry prefix, a title line, a
// 61-character separator rule, blank-line-delimited records, and a closing
// rule. The framing is a contract; golden tests depend on the exact bytes.
// Reports are pure formatting - delivery happens through a Sink.
package report

import (
	"fmt"
	"strings"
)

// ruleWidth is the width of the separator rule used by all framed reports.
const ruleWidth = 61

// Sink receives one formatted message per report or diagnostic line.
// The command core performs no direct console I/O itself.
type Sink interface {
	Emit(message string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(message string)

// Emit calls f(message).
func (f SinkFunc) Emit(message string) {
	f(message)
}

// InfoItem is one ordered key/value pair of a plugin's public information.
type InfoItem struct {
	Key   string
	Value Value
}

// PluginEntry is one row of a plugin listing report.
type PluginEntry struct {
	Name string
	Info []InfoItem
}

// Rule returns the separator rule line.
func Rule() string {
	return strings.Repeat("=", ruleWidth)
}

// Listing renders the loaded-plugin listing report. Entries are rendered in
// the order given; callers are responsible for sorting.
func Listing(prefix, title string, entries []PluginEntry) string {
	var out strings.Builder
	out.WriteString(prefix + title + "\n" + Rule() + "\n\n")

	for _, entry := range entries {
		if len(entry.Info) == 0 {
			out.WriteString(entry.Name + "\n\n")
			continue
		}

		out.WriteString(entry.Name + ":\n")
		for _, item := range entry.Info {
			fmt.Fprintf(&out, "\t%s:\n\t\t%s\n", item.Key, formatValue(item.Value))
		}
		out.WriteString("\n")
	}

	out.WriteString(Rule())
	return out.String()
}

// CreditPair is one name/role pair within a credits group.
type CreditPair struct {
	Name string
	Role string
}

// CreditGroup is a named, ordered group of credit pairs.
type CreditGroup struct {
	Name  string
	Pairs []CreditPair
}

// creditNameWidth is the column the role text is padded out to.
const creditNameWidth = 20

// Credits renders the credits report. Group and pair order follow the input.
func Credits(prefix, title string, groups []CreditGroup) string {
	var out strings.Builder
	out.WriteString(prefix + title + "\n" + Rule() + "\n\n")

	for _, group := range groups {
		out.WriteString("\t" + group.Name + ":\n")
		for _, pair := range group.Pairs {
			pad := creditNameWidth - len(pair.Name)
			if pad < 1 {
				pad = 1
			}
			out.WriteString("\t\t" + pair.Name + strings.Repeat(" ", pad) + pair.Role + "\n")
		}
		out.WriteString("\n")
	}

	out.WriteString(Rule() + "\n\n")
	return out.String()
}

// Version renders the version report.
func Version(version string) string {
	return fmt.Sprintf("Current herald version: %s", version)
}

// Usage is one help line: a command name plus its declared argument tags.
type Usage struct {
	Name string
	Args []string
}

// Help renders the help report for a registry: its prefix, description and
// one usage line per registered command. Usages are rendered in the order
// given; callers pass them sorted by name.
func Help(prefix, description, topCommand string, usages []Usage) string {
	var out strings.Builder
	out.WriteString(prefix + description + "\n" + Rule() + "\n")

	for _, usage := range usages {
		out.WriteString(topCommand + " " + usage.Name)
		for _, arg := range usage.Args {
			out.WriteString(" " + arg)
		}
		out.WriteString("\n")
	}

	out.WriteString(Rule())
	return out.String()
}
