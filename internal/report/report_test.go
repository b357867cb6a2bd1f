package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleWidth(t *testing.T) {
	assert.Len(t, Rule(), 61)
}

func TestListing_Framing(t *testing.T) {
	got := Listing("[herald] ", "Loaded plugins:", []PluginEntry{
		{Name: "alpha"},
		{Name: "beta", Info: []InfoItem{
			{Key: "verbose_name", Value: Text("Beta")},
			{Key: "author", Value: Text("someone")},
		}},
	})

	lines := strings.Split(got, "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	assert.Equal(t, "[herald] Loaded plugins:", lines[0])
	assert.Equal(t, Rule(), lines[1])
	assert.Equal(t, "", lines[2])
	assert.True(t, strings.HasSuffix(got, Rule()), "listing must close with a rule")

	// Records are blank-line delimited.
	assert.Contains(t, got, "alpha\n\n")
	assert.Contains(t, got, "beta:\n\tverbose_name:\n\t\tBeta\n\tauthor:\n\t\tsomeone\n\n")
}

func TestListing_SettingValue(t *testing.T) {
	got := Listing("[herald] ", "Loaded plugins:", []PluginEntry{
		{Name: "admin", Info: []InfoItem{
			{Key: "public_setting", Value: Setting{
				Name:    "admin_level",
				Help:    "Required admin level",
				Current: "2",
			}},
		}},
	})

	// The setting variant renders name, then help: value on the next
	// indentation level.
	assert.Contains(t, got, "\tpublic_setting:\n\t\tadmin_level:\n\t\t\tRequired admin level: 2\n")
}

func TestCredits_PaddingAndFraming(t *testing.T) {
	got := Credits("[herald] ", "Credits:", []CreditGroup{
		{Name: "Project Leads", Pairs: []CreditPair{
			{Name: "ab", Role: "lead"},
			{Name: "averylongcontributor", Role: "lead"},
		}},
		{Name: "Contributors", Pairs: []CreditPair{
			{Name: "cd", Role: "docs"},
		}},
	})

	assert.True(t, strings.HasPrefix(got, "[herald] Credits:\n"+Rule()+"\n\n"))
	assert.True(t, strings.HasSuffix(got, Rule()+"\n\n"))

	// Names are padded to 20 columns before the role text.
	assert.Contains(t, got, "\t\tab"+strings.Repeat(" ", 18)+"lead\n")
	// Overlong names still get one space of separation.
	assert.Contains(t, got, "\t\taverylongcontributor lead\n")

	// Group order is preserved.
	assert.Less(t, strings.Index(got, "Project Leads"), strings.Index(got, "Contributors"))
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "Current herald version: 1.2.0", Version("1.2.0"))
}

func TestHelp(t *testing.T) {
	got := Help("[herald] ", "herald base command.", "herald", []Usage{
		{Name: "credits"},
		{Name: "delay", Args: []string{"<delay>", "<command>", "[arguments]"}},
		{Name: "docs", Args: []string{"<action>", "<package>"}},
	})

	assert.True(t, strings.HasPrefix(got, "[herald] herald base command.\n"+Rule()+"\n"))
	assert.Contains(t, got, "herald credits\n")
	assert.Contains(t, got, "herald delay <delay> <command> [arguments]\n")
	assert.Contains(t, got, "herald docs <action> <package>\n")
	assert.True(t, strings.HasSuffix(got, Rule()))
}

func TestSinkFunc(t *testing.T) {
	var captured string
	sink := SinkFunc(func(msg string) { captured = msg })
	sink.Emit("hello")
	assert.Equal(t, "hello", captured)
}
