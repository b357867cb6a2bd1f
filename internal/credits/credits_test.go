package credits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/herald/internal/report"
)

const sample = `Project Leads:
  zed: Lead Developer
  anna: Lead Developer
Contributors:
  mike: Documentation
`

func TestParse_PreservesFileOrder(t *testing.T) {
	groups, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// Groups and pairs come back in file order, not sorted.
	assert.Equal(t, "Project Leads", groups[0].Name)
	assert.Equal(t, []report.CreditPair{
		{Name: "zed", Role: "Lead Developer"},
		{Name: "anna", Role: "Lead Developer"},
	}, groups[0].Pairs)

	assert.Equal(t, "Contributors", groups[1].Name)
	assert.Equal(t, []report.CreditPair{{Name: "mike", Role: "Documentation"}}, groups[1].Pairs)
}

func TestParse_Empty(t *testing.T) {
	groups, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestParse_RejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("Group:\n  - listitem\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	groups, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
