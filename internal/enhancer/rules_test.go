package enhancer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
)

func TestLoadRulesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
helper_names:
  Meg: Megan
colors:
  Errands: "11"
near_term_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	// Overlay entries merge into the defaults.
	assert.Equal(t, "Megan", rules.MapHelperName("meg"))
	assert.Equal(t, "Rebecca", rules.MapHelperName("Rorick"))
	assert.Equal(t, "11", rules.ColorFor(models.WorkTypeErrands))
	assert.Equal(t, "10", rules.ColorFor(models.WorkTypeMaintenance))
	assert.Equal(t, 7, rules.NearTermDays)

	// Untouched tables keep their defaults.
	assert.Equal(t, models.WorkTypeDesign, rules.ClassifyWorkType("garden design"))
	assert.Equal(t, models.WorkTypeMaintenance, rules.ClassifyWorkType("planting"))
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultRulesColorTable(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, map[models.WorkType]string{
		models.WorkTypeMaintenance: "10",
		models.WorkTypeAdHoc:       "4",
		models.WorkTypeDesign:      "3",
		models.WorkTypeOffice:      "8",
		models.WorkTypeErrands:     "6",
	}, rules.Colors)
}
