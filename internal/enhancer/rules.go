// Package enhancer implements the classification-and-rewrite engine that
// turns free-form scheduling shorthand ("**Thomas BOXWOODS + prune") into
// canonical calendar entries.
package enhancer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/mynock/blossom-and-bough-assistant/internal/models"
	"gopkg.in/yaml.v3"
)

// Rules holds every lookup table the engine consults. A Rules value is
// built once per run and treated as immutable afterwards.
type Rules struct {
	// Work-type keywords, evaluated in Design > Office > Errands > Ad-hoc
	// precedence. DesignWholeWords require word boundaries so "plan" does
	// not fire inside "planting".
	DesignKeywords   []string
	DesignWholeWords []string
	OfficeKeywords   []string
	ErrandsKeywords  []string
	AdHocKeywords    []string

	// NonClientKeywords mark internal-operations titles during client-name
	// extraction; NonClientNoteKeywords are the subset recognized when
	// recovering notes.
	NonClientKeywords     []string
	NonClientNoteKeywords []string

	// Helper-schedule construction.
	HelperSkipKeywords []string
	HelperMaxWords     int

	// HelperNames maps informal helper names (lower-cased) to canonical
	// ones, e.g. "rorick" -> "Rebecca".
	HelperNames map[string]string

	// Separators split a title into name and remainder; the first one
	// present wins, in this order.
	Separators []string

	Colors       map[models.WorkType]string
	DefaultColor string

	// NearTermDays is the window within which a single-star event is
	// treated as confirmed rather than tentative.
	NearTermDays int

	designWordRe *regexp.Regexp
}

// DefaultRules returns the built-in rule tables.
func DefaultRules() *Rules {
	r := &Rules{
		DesignKeywords:   []string{"design", "consultation", "estimate"},
		DesignWholeWords: []string{"planning", "plan"},
		OfficeKeywords:   []string{"office", "invoice", "quote", "admin", "paperwork", "follow-up"},
		ErrandsKeywords: []string{
			"errands", "supply", "pickup", "equipment service", "shop",
			"truck service", "tool", "equipment maintenance", "repair",
		},
		AdHocKeywords:         []string{"storm", "emergency", "urgent", "fix"},
		NonClientKeywords:     []string{"office", "errands", "equipment maintenance", "truck service", "tool"},
		NonClientNoteKeywords: []string{"office work", "errands"},
		HelperSkipKeywords:    []string{"office", "design", "invoices", "sched", "comms", "pdxn", "shop"},
		HelperMaxWords:        3,
		HelperNames: map[string]string{
			"rorick": "Rebecca",
		},
		Separators: []string{"+", "(", ",", ":", ";", "-"},
		Colors: map[models.WorkType]string{
			models.WorkTypeMaintenance: "10", // Green/Basil
			models.WorkTypeAdHoc:       "4",  // Flamingo/Pale Red
			models.WorkTypeDesign:      "3",  // Grape/Mauve
			models.WorkTypeOffice:      "8",  // Graphite/Gray
			models.WorkTypeErrands:     "6",  // Tangerine/Orange
		},
		DefaultColor: "10",
		NearTermDays: 14,
	}
	r.compile()
	return r
}

// rulesFile is the YAML overlay shape. Only set fields override the
// defaults; the helper-name map merges entry by entry.
type rulesFile struct {
	DesignKeywords   []string          `yaml:"design_keywords"`
	DesignWholeWords []string          `yaml:"design_whole_words"`
	OfficeKeywords   []string          `yaml:"office_keywords"`
	ErrandsKeywords  []string          `yaml:"errands_keywords"`
	AdHocKeywords    []string          `yaml:"ad_hoc_keywords"`
	HelperSkip       []string          `yaml:"helper_skip_keywords"`
	HelperNames      map[string]string `yaml:"helper_names"`
	Colors           map[string]string `yaml:"colors"`
	NearTermDays     *int              `yaml:"near_term_days"`
	HelperMaxWords   *int              `yaml:"helper_max_words"`
}

// LoadRules reads a YAML overlay file and applies it on top of the
// defaults.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	r := DefaultRules()
	if len(f.DesignKeywords) > 0 {
		r.DesignKeywords = f.DesignKeywords
	}
	if len(f.DesignWholeWords) > 0 {
		r.DesignWholeWords = f.DesignWholeWords
	}
	if len(f.OfficeKeywords) > 0 {
		r.OfficeKeywords = f.OfficeKeywords
	}
	if len(f.ErrandsKeywords) > 0 {
		r.ErrandsKeywords = f.ErrandsKeywords
	}
	if len(f.AdHocKeywords) > 0 {
		r.AdHocKeywords = f.AdHocKeywords
	}
	if len(f.HelperSkip) > 0 {
		r.HelperSkipKeywords = f.HelperSkip
	}
	for informal, canonical := range f.HelperNames {
		r.HelperNames[strings.ToLower(informal)] = canonical
	}
	for workType, color := range f.Colors {
		r.Colors[models.WorkType(workType)] = color
	}
	if f.NearTermDays != nil {
		r.NearTermDays = *f.NearTermDays
	}
	if f.HelperMaxWords != nil {
		r.HelperMaxWords = *f.HelperMaxWords
	}
	r.compile()
	return r, nil
}

func (r *Rules) compile() {
	if len(r.DesignWholeWords) == 0 {
		r.designWordRe = nil
		return
	}
	quoted := make([]string, len(r.DesignWholeWords))
	for i, w := range r.DesignWholeWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	r.designWordRe = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
