// Package context generates Puranic context annotations for verse
// files. An AI model proposes structured entries; a citation filter
// drops anything without a concrete scriptural source before the
// entries are written back into the verse frontmatter.
package context

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"versekit/core/errors"
)

// ValidTypes are the accepted entry types.
var ValidTypes = map[string]bool{
	"story": true, "concept": true, "character": true,
	"etymology": true, "practice": true, "cross_reference": true,
}

// Bilingual holds an English/Hindi string pair.
type Bilingual struct {
	En string `yaml:"en" json:"en"`
	Hi string `yaml:"hi" json:"hi"`
}

// SourceText cites one scripture passage.
type SourceText struct {
	Text    string `yaml:"text" json:"text"`
	Section string `yaml:"section" json:"section"`
}

// Entry is one Puranic context annotation.
type Entry struct {
	ID                      string       `yaml:"id" json:"id"`
	Type                    string       `yaml:"type" json:"type"`
	Priority                string       `yaml:"priority" json:"priority"`
	Title                   Bilingual    `yaml:"title" json:"title"`
	Icon                    string       `yaml:"icon" json:"icon"`
	StorySummary            Bilingual    `yaml:"story_summary" json:"story_summary"`
	TheologicalSignificance Bilingual    `yaml:"theological_significance" json:"theological_significance"`
	PracticalApplication    Bilingual    `yaml:"practical_application" json:"practical_application"`
	SourceTexts             []SourceText `yaml:"source_texts" json:"source_texts"`
	RelatedVerses           []string     `yaml:"related_verses" json:"related_verses"`
}

// SystemPrompt instructs the model to emit structured YAML entries.
const SystemPrompt = `You are an expert in Hindu scriptures, Puranas, and devotional literature
(bhakti). You generate structured Puranic context boxes for verses from sacred texts like
Hanuman Chalisa, Sundar Kaand, Bajrang Baan, and Sankat Mochan Hanumanashtak.

Each context entry must be a YAML object with these fields:
  id: unique-slug (kebab-case)
  type: story | concept | character | etymology | practice | cross_reference
  priority: high | medium | low
  title:
    en: "English title"
    hi: "Hindi title in Devanagari"
  icon: single emoji
  story_summary:
    en: "2-4 sentence summary"
    hi: "Same in Hindi Devanagari"
  theological_significance:
    en: "2-4 sentences on spiritual meaning"
    hi: "Same in Hindi Devanagari"
  practical_application:
    en: "2-4 sentences on practical use"
    hi: "Same in Hindi Devanagari"
  source_texts:
    - text: "Scripture name"
      section: "Book/chapter/kanda"
  related_verses: []

Rules:
- Generate 1-3 entries per verse (only the most relevant references)
- For short invocations, closing verses, or verses with no meaningful Puranic
  content, return an empty list []
- Prioritise accuracy over quantity
- All Hindi text must be in Devanagari script
- Return ONLY valid YAML, without markdown fences or explanation`

// BuildPrompt assembles the user prompt from verse frontmatter fields.
// The verse ID stands in for a missing title.
func BuildPrompt(fm map[string]any, verseID string) string {
	title := stringField(fm["title_en"])
	if title == "" {
		title = verseID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Verse: %s\n", title)
	fmt.Fprintf(&b, "Devanagari: %s\n", stringField(fm["devanagari"]))
	fmt.Fprintf(&b, "Transliteration: %s\n", stringField(fm["transliteration"]))

	for _, field := range []string{"translation", "interpretive_meaning", "literal_translation"} {
		if v := langField(fm[field]); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", field, v)
		}
	}
	if story := langField(fm["story"]); story != "" {
		if len(story) > 800 {
			story = story[:800]
		}
		fmt.Fprintf(&b, "\nStory/Context: %s\n", story)
	}

	b.WriteString("\nGenerate Puranic context entries for this verse as a YAML list.\n")
	b.WriteString("Return [] if the verse has no meaningful Puranic content.")
	return b.String()
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// langField accepts either a plain string or an en/hi map and returns
// the English value.
func langField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if m, ok := v.(map[string]any); ok {
		return stringField(m["en"])
	}
	return ""
}

// ParseReply decodes the model's YAML reply into entries, tolerating
// markdown fences the model was told not to emit.
func ParseReply(raw string) ([]Entry, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		lines := strings.Split(raw, "\n")
		lines = lines[1:]
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
			lines = lines[:len(lines)-1]
		}
		raw = strings.Join(lines, "\n")
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entries []Entry
	if err := yaml.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, errors.NewParse("YAML", "model reply", err.Error())
	}
	return entries, nil
}

// vagueSections are citation placeholders that mark an entry as
// effectively uncited.
var vagueSections = map[string]bool{
	"unknown":                true,
	"various":                true,
	"general":                true,
	"n/a":                    true,
	"na":                     true,
	"none":                   true,
	"not directly mentioned": true,
	"not mentioned":          true,
	"not specified":          true,
	"multiple":               true,
}

// VagueSection reports whether a citation section is a placeholder: a
// known vague phrase, empty, or a bare number with no book context.
func VagueSection(section string) bool {
	s := strings.ToLower(strings.TrimSpace(section))
	if s == "" || vagueSections[s] {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RejectUncited drops entries whose every citation is vague. When
// indexedSourceNames is non-empty, citations into scriptures outside
// the index are also rejected; the model tends to invent plausible
// chapter numbers in texts it was never shown.
func RejectUncited(entries []Entry, indexedSourceNames []string) []Entry {
	var kept []Entry
	for _, e := range entries {
		if hasConcreteCitation(e, indexedSourceNames) {
			kept = append(kept, e)
		}
	}
	return kept
}

func hasConcreteCitation(e Entry, indexedSourceNames []string) bool {
	for _, st := range e.SourceTexts {
		if VagueSection(st.Section) {
			continue
		}
		if len(indexedSourceNames) > 0 && !matchesSource(st.Text, indexedSourceNames) {
			continue
		}
		return true
	}
	return false
}

func matchesSource(text string, names []string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && (strings.Contains(t, n) || strings.Contains(n, t)) {
			return true
		}
	}
	return false
}

// EnsureIDs fills in a kebab-case fallback ID for entries the model
// left without one.
func EnsureIDs(entries []Entry, verseID string) []Entry {
	for i := range entries {
		if strings.TrimSpace(entries[i].ID) == "" {
			entries[i].ID = fmt.Sprintf("%s-context-%s", verseID, uuid.NewString()[:8])
		}
	}
	return entries
}
