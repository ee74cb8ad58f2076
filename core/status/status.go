// Package status reports per-collection content completeness: which
// verses have text, translations, audio, and images, plus the state of
// the shared embeddings index.
package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"versekit/core/errors"
	"versekit/core/project"
	"versekit/internal/fileutil"
)

// Themes checked for per-verse images, in report order.
var Themes = []string{"modern-minimalist", "traditional", "kids-friendly", "devotional"}

// VerseStatus captures the asset flags for one verse.
type VerseStatus struct {
	VerseID            string   `json:"verse_id"`
	HasDevanagari      bool     `json:"has_devanagari"`
	HasTransliteration bool     `json:"has_transliteration"`
	HasMeaning         bool     `json:"has_meaning"`
	HasTranslation     bool     `json:"has_translation"`
	AudioFull          bool     `json:"audio_full"`
	AudioSlow          bool     `json:"audio_slow"`
	Images             []string `json:"images,omitempty"`
}

// Complete reports full completion: both audio files, at least one
// image, devanagari text, and an English translation.
func (v VerseStatus) Complete() bool {
	return v.AudioFull && v.AudioSlow && len(v.Images) > 0 && v.HasDevanagari && v.HasTranslation
}

// Missing lists the absent asset names for the detailed report.
func (v VerseStatus) Missing() []string {
	var missing []string
	if !v.HasDevanagari {
		missing = append(missing, "devanagari")
	}
	if !v.AudioFull {
		missing = append(missing, "audio_full")
	}
	if !v.AudioSlow {
		missing = append(missing, "audio_slow")
	}
	if len(v.Images) == 0 {
		missing = append(missing, "images")
	}
	return missing
}

// Statistics aggregates verse flags for one collection.
type Statistics struct {
	CompletionPercentage float64 `json:"completion_percentage"`
	VersesComplete       int     `json:"verses_complete"`
	WithAudioFull        int     `json:"verses_with_audio_full"`
	WithAudioSlow        int     `json:"verses_with_audio_slow"`
	WithImages           int     `json:"verses_with_images"`
	WithDevanagari       int     `json:"verses_with_devanagari"`
	WithTranslation      int     `json:"verses_with_translation"`
}

// CollectionStatus is the full analysis for one collection.
type CollectionStatus struct {
	Collection string        `json:"collection"`
	Exists     bool          `json:"exists"`
	VerseCount int           `json:"verse_count"`
	Statistics Statistics    `json:"statistics"`
	Verses     []VerseStatus `json:"verses,omitempty"`
}

// EmbeddingsStatus summarizes data/embeddings.json.
type EmbeddingsStatus struct {
	Exists      bool           `json:"exists"`
	VerseCount  int            `json:"verse_count"`
	Collections map[string]int `json:"collections,omitempty"`
	Path        string         `json:"path,omitempty"`
	SizeKB      float64        `json:"size_kb,omitempty"`
}

// Report bundles everything for JSON output.
type Report struct {
	Collections []CollectionStatus `json:"collections"`
	Embeddings  EmbeddingsStatus   `json:"embeddings"`
}

// AnalyzeCollection inspects one collection's verses and assets. A
// missing verse directory yields Exists=false, not an error.
func AnalyzeCollection(projectDir, key string, config project.CollectionConfig) (CollectionStatus, error) {
	dir := config.VersesDir(projectDir, key)
	if !fileutil.Exists(dir) {
		return CollectionStatus{Collection: key}, nil
	}

	ids, err := project.ListVerseIDs(projectDir, key, config)
	if err != nil {
		return CollectionStatus{}, err
	}

	cs := CollectionStatus{Collection: key, Exists: true, VerseCount: len(ids)}
	for _, id := range ids {
		vs := checkVerse(projectDir, key, dir, id)
		cs.Verses = append(cs.Verses, vs)

		if vs.AudioFull {
			cs.Statistics.WithAudioFull++
		}
		if vs.AudioSlow {
			cs.Statistics.WithAudioSlow++
		}
		if len(vs.Images) > 0 {
			cs.Statistics.WithImages++
		}
		if vs.HasDevanagari {
			cs.Statistics.WithDevanagari++
		}
		if vs.HasTranslation {
			cs.Statistics.WithTranslation++
		}
		if vs.Complete() {
			cs.Statistics.VersesComplete++
		}
	}
	if cs.VerseCount > 0 {
		cs.Statistics.CompletionPercentage = float64(cs.Statistics.VersesComplete) / float64(cs.VerseCount) * 100
	}
	return cs, nil
}

func checkVerse(projectDir, key, versesDir, id string) VerseStatus {
	vs := VerseStatus{VerseID: id}

	raw, err := os.ReadFile(filepath.Join(versesDir, id+".md"))
	if err == nil {
		fm, _ := project.ExtractFrontmatter(string(raw))
		vs.HasDevanagari = nonEmpty(fm["devanagari"])
		vs.HasTransliteration = nonEmpty(fm["transliteration"])
		vs.HasMeaning = nonEmpty(fm["meaning"])
		if v, ok := project.NestedValue(fm, "translation.en"); ok {
			vs.HasTranslation = nonEmpty(v)
		}
	}

	audioDir := filepath.Join(projectDir, "audio", key)
	vs.AudioFull = fileutil.Exists(filepath.Join(audioDir, id+"_full.mp3"))
	vs.AudioSlow = fileutil.Exists(filepath.Join(audioDir, id+"_slow.mp3"))

	imagesDir := filepath.Join(projectDir, "images", key)
	for _, theme := range Themes {
		if fileutil.Exists(filepath.Join(imagesDir, theme, id+".png")) {
			vs.Images = append(vs.Images, theme)
		}
	}
	if fileutil.Exists(filepath.Join(imagesDir, id+".png")) {
		vs.Images = append(vs.Images, "default")
	}
	return vs
}

func nonEmpty(v any) bool {
	s, ok := v.(string)
	if ok {
		return strings.TrimSpace(s) != ""
	}
	return v != nil
}

// CheckEmbeddings summarizes the shared embeddings index file.
func CheckEmbeddings(projectDir string) EmbeddingsStatus {
	path := filepath.Join(projectDir, "data", "embeddings.json")
	var entries []struct {
		Collection string `json:"collection"`
	}
	if err := fileutil.ReadJSON(path, &entries); err != nil {
		return EmbeddingsStatus{}
	}
	es := EmbeddingsStatus{
		Exists:      true,
		VerseCount:  len(entries),
		Collections: map[string]int{},
		Path:        path,
	}
	for _, e := range entries {
		name := e.Collection
		if name == "" {
			name = "unknown"
		}
		es.Collections[name]++
	}
	if kb, err := fileutil.FileSizeKB(path); err == nil {
		es.SizeKB = kb
	}
	return es
}

// RenderJSON marshals the report for scripting consumers.
func RenderJSON(report Report) (string, error) {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode status report")
	}
	return string(raw), nil
}

// WriteReport writes the report as indented JSON to path, creating
// parent directories.
func WriteReport(path string, report Report) error {
	return fileutil.WriteJSON(path, report, true)
}

// RenderText formats the report for terminal reading.
func RenderText(report Report, detailed bool) string {
	var b strings.Builder
	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	b.WriteString("VERSE COLLECTION STATUS\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")

	for _, cs := range report.Collections {
		renderCollection(&b, cs, detailed)
	}
	renderEmbeddings(&b, report.Embeddings)
	if len(report.Collections) > 1 {
		renderSummary(&b, report)
	}
	b.WriteString("\n")
	return b.String()
}

func renderCollection(b *strings.Builder, cs CollectionStatus, detailed bool) {
	if !cs.Exists {
		fmt.Fprintf(b, "\n✗ Collection '%s' not found\n", cs.Collection)
		return
	}
	fmt.Fprintf(b, "\n📚 Collection: %s\n", cs.Collection)
	if cs.VerseCount == 0 {
		b.WriteString("  ⚠ No verses found\n")
		return
	}
	s := cs.Statistics
	fmt.Fprintf(b, "   Verses: %d\n", cs.VerseCount)
	fmt.Fprintf(b, "   Completion: %.1f%% (%d/%d verses)\n", s.CompletionPercentage, s.VersesComplete, cs.VerseCount)
	b.WriteString("\n   Content Status:\n")
	fmt.Fprintf(b, "   ├─ Devanagari text:  %3d/%d verses\n", s.WithDevanagari, cs.VerseCount)
	fmt.Fprintf(b, "   ├─ Translation:      %3d/%d verses\n", s.WithTranslation, cs.VerseCount)
	fmt.Fprintf(b, "   ├─ Audio (full):     %3d/%d verses\n", s.WithAudioFull, cs.VerseCount)
	fmt.Fprintf(b, "   ├─ Audio (slow):     %3d/%d verses\n", s.WithAudioSlow, cs.VerseCount)
	fmt.Fprintf(b, "   └─ Images:           %3d/%d verses\n", s.WithImages, cs.VerseCount)

	if detailed {
		b.WriteString("\n   Verse Details:\n")
		for _, v := range cs.Verses {
			fmt.Fprintf(b, "   ├─ %-20s │ Text:%s │ Audio:%s%s │ Image:%s\n",
				v.VerseID, mark(v.HasDevanagari), mark(v.AudioFull), mark(v.AudioSlow), mark(len(v.Images) > 0))
			if missing := v.Missing(); len(missing) > 0 {
				fmt.Fprintf(b, "   │  └─ Missing: %s\n", strings.Join(missing, ", "))
			}
		}
	}
}

func renderEmbeddings(b *strings.Builder, es EmbeddingsStatus) {
	b.WriteString("\n🔍 Embeddings Status:\n")
	if !es.Exists {
		b.WriteString("   ✗ No embeddings file found (data/embeddings.json)\n")
		return
	}
	fmt.Fprintf(b, "   ✓ Total verses indexed: %d\n", es.VerseCount)
	if len(es.Collections) > 0 {
		b.WriteString("   Collections:\n")
		var names []string
		for name := range es.Collections {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(b, "   ├─ %-30s %3d verses\n", name, es.Collections[name])
		}
	}
	if es.Path != "" {
		fmt.Fprintf(b, "\n   File: %s (%.1f KB)\n", es.Path, es.SizeKB)
	}
}

func renderSummary(b *strings.Builder, report Report) {
	total := 0
	existing := 0
	for _, cs := range report.Collections {
		if cs.Exists {
			existing++
			total += cs.VerseCount
		}
	}
	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(b, "Collections: %d\n", existing)
	fmt.Fprintf(b, "Total verses: %d\n", total)
	if report.Embeddings.Exists {
		if missing := total - report.Embeddings.VerseCount; missing > 0 {
			fmt.Fprintf(b, "⚠ Verses not in embeddings: %d\n", missing)
		} else {
			b.WriteString("✓ All verses indexed in embeddings\n")
		}
	}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
