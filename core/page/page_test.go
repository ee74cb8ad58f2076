package page

import (
	"strings"
	"testing"

	"versekit/core/project"
	"versekit/core/section"
)

func TestIndexPage_IncludesCollectionName(t *testing.T) {
	config := project.CollectionConfig{
		NameEn:        "Bajrang Baan",
		NameHi:        "बजरंग बाण",
		Icon:          "🛡️",
		PermalinkBase: "/bajrang-baan/",
	}
	html := GenerateIndexPage("bajrang-baan", config, nil)
	if !strings.Contains(html, "Bajrang Baan") {
		t.Error("missing English name")
	}
	if !strings.Contains(html, "बजरंग बाण") {
		t.Error("missing Hindi name")
	}
}

func TestIndexPage_Frontmatter(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateIndexPage("test", config, nil)
	if !strings.HasPrefix(html, "---\n") {
		t.Error("output does not start with frontmatter")
	}
	for _, want := range []string{"layout: default", "collection_key: test"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestIndexPage_TitleFallback(t *testing.T) {
	html := GenerateIndexPage("sankat-mochan", project.CollectionConfig{}, nil)
	if !strings.Contains(html, "title: Sankat Mochan") {
		t.Error("missing title-cased fallback")
	}
}

func TestIndexPage_PuranicLegend(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateIndexPage("test-col", config, nil)
	if !strings.Contains(html, "puranic-legend-compact") {
		t.Error("missing puranic-legend-compact")
	}
	if !strings.Contains(html, "Puranic stories") {
		t.Error("missing legend text")
	}
}

func TestIndexPage_HeroImage(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateIndexPage("my-collection", config, nil)
	if !strings.Contains(html, "my-collection/modern-minimalist/title-page.png") {
		t.Error("missing themed title image path")
	}
}

func TestIndexPage_CollAssign(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/bajrang-baan/"}
	html := GenerateIndexPage("bajrang-baan", config, nil)
	if !strings.Contains(html, "site.data.collections.bajrang-baan") {
		t.Error("missing collection data assign")
	}
}

func TestIndexPage_ReadCompleteButton(t *testing.T) {
	config := project.CollectionConfig{
		NameEn:        "Bajrang Baan",
		NameHi:        "बजरंग बाण",
		PermalinkBase: "/bajrang-baan/",
	}
	html := GenerateIndexPage("bajrang-baan", config, nil)
	for _, want := range []string{"btn-primary", "full-text", "Read Complete Bajrang Baan"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestIndexPage_BookButtonUsesSharedPath(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateIndexPage("my-col", config, nil)
	if !strings.Contains(html, "/chalisa/book") {
		t.Error("missing /chalisa/book link")
	}
	if !strings.Contains(html, "btn-secondary") {
		t.Error("missing btn-secondary")
	}
	// The book generator is a shared feature, never per-collection.
	if strings.Contains(html, "/test/book") {
		t.Error("book link must not be under permalink_base")
	}
}

func TestIndexPage_LoopSection(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	sections := []section.Section{{
		Prefix:   "chaupai",
		VerseIDs: []string{"chaupai-01", "chaupai-02", "chaupai-03", "chaupai-04"},
		IsLoop:   true,
	}}
	html := GenerateIndexPage("test", config, sections)
	for _, want := range []string{
		"for verse in chaupai_verses",
		"has-puranic-context",
		"puranic-badge",
		"verse.section_verse_number",
		`sort: "section_verse_number"`,
		"({{ chaupai_count }} Verses)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	// Cards must use the per-section ordinal, never the global one.
	if strings.Contains(html, "verse.verse_number") {
		t.Error("card display uses global verse_number")
	}
	// The heading count renders live, never as escaped template text.
	if strings.Contains(html, "{% raw %}") {
		t.Error("section heading escapes the count expression")
	}
}

func TestIndexPage_IndividualSection(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	sections := []section.Section{{
		Prefix:    "doha",
		VerseIDs:  []string{"doha-opening"},
		Qualifier: "opening",
	}}
	html := GenerateIndexPage("test", config, sections)
	for _, want := range []string{"doha-opening", "Opening Doha", "has-puranic-context", "{% if doha_opening %}"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestIndexPage_IndividualNumericUsesLiteral(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	sections := []section.Section{{
		Prefix:   "doha",
		VerseIDs: []string{"doha-01", "doha-02"},
	}}
	html := GenerateIndexPage("test", config, sections)
	if !strings.Contains(html, "Doha 1") || !strings.Contains(html, "Doha 2") {
		t.Error("missing literal numbering from suffix")
	}
}

func TestAboutSection_Placeholder(t *testing.T) {
	html := aboutSection(project.CollectionConfig{})
	for _, want := range []string{"about-section-compact", "<summary>", "▶", "TODO"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestAboutSection_WithDescription(t *testing.T) {
	config := project.CollectionConfig{
		NameEn:        "Test",
		PermalinkBase: "/test/",
		DescriptionEn: project.Paragraphs{"First paragraph.", "Second paragraph."},
		DescriptionHi: project.Paragraphs{"पहला अनुच्छेद।", "दूसरा अनुच्छेद।"},
	}
	html := GenerateIndexPage("test", config, nil)
	for _, want := range []string{"First paragraph.", "Second paragraph.", "पहला अनुच्छेद।"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(html, "TODO") {
		t.Error("placeholder rendered despite description")
	}
}

func TestIndexPage_Deterministic(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	sections := []section.Section{{
		Prefix:   "chaupai",
		VerseIDs: []string{"chaupai-01", "chaupai-02", "chaupai-03", "chaupai-04"},
		IsLoop:   true,
	}}
	a := GenerateIndexPage("test", config, sections)
	b := GenerateIndexPage("test", config, sections)
	if a != b {
		t.Error("output is not deterministic")
	}
}

func TestFullTextPage_Frontmatter(t *testing.T) {
	config := project.CollectionConfig{
		NameEn:        "Bajrang Baan",
		NameHi:        "बजरंग बाण",
		PermalinkBase: "/bajrang-baan/",
	}
	html := GenerateFullTextPage("bajrang-baan", config)
	for _, want := range []string{"layout: default", "collection_key: bajrang-baan", "Full Text"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestFullTextPage_Toggles(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateFullTextPage("test", config)
	for _, want := range []string{"toggle-devanagari", "toggle-transliteration", "toggle-translation", "toggle-word-meanings"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	if !strings.Contains(html, `id="toggle-devanagari" checked onchange="toggleSection('devanagari-content', this.checked)"`) {
		t.Error("devanagari toggle is not checked by default or not wired to devanagari-content")
	}
}

func TestFullTextPage_PrintButton(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateFullTextPage("test", config)
	if !strings.Contains(html, "window.print()") {
		t.Error("missing print trigger")
	}
}

func TestFullTextPage_BackLink(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateFullTextPage("test", config)
	if !strings.Contains(html, "/test/") {
		t.Error("missing permalink back target")
	}
	if !strings.Contains(html, "Back to Index") {
		t.Error("missing back link text")
	}
}

func TestFullTextPage_ToggleJS(t *testing.T) {
	config := project.CollectionConfig{NameEn: "Test", PermalinkBase: "/test/"}
	html := GenerateFullTextPage("test", config)
	for _, want := range []string{"toggleSection", "devanagari-content", "transliteration-content"} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}
