package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"versekit/core/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadCollections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_data", "collections.yml"), `
bajrang-baan:
  name_en: Bajrang Baan
  name_hi: "बजरंग बाण"
  icon: "🛡️"
  permalink_base: /bajrang-baan/
  subdirectory: bajrang-baan
  enabled: true
hanuman-chalisa:
  name_en: Hanuman Chalisa
  enabled: false
`)
	collections, err := LoadCollections(dir)
	if err != nil {
		t.Fatalf("LoadCollections: %v", err)
	}
	if len(collections) != 2 {
		t.Fatalf("got %d collections, want 2", len(collections))
	}
	bb := collections["bajrang-baan"]
	if bb.NameEn != "Bajrang Baan" || bb.NameHi != "बजरंग बाण" {
		t.Errorf("names = %q / %q", bb.NameEn, bb.NameHi)
	}
	if !bb.IsEnabled() {
		t.Error("bajrang-baan should be enabled")
	}
	if collections["hanuman-chalisa"].IsEnabled() {
		t.Error("hanuman-chalisa should be disabled")
	}
}

func TestLoadCollections_Missing(t *testing.T) {
	_, err := LoadCollections(t.TempDir())
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadCollection_UnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_data", "collections.yml"), "real:\n  name_en: Real\n")
	_, err := LoadCollection(dir, "nonexistent")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEnabledKeys(t *testing.T) {
	off := false
	collections := map[string]CollectionConfig{
		"b": {},
		"a": {},
		"c": {Enabled: &off},
	}
	got := EnabledKeys(collections)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("EnabledKeys = %v", got)
	}
}

func TestCollectionConfig_Defaults(t *testing.T) {
	var c CollectionConfig
	if got := c.Title("bajrang-baan"); got != "Bajrang Baan" {
		t.Errorf("Title = %q", got)
	}
	if got := c.Permalink("bajrang-baan"); got != "/bajrang-baan/" {
		t.Errorf("Permalink = %q", got)
	}
}

func TestPermalink_Normalized(t *testing.T) {
	c := CollectionConfig{PermalinkBase: "/chalisa//"}
	if got := c.Permalink("x"); got != "/chalisa/" {
		t.Errorf("Permalink = %q, want /chalisa/", got)
	}
}

func TestParagraphs_Scalar(t *testing.T) {
	var c CollectionConfig
	err := yaml.Unmarshal([]byte("description_en: |-\n  Para one\n\n  Para two\n"), &c)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual([]string(c.DescriptionEn), []string{"Para one", "Para two"}) {
		t.Errorf("DescriptionEn = %v", c.DescriptionEn)
	}
}

func TestParagraphs_List(t *testing.T) {
	var c CollectionConfig
	err := yaml.Unmarshal([]byte("description_en:\n  - Para one\n  - Para two\n"), &c)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual([]string(c.DescriptionEn), []string{"Para one", "Para two"}) {
		t.Errorf("DescriptionEn = %v", c.DescriptionEn)
	}
}

func TestLoadSequence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "verses", "bajrang-baan.yaml"),
		"_meta:\n  sequence:\n    - doha-opening\n    - chaupai-01\n    - doha-closing\n")
	got := LoadSequence(dir, "bajrang-baan")
	want := []string{"doha-opening", "chaupai-01", "doha-closing"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadSequence = %v, want %v", got, want)
	}
}

func TestLoadSequence_Absent(t *testing.T) {
	if got := LoadSequence(t.TempDir(), "bajrang-baan"); got != nil {
		t.Errorf("LoadSequence = %v, want nil", got)
	}
}

func TestLoadSequence_YmlFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "verses", "x.yml"),
		"_meta:\n  sequence:\n    - doha-01\n")
	if got := LoadSequence(dir, "x"); !reflect.DeepEqual(got, []string{"doha-01"}) {
		t.Errorf("LoadSequence = %v", got)
	}
}

func TestListVerseIDs(t *testing.T) {
	dir := t.TempDir()
	for _, stem := range []string{"doha-opening", "chaupai-02", "chaupai-01"} {
		writeFile(t, filepath.Join(dir, "_verses", "bajrang-baan", stem+".md"), "---\nverse_id: "+stem+"\n---\n")
	}
	writeFile(t, filepath.Join(dir, "_verses", "bajrang-baan", "notes.txt"), "ignored")

	ids, err := ListVerseIDs(dir, "bajrang-baan", CollectionConfig{})
	if err != nil {
		t.Fatalf("ListVerseIDs: %v", err)
	}
	want := []string{"chaupai-01", "chaupai-02", "doha-opening"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestListVerseIDs_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "_verses", "custom", "doha-01.md"), "---\n---\n")
	ids, err := ListVerseIDs(dir, "other-key", CollectionConfig{Subdirectory: "custom"})
	if err != nil {
		t.Fatalf("ListVerseIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"doha-01"}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestListVerseIDs_MissingDir(t *testing.T) {
	ids, err := ListVerseIDs(t.TempDir(), "nope", CollectionConfig{})
	if err != nil {
		t.Fatalf("ListVerseIDs: %v", err)
	}
	if ids != nil {
		t.Errorf("ids = %v, want nil", ids)
	}
}

func TestExtractFrontmatter(t *testing.T) {
	fm, body := ExtractFrontmatter("---\nverse_id: doha-01\ntitle_en: Invocation\n---\nBody text.\n")
	if fm["verse_id"] != "doha-01" || fm["title_en"] != "Invocation" {
		t.Errorf("fm = %v", fm)
	}
	if body != "Body text.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestExtractFrontmatter_NoDelimiter(t *testing.T) {
	fm, body := ExtractFrontmatter("just text\n")
	if fm != nil {
		t.Errorf("fm = %v, want nil", fm)
	}
	if body != "just text\n" {
		t.Errorf("body = %q", body)
	}
}

func TestExtractFrontmatter_Unclosed(t *testing.T) {
	content := "---\nverse_id: doha-01\n"
	fm, body := ExtractFrontmatter(content)
	if fm != nil || body != content {
		t.Errorf("fm = %v, body = %q", fm, body)
	}
}

func TestNestedValue(t *testing.T) {
	fm := map[string]any{
		"translation": map[string]any{"en": "text", "hi": "पाठ"},
		"verse_id":    "doha-01",
	}
	if v, ok := NestedValue(fm, "translation.en"); !ok || v != "text" {
		t.Errorf("translation.en = %v, %v", v, ok)
	}
	if v, ok := NestedValue(fm, "verse_id"); !ok || v != "doha-01" {
		t.Errorf("verse_id = %v, %v", v, ok)
	}
	if _, ok := NestedValue(fm, "translation.fr"); ok {
		t.Error("translation.fr should be absent")
	}
	if _, ok := NestedValue(fm, "verse_id.en"); ok {
		t.Error("descent through scalar should fail")
	}
}
