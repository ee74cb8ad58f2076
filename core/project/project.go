// Package project reads the content repository layout: the collection
// registry at _data/collections.yml, canonical verse metadata under
// data/verses/, and the verse markdown files under _verses/.
package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"versekit/core/errors"
)

// Paragraphs holds an ordered list of description paragraphs. The YAML
// value may be either a scalar (split on blank lines) or a list of
// strings; both forms decode to the same slice.
type Paragraphs []string

func (p *Paragraphs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = splitParagraphs(s)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*p = Paragraphs(items)
		return nil
	default:
		return errors.NewParse("YAML", "description", "expected string or list of strings")
	}
}

func splitParagraphs(s string) Paragraphs {
	var out Paragraphs
	for _, part := range strings.Split(s, "\n\n") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CollectionConfig is one entry in _data/collections.yml.
type CollectionConfig struct {
	NameEn        string     `yaml:"name_en"`
	NameHi        string     `yaml:"name_hi"`
	Icon          string     `yaml:"icon"`
	PermalinkBase string     `yaml:"permalink_base"`
	Subdirectory  string     `yaml:"subdirectory"`
	Enabled       *bool      `yaml:"enabled"`
	DescriptionEn Paragraphs `yaml:"description_en"`
	DescriptionHi Paragraphs `yaml:"description_hi"`
}

// IsEnabled reports whether the collection participates in bulk
// operations. Absent means enabled.
func (c CollectionConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Title returns the English display name, falling back to a title-cased
// form of key when the config omits name_en.
func (c CollectionConfig) Title(key string) string {
	if c.NameEn != "" {
		return c.NameEn
	}
	words := strings.Split(strings.ReplaceAll(key, "-", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Permalink returns permalink_base normalized to exactly one trailing
// slash, defaulting to /<key>/ when unset.
func (c CollectionConfig) Permalink(key string) string {
	base := c.PermalinkBase
	if base == "" {
		base = "/" + key + "/"
	}
	return strings.TrimRight(base, "/") + "/"
}

// VersesDir returns the directory holding the collection's verse files.
// The subdirectory field overrides the default of the collection key.
func (c CollectionConfig) VersesDir(projectDir, key string) string {
	sub := c.Subdirectory
	if sub == "" {
		sub = key
	}
	return filepath.Join(projectDir, "_verses", sub)
}

// LoadCollections reads _data/collections.yml under projectDir.
func LoadCollections(projectDir string) (map[string]CollectionConfig, error) {
	path := filepath.Join(projectDir, "_data", "collections.yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("collections registry", path)
		}
		return nil, errors.NewIO("read", path, err)
	}
	var collections map[string]CollectionConfig
	if err := yaml.Unmarshal(raw, &collections); err != nil {
		return nil, errors.NewParse("YAML", path, err.Error())
	}
	if collections == nil {
		collections = map[string]CollectionConfig{}
	}
	return collections, nil
}

// LoadCollection resolves a single key, failing when the registry does
// not contain it.
func LoadCollection(projectDir, key string) (CollectionConfig, error) {
	collections, err := LoadCollections(projectDir)
	if err != nil {
		return CollectionConfig{}, err
	}
	config, ok := collections[key]
	if !ok {
		return CollectionConfig{}, errors.NewNotFound("collection", key)
	}
	return config, nil
}

// EnabledKeys returns the enabled collection keys in sorted order.
func EnabledKeys(collections map[string]CollectionConfig) []string {
	var keys []string
	for k, c := range collections {
		if c.IsEnabled() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// LoadSequence reads _meta.sequence from data/verses/{key}.yaml (or
// .yml). A missing file, missing field, or malformed record yields no
// sequence rather than an error.
func LoadSequence(projectDir, key string) []string {
	type meta struct {
		Meta struct {
			Sequence []string `yaml:"sequence"`
		} `yaml:"_meta"`
	}
	for _, ext := range []string{"yaml", "yml"} {
		path := filepath.Join(projectDir, "data", "verses", key+"."+ext)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var m meta
		if err := yaml.Unmarshal(raw, &m); err != nil {
			continue
		}
		if len(m.Meta.Sequence) > 0 {
			return m.Meta.Sequence
		}
	}
	return nil
}

// ListVerseIDs returns the sorted markdown file stems in the
// collection's verse directory. A missing directory yields an empty
// list, not an error.
func ListVerseIDs(projectDir string, key string, config CollectionConfig) ([]string, error) {
	dir := config.VersesDir(projectDir, key)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIO("list", dir, err)
	}
	var stems []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(stems)
	return stems, nil
}

// ExtractFrontmatter splits a verse markdown document into its YAML
// frontmatter and body. Documents without a leading --- delimiter, or
// with an unclosed block, yield a nil map and the whole input as body.
func ExtractFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return nil, content
	}
	rest := strings.TrimPrefix(content, "---\n")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, content
	}
	block := rest[:end]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, content
	}
	return fm, body
}

// NestedValue descends into a frontmatter map by dotted path, with an
// optional final language-keyed hop ("translation.en" finds either a
// scalar at translation or a map holding en).
func NestedValue(fm map[string]any, path string) (any, bool) {
	var cur any = fm
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
