package context

import (
	gocontext "context"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"versekit/core/errors"
	"versekit/internal/logging"
)

// Action reports what processing one verse did.
type Action string

const (
	ActionAdded       Action = "added"
	ActionRegenerated Action = "regenerated"
	ActionSkipped     Action = "skipped"
	ActionEmpty       Action = "empty"
)

// splitDoc separates the raw frontmatter block from the body. The
// block is returned without delimiters so it can be re-decoded as a
// yaml.Node, preserving key order on rewrite.
func splitDoc(content string) (block, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") {
		return "", content, false
	}
	rest := strings.TrimPrefix(content, "---\n")
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", content, false
	}
	return rest[:end], rest[end+len("\n---"):], true
}

// ProcessVerse generates and injects puranic_context for one verse
// file. Existing context is kept unless regenerate is set; a verse the
// model finds no content for is left untouched.
func ProcessVerse(ctx gocontext.Context, path string, gen Generator, regenerate bool, indexedSourceNames []string) (Action, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	block, body, ok := splitDoc(string(raw))
	if !ok {
		return "", errors.NewParse("frontmatter", path, "missing --- delimiters")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return "", errors.NewParse("YAML", path, err.Error())
	}
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return "", errors.NewParse("YAML", path, err.Error())
	}

	verseID := strings.TrimSuffix(lastPathPart(path), ".md")
	hadContext := fm["puranic_context"] != nil

	if hadContext && !regenerate {
		return ActionSkipped, nil
	}

	reply, err := gen.GenerateYAML(ctx, BuildPrompt(fm, verseID))
	if err != nil {
		return "", err
	}
	entries, err := ParseReply(reply)
	if err != nil {
		return "", err
	}
	entries = RejectUncited(entries, indexedSourceNames)
	if len(entries) == 0 {
		logging.Info("no cited Puranic content identified", "verse", verseID)
		return ActionEmpty, nil
	}
	entries = EnsureIDs(entries, verseID)

	if err := setMappingKey(&doc, "puranic_context", entries); err != nil {
		return "", err
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return "", errors.Wrap(err, "encode frontmatter")
	}
	content := "---\n" + string(out) + "---" + body
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.NewIO("write", path, err)
	}

	if hadContext {
		return ActionRegenerated, nil
	}
	return ActionAdded, nil
}

// setMappingKey replaces or appends a key in the document's top-level
// mapping without disturbing the order of existing keys.
func setMappingKey(doc *yaml.Node, key string, value any) error {
	var valNode yaml.Node
	if err := valNode.Encode(value); err != nil {
		return errors.Wrap(err, "encode "+key)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return errors.NewParse("YAML", key, "frontmatter is not a mapping")
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return errors.NewParse("YAML", key, "frontmatter is not a mapping")
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &valNode
			return nil
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&valNode)
	return nil
}

func lastPathPart(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
