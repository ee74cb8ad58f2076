// Package scaffold wires the project store, section detector, and page
// synthesizer together: resolve a collection's config and canonical
// sequence, detect sections, and write index.html plus full-text.html
// under the collection's permalink directory.
package scaffold

import (
	"os"
	"path/filepath"
	"strings"

	"versekit/core/errors"
	"versekit/core/page"
	"versekit/core/project"
	"versekit/core/section"
	"versekit/internal/logging"
)

// Result describes one scaffold run.
type Result struct {
	CollectionKey string
	IndexPath     string
	FullTextPath  string
	IndexWritten  bool
	FullWritten   bool
	Sections      int
	Verses        int
}

// Collection generates index.html and full-text.html for one
// collection. Each output file independently skips when it already
// exists, unless overwrite is set. An unknown collection key is an
// error; a collection with no verse files is not.
func Collection(projectDir, key string, overwrite bool) (Result, error) {
	config, err := project.LoadCollection(projectDir, key)
	if err != nil {
		return Result{}, err
	}
	return collection(projectDir, key, config, overwrite)
}

// All generates pages for every enabled collection in the registry.
func All(projectDir string, overwrite bool) ([]Result, error) {
	collections, err := project.LoadCollections(projectDir)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, key := range project.EnabledKeys(collections) {
		res, err := collection(projectDir, key, collections[key], overwrite)
		if err != nil {
			return results, errors.Wrapf(err, "scaffold %s", key)
		}
		results = append(results, res)
	}
	return results, nil
}

func collection(projectDir, key string, config project.CollectionConfig, overwrite bool) (Result, error) {
	ids, err := project.ListVerseIDs(projectDir, key, config)
	if err != nil {
		return Result{}, err
	}
	sequence := project.LoadSequence(projectDir, key)
	sections := section.Detect(ids, sequence)
	if len(sections) == 0 {
		logging.Warn("no verse files found, generating template with empty sections",
			"collection", key, "dir", config.VersesDir(projectDir, key))
	}

	outputDir := filepath.Join(projectDir, strings.Trim(config.Permalink(key), "/"))
	res := Result{
		CollectionKey: key,
		IndexPath:     filepath.Join(outputDir, "index.html"),
		FullTextPath:  filepath.Join(outputDir, "full-text.html"),
		Sections:      len(sections),
	}
	for _, s := range sections {
		res.Verses += len(s.VerseIDs)
	}

	res.IndexWritten, err = writeIfAllowed(res.IndexPath, page.GenerateIndexPage(key, config, sections), overwrite)
	if err != nil {
		return res, err
	}
	res.FullWritten, err = writeIfAllowed(res.FullTextPath, page.GenerateFullTextPage(key, config), overwrite)
	if err != nil {
		return res, err
	}

	logging.Scaffold(key, outputDir, res.Sections, res.Verses)
	return res, nil
}

// writeIfAllowed writes content to path, creating parent directories.
// An existing file is left untouched unless overwrite is set; the skip
// is a success, not an error.
func writeIfAllowed(path, content string, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			logging.Info("skipped existing file, use overwrite to regenerate", "path", path)
			return false, nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.NewIO("create directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, errors.NewIO("write", path, err)
	}
	return true, nil
}
