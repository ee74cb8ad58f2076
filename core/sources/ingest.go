package sources

import (
	"os"

	"gopkg.in/yaml.v3"

	"versekit/core/errors"
)

// episodeDoc is the YAML shape of an episode file: either a bare list
// of episodes or a mapping with an episodes key.
type episodeDoc struct {
	Episodes []episodeYAML `yaml:"episodes"`
}

type episodeYAML struct {
	ID        string   `yaml:"id"`
	Section   string   `yaml:"section"`
	Title     string   `yaml:"title"`
	SummaryEn string   `yaml:"summary_en"`
	Keywords  []string `yaml:"keywords"`
}

// IndexFile reads episodes from a YAML file and upserts them under the
// given source name. Returns the number of episodes indexed.
func IndexFile(s *Store, path, sourceName string) (int, error) {
	if sourceName == "" {
		return 0, errors.NewValidation("name", "source name is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.NewIO("read", path, err)
	}

	var entries []episodeYAML
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		var doc episodeDoc
		if err2 := yaml.Unmarshal(raw, &doc); err2 != nil {
			return 0, errors.NewParse("YAML", path, err.Error())
		}
		entries = doc.Episodes
	}

	count := 0
	for _, e := range entries {
		ep := Episode{
			ID:        e.ID,
			Source:    sourceName,
			Section:   e.Section,
			Title:     e.Title,
			SummaryEn: e.SummaryEn,
			Keywords:  e.Keywords,
		}
		if err := s.Upsert(ep); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
