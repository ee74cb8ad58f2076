package context

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Subject identifies who or what a collection is devoted to, used to
// narrow the episode corpus shown to the model.
type Subject struct {
	Name string
	Type string
}

// LoadProjectDefaults reads the defaults block from
// _data/verse-config.yml. A missing file or block yields an empty
// subject.
func LoadProjectDefaults(projectDir string) Subject {
	raw, err := os.ReadFile(filepath.Join(projectDir, "_data", "verse-config.yml"))
	if err != nil {
		return Subject{}
	}
	var cfg struct {
		Defaults struct {
			Subject     string `yaml:"subject"`
			SubjectType string `yaml:"subject_type"`
		} `yaml:"defaults"`
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Subject{}
	}
	return Subject{Name: cfg.Defaults.Subject, Type: cfg.Defaults.SubjectType}
}

// LoadCollectionSubject resolves the subject for a collection, with
// the collection's own entry taking precedence over project defaults.
func LoadCollectionSubject(projectDir, key string) Subject {
	raw, err := os.ReadFile(filepath.Join(projectDir, "_data", "collections.yml"))
	if err == nil {
		var collections map[string]struct {
			Subject     string `yaml:"subject"`
			SubjectType string `yaml:"subject_type"`
		}
		if yaml.Unmarshal(raw, &collections) == nil {
			if c, ok := collections[key]; ok && c.Subject != "" {
				return Subject{Name: c.Subject, Type: c.SubjectType}
			}
		}
	}
	return LoadProjectDefaults(projectDir)
}

// Episode is one indexed scripture episode available as grounding
// material for the model.
type Episode struct {
	ID        string   `json:"id" yaml:"id"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	SummaryEn string   `json:"summary_en" yaml:"summary_en"`
}

// FilterEpisodesBySubject keeps episodes whose keywords or summary
// mention the subject, case-insensitively. When nothing matches, the
// full list is returned so the model still has material to work with.
func FilterEpisodesBySubject(episodes []Episode, subject string) []Episode {
	if subject == "" {
		return episodes
	}
	needle := strings.ToLower(subject)
	var matched []Episode
	for _, ep := range episodes {
		if episodeMentions(ep, needle) {
			matched = append(matched, ep)
		}
	}
	if len(matched) == 0 {
		return episodes
	}
	return matched
}

func episodeMentions(ep Episode, needle string) bool {
	for _, kw := range ep.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(ep.SummaryEn), needle)
}

// CosineSimilarity computes the cosine of the angle between two
// equal-length vectors. Zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
