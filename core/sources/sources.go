// Package sources maintains the SQLite index of source-text episodes
// used to ground context generation. The index records which
// scriptures have actually been ingested, so citations into anything
// else can be rejected, and stores per-episode embeddings for
// similarity lookup.
//
// Build modes, mirroring the rest of the toolchain:
//   - Default: pure Go modernc.org/sqlite
//   - -tags cgo_sqlite with CGO_ENABLED=1: mattn/go-sqlite3
package sources

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"sort"

	"versekit/core/context"
	"versekit/core/errors"
	"versekit/internal/fileutil"
)

// DriverName returns the registered SQL driver in use.
func DriverName() string { return driverName }

// DriverType returns "purego" or "cgo".
func DriverType() string { return driverType }

// Episode is one indexed scripture passage.
type Episode struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Section   string    `json:"section"`
	Title     string    `json:"title"`
	SummaryEn string    `json:"summary_en"`
	Keywords  []string  `json:"keywords"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// Match pairs an episode with its similarity score.
type Match struct {
	Episode Episode
	Score   float64
}

// Store wraps the episode index database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the project-relative index location.
func DefaultPath(projectDir string) string {
	return filepath.Join(projectDir, "data", "sources", "index.db")
}

// Open opens (creating if needed) the index at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS episodes (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	section    TEXT NOT NULL DEFAULT '',
	title      TEXT NOT NULL DEFAULT '',
	summary_en TEXT NOT NULL DEFAULT '',
	keywords   TEXT NOT NULL DEFAULT '[]',
	embedding  TEXT
);
CREATE INDEX IF NOT EXISTS idx_episodes_source ON episodes(source);
`)
	if err != nil {
		return errors.Wrap(err, "create schema")
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces one episode.
func (s *Store) Upsert(ep Episode) error {
	if ep.ID == "" {
		return errors.NewValidation("id", "episode ID is required")
	}
	if ep.Source == "" {
		return errors.NewValidation("source", "episode source is required")
	}
	keywords, err := json.Marshal(ep.Keywords)
	if err != nil {
		return errors.Wrap(err, "encode keywords")
	}
	var embedding any
	if len(ep.Embedding) > 0 {
		raw, err := json.Marshal(ep.Embedding)
		if err != nil {
			return errors.Wrap(err, "encode embedding")
		}
		embedding = string(raw)
	}
	_, err = s.db.Exec(`
INSERT INTO episodes (id, source, section, title, summary_en, keywords, embedding)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source = excluded.source,
	section = excluded.section,
	title = excluded.title,
	summary_en = excluded.summary_en,
	keywords = excluded.keywords,
	embedding = excluded.embedding`,
		ep.ID, ep.Source, ep.Section, ep.Title, ep.SummaryEn, string(keywords), embedding)
	if err != nil {
		return errors.Wrapf(err, "upsert episode %s", ep.ID)
	}
	return nil
}

// SourceNames returns the distinct scripture names in the index,
// sorted. This is the whitelist for cross-scripture citation checks.
func (s *Store) SourceNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT source FROM episodes`)
	if err != nil {
		return nil, errors.Wrap(err, "query source names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan source name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate source names")
	}
	sort.Strings(names)
	return names, nil
}

// Episodes returns all episodes for one source, sorted by ID.
func (s *Store) Episodes(source string) ([]Episode, error) {
	rows, err := s.db.Query(`
SELECT id, source, section, title, summary_en, keywords, embedding
FROM episodes WHERE source = ? ORDER BY id`, source)
	if err != nil {
		return nil, errors.Wrapf(err, "query episodes for %s", source)
	}
	defer rows.Close()
	return scanEpisodes(rows)
}

// AllEpisodes returns every indexed episode, sorted by ID.
func (s *Store) AllEpisodes() ([]Episode, error) {
	rows, err := s.db.Query(`
SELECT id, source, section, title, summary_en, keywords, embedding
FROM episodes ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query episodes")
	}
	defer rows.Close()
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]Episode, error) {
	var episodes []Episode
	for rows.Next() {
		var ep Episode
		var keywords string
		var embedding sql.NullString
		if err := rows.Scan(&ep.ID, &ep.Source, &ep.Section, &ep.Title, &ep.SummaryEn, &keywords, &embedding); err != nil {
			return nil, errors.Wrap(err, "scan episode")
		}
		if err := json.Unmarshal([]byte(keywords), &ep.Keywords); err != nil {
			return nil, errors.Wrapf(err, "decode keywords for %s", ep.ID)
		}
		if embedding.Valid {
			if err := json.Unmarshal([]byte(embedding.String), &ep.Embedding); err != nil {
				return nil, errors.Wrapf(err, "decode embedding for %s", ep.ID)
			}
		}
		episodes = append(episodes, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate episodes")
	}
	return episodes, nil
}

// Nearest ranks all embedded episodes against the query vector and
// returns the top limit matches by cosine similarity. The index is
// small enough that a full scan is fine.
func (s *Store) Nearest(query []float32, limit int) ([]Match, error) {
	episodes, err := s.AllEpisodes()
	if err != nil {
		return nil, err
	}
	var matches []Match
	for _, ep := range episodes {
		if len(ep.Embedding) != len(query) || len(query) == 0 {
			continue
		}
		matches = append(matches, Match{
			Episode: ep,
			Score:   context.CosineSimilarity(query, ep.Embedding),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
