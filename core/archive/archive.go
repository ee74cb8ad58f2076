// Package archive exports a collection's source material as a tar.xz
// bundle. The archive opens with a manifest.json recording every
// entry's size and BLAKE3 hash so a bundle can be verified without
// unpacking it.
package archive

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ulikunitz/xz"

	"versekit/core/errors"
	"versekit/core/project"
	"versekit/internal/fileutil"
)

// ManifestEntry describes one archived file.
type ManifestEntry struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Blake3 string `json:"blake3"`
}

// Manifest is the archive's table of contents.
type Manifest struct {
	CollectionKey string          `json:"collection_key"`
	CreatedAt     time.Time       `json:"created_at"`
	Entries       []ManifestEntry `json:"entries"`
}

// Export packs the collection's verse files and canonical YAML into a
// tar.xz archive at outPath, creating parent directories as needed.
// Entries are ordered by archive path, so identical inputs produce the
// same member sequence.
func Export(projectDir, key string, config project.CollectionConfig, outPath string) (*Manifest, error) {
	files, err := collectFiles(projectDir, key, config)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NewNotFound("collection content", key)
	}

	manifest := &Manifest{CollectionKey: key, CreatedAt: time.Now().UTC()}
	for _, f := range files {
		info, err := os.Stat(f.src)
		if err != nil {
			return nil, errors.NewIO("stat", f.src, err)
		}
		hash, err := fileutil.HashFile(f.src)
		if err != nil {
			return nil, err
		}
		manifest.Entries = append(manifest.Entries, ManifestEntry{
			Path:   f.dst,
			Size:   info.Size(),
			Blake3: hash,
		})
	}

	if err := fileutil.EnsureDir(filepath.Dir(outPath)); err != nil {
		return nil, err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return nil, errors.NewIO("create", outPath, err)
	}
	defer out.Close()

	xw, err := xz.NewWriter(out)
	if err != nil {
		return nil, errors.Wrap(err, "create xz writer")
	}
	tw := tar.NewWriter(xw)

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode manifest")
	}
	if err := writeEntry(tw, "manifest.json", manifestJSON, manifest.CreatedAt); err != nil {
		return nil, err
	}
	for _, f := range files {
		data, err := os.ReadFile(f.src)
		if err != nil {
			return nil, errors.NewIO("read", f.src, err)
		}
		if err := writeEntry(tw, f.dst, data, manifest.CreatedAt); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, errors.Wrap(err, "close tar writer")
	}
	if err := xw.Close(); err != nil {
		return nil, errors.Wrap(err, "close xz writer")
	}
	return manifest, nil
}

type archiveFile struct {
	src string
	dst string
}

// collectFiles gathers the verse markdown files plus the canonical
// YAML record, sorted by archive path.
func collectFiles(projectDir, key string, config project.CollectionConfig) ([]archiveFile, error) {
	var files []archiveFile

	versesDir := config.VersesDir(projectDir, key)
	mds, err := fileutil.FindMarkdownFiles(versesDir)
	if err != nil {
		return nil, err
	}
	for _, md := range mds {
		files = append(files, archiveFile{
			src: md,
			dst: filepath.ToSlash(filepath.Join("_verses", key, filepath.Base(md))),
		})
	}

	for _, ext := range []string{"yaml", "yml"} {
		src := filepath.Join(projectDir, "data", "verses", key+"."+ext)
		if fileutil.Exists(src) {
			files = append(files, archiveFile{
				src: src,
				dst: filepath.ToSlash(filepath.Join("data", "verses", key+"."+ext)),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].dst < files[j].dst })
	return files, nil
}

func writeEntry(tw *tar.Writer, name string, data []byte, modTime time.Time) error {
	header := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: modTime,
	}
	if err := tw.WriteHeader(header); err != nil {
		return errors.Wrapf(err, "write header %s", name)
	}
	if _, err := tw.Write(data); err != nil {
		return errors.Wrapf(err, "write entry %s", name)
	}
	return nil
}

// Verify reads every member of an exported archive and checks it
// against the manifest's recorded size and BLAKE3 hash.
func Verify(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewIO("open", path, err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "create xz reader")
	}
	tr := tar.NewReader(xr)

	var manifest *Manifest
	members := make(map[string]ManifestEntry)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read archive")
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return errors.Wrapf(err, "read entry %s", header.Name)
		}
		if header.Name == "manifest.json" {
			var m Manifest
			if err := json.Unmarshal(data, &m); err != nil {
				return errors.NewParse("JSON", "manifest.json", err.Error())
			}
			manifest = &m
			continue
		}
		members[header.Name] = ManifestEntry{
			Path:   header.Name,
			Size:   int64(len(data)),
			Blake3: fileutil.HashBytes(data),
		}
	}
	if manifest == nil {
		return errors.NewNotFound("manifest", path)
	}

	for _, want := range manifest.Entries {
		got, ok := members[want.Path]
		if !ok {
			return errors.NewNotFound("archive entry", want.Path)
		}
		if got.Size != want.Size {
			return errors.NewParse("archive", path,
				fmt.Sprintf("size mismatch for %s: manifest %d, entry %d", want.Path, want.Size, got.Size))
		}
		if got.Blake3 != want.Blake3 {
			return errors.NewParse("archive", path,
				fmt.Sprintf("hash mismatch for %s", want.Path))
		}
	}
	return nil
}

// ReadManifest extracts the manifest from an exported archive.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "create xz reader")
	}
	tr := tar.NewReader(xr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read archive")
		}
		if header.Name != "manifest.json" {
			continue
		}
		raw, err := io.ReadAll(tr)
		if err != nil {
			return nil, errors.Wrap(err, "read manifest")
		}
		var m Manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, errors.NewParse("JSON", "manifest.json", err.Error())
		}
		return &m, nil
	}
	return nil, errors.NewNotFound("manifest", path)
}
