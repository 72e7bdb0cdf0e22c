// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package artifact

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodflix/internal/codec"
)

// Bundle file names.
const (
	FileClassifier   = "classifier.gob.gz"
	FileMoodCodec    = "mood_codec.gob.gz"
	FileWeatherCodec = "weather_codec.gob.gz"
	FileDayCodec     = "day_codec.gob.gz"
	FileMovieCodec   = "movie_codec.gob.gz"
	FileMetadata     = "movie_metadata.json"
	FileMappings     = "encoder_mappings.json"
	FileManifest     = "manifest.json"
)

// RequiredFiles lists every file a complete bundle contains.
var RequiredFiles = []string{
	FileClassifier,
	FileMoodCodec,
	FileWeatherCodec,
	FileDayCodec,
	FileMovieCodec,
	FileMetadata,
	FileMappings,
	FileManifest,
}

// ManifestFormat is the current manifest format version.
const ManifestFormat = 1

// Manifest describes a saved bundle.
type Manifest struct {
	// Format is the manifest format version.
	Format int `json:"format"`

	// Version is the store version (monotonically increasing).
	Version int `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the bundle was written.
	SavedAt time.Time `json:"saved_at"`

	// Checksums maps each gob component file to the SHA-256 of its
	// uncompressed content.
	Checksums map[string]string `json:"checksums"`

	// SizeBytes is the total compressed size of the gob components.
	SizeBytes int64 `json:"size_bytes"`

	Classes int `json:"classes"`
	Moods   int `json:"moods"`
	Weather int `json:"weather"`
	Days    int `json:"days"`
	Movies  int `json:"movies_with_metadata"`
}

// classifierFile wraps the classifier so gob records its concrete type.
type classifierFile struct {
	Classifier Classifier
}

// WriteBundle writes every component of a into dir, which must exist. The
// files are synced before WriteBundle returns.
func WriteBundle(dir string, a *Artifact, version int) (*Manifest, error) {
	manifest := &Manifest{
		Format:    ManifestFormat,
		Version:   version,
		TrainedAt: a.TrainedAt,
		SavedAt:   time.Now().UTC(),
		Checksums: make(map[string]string, 5),
		Classes:   a.Classifier.NumClasses(),
		Moods:     a.Mood.Len(),
		Weather:   a.Weather.Len(),
		Days:      a.Day.Len(),
		Movies:    len(a.Movies),
	}

	gobComponents := []struct {
		file  string
		value interface{}
	}{
		{FileClassifier, &classifierFile{Classifier: a.Classifier}},
		{FileMoodCodec, a.Mood},
		{FileWeatherCodec, a.Weather},
		{FileDayCodec, a.Day},
		{FileMovieCodec, a.Movie},
	}
	for _, c := range gobComponents {
		compressed, checksum, err := encodeComponent(c.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", c.file, err)
		}
		if err := writeFileSync(filepath.Join(dir, c.file), compressed); err != nil {
			return nil, err
		}
		manifest.Checksums[c.file] = checksum
		manifest.SizeBytes += int64(len(compressed))
	}

	movies := a.Movies
	if movies == nil {
		movies = []Movie{}
	}
	jsonComponents := []struct {
		file  string
		value interface{}
	}{
		{FileMetadata, movies},
		{FileMappings, a.Mappings()},
		{FileManifest, manifest},
	}
	for _, c := range jsonComponents {
		data, err := json.MarshalIndent(c.value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", c.file, err)
		}
		if err := writeFileSync(filepath.Join(dir, c.file), data); err != nil {
			return nil, err
		}
	}

	return manifest, nil
}

// LoadBundle reads and validates the bundle in dir.
func LoadBundle(dir string) (*Artifact, *Manifest, error) {
	var missing []string
	for _, f := range RequiredFiles {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, f)
				continue
			}
			return nil, nil, fmt.Errorf("stat %s: %w", f, err)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingError{Dir: dir, Components: missing}
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(dir, FileManifest), &manifest); err != nil {
		return nil, nil, inconsistent(FileManifest, "unreadable", err)
	}

	var cf classifierFile
	mood, weather, day, movie := &codec.Codec{}, &codec.Codec{}, &codec.Codec{}, &codec.Codec{}
	gobComponents := []struct {
		file   string
		target interface{}
	}{
		{FileClassifier, &cf},
		{FileMoodCodec, mood},
		{FileWeatherCodec, weather},
		{FileDayCodec, day},
		{FileMovieCodec, movie},
	}
	for _, c := range gobComponents {
		if err := decodeComponent(filepath.Join(dir, c.file), manifest.Checksums[c.file], c.target); err != nil {
			return nil, nil, inconsistent(c.file, "failed integrity check", err)
		}
	}

	var movies []Movie
	if err := readJSON(filepath.Join(dir, FileMetadata), &movies); err != nil {
		return nil, nil, inconsistent(FileMetadata, "unreadable", err)
	}

	a, err := New(cf.Classifier, mood, weather, day, movie, movies, manifest.TrainedAt)
	if err != nil {
		return nil, nil, err
	}
	a.Version = manifest.Version

	var mappings EncoderMappings
	if err := readJSON(filepath.Join(dir, FileMappings), &mappings); err != nil {
		return nil, nil, inconsistent(FileMappings, "unreadable", err)
	}
	if !reflect.DeepEqual(mappings, a.Mappings()) {
		return nil, nil, inconsistent(FileMappings, "does not match codecs", nil)
	}
	if manifest.Classes != a.Classifier.NumClasses() || manifest.Moods != a.Mood.Len() ||
		manifest.Weather != a.Weather.Len() || manifest.Days != a.Day.Len() {
		return nil, nil, inconsistent(FileManifest, "counts do not match components", nil)
	}

	return a, &manifest, nil
}

// encodeComponent gob-encodes v and returns the gzip-compressed bytes and
// the hex SHA-256 of the uncompressed encoding.
func encodeComponent(v interface{}) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, "", fmt.Errorf("gob encode: %w", err)
	}
	raw := buf.Bytes()
	hash := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return nil, "", fmt.Errorf("compress: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize compression: %w", err)
	}
	return compressed.Bytes(), hex.EncodeToString(hash[:]), nil
}

// decodeComponent reverses encodeComponent, verifying the checksum before
// decoding into target.
func decodeComponent(path, wantChecksum string, target interface{}) error {
	if wantChecksum == "" {
		return errors.New("no checksum recorded in manifest")
	}

	f, err := os.Open(path) //nolint:gosec // path is built from the store root and fixed file names
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if got := hex.EncodeToString(hash[:]); got != wantChecksum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", wantChecksum, got)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return fmt.Errorf("gob decode: %w", err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is built from the store root and fixed file names
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640) //nolint:gosec // path is built from the store root
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close() //nolint:errcheck // sync error takes precedence
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
