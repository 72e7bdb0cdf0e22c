// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestBundle_RoundTrip(t *testing.T) {
	t.Parallel()

	a := testArtifact(t)
	dir := t.TempDir()

	written, err := WriteBundle(dir, a, 7)
	if err != nil {
		t.Fatalf("WriteBundle() error: %v", err)
	}
	if len(written.Checksums) != 5 {
		t.Errorf("manifest has %d checksums, want 5", len(written.Checksums))
	}

	loaded, manifest, err := LoadBundle(dir)
	if err != nil {
		t.Fatalf("LoadBundle() error: %v", err)
	}
	if loaded.Version != 7 || manifest.Version != 7 {
		t.Errorf("version = %d/%d, want 7", loaded.Version, manifest.Version)
	}
	if !loaded.TrainedAt.Equal(a.TrainedAt) {
		t.Errorf("TrainedAt = %v, want %v", loaded.TrainedAt, a.TrainedAt)
	}
	if !loaded.Mood.Equal(a.Mood) || !loaded.Weather.Equal(a.Weather) ||
		!loaded.Day.Equal(a.Day) || !loaded.Movie.Equal(a.Movie) {
		t.Error("codecs changed across the round trip")
	}
	if !reflect.DeepEqual(loaded.Movies, a.Movies) {
		t.Errorf("Movies = %+v, want %+v", loaded.Movies, a.Movies)
	}

	// Predictions survive the round trip.
	for _, x := range [][]int{{0, 0, 0}, {1, 1, 1}, {0, 1, 0}} {
		want, err := a.Classifier.Predict(x)
		if err != nil {
			t.Fatalf("Predict() error: %v", err)
		}
		got, err := loaded.Classifier.Predict(x)
		if err != nil {
			t.Fatalf("Predict() error: %v", err)
		}
		if got != want {
			t.Errorf("Predict(%v) = %d after reload, want %d", x, got, want)
		}
	}
	if _, ok := loaded.Classifier.(ProbabilityEstimator); !ok {
		t.Error("reloaded classifier lost PredictProba")
	}
}

func TestBundle_MetadataNulls(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := WriteBundle(dir, testArtifact(t), 1); err != nil {
		t.Fatalf("WriteBundle() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileMetadata))
	if err != nil {
		t.Fatal(err)
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	heat := rows[1]
	if heat["movie_title"] != "Heat" {
		t.Fatalf("row 1 = %v", heat)
	}
	for _, key := range []string{"year", "genre", "description"} {
		v, present := heat[key]
		if !present || v != nil {
			t.Errorf("%s = %v (present=%v), want null", key, v, present)
		}
	}
}

func TestLoadBundle_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := WriteBundle(dir, testArtifact(t), 1); err != nil {
		t.Fatalf("WriteBundle() error: %v", err)
	}
	for _, f := range []string{FileDayCodec, FileMetadata} {
		if err := os.Remove(filepath.Join(dir, f)); err != nil {
			t.Fatal(err)
		}
	}

	_, _, err := LoadBundle(dir)
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("LoadBundle() error = %v, want ErrArtifactMissing", err)
	}
	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error is %T, want *MissingError", err)
	}
	if !reflect.DeepEqual(missing.Components, []string{FileDayCodec, FileMetadata}) {
		t.Errorf("Components = %v", missing.Components)
	}
}

func TestLoadBundle_Inconsistent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, dir string)
	}{
		{
			name: "swapped codec",
			mutate: func(t *testing.T, dir string) {
				copyFile(t, filepath.Join(dir, FileMoodCodec), filepath.Join(dir, FileWeatherCodec))
			},
		},
		{
			name: "corrupt classifier",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, FileClassifier), []byte("not gzip"))
			},
		},
		{
			name: "mapping drift",
			mutate: func(t *testing.T, dir string) {
				path := filepath.Join(dir, FileMappings)
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatal(err)
				}
				writeFile(t, path, []byte(strings.Replace(string(data), "Heat", "Heat 2", 1)))
			},
		},
		{
			name: "unknown metadata title",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, FileMetadata), []byte(`[{"movie_title":"Jaws"}]`))
			},
		},
		{
			name: "garbage manifest",
			mutate: func(t *testing.T, dir string) {
				writeFile(t, filepath.Join(dir, FileManifest), []byte("{"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if _, err := WriteBundle(dir, testArtifact(t), 1); err != nil {
				t.Fatalf("WriteBundle() error: %v", err)
			}
			tt.mutate(t, dir)

			_, _, err := LoadBundle(dir)
			if !errors.Is(err, ErrArtifactInconsistent) {
				t.Errorf("LoadBundle() error = %v, want ErrArtifactInconsistent", err)
			}
		})
	}
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dst, data)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}
