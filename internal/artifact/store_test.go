// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "models")
	store, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}

	if _, _, err := store.Load(ctx); !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("Load() on empty store error = %v, want ErrArtifactMissing", err)
	}
	if v := store.CurrentVersion(); v != 0 {
		t.Errorf("CurrentVersion() = %d, want 0", v)
	}

	for want := 1; want <= 3; want++ {
		a := testArtifact(t)
		manifest, err := store.Save(ctx, a)
		if err != nil {
			t.Fatalf("Save() error: %v", err)
		}
		if a.Version != want || manifest.Version != want {
			t.Errorf("Save() version = %d/%d, want %d", a.Version, manifest.Version, want)
		}
		if store.CurrentVersion() != want {
			t.Errorf("CurrentVersion() = %d, want %d", store.CurrentVersion(), want)
		}
	}

	loaded, manifest, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Version != 3 || manifest.Version != 3 {
		t.Errorf("loaded version %d, want 3", loaded.Version)
	}

	// No staging leftovers.
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if want := []string{"current", "v1", "v2", "v3"}; !reflect.DeepEqual(names, want) {
		t.Errorf("root entries = %v, want %v", names, want)
	}
}

func TestStore_ReopenContinuesVersions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()

	first, err := NewStore(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Save(ctx, testArtifact(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Save(ctx, testArtifact(t)); err != nil {
		t.Fatal(err)
	}

	second, err := NewStore(root)
	if err != nil {
		t.Fatal(err)
	}
	if second.LatestVersion() != 2 {
		t.Errorf("LatestVersion() = %d, want 2", second.LatestVersion())
	}
	a := testArtifact(t)
	if _, err := second.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	if a.Version != 3 {
		t.Errorf("Version = %d, want 3", a.Version)
	}

	old, _, err := second.LoadVersion(ctx, 1)
	if err != nil {
		t.Fatalf("LoadVersion(1) error: %v", err)
	}
	if old.Version != 1 {
		t.Errorf("LoadVersion(1).Version = %d", old.Version)
	}
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	store, err := NewStore(root)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.Save(ctx, testArtifact(t)); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune() removed %d, want 3", removed)
	}
	versions, err := store.Versions()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(versions, []int{5, 4}) {
		t.Errorf("Versions() = %v, want [5 4]", versions)
	}
	if _, _, err := store.Load(ctx); err != nil {
		t.Errorf("Load() after prune error: %v", err)
	}
}

func TestStore_PruneKeepsCurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	store, err := NewStore(root)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := store.Save(ctx, testArtifact(t)); err != nil {
			t.Fatal(err)
		}
	}

	// Roll current back to v1.
	if err := store.pointCurrentAt("v1"); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Prune(ctx, 1); err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	versions, err := store.Versions()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(versions, []int{3, 1}) {
		t.Errorf("Versions() = %v, want [3 1]", versions)
	}
}

func TestParseVersionDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"v1", 1, true},
		{"v42", 42, true},
		{"v0", 0, false},
		{"v", 0, false},
		{"version1", 0, false},
		{"current", 0, false},
		{".staging-123", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseVersionDir(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseVersionDir(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}
