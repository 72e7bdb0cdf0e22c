// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// CurrentLink is the name of the symlink pointing at the live bundle.
const CurrentLink = "current"

// Store manages versioned bundles under a root directory.
type Store struct {
	root string
	mu   sync.Mutex

	// latest is the highest version present on disk.
	latest int
}

// NewStore opens (creating if needed) a store rooted at root.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	s := &Store{root: root}
	versions, err := s.versions()
	if err != nil {
		return nil, fmt.Errorf("scan existing bundles: %w", err)
	}
	if len(versions) > 0 {
		s.latest = versions[0]
	}
	return s, nil
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}

// CurrentPath returns the path of the "current" symlink.
func (s *Store) CurrentPath() string {
	return filepath.Join(s.root, CurrentLink)
}

// LatestVersion returns the highest version on disk, or 0.
func (s *Store) LatestVersion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Save writes a as the next version and publishes it as current. On
// success a.Version is set to the new version.
func (s *Store) Save(ctx context.Context, a *Artifact) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Another process (the training CLI) may have published since the
	// last scan.
	onDisk, err := s.versions()
	if err != nil {
		return nil, fmt.Errorf("scan existing bundles: %w", err)
	}
	if len(onDisk) > 0 && onDisk[0] > s.latest {
		s.latest = onDisk[0]
	}
	version := s.latest + 1

	tmpDir, err := os.MkdirTemp(s.root, ".staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }() //nolint:errcheck // no-op once renamed

	manifest, err := WriteBundle(tmpDir, a, version)
	if err != nil {
		return nil, fmt.Errorf("write bundle: %w", err)
	}
	if err := syncDir(tmpDir); err != nil {
		return nil, err
	}

	name := versionDir(version)
	if err := os.Rename(tmpDir, filepath.Join(s.root, name)); err != nil {
		return nil, fmt.Errorf("publish bundle %s: %w", name, err)
	}
	if err := s.pointCurrentAt(name); err != nil {
		return nil, err
	}

	s.latest = version
	a.Version = version
	return manifest, nil
}

// pointCurrentAt atomically replaces the current symlink with one
// targeting name (relative to root).
func (s *Store) pointCurrentAt(name string) error {
	tmpLink := filepath.Join(s.root, "."+CurrentLink+".tmp")
	_ = os.Remove(tmpLink) //nolint:errcheck // leftover from an interrupted publish

	if err := os.Symlink(name, tmpLink); err != nil {
		return fmt.Errorf("create current link: %w", err)
	}
	if err := os.Rename(tmpLink, s.CurrentPath()); err != nil {
		_ = os.Remove(tmpLink) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("swap current link: %w", err)
	}
	return syncDir(s.root)
}

// Load reads the bundle that "current" points at.
func (s *Store) Load(ctx context.Context) (*Artifact, *Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	target, err := os.Readlink(s.CurrentPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &MissingError{Dir: s.root, Components: []string{CurrentLink}}
		}
		return nil, nil, fmt.Errorf("resolve current bundle: %w", err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.root, target)
	}
	return LoadBundle(target)
}

// LoadVersion reads a specific version.
func (s *Store) LoadVersion(ctx context.Context, version int) (*Artifact, *Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return LoadBundle(filepath.Join(s.root, versionDir(version)))
}

// Versions returns the versions on disk, newest first.
func (s *Store) Versions() ([]int, error) {
	return s.versions()
}

// CurrentVersion returns the version "current" points at, or 0.
func (s *Store) CurrentVersion() int {
	target, err := os.Readlink(s.CurrentPath())
	if err != nil {
		return 0
	}
	v, ok := parseVersionDir(filepath.Base(target))
	if !ok {
		return 0
	}
	return v
}

// Prune removes old versions, keeping the newest keep (at least 1). The
// version "current" points at is never removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}
	versions, err := s.versions()
	if err != nil {
		return 0, fmt.Errorf("read directory: %w", err)
	}

	current := s.CurrentVersion()
	removed := 0
	for i := keep; i < len(versions); i++ {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if versions[i] == current {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, versionDir(versions[i]))); err != nil {
			return removed, fmt.Errorf("remove version %d: %w", versions[i], err)
		}
		removed++
	}
	return removed, nil
}

// versions scans root for v{N} directories, newest first.
func (s *Store) versions() ([]int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var versions []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if v, ok := parseVersionDir(entry.Name()); ok {
			versions = append(versions, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

func versionDir(version int) string {
	return "v" + strconv.Itoa(version)
}

// parseVersionDir extracts N from a directory name like "v12".
func parseVersionDir(name string) (int, bool) {
	if !strings.HasPrefix(name, "v") {
		return 0, false
	}
	v, err := strconv.Atoi(name[1:])
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

func syncDir(dir string) error {
	d, err := os.Open(dir) //nolint:gosec // dir is the store root or a staging directory under it
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}
	defer func() { _ = d.Close() }() //nolint:errcheck // read-only handle
	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", dir, err)
	}
	return nil
}
