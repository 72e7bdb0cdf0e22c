// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteCSV writes the cleaned dataset: the source header (or the canonical
// header when the source header is not seven columns wide) followed by one
// seven-field row per record. Descriptions containing commas are quoted.
func WriteCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)

	header := res.Header
	if len(header) != len(Header) {
		header = Header
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range res.Records {
		if err := cw.Write(res.Records[i].Fields()); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the cleaned dataset to path through a temporary file
// in the same directory, so readers never see a partial file.
func WriteCSVFile(path string, res *Result) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cleaned-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op once renamed

	if err := WriteCSV(tmp, res); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("publish cleaned dataset: %w", err)
	}
	return nil
}
