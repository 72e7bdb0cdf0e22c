// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"fmt"

	"github.com/tomtom215/moodflix/internal/dataset"
)

// MinClassSupport is the number of examples a movie needs to be kept.
const MinClassSupport = 2

// FilterReport describes what FilterRareClasses removed.
type FilterReport struct {
	// DroppedLabels lists removed movies in order of first appearance.
	DroppedLabels []string

	// DroppedExamples is the number of examples removed.
	DroppedExamples int

	// Before and After are example counts.
	Before int
	After  int

	// ClassesBefore and ClassesAfter are distinct movie counts.
	ClassesBefore int
	ClassesAfter  int
}

// Err reports the dropped labels as ErrInsufficientClassSupport, or nil
// when nothing was dropped.
func (r *FilterReport) Err() error {
	if len(r.DroppedLabels) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d movies with fewer than %d examples",
		ErrInsufficientClassSupport, len(r.DroppedLabels), MinClassSupport)
}

// FilterRareClasses removes every example whose movie has a single
// occurrence, then refits all codecs on what is left so codes stay dense.
// When nothing is removed the input corpus is returned unchanged. An empty
// result is ErrEmptyCorpus.
func FilterRareClasses(c *Corpus) (*Corpus, FilterReport, error) {
	report := FilterReport{
		Before:        c.Len(),
		After:         c.Len(),
		ClassesBefore: c.Movie.Len(),
		ClassesAfter:  c.Movie.Len(),
	}

	support := c.Support()
	rare := make(map[int]bool)
	for i, label := range c.Y {
		if support[label] >= MinClassSupport || rare[label] {
			continue
		}
		rare[label] = true
		report.DroppedLabels = append(report.DroppedLabels, c.Records[i].Title)
	}
	if len(rare) == 0 {
		return c, report, nil
	}

	kept := make([]dataset.Record, 0, c.Len())
	for i, label := range c.Y {
		if !rare[label] {
			kept = append(kept, c.Records[i])
		}
	}
	report.DroppedExamples = c.Len() - len(kept)
	report.After = len(kept)
	report.ClassesAfter = report.ClassesBefore - len(rare)

	if len(kept) == 0 {
		return nil, report, fmt.Errorf("%w: %w", ErrEmptyCorpus, report.Err())
	}

	filtered, err := BuildCorpus(kept)
	if err != nil {
		return nil, report, fmt.Errorf("refit codecs: %w", err)
	}
	return filtered, report, nil
}
