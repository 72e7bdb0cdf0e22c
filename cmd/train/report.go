// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/registry"
	"github.com/tomtom215/moodflix/internal/training"
)

// droppedShown caps how many dropped movies the report names.
const droppedShown = 5

// writeReport prints a human-readable summary of a training run. bundle is
// the published version directory, or empty when nothing was published.
func writeReport(w io.Writer, s *training.Summary, bundle string, run *registry.Run) {
	fmt.Fprintf(w, "Dataset:            %s (%s)\n", s.DatasetPath, s.Encoding)
	fmt.Fprintf(w, "Rows read:          %d (%d malformed skipped)\n", s.RawRows, s.MalformedRows)
	fmt.Fprintf(w, "Missing required:   %d removed, %d rows left\n", s.MissingRequired, s.Rows)
	fmt.Fprintf(w, "Unique movies:      %d\n", s.UniqueMovies)

	if n := len(s.Filter.DroppedLabels); n > 0 {
		fmt.Fprintf(w, "Single-occurrence:  %d movies removed (%d rows)\n", n, s.Filter.DroppedExamples)
		for i, label := range s.Filter.DroppedLabels {
			if i == droppedShown {
				fmt.Fprintf(w, "  ... and %d more\n", n-droppedShown)
				break
			}
			fmt.Fprintf(w, "  - %s\n", label)
		}
		fmt.Fprintf(w, "After filtering:    %d rows, %d movies\n", s.Filter.After, s.Filter.ClassesAfter)
	}

	fmt.Fprintf(w, "Split:              %s, train=%d test=%d\n", s.Strategy, s.TrainSize, s.TestSize)
	if s.SplitReason != "" {
		fmt.Fprintf(w, "  reason: %s\n", s.SplitReason)
	}

	if ev := s.Evaluation; ev != nil {
		fmt.Fprintf(w, "\nModel accuracy:     %.4f (%d samples)\n\n", ev.Accuracy, ev.Samples)
		writeClassReport(w, ev)
	}

	if bundle != "" {
		fmt.Fprintf(w, "\nSaved artifact version %d to %s:\n", run.ArtifactVersion, bundle)
		for _, f := range artifact.RequiredFiles {
			fmt.Fprintf(w, "  - %s\n", filepath.Join(bundle, f))
		}
	}
	if run != nil && run.ID != "" {
		fmt.Fprintf(w, "\nRun %s: %s\n", run.ID, run.Status)
	}
}

func writeClassReport(w io.Writer, ev *training.Evaluation) {
	if ev.ReportErr != nil {
		fmt.Fprintf(w, "Could not generate full classification report: %v\n", ev.ReportErr)
		if ev.Summary != nil {
			fmt.Fprintf(w, "Number of classes in test set: %d\n", ev.Summary.TestClasses)
			fmt.Fprintf(w, "Number of predicted classes:   %d\n", ev.Summary.PredictedClasses)
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "movie\tprecision\trecall\tf1-score\tsupport\t")
	for _, row := range ev.Classes {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", row.Label, row.Precision, row.Recall, row.F1, row.Support)
	}
	if ev.MacroAvg != nil {
		fmt.Fprintf(tw, "macro avg\t%.2f\t%.2f\t%.2f\t%d\t\n", ev.MacroAvg.Precision, ev.MacroAvg.Recall, ev.MacroAvg.F1, ev.MacroAvg.Support)
	}
	if ev.WeightedAvg != nil {
		fmt.Fprintf(tw, "weighted avg\t%.2f\t%.2f\t%.2f\t%d\t\n", ev.WeightedAvg.Precision, ev.WeightedAvg.Recall, ev.WeightedAvg.F1, ev.WeightedAvg.Support)
	}
	//nolint:errcheck // writing to an in-memory or terminal writer
	_ = tw.Flush()
}
