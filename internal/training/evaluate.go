// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/tomtom215/moodflix/internal/codec"
)

// ErrReportUnavailable is set on an Evaluation when the per-class report
// could not be built. The run continues with the reduced summary.
var ErrReportUnavailable = errors.New("per-class report unavailable")

// ClassReport holds held-out metrics for one movie.
type ClassReport struct {
	Label     string  `json:"label"`
	Code      int     `json:"code"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Averages aggregates ClassReport rows.
type Averages struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// ClassSummary is reported instead of the per-class table when the
// classifier predicted movies that are absent from the held-out set.
type ClassSummary struct {
	TestClasses      int `json:"test_classes"`
	PredictedClasses int `json:"predicted_classes"`
}

// Evaluation is the held-out score of a trained classifier.
type Evaluation struct {
	Accuracy float64 `json:"accuracy"`
	Samples  int     `json:"samples"`

	Classes     []ClassReport `json:"classes,omitempty"`
	MacroAvg    *Averages     `json:"macro_avg,omitempty"`
	WeightedAvg *Averages     `json:"weighted_avg,omitempty"`

	Summary   *ClassSummary `json:"summary,omitempty"`
	ReportErr error         `json:"-"`
}

// Evaluate scores predictions against the held-out labels. Accuracy is
// always computed. labels names the codes in the report and may be nil.
func Evaluate(yTrue, yPred []int, labels *codec.Codec) (*Evaluation, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%d labels but %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, errors.New("no held-out examples to evaluate")
	}

	ev := &Evaluation{Samples: len(yTrue)}

	support := make(map[int]int)
	predicted := make(map[int]int)
	hits := make(map[int]int)
	correct := 0
	for i := range yTrue {
		support[yTrue[i]]++
		predicted[yPred[i]]++
		if yTrue[i] == yPred[i] {
			hits[yTrue[i]]++
			correct++
		}
	}
	ev.Accuracy = float64(correct) / float64(len(yTrue))

	var extra int
	for code := range predicted {
		if _, ok := support[code]; !ok {
			extra++
		}
	}
	if extra > 0 {
		ev.Summary = &ClassSummary{TestClasses: len(support), PredictedClasses: len(predicted)}
		ev.ReportErr = fmt.Errorf("%w: %d predicted movies are absent from the held-out set", ErrReportUnavailable, extra)
		return ev, nil
	}

	codes := make([]int, 0, len(support))
	for code := range support {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	macro := &Averages{}
	weighted := &Averages{}
	for _, code := range codes {
		row := ClassReport{
			Label:   labelName(labels, code),
			Code:    code,
			Support: support[code],
		}
		if predicted[code] > 0 {
			row.Precision = float64(hits[code]) / float64(predicted[code])
		}
		row.Recall = float64(hits[code]) / float64(support[code])
		if row.Precision+row.Recall > 0 {
			row.F1 = 2 * row.Precision * row.Recall / (row.Precision + row.Recall)
		}
		ev.Classes = append(ev.Classes, row)

		macro.Precision += row.Precision
		macro.Recall += row.Recall
		macro.F1 += row.F1
		w := float64(row.Support)
		weighted.Precision += w * row.Precision
		weighted.Recall += w * row.Recall
		weighted.F1 += w * row.F1
	}

	k := float64(len(codes))
	n := float64(len(yTrue))
	macro.Precision /= k
	macro.Recall /= k
	macro.F1 /= k
	macro.Support = len(yTrue)
	weighted.Precision /= n
	weighted.Recall /= n
	weighted.F1 /= n
	weighted.Support = len(yTrue)

	ev.MacroAvg = macro
	ev.WeightedAvg = weighted
	return ev, nil
}

func labelName(labels *codec.Codec, code int) string {
	if labels != nil {
		if name, err := labels.Decode(code); err == nil {
			return name
		}
	}
	return strconv.Itoa(code)
}
