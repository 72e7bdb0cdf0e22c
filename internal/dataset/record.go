// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package dataset

import (
	"errors"
	"fmt"
)

// Column names of the cleaned dataset, in order.
const (
	ColumnTitle       = "movie_title"
	ColumnMood        = "mood"
	ColumnWeather     = "weather"
	ColumnDay         = "day"
	ColumnYear        = "year"
	ColumnGenre       = "genre"
	ColumnDescription = "description"
)

// Header is the canonical header of a cleaned dataset.
var Header = []string{
	ColumnTitle, ColumnMood, ColumnWeather, ColumnDay,
	ColumnYear, ColumnGenre, ColumnDescription,
}

const (
	// fixedFields is the number of leading positional fields.
	fixedFields = 6

	// MinFields is the minimum field count of a repairable row.
	MinFields = fixedFields + 1
)

// Sentinel errors for the dataset package.
var (
	// ErrMalformedRecord marks a row that could not be repaired. It is
	// recoverable: the row is skipped and loading continues.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrEmptyDataset is returned when the source has no header row.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrUndecodable is returned when neither UTF-8 nor latin-1 decoding
	// produced usable text.
	ErrUndecodable = errors.New("dataset could not be decoded")
)

// Record is one cleaned row. All values are kept exactly as they appear in
// the source; empty strings stand for missing values.
type Record struct {
	Title       string
	Mood        string
	Weather     string
	Day         string
	Year        string
	Genre       string
	Description string
}

// Complete reports whether every column required for training is present.
func (r *Record) Complete() bool {
	return r.Title != "" && r.Mood != "" && r.Weather != "" && r.Day != ""
}

// Fields returns the record as a seven-field row in Header order.
func (r *Record) Fields() []string {
	return []string{r.Title, r.Mood, r.Weather, r.Day, r.Year, r.Genre, r.Description}
}

// MalformedRecordError describes a skipped row.
type MalformedRecordError struct {
	// Line is the 1-based line in the source where the row starts.
	Line int

	// Fields is the number of fields parsed from the row (0 if the row
	// could not be parsed at all).
	Fields int

	// Err is the underlying parse error, if any.
	Err error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: malformed record: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: malformed record: %d fields, need at least %d", e.Line, e.Fields, MinFields)
}

// Unwrap lets errors.Is match ErrMalformedRecord and the parse error.
func (e *MalformedRecordError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRecord, e.Err}
	}
	return []error{ErrMalformedRecord}
}
