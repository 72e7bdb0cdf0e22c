// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// Encoding names the text encoding a source was decoded with.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Result is the outcome of normalizing one source.
type Result struct {
	// Header is the first row of the source, as read.
	Header []string

	// Records holds every repaired row, in source order.
	Records []Record

	// Malformed holds one entry per skipped row.
	Malformed []MalformedRecordError

	// RawRows counts data rows in the source (header excluded).
	// RawRows == len(Records) + len(Malformed).
	RawRows int

	// Encoding is the encoding the source was decoded with.
	Encoding Encoding
}

// Normalizer repairs raw dataset rows into fixed-arity Records.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a Normalizer that logs skipped rows to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger.With().Str("component", "dataset").Logger()}
}

// Load reads and normalizes the file at path.
func (n *Normalizer) Load(path string) (*Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // dataset path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	res, err := n.NormalizeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("normalize dataset %s: %w", path, err)
	}
	return res, nil
}

// Normalize reads r to the end and normalizes its contents.
func (n *Normalizer) Normalize(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return n.NormalizeBytes(data)
}

// NormalizeBytes normalizes an in-memory source.
func (n *Normalizer) NormalizeBytes(data []byte) (*Result, error) {
	text, enc, err := decode(data)
	if err != nil {
		return nil, err
	}
	if enc != EncodingUTF8 {
		n.logger.Warn().Str("encoding", string(enc)).Msg("dataset is not valid UTF-8, decoded with fallback encoding")
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	res := &Result{Header: header, Encoding: enc}

	// csv.Reader drops empty lines silently; each one still counts as a
	// malformed row with no fields. next is the first unconsumed line.
	offset := reader.InputOffset()
	next := 1 + strings.Count(text[:offset], "\n")

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			n.skipBlank(res, next, next+strings.Count(text[offset:], "\n"))
			break
		}

		start := next
		var pe *csv.ParseError
		switch {
		case err == nil:
			start, _ = reader.FieldPos(0)
		case errors.As(err, &pe):
			start = pe.StartLine
		}
		n.skipBlank(res, next, start)

		end := reader.InputOffset()
		next += strings.Count(text[offset:end], "\n")
		offset = end

		res.RawRows++

		if err != nil {
			n.skip(res, MalformedRecordError{Line: start, Err: err})
			continue
		}

		if len(row) < MinFields {
			n.skip(res, MalformedRecordError{Line: start, Fields: len(row)})
			continue
		}

		res.Records = append(res.Records, repair(row))
	}

	if len(res.Malformed) > 0 {
		n.logger.Warn().
			Int("malformed_rows", len(res.Malformed)).
			Int("clean_rows", len(res.Records)).
			Msg("skipped malformed dataset rows")
	}

	return res, nil
}

// skipBlank records the empty lines in [from, to) as malformed rows.
func (n *Normalizer) skipBlank(res *Result, from, to int) {
	for line := from; line < to; line++ {
		res.RawRows++
		n.skip(res, MalformedRecordError{Line: line})
	}
}

func (n *Normalizer) skip(res *Result, mre MalformedRecordError) {
	res.Malformed = append(res.Malformed, mre)
	n.logger.Debug().Int("line", mre.Line).Int("fields", mre.Fields).Err(mre.Err).Msg("skipping malformed row")
}

// repair folds every field after the sixth back into the description.
func repair(row []string) Record {
	return Record{
		Title:       row[0],
		Mood:        row[1],
		Weather:     row[2],
		Day:         row[3],
		Year:        row[4],
		Genre:       row[5],
		Description: strings.Join(row[fixedFields:], ","),
	}
}

// decode returns data as a string, trying UTF-8 first and latin-1 second.
func decode(data []byte) (string, Encoding, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrUndecodable, err)
	}
	return string(decoded), EncodingLatin1, nil
}

// DropIncomplete removes records missing a title, mood, weather or day.
// It returns the kept records and the number dropped.
func DropIncomplete(records []Record) ([]Record, int) {
	kept := make([]Record, 0, len(records))
	for i := range records {
		if records[i].Complete() {
			kept = append(kept, records[i])
		}
	}
	return kept, len(records) - len(kept)
}
