// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const header = "movie_title,mood,weather,day,year,genre,description\n"

func newTestNormalizer() *Normalizer {
	return NewNormalizer(zerolog.Nop())
}

func TestNormalize_RejoinsDescription(t *testing.T) {
	t.Parallel()

	src := header +
		"Inception,Excited,Sunny,Weekend,2010,Sci-Fi,A thief, who steals secrets, dreams\n" +
		"Up,Happy,Rainy,Weekday,2009,Animation,Balloons\n"

	res, err := newTestNormalizer().Normalize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if len(res.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(res.Records))
	}
	got := res.Records[0]
	if got.Description != "A thief, who steals secrets, dreams" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Title != "Inception" || got.Mood != "Excited" || got.Weather != "Sunny" ||
		got.Day != "Weekend" || got.Year != "2010" || got.Genre != "Sci-Fi" {
		t.Errorf("positional fields wrong: %+v", got)
	}
	if res.Records[1].Description != "Balloons" {
		t.Errorf("Description = %q", res.Records[1].Description)
	}
	if res.Encoding != EncodingUTF8 {
		t.Errorf("Encoding = %q, want utf-8", res.Encoding)
	}
}

func TestNormalize_QuotedDescription(t *testing.T) {
	t.Parallel()

	src := header + `Amelie,Happy,Cloudy,Weekend,2001,Romance,"Quirky, charming"` + "\n"

	res, err := newTestNormalizer().Normalize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].Description != "Quirky, charming" {
		t.Fatalf("Records = %+v", res.Records)
	}
}

func TestNormalize_SkipsShortRows(t *testing.T) {
	t.Parallel()

	src := header +
		"Inception,Excited,Sunny,Weekend,2010,Sci-Fi,Dreams\n" +
		"Broken,Sad,Rainy\n" +
		"Also Broken,Sad,Rainy,Weekday,1999,Drama\n" +
		"Up,Happy,Rainy,Weekday,2009,Animation,Balloons\n"

	res, err := newTestNormalizer().Normalize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if len(res.Records) != 2 {
		t.Errorf("len(Records) = %d, want 2", len(res.Records))
	}
	if len(res.Malformed) != 2 {
		t.Fatalf("len(Malformed) = %d, want 2", len(res.Malformed))
	}
	if res.Malformed[0].Line != 3 || res.Malformed[0].Fields != 3 {
		t.Errorf("Malformed[0] = %+v, want line 3 with 3 fields", res.Malformed[0])
	}
	if res.Malformed[1].Line != 4 || res.Malformed[1].Fields != 6 {
		t.Errorf("Malformed[1] = %+v, want line 4 with 6 fields", res.Malformed[1])
	}
	if !errors.Is(&res.Malformed[0], ErrMalformedRecord) {
		t.Error("MalformedRecordError should match ErrMalformedRecord")
	}
}

func TestNormalize_MalformedCountInvariant(t *testing.T) {
	t.Parallel()

	rows := []string{
		"A,Happy,Sunny,Weekend,2000,Drama,d",
		"B,Happy",
		"C,Sad,Rainy,Weekday,2001,Comedy,x,y,z",
		"",
		"D",
		"E,Sad,Rainy,Weekday,2001,Comedy,",
		"short,row",
	}
	src := header + strings.Join(rows, "\n") + "\n"

	res, err := newTestNormalizer().Normalize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	rawLines := len(rows) + 1
	cleanedLines := len(res.Records) + 1
	if len(res.Malformed) != rawLines-cleanedLines {
		t.Errorf("malformed = %d, want raw(%d) - cleaned(%d) = %d",
			len(res.Malformed), rawLines, cleanedLines, rawLines-cleanedLines)
	}
	if res.RawRows != len(res.Records)+len(res.Malformed) {
		t.Errorf("RawRows = %d, want %d", res.RawRows, len(res.Records)+len(res.Malformed))
	}
}

func TestNormalize_BlankLinesAreMalformed(t *testing.T) {
	t.Parallel()

	src := header +
		"A,Happy,Sunny,Weekend,2000,Drama,d\r\n" +
		"\r\n" +
		"B,Sad,Rainy,Weekday,2001,Comedy,\"two\nlines\"\n" +
		"\n" +
		"\n" +
		"C,Sad,Rainy,Weekday,2001,Comedy,x\n" +
		"\n"

	res, err := newTestNormalizer().Normalize(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if len(res.Records) != 3 {
		t.Fatalf("len(Records) = %d, want 3", len(res.Records))
	}
	var lines []int
	for _, m := range res.Malformed {
		if m.Fields != 0 || m.Err != nil {
			t.Errorf("blank line entry = %+v, want no fields and no error", m)
		}
		lines = append(lines, m.Line)
	}
	if want := []int{3, 6, 7, 9}; !reflect.DeepEqual(lines, want) {
		t.Errorf("malformed lines = %v, want %v", lines, want)
	}
	if res.RawRows != 7 {
		t.Errorf("RawRows = %d, want 7", res.RawRows)
	}
}

func TestNormalize_Latin1Fallback(t *testing.T) {
	t.Parallel()

	// "Amélie" with é encoded as the single latin-1 byte 0xE9.
	src := []byte(header)
	src = append(src, []byte("Am")...)
	src = append(src, 0xE9)
	src = append(src, []byte("lie,Happy,Sunny,Weekend,2001,Romance,Paris\n")...)

	res, err := newTestNormalizer().NormalizeBytes(src)
	if err != nil {
		t.Fatalf("NormalizeBytes() error: %v", err)
	}
	if res.Encoding != EncodingLatin1 {
		t.Errorf("Encoding = %q, want latin-1", res.Encoding)
	}
	if len(res.Records) != 1 || res.Records[0].Title != "Amélie" {
		t.Fatalf("Records = %+v", res.Records)
	}
}

func TestNormalize_StripsBOM(t *testing.T) {
	t.Parallel()

	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte(header+"Up,Happy,Rainy,Weekday,2009,Animation,Balloons\n")...)

	res, err := newTestNormalizer().NormalizeBytes(src)
	if err != nil {
		t.Fatalf("NormalizeBytes() error: %v", err)
	}
	if res.Header[0] != ColumnTitle {
		t.Errorf("Header[0] = %q, want %q", res.Header[0], ColumnTitle)
	}
}

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	_, err := newTestNormalizer().Normalize(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("Normalize(\"\") error = %v, want ErrEmptyDataset", err)
	}
}

func TestNormalize_HeaderOnly(t *testing.T) {
	t.Parallel()

	res, err := newTestNormalizer().Normalize(strings.NewReader(header))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Records) != 0 || res.RawRows != 0 {
		t.Errorf("expected no rows, got %+v", res)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(header+"Up,Happy,Rainy,Weekday,2009,Animation,Balloons\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := newTestNormalizer().Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(res.Records) != 1 {
		t.Errorf("len(Records) = %d, want 1", len(res.Records))
	}

	if _, err := newTestNormalizer().Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Load() on missing file should fail")
	}
}

func TestDropIncomplete(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Title: "A", Mood: "Happy", Weather: "Sunny", Day: "Weekend"},
		{Title: "", Mood: "Happy", Weather: "Sunny", Day: "Weekend"},
		{Title: "C", Mood: "Happy", Weather: "", Day: "Weekend"},
		{Title: "D", Mood: "Sad", Weather: "Rainy", Day: "Weekday", Year: "", Genre: ""},
	}

	kept, dropped := DropIncomplete(records)
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(kept) != 2 || kept[0].Title != "A" || kept[1].Title != "D" {
		t.Errorf("kept = %+v", kept)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	src := header +
		"Inception,Excited,Sunny,Weekend,2010,Sci-Fi,A thief, who steals secrets\n" +
		"Short,Row\n"

	n := newTestNormalizer()
	res, err := n.Normalize(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, res); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	again, err := n.Normalize(&buf)
	if err != nil {
		t.Fatalf("re-normalize error: %v", err)
	}
	if len(again.Malformed) != 0 {
		t.Errorf("cleaned output has %d malformed rows", len(again.Malformed))
	}
	if len(again.Records) != 1 || again.Records[0] != res.Records[0] {
		t.Errorf("round trip mismatch: %+v vs %+v", again.Records, res.Records)
	}
}

func TestWriteCSVFile(t *testing.T) {
	t.Parallel()

	res := &Result{
		Header:  []string{"only", "three", "cols"},
		Records: []Record{{Title: "Up", Mood: "Happy", Weather: "Rainy", Day: "Weekday", Description: "x"}},
	}
	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	if err := WriteCSVFile(path, res); err != nil {
		t.Fatalf("WriteCSVFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), header) {
		t.Errorf("expected canonical header, got %q", string(data))
	}
}
