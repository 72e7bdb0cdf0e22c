// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package codec

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrUnknownCategory is returned when a value was not part of the fit set.
var ErrUnknownCategory = errors.New("unknown category")

// ErrCodeOutOfRange is returned by Decode for codes outside [0, Len()).
var ErrCodeOutOfRange = errors.New("code out of range")

// UnknownCategoryError carries the rejected value and the values the codec
// does accept, so callers can surface valid options to clients.
type UnknownCategoryError struct {
	Feature string
	Value   string
	Known   []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Feature, e.Value)
}

// Unwrap lets errors.Is match ErrUnknownCategory.
func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// Codec is a bidirectional label <-> code table for a single feature.
type Codec struct {
	feature string
	labels  []string
	index   map[string]int
}

// Fit builds a codec from the distinct values in values, sorted by byte order.
// Duplicates are collapsed. The input slice is not retained.
func Fit(feature string, values []string) *Codec {
	seen := make(map[string]struct{}, len(values))
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		labels = append(labels, v)
	}
	sort.Strings(labels)

	return newCodec(feature, labels)
}

func newCodec(feature string, labels []string) *Codec {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return &Codec{feature: feature, labels: labels, index: index}
}

// Feature returns the name of the feature this codec encodes.
func (c *Codec) Feature() string {
	return c.feature
}

// Len returns the number of distinct labels.
func (c *Codec) Len() int {
	return len(c.labels)
}

// Contains reports whether v was part of the fit set.
func (c *Codec) Contains(v string) bool {
	_, ok := c.index[v]
	return ok
}

// Encode returns the code for v, or an *UnknownCategoryError.
func (c *Codec) Encode(v string) (int, error) {
	code, ok := c.index[v]
	if !ok {
		return 0, &UnknownCategoryError{Feature: c.feature, Value: v, Known: c.Labels()}
	}
	return code, nil
}

// EncodeAll encodes every value, failing on the first unknown one.
func (c *Codec) EncodeAll(values []string) ([]int, error) {
	codes := make([]int, len(values))
	for i, v := range values {
		code, err := c.Encode(v)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// Decode returns the label for code.
func (c *Codec) Decode(code int) (string, error) {
	if code < 0 || code >= len(c.labels) {
		return "", fmt.Errorf("%s code %d: %w", c.feature, code, ErrCodeOutOfRange)
	}
	return c.labels[code], nil
}

// Labels returns a copy of the labels in code order.
func (c *Codec) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// Mapping returns the code -> label table keyed by the decimal code, the
// shape clients receive for discovery.
func (c *Codec) Mapping() map[string]string {
	m := make(map[string]string, len(c.labels))
	for i, l := range c.labels {
		m[strconv.Itoa(i)] = l
	}
	return m
}

// Equal reports whether two codecs hold the same feature and label order.
func (c *Codec) Equal(other *Codec) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.feature != other.feature || len(c.labels) != len(other.labels) {
		return false
	}
	for i := range c.labels {
		if c.labels[i] != other.labels[i] {
			return false
		}
	}
	return true
}

// wireCodec is the gob representation of a Codec.
type wireCodec struct {
	Feature string
	Labels  []string
}

// GobEncode implements gob.GobEncoder.
func (c *Codec) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(wireCodec{Feature: c.feature, Labels: c.labels}); err != nil {
		return nil, fmt.Errorf("encode codec: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. Labels must be unique.
func (c *Codec) GobDecode(data []byte) error {
	var w wireCodec
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return fmt.Errorf("decode codec: %w", err)
	}
	decoded := newCodec(w.Feature, w.Labels)
	if len(decoded.index) != len(w.Labels) {
		return fmt.Errorf("decode codec %s: duplicate labels", w.Feature)
	}
	*c = *decoded
	return nil
}
