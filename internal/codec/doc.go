// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package codec maps categorical string values to dense integer codes.
//
// A Codec is fitted once from the distinct values of one feature (mood,
// weather, day) or of the movie label. Codes are assigned in sorted label
// order and are contiguous in [0, N). A fitted Codec is immutable and safe
// for concurrent use.
//
// # Usage
//
//	moods := codec.Fit("mood", []string{"Happy", "Sad", "Happy"})
//	code, err := moods.Encode("Sad") // 1
//	label, _ := moods.Decode(code)   // "Sad"
//
//	_, err = moods.Encode("Angry")
//	errors.Is(err, codec.ErrUnknownCategory) // true
//
// Codecs persist through encoding/gob. Only the ordered label list is
// written; the lookup index is rebuilt on decode.
package codec
