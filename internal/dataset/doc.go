// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package dataset loads and repairs the raw movie-context CSV.
//
// The raw file has seven logical columns:
//
//	movie_title,mood,weather,day,year,genre,description
//
// Descriptions are free text and frequently contain unquoted commas, so a
// physical row may split into more than seven fields. The Normalizer keeps
// the first six fields positionally and rejoins everything after them with
// "," to rebuild the description. Rows with fewer than seven fields cannot
// be repaired; they are skipped, logged, and reported in Result.Malformed.
//
// # Encodings
//
// The source is decoded as UTF-8 when valid, otherwise as ISO-8859-1
// (latin-1). A leading UTF-8 byte order mark is removed.
//
// # Usage
//
//	n := dataset.NewNormalizer(logger)
//	res, err := n.Load("movie_recommendation_dataset.csv")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(res.Records), len(res.Malformed))
package dataset
