// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package testinfra provides shared fixtures for Moodflix tests.

It is imported only from _test.go files:

	path := testinfra.WriteDataset(t, testinfra.SampleCSV())
	res, err := training.NewTrainer(testinfra.FastTrainingConfig(), zerolog.Nop()).Train(ctx, path)

SampleCSV describes a dataset whose three movies are each tied to one
(mood, weather, day) context, so a trained model recommends them with
certainty:

	Happy  / Sunny  / Weekend -> Paddington
	Sad    / Rainy  / Weekday -> Blue Valentine
	Excited/ Cloudy / Weekend -> Mad Max
*/
package testinfra
