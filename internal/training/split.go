// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrInvalidSplit is returned when no train/test partition is possible.
var ErrInvalidSplit = errors.New("invalid train/test split")

// Strategy names how a Partition was produced.
type Strategy string

// Split strategies.
const (
	StrategyStratified Strategy = "stratified"
	StrategyRandom     Strategy = "random"
)

// Partition holds sorted example indices for each side of a split.
type Partition struct {
	Train    []int
	Test     []int
	Strategy Strategy

	// Reason explains why stratification was abandoned; empty when
	// Strategy is StrategyStratified.
	Reason string
}

// Split partitions the examples labelled y into train and test sets with
// ceil(testSize*n) test examples. Every class keeps its share on both
// sides when that is possible; otherwise Split falls back to a seeded
// random partition and records why.
func Split(y []int, testSize float64, seed int64) (*Partition, error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, fmt.Errorf("%w: test size %v not in (0, 1)", ErrInvalidSplit, testSize)
	}

	n := len(y)
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < 1 || nTrain < 1 {
		return nil, fmt.Errorf("%w: %d examples cannot be split with test size %v", ErrInvalidSplit, n, testSize)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible split, not security sensitive

	counts := make(map[int]int)
	for _, label := range y {
		counts[label]++
	}

	if reason := stratifyInfeasible(counts, nTest, nTrain); reason != "" {
		p := randomPartition(n, nTest, rng)
		p.Reason = reason
		return p, nil
	}
	return stratifiedPartition(y, counts, nTest, rng), nil
}

// stratifyInfeasible returns why a stratified split cannot be made, or "".
func stratifyInfeasible(counts map[int]int, nTest, nTrain int) string {
	k := len(counts)
	for _, c := range counts {
		if c < 2 {
			return "the least populated class has only 1 member, which is too few"
		}
	}
	if nTest < k {
		return fmt.Sprintf("test size %d is smaller than the number of classes %d", nTest, k)
	}
	if nTrain < k {
		return fmt.Sprintf("train size %d is smaller than the number of classes %d", nTrain, k)
	}
	return ""
}

func randomPartition(n, nTest int, rng *rand.Rand) *Partition {
	perm := rng.Perm(n)
	p := &Partition{
		Test:     append([]int(nil), perm[:nTest]...),
		Train:    append([]int(nil), perm[nTest:]...),
		Strategy: StrategyRandom,
	}
	sort.Ints(p.Test)
	sort.Ints(p.Train)
	return p
}

// stratifiedPartition allocates test slots to classes in proportion to
// their size, handing leftover slots out by largest remainder. Every class
// keeps at least one training example.
func stratifiedPartition(y []int, counts map[int]int, nTest int, rng *rand.Rand) *Partition {
	n := len(y)

	classes := make([]int, 0, len(counts))
	for label := range counts {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	alloc := make(map[int]int, len(classes))
	remainder := make(map[int]float64, len(classes))
	assigned := 0
	for _, label := range classes {
		exact := float64(nTest) * float64(counts[label]) / float64(n)
		alloc[label] = int(math.Floor(exact))
		remainder[label] = exact - math.Floor(exact)
		assigned += alloc[label]
	}

	order := append([]int(nil), classes...)
	sort.SliceStable(order, func(i, j int) bool {
		return remainder[order[i]] > remainder[order[j]]
	})
	for left := nTest - assigned; left > 0; {
		progressed := false
		for _, label := range order {
			if left == 0 {
				break
			}
			if alloc[label] < counts[label]-1 {
				alloc[label]++
				left--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	members := make(map[int][]int, len(classes))
	for i, label := range y {
		members[label] = append(members[label], i)
	}

	p := &Partition{Strategy: StrategyStratified}
	for _, label := range classes {
		idx := members[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		p.Test = append(p.Test, idx[:alloc[label]]...)
		p.Train = append(p.Train, idx[alloc[label]:]...)
	}
	sort.Ints(p.Test)
	sort.Ints(p.Train)
	return p
}
