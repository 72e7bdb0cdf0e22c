// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package forest

import (
	"math/rand"
	"sort"
)

// leafMarker is the child index stored in Left and Right of a leaf.
const leafMarker = -1

// Node is one node of a fitted tree. Samples with x[Feature] <= Threshold
// go to Left, others to Right. Leaves have Left == -1 and carry Value, the
// normalized class distribution of the training samples that reached them.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     []float64
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Left == leafMarker
}

// Tree is a fitted decision tree stored as a flat node slice; Nodes[0] is
// the root.
type Tree struct {
	Nodes []Node
}

// leaf returns the leaf reached by x.
func (t *Tree) leaf(x []int) *Node {
	n := &t.Nodes[0]
	for !n.IsLeaf() {
		if float64(x[n.Feature]) <= n.Threshold {
			n = &t.Nodes[n.Left]
		} else {
			n = &t.Nodes[n.Right]
		}
	}
	return n
}

// Depth returns the depth of the deepest leaf.
func (t *Tree) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var walk func(i, d int) int
	walk = func(i, d int) int {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return d
		}
		return max(walk(n.Left, d+1), walk(n.Right, d+1))
	}
	return walk(0, 0)
}

// treeBuilder grows one tree. X and y are shared read-only with the rest of
// the forest; weights holds the per-sample weight for this tree.
type treeBuilder struct {
	params      *Params
	x           [][]int
	y           []int
	weights     []float64
	nClasses    int
	nFeatures   int
	maxFeatures int
	rng         *rand.Rand
	nodes       []Node
}

// split is a candidate partition of a node.
type split struct {
	feature   int
	threshold float64
	impurity  float64
	found     bool
}

func (b *treeBuilder) build(samples []int) Tree {
	b.grow(samples, 0)
	return Tree{Nodes: b.nodes}
}

// grow appends the subtree for samples and returns its root index.
func (b *treeBuilder) grow(samples []int, depth int) int {
	dist, total := b.distribution(samples)

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1, Left: leafMarker, Right: leafMarker})

	if depth >= b.params.MaxDepth ||
		len(samples) < b.params.MinSamplesSplit ||
		len(samples) < 2*b.params.MinSamplesLeaf ||
		gini(dist, total) <= 1e-12 {
		b.nodes[idx].Value = normalize(dist, total)
		return idx
	}

	best := b.bestSplit(samples, total)
	if !best.found {
		b.nodes[idx].Value = normalize(dist, total)
		return idx
	}

	left, right := partition(b.x, samples, best.feature, best.threshold)
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)

	n := &b.nodes[idx]
	n.Feature = best.feature
	n.Threshold = best.threshold
	n.Left = l
	n.Right = r
	return idx
}

// bestSplit visits features in random order until maxFeatures non-constant
// features have been scored. Constant features do not count toward the
// budget.
func (b *treeBuilder) bestSplit(samples []int, total float64) split {
	best := split{}
	visited := 0

	for _, f := range b.rng.Perm(b.nFeatures) {
		if visited >= b.maxFeatures {
			break
		}
		cand, constant := b.scoreFeature(samples, f, total)
		if constant {
			continue
		}
		visited++
		if cand.found && (!best.found || cand.impurity < best.impurity) {
			best = cand
		}
	}
	return best
}

// scoreFeature finds the best threshold on feature f.
func (b *treeBuilder) scoreFeature(samples []int, f int, total float64) (split, bool) {
	sorted := make([]int, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

	if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
		return split{}, true
	}

	leftDist := make([]float64, b.nClasses)
	rightDist, _ := b.distribution(samples)
	leftW, rightW := 0.0, total
	best := split{feature: f}

	for i := 0; i < len(sorted)-1; i++ {
		s := sorted[i]
		w := b.weights[s]
		leftDist[b.y[s]] += w
		rightDist[b.y[s]] -= w
		leftW += w
		rightW -= w

		cur, next := b.x[s][f], b.x[sorted[i+1]][f]
		if cur == next {
			continue
		}
		nLeft := i + 1
		if nLeft < b.params.MinSamplesLeaf || len(sorted)-nLeft < b.params.MinSamplesLeaf {
			continue
		}

		impurity := (leftW*gini(leftDist, leftW) + rightW*gini(rightDist, rightW)) / total
		if !best.found || impurity < best.impurity {
			best.found = true
			best.impurity = impurity
			best.threshold = (float64(cur) + float64(next)) / 2
		}
	}
	return best, false
}

// distribution returns the weighted class histogram of samples and its sum.
func (b *treeBuilder) distribution(samples []int) ([]float64, float64) {
	dist := make([]float64, b.nClasses)
	total := 0.0
	for _, s := range samples {
		w := b.weights[s]
		dist[b.y[s]] += w
		total += w
	}
	return dist, total
}

func partition(x [][]int, samples []int, feature int, threshold float64) (left, right []int) {
	for _, s := range samples {
		if float64(x[s][feature]) <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return left, right
}

// gini returns the Gini impurity of a weighted class histogram.
func gini(dist []float64, total float64) float64 {
	if total <= 0 {
		return 0
	}
	sum := 0.0
	for _, w := range dist {
		p := w / total
		sum += p * p
	}
	return 1 - sum
}

func normalize(dist []float64, total float64) []float64 {
	out := make([]float64, len(dist))
	if total <= 0 {
		return out
	}
	for i, w := range dist {
		out[i] = w / total
	}
	return out
}
