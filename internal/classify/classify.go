// Package used for classifying the branching at the root of a lobe tree as
// Type A (three-way split) or Type B (two-way split with measurable lengths)
package classify

import (
	"fmt"
	"slices"

	gr "github.com/jsdoublel/lobetree/internal/graphs"
)

type Class int

const (
	Unclassifiable Class = iota
	TypeA
	TypeB
)

func (c Class) String() string {
	switch c {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case Unclassifiable:
		return "unclassifiable"
	default:
		panic(fmt.Sprintf("invalid class (%d)", int(c)))
	}
}

// Result of classifying one lobe. Length1 and Length2 are only meaningful for
// Type B. The remaining fields describe the last root candidate examined.
type Descriptor struct {
	Class   Class
	Length1 float64 // weight of the edge to the smaller relevant neighbor
	Length2 float64 // weight of the edge to the larger relevant neighbor

	Root    int64     // root candidate the result was decided on
	Degree  int       // number of relevant neighbors of Root
	Retries int       // candidates discarded for having fewer than two relevant neighbors
	Weights []float64 // edge weights to the relevant neighbors of Root
}

// Descriptor pair: (0, 0) for Type A, (w1, w2) for Type B, (-1, -1) otherwise
func (d Descriptor) Lengths() (float64, float64) {
	switch d.Class {
	case TypeA:
		return 0, 0
	case TypeB:
		return d.Length1, d.Length2
	default:
		return -1, -1
	}
}

// "A" or "B"; empty for unclassifiable lobes
func (d Descriptor) Label() string {
	if d.Class == Unclassifiable {
		return ""
	}
	return d.Class.String()
}

// Classifies the root branching of lobe. The root is taken to be the smallest
// id in candidates (node ids of the input are expected to be numbered from the
// root). Neighbors whose level is smaller than the root's are ignored; if fewer
// than two neighbors remain, the candidate is discarded and the next smallest
// id is tried.
func Classify(lobe *gr.LobeGraph, candidates []int64) Descriptor {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)
	return classify(lobe, slices.Compact(sorted), 0)
}

// candidates are sorted and never modified
func classify(lobe *gr.LobeGraph, candidates []int64, retries int) Descriptor {
	if len(candidates) == 0 {
		return Descriptor{Class: Unclassifiable, Root: -1, Retries: retries}
	}
	root := candidates[0]
	neighbors := relevantNeighbors(lobe, root)
	d := Descriptor{Root: root, Degree: len(neighbors), Retries: retries}
	switch {
	case len(neighbors) == 3:
		d.Class = TypeA
	case len(neighbors) == 2:
		d.Class = TypeB
		d.Weights = edgeWeights(lobe, root, neighbors)
		d.Length1, d.Length2 = d.Weights[0], d.Weights[1]
	case len(neighbors) < 2:
		return classify(lobe, candidates[1:], retries+1)
	default:
		d.Class = Unclassifiable
		d.Weights = edgeWeights(lobe, root, neighbors)
	}
	return d
}

// Neighbors of root (ascending id) that are not above it. A node without a
// level attribute is never considered above another node.
func relevantNeighbors(lobe *gr.LobeGraph, root int64) []int64 {
	rootLevel, rootHasLevel := lobe.Level(root)
	relevant := make([]int64, 0)
	for _, n := range lobe.Neighbors(root) {
		if level, ok := lobe.Level(n); ok && rootHasLevel && level < rootLevel {
			continue
		}
		relevant = append(relevant, n)
	}
	return relevant
}

func edgeWeights(lobe *gr.LobeGraph, root int64, neighbors []int64) []float64 {
	weights := make([]float64, len(neighbors))
	for i, n := range neighbors {
		w, ok := lobe.Weight(root, n)
		if !ok {
			panic(fmt.Sprintf("no edge between root %d and neighbor %d", root, n))
		}
		weights[i] = w
	}
	return weights
}
