// Package computing per-tree statistics and per-lobe size ratios relative to
// the whole tree of the same patient
package stats

import (
	"cmp"
	"maps"
	"slices"

	gr "github.com/jsdoublel/lobetree/internal/graphs"
)

type TreeStats struct {
	Patient               string
	Nodes                 int
	Edges                 int
	LongestPathLength     int // hops from the root to the deepest node
	MaxIndependentSetSize int
}

type LobeStats struct {
	Patient      string
	Nodes        int
	Edges        int
	NodeQuotient float64 // lobe nodes / whole-tree nodes
	EdgeQuotient float64 // lobe edges / whole-tree edges
}

// Statistics for each whole tree (patient -> tree), sorted by patient
func ComputeTreeStats(trees map[string]*gr.LobeGraph) []TreeStats {
	result := make([]TreeStats, 0, len(trees))
	for _, p := range slices.Sorted(maps.Keys(trees)) {
		tre := trees[p]
		result = append(result, TreeStats{
			Patient:               p,
			Nodes:                 tre.NumNodes(),
			Edges:                 tre.NumEdges(),
			LongestPathLength:     tre.LongestPathLength(),
			MaxIndependentSetSize: tre.MaximalIndependentSetSize(),
		})
	}
	return result
}

// Statistics for each lobe, compared against trees[lobe.Patient]. Quotients are
// 0 when the whole tree is missing or has no nodes (edges). Sorted by patient.
func ComputeLobeStats(lobes []*gr.LobeGraph, trees map[string]*gr.LobeGraph) []LobeStats {
	result := make([]LobeStats, 0, len(lobes))
	for _, lobe := range lobes {
		row := LobeStats{Patient: lobe.Patient, Nodes: lobe.NumNodes(), Edges: lobe.NumEdges()}
		if tre, ok := trees[lobe.Patient]; ok {
			row.NodeQuotient = quotient(row.Nodes, tre.NumNodes())
			row.EdgeQuotient = quotient(row.Edges, tre.NumEdges())
		}
		result = append(result, row)
	}
	slices.SortStableFunc(result, func(a, b LobeStats) int {
		return cmp.Compare(a.Patient, b.Patient)
	})
	return result
}

func quotient(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
