package graphs

import (
	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Largest number of edges on a shortest path from the root to any reachable
// node (edge lengths are ignored)
func (lg *LobeGraph) LongestPathLength() int {
	root, ok := lg.Root()
	if !ok {
		return 0
	}
	longest := 0
	var bf traverse.BreadthFirst
	bf.Walk(lg.g, simple.Node(root), func(_ graph.Node, depth int) bool {
		longest = max(longest, depth)
		return false
	})
	return longest
}

// Size of the maximal independent set found by greedily taking nodes in
// ascending id order. Edge direction is ignored.
func (lg *LobeGraph) MaximalIndependentSetSize() int {
	ids := lg.NodeIDs()
	index := make(map[int64]uint, len(ids))
	for i, id := range ids {
		index[id] = uint(i)
	}
	blocked := bitset.New(uint(len(ids)))
	size := 0
	for i, id := range ids {
		if blocked.Test(uint(i)) {
			continue
		}
		size++
		blocked.Set(uint(i))
		for _, v := range lg.adjacent(id) {
			blocked.Set(index[v])
		}
	}
	return size
}
