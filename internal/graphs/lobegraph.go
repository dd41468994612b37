// Package containing the attributed graph used for whole trees and lobes, and
// the generic tree metrics computed on it
package graphs

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var ErrNotTree = errors.New("not a tree")

type weightedGraph interface {
	graph.Weighted
	graph.WeightedBuilder
	Edges() graph.Edges
}

// Attributed graph for one patient's whole tree or one of its lobes. Nodes
// carry a depth (level) and edges a length (weight).
type LobeGraph struct {
	Patient  string // patient identifier (graph-level attribute)
	Directed bool   // edges are directed (successors are neighbors)

	g          weightedGraph
	levels     map[int64]int // level attribute per node id
	extraEdges int           // self loops and repeated edges, not stored in g
}

func NewLobeGraph(patient string, directed bool) *LobeGraph {
	var g weightedGraph
	if directed {
		g = simple.NewWeightedDirectedGraph(0, math.Inf(1))
	} else {
		g = simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	}
	return &LobeGraph{
		Patient:  patient,
		Directed: directed,
		g:        g,
		levels:   make(map[int64]int),
	}
}

// Adds node with id; does nothing if the node already exists
func (lg *LobeGraph) AddNode(id int64) {
	if lg.g.Node(id) == nil {
		lg.g.AddNode(simple.Node(id))
	}
}

func (lg *LobeGraph) SetLevel(id int64, level int) {
	lg.AddNode(id)
	lg.levels[id] = level
}

// Adds an edge of length w, creating missing endpoints. Self loops and edges
// that already exist are only counted, so the graph cannot be a tree.
func (lg *LobeGraph) AddEdge(u, v int64, w float64) {
	lg.AddNode(u)
	lg.AddNode(v)
	if u == v || lg.hasEdge(u, v) {
		lg.extraEdges++
		return
	}
	lg.g.SetWeightedEdge(lg.g.NewWeightedEdge(simple.Node(u), simple.Node(v), w))
}

func (lg *LobeGraph) hasEdge(u, v int64) bool {
	if lg.Directed {
		return lg.g.(graph.Directed).HasEdgeFromTo(u, v)
	}
	return lg.g.HasEdgeBetween(u, v)
}

func (lg *LobeGraph) NumNodes() int {
	return lg.g.Nodes().Len()
}

func (lg *LobeGraph) NumEdges() int {
	return lg.g.Edges().Len() + lg.extraEdges
}

// Node ids in ascending order
func (lg *LobeGraph) NodeIDs() []int64 {
	return sortedIDs(lg.g.Nodes())
}

func (lg *LobeGraph) Level(id int64) (int, bool) {
	level, ok := lg.levels[id]
	return level, ok
}

// Neighbors of id in ascending order (successors if the graph is directed)
func (lg *LobeGraph) Neighbors(id int64) []int64 {
	return sortedIDs(lg.g.From(id))
}

// Length of the edge u -> v (u -- v if undirected)
func (lg *LobeGraph) Weight(u, v int64) (float64, bool) {
	if u == v {
		return 0, false
	}
	return lg.g.Weight(u, v)
}

// Root of the graph by convention: the node with the smallest id
func (lg *LobeGraph) Root() (int64, bool) {
	ids := lg.NodeIDs()
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// True if the graph is non-empty, connected (weakly, if directed), and has
// exactly n-1 edges
func (lg *LobeGraph) IsTree() bool {
	n := lg.NumNodes()
	if n == 0 || lg.NumEdges() != n-1 {
		return false
	}
	return len(topo.ConnectedComponents(lg.undirected())) == 1
}

func (lg *LobeGraph) undirected() graph.Undirected {
	if lg.Directed {
		return graph.Undirect{G: lg.g.(graph.Directed)}
	}
	return lg.g.(graph.Undirected)
}

// neighbors ignoring edge direction, ascending
func (lg *LobeGraph) adjacent(id int64) []int64 {
	return sortedIDs(lg.undirected().From(id))
}

// edge length ignoring edge direction
func (lg *LobeGraph) undirectedWeight(u, v int64) float64 {
	if w, ok := lg.Weight(u, v); ok {
		return w
	}
	w, _ := lg.Weight(v, u)
	return w
}

func sortedIDs(nodes graph.Nodes) []int64 {
	ids := make([]int64, 0, nodes.Len())
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	slices.Sort(ids)
	return ids
}
