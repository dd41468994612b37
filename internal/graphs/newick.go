package graphs

import (
	"fmt"
	"strconv"

	"github.com/evolbioinfo/gotree/tree"
)

// Newick name of node id. Names are not numeric so that names of internal
// nodes are not read back as support values.
func nodeName(id int64) string {
	return "n" + strconv.FormatInt(id, 10)
}

// Converts the graph to a gotree tree. Branch lengths are the edge weights. The
// tree is rooted at Root(), unless Root() has a single neighbor, in which case
// it is rooted at that neighbor and Root() becomes a tip (newick cannot write a
// root with one child). Returns ErrNotTree if the graph is not a tree.
func (lg *LobeGraph) Tree() (*tree.Tree, error) {
	if !lg.IsTree() {
		return nil, fmt.Errorf("patient %s graph is %w", lg.Patient, ErrNotTree)
	}
	root, _ := lg.Root()
	if adj := lg.adjacent(root); len(adj) == 1 {
		root = adj[0]
	}
	tre := tree.NewTree()
	nodes := make(map[int64]*tree.Node, lg.NumNodes())
	nodes[root] = tre.NewNode()
	nodes[root].SetName(nodeName(root))
	tre.SetRoot(nodes[root])
	queue := []int64{root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range lg.adjacent(u) {
			if _, seen := nodes[v]; seen {
				continue
			}
			nodes[v] = tre.NewNode()
			nodes[v].SetName(nodeName(v))
			e := tre.ConnectNodes(nodes[u], nodes[v])
			e.SetLength(lg.undirectedWeight(u, v))
			queue = append(queue, v)
		}
	}
	return tre, nil
}

// Newick string of Tree()
func (lg *LobeGraph) Newick() (string, error) {
	tre, err := lg.Tree()
	if err != nil {
		return "", err
	}
	return tre.Newick(), nil
}
