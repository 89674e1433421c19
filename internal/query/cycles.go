package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// Cycles implements spec.md §4.7.2: Tarjan's SCC over the import-only
// edge graph (re-export edges never participate, matching
// internal/graph's EdgeImport/EdgeReExport split). Every non-trivial
// SCC and every self-loop is reported, ordered deterministically from
// its lowest-sorted-path member.
func (e *Engine) Cycles() []model.Cycle {
	t := &tarjan{
		edges: e.importEdges,
		index: map[string]int{},
		low:   map[string]int{},
		onStk: map[string]bool{},
	}

	// Iterate nodes in sorted order so equal-weight SCCs are discovered
	// in a stable sequence regardless of file-walk/extraction order.
	nodes := sortedNodeSet(e.snap.Files, e.importEdges)
	for _, n := range nodes {
		if _, seen := t.index[n]; !seen {
			t.strongConnect(n)
		}
	}

	var cycles []model.Cycle
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			cycles = append(cycles, e.buildCycle(scc))
			continue
		}
		// Self-loop: a single-node SCC with an edge to itself.
		n := scc[0]
		for _, to := range e.importEdges[n] {
			if to == n {
				cycles = append(cycles, e.buildCycle(scc))
				break
			}
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i].Files[0] < cycles[j].Files[0] })
	return cycles
}

func sortedNodeSet(files []*model.FileAnalysis, edges map[string][]string) []string {
	seen := map[string]bool{}
	var nodes []string
	for _, fa := range files {
		if !seen[fa.Path] {
			seen[fa.Path] = true
			nodes = append(nodes, fa.Path)
		}
	}
	for from, tos := range edges {
		if !seen[from] {
			seen[from] = true
			nodes = append(nodes, from)
		}
		for _, to := range tos {
			if !seen[to] {
				seen[to] = true
				nodes = append(nodes, to)
			}
		}
	}
	sort.Strings(nodes)
	return nodes
}

// buildCycle orders scc's members by a DFS over import edges starting
// from the lowest sorted path, per spec.md §4.7.2, and tags the cycle
// "structural" when every member is Rust (an intra-crate module cycle,
// informational rather than a breaking import-graph cycle).
func (e *Engine) buildCycle(scc []string) model.Cycle {
	members := append([]string{}, scc...)
	sort.Strings(members)
	inSCC := map[string]bool{}
	for _, m := range members {
		inSCC[m] = true
	}

	start := members[0]
	visited := map[string]bool{}
	var order []string
	var dfs func(n string)
	dfs = func(n string) {
		if visited[n] {
			return
		}
		visited[n] = true
		order = append(order, n)
		tos := append([]string{}, e.importEdges[n]...)
		sort.Strings(tos)
		for _, to := range tos {
			if inSCC[to] {
				dfs(to)
			}
		}
	}
	dfs(start)
	for _, m := range members {
		if !visited[m] {
			dfs(m)
		}
	}

	structural := true
	for _, m := range order {
		if fa := e.byPath[m]; fa == nil || fa.Language != model.LangRust {
			structural = false
			break
		}
	}

	return model.Cycle{Files: order, Structural: structural}
}

// tarjan is a textbook iterative-safe (here: plain recursive, the
// graphs loctree targets are small enough) implementation of Tarjan's
// strongly-connected-components algorithm.
type tarjan struct {
	edges   map[string][]string
	index   map[string]int
	low     map[string]int
	onStk   map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

func (t *tarjan) strongConnect(v string) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStk[v] = true

	tos := append([]string{}, t.edges[v]...)
	sort.Strings(tos)
	for _, w := range tos {
		if _, seen := t.index[w]; !seen {
			t.strongConnect(w)
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStk[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] == t.index[v] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStk[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
