package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

const sliceTruncateAt = 25

// Slice implements spec.md §4.7.6: the 3-layer holographic context
// around target — itself, a depth-bounded BFS of its outgoing import
// edges, and (optionally) its direct importers.
func (e *Engine) Slice(target string, depth int, includeConsumers bool) *model.Slice {
	if depth <= 0 {
		depth = e.settings.MaxDepth
	}
	if depth <= 0 {
		depth = 2
	}

	depthOf := e.bfsDepths(target, e.importEdges, depth)
	deps := depthEntries(depthOf)

	var consumers []model.SliceEntry
	if includeConsumers {
		for _, from := range e.reverseEdges[target] {
			consumers = append(consumers, model.SliceEntry{File: from, Depth: 1})
		}
		sort.Slice(consumers, func(i, j int) bool { return consumers[i].File < consumers[j].File })
	}

	totalLines := e.lineCount(target)
	for _, d := range deps {
		totalLines += e.lineCount(d.File)
	}
	for _, c := range consumers {
		totalLines += e.lineCount(c.File)
	}
	totalFiles := 1 + len(deps) + len(consumers)

	s := &model.Slice{
		Core: target, Deps: deps, Consumers: consumers,
		TotalFiles: totalFiles, TotalLines: totalLines,
	}
	if len(s.Deps) > sliceTruncateAt {
		s.Deps = s.Deps[:sliceTruncateAt]
		s.DepsTruncated = true
	}
	if len(s.Consumers) > sliceTruncateAt {
		s.Consumers = s.Consumers[:sliceTruncateAt]
		s.ConsTruncated = true
	}
	return s
}

// bfsDepths BFS's edges from start up to maxDepth hops, excluding
// start itself, returning each reached node's shortest depth.
func (e *Engine) bfsDepths(start string, edges map[string][]string, maxDepth int) map[string]int {
	depthOf := map[string]int{}
	frontier := []string{start}
	seen := map[string]bool{start: true}
	for d := 1; d <= maxDepth && len(frontier) > 0; d++ {
		var next []string
		tos := make([]string, 0)
		for _, n := range frontier {
			tos = append(tos, edges[n]...)
		}
		sort.Strings(tos)
		for _, to := range tos {
			if seen[to] {
				continue
			}
			seen[to] = true
			depthOf[to] = d
			next = append(next, to)
		}
		frontier = next
	}
	return depthOf
}

func depthEntries(depthOf map[string]int) []model.SliceEntry {
	out := make([]model.SliceEntry, 0, len(depthOf))
	for f, d := range depthOf {
		out = append(out, model.SliceEntry{File: f, Depth: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Depth != out[j].Depth {
			return out[i].Depth < out[j].Depth
		}
		return out[i].File < out[j].File
	})
	return out
}

func (e *Engine) lineCount(path string) int {
	if fa := e.byPath[path]; fa != nil {
		return fa.LineCount
	}
	return 0
}
