package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// Impact implements spec.md §4.7.7: the transitive closure of reverse
// import edges from target, partitioned into direct vs. transitive
// consumers and scored into a risk tier by the configured thresholds.
func (e *Engine) Impact(target string) *model.Impact {
	direct := append([]string{}, e.reverseEdges[target]...)
	sort.Strings(direct)

	depthOf := e.bfsDepths(target, e.reverseEdges, 1<<20)
	var transitive []string
	for f, d := range depthOf {
		if d > 1 {
			transitive = append(transitive, f)
		}
	}
	sort.Strings(transitive)

	return &model.Impact{
		Target:              target,
		DirectConsumers:     direct,
		TransitiveConsumers: transitive,
		Risk:                e.riskTier(len(direct), len(transitive)),
	}
}

func (e *Engine) riskTier(directCount, transitiveCount int) model.RiskTier {
	s := e.settings
	if directCount >= s.ImpactHighDirect || transitiveCount >= s.ImpactHighTransitive {
		return model.RiskHigh
	}
	if directCount >= s.ImpactMediumDirect || transitiveCount >= s.ImpactMediumTransitive {
		return model.RiskMedium
	}
	return model.RiskLow
}
