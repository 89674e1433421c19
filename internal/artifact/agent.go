package artifact

import (
	"fmt"
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

const maxQuickWins = 20

// BuildAgentBundle condenses a Snapshot+Findings pair into the
// LLM-consumable shape spec.md §6 names: a health-score summary,
// priority-ordered quick wins, the files most other files depend on,
// and the findings themselves.
func BuildAgentBundle(snap *model.Snapshot, findings *model.Findings) *model.AgentBundle {
	summary := buildSummary(snap, findings)
	return &model.AgentBundle{
		Summary:   summary,
		QuickWins: buildQuickWins(findings),
		HubFiles:  buildHubFiles(snap),
		Findings:  findings,
	}
}

func buildSummary(snap *model.Snapshot, findings *model.Findings) model.AgentSummary {
	missing, unregistered := 0, 0
	for _, o := range findings.Orphans {
		switch o.Kind {
		case "missing_handler":
			missing++
		case "unused_handler":
			unregistered++
		}
	}

	s := model.AgentSummary{
		FilesAnalyzed:        len(snap.Files),
		MissingHandlers:      missing,
		UnregisteredHandlers: unregistered,
		CircularCount:        len(findings.Cycles),
	}
	s.HealthScore = healthScore(s, len(findings.DeadParrots), len(findings.Twins))
	return s
}

// healthScore starts at 100 and subtracts a fixed penalty per defect
// category, floored at 0 — a simple, explainable composite rather than
// a weighted regression spec.md doesn't specify coefficients for.
func healthScore(s model.AgentSummary, deadParrots, twins int) int {
	score := 100
	score -= s.MissingHandlers * 5
	score -= s.UnregisteredHandlers * 2
	score -= s.CircularCount * 3
	score -= deadParrots * 1
	score -= twins * 1
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// buildQuickWins ranks the highest-signal, cheapest-to-fix findings:
// missing handlers first (a broken frontend call), then unused
// handlers and dead parrots (safe deletions), then cycles. Each
// category is independently sorted for determinism before interleaving.
func buildQuickWins(findings *model.Findings) []model.QuickWin {
	var wins []model.QuickWin

	missing := filterOrphans(findings.Orphans, "missing_handler")
	sortOrphans(missing)
	for _, o := range missing {
		wins = append(wins, model.QuickWin{
			Action:   "implement_handler",
			Target:   o.Name,
			Location: fmt.Sprintf("%s:%d", o.Site.File, o.Site.Line),
			Impact:   "frontend call currently fails at runtime",
		})
	}

	unused := filterOrphans(findings.Orphans, "unused_handler")
	sortOrphans(unused)
	for _, o := range unused {
		wins = append(wins, model.QuickWin{
			Action:   "remove_or_wire_handler",
			Target:   o.Name,
			Location: fmt.Sprintf("%s:%d", o.Site.File, o.Site.Line),
			Impact:   "dead backend surface",
		})
	}

	parrots := append([]model.DeadExport(nil), findings.DeadParrots...)
	sort.Slice(parrots, func(i, j int) bool {
		if parrots[i].File != parrots[j].File {
			return parrots[i].File < parrots[j].File
		}
		return parrots[i].Name < parrots[j].Name
	})
	for _, d := range parrots {
		wins = append(wins, model.QuickWin{
			Action:   "delete_export",
			Target:   d.Name,
			Location: fmt.Sprintf("%s:%d", d.File, d.Line),
			Impact:   "zero importers, safe to remove",
		})
	}

	for _, c := range findings.Cycles {
		if len(c.Files) == 0 || c.Structural {
			continue
		}
		wins = append(wins, model.QuickWin{
			Action:   "break_cycle",
			Target:   c.Files[0],
			Location: c.Files[0],
			Impact:   fmt.Sprintf("circular import across %d files", len(c.Files)),
		})
	}

	if len(wins) > maxQuickWins {
		wins = wins[:maxQuickWins]
	}
	return wins
}

func filterOrphans(orphans []model.Orphan, kind string) []model.Orphan {
	var out []model.Orphan
	for _, o := range orphans {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func sortOrphans(orphans []model.Orphan) {
	sort.Slice(orphans, func(i, j int) bool {
		if orphans[i].Site.File != orphans[j].Site.File {
			return orphans[i].Site.File < orphans[j].Site.File
		}
		return orphans[i].Site.Line < orphans[j].Site.Line
	})
}

// buildHubFiles ranks files by incoming import-edge count, the
// "which file would breaking change the most things" signal an agent
// wants before touching anything.
func buildHubFiles(snap *model.Snapshot) []model.HubFile {
	counts := map[string]int{}
	for _, e := range snap.Edges {
		if e.Kind == model.EdgeImport {
			counts[e.To]++
		}
	}

	hubs := make([]model.HubFile, 0, len(counts))
	for path, count := range counts {
		hubs = append(hubs, model.HubFile{Path: path, IncomingEdges: count})
	}
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].IncomingEdges != hubs[j].IncomingEdges {
			return hubs[i].IncomingEdges > hubs[j].IncomingEdges
		}
		return hubs[i].Path < hubs[j].Path
	})
	if len(hubs) > maxQuickWins {
		hubs = hubs[:maxQuickWins]
	}
	return hubs
}
