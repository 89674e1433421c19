package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// Orphans collects one side of every unhealthy command/event bridge:
// a missing/unused command handler or an emit/listen with no
// counterpart, flattened from the CommandBridges/EventBridges the
// Graph Builder already computed (spec.md §4.5, §6 findings.json
// "orphans" key). This is a thin reshaping pass, not a new analysis —
// Coverage (§4.7.9) answers "is it tested"; Orphans answers "is it
// even wired up".
func (e *Engine) Orphans() []model.Orphan {
	var out []model.Orphan

	for _, cb := range e.snap.CommandBridges {
		switch cb.Status {
		case model.BridgeMissingHandler:
			for _, site := range cb.CallSites {
				out = append(out, model.Orphan{Kind: "missing_handler", Name: cb.Name, Site: site, Status: cb.Status})
			}
		case model.BridgeUnusedHandler:
			out = append(out, model.Orphan{
				Kind:   "unused_handler",
				Name:   cb.Name,
				Site:   model.CallSite{File: cb.HandlerFile, Line: cb.HandlerLine},
				Status: cb.Status,
			})
		}
	}

	for _, eb := range e.snap.EventBridges {
		switch eb.Status {
		case model.BridgeOrphanEmit:
			for _, site := range eb.EmitSites {
				out = append(out, model.Orphan{Kind: "orphan_emit", Name: eb.Name, Site: site, Status: eb.Status})
			}
		case model.BridgeOrphanListen:
			for _, site := range eb.ListenSites {
				out = append(out, model.Orphan{Kind: "orphan_listen", Name: eb.Name, Site: site, Status: eb.Status})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Site.File != out[j].Site.File {
			return out[i].Site.File < out[j].Site.File
		}
		if out[i].Site.Line != out[j].Site.Line {
			return out[i].Site.Line < out[j].Site.Line
		}
		return out[i].Name < out[j].Name
	})
	return out
}
