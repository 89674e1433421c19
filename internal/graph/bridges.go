package graph

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// commandAccumulator gathers every site seen for one normalized
// command name before a final model.CommandBridge is derived.
type commandAccumulator struct {
	callSites    []model.CallSite
	hasHandler   bool
	handlerSite  model.CallSite
	registration *model.CallSite
}

// buildCommandBridges groups frontend invoke() call-sites with backend
// #[tauri::command] handlers and generate_handler![...] registrations
// under a normalized command name (spec.md §4.5), determining each
// bridge's status per spec.md §3: ok (call-sites and a handler),
// missing_handler (call-sites only), unused_handler (handler only).
func buildCommandBridges(files []*model.FileAnalysis) []model.CommandBridge {
	acc := map[string]*commandAccumulator{}
	get := func(key string) *commandAccumulator {
		a, ok := acc[key]
		if !ok {
			a = &commandAccumulator{}
			acc[key] = a
		}
		return a
	}

	for _, fa := range files {
		for _, call := range fa.CommandCalls {
			if call.Dynamic {
				continue
			}
			a := get(normalizeCommandName(call.Name))
			a.callSites = append(a.callSites, model.CallSite{File: fa.Path, Line: call.Line})
		}
		for _, def := range fa.CommandDefs {
			a := get(normalizeCommandName(def.Name))
			site := model.CallSite{File: fa.Path, Line: def.Line}
			if !a.hasHandler || siteLess(site, a.handlerSite) {
				a.hasHandler, a.handlerSite = true, site
			}
		}
		for _, reg := range fa.CommandRegistrations {
			a := get(normalizeCommandName(reg.Name))
			site := model.CallSite{File: fa.Path, Line: reg.Line}
			if a.registration == nil || siteLess(site, *a.registration) {
				a.registration = &site
			}
		}
	}

	names := sortedKeys(acc)
	bridges := make([]model.CommandBridge, 0, len(names))
	for _, name := range names {
		a := acc[name]
		sort.Slice(a.callSites, func(i, j int) bool { return siteLess(a.callSites[i], a.callSites[j]) })

		status := model.BridgeMissingHandler
		switch {
		case len(a.callSites) > 0 && a.hasHandler:
			status = model.BridgeOK
		case a.hasHandler:
			status = model.BridgeUnusedHandler
		}

		b := model.CommandBridge{
			Name:             name,
			CallSites:        a.callSites,
			Status:           status,
			RegistrationSite: a.registration,
		}
		if a.hasHandler {
			b.HandlerFile, b.HandlerLine = a.handlerSite.File, a.handlerSite.Line
		}
		bridges = append(bridges, b)
	}
	return bridges
}

// eventAccumulator gathers every emit/listen site for one literal
// event name.
type eventAccumulator struct {
	emitSites   []model.CallSite
	listenSites []model.CallSite
}

// buildEventBridges groups emit/listen call-sites by literal event
// name (already constant-resolved by resolveDynamicNames), determining
// status per spec.md §3: connected (both sides present), orphan_emit
// or orphan_listen otherwise.
func buildEventBridges(files []*model.FileAnalysis) []model.EventBridge {
	acc := map[string]*eventAccumulator{}
	get := func(name string) *eventAccumulator {
		a, ok := acc[name]
		if !ok {
			a = &eventAccumulator{}
			acc[name] = a
		}
		return a
	}

	for _, fa := range files {
		for _, e := range fa.EventEmits {
			if e.Dynamic {
				continue
			}
			a := get(e.Name)
			a.emitSites = append(a.emitSites, model.CallSite{File: fa.Path, Line: e.Line})
		}
		for _, l := range fa.EventListens {
			if l.Dynamic {
				continue
			}
			a := get(l.Name)
			a.listenSites = append(a.listenSites, model.CallSite{File: fa.Path, Line: l.Line})
		}
	}

	names := sortedKeys(acc)
	bridges := make([]model.EventBridge, 0, len(names))
	for _, name := range names {
		a := acc[name]
		sort.Slice(a.emitSites, func(i, j int) bool { return siteLess(a.emitSites[i], a.emitSites[j]) })
		sort.Slice(a.listenSites, func(i, j int) bool { return siteLess(a.listenSites[i], a.listenSites[j]) })

		status := model.BridgeOrphanEmit
		switch {
		case len(a.emitSites) > 0 && len(a.listenSites) > 0:
			status = model.BridgeConnected
		case len(a.listenSites) > 0:
			status = model.BridgeOrphanListen
		}

		bridges = append(bridges, model.EventBridge{
			Name: name, EmitSites: a.emitSites, ListenSites: a.listenSites, Status: status,
		})
	}
	return bridges
}

func siteLess(a, b model.CallSite) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Line < b.Line
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
