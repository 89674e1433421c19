package query

import (
	"sort"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// Trace implements spec.md §4.7.8: look up the CommandBridge for
// command (matched the same normalized way internal/graph groups
// bridges) and return its full story in source order.
func (e *Engine) Trace(command string) *model.HandlerTrace {
	target := normalizeCommandName(command)
	for _, b := range e.snap.CommandBridges {
		if b.Name != target {
			continue
		}
		sites := append([]model.CallSite{}, b.CallSites...)
		sort.Slice(sites, func(i, j int) bool {
			if sites[i].File != sites[j].File {
				return sites[i].File < sites[j].File
			}
			return sites[i].Line < sites[j].Line
		})

		var impl *model.CallSite
		if b.HandlerFile != "" {
			impl = &model.CallSite{File: b.HandlerFile, Line: b.HandlerLine}
		}

		return &model.HandlerTrace{
			Command:          b.Name,
			RegistrationSite: b.RegistrationSite,
			Implementation:   impl,
			CallSites:        sites,
		}
	}
	return nil
}

// normalizeCommandName mirrors internal/graph's unexported helper of
// the same name: lower-case, camelCase -> snake_case, so a trace
// lookup keys on exactly the same identity a CommandBridge was grouped
// under.
func normalizeCommandName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
