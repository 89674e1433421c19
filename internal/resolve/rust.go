package resolve

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/petrarca/loctree/internal/model"
)

// RustModuleMap maps a crate-relative module path ("a::b") to the
// source file that defines it, derived from rustc's default
// file-to-module convention over the project's own src tree (spec.md
// §4.4: "Use the crate module map built during C3").
type RustModuleMap struct {
	byModule map[string]string
}

// BuildRustModuleMap indexes every Rust file in files by its implied
// module path.
func BuildRustModuleMap(files []*model.FileAnalysis) *RustModuleMap {
	m := &RustModuleMap{byModule: map[string]string{}}
	for _, fa := range files {
		if fa.Language != model.LangRust {
			continue
		}
		m.byModule[modulePathOf(fa.Path)] = fa.Path
	}
	return m
}

// modulePathOf derives a file's crate-relative module path from its
// location under src/: src/lib.rs and src/main.rs are the crate root
// (""); src/a/mod.rs and src/a.rs are module "a"; src/a/b.rs is "a::b".
func modulePathOf(filePath string) string {
	p := toSlash(filePath)
	idx := strings.Index(p, "src/")
	if idx == -1 {
		return ""
	}
	rel := strings.TrimSuffix(p[idx+len("src/"):], ".rs")
	rel = strings.TrimSuffix(rel, "/mod")
	if rel == "lib" || rel == "main" {
		return ""
	}
	return strings.ReplaceAll(rel, "/", "::")
}

// Resolve looks up modulePath, falling back first to dropping its
// trailing segment once (the submodule-vs-symbol ambiguity in `use
// crate::a::b::C`), then to a Levenshtein-nearest module path — the
// "fuzzy symbol match" spec.md §4.4 calls for on multi-line nested
// imports, where the extractor's recorded path can be slightly off
// from the module tree (e.g. a re-exported symbol aliased mid-chain).
func (m *RustModuleMap) Resolve(modulePath string) (string, bool) {
	if path, ok := m.byModule[modulePath]; ok {
		return path, true
	}

	trimmed := modulePath
	if i := strings.LastIndex(modulePath, "::"); i != -1 {
		trimmed = modulePath[:i]
		if path, ok := m.byModule[trimmed]; ok {
			return path, true
		}
	}

	return m.fuzzyResolve(trimmed)
}

// fuzzyResolve picks the module path with the smallest Levenshtein
// distance to modulePath, accepting it only within a distance
// proportional to modulePath's own length so an unrelated module in a
// large crate can't masquerade as a near match.
func (m *RustModuleMap) fuzzyResolve(modulePath string) (string, bool) {
	if modulePath == "" {
		return "", false
	}

	keys := make([]string, 0, len(m.byModule))
	for k := range m.byModule {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestDist := "", -1
	for _, mod := range keys {
		d := levenshtein.ComputeDistance(mod, modulePath)
		if bestDist == -1 || d < bestDist {
			best, bestDist = mod, d
		}
	}

	threshold := len(modulePath) / 3
	if threshold < 1 {
		threshold = 1
	}
	if bestDist >= 0 && bestDist <= threshold {
		return m.byModule[best], true
	}
	return "", false
}

// ResolveRelative translates a super:: or self:: path relative to the
// importing file's own module path.
func ResolveRelative(importerModule, kind, rest string) string {
	switch kind {
	case "self":
		if rest == "" {
			return importerModule
		}
		if importerModule == "" {
			return rest
		}
		return importerModule + "::" + rest
	case "super":
		parent := ""
		if i := strings.LastIndex(importerModule, "::"); i != -1 {
			parent = importerModule[:i]
		}
		if rest == "" {
			return parent
		}
		if parent == "" {
			return rest
		}
		return parent + "::" + rest
	default:
		return rest
	}
}

// modulePathFromSpecifier splits a `use` path's relative-import kind
// (crate/super/self/bare) from the rest of the path.
func modulePathFromSpecifier(raw string) (kind, rest string) {
	switch {
	case strings.HasPrefix(raw, "crate::"):
		return "crate", strings.TrimPrefix(raw, "crate::")
	case strings.HasPrefix(raw, "super::"):
		return "super", strings.TrimPrefix(raw, "super::")
	case strings.HasPrefix(raw, "self::"):
		return "self", strings.TrimPrefix(raw, "self::")
	default:
		return "bare", raw
	}
}

// stripBraceGroup removes a trailing `::{a, b}` brace group, leaving
// the shared module prefix all of its leaves resolve against.
func stripBraceGroup(modPath string) string {
	if idx := strings.LastIndex(modPath, "::{"); idx != -1 && strings.HasSuffix(modPath, "}") {
		return modPath[:idx]
	}
	return modPath
}
