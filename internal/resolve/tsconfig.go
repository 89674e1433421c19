package resolve

import (
	"encoding/json"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petrarca/loctree/internal/model"
	"github.com/petrarca/loctree/internal/onceguard"
	"github.com/petrarca/loctree/internal/provider"
)

// tsConfigRaw is the subset of tsconfig.json this resolver cares
// about: baseUrl/paths for alias resolution, extends for chain
// merging (spec.md §4.4).
type tsConfigRaw struct {
	Extends         string `json:"extends"`
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

type mergedTSConfig struct {
	baseDir string // project-relative directory the tsconfig.json lives in
	baseURL string
	paths   map[string][]string
}

// virtualPrefixes are module namespaces a bundler injects at build
// time rather than resolving to a project file — SvelteKit's
// generated `$app`/`$env`/`$service-worker` modules and its `$lib`
// alias for src/lib. They resolve to nothing by design (spec.md §4.4).
var virtualPrefixes = []string{"$app/", "$lib/", "$env/", "$service-worker"}

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// TSResolver resolves TS/JS/Vue/Svelte import specifiers using
// tsconfig.json's baseUrl/paths (merged across extends chains), known
// virtual module prefixes, and relative/bare-module fallback — spec.md
// §4.4's TS/JS algorithm, for which there is no teacher/pack analogue.
type TSResolver struct {
	provider provider.Provider
	root     string
	cache    *onceguard.Guard
}

// NewTSResolver builds a resolver that reads tsconfig.json files from
// p rooted at root, caching each directory's merged config.
func NewTSResolver(p provider.Provider, root string) *TSResolver {
	return &TSResolver{provider: p, root: root, cache: onceguard.New()}
}

// Resolve turns specifier, written in fromFile, into a project-
// relative canonical path, or "" if nothing in the project matches.
func (r *TSResolver) Resolve(fromFile, specifier string, idx *Index, lang model.Language) string {
	if strings.HasPrefix(specifier, ".") {
		candidate := path.Join(path.Dir(toSlash(fromFile)), specifier)
		if resolved, ok := idx.Lookup(candidate, lang); ok {
			return resolved
		}
		return ""
	}

	for _, vp := range virtualPrefixes {
		if specifier == strings.TrimSuffix(vp, "/") || strings.HasPrefix(specifier, vp) {
			return ""
		}
	}

	if cfg := r.configFor(path.Dir(toSlash(fromFile))); cfg != nil {
		if resolved, ok := r.resolveViaConfig(cfg, specifier, idx, lang); ok {
			return resolved
		}
	}

	if resolved, ok := idx.Lookup(specifier, lang); ok {
		return resolved
	}
	return ""
}

func (r *TSResolver) resolveViaConfig(cfg *mergedTSConfig, specifier string, idx *Index, lang model.Language) (string, bool) {
	var bestPattern string
	var bestTargets []string
	for pattern, targets := range cfg.paths {
		if !matchesPattern(pattern, specifier) {
			continue
		}
		if len(pattern) > len(bestPattern) {
			bestPattern, bestTargets = pattern, targets
		}
	}

	if bestPattern != "" {
		for _, target := range bestTargets {
			substituted := substitutePattern(bestPattern, target, specifier)
			candidate := path.Join(cfg.baseDir, cfg.baseURL, substituted)
			if resolved, ok := idx.Lookup(candidate, lang); ok {
				return resolved, true
			}
		}
	}

	if cfg.baseURL != "" {
		candidate := path.Join(cfg.baseDir, cfg.baseURL, specifier)
		if resolved, ok := idx.Lookup(candidate, lang); ok {
			return resolved, true
		}
	}

	return "", false
}

func matchesPattern(pattern, specifier string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == specifier
	}
	prefix, suffix, _ := strings.Cut(pattern, "*")
	return strings.HasPrefix(specifier, prefix) && strings.HasSuffix(specifier, suffix) &&
		len(specifier) >= len(prefix)+len(suffix)
}

func substitutePattern(pattern, target, specifier string) string {
	if !strings.Contains(pattern, "*") {
		return target
	}
	prefix, suffix, _ := strings.Cut(pattern, "*")
	matched := strings.TrimSuffix(strings.TrimPrefix(specifier, prefix), suffix)
	return strings.Replace(target, "*", matched, 1)
}

// configFor returns the merged tsconfig for the nearest tsconfig.json
// at or above dir, memoized per directory via onceguard so a panic
// while loading one project's config can't wedge resolution for the
// rest (spec.md §5's "once-per-key initialization guard" requirement).
func (r *TSResolver) configFor(dir string) *mergedTSConfig {
	v, err := r.cache.Do(dir, func() (any, error) {
		return r.loadConfig(dir), nil
	})
	if err != nil {
		return nil
	}
	cfg, _ := v.(*mergedTSConfig)
	return cfg
}

func (r *TSResolver) loadConfig(dir string) *mergedTSConfig {
	for d := dir; ; {
		if raw, ok := r.readJSONC(path.Join(d, "tsconfig.json")); ok {
			return r.mergeChain(d, raw, map[string]bool{})
		}
		if d == "." || d == "" {
			return nil
		}
		parent := path.Dir(d)
		if parent == d {
			return nil
		}
		d = parent
	}
}

func (r *TSResolver) mergeChain(dir string, raw tsConfigRaw, seen map[string]bool) *mergedTSConfig {
	merged := &mergedTSConfig{baseDir: dir, baseURL: raw.CompilerOptions.BaseURL, paths: map[string][]string{}}

	if raw.Extends != "" {
		extendsPath := path.Join(dir, raw.Extends)
		if !strings.HasSuffix(extendsPath, ".json") {
			extendsPath += ".json"
		}
		if !seen[extendsPath] {
			seen[extendsPath] = true
			if parentRaw, ok := r.readJSONC(extendsPath); ok {
				parent := r.mergeChain(path.Dir(extendsPath), parentRaw, seen)
				if merged.baseURL == "" {
					merged.baseDir = parent.baseDir
					merged.baseURL = parent.baseURL
				}
				for k, v := range parent.paths {
					merged.paths[k] = v
				}
			}
		}
	}

	for k, v := range raw.CompilerOptions.Paths {
		merged.paths[k] = v
	}
	return merged
}

// readJSONC reads and parses a tsconfig.json at a project-relative
// path, stripping // and /* */ comments first since tsconfig.json is
// conventionally JSONC rather than strict JSON.
func (r *TSResolver) readJSONC(relPath string) (tsConfigRaw, bool) {
	data, err := r.provider.ReadFile(filepath.Join(r.root, relPath))
	if err != nil {
		return tsConfigRaw{}, false
	}
	clean := blockCommentRe.ReplaceAll(data, nil)
	clean = lineCommentRe.ReplaceAll(clean, nil)

	var raw tsConfigRaw
	if err := json.Unmarshal(clean, &raw); err != nil {
		return tsConfigRaw{}, false
	}
	return raw, true
}
