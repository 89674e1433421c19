package query

import (
	"path"
	"sort"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// matchWeight orders a SemanticMatch's kind by how strong a signal it
// is that the file is what the caller is looking for: a literal export
// beats a basename hit, which beats an incidental symbol use.
var matchWeight = map[string]float64{
	"export":    4,
	"basename":  3,
	"import":    2,
	"parameter": 1.5,
	"symbol":    1,
}

// Find implements spec.md §4.7.10: a multi-term query over export
// names, symbol occurrences (definitions, uses, and parameters),
// file basenames, and dotted import specifiers. Results are
// partitioned into a relevance-ranked semantic list, per-file symbol
// matches, and the files where two or more distinct terms landed.
func (e *Engine) Find(query string) *model.FindResult {
	terms := splitTerms(query)
	result := &model.FindResult{
		Semantic: []model.SemanticMatch{},
		BySymbol: map[string][]model.SemanticMatch{},
	}
	if len(terms) == 0 {
		return result
	}

	fileTerms := map[string]map[string]bool{}
	record := func(file string, matched []string) {
		set := fileTerms[file]
		if set == nil {
			set = map[string]bool{}
			fileTerms[file] = set
		}
		for _, t := range matched {
			set[t] = true
		}
	}

	for _, fa := range e.snap.Files {
		base := path.Base(fa.Path)
		if matched := matchingTerms(base, terms); len(matched) > 0 {
			result.Semantic = append(result.Semantic, model.SemanticMatch{
				File: fa.Path, Name: base, Kind: "basename",
				Score: matchWeight["basename"] * float64(len(matched)), MatchedTerms: matched,
			})
			record(fa.Path, matched)
		}

		for _, exp := range fa.Exports {
			matched := matchingTerms(exp.Name, terms)
			if len(matched) == 0 {
				continue
			}
			result.Semantic = append(result.Semantic, model.SemanticMatch{
				File: fa.Path, Name: exp.Name, Kind: "export", Line: exp.Line,
				Score: matchWeight["export"] * float64(len(matched)), MatchedTerms: matched,
			})
			record(fa.Path, matched)
		}

		for _, imp := range fa.Imports {
			matched := matchingTerms(imp.RawSpecifier, terms)
			if len(matched) == 0 {
				continue
			}
			result.Semantic = append(result.Semantic, model.SemanticMatch{
				File: fa.Path, Name: imp.RawSpecifier, Kind: "import", Line: imp.Line,
				Score: matchWeight["import"] * float64(len(matched)), MatchedTerms: matched,
			})
			record(fa.Path, matched)
		}

		for _, sym := range fa.Symbols {
			matched := matchingTerms(sym.Name, terms)
			if len(matched) == 0 {
				continue
			}
			kind := "symbol"
			if sym.Role == model.RoleParameter {
				kind = "parameter"
			}
			result.BySymbol[fa.Path] = append(result.BySymbol[fa.Path], model.SemanticMatch{
				File: fa.Path, Name: sym.Name, Kind: kind, Line: sym.Line,
				Score: matchWeight[kind] * float64(len(matched)), MatchedTerms: matched,
			})
			record(fa.Path, matched)
		}
	}

	sort.SliceStable(result.Semantic, func(i, j int) bool {
		if result.Semantic[i].Score != result.Semantic[j].Score {
			return result.Semantic[i].Score > result.Semantic[j].Score
		}
		if result.Semantic[i].File != result.Semantic[j].File {
			return result.Semantic[i].File < result.Semantic[j].File
		}
		return result.Semantic[i].Name < result.Semantic[j].Name
	})

	for file, matches := range result.BySymbol {
		sort.Slice(matches, func(i, j int) bool { return matches[i].Line < matches[j].Line })
		result.BySymbol[file] = matches
	}

	for file, set := range fileTerms {
		if len(set) >= 2 {
			result.CrossMatch = append(result.CrossMatch, file)
		}
	}
	sort.Strings(result.CrossMatch)

	return result
}

func splitTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	seen := map[string]bool{}
	var out []string
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func matchingTerms(name string, terms []string) []string {
	lower := strings.ToLower(name)
	var matched []string
	for _, t := range terms {
		if strings.Contains(lower, t) {
			matched = append(matched, t)
		}
	}
	return matched
}
