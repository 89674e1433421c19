package query

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/petrarca/loctree/internal/model"
)

// Crowds implements spec.md §4.7.5. pattern selects files whose
// basename contains it case-insensitively; an empty pattern triggers
// auto-detection over candidate substrings drawn from the project's
// own basenames, keeping whichever scores highest.
func (e *Engine) Crowds(pattern string) []model.Crowd {
	if pattern != "" {
		c := e.buildCrowd(pattern)
		if c == nil {
			return nil
		}
		return []model.Crowd{*c}
	}

	var best *model.Crowd
	for _, candidate := range e.candidatePatterns() {
		c := e.buildCrowd(candidate)
		if c == nil {
			continue
		}
		if best == nil || c.Score > best.Score {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	return []model.Crowd{*best}
}

// candidatePatterns derives auto-detection substrings: every basename
// stem (extension stripped, trailing digits stripped) of length >= 3
// that recurs across more than one file.
func (e *Engine) candidatePatterns() []string {
	seen := map[string]int{}
	for _, fa := range e.snap.Files {
		stem := baseStem(fa.Path)
		if len(stem) >= 3 {
			seen[stem]++
		}
	}
	var out []string
	for stem, count := range seen {
		if count > 1 {
			out = append(out, stem)
		}
	}
	sort.Strings(out)
	return out
}

func baseStem(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimRight(base, "0123456789")
	return strings.ToLower(base)
}

func (e *Engine) buildCrowd(pattern string) *model.Crowd {
	lower := strings.ToLower(pattern)
	var members []string
	for _, fa := range e.snap.Files {
		base := fa.Path
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		if strings.Contains(strings.ToLower(base), lower) {
			members = append(members, fa.Path)
		}
	}
	if len(members) < 2 {
		return nil
	}
	sort.Strings(members)

	importSets := make(map[string]map[string]bool, len(members))
	importerCounts := make(map[string]int, len(members))
	for _, m := range members {
		fa := e.byPath[m]
		set := map[string]bool{}
		if fa != nil {
			for _, imp := range fa.Imports {
				if imp.ResolvedPath != "" {
					set[imp.ResolvedPath] = true
				}
			}
		}
		importSets[m] = set
		importerCounts[m] = len(e.reverseEdges[m])
	}

	var jaccards []float64
	sharedMass := 0
	topPair := 0.0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			a, b := importSets[members[i]], importSets[members[j]]
			inter, union := setOverlap(a, b)
			sharedMass += inter
			pairJaccard := 0.0
			if union > 0 {
				pairJaccard = float64(inter) / float64(union)
			}
			jaccards = append(jaccards, pairJaccard)
			if pairJaccard > topPair {
				topPair = pairJaccard
			}
		}
	}
	meanJaccard := 0.0
	if len(jaccards) > 0 {
		meanJaccard = stat.Mean(jaccards, nil)
	}

	maxImporters, minImporters := 0, 0
	for i, m := range members {
		c := importerCounts[m]
		if i == 0 || c > maxImporters {
			maxImporters = c
		}
		if i == 0 || c < minImporters {
			minImporters = c
		}
	}
	asymmetry := 1.0
	if minImporters > 0 {
		asymmetry = float64(maxImporters) / float64(minImporters)
	} else if maxImporters > 0 {
		asymmetry = float64(maxImporters + 1)
	}

	var issues []string
	if len(members) >= e.settings.CrowdNameCollisionMin {
		issues = append(issues, "name_collision")
	}
	if asymmetry >= e.settings.CrowdAsymmetryThreshold {
		issues = append(issues, "usage_asymmetry")
	}
	if topPair >= e.settings.CrowdOverlapThreshold {
		issues = append(issues, "export_overlap")
	}

	score := float64(len(members)) + meanJaccard*10 + asymmetry

	return &model.Crowd{
		Pattern:        pattern,
		Members:        members,
		SharedMass:     sharedMass,
		UsageAsymmetry: asymmetry,
		TopPairOverlap: topPair,
		Issues:         issues,
		Score:          score,
	}
}

func setOverlap(a, b map[string]bool) (intersection, union int) {
	seen := map[string]bool{}
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		if a[k] {
			intersection++
		}
		seen[k] = true
	}
	return intersection, len(seen)
}
