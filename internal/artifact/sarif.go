package artifact

import (
	"fmt"
	"net/url"

	"github.com/petrarca/loctree/internal/model"
)

// Sarif is a SARIF 2.1.0 log with exactly one run, spec.md §6's
// "SARIF output" surface. Field names and nesting follow the SARIF
// schema directly (there is no corpus precedent for SARIF emission;
// this is built against the spec's rule-ID list verbatim).
type Sarif struct {
	Schema  string      `json:"$schema"`
	Version string      `json:"version"`
	Runs    []SarifRun  `json:"runs"`
}

type SarifRun struct {
	Tool    SarifTool     `json:"tool"`
	Results []SarifResult `json:"results"`
}

type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

type SarifDriver struct {
	Name  string      `json:"name"`
	Rules []SarifRule `json:"rules"`
}

type SarifRule struct {
	ID               string `json:"id"`
	ShortDescription struct {
		Text string `json:"text"`
	} `json:"shortDescription"`
}

type SarifResult struct {
	RuleID     string           `json:"ruleId"`
	Level      string           `json:"level"`
	Message    SarifMessage     `json:"message"`
	Locations  []SarifLocation  `json:"locations"`
	Properties SarifProperties  `json:"properties"`
}

type SarifMessage struct {
	Text string `json:"text"`
}

type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           SarifRegion           `json:"region"`
}

type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

type SarifRegion struct {
	StartLine int `json:"startLine"`
}

type SarifProperties struct {
	OpenURL string `json:"openUrl"`
}

// sarifRules is spec.md §6's fixed rule-ID list, each with the level
// its finding kind warrants.
var sarifRules = []struct {
	id    string
	desc  string
	level string
}{
	{"duplicate-export", "Same symbol name exported from multiple files", "warning"},
	{"missing-handler", "Tauri command invoked from the frontend with no backend handler", "error"},
	{"unused-handler", "Tauri command handler registered but never invoked", "warning"},
	{"dead-export", "Exported symbol with no detected use", "note"},
	{"circular-import", "Non-trivial strongly-connected component in the import graph", "warning"},
	{"ghost-event", "Event emitted with no listener", "warning"},
	{"orphan-listener", "Event listened for with no emitter", "warning"},
}

func openURL(path string, line int) string {
	return fmt.Sprintf("loctree://open?f=%s&l=%d", url.QueryEscape(path), line)
}

// BuildSARIF renders findings as a SARIF 2.1.0 log, one result per
// finding, covering the rule IDs spec.md §6 names.
func BuildSARIF(snap *model.Snapshot, findings *model.Findings) *Sarif {
	driver := SarifDriver{Name: "loctree"}
	for _, r := range sarifRules {
		rule := SarifRule{ID: r.id}
		rule.ShortDescription.Text = r.desc
		driver.Rules = append(driver.Rules, rule)
	}

	var results []SarifResult
	add := func(ruleID, level, file string, line int, msg string) {
		results = append(results, SarifResult{
			RuleID:  ruleID,
			Level:   level,
			Message: SarifMessage{Text: msg},
			Locations: []SarifLocation{{
				PhysicalLocation: SarifPhysicalLocation{
					ArtifactLocation: SarifArtifactLocation{URI: file},
					Region:           SarifRegion{StartLine: line},
				},
			}},
			Properties: SarifProperties{OpenURL: openURL(file, line)},
		})
	}

	for _, tw := range findings.Twins {
		for _, m := range tw.Members {
			add("duplicate-export", "warning", m.File, m.Line,
				fmt.Sprintf("%q is also exported from another file", tw.Name))
		}
	}
	for _, o := range findings.Orphans {
		switch o.Kind {
		case "missing_handler":
			add("missing-handler", "error", o.Site.File, o.Site.Line,
				fmt.Sprintf("invoke(%q) has no backend handler", o.Name))
		case "unused_handler":
			add("unused-handler", "warning", o.Site.File, o.Site.Line,
				fmt.Sprintf("handler %q is never invoked from the frontend", o.Name))
		case "orphan_emit":
			add("ghost-event", "warning", o.Site.File, o.Site.Line,
				fmt.Sprintf("event %q is emitted but never listened for", o.Name))
		case "orphan_listen":
			add("orphan-listener", "warning", o.Site.File, o.Site.Line,
				fmt.Sprintf("event %q is listened for but never emitted", o.Name))
		}
	}
	for _, d := range findings.DeadExports {
		add("dead-export", "note", d.File, d.Line, fmt.Sprintf("%q has no detected use", d.Name))
	}
	for _, c := range findings.Cycles {
		if len(c.Files) == 0 {
			continue
		}
		add("circular-import", "warning", c.Files[0], 1,
			fmt.Sprintf("circular import through %d files", len(c.Files)))
	}

	return &Sarif{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []SarifRun{{
			Tool:    SarifTool{Driver: driver},
			Results: results,
		}},
	}
}
