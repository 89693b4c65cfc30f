package diagfmt

import (
	"encoding/json"
	"io"
	"strings"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

// SarifRunMeta describes the tool that produced a run.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	RuleID         string // defaults to "ContextError"
}

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string `json:"name"`
	Version        string `json:"version,omitempty"`
	InformationURI string `json:"informationUri,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32        `json:"startLine"`
	StartColumn uint32        `json:"startColumn"`
	EndColumn   uint32        `json:"endColumn"`
	Snippet     *sarifMessage `json:"snippet,omitempty"`
}

// sarifLevel maps a Level onto the three SARIF result levels.
func sarifLevel(l Level) string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif writes reports as a single-run SARIF v2.1.0 log.
// SARIF columns are 1-based, so annotation columns are shifted by one.
func Sarif(w io.Writer, reports []Report, meta SarifRunMeta) error {
	rule := meta.RuleID
	if rule == "" {
		rule = "ContextError"
	}

	results := make([]sarifResult, 0, len(reports))
	for _, r := range reports {
		parts := []string{r.Title}
		for _, f := range r.Footers {
			parts = append(parts, f.Level.String()+": "+f.Text)
		}
		res := sarifResult{
			RuleID:  rule,
			Level:   sarifLevel(r.Level),
			Message: sarifMessage{Text: strings.Join(parts, "\n")},
		}
		if loc, ok := primaryLocation(r); ok && loc.File != "" {
			region := sarifRegion{
				StartLine:   loc.Line,
				StartColumn: loc.StartCol + 1,
				EndColumn:   loc.EndCol + 1,
			}
			for _, sn := range r.Snippets {
				if len(sn.Annotations) > 0 {
					region.Snippet = &sarifMessage{Text: sn.Source}
					break
				}
			}
			res.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysical{
					ArtifactLocation: sarifArtifact{URI: loc.File},
					Region:           region,
				},
			}}
		}
		results = append(results, res)
	}

	log := sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: meta.InformationURI,
			}},
			Results: results,
		}},
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}
