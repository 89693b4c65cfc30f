package diagfmt

import (
	"encoding/json"
	"io"
)

// JSONOpts configures machine-readable output.
type JSONOpts struct {
	Max           int  // 0 means unlimited
	IncludeSource bool // include snippet bodies
}

// LocationJSON points at the highlighted span of a report.
// Columns are 0-based and the end is exclusive.
type LocationJSON struct {
	File     string `json:"file,omitempty"`
	Line     uint32 `json:"line"`
	StartCol uint32 `json:"start_col"`
	EndCol   uint32 `json:"end_col"`
}

type AnnotationJSON struct {
	Level string `json:"level"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Label string `json:"label,omitempty"`
}

type SnippetJSON struct {
	Origin      string           `json:"origin,omitempty"`
	Line        uint32           `json:"line"`
	Source      string           `json:"source,omitempty"`
	Annotations []AnnotationJSON `json:"annotations,omitempty"`
}

type FooterJSON struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// ReportJSON is the JSON form of one Report.
type ReportJSON struct {
	Level       string        `json:"level"`
	Title       string        `json:"title"`
	Placeholder bool          `json:"placeholder,omitempty"`
	Location    *LocationJSON `json:"location,omitempty"`
	Snippets    []SnippetJSON `json:"snippets,omitempty"`
	Footers     []FooterJSON  `json:"footers,omitempty"`
}

// ReportsOutput is the root of the JSON output.
type ReportsOutput struct {
	Reports []ReportJSON `json:"reports"`
	Count   int          `json:"count"`
}

// primaryLocation returns the origin of the report and the line and columns
// of its first annotation.
func primaryLocation(r Report) (LocationJSON, bool) {
	var loc LocationJSON
	found := false
	for _, sn := range r.Snippets {
		if loc.File == "" && sn.Origin != "" {
			loc.File = sn.Origin
		}
		if !found && len(sn.Annotations) > 0 {
			a := sn.Annotations[0]
			loc.Line, loc.StartCol, loc.EndCol = sn.LineStart, a.Start, a.End
			found = true
		}
	}
	return loc, found
}

// BuildReportsOutput forms the JSON structure without serialising it.
func BuildReportsOutput(reports []Report, opts JSONOpts) ReportsOutput {
	n := len(reports)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	out := make([]ReportJSON, 0, n)
	for _, r := range reports[:n] {
		rj := ReportJSON{
			Level:       r.Level.String(),
			Title:       r.Title,
			Placeholder: r.IsPlaceholder(),
		}
		if loc, ok := primaryLocation(r); ok {
			rj.Location = &loc
		}
		for _, sn := range r.Snippets {
			sj := SnippetJSON{Origin: sn.Origin, Line: sn.LineStart}
			if opts.IncludeSource {
				sj.Source = sn.Source
			}
			for _, a := range sn.Annotations {
				sj.Annotations = append(sj.Annotations, AnnotationJSON{
					Level: a.Level.String(),
					Start: a.Start,
					End:   a.End,
					Label: a.Label,
				})
			}
			rj.Snippets = append(rj.Snippets, sj)
		}
		for _, f := range r.Footers {
			rj.Footers = append(rj.Footers, FooterJSON{Level: f.Level.String(), Text: f.Text})
		}
		out = append(out, rj)
	}
	return ReportsOutput{Reports: out, Count: len(out)}
}

// JSON writes reports as indented JSON.
func JSON(w io.Writer, reports []Report, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReportsOutput(reports, opts))
}
