package diagfmt

// Level is the severity painted on titles, annotations and footers.
type Level uint8

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelNote
	LevelHelp
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelInfo:
		return "info"
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	}
	return "unknown"
}

// Annotation highlights the byte range [Start, End) of a snippet's source.
type Annotation struct {
	Level Level
	Start uint32
	End   uint32
	Label string
}

// Snippet is one block of source text shown in a report.
type Snippet struct {
	Source      string
	Origin      string // printed as "--> origin:line" when set
	LineStart   uint32
	Annotations []Annotation
}

// Footer is a trailing "= level: text" line.
type Footer struct {
	Level Level
	Text  string
}

// Report is a structured annotation request.
type Report struct {
	Level    Level
	Title    string
	Snippets []Snippet
	Footers  []Footer
}

// IsPlaceholder reports whether the report carries no source blocks.
func (r Report) IsPlaceholder() bool {
	return len(r.Snippets) == 0
}
