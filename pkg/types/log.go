package types

// LogLine is one line read from a monitored log file. Number is 1-based.
type LogLine struct {
	Number int
	Text   string
}

// ResultKind tells which payload of a MatchResult is set
type ResultKind int

const (
	// NoMatch means the matcher did not recognise the line
	NoMatch ResultKind = iota
	// TextResult carries a captured or verbatim string in Text
	TextResult
	// FlagResult is a boolean sentinel; Flag is always true
	FlagResult
	// EventResult carries a decoded JSON payload in Event
	EventResult
)

// String returns the kind name used in CLI output
func (k ResultKind) String() string {
	switch k {
	case TextResult:
		return "text"
	case FlagResult:
		return "flag"
	case EventResult:
		return "event"
	default:
		return "no-match"
	}
}

// MatchResult is what a Matcher produces for one line. The scanner fills in
// Matcher and Line once a result is accepted.
type MatchResult struct {
	Kind    ResultKind             `json:"kind" yaml:"kind"`
	Matcher string                 `json:"matcher,omitempty" yaml:"matcher,omitempty"`
	Line    LogLine                `json:"line" yaml:"line"`
	Text    string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Flag    bool                   `json:"flag,omitempty" yaml:"flag,omitempty"`
	Event   map[string]interface{} `json:"event,omitempty" yaml:"event,omitempty"`
}

// Matched reports whether the result carries a payload
func (r MatchResult) Matched() bool {
	return r.Kind != NoMatch
}

// NoMatchResult is the zero result returned when nothing matched
func NoMatchResult() MatchResult {
	return MatchResult{Kind: NoMatch}
}

// TextMatch builds a TextResult
func TextMatch(text string) MatchResult {
	return MatchResult{Kind: TextResult, Text: text}
}

// FlagMatch builds a FlagResult
func FlagMatch() MatchResult {
	return MatchResult{Kind: FlagResult, Flag: true}
}

// EventMatch builds an EventResult
func EventMatch(event map[string]interface{}) MatchResult {
	return MatchResult{Kind: EventResult, Event: event}
}
