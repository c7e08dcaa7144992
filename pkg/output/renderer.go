package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// Verdict is the outcome of one check
type Verdict struct {
	Check   string                 `json:"check" yaml:"check"`
	Passed  bool                   `json:"passed" yaml:"passed"`
	Code    string                 `json:"code,omitempty" yaml:"code,omitempty"`
	Message string                 `json:"message,omitempty" yaml:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// VerdictFor builds a verdict from a check's error
func VerdictFor(check string, err error) Verdict {
	if err == nil {
		return Verdict{Check: check, Passed: true}
	}
	v := Verdict{
		Check:   check,
		Code:    string(errors.GetErrorCode(err)),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
	if fimErr, ok := err.(*errors.FimError); ok {
		v.Message = fimErr.Message
	}
	return v
}

// Renderer writes results in one format
type Renderer struct {
	w      io.Writer
	format Format
	styles Styles
}

// NewRenderer creates a renderer. FormatAuto must be resolved by the caller
// with DetectFormat; it is treated as FormatText here.
func NewRenderer(w io.Writer, format Format) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if format != FormatTerminal {
		lr.SetColorProfile(termenv.Ascii)
	}
	styles, err := LoadStyles(lr, embeddedStyles)
	if err != nil {
		styles = Styles{}
	}
	return &Renderer{w: w, format: format, styles: styles}
}

// Format returns the renderer's format
func (r *Renderer) Format() Format {
	return r.format
}

// Structured reports whether the format is JSON or YAML
func (r *Renderer) Structured() bool {
	return r.format == FormatJSON || r.format == FormatYAML
}

// Value writes v as JSON or YAML. In text formats it falls back to YAML.
func (r *Renderer) Value(v interface{}) error {
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(plain(v)); err != nil {
		return err
	}
	return enc.Close()
}

// scanReport is the structured form of a scan or wait outcome
type scanReport struct {
	Matched  bool                   `json:"matched" yaml:"matched"`
	TimedOut bool                   `json:"timed_out" yaml:"timed_out"`
	Matcher  string                 `json:"matcher,omitempty" yaml:"matcher,omitempty"`
	Line     int                    `json:"line,omitempty" yaml:"line,omitempty"`
	Kind     string                 `json:"kind" yaml:"kind"`
	Text     string                 `json:"text,omitempty" yaml:"text,omitempty"`
	Event    map[string]interface{} `json:"event,omitempty" yaml:"event,omitempty"`
	Cursor   int                    `json:"cursor" yaml:"cursor"`
}

// Match writes a scan result. cursor is the cursor after the scan.
func (r *Renderer) Match(result types.MatchResult, timedOut bool, cursor int) error {
	if r.Structured() {
		return r.Value(scanReport{
			Matched:  result.Matched(),
			TimedOut: timedOut,
			Matcher:  result.Matcher,
			Line:     result.Line.Number,
			Kind:     result.Kind.String(),
			Text:     result.Text,
			Event:    result.Event,
			Cursor:   cursor,
		})
	}

	switch {
	case timedOut:
		r.printf("%s no match before timeout %s\n",
			r.styles.Get("Timeout").Render("TIMEOUT"),
			r.styles.Get("Muted").Render(fmt.Sprintf("(cursor %d)", cursor)))
		return nil
	case !result.Matched():
		r.printf("%s %s\n",
			r.styles.Get("Muted").Render("no match"),
			r.styles.Get("Muted").Render(fmt.Sprintf("(cursor %d)", cursor)))
		return nil
	}

	r.printf("%s %s line %d\n",
		r.styles.Get("Pass").Render("MATCH"),
		r.styles.Get("Matcher").Render(result.Matcher),
		result.Line.Number)
	switch result.Kind {
	case types.TextResult:
		r.printf("%s\n", r.styles.Get("Field").Render(result.Text))
	case types.EventResult:
		data, err := json.Marshal(result.Event)
		if err != nil {
			return err
		}
		r.printf("%s\n", r.styles.Get("Field").Render(string(data)))
	}
	return nil
}

// Records writes alert records
func (r *Renderer) Records(records []types.AlertRecord) error {
	if r.Structured() {
		if records == nil {
			records = []types.AlertRecord{}
		}
		return r.Value(records)
	}
	if len(records) == 0 {
		r.printf("%s\n", r.styles.Get("Muted").Render("no FIM alerts"))
		return nil
	}
	for i, rec := range records {
		r.printf("%s\n", r.styles.Get("Header").Render(fmt.Sprintf("alert %d", i+1)))
		for _, field := range rec.Fields() {
			r.printf("%s %v\n", r.styles.Get("Field").Render(field+":"), rec[field])
		}
	}
	return nil
}

// Verdicts writes check outcomes and returns the number that failed
func (r *Renderer) Verdicts(verdicts []Verdict) (int, error) {
	failed := 0
	for _, v := range verdicts {
		if !v.Passed {
			failed++
		}
	}
	if r.Structured() {
		return failed, r.Value(verdicts)
	}
	for _, v := range verdicts {
		if v.Passed {
			r.printf("%s %s\n", r.styles.Get("Pass").Render("PASS"), v.Check)
			continue
		}
		r.printf("%s %s %s\n", r.styles.Get("Fail").Render("FAIL"), v.Check, v.Message)
		keys := make([]string, 0, len(v.Details))
		for k := range v.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			r.printf("%s %v\n", r.styles.Get("Field").Render(k+":"), v.Details[k])
		}
	}
	return failed, nil
}

// Lines writes plain lines, styling the first as a header when asked
func (r *Renderer) Lines(header string, lines []string) error {
	if r.Structured() {
		return r.Value(lines)
	}
	if header != "" {
		r.printf("%s\n", r.styles.Get("Header").Render(header))
	}
	if len(lines) > 0 {
		r.printf("%s\n", strings.Join(lines, "\n"))
	}
	return nil
}

func (r *Renderer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// plain converts json.Number values so YAML prints them as numbers
func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = plain(val)
		}
		return out
	case types.AlertRecord:
		return plain(map[string]interface{}(t))
	case []types.AlertRecord:
		out := make([]interface{}, len(t))
		for i, rec := range t {
			out[i] = plain(rec)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = plain(val)
		}
		return out
	case scanReport:
		t.Event, _ = plain(t.Event).(map[string]interface{})
		return t
	default:
		return v
	}
}
