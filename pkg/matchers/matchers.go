package matchers

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/types"
)

// Substring matches lines containing a literal marker
type Substring struct {
	name   string
	marker string
	asLine bool
}

// NewSubstringLine returns a matcher yielding the whole line as text when it
// contains marker
func NewSubstringLine(name, marker string) *Substring {
	return &Substring{name: name, marker: marker, asLine: true}
}

// NewSubstringFlag returns a matcher yielding a boolean sentinel when the line
// contains marker
func NewSubstringFlag(name, marker string) *Substring {
	return &Substring{name: name, marker: marker}
}

func (m *Substring) Name() string { return m.name }

// Marker returns the literal the matcher looks for
func (m *Substring) Marker() string { return m.marker }

func (m *Substring) Match(text string) (types.MatchResult, error) {
	if !strings.Contains(text, m.marker) {
		return types.NoMatchResult(), nil
	}
	if m.asLine {
		return types.TextMatch(text), nil
	}
	return types.FlagMatch(), nil
}

// Capture matches lines against a pattern with exactly one capture group
type Capture struct {
	name    string
	pattern *regexp.Regexp
}

// NewCapture compiles pattern, which is anchored at the start of the line.
// It panics if the pattern is invalid or does not have one group.
func NewCapture(name, pattern string) *Capture {
	re := regexp.MustCompile(anchor(pattern))
	if re.NumSubexp() != 1 {
		panic("matchers: capture pattern for " + name + " must have exactly one group")
	}
	return &Capture{name: name, pattern: re}
}

func (m *Capture) Name() string { return m.name }

// Pattern returns the anchored expression
func (m *Capture) Pattern() string { return m.pattern.String() }

func (m *Capture) Match(text string) (types.MatchResult, error) {
	groups := m.pattern.FindStringSubmatch(text)
	if groups == nil {
		return types.NoMatchResult(), nil
	}
	return types.TextMatch(strings.TrimSpace(groups[1])), nil
}

// Event matches "Sending event: <json>" lines and decodes the payload
type Event struct {
	name    string
	pattern *regexp.Regexp
}

// NewEvent returns a matcher for the event emission pattern. The pattern's
// single group must capture the JSON fragment.
func NewEvent(name, pattern string) *Event {
	re := regexp.MustCompile(anchor(pattern))
	if re.NumSubexp() != 1 {
		panic("matchers: event pattern for " + name + " must have exactly one group")
	}
	return &Event{name: name, pattern: re}
}

func (m *Event) Name() string { return m.name }

// Pattern returns the anchored expression
func (m *Event) Pattern() string { return m.pattern.String() }

// Match decodes the captured JSON object. A payload that does not parse as
// a single JSON value is an ErrDecode error; one that parses to an array,
// scalar or null is an ErrPayloadType error.
func (m *Event) Match(text string) (types.MatchResult, error) {
	groups := m.pattern.FindStringSubmatch(text)
	if groups == nil {
		return types.NoMatchResult(), nil
	}

	event, err := DecodeObject(groups[1])
	if err != nil {
		code := errors.ErrDecode
		if errors.IsErrorCode(err, errors.ErrPayloadType) {
			code = errors.ErrPayloadType
		}
		return types.NoMatchResult(), errors.Wrapf(err, code,
			"matcher %s: malformed event payload", m.name).
			WithDetail("payload", groups[1])
	}
	return types.EventMatch(event), nil
}

// DecodeObject decodes exactly one JSON value from payload, keeping numbers
// as json.Number. The value must be an object.
func DecodeObject(payload string) (map[string]interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, errors.Wrap(err, errors.ErrDecode, "payload is not valid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrDecode, "unexpected data after JSON value")
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrPayloadType, "payload is %s, expected an object", jsonKind(value))
	}
	return obj, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}

// Func adapts a plain function to types.Matcher
type Func struct {
	name string
	fn   func(text string) (types.MatchResult, error)
}

// NewFunc wraps fn as a named matcher
func NewFunc(name string, fn func(text string) (types.MatchResult, error)) *Func {
	return &Func{name: name, fn: fn}
}

func (m *Func) Name() string { return m.name }

func (m *Func) Match(text string) (types.MatchResult, error) {
	return m.fn(text)
}

func anchor(pattern string) string {
	if strings.HasPrefix(pattern, "^") {
		return pattern
	}
	return "^" + pattern
}
