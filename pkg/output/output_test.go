package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"term", FormatTerminal, false},
		{"plain", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"xml", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" {
				assert.NotEqual(t, "unknown", got.String())
			}
		})
	}
}

func TestLoadStyles(t *testing.T) {
	styles, err := LoadStyles(lipgloss.NewRenderer(&bytes.Buffer{}), embeddedStyles)
	require.NoError(t, err)
	for _, name := range []string{"Pass", "Fail", "Timeout", "Header", "Matcher", "Field", "Muted"} {
		assert.Contains(t, styles, name)
	}
	assert.NotNil(t, styles.Get("missing"))

	_, err = LoadStyles(lipgloss.NewRenderer(&bytes.Buffer{}), []byte("colors: [oops"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func eventResult() types.MatchResult {
	r := types.EventMatch(map[string]interface{}{
		"type": "event",
		"data": map[string]interface{}{"path": "/a", "timestamp": json.Number("1573046497")},
	})
	r.Matcher = "event"
	r.Line = types.LogLine{Number: 5, Text: "..."}
	return r
}

func TestMatch_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)

	require.NoError(t, r.Match(eventResult(), false, 5))
	assert.Contains(t, buf.String(), "MATCH event line 5")
	assert.Contains(t, buf.String(), `"path":"/a"`)
	assert.NotContains(t, buf.String(), "\x1b[")

	buf.Reset()
	require.NoError(t, r.Match(types.NoMatchResult(), true, 3))
	assert.Contains(t, buf.String(), "TIMEOUT")
	assert.Contains(t, buf.String(), "(cursor 3)")

	buf.Reset()
	require.NoError(t, r.Match(types.NoMatchResult(), false, 3))
	assert.Contains(t, buf.String(), "no match")
}

func TestMatch_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).Match(eventResult(), false, 5))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, true, got["matched"])
	assert.Equal(t, "event", got["kind"])
	assert.Equal(t, float64(5), got["line"])
	assert.Equal(t, float64(5), got["cursor"])
}

func TestMatch_YAMLKeepsNumbers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatYAML).Match(eventResult(), false, 5))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	event := got["event"].(map[string]interface{})
	data := event["data"].(map[string]interface{})
	assert.Equal(t, 1573046497, data["timestamp"])
}

func TestRecords(t *testing.T) {
	records := []types.AlertRecord{
		{"path": "/a", "inode_after": json.Number("12")},
		{"path": "/b"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).Records(records))
	assert.Contains(t, buf.String(), "alert 1")
	assert.Contains(t, buf.String(), "alert 2")
	assert.Contains(t, buf.String(), "inode_after: 12")

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatJSON).Records(nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatText).Records(nil))
	assert.Contains(t, buf.String(), "no FIM alerts")
}

func TestVerdicts(t *testing.T) {
	verdicts := []Verdict{
		VerdictFor("alert 1", nil),
		VerdictFor("alert 2", errors.New(errors.ErrFieldMissing, "field uid_after is missing").
			WithDetail("field", "uid_after")),
	}

	var buf bytes.Buffer
	failed, err := NewRenderer(&buf, FormatText).Verdicts(verdicts)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), "PASS alert 1")
	assert.Contains(t, buf.String(), "FAIL alert 2 field uid_after is missing")
	assert.Contains(t, buf.String(), "field: uid_after")

	buf.Reset()
	failed, err = NewRenderer(&buf, FormatJSON).Verdicts(verdicts)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	var got []Verdict
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "FIELD_MISSING", got[1].Code)
}

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).Lines("matchers", []string{"end-scan", "event"}))
	assert.Equal(t, "matchers\nend-scan\nevent\n", buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatYAML).Lines("ignored", []string{"a"}))
	assert.Equal(t, "- a\n", buf.String())
}
