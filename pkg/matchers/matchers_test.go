package matchers

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const logPrefix = "2019/11/05 10:21:32 ossec-syscheckd: INFO: "

func TestCatalogueMatchers(t *testing.T) {
	tests := []struct {
		name     string
		matcher  string
		line     string
		wantKind types.ResultKind
		wantText string
	}{
		{
			name:     "end of scan returns the line verbatim",
			matcher:  EndScan,
			line:     logPrefix + "(6009): File integrity monitoring scan ended.",
			wantKind: types.TextResult,
			wantText: logPrefix + "(6009): File integrity monitoring scan ended.",
		},
		{
			name:     "end of scan ignores other lines",
			matcher:  EndScan,
			line:     logPrefix + "File integrity monitoring scan started.",
			wantKind: types.NoMatch,
		},
		{
			name:     "health check",
			matcher:  WhodataHealthCheck,
			line:     logPrefix + "(6011): Whodata health-check: Success.",
			wantKind: types.FlagResult,
		},
		{
			name:     "rules manipulation",
			matcher:  AuditRulesManipulation,
			line:     "ossec-syscheckd: WARNING: Detected Audit rules manipulation: Audit rules removed.",
			wantKind: types.FlagResult,
		},
		{
			name:     "audit connected",
			matcher:  AuditConnected,
			line:     logPrefix + "(6030): Audit: connected",
			wantKind: types.FlagResult,
		},
		{
			name:     "audit rule added",
			matcher:  AuditRuleAdded,
			line:     logPrefix + "Added audit rule for monitoring directory: '/testdir1'",
			wantKind: types.TextResult,
			wantText: "/testdir1",
		},
		{
			name:     "audit rule loaded",
			matcher:  AuditRuleLoaded,
			line:     "ossec-syscheckd: DEBUG: Audit rule loaded: -w /etc/passwd -p wa -k wazuh_fim",
			wantKind: types.TextResult,
			wantText: "/etc/passwd",
		},
		{
			name:     "realtime directory added",
			matcher:  RealtimeDirectoryAdded,
			line:     logPrefix + "Directory added for real time monitoring: '/testdir2'",
			wantKind: types.TextResult,
			wantText: "/testdir2",
		},
		{
			name:     "capture is trimmed",
			matcher:  RealtimeDirectoryAdded,
			line:     "Directory added for real time monitoring: '  /padded  '",
			wantKind: types.TextResult,
			wantText: "/padded",
		},
		{
			name:     "capture needs the full marker",
			matcher:  AuditRuleAdded,
			line:     "Added audit rule for monitoring directory: /no-quotes",
			wantKind: types.NoMatch,
		},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := reg.Get(tt.matcher)
			require.NoError(t, err)

			got, err := m.Match(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantKind == types.TextResult {
				assert.Equal(t, tt.wantText, got.Text)
			}
			if tt.wantKind == types.FlagResult {
				assert.True(t, got.Flag)
			}
		})
	}
}

func TestEventMatcher(t *testing.T) {
	m := NewEvent(SendingEvent, SendingEventPattern)

	t.Run("decodes payload", func(t *testing.T) {
		line := `ossec-syscheckd: DEBUG: (6321): Sending event: {"type":"event","data":{"path":"/testdir/file","attributes":{"size":12,"inode":1234}}}`
		got, err := m.Match(line)
		require.NoError(t, err)
		require.Equal(t, types.EventResult, got.Kind)

		data := got.Event["data"].(map[string]interface{})
		assert.Equal(t, "/testdir/file", data["path"])
		attrs := data["attributes"].(map[string]interface{})
		assert.Equal(t, json.Number("12"), attrs["size"])
	})

	t.Run("no match", func(t *testing.T) {
		got, err := m.Match("ossec-syscheckd: DEBUG: nothing to see here")
		require.NoError(t, err)
		assert.False(t, got.Matched())
	})

	malformed := []struct {
		name    string
		payload string
		code    errors.ErrorCode
	}{
		{"truncated object", `{"type":"event"`, errors.ErrDecode},
		{"not json", `type=event`, errors.ErrDecode},
		{"trailing data", `{"type":"event"} extra`, errors.ErrDecode},
		{"array", `["a","b"]`, errors.ErrPayloadType},
		{"string", `"event"`, errors.ErrPayloadType},
		{"number", `42`, errors.ErrPayloadType},
		{"null", `null`, errors.ErrPayloadType},
	}
	for _, tt := range malformed {
		t.Run("malformed "+tt.name, func(t *testing.T) {
			_, err := m.Match("Sending event: " + tt.payload)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err))
			assert.Equal(t, tt.payload, errors.GetErrorDetails(err)["payload"])
		})
	}
}

func TestDefaultOrder(t *testing.T) {
	assert.Equal(t, []string{
		EndScan,
		SendingEvent,
		WhodataHealthCheck,
		AuditRuleAdded,
		AuditRulesManipulation,
		AuditConnected,
		AuditRuleLoaded,
		RealtimeDirectoryAdded,
	}, Default().List())
}

func TestLookup(t *testing.T) {
	ms, err := Lookup(AuditConnected, EndScan)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, AuditConnected, ms[0].Name())
	assert.Equal(t, EndScan, ms[1].Name())

	_, err = Lookup(EndScan, "no-such-matcher")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, "no-such-matcher", errors.GetErrorDetails(err)["matcher"])
	assert.Contains(t, err.Error(), "known: end-scan, event, ")
}

func TestNewCapturePanicsWithoutGroup(t *testing.T) {
	assert.Panics(t, func() { NewCapture("bad", `no group here`) })
	assert.Panics(t, func() { NewEvent("bad", `(a)(b)`) })
}

func TestFunc(t *testing.T) {
	m := NewFunc("always", func(text string) (types.MatchResult, error) {
		return types.TextMatch(text), nil
	})
	got, err := m.Match("x")
	require.NoError(t, err)
	assert.Equal(t, "always", m.Name())
	assert.Equal(t, "x", got.Text)
}

func TestDescribe(t *testing.T) {
	ms, err := Lookup(EndScan, AuditRuleLoaded, SendingEvent)
	require.NoError(t, err)

	assert.Equal(t, "contains "+EndScanMarker, Describe(ms[0]))
	assert.Equal(t, "captures ^"+AuditRuleLoadedPattern, Describe(ms[1]))
	assert.Equal(t, "decodes ^"+SendingEventPattern, Describe(ms[2]))
	assert.Equal(t, "custom", Describe(NewFunc("f", nil)))
}
