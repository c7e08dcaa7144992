package matchers

import (
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/registry"
	"github.com/arthur-debert/fimwatch/pkg/types"
)

// Catalogue names
const (
	EndScan                = "end-scan"
	SendingEvent           = "event"
	WhodataHealthCheck     = "whodata-health-check"
	AuditRuleAdded         = "audit-rule-added"
	AuditRulesManipulation = "audit-rules-manipulation"
	AuditConnected         = "audit-connected"
	AuditRuleLoaded        = "audit-rule-loaded"
	RealtimeDirectoryAdded = "realtime-directory-added"
)

// Log markers emitted by the FIM agent
const (
	EndScanMarker      = "File integrity monitoring scan ended."
	HealthCheckMarker  = "Whodata health-check: Success."
	ManipulationMarker = "Detected Audit rules manipulation"
	ConnectedMarker    = "(6030): Audit: connected"
)

// Patterns with one capture group
const (
	SendingEventPattern      = `.*Sending event: (.+)$`
	AuditRuleAddedPattern    = `.*Added audit rule for monitoring directory: '(.+)'`
	AuditRuleLoadedPattern   = `.*Audit rule loaded: -w (.+) -p`
	RealtimeDirectoryPattern = `.*Directory added for real time monitoring: '(.+)'`
)

// Default returns a fresh registry holding the built-in matchers in their
// canonical order
func Default() registry.Registry[types.Matcher] {
	reg := registry.New[types.Matcher]()
	for _, m := range builtins() {
		registry.MustRegister(reg, m.Name(), m)
	}
	return reg
}

// Lookup resolves catalogue names against the default registry, in the
// order given. An unknown name is an ErrNotFound error listing the known
// ones.
func Lookup(names ...string) ([]types.Matcher, error) {
	reg := Default()
	for _, name := range names {
		if !reg.Has(name) {
			return nil, errors.Newf(errors.ErrNotFound, "unknown matcher %q, known: %s",
				name, strings.Join(reg.List(), ", ")).
				WithDetail("matcher", name)
		}
	}
	return registry.Select(reg, names)
}

// Describe summarises what m looks for
func Describe(m types.Matcher) string {
	switch t := m.(type) {
	case *Substring:
		return "contains " + t.Marker()
	case *Capture:
		return "captures " + t.Pattern()
	case *Event:
		return "decodes " + t.Pattern()
	default:
		return "custom"
	}
}

func builtins() []types.Matcher {
	return []types.Matcher{
		NewSubstringLine(EndScan, EndScanMarker),
		NewEvent(SendingEvent, SendingEventPattern),
		NewSubstringFlag(WhodataHealthCheck, HealthCheckMarker),
		NewCapture(AuditRuleAdded, AuditRuleAddedPattern),
		NewSubstringFlag(AuditRulesManipulation, ManipulationMarker),
		NewSubstringFlag(AuditConnected, ConnectedMarker),
		NewCapture(AuditRuleLoaded, AuditRuleLoadedPattern),
		NewCapture(RealtimeDirectoryAdded, RealtimeDirectoryPattern),
	}
}
