// Package schema validates FIM alert records and decoded agent events.
//
// Alert validation is allow-list driven. Every field of the Fields table that
// is not excluded must be present and satisfy its checker; every excluded
// field must be absent. Fields outside the table are never inspected.
//
// Event envelopes (the JSON after "Sending event:") are checked against an
// embedded JSON Schema by EventValidator.
package schema
