// Package matchers implements the line classifiers applied by the log
// scanner. Every matcher is a pure function of one line of text; none of them
// know about cursors or files.
//
// Three shapes cover the FIM agent's log vocabulary:
//
//	Substring  literal marker, yields the line itself or a boolean sentinel
//	Capture    anchored pattern with one group, yields the trimmed capture
//	Event      "Sending event: <json>", yields the decoded payload
//
// When two matchers could claim the same line, the order they are passed to
// the scanner decides. That order is chosen at the call site.
package matchers
