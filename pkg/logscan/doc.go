// Package logscan incrementally observes a log file that a live process keeps
// appending to.
//
// A Cursor remembers the ordinal of the last line that produced a confirmed
// match. Each Scan re-reads the file from its first line, skips everything up
// to and including the cursor, and applies the given matchers in order to
// each newer line. The first matching line moves the cursor and is returned;
// lines that were read but did not match leave the cursor alone, so a later
// Scan with different matchers still sees them.
//
// Counting lines from the start on every call tolerates appenders that
// rewrite the file between polls. If the file shrinks, the cursor may point
// past lines that now hold different content; no attempt is made to detect
// that.
//
// Scan never waits. Poller wraps it in a caller-owned loop bounded by a
// context deadline, which is where timeouts live.
package logscan
