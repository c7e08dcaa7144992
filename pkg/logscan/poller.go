package logscan

import (
	"context"
	"time"

	"github.com/arthur-debert/fimwatch/pkg/types"
)

// DefaultInterval is the pause between polls when none is configured
const DefaultInterval = 100 * time.Millisecond

// Outcome is the result of a polling run. TimedOut is a normal outcome, not
// an error: the caller decides whether a missing event fails the test.
type Outcome struct {
	Results  []types.MatchResult
	TimedOut bool
	Polls    int
}

// First returns the first result, or a NoMatch result if there is none
func (o Outcome) First() types.MatchResult {
	if len(o.Results) == 0 {
		return types.NoMatchResult()
	}
	return o.Results[0]
}

// Poller repeatedly scans until a match appears or the context is done
type Poller struct {
	scanner  *Scanner
	interval time.Duration
}

// NewPoller wraps scanner in a polling loop. A non-positive interval falls
// back to DefaultInterval.
func NewPoller(scanner *Scanner, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{scanner: scanner, interval: interval}
}

// Wait polls until one line matches. It returns TimedOut when ctx ends first.
// Scan errors stop the loop immediately; there is no retry.
func (p *Poller) Wait(ctx context.Context, cursor *Cursor, ms ...types.Matcher) (Outcome, error) {
	return p.WaitN(ctx, cursor, 1, ms...)
}

// WaitN polls until n matches have been collected. Each match advances the
// cursor, so the same line is never reported twice.
func (p *Poller) WaitN(ctx context.Context, cursor *Cursor, n int, ms ...types.Matcher) (Outcome, error) {
	var outcome Outcome
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		// drain everything already in the file before sleeping
		for len(outcome.Results) < n {
			outcome.Polls++
			result, err := p.scanner.Scan(cursor, ms...)
			if err != nil {
				return outcome, err
			}
			if !result.Matched() {
				break
			}
			outcome.Results = append(outcome.Results, result)
		}
		if len(outcome.Results) >= n {
			return outcome, nil
		}

		select {
		case <-ctx.Done():
			outcome.TimedOut = true
			return outcome, nil
		case <-ticker.C:
		}
	}
}

// WaitTimeout is Wait bounded by a timeout instead of a context
func (p *Poller) WaitTimeout(timeout time.Duration, cursor *Cursor, ms ...types.Matcher) (Outcome, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.Wait(ctx, cursor, ms...)
}
