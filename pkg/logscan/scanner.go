package logscan

import (
	"bufio"
	"io"
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/arthur-debert/fimwatch/pkg/matchers"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Scanner applies matchers to the lines of one log file
type Scanner struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
}

// NewScanner creates a scanner for the log file at path
func NewScanner(fs types.FS, path string) *Scanner {
	return &Scanner{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("logscan").With().Str("file", path).Logger(),
	}
}

// Path returns the monitored file
func (s *Scanner) Path() string {
	return s.path
}

// Scan reads the file from the start and returns the first line after the
// cursor that one of ms matches, trying ms in order for each line. On a match
// the cursor moves to that line. When no line matches the result's Kind is
// types.NoMatch and the cursor is unchanged.
//
// A final line without a trailing newline is still being written and is left
// for a later call: a log ending in an unterminated marker line reports no
// match until the agent writes the newline. Open and read failures are ErrLogRead errors; a matcher's
// decode error is returned as is, with the cursor unchanged.
func (s *Scanner) Scan(cursor *Cursor, ms ...types.Matcher) (types.MatchResult, error) {
	if len(ms) == 0 {
		return types.NoMatchResult(), errors.New(errors.ErrInvalidInput, "scan needs at least one matcher")
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		return types.NoMatchResult(), errors.Wrapf(err, errors.ErrLogRead, "cannot open log %s", s.path).
			WithDetail("path", s.path)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := bufio.NewReader(f)
	number := 0
	for {
		text, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return types.NoMatchResult(), errors.Wrapf(err, errors.ErrLogRead, "cannot read log %s", s.path).
				WithDetail("path", s.path).
				WithDetail("line", number+1)
		}

		number++
		if number <= cursor.Line() {
			continue
		}

		line := types.LogLine{Number: number, Text: strings.TrimRight(text, "\r\n")}
		result, err := matchLine(line, ms)
		if err != nil {
			return types.NoMatchResult(), err
		}
		if result.Matched() {
			s.logger.Debug().
				Str("matcher", result.Matcher).
				Int("from", cursor.Line()).
				Int("to", line.Number).
				Msg("Cursor advanced")
			cursor.advance(line.Number)
			return result, nil
		}
	}

	s.logger.Trace().Int("cursor", cursor.Line()).Int("lines", number).Msg("No new match")
	return types.NoMatchResult(), nil
}

// IsScanEnded looks for the end-of-scan marker after the cursor. It returns
// the marker's line ordinal, or -1 when the scan has not ended yet. Like
// Scan, it does not see a marker line until its newline has been written.
func (s *Scanner) IsScanEnded(cursor *Cursor) (int, error) {
	result, err := s.Scan(cursor, matchers.NewSubstringLine(matchers.EndScan, matchers.EndScanMarker))
	if err != nil {
		return -1, err
	}
	if !result.Matched() {
		return -1, nil
	}
	return result.Line.Number, nil
}

func matchLine(line types.LogLine, ms []types.Matcher) (types.MatchResult, error) {
	for _, m := range ms {
		result, err := m.Match(line.Text)
		if err != nil {
			if fimErr, ok := err.(*errors.FimError); ok {
				return types.NoMatchResult(), fimErr.WithDetail("line", line.Number)
			}
			return types.NoMatchResult(), errors.Wrapf(err, errors.ErrDecode,
				"matcher %s failed on line %d", m.Name(), line.Number)
		}
		if result.Matched() {
			result.Matcher = m.Name()
			result.Line = line
			return result, nil
		}
	}
	return types.NoMatchResult(), nil
}
