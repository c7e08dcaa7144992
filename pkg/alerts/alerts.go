// Package alerts reads FIM sub-records from the manager's JSON alert log.
package alerts

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/rs/zerolog"
)

// FIMKey is the top-level key holding the FIM part of an alert
const FIMKey = "syscheck"

// Source reads an append-only file of JSON alerts. Each call re-reads the
// whole file.
type Source struct {
	fs     types.FS
	path   string
	logger zerolog.Logger
}

// NewSource creates a source for the alert log at path
func NewSource(fs types.FS, path string) *Source {
	return &Source{
		fs:     fs,
		path:   path,
		logger: logging.GetLogger("alerts").With().Str("file", path).Logger(),
	}
}

// LoadRecent returns the FIM sub-records of the last n alerts that carry
// one, oldest first. n == 0 returns all of them. Alerts without the key, or
// with a null value, are skipped.
//
// Values may be separated by newlines or simply concatenated. A truncated
// value at the end of the file is still being written and is ignored.
func (s *Source) LoadRecent(n int) ([]types.AlertRecord, error) {
	if n < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "alert count must not be negative, got %d", n)
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLogRead, "cannot open alerts %s", s.path).
			WithDetail("path", s.path)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var records []types.AlertRecord
	total := 0
	for {
		var raw interface{}
		err := dec.Decode(&raw)
		if err == io.EOF || stderrors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrDecode, "malformed alert in %s", s.path).
				WithDetail("path", s.path).
				WithDetail("index", total)
		}
		total++

		record, extractErr := extract(raw)
		if extractErr != nil {
			return nil, extractErr.WithDetail("index", total-1).WithDetail("path", s.path)
		}
		if record != nil {
			records = append(records, record)
		}
	}

	s.logger.Debug().Int("alerts", total).Int("fim", len(records)).Msg("Alerts loaded")

	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

func extract(raw interface{}) (types.AlertRecord, *errors.FimError) {
	alert, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrDecode, "alert is %T, expected an object", raw)
	}
	sub, present := alert[FIMKey]
	if !present || sub == nil {
		return nil, nil
	}
	obj, ok := sub.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrDecode, "%s is %T, expected an object", FIMKey, sub)
	}
	return types.AlertRecord(obj), nil
}
