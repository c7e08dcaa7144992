// Package options edits key=value settings files such as
// internal_options.conf.
package options

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/arthur-debert/fimwatch/pkg/types"
)

// Set rewrites every line assigning key to key=value. When no line assigns
// key, "\n\nkey=value" is appended; a key mentioned only in a comment counts
// as absent. Applying the same Set twice leaves the file as the first call
// did.
func Set(fs types.FS, path, key, value string) error {
	logger := logging.GetLogger("options")

	if key == "" {
		return errors.New(errors.ErrInvalidInput, "option key must not be empty")
	}
	if strings.ContainsAny(key, "=# \t\r\n") || strings.ContainsAny(value, "# \t\r\n") {
		return errors.Newf(errors.ErrInvalidInput, "option %s=%q: keys and values cannot hold blanks or '#'", key, value).
			WithDetail("key", key)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOptionWrite, "cannot read %s", path).
			WithDetail("path", path)
	}

	updated, found := Apply(string(data), key, value)
	if !found {
		updated += "\n\n" + key + "=" + value
	}
	if updated == string(data) {
		logger.Debug().Str("key", key).Str("path", path).Msg("Option already set")
		return nil
	}

	info, err := fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrOptionWrite, "cannot stat %s", path).
			WithDetail("path", path)
	}
	if err := fs.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrOptionWrite, "cannot write %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("key", key).Str("value", value).Str("path", path).Msg("Option set")
	return nil
}

// Apply performs the substitution on content and reports whether any line
// assigns key. An assignment is key= at the start of a line, after optional
// blanks; its value runs to the first blank or '#'. It does not append.
func Apply(content, key, value string) (string, bool) {
	re := regexp.MustCompile(`^(\s*)` + regexp.QuoteMeta(key) + `=[^\s#]*`)
	replacement := key + "=" + value

	lines := strings.SplitAfter(content, "\n")
	found := false
	for i, line := range lines {
		loc := re.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		found = true
		lines[i] = line[:loc[3]] + replacement + line[loc[1]:]
	}
	return strings.Join(lines, ""), found
}
