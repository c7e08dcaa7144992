// Package attributes evaluates check_* style directives against the
// attributes an agent reported for a file.
package attributes

import (
	"sort"
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
)

// DefaultAttributes are the attribute names a scheduled scan reports when
// no check option is changed
var DefaultAttributes = []string{
	"type",
	"size",
	"perm",
	"uid",
	"gid",
	"user_name",
	"group_name",
	"inode",
	"mtime",
	"hash_md5",
	"hash_sha1",
	"hash_sha256",
	"checksum",
}

// Mode is what a directive demands of one attribute
type Mode int

const (
	// No requires the attribute to be absent
	No Mode = iota
	// Yes requires the attribute to be present
	Yes
	// Except drops the attribute from the allowed set and requires every
	// reported attribute to stay within what remains
	Except
)

func (m Mode) String() string {
	switch m {
	case Yes:
		return "yes"
	case Except:
		return "except"
	default:
		return "no"
	}
}

// ParseMode maps "yes" and "except" to their modes, ignoring case and
// surrounding blanks, so "YES" is Yes. Anything else, including "no", is No.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return Yes
	case "except":
		return Except
	default:
		return No
	}
}

// Directive pairs an attribute name with a mode
type Directive struct {
	Attribute string
	Mode      Mode
}

// Directives are evaluated in slice order. Order matters only for Except,
// which shrinks the allowed set for later entries.
type Directives []Directive

// FromMap builds directives from attribute → mode strings, sorted by
// attribute so evaluation is deterministic
func FromMap(m map[string]string) Directives {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ds := make(Directives, 0, len(keys))
	for _, k := range keys {
		ds = append(ds, Directive{Attribute: k, Mode: ParseMode(m[k])})
	}
	return ds
}

// Check evaluates directives against the event's data.attributes using
// DefaultAttributes
func Check(directives Directives, event map[string]interface{}) error {
	return CheckWithDefaults(DefaultAttributes, directives, event)
}

// CheckWithDefaults is Check with a caller supplied default set. It stops at
// the first violated directive.
func CheckWithDefaults(defaults []string, directives Directives, event map[string]interface{}) error {
	observed, err := Observed(event)
	if err != nil {
		return err
	}

	allowed := make(map[string]bool, len(defaults))
	for _, a := range defaults {
		allowed[a] = true
	}

	for _, d := range directives {
		_, present := observed[d.Attribute]
		switch d.Mode {
		case Yes:
			if !present {
				return errors.Newf(errors.ErrAttributeMissing, "attribute %s is not reported", d.Attribute).
					WithDetail("attribute", d.Attribute).
					WithDetail("rule", d.Mode.String())
			}
		case Except:
			if !allowed[d.Attribute] {
				return errors.Newf(errors.ErrInvalidInput,
					"%s=except names an attribute not in the allowed set", d.Attribute).
					WithDetail("attribute", d.Attribute).
					WithDetail("rule", d.Mode.String())
			}
			delete(allowed, d.Attribute)
			if extra := outside(observed, allowed); extra != "" {
				return errors.Newf(errors.ErrAttributeUnexpected,
					"attribute %s is reported but %s=except leaves it out", extra, d.Attribute).
					WithDetail("attribute", extra).
					WithDetail("rule", d.Mode.String())
			}
		default:
			if present {
				return errors.Newf(errors.ErrAttributeUnexpected, "attribute %s is reported", d.Attribute).
					WithDetail("attribute", d.Attribute).
					WithDetail("rule", d.Mode.String())
			}
		}
	}
	return nil
}

// Observed returns the keys of event.data.attributes
func Observed(event map[string]interface{}) (map[string]bool, error) {
	data, ok := event["data"].(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.ErrInvalidInput, "event has no data object")
	}
	attrs, ok := data["attributes"].(map[string]interface{})
	if !ok {
		return nil, errors.New(errors.ErrInvalidInput, "event has no data.attributes object")
	}

	observed := make(map[string]bool, len(attrs))
	for k := range attrs {
		observed[k] = true
	}
	return observed, nil
}

// outside returns the alphabetically first observed key not in allowed
func outside(observed, allowed map[string]bool) string {
	var extra []string
	for k := range observed {
		if !allowed[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return ""
	}
	sort.Strings(extra)
	return extra[0]
}
