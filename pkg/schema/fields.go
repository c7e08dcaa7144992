package schema

import (
	"fmt"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/types"
)

// Field pairs an alert field with its checker. Rule names the checker in
// failure details.
type Field struct {
	Name    string
	Rule    string
	Checker Checker
}

// Fields is the alert contract, checked in this order
var Fields = []Field{
	{"path", "path", CheckPath},
	{"size_after", "integer-string", CheckIntegerString},
	{"perm_after", "integer-string", CheckIntegerString},
	{"uid_after", "integer-string", CheckIntegerString},
	{"gid_after", "integer-string", CheckIntegerString},
	{"md5_after", "md5", CheckMD5},
	{"sha1_after", "sha1", CheckSHA1},
	{"sha256_after", "sha256", CheckSHA256},
	{"uname_after", "string", CheckString},
	{"gname_after", "string", CheckString},
	{"mtime_after", "datetime", CheckDatetime},
	{"inode_after", "integer", CheckInteger},
	{"event", "event", CheckEvent},
}

// FieldNames returns the names of Fields in order
func FieldNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks record against Fields. Excluded fields must be absent, all
// others present and well formed. The first violation is returned.
func Validate(record types.AlertRecord, excluded ...string) error {
	if violations := Violations(record, excluded...); len(violations) > 0 {
		return violations[0]
	}
	return nil
}

// Violations returns every failed field check, in Fields order. Excluded
// names that are not in Fields are ignored.
func Violations(record types.AlertRecord, excluded ...string) []error {
	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	var violations []error
	for _, f := range Fields {
		value, present := record[f.Name]
		switch {
		case skip[f.Name] && present:
			violations = append(violations,
				errors.Newf(errors.ErrFieldUnexpected, "field %s is excluded but present", f.Name).
					WithDetail("field", f.Name).
					WithDetail("rule", "absent"))
		case skip[f.Name]:
		case !present:
			violations = append(violations,
				errors.Newf(errors.ErrFieldMissing, "field %s is missing", f.Name).
					WithDetail("field", f.Name).
					WithDetail("rule", f.Rule))
		case !f.Checker(value):
			violations = append(violations,
				errors.Newf(errors.ErrFieldInvalid, "field %s fails %s check: %s", f.Name, f.Rule, describe(value)).
					WithDetail("field", f.Name).
					WithDetail("rule", f.Rule))
		}
	}
	return violations
}

func describe(value interface{}) string {
	if s, ok := value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v (%T)", value, value)
}
