package schema

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Checker reports whether a decoded JSON value is well formed
type Checker func(value interface{}) bool

var (
	pathRe     = regexp.MustCompile(`^(?:/[^/]+)*$`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
	md5Re      = regexp.MustCompile(`^[a-f0-9]{32}$`)
	sha1Re     = regexp.MustCompile(`^[0-9a-f]{5,40}$`)
	sha256Re   = regexp.MustCompile(`^[a-f0-9]{64}$`)
	datetimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
)

// Event kinds reported by the agent
const (
	EventAdded    = "added"
	EventModified = "modified"
	EventDeleted  = "deleted"
)

func matches(re *regexp.Regexp) Checker {
	return func(value interface{}) bool {
		s, ok := value.(string)
		return ok && re.MatchString(s)
	}
}

// CheckPath accepts zero or more /segment components, no trailing slash
var CheckPath = matches(pathRe)

// CheckIntegerString accepts one or more ASCII digits
var CheckIntegerString = matches(digitsRe)

// CheckMD5 accepts exactly 32 lowercase hex characters
var CheckMD5 = matches(md5Re)

// CheckSHA1 accepts 5 to 40 lowercase hex characters. Short prefixes are
// valid.
var CheckSHA1 = matches(sha1Re)

// CheckSHA256 accepts exactly 64 lowercase hex characters
var CheckSHA256 = matches(sha256Re)

// CheckDatetime accepts YYYY-MM-DDTHH:MM:SS with no zone or fraction
var CheckDatetime = matches(datetimeRe)

// CheckString accepts any string
func CheckString(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

// CheckInteger accepts integral numbers. Booleans and values decoded with a
// fraction or exponent are rejected.
func CheckInteger(value interface{}) bool {
	switch v := value.(type) {
	case json.Number:
		if strings.ContainsAny(string(v), ".eE") {
			return false
		}
		_, err := v.Int64()
		return err == nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

// CheckEvent accepts added, modified and deleted
func CheckEvent(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	switch s {
	case EventAdded, EventModified, EventDeleted:
		return true
	}
	return false
}
