package fixtures

import (
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/errors"
)

// Kind is the type of file a fixture creates
type Kind int

const (
	Regular Kind = iota
	FIFO
	Symlink
	Socket
)

var kindNames = map[Kind]string{
	Regular: "regular",
	FIFO:    "fifo",
	Symlink: "sys_link",
	Socket:  "socket",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every kind in declaration order
func Kinds() []Kind {
	return []Kind{Regular, FIFO, Symlink, Socket}
}

// ParseKind accepts the names returned by Kind.String. "symlink" is accepted
// as an alias of "sys_link".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "symlink" {
		return Symlink, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Regular, errors.Newf(errors.ErrInvalidInput, "unknown file kind %q", s).
		WithDetail("kind", s)
}
