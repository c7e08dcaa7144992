package types

import (
	"io"
	"io/fs"
)

// File is the subset of an open file fimwatch needs. Both *os.File and
// afero.File satisfy it.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// FS is the filesystem interface required for fimwatch operations
type FS interface {
	// File operations
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error

	// Other operations
	Remove(name string) error

	// For in-memory filesystems Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Matcher classifies a single log line. Implementations must be pure: they
// never look at or change scanning state, and the same text always yields the
// same result.
type Matcher interface {
	// Name returns the stable catalogue name of the matcher
	Name() string

	// Match returns a result whose Kind is NoMatch when the line is not
	// relevant. An error is returned only when the line matched but its
	// payload could not be decoded.
	Match(text string) (MatchResult, error)
}
