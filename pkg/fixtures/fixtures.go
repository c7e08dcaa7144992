package fixtures

import (
	"io/fs"
	"net"
	"os"
	"path/filepath"

	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Creator makes one kind of file at path
type Creator interface {
	Create(path string, content Content) error
}

// CreatorFunc adapts a function to Creator
type CreatorFunc func(path string, content Content) error

func (f CreatorFunc) Create(path string, content Content) error {
	return f(path, content)
}

// Manager performs fixture operations on one filesystem
type Manager struct {
	fs       types.FS
	creators map[Kind]Creator
	logger   zerolog.Logger
}

// NewManager returns a manager whose regular files and symlinks go through
// fsys
func NewManager(fsys types.FS) *Manager {
	m := &Manager{
		fs:     fsys,
		logger: logging.GetLogger("fixtures"),
	}
	m.creators = map[Kind]Creator{
		Regular: CreatorFunc(m.createRegular),
		FIFO:    CreatorFunc(createFIFO),
		Symlink: CreatorFunc(m.createSymlink),
		Socket:  CreatorFunc(m.createSocket),
	}
	return m
}

// Create makes a file of kind named name inside dir. Content is only used by
// regular files.
func (m *Manager) Create(kind Kind, name, dir string, content Content) error {
	creator, ok := m.creators[kind]
	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "no creator for kind %s", kind)
	}
	path := filepath.Join(dir, name)
	if err := creator.Create(path, content); err != nil {
		if fimErr, ok := err.(*errors.FimError); ok {
			return fimErr.WithDetail("path", path).WithDetail("kind", kind.String())
		}
		return errors.Wrapf(err, errors.ErrFixtureCreate, "cannot create %s %s", kind, path).
			WithDetail("path", path).
			WithDetail("kind", kind.String())
	}
	m.logger.Debug().Str("kind", kind.String()).Str("path", path).Msg("Fixture created")
	return nil
}

// Modify appends content to the regular file name inside dir, creating it
// if needed
func (m *Manager) Modify(name, dir string, content Content) error {
	if err := content.validate(); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	f, err := m.fs.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFixtureWrite, "cannot open %s for append", path).
			WithDetail("path", path)
	}
	if _, err := f.Write(content.Data); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrFixtureWrite, "cannot append to %s", path).
			WithDetail("path", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFixtureWrite, "cannot close %s", path).
			WithDetail("path", path)
	}
	m.logger.Debug().Str("path", path).Int("bytes", len(content.Data)).Msg("Fixture modified")
	return nil
}

// Delete removes name inside dir. A missing file is not an error. Dangling
// symlinks are removed too.
func (m *Manager) Delete(name, dir string) error {
	path := filepath.Join(dir, name)
	if _, err := m.fs.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFixtureDelete, "cannot stat %s", path).
			WithDetail("path", path)
	}
	if err := m.fs.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrFixtureDelete, "cannot delete %s", path).
			WithDetail("path", path)
	}
	m.logger.Debug().Str("path", path).Msg("Fixture deleted")
	return nil
}

func (m *Manager) createRegular(path string, content Content) error {
	if err := content.validate(); err != nil {
		return err
	}
	return m.fs.WriteFile(path, content.Data, 0644)
}

// createSymlink makes a link pointing at itself, which the agent reports
// as a symlink without following it anywhere
func (m *Manager) createSymlink(path string, _ Content) error {
	return m.fs.Symlink(path, path)
}

// createSocket binds a UNIX socket and leaves its file on disk. An existing
// file at path is replaced.
func (m *Manager) createSocket(path string, _ Content) error {
	if err := m.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return err
	}
	ln.SetUnlinkOnClose(false)
	return ln.Close()
}

func createFIFO(path string, _ Content) error {
	if err := unix.Mkfifo(path, uint32(fs.FileMode(0644).Perm())); err != nil {
		return &os.PathError{Op: "mkfifo", Path: path, Err: err}
	}
	return nil
}
