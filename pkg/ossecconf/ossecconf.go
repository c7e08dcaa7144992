// Package ossecconf reads and edits the syscheck directory entries of an
// agent's ossec.conf.
package ossecconf

import (
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/attributes"
	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

const directoriesPath = "//syscheck/directories"

// Option is one attribute of a <directories> element, in document order
type Option struct {
	Key   string
	Value string
}

// Directory is one <directories> element. Paths come from the element text,
// which lists them separated by commas.
type Directory struct {
	Paths   []string
	Options []Option
}

// Get returns the value of option key and whether it is set
func (d Directory) Get(key string) (string, bool) {
	for _, o := range d.Options {
		if o.Key == key {
			return o.Value, true
		}
	}
	return "", false
}

// Config is a parsed ossec.conf
type Config struct {
	doc    *etree.Document
	logger zerolog.Logger
}

// Load parses the file at path
func Load(fs types.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path).
			WithDetail("path", path)
	}
	cfg, err := Parse(data)
	if fimErr, ok := err.(*errors.FimError); ok {
		return nil, fimErr.WithDetail("path", path)
	}
	return cfg, err
}

// Parse reads an ossec.conf document. Files with several top-level
// <ossec_config> blocks are accepted.
func Parse(data []byte) (*Config, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed ossec.conf")
	}
	return &Config{doc: doc, logger: logging.GetLogger("ossecconf")}, nil
}

// Directories returns every <directories> entry inside a <syscheck> block
func (c *Config) Directories() []Directory {
	var dirs []Directory
	for _, el := range c.doc.FindElements(directoriesPath) {
		dirs = append(dirs, fromElement(el))
	}
	return dirs
}

// Find returns the first entry that lists path
func (c *Config) Find(path string) (Directory, bool) {
	for _, d := range c.Directories() {
		for _, p := range d.Paths {
			if p == path {
				return d, true
			}
		}
	}
	return Directory{}, false
}

// SetDirectory replaces the first entry whose path list equals dir.Paths,
// or appends a new entry to the first <syscheck> block
func (c *Config) SetDirectory(dir Directory) error {
	if len(dir.Paths) == 0 {
		return errors.New(errors.ErrInvalidInput, "directory entry needs at least one path")
	}
	text := strings.Join(dir.Paths, ",")

	for _, el := range c.doc.FindElements(directoriesPath) {
		if strings.Join(splitPaths(el.Text()), ",") == text {
			el.Attr = nil
			fill(el, dir)
			c.logger.Debug().Str("paths", text).Msg("Directory entry replaced")
			return nil
		}
	}

	syscheck := c.doc.FindElement("//syscheck")
	if syscheck == nil {
		return errors.New(errors.ErrNotFound, "no <syscheck> block to add directories to")
	}
	fill(syscheck.CreateElement("directories"), dir)
	c.logger.Debug().Str("paths", text).Msg("Directory entry added")
	return nil
}

// Bytes serialises the document with two-space indentation
func (c *Config) Bytes() ([]byte, error) {
	c.doc.Indent(2)
	data, err := c.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot serialise ossec.conf")
	}
	return data, nil
}

// Save writes the document back to path
func (c *Config) Save(fs types.FS, path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	if err := fs.WriteFile(path, data, 0660); err != nil {
		return errors.Wrapf(err, errors.ErrOptionWrite, "cannot write %s", path).
			WithDetail("path", path)
	}
	return nil
}

func fromElement(el *etree.Element) Directory {
	d := Directory{Paths: splitPaths(el.Text())}
	for _, a := range el.Attr {
		d.Options = append(d.Options, Option{Key: a.Key, Value: a.Value})
	}
	return d
}

func fill(el *etree.Element, dir Directory) {
	for _, o := range dir.Options {
		el.CreateAttr(o.Key, o.Value)
	}
	el.SetText(strings.Join(dir.Paths, ","))
}

func splitPaths(text string) []string {
	var paths []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// checkOptions maps check_* options to the attributes they control
var checkOptions = map[string][]string{
	"check_size":      {"size"},
	"check_perm":      {"perm"},
	"check_owner":     {"uid", "user_name"},
	"check_group":     {"gid", "group_name"},
	"check_mtime":     {"mtime"},
	"check_inode":     {"inode"},
	"check_md5sum":    {"hash_md5"},
	"check_sha1sum":   {"hash_sha1"},
	"check_sha256sum": {"hash_sha256"},
	"check_sum":       {"hash_md5", "hash_sha1", "hash_sha256"},
}

// Directives derives attribute directives from the entry's check_* options.
// check_all sets every mapped attribute; options that follow it in the
// element override it. Attributes no option mentions are left out.
func (d Directory) Directives() attributes.Directives {
	modes := map[string]attributes.Mode{}
	for _, o := range d.Options {
		mode := attributes.ParseMode(o.Value)
		if o.Key == "check_all" {
			for _, attrs := range checkOptions {
				for _, a := range attrs {
					modes[a] = mode
				}
			}
			continue
		}
		for _, a := range checkOptions[o.Key] {
			modes[a] = mode
		}
	}

	var ds attributes.Directives
	for _, a := range attributes.DefaultAttributes {
		if mode, ok := modes[a]; ok {
			ds = append(ds, attributes.Directive{Attribute: a, Mode: mode})
		}
	}
	return ds
}
