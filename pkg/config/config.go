package config

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/fimwatch/pkg/errors"
)

// Config is the effective fimwatch configuration
type Config struct {
	Paths      Paths      `koanf:"paths"`
	Poll       Poll       `koanf:"poll"`
	Attributes Attributes `koanf:"attributes"`
}

// Paths locates the agent's files
type Paths struct {
	Root            string `koanf:"root"`
	LogFile         string `koanf:"log_file"`
	AlertsFile      string `koanf:"alerts_file"`
	OssecConf       string `koanf:"ossec_conf"`
	InternalOptions string `koanf:"internal_options"`
}

// Poll bounds the wait loop
type Poll struct {
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
}

// Attributes configures the attribute checker
type Attributes struct {
	Defaults []string `koanf:"defaults"`
}

// resolve fills empty paths from Root
func (c *Config) resolve() {
	p := &c.Paths
	if p.LogFile == "" {
		p.LogFile = filepath.Join(p.Root, "logs", "ossec.log")
	}
	if p.AlertsFile == "" {
		p.AlertsFile = filepath.Join(p.Root, "logs", "alerts", "alerts.json")
	}
	if p.OssecConf == "" {
		p.OssecConf = filepath.Join(p.Root, "etc", "ossec.conf")
	}
	if p.InternalOptions == "" {
		p.InternalOptions = filepath.Join(p.Root, "etc", "internal_options.conf")
	}
}

// Validate rejects values the tool cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Paths.Root == "":
		return errors.New(errors.ErrConfigParse, "paths.root must not be empty").
			WithDetail("key", "paths.root")
	case c.Poll.Interval <= 0:
		return errors.Newf(errors.ErrConfigParse, "poll.interval must be positive, got %s", c.Poll.Interval).
			WithDetail("key", "poll.interval")
	case c.Poll.Timeout <= 0:
		return errors.Newf(errors.ErrConfigParse, "poll.timeout must be positive, got %s", c.Poll.Timeout).
			WithDetail("key", "poll.timeout")
	case len(c.Attributes.Defaults) == 0:
		return errors.New(errors.ErrConfigParse, "attributes.defaults must not be empty").
			WithDetail("key", "attributes.defaults")
	}
	return nil
}

// Map returns the configuration as nested maps, durations as strings
func (c *Config) Map() map[string]interface{} {
	return map[string]interface{}{
		"paths": map[string]interface{}{
			"root":             c.Paths.Root,
			"log_file":         c.Paths.LogFile,
			"alerts_file":      c.Paths.AlertsFile,
			"ossec_conf":       c.Paths.OssecConf,
			"internal_options": c.Paths.InternalOptions,
		},
		"poll": map[string]interface{}{
			"interval": c.Poll.Interval.String(),
			"timeout":  c.Poll.Timeout.String(),
		},
		"attributes": map[string]interface{}{
			"defaults": c.Attributes.Defaults,
		},
	}
}
