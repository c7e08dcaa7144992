package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort            = "File integrity monitoring test driver"
	MsgScanShort            = "Scan the agent log once for the first match after a line"
	MsgWaitShort            = "Poll the agent log until matchers fire or a timeout expires"
	MsgMatchersShort        = "List the built-in log matchers"
	MsgAlertsShort          = "Print the FIM part of recent alerts"
	MsgCheckAlertShort      = "Validate recent FIM alerts against the field contract"
	MsgCheckAttributesShort = "Check the attributes reported by the next event"
	MsgFixtureShort         = "Create, modify or delete monitored files"
	MsgFixtureCreateShort   = "Create a file of the given kind"
	MsgFixtureModifyShort   = "Append content to a regular file"
	MsgFixtureDeleteShort   = "Delete a file, if it exists"
	MsgOptionShort          = "Edit internal_options.conf"
	MsgOptionSetShort       = "Set key=value, appending it when absent"
	MsgConfShort            = "Inspect and edit syscheck directories in ossec.conf"
	MsgConfDirectoriesShort = "List monitored directories and their attribute directives"
	MsgConfSetShort         = "Add or replace a directories entry"
	MsgConfigShort          = "Inspect fimwatch configuration"
	MsgConfigShowShort      = "Print the effective configuration as TOML"
	MsgVersionShort         = "Print version information"

	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/fimwatch/config.toml)"
	MsgFlagRoot     = "Agent install root, overrides paths.root"
	MsgFlagOutput   = "Output format: auto, term, text, json or yaml"
	MsgFlagFrom     = "Skip lines up to and including this line number"
	MsgFlagTimeout  = "Give up after this long (default poll.timeout)"
	MsgFlagInterval = "Pause between polls (default poll.interval)"
	MsgFlagCount    = "Number of matches to collect"
	MsgFlagSchema   = "Validate matched events against the event schema"
	MsgFlagLast     = "Only the last N alerts (0 for all)"
	MsgFlagExclude  = "Fields that must be absent"
	MsgFlagCheck    = "Attribute directive attr=yes|no|except, repeatable"
	MsgFlagDir      = "Derive directives from the ossec.conf entry monitoring this path"
	MsgFlagContent  = "File content"
	MsgFlagBinary   = "Content is hex encoded binary"
	MsgFlagOption   = "Element option key=value, repeatable"
	MsgFlagDefaults = "Show the built-in defaults, ignoring files, env and flags"

	MsgErrTimeout      = "no match before timeout"
	MsgErrChecksFailed = "%d of %d checks failed"
	MsgErrNoDirectives = "no directives given, use --check or --dir"
	MsgErrNotMonitored = "%s is not listed in any directories entry"
	MsgErrKeyValue     = "expected key=value, got %q"
	MsgFixtureCreated  = "created %s %s"
	MsgFixtureModified = "appended %d bytes to %s"
	MsgFixtureDeleted  = "deleted %s"
	MsgOptionSet       = "%s=%s in %s"
	MsgDirectorySet    = "directories %s saved to %s"
	MsgVersionFormat   = "fimwatch version %s\n  commit: %s\n  built:  %s\n"
)

// Embedded message files
var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/wait-example.txt
	msgWaitExampleRaw string
	MsgWaitExample    = strings.TrimRight(msgWaitExampleRaw, "\n")
)
