package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/arthur-debert/fimwatch/pkg/attributes"
	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logscan"
	"github.com/arthur-debert/fimwatch/pkg/matchers"
	"github.com/arthur-debert/fimwatch/pkg/ossecconf"
	"github.com/arthur-debert/fimwatch/pkg/output"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/spf13/cobra"
)

func newCheckAttributesCmd(g *globalOptions) *cobra.Command {
	var (
		from    int
		timeout time.Duration
		checks  []string
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "check-attributes",
		Short: MsgCheckAttributesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}

			directives, err := directivesFor(e, checks, dir)
			if err != nil {
				return err
			}
			if timeout <= 0 {
				timeout = e.cfg.Poll.Timeout
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			ms, err := matchers.Lookup(matchers.SendingEvent)
			if err != nil {
				return err
			}
			cursor := logscan.CursorAt(from)
			poller := logscan.NewPoller(logscan.NewScanner(e.fs, e.cfg.Paths.LogFile), e.cfg.Poll.Interval)
			outcome, err := poller.Wait(ctx, cursor, ms...)
			if err != nil {
				return err
			}
			if outcome.TimedOut {
				if err := e.renderer.Match(types.NoMatchResult(), true, cursor.Line()); err != nil {
					return err
				}
				return errors.New(errors.ErrNotFound, MsgErrTimeout).
					WithDetail("timeout", timeout.String())
			}

			event := outcome.First()
			err = attributes.CheckWithDefaults(e.cfg.Attributes.Defaults, directives, event.Event)
			name := fmt.Sprintf("event on line %d", event.Line.Number)
			return reportVerdicts(e, []output.Verdict{output.VerdictFor(name, err)})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, MsgFlagFrom)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, MsgFlagTimeout)
	cmd.Flags().StringArrayVar(&checks, "check", nil, MsgFlagCheck)
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagDir)
	return cmd
}

// directivesFor builds directives from --dir first, then --check entries
// in the order given
func directivesFor(e *env, checks []string, dir string) (attributes.Directives, error) {
	var ds attributes.Directives
	if dir != "" {
		conf, err := ossecconf.Load(e.fs, e.cfg.Paths.OssecConf)
		if err != nil {
			return nil, err
		}
		entry, ok := conf.Find(dir)
		if !ok {
			return nil, errors.Newf(errors.ErrNotFound, MsgErrNotMonitored, dir).
				WithDetail("path", dir)
		}
		ds = append(ds, entry.Directives()...)
	}

	pairs, err := parseKeyValues(checks)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		ds = append(ds, attributes.Directive{Attribute: p[0], Mode: attributes.ParseMode(p[1])})
	}

	if len(ds) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoDirectives)
	}
	return ds, nil
}
