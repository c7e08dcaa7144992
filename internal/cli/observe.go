package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/fimwatch/pkg/alerts"
	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/logscan"
	"github.com/arthur-debert/fimwatch/pkg/matchers"
	"github.com/arthur-debert/fimwatch/pkg/output"
	"github.com/arthur-debert/fimwatch/pkg/schema"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/spf13/cobra"
)

// resolveMatchers maps names to catalogue matchers. No names means the
// whole catalogue in its canonical order.
func resolveMatchers(names []string) ([]types.Matcher, error) {
	if len(names) == 0 {
		return matchers.Default().Values(), nil
	}
	return matchers.Lookup(names...)
}

func validateEvents(results []types.MatchResult) error {
	v, err := schema.NewEventValidator()
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Kind != types.EventResult {
			continue
		}
		if err := v.Validate(r.Event); err != nil {
			return errors.Wrapf(err, errors.ErrSchemaInvalid, "event on line %d", r.Line.Number).
				WithDetail("line", r.Line.Number)
		}
	}
	return nil
}

func newScanCmd(g *globalOptions) *cobra.Command {
	var (
		from       int
		withSchema bool
	)

	cmd := &cobra.Command{
		Use:   "scan [matcher...]",
		Short: MsgScanShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			ms, err := resolveMatchers(args)
			if err != nil {
				return err
			}

			cursor := logscan.CursorAt(from)
			result, err := logscan.NewScanner(e.fs, e.cfg.Paths.LogFile).Scan(cursor, ms...)
			if err != nil {
				return err
			}
			if withSchema {
				if err := validateEvents([]types.MatchResult{result}); err != nil {
					return err
				}
			}
			return e.renderer.Match(result, false, cursor.Line())
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, MsgFlagFrom)
	cmd.Flags().BoolVar(&withSchema, "schema", false, MsgFlagSchema)
	return cmd
}

func newWaitCmd(g *globalOptions) *cobra.Command {
	var (
		from       int
		count      int
		timeout    time.Duration
		interval   time.Duration
		withSchema bool
	)

	cmd := &cobra.Command{
		Use:     "wait [matcher...]",
		Short:   MsgWaitShort,
		Example: MsgWaitExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			ms, err := resolveMatchers(args)
			if err != nil {
				return err
			}
			if count < 1 {
				return errors.Newf(errors.ErrInvalidInput, "--count must be at least 1, got %d", count)
			}
			if timeout <= 0 {
				timeout = e.cfg.Poll.Timeout
			}
			if interval <= 0 {
				interval = e.cfg.Poll.Interval
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			cursor := logscan.CursorAt(from)
			poller := logscan.NewPoller(logscan.NewScanner(e.fs, e.cfg.Paths.LogFile), interval)
			outcome, err := poller.WaitN(ctx, cursor, count, ms...)
			if err != nil {
				return err
			}
			if withSchema {
				if err := validateEvents(outcome.Results); err != nil {
					return err
				}
			}

			for _, r := range outcome.Results {
				if err := e.renderer.Match(r, false, r.Line.Number); err != nil {
					return err
				}
			}
			if outcome.TimedOut {
				if err := e.renderer.Match(types.NoMatchResult(), true, cursor.Line()); err != nil {
					return err
				}
				return errors.New(errors.ErrNotFound, MsgErrTimeout).
					WithDetail("timeout", timeout.String()).
					WithDetail("found", len(outcome.Results))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, MsgFlagFrom)
	cmd.Flags().IntVarP(&count, "count", "n", 1, MsgFlagCount)
	cmd.Flags().DurationVar(&timeout, "timeout", 0, MsgFlagTimeout)
	cmd.Flags().DurationVar(&interval, "interval", 0, MsgFlagInterval)
	cmd.Flags().BoolVar(&withSchema, "schema", false, MsgFlagSchema)
	return cmd
}

func newMatchersCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "matchers",
		Short: MsgMatchersShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			reg := matchers.Default()
			names := reg.List()
			if e.renderer.Structured() {
				described := make([]map[string]string, len(names))
				for i, name := range names {
					m, _ := reg.Get(name)
					described[i] = map[string]string{"name": name, "matches": matchers.Describe(m)}
				}
				return e.renderer.Value(described)
			}

			width := 0
			for _, name := range names {
				if len(name) > width {
					width = len(name)
				}
			}
			lines := make([]string, len(names))
			for i, name := range names {
				m, _ := reg.Get(name)
				lines[i] = fmt.Sprintf("%-*s  %s", width, name, matchers.Describe(m))
			}
			return e.renderer.Lines("", lines)
		},
	}
}

func newAlertsCmd(g *globalOptions) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: MsgAlertsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			records, err := alerts.NewSource(e.fs, e.cfg.Paths.AlertsFile).LoadRecent(last)
			if err != nil {
				return err
			}
			return e.renderer.Records(records)
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", 0, MsgFlagLast)
	return cmd
}

func newCheckAlertCmd(g *globalOptions) *cobra.Command {
	var (
		last    int
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "check-alert",
		Short: MsgCheckAlertShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			records, err := alerts.NewSource(e.fs, e.cfg.Paths.AlertsFile).LoadRecent(last)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.New(errors.ErrNotFound, "no FIM alerts to check")
			}

			verdicts := make([]output.Verdict, len(records))
			for i, rec := range records {
				name := fmt.Sprintf("alert %d", i+1)
				if path, ok := rec["path"].(string); ok {
					name += " " + path
				}
				verdicts[i] = output.VerdictFor(name, schema.Validate(rec, exclude...))
			}
			return reportVerdicts(e, verdicts)
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", 1, MsgFlagLast)
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, MsgFlagExclude)
	return cmd
}

func reportVerdicts(e *env, verdicts []output.Verdict) error {
	failed, err := e.renderer.Verdicts(verdicts)
	if err != nil {
		return err
	}
	if failed == 0 {
		return nil
	}
	// exit with the code of the first failure
	for _, v := range verdicts {
		if !v.Passed {
			return errors.Newf(errors.ErrorCode(v.Code), MsgErrChecksFailed, failed, len(verdicts))
		}
	}
	return nil
}

// parseKeyValues splits repeated key=value flags, keeping their order
func parseKeyValues(pairs []string) ([][2]string, error) {
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrKeyValue, p)
		}
		out = append(out, [2]string{strings.TrimSpace(k), strings.TrimSpace(v)})
	}
	return out, nil
}
