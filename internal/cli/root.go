// Package cli wires fimwatch's packages into cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/fimwatch/internal/version"
	"github.com/arthur-debert/fimwatch/pkg/config"
	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/filesystem"
	"github.com/arthur-debert/fimwatch/pkg/logging"
	"github.com/arthur-debert/fimwatch/pkg/output"
	"github.com/arthur-debert/fimwatch/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	configFile string
	root       string
	output     string
}

// env is what a command runs against, built once flags are parsed
type env struct {
	cfg      *config.Config
	fs       types.FS
	renderer *output.Renderer
}

func (g *globalOptions) load(cmd *cobra.Command) (*env, error) {
	overrides := map[string]interface{}{}
	if g.root != "" {
		overrides["paths.root"] = g.root
	}
	cfg, err := config.LoadWithOverrides(g.configFile, overrides)
	if err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(g.output)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	if format == output.FormatAuto {
		format = output.FormatText
		if f, ok := out.(*os.File); ok {
			format = output.DetectFormat(f)
		}
	}

	return &env{
		cfg:      cfg,
		fs:       filesystem.NewOS(),
		renderer: output.NewRenderer(out, format),
	}, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "fimwatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVarP(&g.output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{ID: "observe", Title: "OBSERVE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "drive", Title: "DRIVE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	for _, cmd := range []*cobra.Command{
		newScanCmd(g),
		newWaitCmd(g),
		newMatchersCmd(g),
		newAlertsCmd(g),
		newCheckAlertCmd(g),
		newCheckAttributesCmd(g),
	} {
		cmd.GroupID = "observe"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newFixtureCmd(g),
		newOptionCmd(g),
		newConfCmd(g),
	} {
		cmd.GroupID = "drive"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newConfigCmd(g),
		newVersionCmd(),
	} {
		cmd.GroupID = "misc"
		rootCmd.AddCommand(cmd)
	}
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetCompletionCommandGroupID("misc")

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return nil
		},
	}
}
