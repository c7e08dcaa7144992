package cli

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fimwatch/pkg/config"
	"github.com/arthur-debert/fimwatch/pkg/errors"
	"github.com/arthur-debert/fimwatch/pkg/fixtures"
	"github.com/arthur-debert/fimwatch/pkg/options"
	"github.com/arthur-debert/fimwatch/pkg/ossecconf"
	"github.com/spf13/cobra"
)

type contentFlags struct {
	content string
	binary  bool
}

func (c *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.content, "content", "", MsgFlagContent)
	cmd.Flags().BoolVar(&c.binary, "binary", false, MsgFlagBinary)
}

func (c *contentFlags) value() (fixtures.Content, error) {
	if !c.binary {
		return fixtures.Text(c.content), nil
	}
	data, err := hex.DecodeString(c.content)
	if err != nil {
		return fixtures.Content{}, errors.Wrap(err, errors.ErrInvalidInput, "--content is not valid hex")
	}
	return fixtures.Bytes(data), nil
}

func newFixtureCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: MsgFixtureShort,
	}
	cmd.AddCommand(newFixtureCreateCmd(g), newFixtureModifyCmd(g), newFixtureDeleteCmd(g))
	return cmd
}

func kindNames() []string {
	var names []string
	for _, k := range fixtures.Kinds() {
		names = append(names, k.String())
	}
	return names
}

func newFixtureCreateCmd(g *globalOptions) *cobra.Command {
	var cf contentFlags

	cmd := &cobra.Command{
		Use:       "create KIND NAME DIR",
		Short:     MsgFixtureCreateShort,
		Long:      MsgFixtureCreateShort + ". KIND is one of " + strings.Join(kindNames(), ", ") + ".",
		Args:      cobra.ExactArgs(3),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			kind, err := fixtures.ParseKind(args[0])
			if err != nil {
				return err
			}
			content, err := cf.value()
			if err != nil {
				return err
			}
			if err := fixtures.NewManager(e.fs).Create(kind, args[1], args[2], content); err != nil {
				return err
			}
			return e.renderer.Lines("", []string{fmt.Sprintf(MsgFixtureCreated, kind, filepath.Join(args[2], args[1]))})
		},
	}

	cf.register(cmd)
	return cmd
}

func newFixtureModifyCmd(g *globalOptions) *cobra.Command {
	var cf contentFlags

	cmd := &cobra.Command{
		Use:   "modify NAME DIR",
		Short: MsgFixtureModifyShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			content, err := cf.value()
			if err != nil {
				return err
			}
			if err := fixtures.NewManager(e.fs).Modify(args[0], args[1], content); err != nil {
				return err
			}
			return e.renderer.Lines("", []string{fmt.Sprintf(MsgFixtureModified, len(content.Data), filepath.Join(args[1], args[0]))})
		},
	}

	cf.register(cmd)
	return cmd
}

func newFixtureDeleteCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME DIR",
		Short: MsgFixtureDeleteShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			if err := fixtures.NewManager(e.fs).Delete(args[0], args[1]); err != nil {
				return err
			}
			return e.renderer.Lines("", []string{fmt.Sprintf(MsgFixtureDeleted, filepath.Join(args[1], args[0]))})
		},
	}
}

func newOptionCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "option",
		Short: MsgOptionShort,
	}

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: MsgOptionSetShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			path := e.cfg.Paths.InternalOptions
			if err := options.Set(e.fs, path, args[0], args[1]); err != nil {
				return err
			}
			return e.renderer.Lines("", []string{fmt.Sprintf(MsgOptionSet, args[0], args[1], path)})
		},
	}

	cmd.AddCommand(set)
	return cmd
}

func newConfCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conf",
		Short: MsgConfShort,
	}
	cmd.AddCommand(newConfDirectoriesCmd(g), newConfSetDirectoryCmd(g))
	return cmd
}

func newConfDirectoriesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "directories",
		Short: MsgConfDirectoriesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			conf, err := ossecconf.Load(e.fs, e.cfg.Paths.OssecConf)
			if err != nil {
				return err
			}

			type entry struct {
				Paths      []string          `json:"paths" yaml:"paths"`
				Options    map[string]string `json:"options" yaml:"options"`
				Directives map[string]string `json:"directives" yaml:"directives"`
			}
			var entries []entry
			var lines []string
			for _, d := range conf.Directories() {
				en := entry{Paths: d.Paths, Options: map[string]string{}, Directives: map[string]string{}}
				var opts, dirs []string
				for _, o := range d.Options {
					en.Options[o.Key] = o.Value
					opts = append(opts, o.Key+"="+o.Value)
				}
				for _, ds := range d.Directives() {
					en.Directives[ds.Attribute] = ds.Mode.String()
					dirs = append(dirs, ds.Attribute+"="+ds.Mode.String())
				}
				entries = append(entries, en)
				lines = append(lines,
					strings.Join(d.Paths, ","),
					"  options:    "+strings.Join(opts, " "),
					"  directives: "+strings.Join(dirs, " "))
			}

			if !e.renderer.Structured() {
				return e.renderer.Lines(e.cfg.Paths.OssecConf, lines)
			}
			if entries == nil {
				entries = []entry{}
			}
			return e.renderer.Value(entries)
		},
	}
}

func newConfSetDirectoryCmd(g *globalOptions) *cobra.Command {
	var opts []string

	cmd := &cobra.Command{
		Use:   "set-directory PATH[,PATH...]",
		Short: MsgConfSetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			pairs, err := parseKeyValues(opts)
			if err != nil {
				return err
			}

			dir := ossecconf.Directory{}
			for _, p := range strings.Split(args[0], ",") {
				if p = strings.TrimSpace(p); p != "" {
					dir.Paths = append(dir.Paths, p)
				}
			}
			for _, p := range pairs {
				dir.Options = append(dir.Options, ossecconf.Option{Key: p[0], Value: p[1]})
			}

			path := e.cfg.Paths.OssecConf
			conf, err := ossecconf.Load(e.fs, path)
			if err != nil {
				return err
			}
			if err := conf.SetDirectory(dir); err != nil {
				return err
			}
			if err := conf.Save(e.fs, path); err != nil {
				return err
			}
			return e.renderer.Lines("", []string{fmt.Sprintf(MsgDirectorySet, strings.Join(dir.Paths, ","), path)})
		},
	}

	cmd.Flags().StringArrayVar(&opts, "option", nil, MsgFlagOption)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
	}

	var defaults bool

	show := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(cmd)
			if err != nil {
				return err
			}
			cfg := e.cfg
			if defaults {
				cfg = config.Default()
			}
			if e.renderer.Structured() {
				return e.renderer.Value(cfg.Map())
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	show.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	cmd.AddCommand(show)
	return cmd
}
