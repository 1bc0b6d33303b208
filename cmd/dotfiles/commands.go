package dotfiles

import (
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/add"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/apply"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/backup"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/collect"
	configcmd "github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/config"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/diff"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/doctor"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/files"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/hooks"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/importdots"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/packages"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/platform"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/publish"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/remote"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/remove"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/secrets"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/status"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/sync"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/templates"
	topicscmd "github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/topics"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/validate"
	versioncmd "github.com/dotfiles-cli/dotfiles/cmd/dotfiles/commands/version"
	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/internal/version"
	"github.com/dotfiles-cli/dotfiles/pkg/errors"
	"github.com/dotfiles-cli/dotfiles/pkg/logging"
	"github.com/dotfiles-cli/dotfiles/pkg/style"
	"github.com/dotfiles-cli/dotfiles/pkg/topics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(nil)
}

// NewRootCmdWith creates the root command with a custom Env factory. Tests
// use it to run commands against a temporary repository.
func NewRootCmdWith(factory cli.EnvFactory) *cobra.Command {
	initTemplateFormatting()

	rt := cli.NewRuntime(factory)

	rootCmd := &cobra.Command{
		Use:     "dotfiles",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithWriter(rt.Verbosity, cmd.ErrOrStderr())
			style.Configure(rt.Color())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but fail
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&rt.Verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&rt.DryRun, "dry-run", false, MsgFlagDryRun)
	flags.BoolVar(&rt.Force, "force", false, MsgFlagForce)
	flags.StringVar(&rt.Root, "root", "", MsgFlagRoot)
	flags.BoolVar(&rt.NoColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(
		&cobra.Group{ID: cli.GroupSync, Title: MsgGroupSync},
		&cobra.Group{ID: cli.GroupManage, Title: MsgGroupManage},
		&cobra.Group{ID: cli.GroupMisc, Title: MsgGroupMisc},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(
		apply.NewCommand(rt),
		collect.NewCommand(rt),
		diff.NewCommand(rt),
		status.NewCommand(rt),
		sync.NewPullCommand(rt),
		sync.NewPushCommand(rt),
		remote.NewCommand(rt),
		publish.NewCommand(rt),

		add.NewCommand(rt),
		remove.NewCommand(rt),
		importdots.NewCommand(rt),
		files.NewCommand(rt),
		backup.NewCommand(rt),
		secrets.NewCommand(rt),
		packages.NewCommand(rt),
		platform.NewCommand(rt),
		hooks.NewCommand(rt),
		templates.NewCommand(rt),
		validate.NewCommand(rt),

		doctor.NewCommand(rt),
		configcmd.NewCommand(rt),
		versioncmd.NewCommand(),
		newCompletionCmd(),
	)

	// Topic-based help. The embedded docs always load; a failure here is a
	// build problem, so the plain cobra help stays in place.
	helpTopics, err := topics.Builtin(topics.Options{Renderer: &topicRenderer{rt: rt}})
	if err == nil {
		rootCmd.AddCommand(topicscmd.NewCommand(helpTopics))
		helpTopics.Install(rootCmd)
	} else {
		log.Debug().Err(err).Msg("help topics unavailable")
	}

	return rootCmd
}

// topicRenderer picks glamour or plain output once flags are parsed
type topicRenderer struct {
	rt *cli.Runtime
}

func (r *topicRenderer) Render(content string, format string) string {
	if r.rt.Color() {
		return topics.NewGlamourRenderer(style.DefaultWidth).Render(content, format)
	}
	return (&topics.PlainRenderer{}).Render(content, format)
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               cli.GroupMisc,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
