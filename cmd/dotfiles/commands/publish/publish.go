package publish

import (
	"fmt"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/publish"
	"github.com/spf13/cobra"
)

// NewCommand creates the publish command with its gist subcommand
func NewCommand(rt *cli.Runtime) *cobra.Command {
	var opts publish.PublishOptions

	cmd := &cobra.Command{
		Use:     "publish",
		Short:   MsgShort,
		Long:    MsgLong,
		Args:    cobra.NoArgs,
		GroupID: cli.GroupSync,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			opts.Env = env
			result, err := publish.Publish(cli.Context(cmd), opts)
			if err != nil {
				return fmt.Errorf(MsgErrPublish, err)
			}

			p := rt.Printer(cmd)
			p.Success(MsgWritten, result.Output)
			for _, rel := range result.Removed {
				p.Muted(MsgCleaned, rel)
			}
			switch {
			case !opts.Push:
				p.Muted(MsgReviewPublish)
			case result.PublicRepo == "":
				p.Warning(MsgNoRemote)
			case result.NoChanges:
				p.Muted(MsgNoChanges)
			default:
				p.Success(MsgPushed, result.PublicRepo, result.Branch)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().StringArrayVar(&opts.Exclude, "exclude", nil, MsgFlagExclude)
	cmd.Flags().BoolVar(&opts.Push, "push", false, MsgFlagPush)
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", MsgFlagMessage)

	cmd.AddCommand(newGistCmd(rt))
	return cmd
}

func newGistCmd(rt *cli.Runtime) *cobra.Command {
	var opts publish.GistOptions

	cmd := &cobra.Command{
		Use:   "gist",
		Short: MsgGistShort,
		Long:  MsgGistLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			opts.Env = env
			result, err := publish.Gist(cli.Context(cmd), opts)
			if err != nil {
				return fmt.Errorf(MsgErrGist, err)
			}

			p := rt.Printer(cmd)
			if result.Created {
				p.Success(MsgGistCreated, result.URL)
			} else {
				p.Success(MsgGistUpdated, result.URL)
			}
			p.Println()
			p.Println(MsgOneLiner)
			p.Println("  " + result.OneLiner)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.GistID, "id", "", MsgFlagGistID)
	cmd.Flags().StringVar(&opts.Repo, "repo", "", MsgFlagRepo)
	cmd.Flags().StringVar(&opts.Filename, "filename", "", MsgFlagFilename)
	return cmd
}
