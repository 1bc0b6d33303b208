// Package backup binds snapshot create, restore and list to the CLI.
package backup

import (
	"strconv"

	"github.com/dotfiles-cli/dotfiles/cmd/dotfiles/internal/cli"
	"github.com/dotfiles-cli/dotfiles/pkg/commands/snapshot"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewCommand creates the backup command
func NewCommand(rt *cli.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Short:   MsgShort,
		Long:    MsgLong,
		GroupID: cli.GroupManage,
	}

	var archive bool
	create := &cobra.Command{
		Use:   "create [name]",
		Short: MsgCreateShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			p := rt.Printer(cmd)
			if rt.DryRun {
				p.Info(MsgDryRun, "create", name)
				return nil
			}
			result, err := snapshot.Create(cli.Context(cmd), snapshot.CreateOptions{Env: env, Name: name, Archive: archive})
			if err != nil {
				return err
			}
			p.Success(MsgCreated, result.Name, result.Files, humanize.Bytes(uint64(result.Size)))
			if len(result.Skipped) > 0 {
				p.Muted(MsgSkipped, len(result.Skipped))
			}
			return nil
		},
	}
	create.Flags().BoolVar(&archive, "archive", false, MsgFlagArchive)

	restore := &cobra.Command{
		Use:   "restore <name>",
		Short: MsgRestoreShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			if rt.DryRun {
				p.Info(MsgDryRun, "restore", args[0])
				return nil
			}
			result, err := snapshot.Restore(cli.Context(cmd), snapshot.RestoreOptions{Env: env, Name: args[0]})
			if err != nil {
				return err
			}
			p.Success(MsgRestored, result.Restored, result.Name, result.Verified)
			for _, f := range result.Failed {
				p.Error(MsgFailed, f.Path, cli.Describe(f.Err))
			}
			return cli.FailIf(len(result.Failed))
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rt.Env()
			if err != nil {
				return err
			}
			infos, err := snapshot.List(cli.Context(cmd), snapshot.ListOptions{Env: env})
			if err != nil {
				return err
			}
			p := rt.Printer(cmd)
			if len(infos) == 0 {
				p.Muted(MsgNoBackups, env.Backups().Root())
				return nil
			}
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				kind := "directory"
				if info.Archive {
					kind = "archive"
				}
				if !info.Indexed {
					kind = MsgNoIndex
				}
				created := "-"
				if !info.Created.IsZero() {
					created = humanize.Time(info.Created)
				}
				rows = append(rows, []string{info.Name, kind, created, strconv.Itoa(info.Files), humanize.Bytes(uint64(info.Size))})
			}
			p.Table([]string{"name", "type", "created", "files", "size"}, rows)
			return nil
		},
	}

	cmd.AddCommand(create, restore, list)
	return cmd
}
