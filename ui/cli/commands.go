// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/toeirei/lxcui/internal/backup"
	"github.com/toeirei/lxcui/internal/config"
	"github.com/toeirei/lxcui/internal/entity"
	"github.com/toeirei/lxcui/internal/i18n"
	"github.com/toeirei/lxcui/internal/logging"
	"github.com/toeirei/lxcui/internal/sizer"
	"github.com/toeirei/lxcui/ui/views"
)

// newListCmd represents the 'list' command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the containers with state, size and release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _ := openBackend(appConfig)
			worker := sizer.New(nil)
			defer func() { _ = worker.Close() }()
			return printList(cmd.Context(), cmd.OutOrStdout(), backend, worker)
		},
	}
}

// printList measures every container concurrently and prints one row each.
func printList(ctx context.Context, out io.Writer, b entity.Backend, worker *sizer.Worker) error {
	list, err := b.List(ctx)
	if err != nil {
		return err
	}
	pending := make([]<-chan sizer.Result, len(list))
	for i, e := range list {
		pending[i] = worker.Start(e.Name, b.RootPath(e.Name), nil)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, i18n.T("cli.list_header"))
	for i, e := range list {
		var r sizer.Result
		select {
		case r = <-pending[i]:
		case <-ctx.Done():
			return ctx.Err()
		}
		if r.Err != nil {
			logging.Warnf("measure %s: %v", e.Name, r.Err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.State, r.Size(), e.Release)
	}
	return w.Flush()
}

// newExportCmd represents the 'export' command.
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a compressed dump of every container's settings",
		Long: `Writes the summary, the network and limit settings and the snapshot list
of every container as zstd compressed JSON. Without a file name the dump is
written to lxcui-export-<date>.json.zst in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			now := time.Now()
			backend, _ := openBackend(appConfig)
			data, err := backup.Collect(cmd.Context(), backend, now)
			if err != nil {
				return err
			}
			path := backup.FileName(name, now)
			if err := backup.WriteFile(path, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.exported", len(data.Entities), path))
			return nil
		},
	}
}

// confirmDestroy asks on the terminal before a destroy.
var confirmDestroy = func(cmd *cobra.Command, name string) (bool, error) {
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(i18n.T("confirm.destroy", name)).
				Affirmative(i18n.T("button.yes")).
				Negative(i18n.T("button.no")).
				Value(&ok),
		),
	)
	form.WithInput(cmd.InOrStdin()).WithOutput(cmd.OutOrStdout())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// newDestroyCmd represents the 'destroy' command.
func newDestroyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destroy NAME",
		Short: "Stop and destroy a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			backend, _ := openBackend(appConfig)
			list, err := backend.List(cmd.Context())
			if err != nil {
				return err
			}
			i := slices.IndexFunc(list, func(s entity.Summary) bool { return s.Name == name })
			if i < 0 {
				return fmt.Errorf("%s: %w", i18n.T("cli.not_found", name), entity.ErrNotFound)
			}

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				ok, err := confirmDestroy(cmd, name)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.aborted"))
					return nil
				}
			}

			timeout := time.Duration(appConfig.LXC.WaitTimeout) * time.Second
			if err := views.Destroy(cmd.Context(), backend, list[i], timeout); err != nil {
				return err
			}
			logging.Infof("destroyed %s", name)
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.destroyed", name))
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newConfigCmd groups the configuration file commands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the lxcui configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetBool("system")
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.GetConfigPath(system)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(i18n.T("cli.config_exists", path))
			}
			c := config.Default()
			written, err := config.WriteConfigFile(&c, system)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config_written", written))
			return nil
		},
	}
	initCmd.Flags().Bool("system", false, "Write the system wide file instead of the user file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

// newVersionCmd represents the 'version' command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lxcui version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
		},
	}
}
