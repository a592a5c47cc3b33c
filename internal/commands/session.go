package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/sneakerbook/internal/activity"
	"github.com/cleared-dev/sneakerbook/internal/session"
)

func newSessionCommand(configPath *string) *cobra.Command {
	var flags ledgerFlags
	var activityPath string
	var yes bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record transactions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			l, err := openLedger(cfg, flags)
			if err != nil {
				return err
			}
			if activityPath == "" {
				activityPath = cfg.Activity.Path
			}

			in := cmd.InOrStdin()
			interactive := isTerminal(in)
			opts := session.Options{
				Brands:        cfg.Brands,
				ConfirmDelete: cfg.Session.ConfirmDelete && !yes,
				Prompt:        interactive,
			}
			if interactive {
				opts.Confirm = session.TerminalConfirm
			}

			log := activity.NewLog(nil)
			runErr := session.New(l, log, cmd.OutOrStdout(), opts).Run(in)

			if entries := log.Entries(); activityPath != "" && len(entries) > 0 {
				if err := activity.Append(activityPath, entries); err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write activity log: %v\n", err)
				}
			}
			return runErr
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&activityPath, "activity-log", "", "append operation outcomes to this CSV on exit")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")

	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
