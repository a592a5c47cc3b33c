package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/sneakerbook/internal/config"
)

func newInitCommand() *cobra.Command {
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default sneakerbook.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, noSeed)
		},
	}

	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "start sessions with an empty ledger")

	return cmd
}

func runInit(out io.Writer, dir string, noSeed bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := config.Default()
	cfg.Ledger.Seed = !noSeed
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Initialized sneakerbook at %s\n", path)
	return nil
}
