package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/sneakerbook/internal/config"
	"github.com/cleared-dev/sneakerbook/internal/ledger"
	"github.com/cleared-dev/sneakerbook/internal/session"
)

// ledgerFlags selects the starting contents of a ledger.
type ledgerFlags struct {
	noSeed     bool
	importFile string
}

func (f *ledgerFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noSeed, "no-seed", false, "start with an empty ledger")
	cmd.Flags().StringVar(&f.importFile, "import", "", "start from a transactions CSV")
}

// loadConfig reads the config at path, resolving file references relative to it.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	if p := cfg.Ledger.ImportFile; p != "" && !filepath.IsAbs(p) {
		cfg.Ledger.ImportFile = filepath.Join(base, p)
	}
	if p := cfg.Activity.Path; p != "" && !filepath.IsAbs(p) {
		cfg.Activity.Path = filepath.Join(base, p)
	}
	return cfg, nil
}

// openLedger builds the process-scoped ledger. Flags win over config.
func openLedger(cfg *config.Config, flags ledgerFlags) (*ledger.Ledger, error) {
	importFile := cfg.Ledger.ImportFile
	if flags.importFile != "" {
		importFile = flags.importFile
	}
	if importFile != "" {
		return ledger.Load(importFile)
	}
	if cfg.Ledger.Seed && !flags.noSeed {
		return ledger.Seeded(), nil
	}
	return ledger.New(), nil
}

func newListCommand(configPath *string) *cobra.Command {
	var flags ledgerFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the transactions a session would start with",
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
			session.RenderTable(cmd.OutOrStdout(), l.List())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newExportCommand(configPath *string) *cobra.Command {
	var flags ledgerFlags
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the starting transactions as CSV",
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

			if output == "" || output == "-" {
				return ledger.WriteRecords(cmd.OutOrStdout(), l.List())
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			if err := ledger.WriteRecords(f, l.List()); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			return f.Close()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}
