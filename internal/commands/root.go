package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/sneakerbook/internal/buildinfo"
	"github.com/cleared-dev/sneakerbook/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "sneakerbook",
		Short:   "Track sneaker resale income and expenses",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSessionCommand(&configPath))
	rootCmd.AddCommand(newListCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))

	return rootCmd
}
