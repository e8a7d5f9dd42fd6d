package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cohortid/internal/models"
	"cohortid/ui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [path]",
	Short: "Start the interactive TUI interface",
	Long: `Start the interactive Terminal User Interface for participant-ID review.

The TUI provides:
- Live pattern editing with validity feedback and match counts
- Per-file preview with the matched substring highlighted
- Pattern suggestions derived from the actual file names
- Match / collision / missing-ID summary

Examples:
  cohortid tui ./incoming
  cohortid tui /data/cohort-2024 --max-depth 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
}

func runTUI(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()

	batch, err := scanBatch(fs, args[0], maxDepth)
	if err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Found %d files (%d genomic data files)\n",
			batch.Metadata.TotalFileCount, batch.Metadata.GenomicFileCount)
	}

	set := models.NewImportSet(batch)
	model := ui.NewAppModel(set)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
