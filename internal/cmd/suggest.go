package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cohortid/internal/suggest"
)

var (
	suggestExts []string
	suggestJSON bool
)

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest [path]",
	Short: "Suggest participant-ID patterns for a directory",
	Long: `Analyze the file names in a directory and propose patterns that could
extract a participant ID from each of them, ranked by how many files they
match and how well they distinguish files from one another.

Examples:
  cohortid suggest ./incoming
  cohortid suggest ./incoming --ext vcf --ext txt
  cohortid suggest ./incoming --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
	suggestCmd.Flags().StringArrayVar(&suggestExts, "ext", nil, "only consider files with this extension (repeatable)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "emit suggestions as JSON")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	batch, err := scanBatch(afero.NewOsFs(), args[0], maxDepth)
	if err != nil {
		return err
	}

	paths := selectPaths(batch, suggestExts)
	suggestions := suggest.NewEngine().Suggest(paths)

	if suggestJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(suggestions)
	}

	if len(suggestions) == 0 {
		fmt.Println("No pattern suggestions for these files")
		return nil
	}

	for i, s := range suggestions {
		fmt.Printf("%d. %s\n", i+1, s.Pattern)
		fmt.Printf("   %s (matches %d of %d files)\n", s.Description, s.Count, len(paths))
		for _, sample := range s.SampleExtractions {
			fmt.Printf("      %s → %s\n", sample.Path, sample.ParticipantID)
		}
		fmt.Println()
	}

	return nil
}
