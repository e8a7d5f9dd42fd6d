package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cohortid/internal/models"
	"cohortid/internal/scanner"
)

var (
	importPattern string
	importExts    []string
	importOutput  string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Resolve participant IDs and write an import manifest",
	Long: `Scan a directory, resolve a participant ID for every file using the
given pattern, and write the result as a JSON import manifest.

Files the pattern does not match are recorded with status "unmatched" so
downstream tooling can flag them; they never abort the import.

Examples:
  cohortid import ./incoming --pattern '{parent}'
  cohortid import ./incoming --pattern 'sample_{id}.vcf' -o cohort.json
  cohortid import ./incoming --pattern '{parent}' --ext vcf --ext txt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
	importCmd.Flags().StringVarP(&importPattern, "pattern", "p", "", "participant-ID pattern")
	importCmd.Flags().StringArrayVar(&importExts, "ext", nil, "only import files with this extension (repeatable)")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", ".cohortid-import.json", "output manifest file")
	importCmd.MarkFlagRequired("pattern")
}

func runImport(cmd *cobra.Command, args []string) error {
	b, err := scanBatch(afero.NewOsFs(), args[0], maxDepth)
	if err != nil {
		return err
	}

	set := models.NewImportSet(b)
	if len(importExts) > 0 {
		set.SelectNone()
		for _, path := range scanner.FilterByExtensions(b, importExts) {
			set.SetFileSelection(path, true)
		}
	} else {
		set.SelectAll()
	}
	set.Apply(importPattern)

	if !set.PatternValid() {
		fmt.Printf("Warning: pattern %q is invalid (%s); all files will be unmatched\n",
			importPattern, set.PatternError())
	}

	manifest := models.NewManifestFromImportSet(set)
	if err := manifest.Write(importOutput); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}

	fmt.Println("Import Summary:")
	fmt.Printf("  Files: %d\n", manifest.Metadata.TotalFiles)
	fmt.Printf("  Matched: %d\n", manifest.Metadata.MatchedFiles)
	fmt.Printf("  Missing participant ID: %d\n", manifest.Metadata.UnmatchedFiles)
	fmt.Printf("  Total size: %s\n", formatBytes(manifest.Metadata.TotalSize))

	if viper.GetBool("verbose") {
		for _, entry := range manifest.Entries {
			if entry.Status == models.StatusUnmatched {
				fmt.Printf("  ✗ %s → missing participant ID\n", entry.Path)
			}
		}
	}

	fmt.Printf("\nManifest saved to: %s\n", importOutput)
	return nil
}
