package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cohortid/internal/batch"
	"cohortid/internal/pattern"
)

var (
	extractPattern string
	extractExts    []string
	extractJSON    bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract participant IDs for the files in a directory",
	Long: `Scan a directory and extract a participant ID from every file that
matches the given pattern. IDs shared by more than one file are suffixed
_1, _2, ... in file order so every file gets a unique ID.

Files the pattern does not match are reported but never stop the run:
an invalid or non-matching pattern simply produces an empty result.

Examples:
  cohortid extract ./incoming --pattern '{parent}'
  cohortid extract ./incoming --pattern 'sample_{id}.vcf' --ext vcf
  cohortid extract ./incoming --pattern '(?P<id>[A-Z]{2}\d{4})' --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
	extractCmd.Flags().StringVarP(&extractPattern, "pattern", "p", "", "participant-ID pattern")
	extractCmd.Flags().StringArrayVar(&extractExts, "ext", nil, "only consider files with this extension (repeatable)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "emit the path-to-ID map as JSON")
	extractCmd.MarkFlagRequired("pattern")
}

func runExtract(cmd *cobra.Command, args []string) error {
	b, err := scanBatch(afero.NewOsFs(), args[0], maxDepth)
	if err != nil {
		return err
	}

	paths := selectPaths(b, extractExts)
	compiled := pattern.Compile(extractPattern)
	resolved := batch.Resolve(paths, compiled)

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resolved)
	}

	if !compiled.Valid() {
		fmt.Printf("Pattern %q is not a valid pattern: %s\n", extractPattern, compiled.ErrText())
	}

	matched := 0
	for _, path := range paths {
		if id, ok := resolved[path]; ok {
			fmt.Printf("  ✓ %s → %s\n", path, id)
			matched++
		} else {
			fmt.Printf("  ✗ %s → no match\n", path)
		}
	}

	fmt.Println()
	fmt.Printf("Matched %d of %d files\n", matched, len(paths))
	return nil
}
