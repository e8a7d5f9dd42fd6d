package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	maxDepth int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory for candidate data files",
	Long: `Scan a directory and display information about discovered files.

This command provides a quick overview of what the other commands would
operate on:
- Total file count and size
- Genomic data file count
- Files per extension

Examples:
  cohortid scan ./incoming
  cohortid scan /data/cohort-2024 --max-depth 3`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")

	viper.BindPFlag("max-depth", scanCmd.Flags().Lookup("max-depth"))
}

func runScan(cmd *cobra.Command, args []string) error {
	batch, err := scanBatch(afero.NewOsFs(), args[0], maxDepth)
	if err != nil {
		return err
	}

	fmt.Printf("Scanned: %s\n", batch.Root)
	fmt.Printf("  Total files: %d\n", batch.Metadata.TotalFileCount)
	fmt.Printf("  Genomic data files: %d\n", batch.Metadata.GenomicFileCount)
	fmt.Printf("  Total size: %s\n", formatBytes(batch.TotalSize))
	fmt.Println()

	counts := batch.ExtensionsByCount()
	if len(counts) == 0 {
		fmt.Println("No file extensions found")
		return nil
	}

	fmt.Println("Extensions:")
	for _, ec := range counts {
		fmt.Printf("  %-8s %d\n", ec.Extension, ec.Count)
	}

	if viper.GetBool("verbose") {
		fmt.Println()
		fmt.Println("Files discovered:")
		for i, file := range batch.Files {
			if i >= 25 {
				fmt.Printf("  ... and %d more files\n", len(batch.Files)-25)
				break
			}
			marker := "     "
			if file.IsGenomic {
				marker = "[GEN]"
			}
			fmt.Printf("  %s %s (%s)\n", marker, file.Path, formatBytes(file.Size))
		}
	}

	return nil
}
