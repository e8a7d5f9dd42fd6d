package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cohortid/internal/models"
	"cohortid/internal/scanner"
	"cohortid/internal/stage"
)

var (
	stagePattern   string
	stageExts      []string
	stageDest      string
	stageOverwrite bool
)

// stageCmd represents the stage command
var stageCmd = &cobra.Command{
	Use:   "stage [path]",
	Short: "Copy files into a per-participant directory layout",
	Long: `Resolve participant IDs for a directory and copy each matched file to
<dest>/<participantID>/<filename>.

Files without a participant ID are skipped and reported; they never abort
the staging run.

Examples:
  cohortid stage ./incoming --pattern '{parent}' --dest ./staged
  cohortid stage ./incoming --pattern 'sample_{id}.vcf' --dest ./staged --overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: runStage,
}

func init() {
	rootCmd.AddCommand(stageCmd)

	stageCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
	stageCmd.Flags().StringVarP(&stagePattern, "pattern", "p", "", "participant-ID pattern")
	stageCmd.Flags().StringArrayVar(&stageExts, "ext", nil, "only stage files with this extension (repeatable)")
	stageCmd.Flags().StringVar(&stageDest, "dest", "", "destination directory")
	stageCmd.Flags().BoolVar(&stageOverwrite, "overwrite", false, "overwrite existing files in the destination")
	stageCmd.MarkFlagRequired("pattern")
	stageCmd.MarkFlagRequired("dest")
}

func runStage(cmd *cobra.Command, args []string) error {
	if err := stage.ValidateStagePath(stageDest); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	b, err := scanBatch(fs, args[0], maxDepth)
	if err != nil {
		return err
	}

	set := models.NewImportSet(b)
	if len(stageExts) > 0 {
		set.SelectNone()
		for _, path := range scanner.FilterByExtensions(b, stageExts) {
			set.SetFileSelection(path, true)
		}
	} else {
		set.SelectAll()
	}
	set.Apply(stagePattern)

	service := stage.NewService(fs)
	summary, err := service.StageImportSet(set, stage.StageOptions{
		DestinationPath: stageDest,
		Overwrite:       stageOverwrite,
	})
	if err != nil {
		return err
	}

	fmt.Println("Staging Summary:")
	fmt.Printf("  Staged files: %d\n", summary.FileCount)
	fmt.Printf("  Total size: %s\n", formatBytes(summary.TotalSize))
	fmt.Printf("  Skipped (missing participant ID): %d\n", len(summary.SkippedFiles))
	fmt.Printf("  Destination: %s\n", summary.DestinationPath)

	if viper.GetBool("verbose") {
		for _, path := range summary.SkippedFiles {
			fmt.Printf("  ✗ %s → missing participant ID\n", path)
		}
	}

	return nil
}
