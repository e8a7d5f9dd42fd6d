package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cohortid",
	Short: "Extract participant IDs from genomic file batches",
	Long: `cohortid assigns participant IDs to batches of genomic data files
based on their naming convention.

Describe the convention with a small pattern language:

  {parent}              the parent directory name is the ID
  {filename}            the file name without extension is the ID
  {basename}            the file name including extension is the ID
  {parent:<inner>}      apply <inner> to the parent directory name
  {stem:<inner>}        apply <inner> to the file name stem
  sample_{id}.vcf       literal template; {id} captures the ID
  (?P<id>[A-Z]{2}\d+)   raw regular expression against the full path

IDs that collide within a batch are suffixed _1, _2, ... in file order.

Typical workflow:
  cohortid scan ./incoming              # what is in this directory?
  cohortid suggest ./incoming           # which patterns fit these names?
  cohortid extract ./incoming -p '{parent}'
  cohortid import ./incoming -p '{parent}' -o import.json
  cohortid stage ./incoming -p '{parent}' --dest ./staged
  cohortid tui ./incoming               # interactive review`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cohortid.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".cohortid")
		}
	}

	viper.SetEnvPrefix("COHORTID")
	viper.AutomaticEnv()

	// Missing config file is fine; flags and defaults cover everything.
	_ = viper.ReadInConfig()
}
