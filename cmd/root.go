package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peekknuf/scorekit/internal/impute"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "scorekit",
	Short: "Scorecard statistics CLI",
	Long: `Statistical scoring and imputation routines for binary-classifier
scorecards over tabular data: normalized Gini, KS statistic,
fit/apply mean imputation and dataset profiling`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.scorekit.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".scorekit")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetDefault("sentinel", float64(impute.DefaultSentinel))
	viper.SetDefault("placeholder", impute.DefaultPlaceholder)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
