package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/peekknuf/scorekit/internal/dataset"
	"github.com/peekknuf/scorekit/internal/impute"
)

var (
	fitFile        string
	fitOut         string
	fitMeans       string
	fitNumeric     []string
	fitCategorical []string
	fitSentinel    float64
	fitPlaceholder string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Impute a training dataset and record the column means",
	Long: `Fill missing values in a training CSV and write the means table
used to fill them.

The sentinel value (-1 by default) is reinterpreted as missing before
any mean is computed. Numeric missing values are replaced by the column
mean, categorical ones by a fixed placeholder. The means table is saved
as JSON so a later apply run can impute production data consistently.`,
	Run: func(cmd *cobra.Command, args []string) {
		ds := loadTyped(fitFile, fitNumeric, fitCategorical)
		opts := imputeOptions(cmd, fitSentinel, fitPlaceholder)

		filled, means, err := impute.Fit(ds, opts)
		if err != nil {
			log.Fatalf("Fit failed: %v", err)
		}

		writeCSV(filled, fitOut)
		if err := means.SaveFile(fitMeans); err != nil {
			log.Fatalf("Failed to save means table: %v", err)
		}

		fmt.Printf("File: %s\n", fitFile)
		fmt.Printf("- Rows: %d\n", ds.NumRows())
		fmt.Printf("- Numeric columns fitted: %d\n", len(means))
		fmt.Printf("- Filled dataset: %s\n", fitOut)
		fmt.Printf("- Means table: %s\n", fitMeans)
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().StringVarP(&fitFile, "file", "f", "",
		"Training CSV file (required)")
	fitCmd.Flags().StringVarP(&fitOut, "out", "o", "",
		"Output CSV for the filled dataset (required)")
	fitCmd.Flags().StringVarP(&fitMeans, "means", "m", "",
		"Output JSON file for the means table (required)")
	fitCmd.Flags().StringSliceVar(&fitNumeric, "numeric", nil,
		"Numeric column names")
	fitCmd.Flags().StringSliceVar(&fitCategorical, "categorical", nil,
		"Categorical column names")
	fitCmd.Flags().Float64Var(&fitSentinel, "sentinel", impute.DefaultSentinel,
		"Numeric value treated as missing")
	fitCmd.Flags().StringVar(&fitPlaceholder, "placeholder", impute.DefaultPlaceholder,
		"Fill value for missing categorical values")

	fitCmd.MarkFlagRequired("file")
	fitCmd.MarkFlagRequired("out")
	fitCmd.MarkFlagRequired("means")
}

// loadTyped loads a CSV with the schema built from the column flags.
func loadTyped(path string, numeric, categorical []string) dataset.Dataset {
	if len(numeric) == 0 && len(categorical) == 0 {
		log.Fatalf("At least one of --numeric or --categorical is required")
	}
	schema := make(dataset.Schema, len(numeric)+len(categorical))
	for _, col := range numeric {
		schema[col] = dataset.Numeric
	}
	for _, col := range categorical {
		schema[col] = dataset.Categorical
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f, schema)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", path, err)
	}
	return ds
}

// imputeOptions resolves sentinel/placeholder from flags, falling back to
// config-file values when the flag was not set.
func imputeOptions(cmd *cobra.Command, sentinel float64, placeholder string) impute.Options {
	opts := impute.Options{Sentinel: sentinel, Placeholder: placeholder}
	if !cmd.Flags().Changed("sentinel") {
		opts.Sentinel = viper.GetFloat64("sentinel")
	}
	if !cmd.Flags().Changed("placeholder") {
		opts.Placeholder = viper.GetString("placeholder")
	}
	return opts
}

func writeCSV(ds dataset.Dataset, path string) {
	out, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer out.Close()
	if err := ds.WriteCSV(out); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
}
