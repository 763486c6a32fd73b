package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/peekknuf/scorekit/internal/impute"
)

var (
	applyFile        string
	applyOut         string
	applyMeans       string
	applyNumeric     []string
	applyCategorical []string
	applySentinel    float64
	applyPlaceholder string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Impute a production dataset with fit-time means",
	Long: `Fill missing values in a production CSV using a means table written
by a previous fit run.

Sentinel conversion and the categorical placeholder match fit. Means are
never recomputed from this batch, so production rows are imputed exactly
the way the training data was. A numeric column missing from the means
table is left unfilled and reported as a data-quality warning.`,
	Run: func(cmd *cobra.Command, args []string) {
		ds := loadTyped(applyFile, applyNumeric, applyCategorical)
		opts := imputeOptions(cmd, applySentinel, applyPlaceholder)

		means, err := impute.LoadFile(applyMeans)
		if err != nil {
			log.Fatalf("Failed to load means table: %v", err)
		}

		filled, report, err := impute.Apply(ds, means, opts)
		if err != nil {
			log.Fatalf("Apply failed: %v", err)
		}

		for _, col := range report.SkippedColumns {
			log.Printf("warning: column %q left unfilled (%d missing values): no mean recorded at fit time",
				col, report.UnfilledValues[col])
		}

		writeCSV(filled, applyOut)

		fmt.Printf("File: %s\n", applyFile)
		fmt.Printf("- Rows: %d\n", ds.NumRows())
		fmt.Printf("- Columns skipped: %d\n", len(report.SkippedColumns))
		fmt.Printf("- Filled dataset: %s\n", applyOut)
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "",
		"Production CSV file (required)")
	applyCmd.Flags().StringVarP(&applyOut, "out", "o", "",
		"Output CSV for the filled dataset (required)")
	applyCmd.Flags().StringVarP(&applyMeans, "means", "m", "",
		"Means table JSON written by fit (required)")
	applyCmd.Flags().StringSliceVar(&applyNumeric, "numeric", nil,
		"Numeric column names")
	applyCmd.Flags().StringSliceVar(&applyCategorical, "categorical", nil,
		"Categorical column names")
	applyCmd.Flags().Float64Var(&applySentinel, "sentinel", impute.DefaultSentinel,
		"Numeric value treated as missing")
	applyCmd.Flags().StringVar(&applyPlaceholder, "placeholder", impute.DefaultPlaceholder,
		"Fill value for missing categorical values")

	applyCmd.MarkFlagRequired("file")
	applyCmd.MarkFlagRequired("out")
	applyCmd.MarkFlagRequired("means")
}
