package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/peekknuf/scorekit/internal/dataset"
	"github.com/peekknuf/scorekit/internal/metrics"
)

var (
	giniFile      string
	giniActual    string
	giniPredicted string
)

var giniCmd = &cobra.Command{
	Use:   "gini",
	Short: "Compute the normalized Gini coefficient of a scored dataset",
	Long: `Compute the normalized Gini coefficient of a predicted column
against an actual outcome column of a CSV file.

The result is in roughly [-1, 1]: 1.0 means the predicted column ranks
the actual outcomes perfectly, 0.0 means the ranking carries no signal.`,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(giniFile)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", giniFile, err)
		}
		defer f.Close()

		schema := dataset.Schema{
			giniActual:    dataset.Numeric,
			giniPredicted: dataset.Numeric,
		}
		ds, err := dataset.ReadCSV(f, schema)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", giniFile, err)
		}

		g, err := metrics.Gini(ds, giniActual, giniPredicted)
		if err != nil {
			log.Fatalf("Gini failed: %v", err)
		}

		fmt.Printf("File: %s\n", giniFile)
		fmt.Printf("- Rows: %d\n", ds.NumRows())
		fmt.Printf("- Normalized Gini: %.6f\n", g)
	},
}

func init() {
	rootCmd.AddCommand(giniCmd)
	giniCmd.Flags().StringVarP(&giniFile, "file", "f", "",
		"CSV file to score (required)")
	giniCmd.Flags().StringVar(&giniActual, "actual", "actual",
		"Name of the actual outcome column")
	giniCmd.Flags().StringVar(&giniPredicted, "predicted", "predicted",
		"Name of the predicted score column")

	giniCmd.MarkFlagRequired("file")
}
