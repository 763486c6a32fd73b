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
	ksFile  string
	ksLabel string
	ksScore string
)

var ksCmd = &cobra.Command{
	Use:   "ks",
	Short: "Compute the KS statistic of a scored dataset",
	Long: `Compute the Kolmogorov-Smirnov statistic of a score column against
a binary 0/1 label column of a CSV file.

The statistic is the maximum separation between the cumulative event
rate and the cumulative non-event rate as the score threshold sweeps
from highest to lowest score.`,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(ksFile)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", ksFile, err)
		}
		defer f.Close()

		schema := dataset.Schema{
			ksLabel: dataset.Numeric,
			ksScore: dataset.Numeric,
		}
		ds, err := dataset.ReadCSV(f, schema)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", ksFile, err)
		}

		ks, err := metrics.KS(ds, ksLabel, ksScore)
		if err != nil {
			log.Fatalf("KS failed: %v", err)
		}

		fmt.Printf("File: %s\n", ksFile)
		fmt.Printf("- Rows: %d\n", ds.NumRows())
		fmt.Printf("- KS statistic: %.6f\n", ks)
	},
}

func init() {
	rootCmd.AddCommand(ksCmd)
	ksCmd.Flags().StringVarP(&ksFile, "file", "f", "",
		"CSV file to score (required)")
	ksCmd.Flags().StringVar(&ksLabel, "label", "label",
		"Name of the binary 0/1 label column")
	ksCmd.Flags().StringVar(&ksScore, "score", "score",
		"Name of the score column")

	ksCmd.MarkFlagRequired("file")
}
