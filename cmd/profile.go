package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/peekknuf/scorekit/internal/connectors"
	"github.com/peekknuf/scorekit/internal/dataset"
	"github.com/peekknuf/scorekit/internal/profiler"
)

var (
	profileRecursive bool
	profileMinSize   int64
	profileMaxSize   int64
)

var profileCmd = &cobra.Command{
	Use:   "profile [file or directory]",
	Short: "Profile CSV datasets",
	Long: `Summarize dataset metadata: per-column kind, null count, distinct
count, min/max and describe-style statistics for numeric columns.

Column kinds are inferred from the data. Directories are processed with
one worker per CPU core.

Examples:
  scorekit profile data.csv
  scorekit profile /data/ --recursive
  scorekit profile /data/ --min-size 1024`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			log.Fatalf("Please specify a file or directory to profile")
		}
		targetPath := args[0]

		info, err := os.Stat(targetPath)
		if err != nil {
			log.Fatalf("Error accessing %s: %v", targetPath, err)
		}

		if info.IsDir() {
			profileDirectory(targetPath)
			return
		}
		result := profileFile(targetPath, info.Size())
		if result.Err != nil {
			log.Fatalf("Failed to profile %s: %v", targetPath, result.Err)
		}
		printProfile(result)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().BoolVarP(&profileRecursive, "recursive", "r", false,
		"Search directories recursively")
	profileCmd.Flags().Int64Var(&profileMinSize, "min-size", 0,
		"Minimum file size in bytes")
	profileCmd.Flags().Int64Var(&profileMaxSize, "max-size", 0,
		"Maximum file size in bytes")
}

type profileResult struct {
	Path    string
	Size    int64
	Summary profiler.Summary
	Err     error
}

func profileDirectory(dirPath string) {
	options := connectors.DiscoveryOptions{
		Recursive: profileRecursive,
		MinSize:   profileMinSize,
		MaxSize:   profileMaxSize,
	}

	files, err := connectors.DiscoverFiles(dirPath, "csv", options)
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
	fmt.Printf("Found %d CSV files\n", len(files))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Profiling files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	workers := runtime.NumCPU()
	semaphore := make(chan struct{}, workers)
	results := make(chan profileResult, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results <- profileFile(f.Path, f.Size)
			bar.Add(1)
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		if result.Err != nil {
			log.Printf("Failed to profile %s: %v", result.Path, result.Err)
			continue
		}
		printProfile(result)
	}
	bar.Finish()
}

func profileFile(path string, size int64) profileResult {
	f, err := os.Open(path)
	if err != nil {
		return profileResult{Path: path, Err: err}
	}
	defer f.Close()

	ds, err := dataset.DetectCSV(f)
	if err != nil {
		return profileResult{Path: path, Err: err}
	}
	return profileResult{
		Path:    path,
		Size:    size,
		Summary: profiler.Summarize(ds),
	}
}

func printProfile(result profileResult) {
	s := result.Summary
	fmt.Printf("\nFile: %s (%s)\n", result.Path, humanize.Bytes(uint64(result.Size)))
	fmt.Printf("- Rows: %d\n", s.Rows)
	fmt.Printf("- Null Value Percentage: %.2f%%\n", s.NullPercentage*100)
	fmt.Printf("- Distinct Row Ratio: %.2f\n", s.DistinctRowRatio)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Kind", "Count", "Nulls", "Distinct", "Mean", "Std", "Min", "Max"})
	for _, col := range s.Columns {
		mean, std := "", ""
		if col.Kind == dataset.Numeric.String() && col.Count > 0 {
			mean = fmt.Sprintf("%.4f", col.Mean)
			std = fmt.Sprintf("%.4f", col.Std)
		}
		t.AppendRow(table.Row{
			col.Name, col.Kind, col.Count, col.NullCount, col.DistinctCount,
			mean, std, col.Min, col.Max,
		})
	}
	t.Render()
}
