package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"
	"github.com/sudhirj/catena"
)

var Output string
var MetricsFile string
var SkipErrors bool
var Quiet bool

var rootCmd = &cobra.Command{
	Use:   "catr [files...]",
	Short: "catr concatenates files into a single stream, opening each file only when it is reached.",
	Long: `A cat-like tool built on lazy sequential reads. Files are opened one at a
time, only when the stream actually reaches them, so arbitrarily long file
lists don't exhaust file descriptors. A file that fails to open aborts the
stream unless --skip-errors is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out io.Writer = os.Stdout
		if Output != "" {
			dest, err := os.Create(Output)
			if err != nil {
				return err
			}
			defer dest.Close()
			out = dest
		}

		// Stat every input up front so the progress bar knows the total
		// size. Missing files count as zero here; the reader reports them
		// properly once the stream reaches them.
		sizes := iter.Map(args, func(path *string) int64 {
			info, err := os.Stat(*path)
			if err != nil {
				return 0
			}
			return info.Size()
		})
		var total int64
		for _, size := range sizes {
			total += size
		}

		// The bar writes to stderr, but only makes sense when the data
		// itself isn't going to the terminal.
		if !Quiet && Output != "" {
			out = io.MultiWriter(out, progressbar.DefaultBytes(
				total,
				"Concatenating",
			))
		}

		reader := catena.NewFileReader(args...)
		defer reader.Close()

		var written int64
		for {
			n, err := io.Copy(out, reader)
			written += n
			if err == nil {
				break
			}
			if !SkipErrors {
				return err
			}
			path, _ := reader.FilePath()
			fmt.Fprintf(os.Stderr, "catr: skipping %s: %v\n", path, err)
			if !reader.Skip() {
				break
			}
		}

		if MetricsFile != "" {
			mf, err := os.Create(MetricsFile)
			if err != nil {
				return err
			}
			catena.StatsForNerds.WritePrometheus(mf)
			if err := mf.Close(); err != nil {
				return err
			}
		}

		if !Quiet {
			fmt.Fprintf(
				os.Stderr,
				"Wrote %s from %d files.\n",
				humanize.IBytes(uint64(written)),
				len(args),
			)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&Output, "output", "o", "", "Destination path. Will be overwritten if it exists. Defaults to stdout.")
	_ = rootCmd.MarkFlagFilename("output")

	rootCmd.Flags().StringVarP(&MetricsFile, "metrics-file", "m", "", "Write Prometheus metrics to this file on completion.")
	rootCmd.Flags().BoolVar(&SkipErrors, "skip-errors", false, "Skip files that cannot be opened or read instead of aborting.")
	rootCmd.Flags().BoolVarP(&Quiet, "quiet", "q", false, "Suppress the progress bar and summary.")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
