package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/newthinker/corpus/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <run-dir>",
	Short: "Show the training statistics of a run",
	Long:  "Read stats.tsv from a training run directory and print the per-epoch losses",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	series, err := stats.LoadDir(args[0])
	if err != nil {
		return fmt.Errorf("reading statistics: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "epoch\ttrain_cost\ttrain_ler\tval_cost\tval_ler\t")
	for _, e := range series.Epochs {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t\n", e.Epoch, e.TrainCost, e.TrainLER, e.ValCost, e.ValLER)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := series.Best(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "\nBest epoch: %d (val_cost %.4f, val_ler %.4f)\n", best.Epoch, best.ValCost, best.ValLER)
	}
	return nil
}
