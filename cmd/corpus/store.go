package main

import (
	"fmt"
	"strings"

	"github.com/newthinker/corpus/internal/app"
	"github.com/newthinker/corpus/internal/corpus"
	"github.com/newthinker/corpus/internal/speech"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var convertGzip bool

var lsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List stored corpora",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Load a speech corpus and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Re-save a speech corpus, e.g. to compress it",
	Long: `Load a speech corpus and save it under a new name. The destination is
compressed when --gzip is given or when it ends in .gz.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertGzip, "gzip", false, "store the destination gzip-compressed")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(convertCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	paths, err := app.OpenStore[speech.Corpus](a).List(cmd.Context(), prefix)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := app.OpenStore[speech.Corpus](a).Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	s := speech.Summarize(c)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Corpus:      %s\n", args[0])
	fmt.Fprintf(out, "Entries:     %d\n", s.Entries)
	fmt.Fprintf(out, "Transcribed: %d\n", s.Transcribed)
	fmt.Fprintf(out, "Features:    %d..%d\n", s.MinFeatures, s.MaxFeatures)
	fmt.Fprintf(out, "Labels:      %s\n", strings.Join(s.Labels, ", "))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store := app.OpenStore[speech.Corpus](a)
	c, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	dst := args[1]
	compressed := convertGzip || corpus.IsCompressed(dst)
	if compressed {
		dst = strings.TrimSuffix(dst, corpus.CompressedSuffix)
	}

	loc, err := store.Save(cmd.Context(), c, dst, compressed)
	if err != nil {
		return err
	}

	a.Logger().Info("corpus converted",
		zap.String("src", args[0]),
		zap.String("dst", loc),
		zap.Int("entries", len(c)),
	)
	fmt.Fprintln(cmd.OutOrStdout(), loc)
	return nil
}
