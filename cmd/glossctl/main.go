// glossctl is the offline maintenance tool for the glossary datasets. It
// runs the duplicate analysis and data hygiene reports directly over the
// raw JSON term files, outside the live request path.
package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo})))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dupsCmd)
	rootCmd.AddCommand(missingCmd)
	rootCmd.AddCommand(termsCmd)

	dupsCmd.Flags().StringP("out", "o", "", "write the structured analysis to a JSON file")
}

var rootCmd = &cobra.Command{
	Use:   "glossctl",
	Short: "Maintenance tooling for glossary term datasets",
}

var dupsCmd = &cobra.Command{
	Use:   "dups [terms.json...]",
	Short: "Find exact-name duplicate terms and recommend which copy to keep",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDups,
}

var missingCmd = &cobra.Command{
	Use:   "missing [terms.json...]",
	Short: "List related-term references that are not defined as terms",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMissing,
}

var termsCmd = &cobra.Command{
	Use:   "terms [terms.json...]",
	Short: "List all defined term names",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTerms,
}
