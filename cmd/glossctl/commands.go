package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"glosskeep/internal/analyzer"
)

func runDups(cmd *cobra.Command, args []string) error {
	records, loadErrs := analyzer.LoadFiles(args, slog.Default())
	if len(records) == 0 {
		return fmt.Errorf("no terms loaded from %d file(s)", len(args))
	}

	result := analyzer.Analyze(records)
	result.LoadErrors = loadErrs

	if err := result.WriteReport(os.Stdout); err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := result.Export(f, time.Now()); err != nil {
			return fmt.Errorf("export to %s: %w", outPath, err)
		}
		slog.Info("Detailed analysis exported", slog.String("path", outPath))
	}
	return nil
}

func runMissing(cmd *cobra.Command, args []string) error {
	records, loadErrs := analyzer.LoadFiles(args, slog.Default())
	if len(records) == 0 {
		return fmt.Errorf("no terms loaded from %d file(s)", len(args))
	}
	for _, le := range loadErrs {
		slog.Warn("Skipped file", slog.Any("error", le))
	}

	missing := analyzer.MissingRelated(records)
	fmt.Printf("Found %d terms that are referenced in 'related' but not defined:\n", len(missing))
	fmt.Println(strings.Repeat("=", 70))
	for _, name := range missing {
		fmt.Println(name)
	}
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Total: %d terms\n", len(missing))
	return nil
}

func runTerms(cmd *cobra.Command, args []string) error {
	records, loadErrs := analyzer.LoadFiles(args, slog.Default())
	if len(records) == 0 {
		return fmt.Errorf("no terms loaded from %d file(s)", len(args))
	}
	for _, le := range loadErrs {
		slog.Warn("Skipped file", slog.Any("error", le))
	}

	for _, name := range analyzer.DefinedTerms(records) {
		fmt.Println(name)
	}
	return nil
}
