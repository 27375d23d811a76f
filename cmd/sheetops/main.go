// Package main provides the CLI entry point for sheetops.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sheetops/sheetops-go/pkg/sheetops"
	"github.com/sheetops/sheetops-go/pkg/sheetops/audit"
	"github.com/sheetops/sheetops-go/pkg/sheetops/config"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath string
	outPath string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetops",
		Short: "Automate exports, archival, and validation lists on an xlsx workbook",
		Long: `sheetops runs recurring operations against a tabular workbook:
CSV export, paginated PDF export, archival of live rows into an
append-only history sheet, and dropdown validation lists derived
from a lookup sheet. Every run is recorded in a plain-text audit log.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "sheetops.yaml", "Job configuration file")
	rootCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Output file path (default: derived from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newCSVCmd())
	rootCmd.AddCommand(newPDFCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func open() (*sheetops.Workbook, config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	logger, err := buildLogger()
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := sheetops.DefaultOptions()
	opts.Terminator = cfg.Terminator()
	opts.Logger = logger
	if cfg.AuditLog != "" {
		opts.AuditSink = audit.NewFileSink(cfg.AuditLog)
	}

	wb, err := sheetops.Open(cfg.Workbook, opts)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open workbook: %w", err)
	}
	return wb, cfg, nil
}

func output(cfg config.Config, name string) string {
	if outPath != "" {
		return outPath
	}
	return filepath.Join(cfg.OutputDir, name)
}

func newCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "csv",
		Short: "Export the live region to delimited text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, cfg, err := open()
			if err != nil {
				return err
			}
			defer wb.Close()

			path := output(cfg, cfg.Live.Sheet+".csv")
			if err := wb.ExportDelimited(cfg.Live.Region(), path); err != nil {
				if errors.Is(err, sheetops.ErrEmptyRegion) {
					fmt.Println("Nothing to export: the live region is empty.")
				}
				return err
			}
			fmt.Printf("Exported %s to %s\n", cfg.Live.Sheet, path)
			return nil
		},
	}
}

func newPDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pdf",
		Short: "Export the live sheet to a paginated PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, cfg, err := open()
			if err != nil {
				return err
			}
			defer wb.Close()

			layout, err := cfg.Layout.Model()
			if err != nil {
				return err
			}
			path := output(cfg, cfg.Live.Sheet+".pdf")
			if err := wb.ExportPaginated(cfg.Live.Sheet, path, layout); err != nil {
				return err
			}
			fmt.Printf("Rendered %s to %s\n", cfg.Live.Sheet, path)
			return nil
		},
	}
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move live data rows into the archive sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, cfg, err := open()
			if err != nil {
				return err
			}
			defer wb.Close()

			result, err := wb.Archive(cfg.Live.Region(), cfg.Archive.Region())
			if err != nil {
				return err
			}
			if result.Outcome == models.OutcomeSkipped {
				fmt.Println(result.Message)
				return nil
			}
			if err := wb.Save(); err != nil {
				return err
			}
			fmt.Printf("%s (batch %s)\n", result.Message, result.Timestamp.Format(audit.TimeFormat))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Rebuild dropdown validation lists and bind them to the target sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, cfg, err := open()
			if err != nil {
				return err
			}
			defer wb.Close()

			bindings, applyErr := wb.ApplyValidations(cfg.Lookup.Region(), cfg.ValidateTarget.Region())
			// Persist the columns that did bind even when others failed.
			if len(bindings) > 0 {
				if err := wb.Save(); err != nil {
					return err
				}
			}
			bound := 0
			for _, b := range bindings {
				if b.ListName != "" {
					bound++
				}
			}
			fmt.Printf("Bound %d of %d columns\n", bound, len(bindings))
			return applyErr
		},
	}
}
