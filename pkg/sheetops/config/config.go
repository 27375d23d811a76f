// Package config loads the YAML job file consumed by the sheetops CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sheetops/sheetops-go/pkg/sheetops/export"
	"github.com/sheetops/sheetops-go/pkg/sheetops/models"
	"gopkg.in/yaml.v3"
)

// Target names a sheet region by its header anchor.
type Target struct {
	// Sheet is the sheet name.
	Sheet string `yaml:"sheet"`
	// Row is the header row (1-based). Defaults to 1.
	Row int `yaml:"row"`
	// Col is the first column (1-based). Defaults to 1.
	Col int `yaml:"col"`
}

// Region converts the target to a models.Region.
func (t Target) Region() models.Region {
	return models.Region{Sheet: t.Sheet, Row: t.Row, Col: t.Col}
}

// Layout mirrors models.Layout with YAML-friendly paper names.
type Layout struct {
	// Orientation is "portrait" or "landscape".
	Orientation string `yaml:"orientation"`
	// Paper is "a4" or "letter".
	Paper string `yaml:"paper"`
	// FitToWidth scales the sheet to this many pages wide (0 = no fit).
	FitToWidth int `yaml:"fit_to_width"`
	// FitToHeight scales the sheet to this many pages tall (0 = no fit).
	FitToHeight int `yaml:"fit_to_height"`
}

// Model converts the layout to a models.Layout.
func (l Layout) Model() (models.Layout, error) {
	out := models.Layout{
		FitToWidth:  l.FitToWidth,
		FitToHeight: l.FitToHeight,
	}
	switch l.Orientation {
	case "":
	case "portrait":
		out.Orientation = models.Portrait
	case "landscape":
		out.Orientation = models.Landscape
	default:
		return models.Layout{}, fmt.Errorf("invalid orientation: %q", l.Orientation)
	}
	switch l.Paper {
	case "":
	case "a4":
		out.PaperSize = models.PaperA4
	case "letter":
		out.PaperSize = models.PaperLetter
	default:
		return models.Layout{}, fmt.Errorf("invalid paper: %q", l.Paper)
	}
	return out, nil
}

// Config is one CLI job: the workbook, its regions, and output locations.
type Config struct {
	// Workbook is the xlsx path.
	Workbook string `yaml:"workbook"`
	// OutputDir is where exported artifacts land.
	OutputDir string `yaml:"output_dir"`
	// AuditLog is the plain-text audit log path. Defaults to
	// <output_dir>/audit.log.
	AuditLog string `yaml:"audit_log"`

	// Live is the live data region (export and archive source).
	Live Target `yaml:"live"`
	// Archive is the append-only archive region.
	Archive Target `yaml:"archive"`
	// Lookup is the validation-list lookup region.
	Lookup Target `yaml:"lookup"`
	// ValidateTarget is the region whose columns receive dropdowns.
	ValidateTarget Target `yaml:"validate"`

	// Layout is the page setup for paginated export.
	Layout Layout `yaml:"layout"`
	// LineEnding is "crlf" (default) or "lf" for delimited export.
	LineEnding string `yaml:"line_ending"`
}

// Default returns the configuration defaults applied before unmarshalling.
func Default() Config {
	return Config{
		OutputDir:  "out",
		LineEnding: "crlf",
		Layout:     Layout{Orientation: "landscape", Paper: "a4", FitToWidth: 1},
	}
}

// Load reads and validates a job file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	for _, t := range []*Target{&c.Live, &c.Archive, &c.Lookup, &c.ValidateTarget} {
		if t.Row == 0 {
			t.Row = 1
		}
		if t.Col == 0 {
			t.Col = 1
		}
	}
	if c.AuditLog == "" && c.OutputDir != "" {
		c.AuditLog = filepath.Join(c.OutputDir, "audit.log")
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.Workbook == "" {
		return fmt.Errorf("config: workbook is required")
	}
	if c.LineEnding != "crlf" && c.LineEnding != "lf" {
		return fmt.Errorf("config: line_ending must be crlf or lf, got %q", c.LineEnding)
	}
	if _, err := c.Layout.Model(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Terminator returns the configured delimited-export line terminator.
func (c Config) Terminator() string {
	if c.LineEnding == "lf" {
		return export.LF
	}
	return export.CRLF
}
