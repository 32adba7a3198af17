package cli

import (
	"fmt"

	"github.com/morozRed/tagjump/internal/fileutil"
	"github.com/morozRed/tagjump/internal/tags"
	"github.com/spf13/cobra"
)

type CheckSummary struct {
	Path     string         `json:"path"`
	Records  int            `json:"records"`
	Symbols  int            `json:"symbols"`
	Skipped  int            `json:"skipped"`
	Warnings []tags.Warning `json:"warnings,omitempty"`
}

func RunCheck(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	cfg, err := LoadSettings(cmd)
	if err != nil {
		return err
	}
	index, warnings, err := tags.Load(cfg.TagsFile)
	if err != nil {
		return err
	}

	summary := CheckSummary{
		Path:     cfg.TagsFile,
		Records:  index.Len(),
		Symbols:  len(index.Symbols()),
		Skipped:  len(warnings),
		Warnings: warnings,
	}
	if asJSON {
		return fileutil.PrintJSON(outWriter(cmd), summary)
	}

	ReportWarnings(errWriter(cmd), summary.Path, warnings)
	fmt.Fprintf(outWriter(cmd), "%s: %d records, %d symbols, %d lines skipped\n",
		summary.Path, summary.Records, summary.Symbols, summary.Skipped)
	return nil
}
