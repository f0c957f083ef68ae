package cmd

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	misLoad     loadFlags
	misPercent  bool
	misSort     bool
	misMarkdown string
	misXLSX     string
)

var missingCmd = &cobra.Command{
	Use:   "missing <file>",
	Short: "Print missing-value counts for every column of a CSV/TSV/XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := misLoad.loadTable(args[0])
		if err != nil {
			return err
		}
		rep, err := analysis.ReportMissing(t, analysis.MissingOptions{
			ShowPercentage: misPercent,
			SortResults:    misSort,
			ReturnResults:  true,
			Out:            cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		return exportMissing(cmd, rep, misMarkdown, misXLSX)
	},
}

// exportMissing writes the optional Markdown and XLSX copies of a report.
func exportMissing(cmd *cobra.Command, rep *analysis.MissingReport, mdPath, xlsxPath string) error {
	if mdPath != "" {
		if err := utils.SafeWriteFile(mdPath, []byte(rep.Markdown())); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote Markdown report to %s\n", mdPath)
	}
	if xlsxPath != "" {
		if err := analysis.WriteMissingXLSX(rep, xlsxPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote XLSX report to %s\n", xlsxPath)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(missingCmd)
	addLoadFlags(missingCmd, &misLoad)
	missingCmd.Flags().BoolVar(&misPercent, "percent", false, "add a Missing (%) column")
	missingCmd.Flags().BoolVar(&misSort, "sort", false, "sort columns by missing count, descending")
	missingCmd.Flags().StringVar(&misMarkdown, "markdown", "", "also write the report as Markdown to this path")
	missingCmd.Flags().StringVar(&misXLSX, "xlsx", "", "also write the report as an XLSX workbook to this path")
}
