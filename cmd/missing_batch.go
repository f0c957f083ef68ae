package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/edakit/internal/analysis"
	"github.com/KaramelBytes/edakit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	mbLoad    loadFlags
	mbPercent bool
	mbSort    bool
	mbOutDir  string
	mbQuiet   bool
)

var missingBatchCmd = &cobra.Command{
	Use:   "missing-batch <files...>",
	Short: "Run the missing-values report over many files or globs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if mbOutDir != "" {
			if err := utils.EnsureDir(mbOutDir); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		total := len(files)
		for i, path := range files {
			if !mbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			t, err := mbLoad.loadTable(path)
			if err != nil {
				return err
			}
			opt := analysis.MissingOptions{
				ShowPercentage: mbPercent,
				SortResults:    mbSort,
				ReturnResults:  true,
				Out:            out,
			}
			if mbQuiet && mbOutDir != "" {
				opt.Out = io.Discard
			}
			rep, err := analysis.ReportMissing(t, opt)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if mbOutDir == "" {
				continue
			}
			outFile := uniquePath(mbOutDir, reportBase(path, mbLoad.sheetName), ".missing.md")
			if outFile != filepath.Join(mbOutDir, reportBase(path, mbLoad.sheetName)+".missing.md") && !mbQuiet {
				fmt.Fprintf(out, "⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(outFile))
			}
			if err := exportMissing(cmd, rep, outFile, ""); err != nil {
				return err
			}
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths into a sorted, de-duplicated list.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

// reportBase names a report after its input file and, for XLSX, the sheet.
func reportBase(path, sheet string) string {
	base := filepath.Base(path)
	safe := strings.TrimSuffix(base, filepath.Ext(base))
	if sheet == "" {
		return safe
	}
	return safe + "__sheet-" + utils.Slug(sheet)
}

// uniquePath returns dir/base+ext, or dir/base__N+ext for the first N >= 2 that is free.
func uniquePath(dir, base, ext string) string {
	p := filepath.Join(dir, base+ext)
	if _, err := os.Stat(p); err != nil {
		return p
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, ext))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(missingBatchCmd)
	addLoadFlags(missingBatchCmd, &mbLoad)
	missingBatchCmd.Flags().BoolVar(&mbPercent, "percent", false, "add a Missing (%) column")
	missingBatchCmd.Flags().BoolVar(&mbSort, "sort", false, "sort columns by missing count, descending")
	missingBatchCmd.Flags().StringVar(&mbOutDir, "out-dir", "", "write one Markdown report per input into this directory")
	missingBatchCmd.Flags().BoolVar(&mbQuiet, "quiet", false, "suppress progress and, with --out-dir, the printed reports")
}
