package cmd

import (
	"fmt"
	"strings"

	cfgpkg "github.com/KaramelBytes/edakit/internal/config"
	"github.com/KaramelBytes/edakit/internal/table"
	"github.com/spf13/cobra"
)

// loadFlags are the table loading flags shared by every command that reads a file.
type loadFlags struct {
	delimiter  string
	decimal    string
	thousands  string
	sheetName  string
	sheetIndex int
	maxRows    int
}

func addLoadFlags(c *cobra.Command, lf *loadFlags) {
	c.Flags().StringVar(&lf.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (from extension if omitted)")
	c.Flags().StringVar(&lf.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	c.Flags().StringVar(&lf.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	c.Flags().StringVar(&lf.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	c.Flags().IntVar(&lf.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	c.Flags().IntVar(&lf.maxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
}

// options turns the flags and config into table.LoadOptions.
func (lf *loadFlags) options(c *cfgpkg.Global) (table.LoadOptions, error) {
	opt := table.DefaultLoadOptions()
	opt.SheetName = lf.sheetName
	if lf.sheetIndex > 0 {
		opt.SheetIndex = lf.sheetIndex
	}
	if lf.maxRows > 0 {
		opt.MaxRows = lf.maxRows
	}
	switch lf.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	case "|", "pipe":
		opt.Delimiter = '|'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", lf.delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(lf.decimal)) {
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", lf.decimal)
	}
	switch strings.ToLower(strings.TrimSpace(lf.thousands)) {
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", lf.thousands)
	}
	if c != nil && len(c.MissingTokens) > 0 {
		opt.MissingTokens = append(append([]string{}, table.DefaultMissingTokens...), c.MissingTokens...)
	}
	return opt, nil
}

// loadTable reads path with the flags and the current config.
func (lf *loadFlags) loadTable(path string) (*table.Table, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, err
	}
	opt, err := lf.options(c)
	if err != nil {
		return nil, err
	}
	return table.Load(path, opt)
}
