package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/xuri/excelize/v2"
)

// WriteMarkdown renders the report as a Markdown section with a table.
func (r *MissingReport) WriteMarkdown(w io.Writer) error {
	md := markdown.NewMarkdown(w)
	md.H2("Missing Values Analysis")
	md.PlainText("")
	if r.Name != "" {
		md.PlainTextf("File: `%s`", r.Name)
		md.PlainText("")
	}
	header := append(r.leadHeaders(), r.headers()...)
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = append(r.lead(row), r.cells(row)...)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
	md.PlainTextf("Total rows in dataset: %d", r.TotalRows)
	md.PlainText("")
	md.PlainTextf("Total missing cells: %d", r.TotalMissing())
	return md.Build()
}

// leadHeaders names the identifying columns of an exported row. Unit appears
// only when some header carried one.
func (r *MissingReport) leadHeaders() []string {
	if r.hasUnits() {
		return []string{"Column", "Unit"}
	}
	return []string{"Column"}
}

func (r *MissingReport) lead(row MissingRow) []string {
	if r.hasUnits() {
		return []string{row.Column, row.Unit}
	}
	return []string{row.Column}
}

// Markdown returns the report as WriteMarkdown renders it.
func (r *MissingReport) Markdown() string {
	var b strings.Builder
	_ = r.WriteMarkdown(&b)
	return b.String()
}

const (
	missingSheet = "Missing"
	summarySheet = "Summary"
)

// WriteMissingXLSX saves the report as a workbook: one row per column on the
// "Missing" sheet and the row total on the "Summary" sheet.
func WriteMissingXLSX(r *MissingReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", missingSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	var header []interface{}
	for _, h := range append(r.leadHeaders(), r.headers()...) {
		header = append(header, h)
	}
	if err := f.SetSheetRow(missingSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range r.Rows {
		var vals []interface{}
		for _, v := range r.lead(row) {
			vals = append(vals, v)
		}
		vals = append(vals, row.Count)
		if r.HasPercent {
			vals = append(vals, row.Percent)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d cell: %w", i+1, err)
		}
		if err := f.SetSheetRow(missingSheet, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Total rows", r.TotalRows},
		{"Total missing", r.TotalMissing()},
	}
	for i, vals := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell: %w", err)
		}
		row := vals
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
