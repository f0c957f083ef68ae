package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/edakit/internal/table"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrEmptyTable is returned when percentages are requested for a table with no rows.
var ErrEmptyTable = errors.New("cannot compute missing percentages on a table with no rows")

const bannerWidth = 50

// MissingOptions controls ReportMissing. The zero value prints counts only,
// in column order, and returns nothing.
type MissingOptions struct {
	// ShowPercentage adds missing_count / rows * 100, rounded to 2 decimals, halves to even.
	ShowPercentage bool
	// SortResults orders rows by missing count, descending; ties keep column order.
	SortResults bool
	// ReturnResults makes ReportMissing return the report. It never changes the printed output.
	ReturnResults bool
	// Out receives the printed report. Nil means os.Stdout.
	Out io.Writer
}

// MissingRow is one column's entry in a MissingReport.
type MissingRow struct {
	Column  string
	Unit    string // from the header, e.g. "mg/L" for "Mass [mg/L]"
	Count   int
	Percent float64 // set only when the report HasPercent
}

// MissingReport summarizes missing cells per column.
type MissingReport struct {
	Name       string
	Rows       []MissingRow
	TotalRows  int
	HasPercent bool
}

// ReportMissing counts missing cells per column of t and prints a fixed-format
// report to opt.Out. The report is returned only when opt.ReturnResults is set.
func ReportMissing(t *table.Table, opt MissingOptions) (*MissingReport, error) {
	rep, err := BuildMissingReport(t, opt.ShowPercentage, opt.SortResults)
	if err != nil {
		return nil, err
	}
	out := opt.Out
	if out == nil {
		out = os.Stdout
	}
	if err := rep.WriteText(out); err != nil {
		return nil, fmt.Errorf("write missing report: %w", err)
	}
	if !opt.ReturnResults {
		return nil, nil
	}
	return rep, nil
}

// BuildMissingReport computes the report without printing it.
func BuildMissingReport(t *table.Table, showPercentage, sortResults bool) (*MissingReport, error) {
	rows := t.Rows()
	if showPercentage && rows == 0 {
		return nil, ErrEmptyTable
	}
	rep := &MissingReport{Name: t.Name, TotalRows: rows, HasPercent: showPercentage}
	for _, c := range t.Columns() {
		r := MissingRow{Column: c.Name, Unit: c.Unit, Count: c.MissingCount()}
		if showPercentage {
			r.Percent = scalar.RoundEven(float64(r.Count)/float64(rows)*100, 2)
		}
		rep.Rows = append(rep.Rows, r)
	}
	if sortResults {
		sort.SliceStable(rep.Rows, func(i, j int) bool { return rep.Rows[i].Count > rep.Rows[j].Count })
	}
	slog.Debug("missing report built", "table", t.Name, "columns", len(rep.Rows), "rows", rows, "missing", rep.TotalMissing())
	return rep, nil
}

// TotalMissing returns the number of missing cells across all columns.
func (r *MissingReport) TotalMissing() int {
	n := 0
	for _, row := range r.Rows {
		n += row.Count
	}
	return n
}

// hasUnits reports whether any column header carried a unit.
func (r *MissingReport) hasUnits() bool {
	for _, row := range r.Rows {
		if row.Unit != "" {
			return true
		}
	}
	return false
}

func (r *MissingReport) headers() []string {
	if r.HasPercent {
		return []string{"Missing Count", "Missing (%)"}
	}
	return []string{"Missing Count"}
}

func (r *MissingReport) cells(row MissingRow) []string {
	out := []string{strconv.Itoa(row.Count)}
	if r.HasPercent {
		out = append(out, strconv.FormatFloat(row.Percent, 'f', 2, 64))
	}
	return out
}

// WriteText prints the console layout: banner, title, banner, the table,
// a blank line, the row total and a closing banner.
func (r *MissingReport) WriteText(w io.Writer) error {
	banner := strings.Repeat("=", bannerWidth)
	headers := r.headers()

	nameWidth := 0
	for _, row := range r.Rows {
		nameWidth = max(nameWidth, len(row.Column))
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	body := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		body[i] = r.cells(row)
		for j, c := range body[i] {
			widths[j] = max(widths[j], len(c))
		}
	}

	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("MISSING VALUES ANALYSIS\n")
	b.WriteString(banner + "\n")
	b.WriteString(strings.Repeat(" ", nameWidth))
	for i, h := range headers {
		fmt.Fprintf(&b, "  %*s", widths[i], h)
	}
	b.WriteString("\n")
	for i, row := range r.Rows {
		fmt.Fprintf(&b, "%-*s", nameWidth, row.Column)
		for j, c := range body[i] {
			fmt.Fprintf(&b, "  %*s", widths[j], c)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal rows in dataset: %d\n", r.TotalRows)
	b.WriteString(banner + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}
