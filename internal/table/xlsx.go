package table

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

func (xlsxLoader) Load(path string, opt LoadOptions) (*Table, error) { return LoadXLSX(path, opt) }

// LoadXLSX reads one worksheet. The sheet is picked by opt.SheetName, or by the
// 1-based opt.SheetIndex when no name is given.
func LoadXLSX(path string, opt LoadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	sheet, err := pickSheet(sheets, opt, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	var t *Table
	if len(rows) == 0 {
		t, err = New(nil, nil, opt)
	} else {
		t, err = New(rows[0], rows[1:], opt)
	}
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

func pickSheet(sheets []string, opt LoadOptions, file string) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			opt.SheetName, file, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range: workbook '%s' has %d sheet(s)", idx, file, len(sheets))
	}
	return sheets[idx-1], nil
}
