package export

import (
	"fmt"
	"strings"

	"github.com/etnz/tracker"
	"github.com/xuri/excelize/v2"
)

// Sheet is a series written as one sheet of a workbook.
type Sheet struct {
	Name   string
	Series tracker.Series
}

// sheetName strips the characters Excel refuses in sheet names and truncates to 31 runes.
func sheetName(name string) string {
	name = strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "").Replace(name)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		name = "series"
	}
	return name
}

// Workbook writes one sheet per series into the xlsx file at path.
//
// Each sheet starts with the headers row, followed by one date and value row per entry.
func Workbook(path string, headers []string, sheets []Sheet) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	for i, sheet := range sheets {
		name := sheetName(sheet.Name)
		idx, err := f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("cannot create sheet %q: %w", name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		header := make([]interface{}, len(headers))
		for j, h := range headers {
			header[j] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
		row := 2
		for day, v := range sheet.Series.Values() {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &[]interface{}{day.String(), v.InexactFloat64()}); err != nil {
				return err
			}
			row++
		}
	}
	// the default sheet is only removed once another one exists.
	if len(sheets) > 0 && sheetName(sheets[0].Name) != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %s: %w", path, err)
	}
	return nil
}
