// Package export writes stored findings to a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"geofoto/entities"
)

const SheetName = "Findings"

var header = []interface{}{
	"ID", "Created at", "Latitude", "Longitude", "Classification",
	"Depth (mm)", "Length (mm)", "Rock support", "Recognizable patterns",
	"Pattern count", "Straight lines", "Notes",
}

// WriteXLSX writes one header row and one row per finding, in the given order.
// Unknown coordinates are left as empty cells.
func WriteXLSX(w io.Writer, fs []entities.Finding) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := x.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range fs {
		f := &fs[i]
		row := []interface{}{
			f.ID,
			f.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			optional(f.Latitude),
			optional(f.Longitude),
			string(f.Classification),
			f.DepthMM,
			f.LengthMM,
			f.SupportMaterial,
			f.HasRecognizablePatterns,
			f.PatternCount,
			f.HasStraightLines,
			f.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write finding %d: %w", f.ID, err)
		}
	}

	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
