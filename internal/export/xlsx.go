package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"
)

// WriteXLSX renders the rows as a one-sheet workbook with fixed column
// widths and an autofilter over the header row, and writes it to w.
func WriteXLSX(w io.Writer, rows []Row, plan Plan) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(plan.Sheet)
	if err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}

	header := sheet.AddRow()
	for i, col := range plan.Columns {
		cell := header.AddCell()
		cell.SetString(col.Header)
		sheet.SetColWidth(i+1, i+1, col.Width)
	}

	for _, row := range rows {
		out := sheet.AddRow()
		for _, col := range plan.Columns {
			out.AddCell().SetString(row.Field(col.Key))
		}
	}

	sheet.AutoFilter = &xlsx.AutoFilter{
		TopLeftCell:     "A1",
		BottomRightCell: xlsx.GetCellIDStringFromCoords(len(plan.Columns)-1, len(rows)),
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
