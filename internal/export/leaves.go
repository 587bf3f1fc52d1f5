package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"leave-manager/internal/models"
)

// SheetName is the worksheet holding exported leave applications.
const SheetName = "Leaves"

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{"ID", "User ID", "Date From", "Date To", "Reason", "Status"}

// WriteLeaves renders the leave applications as an XLSX workbook, one row each, after a header row.
func WriteLeaves(w io.Writer, leaves []models.LeaveApplication) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, leave := range leaves {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			leave.ID,
			leave.UserID,
			leave.DateFrom.String(),
			leave.DateTo.String(),
			leave.Reason,
			leave.Status,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
