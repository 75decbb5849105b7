// Package export renders admin reports as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Roster"

// WriteRoster writes a workbook with the session header on top and one row
// per booking below it.
func WriteRoster(w io.Writer, session domain.ClassSession, bookings []domain.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(rosterSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	header := [][]interface{}{
		{"Session", session.Name},
		{"Kind", string(session.Kind)},
		{"Date", session.Date.Format("2006-01-02")},
		{"Time", session.StartTime + "-" + session.EndTime},
		{"Capacity", session.Capacity},
		{"Filled", session.Filled},
		{"Available", session.Available},
	}
	for i, row := range header {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	tableRow := len(header) + 2
	titles := []interface{}{"#", "Booking ID", "User ID", "Booked at"}
	cell, _ := excelize.CoordinatesToCellName(1, tableRow)
	if err := f.SetSheetRow(rosterSheet, cell, &titles); err != nil {
		return fmt.Errorf("write titles: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(titles), tableRow)
		_ = f.SetCellStyle(rosterSheet, cell, last, style)
	}

	for i, b := range bookings {
		row := []interface{}{i + 1, b.ID, b.UserID, b.CreatedAt.UTC().Format("2006-01-02 15:04")}
		cell, _ := excelize.CoordinatesToCellName(1, tableRow+1+i)
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return fmt.Errorf("write booking row: %w", err)
		}
	}

	_ = f.SetColWidth(rosterSheet, "A", "A", 12)
	_ = f.SetColWidth(rosterSheet, "B", "C", 40)
	_ = f.SetColWidth(rosterSheet, "D", "D", 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
