// Package export renders keyword views as CSV or XLSX in the same column
// layout the importer reads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"seodash/internal/models"
)

// Formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Headers are the exported columns, in order.
var Headers = []string{
	"Keyword", "Country code", "Location", "Entities", "SERP features",
	"Volume", "KD", "CPC", "Organic traffic", "Paid traffic",
	"Current position", "Current URL", "Updated",
	"Navigational", "Informational", "Commercial", "Transactional", "Branded", "Local",
}

const sheetName = "Keywords"

// row returns the cells for one record. Unranked positions are left blank.
func row(r *models.KeywordRecord) []any {
	var position any
	if r.CurrentPosition != models.NotRankingPosition {
		position = r.CurrentPosition
	}
	var updated any
	if !r.UpdatedAt.IsZero() {
		updated = r.UpdatedAt.UTC().Format(time.DateOnly)
	}
	return []any{
		r.Keyword, r.CountryCode, r.Location, r.Entities, r.SERPFeatures,
		r.Volume, r.KeywordDifficulty, r.CPC, r.OrganicTraffic, r.PaidTraffic,
		position, r.CurrentURL, updated,
		r.Navigational, r.Informational, r.Commercial, r.Transactional, r.Branded, r.Local,
	}
}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []models.KeywordRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	out := make([]string, len(Headers))
	for i := range records {
		for j, cell := range row(&records[i]) {
			out[j] = csvCell(cell)
		}
		if err := writer.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(v)
}

// WriteXLSX writes records as a single-sheet workbook with a styled header.
func WriteXLSX(w io.Writer, records []models.KeywordRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range records {
		cells := row(&records[i])
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Write dispatches on format.
func Write(w io.Writer, format string, records []models.KeywordRecord) error {
	switch format {
	case FormatCSV, "":
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
