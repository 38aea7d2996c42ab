// Package export renders screening batches as Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"hireflow/internal/domain/resume"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	RankedSheet  = "Ranked Resumes"
)

// Screening writes a two-sheet workbook for one ranked batch to w. Rows are
// expected in rank order.
func Screening(w io.Writer, jobDescription string, rows []resume.Ranked, generated time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(RankedSheet); err != nil {
		return err
	}

	if err := summarySheet(f, jobDescription, rows, generated); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := rankedSheet(f, rows); err != nil {
		return fmt.Errorf("failed to create ranked sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ScreeningBytes is Screening into memory.
func ScreeningBytes(jobDescription string, rows []resume.Ranked, generated time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Screening(&buf, jobDescription, rows, generated); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

func summarySheet(f *excelize.File, jd string, rows []resume.Ranked, generated time.Time) error {
	sheet := SummarySheet
	_ = f.SetColWidth(sheet, "A", "A", 25)
	_ = f.SetColWidth(sheet, "B", "B", 60)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return err
	}

	row := 1
	_ = f.SetCellValue(sheet, cell("A", row), "Resume Screening Report")
	_ = f.MergeCell(sheet, cell("A", row), cell("B", row))
	_ = f.SetCellStyle(sheet, cell("A", row), cell("B", row), headerStyle)
	row += 2

	shortlisted := 0
	var top, sum float64
	for i, r := range rows {
		if r.Shortlisted {
			shortlisted++
		}
		if i == 0 || r.MatchPercent > top {
			top = r.MatchPercent
		}
		sum += r.MatchPercent
	}
	avg := 0.0
	if len(rows) > 0 {
		avg = sum / float64(len(rows))
	}

	pairs := []struct {
		label string
		value any
	}{
		{"Generated:", generated.Format("2006-01-02 15:04:05")},
		{"Resumes Ranked:", len(rows)},
		{"Shortlisted:", shortlisted},
		{"Highest Match %:", top},
		{"Average Match %:", fmt.Sprintf("%.2f", avg)},
		{"Job Description:", jd},
	}
	for _, p := range pairs {
		_ = f.SetCellValue(sheet, cell("A", row), p.label)
		_ = f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
		_ = f.SetCellValue(sheet, cell("B", row), p.value)
		row++
	}
	_ = f.SetCellStyle(sheet, cell("B", row-1), cell("B", row-1), wrapStyle)
	return nil
}

func rankedSheet(f *excelize.File, rows []resume.Ranked) error {
	sheet := RankedSheet
	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "D", 14)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}
	shortlistStyle, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Border: thinBorder,
	})
	if err != nil {
		return err
	}
	plainStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Resume", "Match %", "Shortlisted"}
	for i, h := range headers {
		c := cell(string(rune('A'+i)), 1)
		_ = f.SetCellValue(sheet, c, h)
		_ = f.SetCellStyle(sheet, c, c, headerStyle)
	}

	for i, r := range rows {
		row := i + 2
		_ = f.SetCellValue(sheet, cell("A", row), r.Rank)
		_ = f.SetCellValue(sheet, cell("B", row), r.Filename)
		_ = f.SetCellValue(sheet, cell("C", row), r.MatchPercent)
		shortlisted := "No"
		style := plainStyle
		if r.Shortlisted {
			shortlisted = "Yes"
			style = shortlistStyle
		}
		_ = f.SetCellValue(sheet, cell("D", row), shortlisted)
		_ = f.SetCellStyle(sheet, cell("A", row), cell("D", row), style)
	}

	if len(rows) > 0 {
		_ = f.AutoFilter(sheet, fmt.Sprintf("A1:D%d", len(rows)+1), []excelize.AutoFilterOptions{})
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
