// Package export writes flow status reports as Excel workbooks for hiring
// teams that track pipelines in spreadsheets.
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/recruitflow/internal/flow"
)

// FlowsToExcel writes one workbook with a summary sheet and a per-flow
// sheet. Flows are ordered by score, highest first, with unscored flows at
// the bottom.
func FlowsToExcel(flows []*flow.Context, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	flowsSheet := "Flows"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(flowsSheet); err != nil {
		return fmt.Errorf("failed to create flows sheet: %w", err)
	}

	sorted := make([]*flow.Context, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := -1.0, -1.0
		if sorted[i].Score != nil {
			si = *sorted[i].Score
		}
		if sorted[j].Score != nil {
			sj = *sorted[j].Score
		}
		return si > sj
	})

	if err := writeSummarySheet(f, summarySheet, sorted); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeFlowsSheet(f, flowsSheet, sorted); err != nil {
		return fmt.Errorf("failed to create flows sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheetName string, flows []*flow.Context) error {
	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "B", 40)

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

	row := 1
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Recruiting Flow Report")
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	_ = f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	counts := map[flow.Status]int{}
	for _, fc := range flows {
		counts[fc.Status]++
	}

	entries := []struct {
		label string
		value any
	}{
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Total Flows:", len(flows)},
		{"Succeeded:", counts[flow.StatusSuccess]},
		{"Failed:", counts[flow.StatusFailed]},
		{"Paused for Review:", counts[flow.StatusPaused]},
		{"In Progress:", counts[flow.StatusInProgress]},
	}
	for _, e := range entries {
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.label)
		_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.value)
		row++
	}

	return nil
}

func writeFlowsSheet(f *excelize.File, sheetName string, flows []*flow.Context) error {
	widths := map[string]float64{"A": 30, "B": 20, "C": 15, "D": 12, "E": 14, "F": 10, "G": 50}
	for col, width := range widths {
		_ = f.SetColWidth(sheetName, col, col, width)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	successStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	pausedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	failedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	headers := []string{"Flow ID", "Candidate", "Job", "Stage", "Status", "Score", "Errors"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, fc := range flows {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), fc.FlowID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), fc.CandidateID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fc.JobID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(fc.Stage))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(fc.Status))
		if fc.Score != nil {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", *fc.Score))
		}
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), strings.Join(fc.Errors, "; "))

		var style int
		switch fc.Status {
		case flow.StatusSuccess:
			style = successStyle
		case flow.StatusPaused:
			style = pausedStyle
		case flow.StatusFailed:
			style = failedStyle
		}
		if style != 0 {
			_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), style)
		}
	}

	if len(flows) > 0 {
		_ = f.AutoFilter(sheetName, fmt.Sprintf("A1:G%d", len(flows)+1), []excelize.AutoFilterOptions{})
	}

	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
