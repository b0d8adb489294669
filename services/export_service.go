package services

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Abdelrazek97/form-app/model"
	"github.com/Abdelrazek97/form-app/utils/auth"
	"github.com/xuri/excelize/v2"
)

// SheetSpec is one worksheet of an export
type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// ExportService builds the admin XLSX report
type ExportService struct {
	reports *ReportService
}

// NewExportService creates a new export service
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports}
}

// Sheets collects the KPI sheet and one sheet per record kind
func (s *ExportService) Sheets(ctx context.Context, identity auth.Identity) ([]SheetSpec, error) {
	kpi, err := s.reports.KPIs(ctx, identity)
	if err != nil {
		return nil, err
	}

	sheets := make([]SheetSpec, 0, len(model.RecordKinds)+1)
	kpiSheet := SheetSpec{Title: "KPIs", Header: []string{"Indicator", "Count", "Percentage"}}
	for _, ind := range kpi.Indicators {
		pct := ""
		if ind.HasPercent {
			pct = strconv.Itoa(ind.Percent) + "%"
		}
		kpiSheet.Rows = append(kpiSheet.Rows, []string{ind.Label, strconv.FormatInt(ind.Count, 10), pct})
	}
	sheets = append(sheets, kpiSheet)

	for _, kind := range model.RecordKinds {
		records, err := s.reports.List(ctx, identity, kind)
		if err != nil {
			return nil, err
		}
		sheet := SheetSpec{
			Title:  kind.Title(),
			Header: append([]string{"ID", "Username", "Full Name"}, append(kind.Columns(), "Created")...),
		}
		for _, r := range records {
			row := []string{strconv.FormatUint(uint64(r.RecordID()), 10), "", ""}
			if owner := r.Owner(); owner != nil {
				row[1], row[2] = owner.Username, owner.FullName
			}
			row = append(row, r.Cells()...)
			row = append(row, createdAt(r))
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// Write renders the full report as an XLSX workbook to w
func (s *ExportService) Write(ctx context.Context, identity auth.Identity, w io.Writer) error {
	sheets, err := s.Sheets(ctx, identity)
	if err != nil {
		return err
	}
	f, err := NewWorkbook(sheets)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// NewWorkbook lays sheets out with a bold, filtered header row
func NewWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		for col, h := range s.Header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// width from the header and the first rows
		for c := 1; c <= len(s.Header); c++ {
			width := len(s.Header[c-1])
			for r := 0; r < len(s.Rows) && r < 50; r++ {
				if c-1 < len(s.Rows[r]) && len(s.Rows[r][c-1]) > width {
					width = len(s.Rows[r][c-1])
				}
			}
			w := float64(width) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			colName, _ := excelize.ColumnNumberToName(c)
			_ = f.SetColWidth(name, colName, colName, w)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func createdAt(r model.Record) string {
	return r.Created().Format("2006-01-02 15:04")
}
