package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/marketpadi/backend/pkg/levy"
)

// ExportLevyReportToCSV renders the levy report for the caller's filters as
// a CSV download.
func ExportLevyReportToCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := dashboardFilterFromRequest(r)
	if err != nil {
		http.Error(w, "invalid report filters", http.StatusBadRequest)
		return
	}
	report, err := levyAssembler().BuildExportReport(filter)
	if err != nil {
		writeLevyError(w, err)
		return
	}

	csvData, err := createLevyCSV(report)
	if err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("levy_report_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(csvData)))

	w.WriteHeader(http.StatusOK)
	w.Write(csvData)
}

// ExportLevyReportToExcel renders the levy report as an Excel download.
func ExportLevyReportToExcel(w http.ResponseWriter, r *http.Request) {
	filter, err := dashboardFilterFromRequest(r)
	if err != nil {
		http.Error(w, "invalid report filters", http.StatusBadRequest)
		return
	}
	report, err := levyAssembler().BuildExportReport(filter)
	if err != nil {
		writeLevyError(w, err)
		return
	}

	excelFile, err := createLevyExcel(report)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("levy_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

var marketDetailHeaders = []string{
	"Market", "Total Revenue", "Transactions", "Total Traders",
	"Compliant Traders", "Non-Compliant Traders", "Compliance Rate (%)",
}

// createLevyCSV writes the aggregate totals, per-market detail rows,
// payment-method breakdown and monthly revenue rows.
func createLevyCSV(report *levy.ExportReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"Levy Collection Report"})
	writer.Write([]string{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")})
	writer.Write([]string{"Window", report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02")})
	writer.Write([]string{"Total Revenue", report.TotalRevenue.StringFixed(2)})
	writer.Write([]string{"Transactions", fmt.Sprintf("%d", report.TransactionCount)})
	writer.Write([]string{"Markets", fmt.Sprintf("%d", report.MarketCount)})
	writer.Write(nil)

	writer.Write(marketDetailHeaders)
	for _, m := range report.Markets {
		writer.Write([]string{
			m.MarketName,
			m.TotalRevenue.StringFixed(2),
			fmt.Sprintf("%d", m.TransactionCount),
			fmt.Sprintf("%d", m.TotalTraders),
			fmt.Sprintf("%d", m.CompliantTraders),
			fmt.Sprintf("%d", m.NonCompliantTraders),
			fmt.Sprintf("%.1f", m.ComplianceRate),
		})
	}
	writer.Write(nil)

	writer.Write([]string{"Payment Method", "Revenue", "Transactions"})
	for _, m := range report.Methods {
		writer.Write([]string{string(m.Method), m.Revenue.StringFixed(2), fmt.Sprintf("%d", m.Count)})
	}
	writer.Write(nil)

	writer.Write([]string{"Month", "Revenue"})
	for _, b := range report.Monthly {
		writer.Write([]string{fmt.Sprintf("%s %d", b.Label, b.Year), b.Revenue.StringFixed(2)})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// createLevyExcel builds the same report as a styled workbook.
func createLevyExcel(report *levy.ExportReport) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Levy Report"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", "Levy Collection Report")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Window: %s to %s",
		report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	row := 5
	for colIdx, header := range marketDetailHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}
	for _, m := range report.Markets {
		row++
		values := []interface{}{
			m.MarketName, m.TotalRevenue.InexactFloat64(), m.TransactionCount,
			m.TotalTraders, m.CompliantTraders, m.NonCompliantTraders, m.ComplianceRate,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	row += 2
	for colIdx, header := range []string{"Payment Method", "Revenue", "Transactions"} {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for _, m := range report.Methods {
		row++
		f.SetCellValue(sheetName, mustCell(1, row), string(m.Method))
		f.SetCellValue(sheetName, mustCell(2, row), m.Revenue.InexactFloat64())
		f.SetCellValue(sheetName, mustCell(3, row), m.Count)
	}

	row += 2
	for colIdx, header := range []string{"Month", "Revenue"} {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	for _, b := range report.Monthly {
		row++
		f.SetCellValue(sheetName, mustCell(1, row), fmt.Sprintf("%s %d", b.Label, b.Year))
		f.SetCellValue(sheetName, mustCell(2, row), b.Revenue.InexactFloat64())
	}

	// Totals block.
	row += 2
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
	})
	f.SetCellValue(sheetName, mustCell(1, row), "Total Revenue")
	f.SetCellStyle(sheetName, mustCell(1, row), mustCell(1, row), totalStyle)
	f.SetCellValue(sheetName, mustCell(2, row), report.TotalRevenue.InexactFloat64())

	f.DeleteSheet("Sheet1")
	return f, nil
}

func mustCell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
