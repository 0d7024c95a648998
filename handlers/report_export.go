package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/deanmccauley/electrician-job-book/models"
	"github.com/deanmccauley/electrician-job-book/utils"
)

// Spreadsheet export column order is fixed; clients build imports against it.
var jobExportColumns = []string{
	"Client Name", "Date", "Description", "Materials", "Status",
	"Payment Status", "Time Spent (minutes)", "Location", "Created",
}

// ExportJobsExcel writes the filtered job list as an .xlsx workbook with
// one row per job in the fixed column order, plus a summary block.
func (a *API) ExportJobsExcel(w http.ResponseWriter, r *http.Request) {
	jobs, _, err := a.fetchReportJobs(r)
	if err != nil {
		jobError(w, err)
		return
	}

	f, err := a.createJobsWorkbook(jobs)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("jobs_export_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", utils.SanitizeFilename(filename)))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func (a *API) createJobsWorkbook(jobs []models.Job) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Jobs"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for colIdx, header := range jobExportColumns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	for rowIdx, job := range jobs {
		values := []interface{}{
			job.ClientName,
			job.JobDate.Time().Format(reportDateLayout),
			job.Description,
			derefString(job.Materials),
			string(job.Status),
			string(job.PaymentStatus),
			derefInt(job.TimeSpent),
			derefString(job.Location),
			job.CreatedAt.Format(reportDateLayout),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	a.writeWorkbookSummary(f, sheetName, len(jobs)+3, models.Aggregate(jobs))

	f.DeleteSheet("Sheet1")
	return f, nil
}

func (a *API) writeWorkbookSummary(f *excelize.File, sheetName string, row int, summary models.ReportSummary) {
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E7E6E6"},
			Pattern: 1,
		},
	})
	cell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheetName, cell, "Summary")
	f.SetCellStyle(sheetName, cell, cell, summaryStyle)

	symbol := a.Cfg.CurrencySymbol()
	lines := [][2]string{
		{"Total Jobs", strconv.Itoa(summary.Count)},
		{"Total Revenue", utils.Money(symbol, summary.TotalRevenue)},
		{"Total Labour", utils.Money(symbol, summary.TotalLabour)},
		{"Total Materials", utils.Money(symbol, summary.TotalMaterials)},
		{"Completed/Unpaid", fmt.Sprintf("%d/%d", summary.CompletedCount, summary.UnpaidCount)},
	}
	for i, line := range lines {
		keyCell, _ := excelize.CoordinatesToCellName(1, row+1+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, row+1+i)
		f.SetCellValue(sheetName, keyCell, line[0])
		f.SetCellValue(sheetName, valueCell, line[1])
	}
}

// ExportReportCSV writes the report table plus summary as CSV.
func (a *API) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	jobs, _, err := a.fetchReportJobs(r)
	if err != nil {
		jobError(w, err)
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"Date", "Client", "Description", "Status", "Payment", "Total"})
	for _, row := range a.buildReportRows(jobs) {
		writer.Write([]string{row.Date, row.Client, row.Description, row.Status, row.Payment, row.Total})
	}

	summary := models.Aggregate(jobs)
	symbol := a.Cfg.CurrencySymbol()
	writer.Write([]string{})
	writer.Write([]string{"Summary"})
	writer.Write([]string{"Total Jobs", strconv.Itoa(summary.Count)})
	writer.Write([]string{"Total Revenue", utils.Money(symbol, summary.TotalRevenue)})
	writer.Write([]string{"Total Labour", utils.Money(symbol, summary.TotalLabour)})
	writer.Write([]string{"Total Materials", utils.Money(symbol, summary.TotalMaterials)})
	writer.Write([]string{"Completed/Unpaid", fmt.Sprintf("%d/%d", summary.CompletedCount, summary.UnpaidCount)})
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("job_report_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ExportReportPDF renders the report as an A4 PDF: header with the filter
// description, the summary block, then the job table.
func (a *API) ExportReportPDF(w http.ResponseWriter, r *http.Request) {
	jobs, spec, err := a.fetchReportJobs(r)
	if err != nil {
		jobError(w, err)
		return
	}

	pdfData, err := a.createReportPDF(jobs, spec)
	if err != nil {
		http.Error(w, "failed to generate PDF file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("job_report_%s.pdf", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfData)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}

// Table column widths in mm; the printable width of A4 portrait with 10mm
// margins is 190mm.
var pdfColWidths = []float64{28, 38, 48, 28, 28, 20}

func (a *API) createReportPDF(jobs []models.Job, spec models.FilterSpec) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(153, 153, 153)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Report generated by Job Book • Page %d of {nb}", pdf.PageNo()),
			"T", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 10, "Job Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 5, "Generated: "+time.Now().Format(reportDateLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Filters: "+spec.Description()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Summary block
	summary := models.Aggregate(jobs)
	symbol := a.Cfg.CurrencySymbol()
	pdf.SetFillColor(243, 244, 246)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	summaryLines := [][2]string{
		{"Total Jobs:", strconv.Itoa(summary.Count)},
		{"Total Revenue:", utils.Money(symbol, summary.TotalRevenue)},
		{"Total Labour:", utils.Money(symbol, summary.TotalLabour)},
		{"Total Materials:", utils.Money(symbol, summary.TotalMaterials)},
		{"Completed/Unpaid:", fmt.Sprintf("%d/%d", summary.CompletedCount, summary.UnpaidCount)},
	}
	for _, line := range summaryLines {
		pdf.CellFormat(95, 6, line[0], "", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(95, 6, tr(line[1]), "", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	pdf.Ln(4)

	// Table header
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	headers := []string{"Date", "Client", "Description", "Status", "Payment", "Total"}
	for i, h := range headers {
		pdf.CellFormat(pdfColWidths[i], 7, h, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// Table rows
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
	for _, row := range a.buildReportRows(jobs) {
		cells := []string{row.Date, row.Client, row.Description, row.Status, row.Payment, row.Total}
		for i, cell := range cells {
			pdf.CellFormat(pdfColWidths[i], 6, tr(cell), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}
