package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deanmccauley/electrician-job-book/middleware"
	"github.com/deanmccauley/electrician-job-book/models"
	"github.com/deanmccauley/electrician-job-book/utils"
)

const reportDateLayout = "02/01/2006"

// reportRow is one table line of the report. The preview and every export
// are rendered from the same rows, so truncation and formatting cannot
// diverge between them.
type reportRow struct {
	Date        string `json:"date"`
	Client      string `json:"client"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Payment     string `json:"payment"`
	Total       string `json:"total"`
}

type reportResponse struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Filters     string               `json:"filters"`
	Currency    string               `json:"currency"`
	Summary     models.ReportSummary `json:"summary"`
	Rows        []reportRow          `json:"rows"`
}

// fetchReportJobs runs the report query: same FilterSpec parameters as the
// listing, oldest first. The request context rides along so an abandoned
// report view cancels the fetch instead of applying stale results.
func (a *API) fetchReportJobs(r *http.Request) ([]models.Job, models.FilterSpec, error) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		return nil, models.FilterSpec{}, errUnauthenticated
	}
	spec := models.ParseFilterSpec(r.URL.Query())
	query := models.BuildJobQuery(spec, userID, models.SortAscending)

	var jobs []models.Job
	err := query.Apply(a.DB.WithContext(r.Context()).Model(&models.Job{})).Find(&jobs).Error
	if err != nil {
		return nil, spec, err
	}
	return jobs, spec, nil
}

func (a *API) buildReportRows(jobs []models.Job) []reportRow {
	symbol := a.Cfg.CurrencySymbol()
	rows := make([]reportRow, len(jobs))
	for i, j := range jobs {
		total := decimal.Zero
		if t, ok := models.DeriveTotalCost(j.LabourCost, j.MaterialsCost, j.VATRate); ok {
			total = t
		}
		rows[i] = reportRow{
			Date:        j.JobDate.Time().Format(reportDateLayout),
			Client:      j.ClientName,
			Description: utils.TruncateDescription(j.Description),
			Status:      j.Status.Display(),
			Payment:     j.PaymentStatus.Display(),
			Total:       utils.Money(symbol, total),
		}
	}
	return rows
}

// GetReport returns the on-screen report preview: filter description,
// summary aggregates and table rows.
func (a *API) GetReport(w http.ResponseWriter, r *http.Request) {
	jobs, spec, err := a.fetchReportJobs(r)
	if err != nil {
		jobError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		GeneratedAt: time.Now(),
		Filters:     spec.Description(),
		Currency:    a.Cfg.Currency,
		Summary:     models.Aggregate(jobs),
		Rows:        a.buildReportRows(jobs),
	})
}
