package models

import "github.com/shopspring/decimal"

// ReportSummary holds the aggregates shown in the report header and
// repeated in every exported artifact.
type ReportSummary struct {
	Count          int             `json:"count"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalLabour    decimal.Decimal `json:"totalLabour"`
	TotalMaterials decimal.Decimal `json:"totalMaterials"`
	CompletedCount int             `json:"completedCount"`
	UnpaidCount    int             `json:"unpaidCount"`
}

// Aggregate reduces an already-filtered job sequence. Absent financial
// fields count as zero; an empty sequence yields an all-zero summary.
// Accumulation stays in decimals end to end so long runs of small currency
// values cannot drift.
func Aggregate(jobs []Job) ReportSummary {
	s := ReportSummary{
		Count:          len(jobs),
		TotalRevenue:   decimal.Zero,
		TotalLabour:    decimal.Zero,
		TotalMaterials: decimal.Zero,
	}
	for i := range jobs {
		j := &jobs[i]
		if total, ok := DeriveTotalCost(j.LabourCost, j.MaterialsCost, j.VATRate); ok {
			s.TotalRevenue = s.TotalRevenue.Add(total)
		}
		if j.LabourCost != nil {
			s.TotalLabour = s.TotalLabour.Add(*j.LabourCost)
		}
		if j.MaterialsCost != nil {
			s.TotalMaterials = s.TotalMaterials.Add(*j.MaterialsCost)
		}
		if j.Status == StatusCompleted {
			s.CompletedCount++
		}
		if j.PaymentStatus == PaymentUnpaid {
			s.UnpaidCount++
		}
	}
	return s
}
