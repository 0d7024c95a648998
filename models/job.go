package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Job is one unit of work performed for a client.
type Job struct {
	ID     uint64    `gorm:"primaryKey;autoIncrement"       json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"       json:"userId"`

	ClientName  string `gorm:"column:client_name;not null"  json:"clientName"`
	JobDate     Date   `gorm:"column:job_date;type:date;not null" json:"jobDate"`
	Description string `gorm:"not null"                     json:"description"`

	Materials *string `gorm:"column:materials"              json:"materials,omitempty"`
	Location  *string `gorm:"column:location"               json:"location,omitempty"`
	TimeSpent *int    `gorm:"column:time_spent"             json:"timeSpent,omitempty"`

	Status        JobStatus     `gorm:"type:varchar(20);not null;default:scheduled" json:"status"`
	PaymentStatus PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:unpaid" json:"paymentStatus"`

	LabourCost    *decimal.Decimal `gorm:"column:labour_cost;type:numeric(12,2)"    json:"labourCost,omitempty"`
	MaterialsCost *decimal.Decimal `gorm:"column:materials_cost;type:numeric(12,2)" json:"materialsCost,omitempty"`
	VATRate       *decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2)"        json:"vatRate,omitempty"`

	// TotalCost is derived, never stored; populated on every read and save
	// so no view can show a stale value.
	TotalCost *decimal.Decimal `gorm:"-" json:"totalCost,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	Photos    []JobPhoto `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

// DeriveTotalCost computes (labour + materials) * (1 + vat/100) at full
// precision. When both costs are absent the result is absent: "no financial
// data entered" is not the same as "zero cost". Absent operands count as zero
// otherwise; rounding happens only at presentation boundaries.
func DeriveTotalCost(labour, materials, vatRate *decimal.Decimal) (decimal.Decimal, bool) {
	if labour == nil && materials == nil {
		return decimal.Decimal{}, false
	}
	sum := decimal.Zero
	if labour != nil {
		sum = sum.Add(*labour)
	}
	if materials != nil {
		sum = sum.Add(*materials)
	}
	vat := decimal.Zero
	if vatRate != nil {
		vat = *vatRate
	}
	factor := decimal.NewFromInt(1).Add(vat.Div(decimal.NewFromInt(100)))
	return sum.Mul(factor), true
}

func (j *Job) refreshTotalCost() {
	if total, ok := DeriveTotalCost(j.LabourCost, j.MaterialsCost, j.VATRate); ok {
		j.TotalCost = &total
	} else {
		j.TotalCost = nil
	}
}

func (j *Job) AfterFind(tx *gorm.DB) error {
	j.refreshTotalCost()
	return nil
}

func (j *Job) AfterSave(tx *gorm.DB) error {
	j.refreshTotalCost()
	return nil
}

// ApplyDefaults fills the enumerated fields a client may omit.
func (j *Job) ApplyDefaults() {
	if j.Status == "" {
		j.Status = StatusScheduled
	}
	if j.PaymentStatus == "" {
		j.PaymentStatus = PaymentUnpaid
	}
}

// ValidationErrors maps field names to inline messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Validate runs before any store call; a failed job never reaches the DB.
func (j *Job) Validate() error {
	errs := ValidationErrors{}
	if strings.TrimSpace(j.ClientName) == "" {
		errs["client_name"] = "client name is required"
	}
	if strings.TrimSpace(j.Description) == "" {
		errs["description"] = "description is required"
	}
	if j.JobDate.IsZero() {
		errs["job_date"] = "job date is required"
	}
	if j.TimeSpent != nil && *j.TimeSpent < 0 {
		errs["time_spent"] = "time spent cannot be negative"
	}
	if j.LabourCost != nil && j.LabourCost.IsNegative() {
		errs["labour_cost"] = "labour cost cannot be negative"
	}
	if j.MaterialsCost != nil && j.MaterialsCost.IsNegative() {
		errs["materials_cost"] = "materials cost cannot be negative"
	}
	if j.VATRate != nil {
		if j.VATRate.IsNegative() || j.VATRate.GreaterThan(decimal.NewFromInt(100)) {
			errs["vat_rate"] = "vat rate must be between 0 and 100"
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
