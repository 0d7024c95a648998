package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SortDirection selects the job_date ordering. Listing views show newest
// first; reports read oldest first.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// QueryCondition is one WHERE fragment with its arguments.
type QueryCondition struct {
	Expr string
	Args []interface{}
}

// JobQuery is a pure description of a job listing query. It never touches
// the store itself, so the translation from FilterSpec to constraints can
// be tested without a database.
type JobQuery struct {
	Conditions []QueryCondition
	OrderExpr  string
}

// BuildJobQuery translates a FilterSpec plus the owner identity into a
// query description. The owner constraint is always first and always
// present; every other constraint is optional.
func BuildJobQuery(spec FilterSpec, ownerID uuid.UUID, dir SortDirection) JobQuery {
	q := JobQuery{
		Conditions: []QueryCondition{
			{Expr: "user_id = ?", Args: []interface{}{ownerID}},
		},
		OrderExpr: "job_date " + string(dir),
	}

	if len(spec.Statuses) > 0 {
		q.Conditions = append(q.Conditions, QueryCondition{
			Expr: "status IN ?", Args: []interface{}{spec.Statuses},
		})
	}
	if len(spec.Payments) > 0 {
		q.Conditions = append(q.Conditions, QueryCondition{
			Expr: "payment_status IN ?", Args: []interface{}{spec.Payments},
		})
	}

	if year, month, ok := spec.Date.Month(); ok {
		from, to := MonthBounds(year, month)
		q.Conditions = append(q.Conditions,
			QueryCondition{Expr: "job_date >= ?", Args: []interface{}{from}},
			QueryCondition{Expr: "job_date <= ?", Args: []interface{}{to}},
		)
	}
	if from, to, ok := spec.Date.Range(); ok {
		// Bounds go out verbatim; from > to yields a well-formed query
		// that matches nothing.
		if !from.IsZero() {
			q.Conditions = append(q.Conditions, QueryCondition{
				Expr: "job_date >= ?", Args: []interface{}{from},
			})
		}
		if !to.IsZero() {
			q.Conditions = append(q.Conditions, QueryCondition{
				Expr: "job_date <= ?", Args: []interface{}{to},
			})
		}
	}

	if spec.Search != "" {
		q.Conditions = append(q.Conditions, QueryCondition{
			Expr: "client_name ILIKE ?", Args: []interface{}{"%" + spec.Search + "%"},
		})
	}

	return q
}

// MonthBounds returns the first and last calendar day of a month. The upper
// bound is day 0 of the following month, which handles month lengths and
// leap years without a table.
func MonthBounds(year int, month time.Month) (Date, Date) {
	first := NewDate(year, month, 1)
	last := Date(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))
	return first, last
}

// Apply attaches the description to a live gorm query.
func (q JobQuery) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range q.Conditions {
		db = db.Where(c.Expr, c.Args...)
	}
	return db.Order(q.OrderExpr)
}
