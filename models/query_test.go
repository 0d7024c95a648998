package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		first string
		last  string
	}{
		{"leap february", 2024, time.February, "2024-02-01", "2024-02-29"},
		{"non-leap february", 2023, time.February, "2023-02-01", "2023-02-28"},
		{"thirty days", 2024, time.April, "2024-04-01", "2024-04-30"},
		{"thirty-one days", 2024, time.January, "2024-01-01", "2024-01-31"},
		{"december rolls into next year", 2023, time.December, "2023-12-01", "2023-12-31"},
		{"century non-leap", 1900, time.February, "1900-02-01", "1900-02-28"},
		{"quad-century leap", 2000, time.February, "2000-02-01", "2000-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := MonthBounds(tt.year, tt.month)
			if first.String() != tt.first || last.String() != tt.last {
				t.Errorf("MonthBounds(%d, %v) = [%s, %s], want [%s, %s]",
					tt.year, tt.month, first, last, tt.first, tt.last)
			}
		})
	}
}

func findCondition(q JobQuery, expr string) (QueryCondition, bool) {
	for _, c := range q.Conditions {
		if c.Expr == expr {
			return c, true
		}
	}
	return QueryCondition{}, false
}

func TestBuildJobQueryOwnerAlwaysFirst(t *testing.T) {
	owner := uuid.New()
	specs := []FilterSpec{
		{},
		FilterSpec{}.ToggleStatus(StatusCompleted),
		FilterSpec{}.WithMonth(2024, time.February).WithSearch("x"),
	}
	for _, spec := range specs {
		q := BuildJobQuery(spec, owner, SortDescending)
		if len(q.Conditions) == 0 {
			t.Fatal("query has no conditions")
		}
		first := q.Conditions[0]
		if first.Expr != "user_id = ?" {
			t.Errorf("first condition = %q, want owner constraint", first.Expr)
		}
		if len(first.Args) != 1 || first.Args[0] != owner {
			t.Errorf("owner constraint args = %v, want [%v]", first.Args, owner)
		}
	}
}

func TestBuildJobQueryUnconstrained(t *testing.T) {
	q := BuildJobQuery(FilterSpec{}, uuid.New(), SortDescending)
	if len(q.Conditions) != 1 {
		t.Errorf("unconstrained spec emitted %d conditions, want owner only", len(q.Conditions))
	}
	if q.OrderExpr != "job_date DESC" {
		t.Errorf("OrderExpr = %q, want job_date DESC", q.OrderExpr)
	}
}

func TestBuildJobQueryOrderDirection(t *testing.T) {
	if q := BuildJobQuery(FilterSpec{}, uuid.New(), SortAscending); q.OrderExpr != "job_date ASC" {
		t.Errorf("ascending OrderExpr = %q", q.OrderExpr)
	}
	if q := BuildJobQuery(FilterSpec{}, uuid.New(), SortDescending); q.OrderExpr != "job_date DESC" {
		t.Errorf("descending OrderExpr = %q", q.OrderExpr)
	}
}

func TestBuildJobQuerySetMembership(t *testing.T) {
	spec := FilterSpec{}.
		ToggleStatus(StatusCompleted).
		ToggleStatus(StatusScheduled).
		TogglePayment(PaymentUnpaid)
	q := BuildJobQuery(spec, uuid.New(), SortDescending)

	statusCond, ok := findCondition(q, "status IN ?")
	if !ok {
		t.Fatal("no status membership condition")
	}
	statuses := statusCond.Args[0].([]JobStatus)
	if len(statuses) != 2 {
		t.Errorf("status arg = %v, want two statuses", statuses)
	}

	payCond, ok := findCondition(q, "payment_status IN ?")
	if !ok {
		t.Fatal("no payment membership condition")
	}
	payments := payCond.Args[0].([]PaymentStatus)
	if len(payments) != 1 || payments[0] != PaymentUnpaid {
		t.Errorf("payment arg = %v, want [unpaid]", payments)
	}
}

func TestBuildJobQueryMonthRange(t *testing.T) {
	spec := FilterSpec{}.WithMonth(2024, time.February)
	q := BuildJobQuery(spec, uuid.New(), SortAscending)

	lower, ok := findCondition(q, "job_date >= ?")
	if !ok {
		t.Fatal("no lower bound")
	}
	upper, ok := findCondition(q, "job_date <= ?")
	if !ok {
		t.Fatal("no upper bound")
	}
	if lower.Args[0].(Date).String() != "2024-02-01" {
		t.Errorf("lower bound = %v, want 2024-02-01", lower.Args[0])
	}
	if upper.Args[0].(Date).String() != "2024-02-29" {
		t.Errorf("upper bound = %v, want 2024-02-29", upper.Args[0])
	}
}

// An inverted range is a valid, well-formed query that matches nothing —
// not an error.
func TestBuildJobQueryInvertedRange(t *testing.T) {
	spec := FilterSpec{}.WithRange(NewDate(2024, 5, 10), NewDate(2024, 5, 1))
	q := BuildJobQuery(spec, uuid.New(), SortAscending)

	lower, ok := findCondition(q, "job_date >= ?")
	if !ok {
		t.Fatal("no lower bound")
	}
	upper, ok := findCondition(q, "job_date <= ?")
	if !ok {
		t.Fatal("no upper bound")
	}
	from := lower.Args[0].(Date)
	to := upper.Args[0].(Date)
	if from.String() != "2024-05-10" || to.String() != "2024-05-01" {
		t.Errorf("bounds = [%s, %s], want verbatim [2024-05-10, 2024-05-01]", from, to)
	}
	if !from.After(to) {
		t.Error("expected inverted bounds to stay inverted")
	}
}

func TestBuildJobQueryOpenEndedRange(t *testing.T) {
	spec := FilterSpec{}.WithRange(NewDate(2024, 5, 1), Date{})
	q := BuildJobQuery(spec, uuid.New(), SortAscending)
	if _, ok := findCondition(q, "job_date >= ?"); !ok {
		t.Error("missing lower bound")
	}
	if _, ok := findCondition(q, "job_date <= ?"); ok {
		t.Error("zero upper bound should not emit a condition")
	}
}

func TestBuildJobQuerySearch(t *testing.T) {
	q := BuildJobQuery(FilterSpec{}.WithSearch("Murph"), uuid.New(), SortDescending)
	cond, ok := findCondition(q, "client_name ILIKE ?")
	if !ok {
		t.Fatal("no search condition")
	}
	if cond.Args[0] != "%Murph%" {
		t.Errorf("search arg = %v, want %%Murph%%", cond.Args[0])
	}
}
