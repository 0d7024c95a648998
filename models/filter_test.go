package models

import (
	"net/url"
	"reflect"
	"testing"
	"time"
)

func TestFilterSpecRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
	}{
		{"empty", FilterSpec{}},
		{"single status", FilterSpec{}.ToggleStatus(StatusCompleted)},
		{"all statuses", FilterSpec{}.
			ToggleStatus(StatusScheduled).
			ToggleStatus(StatusInProgress).
			ToggleStatus(StatusCompleted)},
		{"payments", FilterSpec{}.TogglePayment(PaymentUnpaid).TogglePayment(PaymentPartial)},
		{"month", FilterSpec{}.WithMonth(2024, time.February)},
		{"range", FilterSpec{}.WithRange(NewDate(2024, 5, 1), NewDate(2024, 5, 10))},
		{"open-ended range", FilterSpec{}.WithRange(NewDate(2024, 5, 1), Date{})},
		{"search", FilterSpec{}.WithSearch("Murphy")},
		{"everything", FilterSpec{}.
			ToggleStatus(StatusCompleted).
			TogglePayment(PaymentUnpaid).
			WithMonth(2023, time.December).
			WithSearch("O'Brien")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilterSpec(tt.spec.Values())
			if !reflect.DeepEqual(got, tt.spec) {
				t.Errorf("parse(serialize(spec)) = %+v, want %+v", got, tt.spec)
			}
		})
	}
}

func TestParseFilterSpec(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  FilterSpec
	}{
		{
			"multi status",
			"status=completed,scheduled",
			FilterSpec{Statuses: []JobStatus{StatusScheduled, StatusCompleted}},
		},
		{
			"unknown status values dropped",
			"status=completed,cancelled",
			FilterSpec{Statuses: []JobStatus{StatusCompleted}},
		},
		{
			"duplicate values collapse",
			"payment=unpaid,unpaid",
			FilterSpec{Payments: []PaymentStatus{PaymentUnpaid}},
		},
		{
			"month wins over range",
			"month=2024-03&from=2024-01-01&to=2024-02-01",
			FilterSpec{Date: MonthMode(2024, time.March)},
		},
		{
			"range",
			"from=2024-01-01&to=2024-02-01",
			FilterSpec{Date: RangeMode(NewDate(2024, 1, 1), NewDate(2024, 2, 1))},
		},
		{
			"malformed month ignored",
			"month=2024-13",
			FilterSpec{},
		},
		{
			"malformed dates ignored",
			"from=notadate&to=alsonot",
			FilterSpec{},
		},
		{
			"search",
			"search=Kavanagh",
			FilterSpec{Search: "Kavanagh"},
		},
		{
			"legacy single-select params ignored",
			"filter=today&view=cards",
			FilterSpec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad test query: %v", err)
			}
			got := ParseFilterSpec(q)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFilterSpec(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestToggleStatusIdempotentPair(t *testing.T) {
	base := FilterSpec{}.ToggleStatus(StatusScheduled)
	toggled := base.ToggleStatus(StatusCompleted).ToggleStatus(StatusCompleted)
	if !reflect.DeepEqual(toggled, base) {
		t.Errorf("toggling twice = %+v, want original %+v", toggled, base)
	}
	if reflect.DeepEqual(base.ToggleStatus(StatusCompleted), base) {
		t.Error("single toggle should change the spec")
	}
}

func TestTogglePaymentDoesNotMutateReceiver(t *testing.T) {
	base := FilterSpec{}.TogglePayment(PaymentUnpaid)
	_ = base.TogglePayment(PaymentPaid)
	if !reflect.DeepEqual(base, FilterSpec{}.TogglePayment(PaymentUnpaid)) {
		t.Errorf("receiver mutated: %+v", base)
	}
}

func TestDateModeMutuallyExclusive(t *testing.T) {
	spec := FilterSpec{}.WithRange(NewDate(2024, 1, 1), NewDate(2024, 2, 1))
	spec = spec.WithMonth(2024, time.March)
	if _, _, ok := spec.Date.Range(); ok {
		t.Error("selecting month mode should clear range bounds")
	}
	spec = spec.WithRange(NewDate(2024, 4, 1), NewDate(2024, 4, 30))
	if _, _, ok := spec.Date.Month(); ok {
		t.Error("selecting range mode should clear month fields")
	}
}

func TestClearResetsToDefault(t *testing.T) {
	spec := FilterSpec{}.
		ToggleStatus(StatusCompleted).
		TogglePayment(PaymentPaid).
		WithMonth(2024, time.June).
		WithSearch("x")
	if !reflect.DeepEqual(spec.Clear(), FilterSpec{}) {
		t.Errorf("Clear() = %+v, want zero spec", spec.Clear())
	}
	if !spec.Clear().Date.IsUnconstrained() {
		t.Error("cleared spec should be date-unconstrained")
	}
}

func TestFilterSpecDescription(t *testing.T) {
	tests := []struct {
		name string
		spec FilterSpec
		want string
	}{
		{
			"month and status",
			FilterSpec{}.WithMonth(2024, time.March).ToggleStatus(StatusCompleted),
			"Mar 2024 • Status: completed",
		},
		{
			"range and payments",
			FilterSpec{}.
				WithRange(NewDate(2024, 5, 1), NewDate(2024, 5, 10)).
				TogglePayment(PaymentUnpaid).
				TogglePayment(PaymentPartial),
			"2024-05-01 to 2024-05-10 • Payment: unpaid, partial",
		},
		{
			"multiple statuses keep canonical order",
			FilterSpec{}.ToggleStatus(StatusCompleted).ToggleStatus(StatusScheduled),
			"Status: scheduled, completed",
		},
		{
			"open-ended from",
			FilterSpec{}.WithRange(NewDate(2024, 5, 1), Date{}),
			"from 2024-05-01",
		},
		{"unfiltered", FilterSpec{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}
