package models

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

type dateModeKind int

const (
	dateUnconstrained dateModeKind = iota
	dateByMonth
	dateByRange
)

// DateMode is the mutually exclusive date facet of a FilterSpec: a calendar
// month, an explicit from/to pair, or nothing. Selecting one mode discards
// the other's fields.
type DateMode struct {
	kind  dateModeKind
	year  int
	month time.Month
	from  Date
	to    Date
}

func MonthMode(year int, month time.Month) DateMode {
	return DateMode{kind: dateByMonth, year: year, month: month}
}

// RangeMode keeps the bounds verbatim; an inverted pair is a valid mode that
// simply matches nothing.
func RangeMode(from, to Date) DateMode {
	return DateMode{kind: dateByRange, from: from, to: to}
}

func (d DateMode) IsUnconstrained() bool { return d.kind == dateUnconstrained }

func (d DateMode) Month() (int, time.Month, bool) {
	return d.year, d.month, d.kind == dateByMonth
}

func (d DateMode) Range() (Date, Date, bool) {
	return d.from, d.to, d.kind == dateByRange
}

// FilterSpec is the immutable description of the user's current view:
// status set, payment set, date mode, and client-name search. Empty sets
// mean "match all", never "match none". All mutations return a new spec.
type FilterSpec struct {
	Statuses []JobStatus
	Payments []PaymentStatus
	Date     DateMode
	Search   string
}

// ParseFilterSpec builds a spec from URL query parameters. Values outside
// the enumerated sets are dropped rather than erroring, so stale links
// degrade to a broader view. A month parameter wins over from/to.
func ParseFilterSpec(q url.Values) FilterSpec {
	var spec FilterSpec

	for _, raw := range strings.Split(q.Get("status"), ",") {
		if st, err := ParseJobStatus(raw); err == nil {
			spec.Statuses = append(spec.Statuses, st)
		}
	}
	spec.Statuses = normalizeStatuses(spec.Statuses)

	for _, raw := range strings.Split(q.Get("payment"), ",") {
		if ps, err := ParsePaymentStatus(raw); err == nil {
			spec.Payments = append(spec.Payments, ps)
		}
	}
	spec.Payments = normalizePayments(spec.Payments)

	if m := q.Get("month"); m != "" {
		if t, err := time.Parse("2006-01", m); err == nil {
			spec.Date = MonthMode(t.Year(), t.Month())
		}
	}
	if spec.Date.IsUnconstrained() {
		from, fromErr := ParseDate(q.Get("from"))
		to, toErr := ParseDate(q.Get("to"))
		if fromErr != nil {
			from = Date{}
		}
		if toErr != nil {
			to = Date{}
		}
		if !from.IsZero() || !to.IsZero() {
			spec.Date = RangeMode(from, to)
		}
	}

	spec.Search = q.Get("search")
	return spec
}

// Values serializes the spec back to the query parameters it was parsed
// from; ParseFilterSpec(spec.Values()) reproduces the spec exactly.
func (f FilterSpec) Values() url.Values {
	q := url.Values{}
	if len(f.Statuses) > 0 {
		parts := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			parts[i] = string(st)
		}
		q.Set("status", strings.Join(parts, ","))
	}
	if len(f.Payments) > 0 {
		parts := make([]string, len(f.Payments))
		for i, ps := range f.Payments {
			parts[i] = string(ps)
		}
		q.Set("payment", strings.Join(parts, ","))
	}
	if year, month, ok := f.Date.Month(); ok {
		q.Set("month", fmt.Sprintf("%04d-%02d", year, int(month)))
	}
	if from, to, ok := f.Date.Range(); ok {
		if !from.IsZero() {
			q.Set("from", from.String())
		}
		if !to.IsZero() {
			q.Set("to", to.String())
		}
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// ToggleStatus adds the status to the set if absent, removes it if present.
func (f FilterSpec) ToggleStatus(s JobStatus) FilterSpec {
	out := f
	if slices.Contains(f.Statuses, s) {
		out.Statuses = normalizeStatuses(slices.DeleteFunc(slices.Clone(f.Statuses), func(v JobStatus) bool {
			return v == s
		}))
	} else {
		out.Statuses = normalizeStatuses(append(slices.Clone(f.Statuses), s))
	}
	return out
}

func (f FilterSpec) TogglePayment(p PaymentStatus) FilterSpec {
	out := f
	if slices.Contains(f.Payments, p) {
		out.Payments = normalizePayments(slices.DeleteFunc(slices.Clone(f.Payments), func(v PaymentStatus) bool {
			return v == p
		}))
	} else {
		out.Payments = normalizePayments(append(slices.Clone(f.Payments), p))
	}
	return out
}

func (f FilterSpec) WithMonth(year int, month time.Month) FilterSpec {
	out := f
	out.Date = MonthMode(year, month)
	return out
}

func (f FilterSpec) WithRange(from, to Date) FilterSpec {
	out := f
	out.Date = RangeMode(from, to)
	return out
}

func (f FilterSpec) WithSearch(search string) FilterSpec {
	out := f
	out.Search = search
	return out
}

// Clear resets to the canonical default: no sets, no date constraint.
func (f FilterSpec) Clear() FilterSpec {
	return FilterSpec{}
}

// Description renders the spec for report headers, e.g.
// "Mar 2024 • Status: completed" or "2024-05-01 to 2024-05-10 • Payment: unpaid".
func (f FilterSpec) Description() string {
	var parts []string
	if year, month, ok := f.Date.Month(); ok {
		parts = append(parts, fmt.Sprintf("%s %d", month.String()[:3], year))
	}
	if from, to, ok := f.Date.Range(); ok {
		switch {
		case !from.IsZero() && !to.IsZero():
			parts = append(parts, from.String()+" to "+to.String())
		case !from.IsZero():
			parts = append(parts, "from "+from.String())
		case !to.IsZero():
			parts = append(parts, "until "+to.String())
		}
	}
	if len(f.Statuses) > 0 {
		labels := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			labels[i] = string(st)
		}
		parts = append(parts, "Status: "+strings.Join(labels, ", "))
	}
	if len(f.Payments) > 0 {
		labels := make([]string, len(f.Payments))
		for i, ps := range f.Payments {
			labels[i] = string(ps)
		}
		parts = append(parts, "Payment: "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, " • ")
}

// normalizeStatuses dedupes and fixes declaration order so that two specs
// selecting the same set compare equal regardless of click order.
func normalizeStatuses(in []JobStatus) []JobStatus {
	var out []JobStatus
	for _, st := range allJobStatuses {
		if slices.Contains(in, st) {
			out = append(out, st)
		}
	}
	return out
}

func normalizePayments(in []PaymentStatus) []PaymentStatus {
	var out []PaymentStatus
	for _, ps := range allPaymentStatuses {
		if slices.Contains(in, ps) {
			out = append(out, ps)
		}
	}
	return out
}
