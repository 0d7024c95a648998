package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// JobStatus is the closed set of job lifecycle states.
type JobStatus string

const (
	StatusScheduled  JobStatus = "scheduled"
	StatusInProgress JobStatus = "in_progress"
	StatusCompleted  JobStatus = "completed"
)

// Declaration order doubles as the canonical order for filter serialization.
var allJobStatuses = []JobStatus{StatusScheduled, StatusInProgress, StatusCompleted}

func ParseJobStatus(s string) (JobStatus, error) {
	for _, st := range allJobStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Display renders the status for humans ("in_progress" -> "in progress").
func (s JobStatus) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// UnmarshalJSON treats an empty string as absent (the caller applies the
// default) but rejects any other value outside the set.
func (s *JobStatus) UnmarshalJSON(b []byte) error {
	v := unquote(b)
	if v == "" {
		*s = ""
		return nil
	}
	parsed, err := ParseJobStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s JobStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan rejects values outside the set; rows written by anything other than
// this application must not smuggle unknown states through.
func (s *JobStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return fmt.Errorf("JobStatus.Scan: %w", err)
	}
	parsed, err := ParseJobStatus(v)
	if err != nil {
		return fmt.Errorf("JobStatus.Scan: %w", err)
	}
	*s = parsed
	return nil
}

// PaymentStatus is the closed set of payment states.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
)

var allPaymentStatuses = []PaymentStatus{PaymentUnpaid, PaymentPaid, PaymentPartial}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for _, ps := range allPaymentStatuses {
		if string(ps) == s {
			return ps, nil
		}
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

func (s PaymentStatus) Display() string {
	return string(s)
}

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	v := unquote(b)
	if v == "" {
		*s = ""
		return nil
	}
	parsed, err := ParsePaymentStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PaymentStatus) Scan(src interface{}) error {
	v, err := scanString(src)
	if err != nil {
		return fmt.Errorf("PaymentStatus.Scan: %w", err)
	}
	parsed, err := ParsePaymentStatus(v)
	if err != nil {
		return fmt.Errorf("PaymentStatus.Scan: %w", err)
	}
	*s = parsed
	return nil
}

func unquote(b []byte) string {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", src)
	}
}
