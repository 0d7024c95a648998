package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-02-29"` {
		t.Errorf("marshal = %s, want %q", b, "2024-02-29")
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time().Equal(d.Time()) {
		t.Errorf("round trip changed value: %s != %s", back, d)
	}
}

func TestDateUnmarshalDropsTimeComponent(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-03-12T15:04:05Z"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-03-12" {
		t.Errorf("got %s, want 2024-03-12", d)
	}
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2023, time.July, 4, 13, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if d.String() != "2023-07-04" {
		t.Errorf("got %s, want 2023-07-04", d)
	}

	if err := d.Scan("2022-12-01"); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if d.String() != "2022-12-01" {
		t.Errorf("got %s, want 2022-12-01", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Error("Scan nil should produce the zero date")
	}
}
