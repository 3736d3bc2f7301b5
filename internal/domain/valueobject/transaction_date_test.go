package valueobject

import (
	"testing"
	"time"
)

func TestParseTransactionDate(t *testing.T) {
	t.Run("parses a calendar date", func(t *testing.T) {
		d, err := ParseTransactionDate("2026-03-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.HasTime() {
			t.Error("expected no time of day")
		}
		if d.String() != "2026-03-15" {
			t.Errorf("expected 2026-03-15, got %s", d.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		if _, err := ParseTransactionDate("15/03/2026"); err == nil {
			t.Error("expected an error for malformed date")
		}
	})
}

func TestTransactionDateOrdering(t *testing.T) {
	earlier := NewTransactionDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	later := NewTransactionDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	if !later.After(earlier) {
		t.Error("expected later.After(earlier)")
	}
	if !earlier.Before(later) {
		t.Error("expected earlier.Before(later)")
	}
	if earlier.After(later) {
		t.Error("After must not hold in both directions")
	}
}

func TestTransactionDateIgnoresTimeOfDay(t *testing.T) {
	morning := NewTransactionDateTime(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	evening := NewTransactionDateTime(time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC))

	if !morning.Equal(evening) {
		t.Error("expected same-day values to be equal regardless of time")
	}
	if morning.After(evening) || evening.After(morning) {
		t.Error("expected no ordering between same-day values")
	}
}

func TestTransactionDateTimeString(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 15, 0, 0, time.UTC)
	d := NewTransactionDateTime(at)
	if d.String() != at.Format(time.RFC3339) {
		t.Errorf("expected RFC3339 timestamp, got %s", d.String())
	}
}
