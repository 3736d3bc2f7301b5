package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts a positive amount", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("1500.06"), CurrencyNGN)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Currency() != CurrencyNGN {
			t.Errorf("expected currency NGN, got %s", m.Currency())
		}
		if !m.Amount().Equal(decimal.RequireFromString("1500.06")) {
			t.Errorf("expected amount 1500.06, got %s", m.Amount())
		}
	})

	t.Run("accepts zero", func(t *testing.T) {
		m, err := NewMoney(decimal.Zero, CurrencyUSD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.IsZero() {
			t.Error("expected IsZero to report true")
		}
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		_, err := NewMoney(decimal.RequireFromString("-0.01"), CurrencyNGN)
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("rejects an unsupported currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), CurrencyCode("XXX"))
		if !errors.Is(err, domainerror.ErrMissingRequiredField) {
			t.Errorf("expected ErrMissingRequiredField, got %v", err)
		}
	})
}

func TestMoneyAdd(t *testing.T) {
	t.Run("sums same-currency amounts", func(t *testing.T) {
		sum, err := MustMoney("100.50", CurrencyNGN).Add(MustMoney("49.50", CurrencyNGN))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sum.Equal(MustMoney("150", CurrencyNGN)) {
			t.Errorf("expected 150 NGN, got %s", sum)
		}
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		_, err := MustMoney("10", CurrencyNGN).Add(MustMoney("10", CurrencyUSD))
		if !errors.Is(err, domainerror.ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestMoneySubtract(t *testing.T) {
	t.Run("subtracts down to zero", func(t *testing.T) {
		diff, err := MustMoney("25", CurrencyEUR).Subtract(MustMoney("25", CurrencyEUR))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !diff.IsZero() {
			t.Errorf("expected zero, got %s", diff)
		}
	})

	t.Run("rejects a result below zero", func(t *testing.T) {
		_, err := MustMoney("25", CurrencyEUR).Subtract(MustMoney("25.01", CurrencyEUR))
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		_, err := MustMoney("25", CurrencyEUR).Subtract(MustMoney("5", CurrencyGBP))
		if !errors.Is(err, domainerror.ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestMoneyEqual(t *testing.T) {
	t.Run("ignores trailing zeros", func(t *testing.T) {
		if !MustMoney("10.50", CurrencyNGN).Equal(MustMoney("10.5", CurrencyNGN)) {
			t.Error("expected 10.50 and 10.5 to be equal")
		}
	})

	t.Run("distinguishes currencies", func(t *testing.T) {
		if MustMoney("10", CurrencyNGN).Equal(MustMoney("10", CurrencyUSD)) {
			t.Error("expected values in different currencies to differ")
		}
	})
}

func TestZeroMoney(t *testing.T) {
	t.Run("carries the given currency", func(t *testing.T) {
		zero := ZeroMoney(CurrencyUSD)
		if !zero.Amount().IsZero() || zero.Currency() != CurrencyUSD {
			t.Errorf("unexpected zero value %v", zero)
		}
	})

	t.Run("panics on an unsupported currency", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected a panic for an unsupported currency")
			}
		}()
		ZeroMoney(CurrencyCode("XXX"))
	})
}

func TestMoneyString(t *testing.T) {
	got := MustMoney("1500.06", CurrencyNGN).String()
	if got != "1500.06 NGN" {
		t.Errorf("expected %q, got %q", "1500.06 NGN", got)
	}
}
