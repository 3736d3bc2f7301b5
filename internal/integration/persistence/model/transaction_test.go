package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

func fullTransaction(t *testing.T) *entity.Transaction {
	t.Helper()
	merchant, err := valueobject.NewMerchant("Shoprite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parent, err := valueobject.NewCategory("Food & Drinks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	category, err := valueobject.NewSubCategory("Coffee", &parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	food, err := valueobject.NewTag("food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	account, err := valueobject.NewBankAccountRef("acct-1", "Main", "1234", valueobject.CurrencyNGN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	confidence := decimal.RequireFromString("0.92")
	date, err := valueobject.ParseTransactionDate("2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txn, err := entity.NewTransaction(
		entity.TransactionTypeDebit,
		valueobject.MustMoney("1250.75", valueobject.CurrencyNGN),
		date,
		entity.SourceEmailGmail,
		entity.TransactionAttributes{
			Merchant:     &merchant,
			Category:     &category,
			Tags:         []valueobject.Tag{food},
			Account:      &account,
			Description:  valueobject.NewDescription("Weekly grocery run"),
			AIConfidence: &confidence,
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return txn
}

func TestTransactionModelRoundTrip(t *testing.T) {
	t.Run("flatten then rebuild preserves every field", func(t *testing.T) {
		userID := uuid.New()
		original := fullTransaction(t)

		m := TransactionFromEntity(userID, original)
		if m.UserID != userID {
			t.Errorf("unexpected user id %s", m.UserID)
		}
		if m.CategoryName != "Food & Drinks" || m.SubCategoryName != "Coffee" {
			t.Errorf("unexpected category columns %q / %q", m.CategoryName, m.SubCategoryName)
		}

		rebuilt, err := m.ToEntity()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rebuilt.Equal(original) {
			t.Error("expected the same identity")
		}
		if !rebuilt.Amount().Equal(original.Amount()) {
			t.Error("expected the amount to survive")
		}
		if !rebuilt.Date().Equal(original.Date()) {
			t.Error("expected the date to survive")
		}
		if rebuilt.Merchant() == nil || !rebuilt.Merchant().Equal(*original.Merchant()) {
			t.Error("expected the merchant to survive")
		}
		if rebuilt.Category() == nil || rebuilt.Category().FullPath() != "Food & Drinks > Coffee" {
			t.Error("expected the category path to survive")
		}
		if len(rebuilt.Tags()) != 1 || rebuilt.Tags()[0].Value() != "food" {
			t.Errorf("unexpected tags %v", rebuilt.Tags())
		}
		if rebuilt.Account() == nil || rebuilt.Account().Last4() != "1234" {
			t.Error("expected the account reference to survive")
		}
		if rebuilt.Description().Text() != "Weekly grocery run" {
			t.Errorf("unexpected description %q", rebuilt.Description().Text())
		}
		if rebuilt.Source() != entity.SourceEmailGmail {
			t.Errorf("unexpected source %s", rebuilt.Source())
		}
		if rebuilt.AIConfidence() == nil || rebuilt.AIConfidence().String() != "0.92" {
			t.Error("expected the extraction confidence to survive")
		}
		if !rebuilt.CreatedAt().Equal(original.CreatedAt()) || !rebuilt.UpdatedAt().Equal(original.UpdatedAt()) {
			t.Error("expected the timestamps to survive")
		}
	})

	t.Run("a known time of day survives via occurred_at", func(t *testing.T) {
		at := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
		txn, err := entity.NewTransaction(
			entity.TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			valueobject.NewTransactionDateTime(at),
			entity.SourceManual,
			entity.TransactionAttributes{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		m := TransactionFromEntity(uuid.New(), txn)
		if m.OccurredAt == nil || !m.OccurredAt.Equal(at) {
			t.Fatal("expected occurred_at to carry the time of day")
		}

		rebuilt, err := m.ToEntity()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, ok := rebuilt.Date().Time()
		if !ok || !got.Equal(at) {
			t.Errorf("expected the time of day to survive, got %v", got)
		}
	})

	t.Run("a corrupted row surfaces as an error", func(t *testing.T) {
		m := TransactionFromEntity(uuid.New(), fullTransaction(t))
		m.Currency = "XXX"
		if _, err := m.ToEntity(); err == nil {
			t.Error("expected an error for an unsupported stored currency")
		}
	})
}
