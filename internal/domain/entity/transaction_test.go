package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

func debitOn(t *testing.T, amount, date string) *Transaction {
	t.Helper()
	d, err := valueobject.ParseTransactionDate(date)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	txn, err := NewTransaction(
		TransactionTypeDebit,
		valueobject.MustMoney(amount, valueobject.CurrencyNGN),
		d,
		SourceManual,
		TransactionAttributes{},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return txn
}

func TestNewTransaction(t *testing.T) {
	t.Run("creates a valid debit", func(t *testing.T) {
		txn := debitOn(t, "1250.75", "2026-03-15")
		if txn.ID().IsZero() {
			t.Error("expected a fresh identity")
		}
		if !txn.IsDebit() {
			t.Error("expected a debit")
		}
		if !txn.CreatedAt().Equal(txn.UpdatedAt()) {
			t.Error("expected CreatedAt == UpdatedAt on creation")
		}
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		date, _ := valueobject.ParseTransactionDate("2026-03-15")
		_, err := NewTransaction(
			TransactionTypeDebit,
			valueobject.ZeroMoney(valueobject.CurrencyNGN),
			date,
			SourceManual,
			TransactionAttributes{},
		)
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("rejects a future-dated debit", func(t *testing.T) {
		future := valueobject.NewTransactionDate(time.Now().UTC().AddDate(0, 0, 2))
		_, err := NewTransaction(
			TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			future,
			SourceManual,
			TransactionAttributes{},
		)
		if !errors.Is(err, domainerror.ErrFutureDebitDate) {
			t.Errorf("expected ErrFutureDebitDate, got %v", err)
		}
	})

	t.Run("allows a future-dated credit", func(t *testing.T) {
		future := valueobject.NewTransactionDate(time.Now().UTC().AddDate(0, 0, 2))
		_, err := NewTransaction(
			TransactionTypeCredit,
			valueobject.MustMoney("2000", valueobject.CurrencyNGN),
			future,
			SourceManual,
			TransactionAttributes{},
		)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		date, _ := valueobject.ParseTransactionDate("2026-03-15")
		_, err := NewTransaction(
			TransactionType("WIRE"),
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			date,
			SourceManual,
			TransactionAttributes{},
		)
		if !errors.Is(err, domainerror.ErrMissingRequiredField) {
			t.Errorf("expected ErrMissingRequiredField, got %v", err)
		}
	})

	t.Run("rejects an account in a different currency", func(t *testing.T) {
		date, _ := valueobject.ParseTransactionDate("2026-03-15")
		account, err := valueobject.NewBankAccountRef("acct-1", "Main", "1234", valueobject.CurrencyUSD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = NewTransaction(
			TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			date,
			SourceManual,
			TransactionAttributes{Account: &account},
		)
		if !errors.Is(err, domainerror.ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})

	t.Run("rejects an extraction confidence above 1", func(t *testing.T) {
		date, _ := valueobject.ParseTransactionDate("2026-03-15")
		confidence := decimal.RequireFromString("1.5")
		_, err := NewTransaction(
			TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			date,
			SourceEmailGmail,
			TransactionAttributes{AIConfidence: &confidence},
		)
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestRehydrateTransaction(t *testing.T) {
	t.Run("rebuilds an identical transaction from its parts", func(t *testing.T) {
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
		date, _ := valueobject.ParseTransactionDate("2026-03-15")

		original, err := NewTransaction(
			TransactionTypeDebit,
			valueobject.MustMoney("1250.75", valueobject.CurrencyNGN),
			date,
			SourceEmailGmail,
			TransactionAttributes{
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

		rebuilt, err := RehydrateTransaction(
			original.ID(),
			original.Type(),
			original.Amount(),
			original.Date(),
			original.Source(),
			TransactionAttributes{
				Merchant:     original.Merchant(),
				Category:     original.Category(),
				Tags:         original.Tags(),
				Account:      original.Account(),
				Description:  original.Description(),
				AIConfidence: original.AIConfidence(),
			},
			original.CreatedAt(),
			original.UpdatedAt(),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !rebuilt.Equal(original) {
			t.Error("expected the same identity")
		}
		if rebuilt.Type() != original.Type() || rebuilt.Source() != original.Source() {
			t.Error("expected type and source to survive")
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
		if rebuilt.Category() == nil || rebuilt.Category().FullPath() != original.Category().FullPath() {
			t.Error("expected the category path to survive")
		}
		if !rebuilt.HasTag(food) {
			t.Error("expected the tags to survive")
		}
		if rebuilt.Account() == nil || rebuilt.Account().AccountID() != "acct-1" {
			t.Error("expected the account reference to survive")
		}
		if rebuilt.Description().Text() != original.Description().Text() {
			t.Error("expected the description to survive")
		}
		if rebuilt.AIConfidence() == nil || !rebuilt.AIConfidence().Equal(confidence) {
			t.Error("expected the extraction confidence to survive")
		}
		if !rebuilt.CreatedAt().Equal(original.CreatedAt()) || !rebuilt.UpdatedAt().Equal(original.UpdatedAt()) {
			t.Error("expected the timestamps to survive")
		}
	})

	t.Run("rejects a zero identity", func(t *testing.T) {
		date, _ := valueobject.ParseTransactionDate("2026-03-15")
		_, err := RehydrateTransaction(
			valueobject.TransactionID{},
			TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			date,
			SourceManual,
			TransactionAttributes{},
			time.Now().UTC(), time.Now().UTC(),
		)
		if !errors.Is(err, domainerror.ErrMissingRequiredField) {
			t.Errorf("expected ErrMissingRequiredField, got %v", err)
		}
	})

	t.Run("validates a stored confidence out of range", func(t *testing.T) {
		date, _ := valueobject.ParseTransactionDate("2026-03-15")
		confidence := decimal.RequireFromString("-0.1")
		_, err := RehydrateTransaction(
			valueobject.NewTransactionID(),
			TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyNGN),
			date,
			SourceEmailGmail,
			TransactionAttributes{AIConfidence: &confidence},
			time.Now().UTC(), time.Now().UTC(),
		)
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestTransactionMutators(t *testing.T) {
	t.Run("WithAmount keeps identity and original unchanged", func(t *testing.T) {
		original := debitOn(t, "100", "2026-03-15")
		updated, err := original.WithAmount(valueobject.MustMoney("150", valueobject.CurrencyNGN))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.Equal(original) {
			t.Error("expected the same identity after mutation")
		}
		if !original.Amount().Equal(valueobject.MustMoney("100", valueobject.CurrencyNGN)) {
			t.Error("expected the original to be unchanged")
		}
		if !updated.UpdatedAt().After(original.UpdatedAt()) {
			t.Error("expected UpdatedAt to advance")
		}
	})

	t.Run("WithType re-checks the future date rule", func(t *testing.T) {
		future := valueobject.NewTransactionDate(time.Now().UTC().AddDate(0, 0, 2))
		credit, err := NewTransaction(
			TransactionTypeCredit,
			valueobject.MustMoney("50", valueobject.CurrencyNGN),
			future,
			SourceManual,
			TransactionAttributes{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := credit.WithType(TransactionTypeDebit); !errors.Is(err, domainerror.ErrFutureDebitDate) {
			t.Errorf("expected ErrFutureDebitDate, got %v", err)
		}
	})

	t.Run("WithCategory clears with nil", func(t *testing.T) {
		category, _ := valueobject.NewCategory("Groceries")
		txn := debitOn(t, "10", "2026-03-15").WithCategory(&category)
		if txn.Category() == nil {
			t.Fatal("expected a category")
		}
		if cleared := txn.WithCategory(nil); cleared.Category() != nil {
			t.Error("expected the category to be cleared")
		}
	})
}

func TestTransactionTags(t *testing.T) {
	food, _ := valueobject.NewTag("food")
	recurring, _ := valueobject.NewTag("recurring")

	txn := debitOn(t, "10", "2026-03-15").AddTag(recurring).AddTag(food)

	t.Run("membership", func(t *testing.T) {
		if !txn.HasTag(food) || !txn.HasTag(recurring) {
			t.Error("expected both tags to be members")
		}
	})

	t.Run("adding a duplicate is a no-op", func(t *testing.T) {
		again := txn.AddTag(food)
		if len(again.Tags()) != 2 {
			t.Errorf("expected 2 tags, got %d", len(again.Tags()))
		}
	})

	t.Run("tags are returned sorted", func(t *testing.T) {
		tags := txn.Tags()
		if tags[0].Value() != "food" || tags[1].Value() != "recurring" {
			t.Errorf("unexpected tag order: %v", tags)
		}
	})

	t.Run("removal", func(t *testing.T) {
		without := txn.RemoveTag(food)
		if without.HasTag(food) {
			t.Error("expected the tag to be removed")
		}
		if !txn.HasTag(food) {
			t.Error("expected the original to be unchanged")
		}
	})
}
