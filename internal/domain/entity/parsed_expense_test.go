package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

func validParsedExpense() ParsedExpense {
	return ParsedExpense{
		Type:         TransactionTypeDebit,
		Amount:       decimal.RequireFromString("1250.75"),
		Currency:     "NGN",
		Date:         valueobject.NewTransactionDate(time.Now().UTC().Add(-24 * time.Hour)),
		MerchantName: "Shoprite",
		CategoryName: "Groceries",
		Tags:         []string{"Food", "weekly"},
		Description:  "Weekly grocery run",
		Confidence:   decimal.RequireFromString("0.92"),
	}
}

func TestParsedExpenseToTransaction(t *testing.T) {
	t.Run("converts a complete record", func(t *testing.T) {
		txn, err := validParsedExpense().ToTransaction(SourceEmailGmail)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if txn.Source() != SourceEmailGmail {
			t.Errorf("expected source GMAIL, got %s", txn.Source())
		}
		if txn.Amount().Amount().String() != "1250.75" {
			t.Errorf("unexpected amount %s", txn.Amount().Amount())
		}
		if txn.Merchant() == nil || txn.Merchant().Name() != "Shoprite" {
			t.Error("expected the merchant to carry over")
		}
		if txn.Category() == nil || txn.Category().Name() != "Groceries" {
			t.Error("expected the category to carry over")
		}
		tag, err := valueobject.NewTag("food")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !txn.HasTag(tag) {
			t.Error("expected tags to be normalized and kept")
		}
		if txn.AIConfidence() == nil || txn.AIConfidence().String() != "0.92" {
			t.Error("expected the extraction confidence to be recorded")
		}
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		expense := validParsedExpense()
		expense.MerchantName = ""
		expense.CategoryName = ""
		expense.Tags = nil
		expense.Description = ""

		txn, err := expense.ToTransaction(SourceEmailGmail)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if txn.Merchant() != nil || txn.Category() != nil {
			t.Error("expected no merchant or category")
		}
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		expense := validParsedExpense()
		expense.Currency = "DOGE"
		if _, err := expense.ToTransaction(SourceEmailGmail); !errors.Is(err, domainerror.ErrInvalidIdentifier) {
			t.Errorf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		expense := validParsedExpense()
		expense.Amount = decimal.Zero
		if _, err := expense.ToTransaction(SourceEmailGmail); !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("rejects a future-dated debit", func(t *testing.T) {
		expense := validParsedExpense()
		expense.Date = valueobject.NewTransactionDate(time.Now().UTC().Add(48 * time.Hour))
		if _, err := expense.ToTransaction(SourceEmailGmail); !errors.Is(err, domainerror.ErrFutureDebitDate) {
			t.Errorf("expected ErrFutureDebitDate, got %v", err)
		}
	})

	t.Run("rejects confidence outside the unit interval", func(t *testing.T) {
		for _, confidence := range []string{"-0.1", "1.5"} {
			expense := validParsedExpense()
			expense.Confidence = decimal.RequireFromString(confidence)
			if _, err := expense.ToTransaction(SourceEmailGmail); err == nil {
				t.Errorf("expected an error for confidence %s", confidence)
			}
		}
	})

	t.Run("rejects a blank tag", func(t *testing.T) {
		expense := validParsedExpense()
		expense.Tags = []string{"   "}
		if _, err := expense.ToTransaction(SourceEmailGmail); err == nil {
			t.Error("expected an error for a blank tag")
		}
	})
}
