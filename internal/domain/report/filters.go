// Package report provides pure filtering and aggregation functions over
// collections of transactions. Nothing here mutates its input or performs I/O.
package report

import (
	"time"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// Filter is a predicate over a single transaction. Filters compose with And:
//
//	debitsInJanuary := report.And(report.IsDebit(), report.InMonth(2026, time.January))
type Filter func(*entity.Transaction) bool

// And returns a filter that matches when every given filter matches.
func And(filters ...Filter) Filter {
	return func(t *entity.Transaction) bool {
		for _, f := range filters {
			if !f(t) {
				return false
			}
		}
		return true
	}
}

// Apply returns the transactions matching the filter, in input order.
func Apply(transactions []*entity.Transaction, filter Filter) []*entity.Transaction {
	var matched []*entity.Transaction
	for _, t := range transactions {
		if filter(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

// IsDebit matches debit transactions.
func IsDebit() Filter {
	return func(t *entity.Transaction) bool { return t.IsDebit() }
}

// IsCredit matches credit transactions.
func IsCredit() Filter {
	return func(t *entity.Transaction) bool { return t.IsCredit() }
}

// InDateRange matches transactions dated within [start, endInclusive],
// comparing calendar dates only.
func InDateRange(start, endInclusive valueobject.TransactionDate) Filter {
	return func(t *entity.Transaction) bool {
		d := t.Date()
		return !d.Before(start) && !d.After(endInclusive)
	}
}

// InMonth matches transactions dated within the given month, respecting
// month length and leap-year February.
func InMonth(year int, month time.Month) Filter {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return InDateRange(valueobject.NewTransactionDate(first), valueobject.NewTransactionDate(last))
}

// ByCategory matches transactions whose category equals the given one
// (case-insensitive name). A nil category matches only uncategorized
// transactions.
func ByCategory(category *valueobject.Category) Filter {
	return func(t *entity.Transaction) bool {
		if category == nil {
			return t.Category() == nil
		}
		return t.Category() != nil && category.Equal(*t.Category())
	}
}

// ByMerchant matches transactions whose merchant equals the given one by
// normalized name. A nil merchant matches only transactions without a
// merchant; a transaction without a merchant never satisfies a non-nil
// merchant filter.
func ByMerchant(merchant *valueobject.Merchant) Filter {
	return func(t *entity.Transaction) bool {
		if merchant == nil {
			return t.Merchant() == nil
		}
		return t.Merchant() != nil && merchant.Equal(*t.Merchant())
	}
}

// ByTag matches transactions carrying the given tag.
func ByTag(tag valueobject.Tag) Filter {
	return func(t *entity.Transaction) bool { return t.HasTag(tag) }
}

// HasDescriptionContaining matches transactions whose description contains
// the substring, case-insensitively. Transactions with an empty description
// never match a non-empty substring.
func HasDescriptionContaining(substring string) Filter {
	return func(t *entity.Transaction) bool {
		return t.Description().Contains(substring)
	}
}
