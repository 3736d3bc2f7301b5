package report

import (
	"sort"
	"strings"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// DefaultCurrency is the currency of aggregation results over an empty
// input. With no transactions there is nothing to infer a currency from, so
// the naira default is used rather than guessing.
const DefaultCurrency = valueobject.CurrencyNGN

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Category valueobject.Category
	Total    valueobject.Money
}

// TotalDebits sums the amounts of all debit transactions in the collection.
//
// The whole input - debits and non-debits alike - must share a single
// currency; a mixed collection fails with ErrMixedCurrency before any
// filtering happens. An empty input returns zero in DefaultCurrency.
func TotalDebits(transactions []*entity.Transaction) (valueobject.Money, error) {
	if len(transactions) == 0 {
		return valueobject.ZeroMoney(DefaultCurrency), nil
	}

	currency, err := commonCurrency(transactions)
	if err != nil {
		return valueobject.Money{}, err
	}

	total := valueobject.ZeroMoney(currency)
	for _, t := range Apply(transactions, IsDebit()) {
		total, err = total.Add(t.Amount())
		if err != nil {
			return valueobject.Money{}, err
		}
	}
	return total, nil
}

// SumByCategory groups debit transactions by category (case-insensitive
// name) and sums their amounts. The single-currency precondition covers the
// entire input, exactly as in TotalDebits. Uncategorized debits are skipped;
// categories with no matching debits are absent from the result.
func SumByCategory(transactions []*entity.Transaction) ([]CategoryTotal, error) {
	currency, err := commonCurrency(transactions)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]CategoryTotal)
	for _, t := range transactions {
		if !t.IsDebit() || t.Category() == nil {
			continue
		}
		key := t.Category().Key()
		row, ok := totals[key]
		if !ok {
			row = CategoryTotal{Category: *t.Category(), Total: valueobject.ZeroMoney(currency)}
		}
		row.Total, err = row.Total.Add(t.Amount())
		if err != nil {
			return nil, err
		}
		totals[key] = row
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, row := range totals {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category.Key() < result[j].Category.Key()
	})
	return result, nil
}

// commonCurrency returns the single currency shared by every transaction in
// the collection, or ErrMixedCurrency naming all currencies found. An empty
// collection yields DefaultCurrency.
func commonCurrency(transactions []*entity.Transaction) (valueobject.CurrencyCode, error) {
	seen := make(map[valueobject.CurrencyCode]struct{})
	for _, t := range transactions {
		seen[t.Amount().Currency()] = struct{}{}
	}

	switch len(seen) {
	case 0:
		return DefaultCurrency, nil
	case 1:
		for currency := range seen {
			return currency, nil
		}
	}

	codes := make([]string, 0, len(seen))
	for currency := range seen {
		codes = append(codes, currency.String())
	}
	sort.Strings(codes)
	return "", domainerror.NewValidationError(
		domainerror.ErrCodeMixedCurrency,
		"transactions contain multiple currencies: "+strings.Join(codes, ", "),
		domainerror.ErrMixedCurrency,
	)
}
