package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// QuoteRequest — набор изменений для предварительного расчёта заказа.
type QuoteRequest struct {
	Add    map[string]decimal.Decimal
	Remove []string
}

// Quote — результат расчёта: изменённая копия заказа и исход каждой операции.
// Duplicates — товары, которые не добавлены (уже есть), Missing — не удалены (нет в заказе).
type Quote struct {
	Order      *Order
	Added      []string
	Duplicates []string
	Removed    []string
	Missing    []string
}

// ApplyQuote применяет изменения к копии заказа, исходный заказ не меняется.
// Сначала выполняются удаления, затем добавления (в алфавитном порядке названий),
// поэтому пара remove+add заменяет цену товара.
func ApplyQuote(order *Order, req QuoteRequest) *Quote {
	q := &Quote{Order: order.Clone()}

	for _, name := range req.Remove {
		if q.Order.RemoveProduct(name) {
			q.Removed = append(q.Removed, name)
		} else {
			q.Missing = append(q.Missing, name)
		}
	}

	names := make([]string, 0, len(req.Add))
	for name := range req.Add {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if q.Order.AddProduct(name, req.Add[name]) {
			q.Added = append(q.Added, name)
		} else {
			q.Duplicates = append(q.Duplicates, name)
		}
	}
	return q
}
