package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/shopspring/decimal"
)

type orderResponse struct {
	ID       int                        `json:"id"`
	Products map[string]decimal.Decimal `json:"products"`
	Subtotal decimal.Decimal            `json:"subtotal"`
	Tax      decimal.Decimal            `json:"tax"`
	Total    decimal.Decimal            `json:"total"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:       o.ID(),
		Products: o.Products(),
		Subtotal: o.Subtotal(),
		Tax:      o.Tax(),
		Total:    o.Total(),
	}
}

type quoteRequest struct {
	Add    map[string]decimal.Decimal `json:"add"`
	Remove []string                   `json:"remove"`
}

func (r quoteRequest) toDomain() (domain.QuoteRequest, error) {
	for name, price := range r.Add {
		if strings.TrimSpace(name) == "" {
			return domain.QuoteRequest{}, errors.New("product name must not be empty")
		}
		if price.IsNegative() {
			return domain.QuoteRequest{}, fmt.Errorf("price of %q must be non-negative", name)
		}
	}
	return domain.QuoteRequest{Add: r.Add, Remove: r.Remove}, nil
}

type quoteResponse struct {
	Order      orderResponse `json:"order"`
	Added      []string      `json:"added"`
	Duplicates []string      `json:"duplicates"`
	Removed    []string      `json:"removed"`
	Missing    []string      `json:"missing"`
}

func newQuoteResponse(q *domain.Quote) quoteResponse {
	return quoteResponse{
		Order:      newOrderResponse(q.Order),
		Added:      nonNil(q.Added),
		Duplicates: nonNil(q.Duplicates),
		Removed:    nonNil(q.Removed),
		Missing:    nonNil(q.Missing),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
