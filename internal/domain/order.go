package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate — ставка налога, применяемая к сумме товаров заказа.
var TaxRate = decimal.RequireFromString("0.075")

// taxPlaces — точность округления налоговой составляющей (центы).
const taxPlaces = 2

// Order — заказ: идентификатор и набор товаров «название → цена за единицу».
// Производные значения (сумма, налог, итог) не хранятся и всегда считаются по products.
type Order struct {
	id       int
	products map[string]decimal.Decimal
}

// NewOrder — конструктор заказа. Набор товаров копируется, nil трактуется как пустой заказ.
func NewOrder(id int, products map[string]decimal.Decimal) *Order {
	copied := make(map[string]decimal.Decimal, len(products))
	for name, price := range products {
		copied[name] = price
	}
	return &Order{id: id, products: copied}
}

// ID — идентификатор заказа, неизменяем после создания.
func (o *Order) ID() int { return o.id }

// Products — копия текущего набора товаров; порядок обхода не определён.
func (o *Order) Products() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(o.products))
	for name, price := range o.products {
		out[name] = price
	}
	return out
}

// Len — количество товаров в заказе.
func (o *Order) Len() int { return len(o.products) }

// HasProduct — есть ли товар с таким названием.
func (o *Order) HasProduct(name string) bool {
	_, ok := o.products[name]
	return ok
}

// Subtotal — сумма цен без налога.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, price := range o.products {
		sum = sum.Add(price)
	}
	return sum
}

// Tax — налог, округлённый до центов: round(Σprice × TaxRate, 2).
func (o *Order) Tax() decimal.Decimal {
	return o.Subtotal().Mul(TaxRate).Round(taxPlaces)
}

// Total — итог с налогом: Σprice + round(Σprice × TaxRate, 2).
// Округляется только налог, сама сумма к нему прибавляется как есть.
func (o *Order) Total() decimal.Decimal {
	if len(o.products) == 0 {
		return decimal.Zero
	}
	subtotal := o.Subtotal()
	return subtotal.Add(subtotal.Mul(TaxRate).Round(taxPlaces))
}

// AddProduct — добавляет товар. Если товар с таким названием уже есть,
// заказ не меняется и возвращается false. Работает и на нулевом Order.
func (o *Order) AddProduct(name string, price decimal.Decimal) bool {
	if _, exists := o.products[name]; exists {
		return false
	}
	if o.products == nil {
		o.products = make(map[string]decimal.Decimal)
	}
	o.products[name] = price
	return true
}

// RemoveProduct — удаляет товар; false, если такого товара нет.
func (o *Order) RemoveProduct(name string) bool {
	if _, exists := o.products[name]; !exists {
		return false
	}
	delete(o.products, name)
	return true
}

// Clone — глубокая копия заказа.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	return NewOrder(o.id, o.products)
}

// String — краткое представление для логов.
func (o *Order) String() string {
	return fmt.Sprintf("order{id=%d products=%d total=%s}", o.id, len(o.products), o.Total().StringFixed(taxPlaces))
}

// ParsePrice — разбор цены из строки фикстуры.
// Точность в два знака ожидается, но не проверяется.
func ParsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return price, nil
}
