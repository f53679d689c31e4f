package csvfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/grocery/internal/domain"
)

// ParseRow — разбор одной строки фикстуры: id, затем пары (название, цена).
// Строка без пар — пустой заказ. Любая ошибка оборачивает domain.ErrMalformedFixture.
func ParseRow(record []string) (*domain.Order, error) {
	if len(record) == 0 {
		return nil, fmt.Errorf("%w: empty row", domain.ErrMalformedFixture)
	}

	id, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", domain.ErrMalformedFixture, record[0])
	}

	rest := record[1:]
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("%w: order %d: odd number of product fields (%d)", domain.ErrMalformedFixture, id, len(rest))
	}

	order := domain.NewOrder(id, nil)
	for i := 0; i < len(rest); i += 2 {
		name := strings.TrimSpace(rest[i])
		price, err := domain.ParsePrice(rest[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: order %d: product %q: %v", domain.ErrMalformedFixture, id, name, err)
		}
		if !order.AddProduct(name, price) {
			return nil, fmt.Errorf("%w: order %d: duplicate product %q", domain.ErrMalformedFixture, id, name)
		}
	}
	return order, nil
}
