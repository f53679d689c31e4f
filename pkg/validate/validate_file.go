package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports"
	"github.com/Gunvolt24/grocery/internal/repo/csvfile"
)

// ErrInvalidFixture — в фикстуре есть хотя бы одна некорректная строка.
var ErrInvalidFixture = errors.New("fixture contains invalid rows")

// Summary — статистика проверки фикстуры.
type Summary struct {
	Valid   int
	Invalid int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d valid / %d invalid", s.Valid, s.Invalid)
}

// ValidateFile — проверяет CSV-фикстуру построчно. В отличие от репозитория,
// не останавливается на первой ошибке: каждая некорректная строка пишется в ow
// в виде "line N: причина". Повтор id и синтаксическая ошибка CSV считаются
// некорректными строками, чтение продолжается со следующей записи.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, filePath string, ow io.Writer) (Summary, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ValidateStream(ctx, validator, file, ow)
}

// ValidateStream — то же, что ValidateFile, но для произвольного reader’а.
func ValidateStream(ctx context.Context, validator ports.OrderValidator, ir io.Reader, ow io.Writer) (Summary, error) {
	var res Summary
	seen := make(map[int]int) // id → строка первого появления

	err := csvfile.EachRecord(ctx, ir, func(row csvfile.Row) error {
		var order *domain.Order
		err := row.Err
		if err == nil {
			order, err = csvfile.ParseRow(row.Fields)
		}
		if err == nil && validator != nil {
			err = validator.Validate(ctx, order)
		}
		if err == nil {
			if firstLine, dup := seen[order.ID()]; dup {
				err = fmt.Errorf("duplicate order id %d (first seen on line %d)", order.ID(), firstLine)
			} else {
				seen[order.ID()] = row.Line
			}
		}

		if err == nil {
			res.Valid++
			return nil
		}
		res.Invalid++
		if _, wErr := fmt.Fprintf(ow, "line %d: %v\n", row.Line, err); wErr != nil {
			return fmt.Errorf("write report: %w", wErr)
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	if res.Invalid > 0 {
		return res, fmt.Errorf("%w: %s", ErrInvalidFixture, res)
	}
	return res, nil
}
