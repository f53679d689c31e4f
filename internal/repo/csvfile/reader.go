package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/grocery/internal/domain"
)

// Row — сырая запись фикстуры с номером строки в файле.
// Err заполняется только в EachRecord: запись с синтаксической ошибкой CSV.
type Row struct {
	Line   int
	Fields []string
	Err    error
}

// NewCSVReader — csv.Reader под формат фикстуры: переменное число полей в строке.
func NewCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// EachRow — обходит записи фикстуры по порядку. Ошибка синтаксиса CSV
// оборачивает domain.ErrMalformedFixture; ошибка fn прерывает обход.
func EachRow(ctx context.Context, r io.Reader, fn func(Row) error) error {
	return eachRow(ctx, r, false, fn)
}

// EachRecord — как EachRow, но синтаксическая ошибка CSV не прерывает обход:
// запись передаётся в fn с заполненным Err, чтение продолжается со следующей.
func EachRecord(ctx context.Context, r io.Reader, fn func(Row) error) error {
	return eachRow(ctx, r, true, fn)
}

func eachRow(ctx context.Context, r io.Reader, lenient bool, fn func(Row) error) error {
	reader := NewCSVReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return fmt.Errorf("read fixture: %w", err)
			}
			malformed := fmt.Errorf("%w: %v", domain.ErrMalformedFixture, parseErr)
			if !lenient {
				return malformed
			}
			if err := fn(Row{Line: parseErr.StartLine, Err: malformed}); err != nil {
				return err
			}
			continue
		}

		line, _ := reader.FieldPos(0)
		if err := fn(Row{Line: line, Fields: record}); err != nil {
			return err
		}
	}
}
