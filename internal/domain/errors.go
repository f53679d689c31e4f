package domain

import "errors"

var (
	// ErrOrderNotFound — заказа с таким id нет в загруженном наборе (ошибка вызывающего, не повторяется).
	ErrOrderNotFound = errors.New("order not found")
	// ErrMalformedFixture — нарушение целостности данных фикстуры: некорректный id или цена,
	// непарные поля, повтор id. Загрузка репозитория прерывается целиком.
	ErrMalformedFixture = errors.New("malformed order fixture")
)

// IsNotFound проверяет, является ли ошибка отсутствием заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsMalformedFixture проверяет, является ли ошибка повреждением фикстуры.
func IsMalformedFixture(err error) bool {
	return errors.Is(err, ErrMalformedFixture)
}
