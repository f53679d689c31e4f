package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — структура для валидации заказа.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет id и товары заказа.
func (v *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.ID() <= 0 {
		return fmt.Errorf("%w: id должен быть положительным (id=%d)", ErrInvalidOrder, order.ID())
	}
	return v.validateProducts(order)
}

// Валидация товаров
func (v *OrderValidator) validateProducts(order *domain.Order) error {
	for name, price := range order.Products() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: название товара обязательно", ErrInvalidOrder)
		}
		if price.IsNegative() {
			return fmt.Errorf("%w: цена %q должна быть неотрицательной", ErrInvalidOrder, name)
		}
	}
	return nil
}
