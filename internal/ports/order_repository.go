package ports

import (
	"context"

	"github.com/Gunvolt24/grocery/internal/domain"
)

// OrderRepository — источник заказов (только чтение).
// Реализация загружает данные один раз и возвращает копии сущностей.
type OrderRepository interface {
	// All — все заказы в порядке строк источника.
	All(ctx context.Context) ([]*domain.Order, error)
	// Find — заказ по id; domain.ErrOrderNotFound, если такого нет.
	Find(ctx context.Context, id int) (*domain.Order, error)
	// Invalidate — сбросить загруженные данные; следующее обращение перечитает источник.
	Invalidate()
}
