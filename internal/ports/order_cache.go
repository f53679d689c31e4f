package ports

import (
	"context"

	"github.com/Gunvolt24/grocery/internal/domain"
)

// OrderCache — интерфейс кэша заказов.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий сущности.
type OrderCache interface {
	// Get — вернуть заказ по id; (order, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, id int) (*domain.Order, bool)

	// Set — сохранить/обновить заказ в кэше.
	Set(ctx context.Context, order *domain.Order) error

	// WarmUp — массовая загрузка кэша (например, при старте).
	// Реализация должна поддерживать отмену контекста.
	WarmUp(ctx context.Context, orders []*domain.Order) error

	// Purge — удалить все записи.
	Purge(ctx context.Context)
}
