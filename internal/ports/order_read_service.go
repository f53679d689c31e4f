package ports

import (
	"context"

	"github.com/Gunvolt24/grocery/internal/domain"
)

// OrderReadService — сервис чтения заказов.
type OrderReadService interface {
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	Quote(ctx context.Context, id int, req domain.QuoteRequest) (*domain.Quote, error)
}
