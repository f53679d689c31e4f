package ports

import (
	"context"

	"github.com/Gunvolt24/grocery/internal/domain"
)

type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
