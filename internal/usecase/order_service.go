package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports"
	"github.com/Gunvolt24/grocery/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var _ ports.OrderReadService = (*OrderService)(nil)

// OrderService — прикладная логика чтения заказов (без знаний о транспорте).
type OrderService struct {
	repo  ports.OrderRepository // источник заказов
	cache ports.OrderCache      // кэш перед репозиторием
	log   ports.Logger
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	cache ports.OrderCache,
	log ports.Logger,
) *OrderService {
	return &OrderService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetOrder — получить заказ по id: сначала из кэша, при промахе — из репозитория с записью в кэш.
// Отсутствие заказа возвращается как domain.ErrOrderNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, id); found {
		s.log.Infof(ctx, "cache hit for order=%d", id)
		return order, nil
	}
	s.log.Infof(ctx, "cache miss for order=%d", id)

	start := time.Now()
	order, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			s.log.Warnf(ctx, "order not found id=%d", id)
		} else {
			s.log.Errorf(ctx, "repo.Find failed id=%d err=%v", id, err)
		}
		return nil, err
	}

	if setErr := s.cache.Set(ctx, order); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed id=%d err=%v", id, setErr)
	}

	s.log.Infof(ctx, "repo fetch id=%d took=%s", id, time.Since(start))
	return order, nil
}

// ListOrders — страница заказов в порядке строк фикстуры (пагинация уже валидирована на верхнем уровне).
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.All failed err=%v", err)
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*domain.Order{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// Quote — расчёт «что если»: изменения применяются к копии заказа и никуда не сохраняются.
func (s *OrderService) Quote(ctx context.Context, id int, req domain.QuoteRequest) (_ *domain.Quote, err error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderService.Quote",
		attribute.Int("order.id", id),
		attribute.Int("quote.add", len(req.Add)),
		attribute.Int("quote.remove", len(req.Remove)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("quote order id=%d: %w", id, err)
	}
	q := domain.ApplyQuote(order, req)
	span.SetAttributes(attribute.String("quote.total", q.Order.Total().StringFixed(2)))
	s.log.Infof(ctx, "quote id=%d added=%d duplicates=%d removed=%d missing=%d total=%s",
		id, len(q.Added), len(q.Duplicates), len(q.Removed), len(q.Missing), q.Order.Total())
	return q, nil
}

// Invalidate — сбрасывает данные репозитория и кэш заказов:
// следующий запрос перечитает фикстуру, устаревшие заказы из кэша не отдаются.
func (s *OrderService) Invalidate(ctx context.Context) {
	s.repo.Invalidate()
	s.cache.Purge(ctx)
	s.log.Infof(ctx, "order data invalidated")
}

// WarmUpCache — прогрев кэша первыми N заказами фикстуры.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.ListOrders(ctx, n, 0)
	if err != nil {
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", len(list), time.Since(start))
	return nil
}
