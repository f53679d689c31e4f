package csvfile

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports"
	"github.com/Gunvolt24/grocery/pkg/metrics"
	"github.com/Gunvolt24/grocery/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — репозиторий заказов поверх CSV-фикстуры.
// Файл читается один раз при первом обращении (или при явном Load),
// дальше All/Find работают по кэшу: срез в порядке строк и индекс по id.
type OrderRepository struct {
	path      string
	validator ports.OrderValidator
	log       ports.Logger

	mu     sync.RWMutex
	loaded bool
	orders []*domain.Order
	byID   map[int]*domain.Order
}

// NewOrderRepository — конструктор OrderRepository. validator может быть nil.
func NewOrderRepository(path string, validator ports.OrderValidator, log ports.Logger) *OrderRepository {
	return &OrderRepository{path: path, validator: validator, log: log}
}

// Load — барьер инициализации: разбирает файл, если кэш ещё пуст.
// Неудачная загрузка не кэшируется — следующий вызов попробует снова.
func (r *OrderRepository) Load(ctx context.Context) error {
	_, _, err := r.snapshot(ctx)
	return err
}

// All — все заказы в порядке строк файла (копии, изменения не влияют на кэш).
func (r *OrderRepository) All(ctx context.Context) ([]*domain.Order, error) {
	orders, _, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Order, len(orders))
	for i, order := range orders {
		out[i] = order.Clone()
	}
	return out, nil
}

// Find — заказ по id из индекса; файл повторно не читается.
func (r *OrderRepository) Find(ctx context.Context, id int) (*domain.Order, error) {
	_, byID, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	order, ok := byID[id]
	if !ok {
		metrics.OrderLookups.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("find order id=%d: %w", id, domain.ErrOrderNotFound)
	}
	metrics.OrderLookups.WithLabelValues("found").Inc()
	return order.Clone(), nil
}

// Len — число загруженных заказов.
func (r *OrderRepository) Len(ctx context.Context) (int, error) {
	orders, _, err := r.snapshot(ctx)
	return len(orders), err
}

// Invalidate — сбрасывает кэш репозитория; следующее обращение перечитает файл.
// Кэш сервиса перед репозиторием не трогает: для этого OrderService.Invalidate.
func (r *OrderRepository) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loaded = false
	r.orders = nil
	r.byID = nil
	metrics.FixtureOrders.Set(0)
}

// ------вспомогательные функции------

// snapshot — возвращает заполненный кэш, при необходимости выполняя разбор под эксклюзивной блокировкой.
func (r *OrderRepository) snapshot(ctx context.Context) ([]*domain.Order, map[int]*domain.Order, error) {
	r.mu.RLock()
	if r.loaded {
		orders, byID := r.orders, r.byID
		r.mu.RUnlock()
		return orders, byID, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// другой вызывающий мог успеть загрузить, пока ждали блокировку
	if r.loaded {
		return r.orders, r.byID, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "csvfile.Load", attribute.String("fixture.path", r.path))
	start := time.Now()
	orders, byID, err := r.parseFile(ctx)
	metrics.FixtureLoadDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("fixture.orders", len(orders)))
	telemetry.EndSpan(span, err)
	if err != nil {
		result := "io"
		if domain.IsMalformedFixture(err) {
			result = "malformed"
		}
		metrics.FixtureLoads.WithLabelValues(result).Inc()
		r.logErrorf(ctx, "fixture load failed path=%s err=%v", r.path, err)
		return nil, nil, err
	}

	r.orders, r.byID, r.loaded = orders, byID, true
	metrics.FixtureLoads.WithLabelValues("ok").Inc()
	metrics.FixtureOrders.Set(float64(len(orders)))
	r.logInfof(ctx, "fixture loaded path=%s orders=%d took=%s", r.path, len(orders), time.Since(start))
	return orders, byID, nil
}

func (r *OrderRepository) parseFile(ctx context.Context) ([]*domain.Order, map[int]*domain.Order, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()

	var orders []*domain.Order
	byID := make(map[int]*domain.Order)

	err = EachRow(ctx, file, func(row Row) error {
		order, err := ParseRow(row.Fields)
		if err != nil {
			return fmt.Errorf("line %d: %w", row.Line, err)
		}
		if r.validator != nil {
			if vErr := r.validator.Validate(ctx, order); vErr != nil {
				return fmt.Errorf("line %d: %w: %w", row.Line, domain.ErrMalformedFixture, vErr)
			}
		}
		if _, dup := byID[order.ID()]; dup {
			return fmt.Errorf("line %d: %w: duplicate order id %d", row.Line, domain.ErrMalformedFixture, order.ID())
		}
		byID[order.ID()] = order
		orders = append(orders, order)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("parse fixture %s: %w", r.path, err)
	}
	return orders, byID, nil
}

func (r *OrderRepository) logInfof(ctx context.Context, format string, args ...any) {
	if r.log != nil {
		r.log.Infof(ctx, format, args...)
	}
}

func (r *OrderRepository) logErrorf(ctx context.Context, format string, args ...any) {
	if r.log != nil {
		r.log.Errorf(ctx, format, args...)
	}
}
