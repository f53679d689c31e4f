// Пакет ctxmeta — метаданные запроса, которые едут через context.Context
// (request_id, id заказа, trace/span) и попадают в поля логов.
// HTTP-слой кладёт значения, логгер их читает; друг о друге они не знают.
package ctxmeta

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyOrderID   ctxKey = "order_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOrderID помечает контекст id заказа, с которым работает запрос.
func WithOrderID(ctx context.Context, id int) context.Context {
	if ctx == nil || id <= 0 {
		return ctx
	}
	return context.WithValue(ctx, KeyOrderID, id)
}

func OrderIDFromContext(ctx context.Context) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	if v, ok := ctx.Value(KeyOrderID).(int); ok && v > 0 {
		return v, true
	}
	return 0, false
}

// TraceIDFromContext — trace_id активного спана (без спана — "", false).
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// LogFields — пары ключ/значение для структурного логгера; отсутствующие значения пропускаются.
func LogFields(ctx context.Context) []any {
	var fields []any
	if v, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, string(KeyRequestID), v)
	}
	if v, ok := OrderIDFromContext(ctx); ok {
		fields = append(fields, string(KeyOrderID), strconv.Itoa(v))
	}
	if v, ok := TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", v)
	}
	if v, ok := SpanIDFromContext(ctx); ok {
		fields = append(fields, "span_id", v)
	}
	return fields
}
