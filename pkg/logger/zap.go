package logger

import (
	"context"

	"github.com/Gunvolt24/grocery/pkg/ctxmeta"
	"go.uber.org/zap"
)

// ZapLogger — реализация ports.Logger поверх zap.
// Метаданные запроса из контекста (request_id, order_id, trace_id) добавляются полями.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger — production (JSON) или development (консоль) логгер и функция Sync.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		base *zap.Logger
		err  error
	)

	if isProd {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	l := New(base)
	cleanup := func() error { return l.base.Sync() }
	return l, cleanup, nil
}

// New оборачивает готовый *zap.Logger (в тестах — с observer-ядром).
func New(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withContext(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger { return z.base }

func (z *ZapLogger) withContext(ctx context.Context) *zap.SugaredLogger {
	fields := ctxmeta.LogFields(ctx)
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
