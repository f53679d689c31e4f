package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gunvolt24/grocery/config"
	cachemem "github.com/Gunvolt24/grocery/internal/cache/memory"
	"github.com/Gunvolt24/grocery/internal/ports"
	"github.com/Gunvolt24/grocery/internal/repo/csvfile"
	rest "github.com/Gunvolt24/grocery/internal/transport/http"
	"github.com/Gunvolt24/grocery/internal/usecase"
	"github.com/Gunvolt24/grocery/pkg/logger"
	"github.com/Gunvolt24/grocery/pkg/metrics"
	"github.com/Gunvolt24/grocery/pkg/telemetry"
	"github.com/Gunvolt24/grocery/pkg/validate"
	"github.com/gin-gonic/gin"
)

// Invalidator — сброс загруженных заказов (репозиторий и кэш).
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// App — собранное приложение и его HTTP-сервер.
type App struct {
	Logger     ports.Logger // логгер
	HTTPServer *http.Server // HTTP-сервер
	// Orders и Reload — перечитывание фикстуры по сигналу (SIGHUP); nil — без перечитывания.
	Orders          Invalidator
	Reload          <-chan os.Signal
	gracefulTimeout time.Duration // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// При EagerLoad фикстура разбирается сразу: повреждённый файл не даёт сервису стартовать.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := telemetry.ShutdownFunc(func(context.Context) error { return nil })
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	// Репозиторий поверх фикстуры.
	orderRepo := csvfile.NewOrderRepository(cfg.Fixture.Path, validate.NewOrderValidator(), logg)
	if cfg.Fixture.EagerLoad {
		if err := orderRepo.Load(ctx); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("load fixture: %w", err)
		}
	}

	// Кэш и сервис.
	orderCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	orderService := usecase.NewOrderService(orderRepo, orderCache, logg)

	// Прогрев кэша
	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := orderService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(orderService, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, cfg.HTTP.StaticDir, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Orders:          orderService,
		Reload:          reload,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	return app, func() {
		signal.Stop(reload)
		cleanup()
	}, nil
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки сервера и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или ошибки сервера; SIGHUP сбрасывает данные заказов.
	var runErr error
wait:
	for {
		select {
		case <-ctx.Done():
			a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
			break wait
		case runErr = <-errCh:
			a.Logger.Errorf(ctx, "http server failed: %v", runErr)
			break wait
		case sig := <-a.Reload:
			if a.Orders != nil {
				a.Logger.Infof(ctx, "%s received, invalidating orders", sig)
				a.Orders.Invalidate(ctx)
			}
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
