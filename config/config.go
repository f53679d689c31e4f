package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix — префикс переменных окружения по умолчанию (GROCERY_FIXTURE_PATH и т.д.).
const Prefix = "GROCERY"

type Fixture struct {
	// Path без тега envconfig: с тегом при пустом GROCERY_FIXTURE_PATH
	// envconfig читает голое имя, то есть системный $PATH.
	Path string `default:"support/orders.csv"`
	// EagerLoad — разбирать фикстуру при старте (fail-fast при повреждённом файле).
	EagerLoad bool `default:"true" envconfig:"EAGER_LOAD"`
}

type HTTP struct {
	Addr              string        `default:":8080" envconfig:"ADDR"`
	GinMode           string        `default:"debug" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s"   envconfig:"READ_TIMEOUT"`
	WriteTimeout      time.Duration `default:"10s"   envconfig:"WRITE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s"    envconfig:"READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"60s"   envconfig:"IDLE_TIMEOUT"`
	HandlerTimeout    time.Duration `default:"3s"    envconfig:"HANDLER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s"    envconfig:"GRACEFUL_TIMEOUT"`
	StaticDir         string        `envconfig:"STATIC_DIR"`
}

type Metrics struct {
	Addr string `default:":2112" envconfig:"ADDR"`
}

type Tracing struct {
	Enabled     bool    `default:"false"      envconfig:"OTEL_ENABLED"`
	ServiceName string  `default:"grocery"    envconfig:"OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"jaeger:4318" envconfig:"OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1"          envconfig:"OTEL_SAMPLE_RATIO"`
}

type Cache struct {
	Capacity int           `default:"1000" envconfig:"CAPACITY"`
	TTL      time.Duration `default:"10m"  envconfig:"TTL"`
	WarmUpN  int           `default:"0"    envconfig:"WARMUP_N"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	Fixture Fixture
	HTTP    HTTP
	Metrics Metrics
	Tracing Tracing
	Cache   Cache
	Logger  Logger
}

// Load — конфигурация из окружения с префиксом GROCERY.
func Load() (Config, error) {
	return LoadWithPrefix(Prefix)
}

// LoadWithPrefix — то же, что Load, но с произвольным префиксом (удобно в тестах).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
