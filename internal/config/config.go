package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// TimestampConfig — единственное правило извлечения метки времени.
// Pattern — регулярное выражение, первая группа захвата которого содержит
// текст метки; Format — Go-layout для её разбора.
type TimestampConfig struct {
	Pattern string `mapstructure:"Pattern"`
	Format  string `mapstructure:"Format"`
}

// DurationConfig — правило распознавания длительности.
// Паттерн может содержать именованные группы h, m и s; каждая необязательна.
type DurationConfig struct {
	Pattern string `mapstructure:"Pattern"`
}

// ColorConfig — правило окраски события: паттерн, цвет для отрисовки
// и группа дорожек (по умолчанию 0).
type ColorConfig struct {
	Pattern string `mapstructure:"Pattern"`
	Color   string `mapstructure:"Color"`
	Group   int    `mapstructure:"Group"`
}

// OutputConfig содержит настройки вывода HTML-документа.
// Пустой Path означает вывод в stdout.
type OutputConfig struct {
	Path string `mapstructure:"Path"`
}

// LoggingConfig содержит настройки логирования и интеграции с Sentry
type LoggingConfig struct {
	LogFile      string `mapstructure:"LogFile"`      // путь к файлу логов
	SentryDSN    string `mapstructure:"SentryDSN"`    // DSN для Sentry
	EnableSentry bool   `mapstructure:"EnableSentry"` // включить отправку ошибок в Sentry
}

// ClickHouseConfig содержит настройки необязательной выгрузки рассчитанных
// событий в ClickHouse. При Enable=false остальные поля не используются.
type ClickHouseConfig struct {
	Enable   bool   `mapstructure:"Enable"`
	Address  string `mapstructure:"Address"`
	Username string `mapstructure:"Username"`
	Password string `mapstructure:"Password"`
	Database string `mapstructure:"Database"`
	Table    string `mapstructure:"Table"`
	Protocol string `mapstructure:"Protocol"` // "native" или "http"
}

// Config описывает полный документ конфигурации инструмента.
// Timestamp, Durations и Colors обязательны; порядок правил в списках значим:
// правила проверяются по порядку, выигрывает первое совпавшее.
type Config struct {
	Timestamp  TimestampConfig  `mapstructure:"Timestamp"`
	Durations  []DurationConfig `mapstructure:"Durations"`
	Colors     []ColorConfig    `mapstructure:"Colors"`
	Output     OutputConfig     `mapstructure:"Output"`
	Logging    LoggingConfig    `mapstructure:"Logging"`
	ClickHouse ClickHouseConfig `mapstructure:"ClickHouse"`
}

// LoadConfig читает и парсит конфиг из YAML-файла по указанному пути.
// Шаги:
// 1. Чтение сырого файла
// 2. Очистка данных: удаление BOM, замена табуляций
// 3. Парсинг YAML через viper в структуру Config
// 4. Валидация обязательных полей
func LoadConfig(path string) (*Config, error) {
	// 1. Чтение
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// 2. Очистка
	sanitized := sanitize(raw)

	// 3. Парсинг
	cfg, err := parseYAML(sanitized)
	if err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// 4. Валидация
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// sanitize удаляет BOM и табуляции
func sanitize(data []byte) []byte {
	// Удаляем UTF-8 BOM
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	// Заменяем табы на два пробела
	data = bytes.ReplaceAll(data, []byte("\t"), []byte("  "))
	return data
}

// parseYAML парсит YAML-данные в структуру Config
func parseYAML(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные поля конфигурации
func (c *Config) Validate() error {
	if c.Timestamp.Pattern == "" {
		return fmt.Errorf("Timestamp.Pattern must not be empty")
	}
	if c.Timestamp.Format == "" {
		return fmt.Errorf("Timestamp.Format must not be empty")
	}
	if len(c.Durations) == 0 {
		return fmt.Errorf("Durations must not be empty")
	}
	for i, d := range c.Durations {
		if d.Pattern == "" {
			return fmt.Errorf("Durations[%d].Pattern must not be empty", i)
		}
	}
	if len(c.Colors) == 0 {
		return fmt.Errorf("Colors must not be empty")
	}
	for i, col := range c.Colors {
		if col.Pattern == "" {
			return fmt.Errorf("Colors[%d].Pattern must not be empty", i)
		}
		if col.Group < 0 {
			return fmt.Errorf("Colors[%d].Group must not be negative", i)
		}
	}
	if c.ClickHouse.Enable {
		if c.ClickHouse.Address == "" {
			return fmt.Errorf("ClickHouse.Address must not be empty")
		}
		if c.ClickHouse.Database == "" {
			return fmt.Errorf("ClickHouse.Database must not be empty")
		}
		if c.ClickHouse.Table == "" {
			return fmt.Errorf("ClickHouse.Table must not be empty")
		}
	}
	return nil
}
