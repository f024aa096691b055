package clickhouseclient

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"LogTimelineChart/internal/config"
	"LogTimelineChart/internal/models"
)

// Client — подключение к ClickHouse для выгрузки рассчитанных событий диаграммы.
type Client struct {
	conn   clickhouse.Conn
	table  string
	logger *zap.Logger
}

// New создает клиента ClickHouse
func New(cfg config.ClickHouseConfig, logger *zap.Logger) (*Client, error) {
	protocol := clickhouse.Native
	if cfg.Protocol == "http" {
		protocol = clickhouse.HTTP
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Address},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
		Protocol:    protocol,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse open: %w", err)
	}
	return &Client{conn: conn, table: cfg.Table, logger: logger}, nil
}

// InsertEventBatch выгружает события диаграммы одной пачкой.
// Номера дорожек к этому моменту уже глобальные.
func (c *Client) InsertEventBatch(ctx context.Context, events []models.Event) error {
	// Отдельный контекст с тайм-аутом, чтобы отмена процесса не прерывала выгрузку
	dbCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	batch, err := c.conn.PrepareBatch(dbCtx,
		"INSERT INTO "+c.table+
			" (StartTime, EndTime, DurationSec, Color, Lane, Message, InsertedAt) VALUES (?,?,?,?,?,?,?)")
	if err != nil {
		c.logger.Error("prepare batch", zap.Error(err), zap.String("table", c.table))
		return fmt.Errorf("prepare batch: %w", err)
	}

	now := time.Now()
	for i := range events {
		ev := &events[i]
		if err := batch.Append(
			ev.Start,
			ev.End,
			int64(ev.End.Sub(ev.Start)/time.Second),
			int32(ev.Color),
			int32(ev.Lane),
			string(ev.Message),
			now,
		); err != nil {
			c.logger.Error("append batch", zap.Error(err), zap.Int("event", i))
			return fmt.Errorf("append: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		c.logger.Error("send batch", zap.Error(err), zap.String("table", c.table))
		return fmt.Errorf("send batch: %w", err)
	}
	c.logger.Info("События выгружены в ClickHouse", zap.Int("count", len(events)), zap.String("table", c.table))
	return nil
}

// Close закрывает соединение с ClickHouse
func (c *Client) Close() error {
	return c.conn.Close()
}
