package chart

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"LogTimelineChart/internal/models"
	"LogTimelineChart/internal/parser"
)

// ErrNoEvents возвращается, когда ни одна строка лога не дала события:
// без событий глобальный диапазон не определён и строить диаграмму не из чего.
var ErrNoEvents = errors.New("no chartable events in log")

// Строки длиннее этого лимита считаются повреждённым входом.
const maxLineBytes = 1 << 20

// Builder накапливает события и глобальный временной диапазон.
// Рассчитан на один прогон: Ingest по всем строкам, затем Build.
type Builder struct {
	rules  *parser.Set
	logger *zap.Logger

	events      []models.Event
	globalStart time.Time
	globalEnd   time.Time
}

// NewBuilder создает builder поверх скомпилированного набора правил.
func NewBuilder(rules *parser.Set, logger *zap.Logger) *Builder {
	return &Builder{rules: rules, logger: logger}
}

// Ingest читает лог построчно и превращает подходящие строки в события.
// Строки без длительности, короче порога или без метки времени пропускаются;
// совпавшая, но неразбираемая метка времени и событие без цвета — ошибки,
// прерывающие прогон.
func (b *Builder) Ingest(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	for sc.Scan() {
		// Scanner переиспользует буфер, а строка живёт в событии до конца прогона
		line := append([]byte(nil), sc.Bytes()...)
		if err := b.consume(line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	return nil
}

func (b *Builder) consume(line []byte) error {
	dur, ok := b.rules.MatchDuration(line)
	if !ok {
		return nil
	}
	if dur < parser.Cutoff {
		b.logger.Debug("Событие короче порога, строка пропущена", zap.Duration("duration", dur))
		return nil
	}
	ts, ok, err := b.rules.ResolveTimestamp(line)
	if err != nil {
		return err
	}
	if !ok {
		b.logger.Debug("Метка времени не найдена, строка пропущена", zap.ByteString("line", line))
		return nil
	}
	color, err := b.rules.ClassifyColor(line)
	if err != nil {
		return err
	}

	end := ts.Time
	start := end.Add(-dur)
	if len(b.events) == 0 || start.Before(b.globalStart) {
		b.globalStart = start
	}
	if len(b.events) == 0 || end.After(b.globalEnd) {
		b.globalEnd = end
	}
	b.events = append(b.events, models.Event{Start: start, End: end, Message: line, Color: color})
	return nil
}

// Build раскладывает накопленные события по дорожкам и возвращает
// готовую диаграмму. Пустой набор событий — ErrNoEvents.
func (b *Builder) Build() (*models.Chart, error) {
	if len(b.events) == 0 {
		return nil, ErrNoEvents
	}
	total := packLanes(b.events, b.rules)
	b.logger.Info("События разложены по дорожкам",
		zap.Int("events", len(b.events)),
		zap.Int("lanes", total),
		zap.Duration("span", b.globalEnd.Sub(b.globalStart)))
	return &models.Chart{
		Events:      b.events,
		TotalLanes:  total,
		GlobalStart: b.globalStart,
		GlobalEnd:   b.globalEnd,
	}, nil
}
