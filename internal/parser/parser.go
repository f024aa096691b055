package parser

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ResolvedTimestamp — результат разбора метки времени конца события.
// TimeOnly означает, что формат не содержал даты и время привязано
// к опорной дате 0001-01-01, чтобы арифметика над метками оставалась корректной.
type ResolvedTimestamp struct {
	Time     time.Time
	TimeOnly bool
}

// MatchDuration перебирает правила длительности по порядку и возвращает
// длительность первого совпавшего; остальные правила не проверяются.
// Возвращает ok=false, если ни одно правило не совпало.
func (s *Set) MatchDuration(line []byte) (time.Duration, bool) {
	for i := range s.Durations {
		r := &s.Durations[i]
		m := r.re.FindSubmatch(line)
		if m == nil {
			continue
		}
		h := groupFloat(m, r.h)
		mins := groupFloat(m, r.m)
		sec := groupFloat(m, r.s)
		ns := math.Round((h*3600 + mins*60 + sec) * 1e9)
		return time.Duration(ns), true
	}
	return 0, false
}

// ResolveTimestamp извлекает и парсит метку времени из строки.
// Если паттерн не совпал со строкой — ok=false, строка просто не попадает
// на диаграмму. Ошибка возвращается только когда паттерн совпал, а текст
// не удалось разобрать по формату: это расхождение конфигурации и данных.
func (s *Set) ResolveTimestamp(line []byte) (ResolvedTimestamp, bool, error) {
	m := s.Timestamp.re.FindSubmatch(line)
	if m == nil || len(m) < 2 || m[1] == nil {
		return ResolvedTimestamp{}, false, nil
	}
	text := string(m[1])
	t, err := time.Parse(s.Timestamp.format, text)
	if err != nil {
		return ResolvedTimestamp{}, false, fmt.Errorf("parse timestamp %q with format %q: %w", text, s.Timestamp.format, err)
	}
	// Нулевой год означает формат без даты: привязываем время к опорной дате
	if t.Year() == 0 {
		t = time.Date(1, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		return ResolvedTimestamp{Time: t, TimeOnly: true}, true, nil
	}
	return ResolvedTimestamp{Time: t}, true, nil
}

// ClassifyColor возвращает индекс первого совпавшего правила цвета
// (порядок списка = приоритет). Отсутствие совпадения — ошибка:
// у каждого события на диаграмме должен быть явно заданный цвет.
func (s *Set) ClassifyColor(line []byte) (int, error) {
	for i := range s.Colors {
		if s.Colors[i].re.Match(line) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no color specified for %s", line)
}

// groupFloat читает группу захвата как число с плавающей точкой.
// Отсутствующая группа и нечисловой текст дают 0 — разбор необязательной
// компоненты длительности никогда не отбрасывает строку.
func groupFloat(m [][]byte, idx int) float64 {
	if idx < 0 || idx >= len(m) || m[idx] == nil {
		return 0
	}
	v, err := strconv.ParseFloat(string(m[idx]), 64)
	if err != nil {
		return 0
	}
	return v
}
