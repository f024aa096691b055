package parser

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"LogTimelineChart/internal/config"
)

// Cutoff — общий порог в одну секунду. Используется в двух местах:
// события короче порога не попадают на диаграмму, а при упаковке дорожек
// перекрытие меньше порога позволяет переиспользовать дорожку.
const Cutoff = time.Second

// DurationRule — скомпилированное правило длительности.
// Индексы именованных групп h/m/s вычисляются один раз при компиляции;
// -1 означает, что группы в паттерне нет.
type DurationRule struct {
	re      *regexp.Regexp
	h, m, s int
}

// TimestampRule — единственное правило извлечения метки времени.
type TimestampRule struct {
	re     *regexp.Regexp
	format string
}

// ColorRule — скомпилированное правило окраски.
type ColorRule struct {
	re    *regexp.Regexp
	Color string
	Group int
}

// Set — скомпилированный набор правил из конфигурации.
// Порядок правил в списках совпадает с порядком в конфигурации.
type Set struct {
	Timestamp TimestampRule
	Durations []DurationRule
	Colors    []ColorRule
}

// Compile компилирует все паттерны конфигурации в набор правил.
// Любой некомпилируемый паттерн — ошибка, прогон должен быть прерван.
func Compile(cfg *config.Config) (*Set, error) {
	s := &Set{}

	tsRe, err := regexp.Compile(cfg.Timestamp.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compile timestamp pattern %q: %w", cfg.Timestamp.Pattern, err)
	}
	s.Timestamp = TimestampRule{re: tsRe, format: cfg.Timestamp.Format}

	s.Durations = make([]DurationRule, 0, len(cfg.Durations))
	for i, d := range cfg.Durations {
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile duration pattern %d %q: %w", i, d.Pattern, err)
		}
		s.Durations = append(s.Durations, DurationRule{
			re: re,
			h:  re.SubexpIndex("h"),
			m:  re.SubexpIndex("m"),
			s:  re.SubexpIndex("s"),
		})
	}

	s.Colors = make([]ColorRule, 0, len(cfg.Colors))
	for i, c := range cfg.Colors {
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile color pattern %d %q: %w", i, c.Pattern, err)
		}
		s.Colors = append(s.Colors, ColorRule{re: re, Color: c.Color, Group: c.Group})
	}

	return s, nil
}

// ColorGroup возвращает группу дорожек для правила цвета с индексом i.
func (s *Set) ColorGroup(i int) int {
	return s.Colors[i].Group
}

// ColorValues возвращает цвета отрисовки в порядке правил.
func (s *Set) ColorValues() []string {
	values := make([]string, len(s.Colors))
	for i := range s.Colors {
		values[i] = s.Colors[i].Color
	}
	return values
}

// GroupIDs возвращает уникальные группы правил цвета по возрастанию.
// Порядок фиксирует распределение смещений дорожек между группами.
func (s *Set) GroupIDs() []int {
	seen := make(map[int]bool, len(s.Colors))
	ids := make([]int, 0, len(s.Colors))
	for i := range s.Colors {
		if g := s.Colors[i].Group; !seen[g] {
			seen[g] = true
			ids = append(ids, g)
		}
	}
	sort.Ints(ids)
	return ids
}
