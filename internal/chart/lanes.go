package chart

import (
	"sort"
	"time"

	"LogTimelineChart/internal/models"
	"LogTimelineChart/internal/parser"
)

// packLanes назначает событиям номера дорожек и возвращает их общее число.
//
// События сортируются по началу по возрастанию, при равенстве — по концу
// по убыванию: из одновременно стартовавших первой кладётся самая долгая.
// Каждая группа правил цвета владеет своим пулом дорожек; дорожка хранит
// конец последнего положенного в неё события. Событие занимает первую
// дорожку, у которой конец отстоит от начала события меньше чем на Cutoff:
// это и свободная дорожка, и дорожка с перекрытием меньше допуска —
// такие события визуально сливаются в одну дорожку. Конец выбранной дорожки
// перезаписывается концом нового события (не max: более раннее окончание
// укорачивает дорожку — поведение сохранено ради совместимости раскладки).
// Затем группы по возрастанию идентификатора получают базовые смещения
// нарастающим итогом, и номер дорожки события становится глобальным.
func packLanes(events []models.Event, rules *parser.Set) int {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].End.After(events[j].End)
	})

	// Плотный массив пулов со словарём id группы → слот
	groupIDs := rules.GroupIDs()
	slot := make(map[int]int, len(groupIDs))
	for i, id := range groupIDs {
		slot[id] = i
	}
	pools := make([][]time.Time, len(groupIDs))
	groupOf := make([]int, len(events))

	for i := range events {
		ev := &events[i]
		g := slot[rules.ColorGroup(ev.Color)]
		groupOf[i] = g
		lanes := pools[g]
		placed := false
		for l := range lanes {
			if lanes[l].Sub(ev.Start) < parser.Cutoff {
				lanes[l] = ev.End
				ev.Lane = l
				placed = true
				break
			}
		}
		if !placed {
			ev.Lane = len(lanes)
			pools[g] = append(lanes, ev.End)
		}
	}

	// Смещения групп нарастающим итогом, в порядке возрастания id
	offsets := make([]int, len(groupIDs))
	total := 0
	for i := range pools {
		offsets[i] = total
		total += len(pools[i])
	}
	for i := range events {
		events[i].Lane += offsets[groupOf[i]]
	}
	return total
}
