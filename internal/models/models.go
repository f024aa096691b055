package models

import "time"

// Event — один интервал на диаграмме, построенный из одной строки лога.
// Message хранит исходные байты строки, кодировка на этом этапе не проверяется.
// Все поля, кроме Lane, неизменны после создания; Lane заполняет упаковщик дорожек.
type Event struct {
	Start   time.Time
	End     time.Time // End = Start + длительность, всегда End >= Start
	Message []byte
	Color   int // индекс правила цвета из конфигурации
	Lane    int // итоговый глобальный номер дорожки
}

// Chart — результат полного прогона: события с назначенными дорожками
// и общий временной диапазон по всем принятым событиям.
type Chart struct {
	Events      []Event
	TotalLanes  int
	GlobalStart time.Time // минимальное начало среди принятых событий
	GlobalEnd   time.Time // максимальный конец среди принятых событий
}

// Duration возвращает полную длительность диаграммы.
func (c *Chart) Duration() time.Duration {
	return c.GlobalEnd.Sub(c.GlobalStart)
}
