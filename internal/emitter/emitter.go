package emitter

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"LogTimelineChart/internal/models"
)

// Геометрия канвы: ширина одной дорожки и минимальная ширина документа.
const (
	laneWidth      = 20
	minGlobalWidth = 400
)

// Block — один прямоугольник на канве. Сериализуется в JSON внутри
// скрипта страницы, имена полей совпадают с ожиданиями скрипта.
type Block struct {
	Color  int    `json:"color"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Msg    string `json:"msg"`
	Top    int64  `json:"top"`    // секунд от глобального начала
	Height int64  `json:"height"` // длительность в секундах
	Lane   int    `json:"lane"`
}

// viewData — данные страницы для шаблона.
type viewData struct {
	GlobalWidth  int
	GlobalHeight int64
	LaneWidth    int
	Colors       []string
	Blocks       []Block
}

// Emitter рендерит упакованную диаграмму в самодостаточный HTML-документ.
type Emitter struct {
	colors []string // цвета отрисовки в порядке правил
	logger *zap.Logger
}

// New создает emitter для заданного списка цветов.
func New(colors []string, logger *zap.Logger) *Emitter {
	return &Emitter{colors: colors, logger: logger}
}

// Emit записывает HTML-документ диаграммы в w.
func (e *Emitter) Emit(w io.Writer, ch *models.Chart) error {
	width := ch.TotalLanes * laneWidth
	if width < minGlobalWidth {
		width = minGlobalWidth
	}

	blocks := make([]Block, 0, len(ch.Events))
	for i := range ch.Events {
		ev := &ch.Events[i]
		blocks = append(blocks, Block{
			Color:  ev.Color,
			Start:  formatTime(ev.Start),
			End:    formatTime(ev.End),
			Msg:    string(ev.Message),
			Top:    int64(ev.Start.Sub(ch.GlobalStart) / time.Second),
			Height: int64(ev.End.Sub(ev.Start) / time.Second),
			Lane:   ev.Lane,
		})
	}

	data := viewData{
		GlobalWidth:  width,
		GlobalHeight: int64(ch.Duration() / time.Second),
		LaneWidth:    laneWidth,
		Colors:       e.colors,
		Blocks:       blocks,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	e.logger.Info("HTML-документ сформирован",
		zap.Int("blocks", len(blocks)),
		zap.Int("width", width),
		zap.Int64("height", data.GlobalHeight))
	return nil
}

// formatTime печатает метку времени без дробной части, если её нет.
func formatTime(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02 15:04:05.999999999")
}
