package emitter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"LogTimelineChart/internal/models"
)

func testChart() *models.Chart {
	start := time.Date(1, time.January, 1, 12, 0, 5, 0, time.UTC)
	return &models.Chart{
		Events: []models.Event{
			{
				Start:   start,
				End:     start.Add(5 * time.Second),
				Message: []byte("12:00:10 compile foo took 5s"),
				Color:   0,
				Lane:    0,
			},
			{
				Start:   start.Add(10 * time.Second),
				End:     start.Add(15 * time.Second),
				Message: []byte("12:00:20 link bar took 5s"),
				Color:   1,
				Lane:    0,
			},
		},
		TotalLanes:  1,
		GlobalStart: start,
		GlobalEnd:   start.Add(15 * time.Second),
	}
}

func TestEmit_Document(t *testing.T) {
	var buf bytes.Buffer
	e := New([]string{"#111", "#222"}, zap.NewNop())
	if err := e.Emit(&buf, testChart()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	html := buf.String()

	// Одна дорожка: ширина прижимается к минимуму, высота = общая длительность
	for _, want := range []string{
		`width="400"`,
		`height="15"`,
		`var laneWidth = 20;`,
		`["#111","#222"]`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output must contain %q", want)
		}
	}
}

func TestEmit_Blocks(t *testing.T) {
	var buf bytes.Buffer
	e := New([]string{"#111", "#222"}, zap.NewNop())
	if err := e.Emit(&buf, testChart()); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	html := buf.String()

	// Второй блок: смещение 10с от глобального начала, высота 5с
	for _, want := range []string{
		`"color":0`,
		`"color":1`,
		`"top":10`,
		`"height":5`,
		`"lane":0`,
		`"start":"0001-01-01 12:00:05"`,
		"compile foo took 5s",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("output must contain %q", want)
		}
	}
}

func TestEmit_WideChart(t *testing.T) {
	ch := testChart()
	ch.TotalLanes = 30 // 30*20 = 600 больше минимума
	var buf bytes.Buffer
	e := New([]string{"#111", "#222"}, zap.NewNop())
	if err := e.Emit(&buf, ch); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(buf.String(), `width="600"`) {
		t.Fatal("expected the canvas to widen with the lane count")
	}
}

func TestEmit_MessageIsEscaped(t *testing.T) {
	ch := testChart()
	ch.Events[0].Message = []byte(`evil '</script>' quote`)
	var buf bytes.Buffer
	e := New([]string{"#111", "#222"}, zap.NewNop())
	if err := e.Emit(&buf, ch); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if strings.Contains(buf.String(), "'</script>'") {
		t.Fatal("message must not reach the script context unescaped")
	}
}
