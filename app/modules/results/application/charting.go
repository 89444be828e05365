package resultsservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ChartPalette holds the colors used when rendering result charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	TextColor  drawing.Color
}

// DefaultChartPalette matches the web frontend's light theme.
var DefaultChartPalette = ChartPalette{
	Background: drawing.Color{R: 250, G: 250, B: 250, A: 255},
	Bar:        drawing.Color{R: 30, G: 100, B: 200, A: 255},
	TextColor:  drawing.Color{R: 40, G: 40, B: 40, A: 255},
}

// finishTimeBucketSeconds is the histogram bucket width (5 minutes).
const finishTimeBucketSeconds = 300

// GenerateFinishTimeChart renders a PNG histogram of finish times for the
// race, bucketed in five-minute bands. Races with no finished results get a
// small placeholder image instead of a render error.
func (s *ResultService) GenerateFinishTimeChart(ctx context.Context, raceID sharedtypes.RaceID) ([]byte, error) {
	finished, err := s.resultDB.ListFinishedOrdered(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished results: %w", err)
	}
	if len(finished) == 0 {
		return renderNoDataPlaceholder(DefaultChartPalette)
	}

	// Results arrive ordered by finish time, so the bucket range is just the
	// first and last entries.
	firstBucket := *finished[0].FinishTimeSeconds / finishTimeBucketSeconds
	lastBucket := *finished[len(finished)-1].FinishTimeSeconds / finishTimeBucketSeconds

	counts := make([]int, lastBucket-firstBucket+1)
	for i := range finished {
		bucket := *finished[i].FinishTimeSeconds / finishTimeBucketSeconds
		counts[bucket-firstBucket]++
	}

	bars := make([]chart.Value, len(counts))
	for i, count := range counts {
		startMin := (firstBucket + i) * finishTimeBucketSeconds / 60
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%dm", startMin),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   DefaultChartPalette.Bar,
				StrokeColor: DefaultChartPalette.Bar,
			},
		}
	}

	graph := chart.BarChart{
		Title:    "Finish time distribution",
		Width:    800,
		Height:   400,
		BarWidth: 30,
		Background: chart.Style{
			FillColor: DefaultChartPalette.Background,
		},
		Canvas: chart.Style{
			FillColor: DefaultChartPalette.Background,
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No finished results yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
