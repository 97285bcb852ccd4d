// Package charts renders the PNG that accompanies the monthly report.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/expenselog_bot/internal/service"
)

// The chart gets unreadable past a handful of bars; everything else is
// folded into one remainder bar.
const maxBars = 8

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// MonthBreakdown renders a per-category bar chart for the month report.
// Returns nil bytes when there is nothing to plot.
func (r *Renderer) MonthBreakdown(report *service.Report) ([]byte, error) {
	rows := report.SortedBreakdown()
	if len(rows) == 0 {
		return nil, nil
	}

	if len(rows) > maxBars {
		rest := 0.0
		for _, row := range rows[maxBars-1:] {
			rest += row.Amount
		}
		rows = append(rows[:maxBars-1:maxBars-1], service.CategoryTotal{
			Label:  "…",
			Amount: rest,
		})
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, chart.Value{
			Label: row.Label,
			Value: row.Amount,
			Style: chart.Style{
				FontSize: 10,
			},
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Spending by category, %s", report.Period),
		Width:    900,
		Height:   500,
		BarWidth: 70,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.Style{
			FontSize:  10,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  10,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render month breakdown: %w", err)
	}

	return buffer.Bytes(), nil
}
