package wagerservice

import (
	"bytes"
	"context"
	"fmt"
	"math"

	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartBackground = drawing.ColorFromHex("10231c")
	chartText       = drawing.ColorFromHex("e8e4d8")
	chartUp         = drawing.ColorFromHex("3f9b6b")
	chartDown       = drawing.ColorFromHex("c2553d")
)

// BalanceChart renders every player's combined main and side balance as a PNG bar chart.
func (s *WagerService) BalanceChart(ctx context.Context) ([]byte, error) {
	return RenderBalanceChart(s.Balances(ctx))
}

func RenderBalanceChart(balances []wagerdomain.Balance) ([]byte, error) {
	bars := make([]chart.Value, 0, len(balances))
	extent := 1.0
	for _, b := range balances {
		v, _ := b.Main.Add(b.Side).Float64()
		color := chartUp
		if v < 0 {
			color = chartDown
		}
		bars = append(bars, chart.Value{
			Label: b.Player.DisplayName(),
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
		extent = math.Max(extent, math.Abs(v))
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "no wagers", Value: 0})
	}

	graph := chart.BarChart{
		Title:      "Balances",
		Width:      800,
		Height:     400,
		BarWidth:   48,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		TitleStyle: chart.Style{FontColor: chartText},
		XAxis:      chart.Style{FontColor: chartText, StrokeColor: chartText},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: chartText, StrokeColor: chartText},
			Range: &chart.ContinuousRange{Min: -extent * 1.1, Max: extent * 1.1},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render balance chart: %w", err)
	}
	return buffer.Bytes(), nil
}
