package stock

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/stocklens/internal/models"
)

const (
	gainColor = "16a34a" // green-600
	lossColor = "dc2626" // red-600
)

// RenderPriceChart renders a PNG line chart of the closes in c. The line is
// green when the period ended above where it started and red otherwise.
func RenderPriceChart(c *models.Chart) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no chart", models.ErrInvalidArgument)
	}

	xValues, closes := c.Closes()
	if len(closes) < 2 {
		return nil, fmt.Errorf("need at least 2 closes, got %d", len(closes))
	}

	color := gainColor
	if PeriodChange(c) < 0 {
		color = lossColor
	}

	dateFormat := "Jan 06"
	if c.Interval == "1d" || c.Interval == "1wk" {
		dateFormat = "02 Jan 06"
	}

	currency := c.Meta.Currency
	if currency == "" {
		currency = "USD"
	}

	priceSeries := chart.TimeSeries{
		Name: c.Symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(color),
			FillColor:   drawing.ColorFromHex(color).WithAlpha(40),
			StrokeWidth: 2,
		},
		XValues: xValues,
		YValues: closes,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s, %s)", c.Symbol, c.Range, currency),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(dateFormat)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{priceSeries},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
