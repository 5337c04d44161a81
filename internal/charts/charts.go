// Package charts renders PNG charts for the dashboard from engine outputs.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lalax124/arthaai/internal/finance"
	"github.com/lalax124/arthaai/internal/models"
)

// RenderGrowthChart renders the investment growth projection as a PNG
// line chart with total value (solid) and contributions (dashed).
func RenderGrowthChart(points []finance.ProjectionPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 projection points, got %d", len(points))
	}

	years := make([]float64, len(points))
	values := make([]float64, len(points))
	contributions := make([]float64, len(points))
	for i, p := range points {
		years[i] = float64(p.Year)
		values[i] = p.Value
		contributions[i] = p.Contributions
	}

	graph := chart.Chart{
		Title:  "Investment Growth Projection",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Years",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Total Value",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("4caf50"),
					StrokeWidth: 3,
				},
				XValues: years,
				YValues: values,
			},
			chart.ContinuousSeries{
				Name: "Total Contributions",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("2196f3"),
					StrokeWidth:     2,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: years,
				YValues: contributions,
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAmortizationChart renders the remaining balance of a loan over
// the life of its amortization schedule.
func RenderAmortizationChart(schedule []finance.AmortizationRow) ([]byte, error) {
	if len(schedule) < 2 {
		return nil, fmt.Errorf("need at least 2 schedule rows, got %d", len(schedule))
	}

	months := make([]float64, len(schedule))
	balances := make([]float64, len(schedule))
	for i, row := range schedule {
		months[i] = float64(row.Month)
		balances[i] = row.RemainingBalance
	}

	graph := chart.Chart{
		Title:  "Loan Balance Over Time",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Month",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Remaining Balance",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("e53935"),
					StrokeWidth: 2.5,
				},
				XValues: months,
				YValues: balances,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderExpensePie renders expenses by category as a PNG pie chart
func RenderExpensePie(expenses *models.CategoryMap) ([]byte, error) {
	if expenses.Len() == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	values := make([]chart.Value, 0, expenses.Len())
	expenses.Each(func(name string, amount float64) {
		if amount > 0 {
			values = append(values, chart.Value{Label: name, Value: amount})
		}
	})
	if len(values) == 0 {
		return nil, fmt.Errorf("no positive expenses to chart")
	}

	pie := chart.PieChart{
		Title:  "Expenses by Category",
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
