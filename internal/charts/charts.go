package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/chandara/moneytrack_bot/internal/service"
)

// Generator renders report data as PNG images for the chat view.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders the per-category share of one transaction type.
// Returns nil bytes when there is nothing to draw.
func (g *Generator) CategoryPie(entries []service.CategoryTotal, title string) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(entries))
	for _, entry := range entries {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s%%)", entry.Name, entry.Share.StringFixed(1)),
			Value: entry.Amount.InexactFloat64(),
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// TotalsBar renders total income against total expense.
func (g *Generator) TotalsBar(totals service.Totals) ([]byte, error) {
	graph := chart.BarChart{
		Title:    "Income vs Expense",
		Width:    600,
		Height:   400,
		BarWidth: 120,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		Bars: []chart.Value{
			{
				Label: "Income",
				Value: totals.Income.InexactFloat64(),
				Style: chart.Style{
					FillColor:   chart.ColorGreen,
					StrokeColor: chart.ColorGreen,
				},
			},
			{
				Label: "Expense",
				Value: totals.Expense.InexactFloat64(),
				Style: chart.Style{
					FillColor:   chart.ColorRed,
					StrokeColor: chart.ColorRed,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
