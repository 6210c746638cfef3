package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// WriteStatsChart renders the status breakdown as a PNG bar chart.
func WriteStatsChart(w io.Writer, stats domain.Stats) error {
	bars := []chart.Value{
		{Label: domain.StatusPending.Label(), Value: float64(stats.Pending)},
		{Label: domain.StatusCompleted.Label(), Value: float64(stats.Completed)},
		{Label: domain.StatusFailed.Label(), Value: float64(stats.Failed)},
	}

	barChart := chart.BarChart{
		Title: "Transactions par statut",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  800,
		Height: 400,
		Bars:   bars,
	}
	barChart.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("%.0f", vf)
		}
		return ""
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
