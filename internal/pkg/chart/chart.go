package chart

import (
	"bytes"
	"fmt"
	"io"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	pageTitle   = "Diagnostic écologique"
	barTitle    = "Score d’impact par catégorie"
	radarTitle  = "Profil écologique"
	seriesName  = "Score"
	chartWidth  = "720px"
	chartHeight = "420px"

	ContentType   = "text/html; charset=utf-8"
	FileExtension = ".html"
)

// Render writes an HTML page holding the bar and radar charts of the scores.
func Render(w io.Writer, scores entity.ScoreSet) error {
	if len(scores) == 0 {
		return fmt.Errorf("%w: no scores to chart", entity.ErrMissingField)
	}

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(
		NewBar(scores),
		NewRadar(scores),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

// HTML renders the charts page into memory.
func HTML(scores entity.ScoreSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, scores); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewBar builds the per-category bar chart. Bars are coloured by impact.
func NewBar(scores entity.ScoreSet) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    barTitle,
			Subtitle: "1 = impact faible, 3 = impact élevé",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: 0,
			Max: entity.MaxScore,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	ordered := scores.Ordered()
	labels := make([]string, 0, len(ordered))
	items := make([]opts.BarData, 0, len(ordered))
	for _, s := range ordered {
		labels = append(labels, s.Label)
		items = append(items, opts.BarData{
			Value:     s.Score,
			ItemStyle: &opts.ItemStyle{Color: Color(s.Score)},
		})
	}

	bar.SetXAxis(labels).AddSeries(seriesName, items)
	return bar
}

// NewRadar builds the radar chart of the ecological profile.
func NewRadar(scores entity.ScoreSet) *charts.Radar {
	ordered := scores.Ordered()
	indicators := make([]*opts.Indicator, 0, len(ordered))
	values := make([]float32, 0, len(ordered))
	for _, s := range ordered {
		indicators = append(indicators, &opts.Indicator{Name: s.Label, Min: 0, Max: entity.MaxScore})
		values = append(values, float32(s.Score))
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: radarTitle}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			SplitNumber: entity.MaxScore,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	radar.AddSeries(seriesName, []opts.RadarData{{Name: seriesName, Value: values}})
	return radar
}

// Color maps a score to a traffic-light colour.
func Color(score int) string {
	switch score {
	case 1:
		return "#4caf50"
	case 2:
		return "#ffc107"
	default:
		return "#e53935"
	}
}
