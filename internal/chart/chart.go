// Package chart renders the per-location case-evolution charts to a
// standalone interactive HTML file.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/jgehrcke/covid-19-analysis/internal/series"
)

// Input bundles everything drawn for one resolved location.
type Input struct {
	Key          string
	Total        series.Series
	Daily        series.Series
	Smoothed     series.Series // trailing mean of Daily; may be empty
	Fitted       series.Series // exponential fit of Daily; may be empty
	DoublingDays float64       // 0 when no fit was possible
}

// WriteHTML renders the charts to plot-<key>.html under dir and returns the
// file path.
func WriteHTML(dir string, in Input) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("plot-%s.html", in.Key))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := Render(f, in); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}

// Render writes the chart page HTML for one location.
func Render(w io.Writer, in Input) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("COVID-19 cases: %s", strings.ToUpper(in.Key))
	page.AddCharts(totalChart(in), dailyChart(in))
	return page.Render(w)
}

func totalChart(in Input) *charts.Line {
	line := charts.NewLine()
	title := opts.Title{
		Title:    fmt.Sprintf("%s: evolution of total case count", strings.ToUpper(in.Key)),
		Subtitle: subtitle(),
	}
	line.SetGlobalOptions(append(baseChartOptions(), charts.WithTitleOpts(title))...)
	line.SetXAxis(dateLabels(in.Total)).
		AddSeries("confirmed, total", lineData(in.Total),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	return line
}

func dailyChart(in Input) *charts.Line {
	line := charts.NewLine()

	title := fmt.Sprintf("%s: newly confirmed cases per day", strings.ToUpper(in.Key))
	sub := subtitle()
	if in.DoublingDays > 0 && !math.IsInf(in.DoublingDays, 1) {
		sub = fmt.Sprintf("exponential fit: doubling time %.1f days · %s", in.DoublingDays, sub)
	}
	line.SetGlobalOptions(append(baseChartOptions(),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: sub}))...)

	line.SetXAxis(dateLabels(in.Daily)).
		AddSeries("confirmed, per day", lineData(in.Daily),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	if in.Smoothed.Len() > 0 {
		line.AddSeries("trailing mean", lineData(in.Smoothed),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	if in.Fitted.Len() > 0 {
		line.AddSeries("exponential fit", lineData(in.Fitted),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return line
}

func baseChartOptions() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: "1000px", Height: "450px"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "log", Name: "confirmed cases"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "date"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	}
}

func subtitle() string {
	return fmt.Sprintf("data: github.com/CSSEGISandData/COVID-19 · generated %s",
		clock.Now().UTC().Format("2006-01-02 15:04 UTC"))
}

func dateLabels(s series.Series) []string {
	labels := make([]string, 0, len(s.Dates))
	for _, d := range s.Dates {
		labels = append(labels, d.Format("2006-01-02"))
	}
	return labels
}

// lineData converts series values to chart points. NaN samples become null
// points, which echarts draws as gaps.
func lineData(s series.Series) []opts.LineData {
	data := make([]opts.LineData, 0, len(s.Values))
	for _, v := range s.Values {
		if math.IsNaN(v) {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}
