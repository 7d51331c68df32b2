// Package chart рисует круговые диаграммы распределения городов в HTML-страницу.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

// Pie описывает одну диаграмму на странице.
type Pie struct {
	Title        string
	Distribution models.Distribution
}

// Renderer сохраняет диаграммы в файл и открывает его в браузере.
type Renderer struct {
	PageTitle string
	// Open открывает готовый файл; по умолчанию browser.OpenFile.
	Open func(path string) error
}

func NewRenderer(pageTitle string) *Renderer {
	return &Renderer{PageTitle: pageTitle, Open: browser.OpenFile}
}

// Render пишет страницу с диаграммами в w.
func (r *Renderer) Render(w io.Writer, pies ...Pie) error {
	page := components.NewPage()
	page.PageTitle = r.PageTitle
	page.SetLayout(components.PageFlexLayout)

	for _, p := range pies {
		page.AddCharts(newPie(p))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

// Show рендерит диаграммы в path (во временный файл, если path пустой) и открывает их.
// Возвращает путь к файлу.
func (r *Renderer) Show(path string, pies ...Pie) (string, error) {
	var (
		f   *os.File
		err error
	)
	if path == "" {
		f, err = os.CreateTemp("", "friends-cities-*.html")
	} else {
		f, err = os.Create(path)
	}
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}

	if err := r.Render(f, pies...); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close chart file: %w", err)
	}

	logrus.Debugf("Диаграммы записаны в %s", f.Name())
	if r.Open != nil {
		if err := r.Open(f.Name()); err != nil {
			return f.Name(), fmt.Errorf("open chart: %w", err)
		}
	}
	return f.Name(), nil
}

func newPie(p Pie) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "550px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: p.Title, Left: "center"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}: {c} ({d}%)"}),
	)

	pie.AddSeries(p.Title, pieData(p.Distribution)).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
			charts.WithPieChartOpts(opts.PieChart{Radius: "60%"}),
		)
	return pie
}

func pieData(dist models.Distribution) []opts.PieData {
	data := make([]opts.PieData, 0, len(dist.Shares))
	for _, share := range dist.Shares {
		data = append(data, opts.PieData{Name: share.Label, Value: share.Count})
	}
	return data
}
