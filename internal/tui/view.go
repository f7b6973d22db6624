package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/loglens/loglens/internal/model"
)

const (
	chartHeight = 8
	maxTableLen = 10
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	familyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// View renders the dashboard.
func (d *Dashboard) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("Loglens - Access Log Dashboard"))
	if d.summary != nil {
		sections = append(sections, metaStyle.Render(fmt.Sprintf(
			"%d requests | %d unique addresses | %s",
			d.summary.TotalRecords, d.summary.UniqueAddresses, d.summary.DateRange)))
	}
	if d.err != nil {
		sections = append(sections, errorStyle.Render("error: "+d.err.Error()))
	}
	if d.status != "" {
		sections = append(sections, metaStyle.Render(d.status))
	}

	if d.charts != nil {
		sections = append(sections, panelStyle.Render(d.renderTraffic()))
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(d.renderAddresses()),
			" ",
			panelStyle.Render(d.renderSoftware()),
		)
		sections = append(sections, row)
	}

	sections = append(sections, helpStyle.Render("q quit | r refresh | g toggle granularity"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (d *Dashboard) renderTraffic() string {
	traffic := d.charts.Traffic
	if len(traffic.Buckets) == 0 {
		return traffic.Title
	}

	width := len(traffic.Buckets) * 2
	if width < 24 {
		width = 24
	}
	bc := barchart.New(width, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)
	for _, bucket := range traffic.Buckets {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: bucket.Key, Value: float64(bucket.Count), Style: barStyle},
			},
		})
	}
	bc.Draw()

	axis := buildAxisLabels(traffic)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(traffic.Title), bc.View(), metaStyle.Render(axis))
}

// buildAxisLabels spaces the first and last bucket keys under the chart.
func buildAxisLabels(traffic model.TrafficSeries) string {
	first := traffic.Buckets[0].Key
	last := traffic.Buckets[len(traffic.Buckets)-1].Key
	gap := len(traffic.Buckets)*2 - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	return first + strings.Repeat(" ", gap) + last
}

func (d *Dashboard) renderAddresses() string {
	addresses := d.charts.Addresses
	if len(addresses.Entries) == 0 {
		return addresses.Title
	}

	limit := len(addresses.Entries)
	if limit > maxTableLen {
		limit = maxTableLen
	}
	rows := make([]table.Row, 0, limit)
	for _, entry := range addresses.Entries[:limit] {
		rows = append(rows, table.Row{entry.Key, strconv.Itoa(entry.Count)})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Address", Width: 24},
			{Title: "Requests", Width: 9},
		}),
		table.WithRows(rows),
		table.WithHeight(limit),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(addresses.Title), t.View())
}

func (d *Dashboard) renderSoftware() string {
	software := d.charts.Software
	if len(software.Categories) == 0 {
		return software.Title
	}

	total := 0
	for _, category := range software.Categories {
		total += category.Count
	}

	lines := make([]string, 0, len(software.Categories)+1)
	lines = append(lines, titleStyle.Render(software.Title))
	for _, category := range software.Categories {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(category.Count) / float64(total)
		}
		bar := strings.Repeat("█", int(pct)/5)
		lines = append(lines, fmt.Sprintf("%-14s %6d %5.1f%% %s",
			category.Category, category.Count, pct, familyStyle.Render(bar)))
	}
	return strings.Join(lines, "\n")
}
