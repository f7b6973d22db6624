package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loglens/loglens/internal/model"
)

type dataMsg struct {
	charts  *ChartsPayload
	summary *model.Summary
}

type errMsg struct {
	err error
}

type refreshedMsg struct {
	message string
}

// Dashboard is a read-only terminal view over a running loglens service.
type Dashboard struct {
	client      *Client
	granularity model.Granularity

	charts  *ChartsPayload
	summary *model.Summary
	status  string
	err     error

	width  int
	height int
}

// NewDashboard creates the dashboard model.
func NewDashboard(client *Client) *Dashboard {
	return &Dashboard{
		client:      client,
		granularity: model.GranularityHourly,
		status:      "loading...",
	}
}

// Init starts the first fetch.
func (d *Dashboard) Init() tea.Cmd {
	return d.fetch
}

func (d *Dashboard) fetch() tea.Msg {
	charts, err := d.client.Charts(d.granularity)
	if err != nil {
		return errMsg{err: err}
	}
	summary, err := d.client.Summary()
	if err != nil {
		return errMsg{err: err}
	}
	return dataMsg{charts: charts, summary: summary}
}

func (d *Dashboard) refresh() tea.Msg {
	message, err := d.client.Refresh()
	if err != nil {
		return errMsg{err: err}
	}
	return refreshedMsg{message: message}
}

// Update handles key presses and fetch results.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return d, tea.Quit
		case "r":
			d.status = "refreshing..."
			return d, d.refresh
		case "g":
			if d.granularity == model.GranularityHourly {
				d.granularity = model.GranularityDaily
			} else {
				d.granularity = model.GranularityHourly
			}
			d.status = "loading..."
			return d, d.fetch
		}
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
	case dataMsg:
		d.charts = msg.charts
		d.summary = msg.summary
		d.err = nil
		d.status = ""
	case refreshedMsg:
		d.status = msg.message
		return d, d.fetch
	case errMsg:
		d.err = msg.err
		d.status = ""
	}
	return d, nil
}
