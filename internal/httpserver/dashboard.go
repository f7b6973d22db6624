package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loglens/loglens/internal/analyze"
	"github.com/loglens/loglens/internal/model"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardData struct {
	Granularity  model.Granularity
	TotalRecords int
	UniqueIPs    int
	DateRange    string
	TrafficJSON  template.JS
	AddrJSON     template.JS
	SoftwareJSON template.JS
}

func (s *Server) handleDashboard(c *gin.Context) {
	granularity, traffic, addresses, software := s.chartData(c)
	summary := analyze.New(s.source.Current().Records).Summarize()

	data := dashboardData{
		Granularity:  granularity,
		TotalRecords: summary.TotalRecords,
		UniqueIPs:    summary.UniqueAddresses,
		DateRange:    summary.DateRange,
		TrafficJSON:  marshalJS(traffic),
		AddrJSON:     marshalJS(addresses),
		SoftwareJSON: marshalJS(software),
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(c.Writer, data); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func marshalJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return template.JS(b)
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Access Log Analyzer</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
body { font-family: sans-serif; margin: 2rem; background: #f7f7f7; color: #222; }
header { margin-bottom: 1.5rem; }
.meta { color: #666; }
.charts { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; }
.panel { background: #fff; border: 1px solid #ddd; border-radius: 6px; padding: 1rem; }
.panel.wide { grid-column: 1 / -1; }
a { color: #2563eb; }
</style>
</head>
<body>
<header>
  <h1>Access Log Analyzer</h1>
  <p class="meta">
    {{.TotalRecords}} requests &middot; {{.UniqueIPs}} unique addresses &middot; {{.DateRange}}
    &middot; granularity:
    <a href="/?granularity=hourly">hourly</a> |
    <a href="/?granularity=daily">daily</a>
    &middot; <a href="/api/refresh">refresh</a>
  </p>
</header>
<div class="charts">
  <div class="panel wide"><canvas id="traffic"></canvas></div>
  <div class="panel"><canvas id="addresses"></canvas></div>
  <div class="panel"><canvas id="software"></canvas></div>
</div>
<script>
const traffic = {{.TrafficJSON}};
const addresses = {{.AddrJSON}};
const software = {{.SoftwareJSON}};

new Chart(document.getElementById("traffic"), {
  type: "line",
  data: {
    labels: (traffic.buckets || []).map(b => b.key),
    datasets: [{ label: traffic.title, data: (traffic.buckets || []).map(b => b.count), fill: false }]
  },
  options: { plugins: { title: { display: true, text: traffic.title } } }
});

new Chart(document.getElementById("addresses"), {
  type: "bar",
  data: {
    labels: (addresses.entries || []).map(e => e.key),
    datasets: [{ label: addresses.title, data: (addresses.entries || []).map(e => e.count) }]
  },
  options: { indexAxis: "y", plugins: { title: { display: true, text: addresses.title } } }
});

new Chart(document.getElementById("software"), {
  type: "pie",
  data: {
    labels: (software.categories || []).map(s => s.category),
    datasets: [{ data: (software.categories || []).map(s => s.count) }]
  },
  options: { plugins: { title: { display: true, text: software.title } } }
});
</script>
</body>
</html>
`
