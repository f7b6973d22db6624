package analyze

import (
	"fmt"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/mssola/useragent"

	"github.com/loglens/loglens/internal/model"
)

// Summarize describes the record set as a whole: totals, the calendar range
// covered, the files the records came from, transfer-size statistics over the
// numeric response sizes, and a device breakdown of the declared user agents.
func (a *Analyzer) Summarize() model.Summary {
	summary := model.Summary{TotalRecords: len(a.records)}
	if len(a.records) == 0 {
		summary.DateRange = "No data"
		return summary
	}

	addresses := make(map[string]bool)
	seenFiles := make(map[string]bool)
	minDay := a.records[0].OccurredAt
	maxDay := minDay

	for _, r := range a.records {
		addresses[r.ClientAddress] = true
		if !seenFiles[r.SourceFile] {
			seenFiles[r.SourceFile] = true
			summary.FilesProcessed = append(summary.FilesProcessed, r.SourceFile)
		}
		if r.OccurredAt.Before(minDay) {
			minDay = r.OccurredAt
		}
		if r.OccurredAt.After(maxDay) {
			maxDay = r.OccurredAt
		}
	}

	summary.UniqueAddresses = len(addresses)
	summary.DateRange = fmt.Sprintf("%s to %s",
		minDay.Format(FilterDateLayout), maxDay.Format(FilterDateLayout))
	summary.Transfer = a.transferStats()
	summary.Devices = a.deviceCounts()
	return summary
}

// transferStats computes size statistics over the records whose size token is
// numeric; placeholder sizes are left out of the sample.
func (a *Analyzer) transferStats() model.TransferStats {
	sizes := make([]float64, 0, len(a.records))
	var total int64
	for _, r := range a.records {
		n, err := strconv.ParseInt(r.ResponseSize, 10, 64)
		if err != nil {
			continue
		}
		total += n
		sizes = append(sizes, float64(n))
	}

	ts := model.TransferStats{TotalBytes: total, Sampled: len(sizes)}
	if len(sizes) == 0 {
		return ts
	}
	// stats errors only on empty input, which is handled above.
	ts.MeanBytes, _ = stats.Mean(sizes)
	ts.MedianBytes, _ = stats.Median(sizes)
	ts.P95Bytes, _ = stats.Percentile(sizes, 95)
	return ts
}

// deviceCounts buckets records into Desktop, Mobile, Bot and Unknown by
// parsing the declared user agent. This is looser than the software family
// classification and only feeds the summary view.
func (a *Analyzer) deviceCounts() []model.DeviceCount {
	counts := make(map[string]int)
	var order []string
	bump := func(device string) {
		if _, seen := counts[device]; !seen {
			order = append(order, device)
		}
		counts[device]++
	}

	for _, r := range a.records {
		if r.UserAgent == model.Placeholder || r.UserAgent == "" {
			bump("Unknown")
			continue
		}
		ua := useragent.New(r.UserAgent)
		switch {
		case ua.Bot():
			bump("Bot")
		case ua.Mobile():
			bump("Mobile")
		default:
			bump("Desktop")
		}
	}

	devices := make([]model.DeviceCount, 0, len(order))
	for _, device := range order {
		devices = append(devices, model.DeviceCount{Device: device, Count: counts[device]})
	}
	return devices
}
