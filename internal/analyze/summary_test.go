package analyze

import (
	"testing"
	"time"

	"github.com/loglens/loglens/internal/model"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := New(nil).Summarize()
	if summary.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0", summary.TotalRecords)
	}
	if summary.DateRange != "No data" {
		t.Errorf("DateRange = %q, want No data", summary.DateRange)
	}
}

func TestSummarize(t *testing.T) {
	records := []*model.LogRecord{
		{
			ClientAddress: "1.1.1.1",
			OccurredAt:    time.Date(2025, time.July, 3, 10, 0, 0, 0, time.UTC),
			ResponseSize:  "100",
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
			SourceFile:    "b-access.log",
		},
		{
			ClientAddress: "2.2.2.2",
			OccurredAt:    time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC),
			ResponseSize:  "-",
			UserAgent:     model.Placeholder,
			SourceFile:    "a-access.log",
		},
		{
			ClientAddress: "1.1.1.1",
			OccurredAt:    time.Date(2025, time.July, 5, 23, 0, 0, 0, time.UTC),
			ResponseSize:  "300",
			UserAgent:     "Googlebot/2.1 (+http://www.google.com/bot.html)",
			SourceFile:    "b-access.log",
		},
	}

	summary := New(records).Summarize()

	if summary.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", summary.TotalRecords)
	}
	if summary.UniqueAddresses != 2 {
		t.Errorf("UniqueAddresses = %d, want 2", summary.UniqueAddresses)
	}
	if summary.DateRange != "2025-07-01 to 2025-07-05" {
		t.Errorf("DateRange = %q", summary.DateRange)
	}
	if len(summary.FilesProcessed) != 2 || summary.FilesProcessed[0] != "b-access.log" {
		t.Errorf("FilesProcessed = %v, want first-seen order", summary.FilesProcessed)
	}

	// The placeholder size is not sampled.
	if summary.Transfer.Sampled != 2 {
		t.Errorf("Transfer.Sampled = %d, want 2", summary.Transfer.Sampled)
	}
	if summary.Transfer.TotalBytes != 400 {
		t.Errorf("Transfer.TotalBytes = %d, want 400", summary.Transfer.TotalBytes)
	}
	if summary.Transfer.MeanBytes != 200 {
		t.Errorf("Transfer.MeanBytes = %v, want 200", summary.Transfer.MeanBytes)
	}

	devices := make(map[string]int)
	for _, d := range summary.Devices {
		devices[d.Device] = d.Count
	}
	if devices["Unknown"] != 1 {
		t.Errorf("Unknown devices = %d, want 1", devices["Unknown"])
	}
	if devices["Bot"] != 1 {
		t.Errorf("Bot devices = %d, want 1", devices["Bot"])
	}
	if devices["Desktop"] != 1 {
		t.Errorf("Desktop devices = %d, want 1", devices["Desktop"])
	}
}
