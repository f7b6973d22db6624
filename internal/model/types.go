package model

import "time"

// Placeholder is the token the access-log format uses for an absent field.
const Placeholder = "-"

// SoftwareFamily is the closed classification derived from a client's
// declared user-agent string.
type SoftwareFamily string

const (
	FamilyChrome       SoftwareFamily = "Chrome"
	FamilyFirefox      SoftwareFamily = "Firefox"
	FamilySafari       SoftwareFamily = "Safari"
	FamilyFacebookBot  SoftwareFamily = "Facebook Bot"
	FamilyBotOrCrawler SoftwareFamily = "Bot/Crawler"
	FamilyOther        SoftwareFamily = "Other"
	FamilyUnknown      SoftwareFamily = "Unknown"
)

// LogRecord is one successfully parsed access-log line. Records are immutable
// once constructed; aggregation only ever reads them.
type LogRecord struct {
	ClientAddress   string
	RawTimestamp    string    // timestamp exactly as it appeared in the line
	OccurredAt      time.Time // parsed date/time, offset token discarded
	Method          string
	Path            string
	ProtocolVersion string
	StatusCode      int
	ResponseSize    string // kept textual: the format uses "-" for "no value"
	Referer         string
	UserAgent       string
	SoftwareFamily  SoftwareFamily
	SourceFile      string
}

// Granularity is the unit of time bucketing for traffic aggregation.
type Granularity string

const (
	GranularityHourly Granularity = "hourly"
	GranularityDaily  Granularity = "daily"
)

// ParseGranularity normalizes a user-supplied granularity string.
// Anything other than "daily" means hourly.
func ParseGranularity(s string) Granularity {
	if s == string(GranularityDaily) {
		return GranularityDaily
	}
	return GranularityHourly
}

// FilterCriteria holds the optional record predicates. Zero values mean
// "no constraint"; predicates are combined with logical AND.
type FilterCriteria struct {
	Date    string // calendar date as "YYYY-MM-DD"
	Hour    *int   // hour of day, 0-23
	Address string // exact client address
	Family  string // exact software family
}

// TrafficBucket is one (bucket key, count) pair of a traffic series.
// The key is an hour of day ("0".."23") or a calendar date ("2006-01-02").
type TrafficBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TrafficSeries is the traffic-over-time aggregate view.
type TrafficSeries struct {
	Title   string          `json:"title"`
	Buckets []TrafficBucket `json:"buckets"`
}

// FrequencyEntry is one (key, count) pair of a frequency table.
type FrequencyEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// FrequencyTable is a top-N aggregate view sorted by count descending.
type FrequencyTable struct {
	Title   string           `json:"title"`
	Entries []FrequencyEntry `json:"entries"`
}

// CategoryCount is one (category, count) pair of a distribution.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryDistribution is an aggregate view with categories in first-seen order.
type CategoryDistribution struct {
	Title      string          `json:"title"`
	Categories []CategoryCount `json:"categories"`
}

// TransferStats summarizes the numeric response sizes of a record set.
// Records whose size token is the "-" placeholder are not sampled.
type TransferStats struct {
	TotalBytes  int64   `json:"total_bytes"`
	MeanBytes   float64 `json:"mean_bytes"`
	MedianBytes float64 `json:"median_bytes"`
	P95Bytes    float64 `json:"p95_bytes"`
	Sampled     int     `json:"sampled"`
}

// DeviceCount is one (device category, count) pair.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// Summary describes the currently loaded record set.
type Summary struct {
	TotalRecords    int           `json:"total_records"`
	UniqueAddresses int           `json:"unique_addresses"`
	DateRange       string        `json:"date_range"`
	FilesProcessed  []string      `json:"files_processed"`
	Transfer        TransferStats `json:"transfer"`
	Devices         []DeviceCount `json:"devices"`
}
