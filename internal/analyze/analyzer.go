package analyze

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/loglens/loglens/internal/model"
)

// FilterDateLayout is the calendar-date layout accepted by filter criteria.
const FilterDateLayout = "2006-01-02"

const noDataTitle = "No data available"

// Analyzer derives aggregate views from a fixed record sequence. It never
// mutates records; every method is a pure function of the sequence and its
// own parameters.
type Analyzer struct {
	records []*model.LogRecord
}

// New creates an analyzer over records.
func New(records []*model.LogRecord) *Analyzer {
	return &Analyzer{records: records}
}

// ApplyFilters returns the records satisfying every non-zero predicate in
// criteria, preserving input order. An unparsable date string disables the
// date predicate rather than failing; with no active predicates the input
// sequence is returned unchanged.
func (a *Analyzer) ApplyFilters(criteria model.FilterCriteria) []*model.LogRecord {
	filtered := a.records

	if criteria.Date != "" {
		if target, err := time.Parse(FilterDateLayout, criteria.Date); err == nil {
			ty, tm, td := target.Date()
			filtered = keep(filtered, func(r *model.LogRecord) bool {
				y, m, d := r.OccurredAt.Date()
				return y == ty && m == tm && d == td
			})
		}
	}
	if criteria.Hour != nil {
		hour := *criteria.Hour
		filtered = keep(filtered, func(r *model.LogRecord) bool {
			return r.OccurredAt.Hour() == hour
		})
	}
	if criteria.Address != "" {
		filtered = keep(filtered, func(r *model.LogRecord) bool {
			return r.ClientAddress == criteria.Address
		})
	}
	if criteria.Family != "" {
		filtered = keep(filtered, func(r *model.LogRecord) bool {
			return string(r.SoftwareFamily) == criteria.Family
		})
	}

	return filtered
}

func keep(records []*model.LogRecord, pred func(*model.LogRecord) bool) []*model.LogRecord {
	out := make([]*model.LogRecord, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// TrafficOverTime buckets the records by time. Hourly granularity buckets by
// hour of day and always emits all 24 buckets in order, ignoring the date, so
// the same hour on different days lands in one bucket. Daily granularity
// emits only the dates that occur, ascending.
func (a *Analyzer) TrafficOverTime(granularity model.Granularity) model.TrafficSeries {
	if len(a.records) == 0 {
		return model.TrafficSeries{Title: noDataTitle}
	}
	if granularity == model.GranularityDaily {
		return a.dailyTraffic()
	}
	return a.hourlyTraffic()
}

func (a *Analyzer) hourlyTraffic() model.TrafficSeries {
	var counts [24]int
	for _, r := range a.records {
		counts[r.OccurredAt.Hour()]++
	}

	buckets := make([]model.TrafficBucket, 24)
	for hour := 0; hour < 24; hour++ {
		buckets[hour] = model.TrafficBucket{Key: strconv.Itoa(hour), Count: counts[hour]}
	}
	return model.TrafficSeries{Title: "Traffic by Hour", Buckets: buckets}
}

func (a *Analyzer) dailyTraffic() model.TrafficSeries {
	counts := make(map[string]int)
	for _, r := range a.records {
		counts[r.OccurredAt.Format(FilterDateLayout)]++
	}

	// Lexicographic order of YYYY-MM-DD keys is chronological.
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	buckets := make([]model.TrafficBucket, 0, len(days))
	for _, day := range days {
		buckets = append(buckets, model.TrafficBucket{Key: day, Count: counts[day]})
	}
	return model.TrafficSeries{Title: "Traffic by Day", Buckets: buckets}
}

// AddressFrequency counts records per client address and returns the topN
// busiest, count descending with ties broken by first appearance in the
// record sequence. A non-positive topN means the default limit.
func (a *Analyzer) AddressFrequency(topN int) model.FrequencyTable {
	if len(a.records) == 0 {
		return model.FrequencyTable{Title: noDataTitle}
	}
	if topN <= 0 {
		topN = model.DefaultTopAddresses
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, r := range a.records {
		if _, seen := counts[r.ClientAddress]; !seen {
			firstSeen[r.ClientAddress] = i
		}
		counts[r.ClientAddress]++
	}

	entries := make([]model.FrequencyEntry, 0, len(counts))
	for addr, count := range counts {
		entries = append(entries, model.FrequencyEntry{Key: addr, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Key] < firstSeen[entries[j].Key]
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return model.FrequencyTable{
		Title:   fmt.Sprintf("Top %d IP Addresses", topN),
		Entries: entries,
	}
}

// SoftwareDistribution counts records per software family, with families in
// first-seen order.
func (a *Analyzer) SoftwareDistribution() model.CategoryDistribution {
	if len(a.records) == 0 {
		return model.CategoryDistribution{Title: noDataTitle}
	}

	counts := make(map[model.SoftwareFamily]int)
	var order []model.SoftwareFamily
	for _, r := range a.records {
		if _, seen := counts[r.SoftwareFamily]; !seen {
			order = append(order, r.SoftwareFamily)
		}
		counts[r.SoftwareFamily]++
	}

	categories := make([]model.CategoryCount, 0, len(order))
	for _, family := range order {
		categories = append(categories, model.CategoryCount{
			Category: string(family),
			Count:    counts[family],
		})
	}
	return model.CategoryDistribution{
		Title:      "Browser Usage Distribution",
		Categories: categories,
	}
}

// EffectiveGranularity applies the dashboard's override policy: a date filter
// without an hour filter forces hourly buckets (one day spread over its
// hours), an hour filter without a date filter forces daily buckets (one hour
// tracked across days). Otherwise the requested granularity is honored.
func EffectiveGranularity(requested model.Granularity, criteria model.FilterCriteria) model.Granularity {
	hasDate := criteria.Date != ""
	hasHour := criteria.Hour != nil
	switch {
	case hasDate && !hasHour:
		return model.GranularityHourly
	case hasHour && !hasDate:
		return model.GranularityDaily
	default:
		return requested
	}
}
