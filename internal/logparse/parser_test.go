package logparse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loglens/loglens/internal/model"
)

func TestParseCombinedLine(t *testing.T) {
	p := NewParser()

	line := `173.252.95.18 - - [31/Jul/2025:17:03:16 -0700] "GET /rental HTTP/1.1" 301 292 "-" "facebookexternalhit/1.1"`
	record, err := p.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if record.ClientAddress != "173.252.95.18" {
		t.Errorf("ClientAddress = %q, want %q", record.ClientAddress, "173.252.95.18")
	}
	if record.RawTimestamp != "31/Jul/2025:17:03:16 -0700" {
		t.Errorf("RawTimestamp = %q, want %q", record.RawTimestamp, "31/Jul/2025:17:03:16 -0700")
	}
	want := time.Date(2025, time.July, 31, 17, 3, 16, 0, time.UTC)
	if !record.OccurredAt.Equal(want) {
		t.Errorf("OccurredAt = %v, want %v", record.OccurredAt, want)
	}
	if record.Method != "GET" {
		t.Errorf("Method = %q, want GET", record.Method)
	}
	if record.Path != "/rental" {
		t.Errorf("Path = %q, want /rental", record.Path)
	}
	if record.ProtocolVersion != "HTTP/1.1" {
		t.Errorf("ProtocolVersion = %q, want HTTP/1.1", record.ProtocolVersion)
	}
	if record.StatusCode != 301 {
		t.Errorf("StatusCode = %d, want 301", record.StatusCode)
	}
	if record.ResponseSize != "292" {
		t.Errorf("ResponseSize = %q, want 292", record.ResponseSize)
	}
	if record.Referer != "-" {
		t.Errorf("Referer = %q, want -", record.Referer)
	}
	if record.UserAgent != "facebookexternalhit/1.1" {
		t.Errorf("UserAgent = %q, want facebookexternalhit/1.1", record.UserAgent)
	}
	if record.SoftwareFamily != model.FamilyFacebookBot {
		t.Errorf("SoftwareFamily = %q, want %q", record.SoftwareFamily, model.FamilyFacebookBot)
	}
}

func TestParseCommonLine(t *testing.T) {
	p := NewParser()

	line := `199.72.81.55 - - [01/Jul/1995:00:00:01 -0400] "GET /history/apollo/ HTTP/1.0" 200 6245`
	record, err := p.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if record.Referer != model.Placeholder {
		t.Errorf("Referer = %q, want placeholder", record.Referer)
	}
	if record.UserAgent != model.Placeholder {
		t.Errorf("UserAgent = %q, want placeholder", record.UserAgent)
	}
	if record.SoftwareFamily != model.FamilyUnknown {
		t.Errorf("SoftwareFamily = %q, want %q", record.SoftwareFamily, model.FamilyUnknown)
	}
	if record.ResponseSize != "6245" {
		t.Errorf("ResponseSize = %q, want 6245", record.ResponseSize)
	}
}

func TestParseFailures(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name string
		line string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"garbage", "not a log line at all", ErrMalformed},
		{"missing request", `1.2.3.4 - - [01/Jul/1995:00:00:01 -0400] 200 6245`, ErrMalformed},
		{"bad timestamp", `1.2.3.4 - - [invalid-timestamp] "GET / HTTP/1.0" 200 10 "-" "-"`, ErrBadTimestamp},
		{"bad timestamp common", `1.2.3.4 - - [32/Jul/2025:99:00:00 -0700] "GET / HTTP/1.0" 200 10`, ErrBadTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := p.Parse(tt.line)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.line, err, tt.want)
			}
			if record != nil {
				t.Errorf("Parse(%q) record = %+v, want nil", tt.line, record)
			}
		})
	}
}

func TestParseSizePlaceholder(t *testing.T) {
	p := NewParser()

	line := `10.0.0.1 - - [31/Jul/2025:08:15:00 -0700] "HEAD / HTTP/1.1" 301 - "-" "curl/8.0"`
	record, err := p.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if record.ResponseSize != "-" {
		t.Errorf("ResponseSize = %q, want -", record.ResponseSize)
	}
}

func TestParseTrimsSurroundingWhitespace(t *testing.T) {
	p := NewParser()

	line := "  199.72.81.55 - - [01/Jul/1995:00:00:01 -0400] \"GET / HTTP/1.0\" 200 6245\n"
	if _, err := p.Parse(line); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestCombinedWinsOverCommon(t *testing.T) {
	// A combined line is also a valid prefix for the common shape; the richer
	// format is tried first so the trailing fields are never lost.
	p := NewParser()

	line := `1.2.3.4 - - [31/Jul/2025:12:00:00 +0000] "GET / HTTP/1.1" 200 99 "http://example.com/" "Mozilla/5.0 Chrome/120"`
	record, err := p.Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if record.Referer != "http://example.com/" {
		t.Errorf("Referer = %q, want http://example.com/", record.Referer)
	}
	if record.SoftwareFamily != model.FamilyChrome {
		t.Errorf("SoftwareFamily = %q, want Chrome", record.SoftwareFamily)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"with offset", "31/Jul/2025:17:03:16 -0700", time.Date(2025, time.July, 31, 17, 3, 16, 0, time.UTC), false},
		{"positive offset", "01/Jan/2024:00:00:00 +0530", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"no offset", "01/Jul/1995:12:30:45", time.Date(1995, time.July, 1, 12, 30, 45, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"not a timestamp", "invalid-timestamp", time.Time{}, true},
		{"iso layout", "2025-07-31T17:03:16Z", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrBadTimestamp) {
					t.Errorf("ParseTimestamp(%q) error = %v, want ErrBadTimestamp", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formats.yml")
	content := `formats:
  - name: bare
    pattern: '^(?P<addr>\S+) (?P<timestamp>\S+ \S+) "(?P<method>\S+) (?P<path>\S+) (?P<protocol>[^"]+)" (?P<status>\d+) (?P<size>\S+)$'
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write formats file: %v", err)
	}

	formats, err := LoadFormats(path)
	if err != nil {
		t.Fatalf("LoadFormats: %v", err)
	}
	if len(formats) != 1 {
		t.Fatalf("LoadFormats returned %d formats, want 1", len(formats))
	}

	p := NewParser(formats...)
	record, err := p.Parse(`1.2.3.4 31/Jul/2025:06:00:00 -0700 "GET /x HTTP/1.1" 200 12`)
	if err != nil {
		t.Fatalf("Parse with extra format: %v", err)
	}
	if record.UserAgent != model.Placeholder {
		t.Errorf("UserAgent = %q, want placeholder", record.UserAgent)
	}
	if record.OccurredAt.Hour() != 6 {
		t.Errorf("OccurredAt hour = %d, want 6", record.OccurredAt.Hour())
	}
}

func TestLoadFormatsErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "formats: ["},
		{"bad regexp", "formats:\n  - name: broken\n    pattern: '['\n"},
		{"missing groups", "formats:\n  - name: partial\n    pattern: '^(?P<addr>\\S+)$'\n"},
		{"empty name", "formats:\n  - pattern: '^(?P<addr>\\S+)$'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := LoadFormats(path); err == nil {
				t.Errorf("LoadFormats(%s) succeeded, want error", tt.name)
			}
		})
	}

	if _, err := LoadFormats(filepath.Join(dir, "does-not-exist.yml")); err == nil {
		t.Error("LoadFormats on missing file succeeded, want error")
	}
}
