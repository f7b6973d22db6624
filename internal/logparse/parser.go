package logparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loglens/loglens/internal/model"
)

// TimestampLayout is the date/time token inside the bracketed timestamp.
// The trailing numeric offset token is discarded before parsing.
const TimestampLayout = "02/Jan/2006:15:04:05"

var (
	// ErrMalformed reports a line that matches no known format.
	ErrMalformed = errors.New("logparse: line matches no known format")
	// ErrBadTimestamp reports a matched line whose timestamp token is
	// unparsable. There is no fallback to another format.
	ErrBadTimestamp = errors.New("logparse: unparsable timestamp")
)

// Format is one recognizable line shape. The pattern must capture the named
// groups addr, timestamp, method, path, protocol, status and size; referer
// and agent are optional and default to the "-" placeholder when the pattern
// omits them.
type Format struct {
	Name    string
	Pattern *regexp.Regexp
}

// builtinFormats are tried in order; the richer shape comes first so a
// combined-format line is never mistaken for its common-format prefix.
var builtinFormats = []Format{
	{
		Name: "combined",
		Pattern: regexp.MustCompile(`^(?P<addr>\S+) - - \[(?P<timestamp>[^\]]+)\] ` +
			`"(?P<method>\S+) (?P<path>\S+) (?P<protocol>[^"]+)" ` +
			`(?P<status>\d+) (?P<size>\S+) "(?P<referer>[^"]*)" "(?P<agent>[^"]*)"`),
	},
	{
		Name: "common",
		Pattern: regexp.MustCompile(`^(?P<addr>\S+) - - \[(?P<timestamp>[^\]]+)\] ` +
			`"(?P<method>\S+) (?P<path>\S+) (?P<protocol>[^"]+)" ` +
			`(?P<status>\d+) (?P<size>\S+)\s*$`),
	},
}

// requiredGroups are the capture groups every format must provide.
var requiredGroups = []string{"addr", "timestamp", "method", "path", "protocol", "status", "size"}

// Parser recognizes access-log lines against an ordered list of formats.
// Adding a format variant is appending to the list; the built-in formats
// always stay first.
type Parser struct {
	formats []Format
}

// NewParser creates a parser over the built-in formats plus any extras.
func NewParser(extra ...Format) *Parser {
	formats := make([]Format, 0, len(builtinFormats)+len(extra))
	formats = append(formats, builtinFormats...)
	formats = append(formats, extra...)
	return &Parser{formats: formats}
}

// Parse recognizes one line and extracts a record from it. The first format
// whose shape matches wins. A malformed line or an unparsable timestamp fails
// the whole record; no partially constructed record is ever returned.
func (p *Parser) Parse(line string) (*model.LogRecord, error) {
	line = strings.TrimSpace(line)
	for _, f := range p.formats {
		m := f.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return buildRecord(f, m)
	}
	return nil, ErrMalformed
}

func buildRecord(f Format, match []string) (*model.LogRecord, error) {
	fields := make(map[string]string)
	for i, name := range f.Pattern.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		fields[name] = match[i]
	}

	occurredAt, err := ParseTimestamp(fields["timestamp"])
	if err != nil {
		return nil, err
	}

	status, err := strconv.Atoi(fields["status"])
	if err != nil {
		// Only reachable through a custom format whose status group
		// captures non-digits.
		return nil, ErrMalformed
	}

	referer, ok := fields["referer"]
	if !ok {
		referer = model.Placeholder
	}
	agent, ok := fields["agent"]
	if !ok {
		agent = model.Placeholder
	}

	return &model.LogRecord{
		ClientAddress:   fields["addr"],
		RawTimestamp:    fields["timestamp"],
		OccurredAt:      occurredAt,
		Method:          fields["method"],
		Path:            fields["path"],
		ProtocolVersion: fields["protocol"],
		StatusCode:      status,
		ResponseSize:    fields["size"],
		Referer:         referer,
		UserAgent:       agent,
		SoftwareFamily:  Classify(agent),
	}, nil
}

// ParseTimestamp parses the bracketed timestamp value, for example
// "31/Jul/2025:17:03:16 -0700". Only the date/time token is parsed; the
// offset after the space is dropped.
func ParseTimestamp(raw string) (time.Time, error) {
	token, _, _ := strings.Cut(raw, " ")
	t, err := time.Parse(TimestampLayout, token)
	if err != nil {
		return time.Time{}, ErrBadTimestamp
	}
	return t, nil
}
