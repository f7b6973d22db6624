package ingest

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loglens/loglens/internal/logparse"
	"github.com/loglens/loglens/internal/model"
)

// nameHints are the filename substrings that mark a candidate log file.
var nameHints = []string{"log", "rental", "access"}

const (
	scanInitialBuffer = 64 * 1024
	scanMaxBuffer     = 1024 * 1024
)

// Ingestor reads a directory of access-log files into memory. Per-line and
// per-file failures are recovered here; callers only ever see records.
type Ingestor struct {
	parser *logparse.Parser
}

// NewIngestor creates an ingestor. A nil parser means the built-in formats.
func NewIngestor(parser *logparse.Parser) *Ingestor {
	if parser == nil {
		parser = logparse.NewParser()
	}
	return &Ingestor{parser: parser}
}

// FindCandidates lists the regular files directly inside dir whose lowercased
// name contains one of the candidate hints, sorted by path for deterministic
// ingest order. A missing or unreadable directory yields no candidates.
func FindCandidates(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ingest: listing %s: %v", dir, err)
		}
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := strings.ToLower(entry.Name())
		for _, hint := range nameHints {
			if strings.Contains(name, hint) {
				files = append(files, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	sort.Strings(files)
	return files
}

// Ingest parses every candidate file under dir in discovery order and returns
// the records in file order, then line order. When maxRecords is positive,
// reading stops mid-file as soon as the cap is reached and later candidates
// are not opened. A file that cannot be read contributes the records parsed
// before the error and ingestion continues with the next candidate.
func (ing *Ingestor) Ingest(dir string, maxRecords int) []*model.LogRecord {
	files := FindCandidates(dir)
	log.Printf("ingest: found %d candidate files in %s", len(files), dir)

	var records []*model.LogRecord
	for _, path := range files {
		limit := 0
		if maxRecords > 0 {
			limit = maxRecords - len(records)
			if limit <= 0 {
				log.Printf("ingest: reached max records limit (%d), stopping", maxRecords)
				break
			}
		}

		fileRecords, err := ing.ingestFile(path, limit)
		if err != nil {
			log.Printf("ingest: reading %s: %v", path, err)
		}
		records = append(records, fileRecords...)
		log.Printf("ingest: parsed %d records from %s", len(fileRecords), filepath.Base(path))
	}

	log.Printf("ingest: loaded %d records total", len(records))
	return records
}

// ingestFile parses one file, stopping after limit records when limit is
// positive. Lines that fail to parse are counted and skipped; the scanner
// passes undecodable bytes through rather than failing the file.
func (ing *Ingestor) ingestFile(path string, limit int) ([]*model.LogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanInitialBuffer), scanMaxBuffer)

	name := filepath.Base(path)
	var records []*model.LogRecord
	var skipped int

	for scanner.Scan() {
		if limit > 0 && len(records) >= limit {
			break
		}
		record, err := ing.parser.Parse(scanner.Text())
		if err != nil {
			skipped++
			continue
		}
		record.SourceFile = name
		records = append(records, record)
	}

	if skipped > 0 {
		log.Printf("ingest: skipped %d unparsable lines in %s", skipped, name)
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}
