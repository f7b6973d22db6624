package snapshot

import (
	"sync"
	"testing"

	"github.com/loglens/loglens/internal/model"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := NewStore(func() []*model.LogRecord { return nil })

	snap := s.Current()
	if snap == nil {
		t.Fatal("Current returned nil")
	}
	if len(snap.Records) != 0 {
		t.Errorf("initial snapshot has %d records, want 0", len(snap.Records))
	}
}

func TestRefreshReplacesWholesale(t *testing.T) {
	batch := []*model.LogRecord{{ClientAddress: "1.1.1.1"}}
	s := NewStore(func() []*model.LogRecord { return batch })

	if n := s.Refresh(); n != 1 {
		t.Errorf("Refresh = %d, want 1", n)
	}
	first := s.Current()
	if len(first.Records) != 1 {
		t.Fatalf("snapshot has %d records, want 1", len(first.Records))
	}
	if first.LoadedAt.IsZero() {
		t.Error("LoadedAt not set on refresh")
	}

	batch = []*model.LogRecord{{ClientAddress: "2.2.2.2"}, {ClientAddress: "3.3.3.3"}}
	if n := s.Refresh(); n != 2 {
		t.Errorf("second Refresh = %d, want 2", n)
	}
	if len(first.Records) != 1 {
		t.Error("old snapshot mutated by refresh")
	}
	if len(s.Current().Records) != 2 {
		t.Errorf("snapshot has %d records after refresh, want 2", len(s.Current().Records))
	}
}

func TestConcurrentReadersDuringRefresh(t *testing.T) {
	s := NewStore(func() []*model.LogRecord {
		return []*model.LogRecord{{ClientAddress: "1.1.1.1"}, {ClientAddress: "2.2.2.2"}}
	})
	s.Refresh()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := s.Current()
				// Readers must always see a complete set: exactly 0 or 2 here.
				if len(snap.Records) != 0 && len(snap.Records) != 2 {
					t.Errorf("observed partial snapshot of %d records", len(snap.Records))
					return
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		s.Refresh()
	}
	wg.Wait()
}
