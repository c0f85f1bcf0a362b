package store

import (
	"sync"
	"time"

	"gorm.io/gorm"
	"neemba.com/sepkpi/kpi"
)

// Snapshot caches the latest uploaded datasets in memory so analytics reads
// never hit the database on the hot path. The whole value is swapped on
// upload; readers always see a consistent set.
type Snapshot struct {
	mu       sync.RWMutex
	entries  []kpi.TimesheetEntry
	invoices []kpi.Invoice
	loadedAt time.Time
}

// SetTimesheet replaces the cached timesheet dataset.
func (s *Snapshot) SetTimesheet(entries []kpi.TimesheetEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.loadedAt = time.Now()
}

// SetInvoices replaces the cached lead-time dataset.
func (s *Snapshot) SetInvoices(invoices []kpi.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = invoices
	s.loadedAt = time.Now()
}

// Timesheet returns the cached entries. The slice is shared, callers must
// not mutate it.
func (s *Snapshot) Timesheet() []kpi.TimesheetEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}

// Invoices returns the cached lead-time set.
func (s *Snapshot) Invoices() []kpi.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invoices
}

// LoadedAt reports when the cache last changed, zero when never warmed.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Warm fills the cache from the database at startup so the dashboards work
// across restarts without a fresh upload.
func (s *Snapshot) Warm(db *gorm.DB) error {
	entries, err := LoadPointages(db)
	if err != nil {
		return err
	}
	invoices, err := LoadInvoices(db)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.invoices = invoices
	s.loadedAt = time.Now()
	return nil
}
