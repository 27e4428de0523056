package sheetlog

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

const defaultCacheTTL = 5 * time.Second

// Reader fetches the whole log for display. Results are cached in a
// single cell for a short window to absorb request bursts; a write
// immediately followed by a read may not be visible until the window
// elapses. The read path never fails: every error degrades to an empty
// sequence.
type Reader struct {
	connector *Connector
	ttl       time.Duration
	now       func() time.Time

	mu     sync.Mutex
	cached []Record
	expiry time.Time
}

func NewReader(connector *Connector) *Reader {
	return &Reader{
		connector: connector,
		ttl:       defaultCacheTTL,
		now:       time.Now,
	}
}

// FetchAll returns all records newest-first. Calls inside the cache
// window return the same slice; callers must not mutate it.
func (r *Reader) FetchAll(ctx context.Context) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached != nil && r.now().Before(r.expiry) {
		return r.cached
	}
	records := r.fetch(ctx)
	r.cached = records
	r.expiry = r.now().Add(r.ttl)
	return records
}

func (r *Reader) fetch(ctx context.Context) []Record {
	store, ok := r.connector.Resolve(ctx)
	if !ok {
		return []Record{}
	}
	rows, err := store.ReadAllRows(ctx)
	if err != nil {
		log.Printf("⚠️ log read failed, showing empty history: %v", err)
		return []Record{}
	}
	if len(rows) < 2 {
		// Header only, or nothing at all.
		return []Record{}
	}

	headers := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, zipRecord(headers, row))
	}

	// Stable ascending sort, then a full reverse: descending by
	// timestamp with equal timestamps in reverse append order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp < records[j].Timestamp
	})
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records
}

// zipRecord pairs a data row against the header row positionally. Ragged
// rows are tolerated: missing cells stay empty, extra cells are dropped.
func zipRecord(headers, row []string) Record {
	var rec Record
	for i, h := range headers {
		v := ""
		if i < len(row) {
			v = row[i]
		}
		switch h {
		case "timestamp":
			rec.Timestamp = v
		case "role":
			rec.Role = v
		case "tag":
			rec.Tag = v
		case "content":
			rec.Content = v
		}
	}
	return rec
}
