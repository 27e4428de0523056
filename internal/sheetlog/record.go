package sheetlog

import "time"

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

const (
	// MaxContentLen bounds a single cell, in characters; oversized
	// content is cut and marked, irreversibly.
	MaxContentLen    = 50000
	TruncationMarker = "\n...[內容過長已截斷]"

	// TimestampLayout sorts lexically in chronological order.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Record timestamps use a fixed UTC+8 wall clock regardless of host zone.
var logLocation = time.FixedZone("UTC+8", 8*60*60)

// LogLocation returns the fixed zone record timestamps are formatted in,
// for callers that need to agree on what "today" means.
func LogLocation() *time.Location { return logLocation }

// Record is one immutable log entry. Rows are append-only on the backend;
// nothing updates or deletes them.
type Record struct {
	Timestamp string
	Role      string
	Tag       string
	Content   string
}

var headerRow = []string{"timestamp", "role", "tag", "content"}
