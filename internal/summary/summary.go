// Package summary builds daily activity digests over the conversation
// log, for the scheduled admin report.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"goldpan/internal/sheetlog"
)

// DailyStats aggregates one day of log records.
type DailyStats struct {
	Date         string
	TotalRecords int
	UserRecords  int
	AIRecords    int
	ByTag        map[string]int
}

// Analyze filters records down to one date (format 2006-01-02, in the
// log's fixed UTC+8 wall clock) and counts them by role and tag.
func Analyze(records []sheetlog.Record, date string) *DailyStats {
	stats := &DailyStats{
		Date:  date,
		ByTag: make(map[string]int),
	}
	for _, rec := range records {
		if !strings.HasPrefix(rec.Timestamp, date) {
			continue
		}
		stats.TotalRecords++
		switch rec.Role {
		case sheetlog.RoleUser:
			stats.UserRecords++
		case sheetlog.RoleAI:
			stats.AIRecords++
		}
		if rec.Tag != "" {
			stats.ByTag[rec.Tag]++
		}
	}
	return stats
}

// Format renders the digest as a plain-text report.
func (s *DailyStats) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s 對話記錄摘要\n", s.Date)
	fmt.Fprintf(&b, "總筆數: %d(使用者 %d / AI %d)\n", s.TotalRecords, s.UserRecords, s.AIRecords)
	if len(s.ByTag) == 0 {
		b.WriteString("今日無記錄")
		return b.String()
	}

	tags := make([]string, 0, len(s.ByTag))
	for tag := range s.ByTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(&b, "  %s: %d\n", tag, s.ByTag[tag])
	}
	return strings.TrimRight(b.String(), "\n")
}
