package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 1, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "Today"},
		{"tomorrow", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), "Yesterday"},
		{"3 days future", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), "In 3d"},
		{"3 weeks future", time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), "In 3w"},
		{"3 days past", time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), "3d ago"},
		{"2 weeks past", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "2w ago"},
		{"3 months past", time.Date(2024, 10, 17, 0, 0, 0, 0, time.UTC), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDateCell(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	got := stripANSI(DateCell(time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "2025-01-14 (Yesterday)", got)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.50h", FormatHours(7.5))
	assert.Equal(t, "0.10h", FormatHours(0.1))
	assert.Equal(t, "24.00h", FormatHours(24))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestStatusIndicator(t *testing.T) {
	tests := []struct {
		status   domain.DayStatus
		contains string
	}{
		{domain.DayInsufficient, "INSUFFICIENT"},
		{domain.DaySufficient, "SUFFICIENT"},
		{domain.DayExcessive, "EXCESSIVE"},
		{domain.DayStatus("bogus"), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, StatusIndicator(tt.status), tt.contains)
		})
	}
}

func TestActivePill(t *testing.T) {
	assert.Contains(t, ActivePill(true), "Active")
	assert.Contains(t, ActivePill(false), "Inactive")
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestTable_RightAlign(t *testing.T) {
	out := stripANSI(Table{
		Headers:    []string{"ID", "HOURS"},
		Rows:       [][]string{{"1", "8.00h"}, {"22", "0.50h"}},
		RightAlign: map[int]bool{0: true},
	}.Render())
	assert.Contains(t, out, " 1  8.00h\n")
	assert.Contains(t, out, "22  0.50h\n")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 entry", Count(1, "entry", "entries"))
	assert.Equal(t, "0 entries", Count(0, "entry", "entries"))
	assert.Equal(t, "2 days", Count(2, "day", "days"))
}
