package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timelog/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	targetMark  = "│"
)

// RenderDayBar renders a day's total against the daily cap, like
// [███│░░░░░░░░] 8.00/24h. The fill takes the day's status color; while
// the day is short of the target a marker shows where the target lies.
func RenderDayBar(total domain.CentiHours, width int) string {
	if width < 4 {
		width = 4
	}
	clamped := min(max(total, 0), domain.DailyCap)

	filled := int(int64(clamped) * int64(width) / int64(domain.DailyCap))
	mark := int(int64(domain.DailyTarget) * int64(width) / int64(domain.DailyCap))

	var rest strings.Builder
	for i := filled; i < width; i++ {
		if i == mark && total < domain.DailyTarget {
			rest.WriteString(targetMark)
			continue
		}
		rest.WriteString(emptyBlock)
	}

	fill := StatusStyle(domain.ClassifyDay(total)).Render(strings.Repeat(filledBlock, filled))
	return fmt.Sprintf("[%s%s] %s/%.0fh", fill, StyleDim.Render(rest.String()), total, domain.DailyCap.Hours())
}
