// Package pills decides how many tag pills fit in a fixed-width row and
// tracks the "+N more" disclosure that reveals the rest.
package pills

import (
	"fmt"

	"github.com/ppiankov/libris/internal/model"
)

// DefaultMaxWidth is the pill row width budget in layout units
const DefaultMaxWidth = 260

// Layout is the partition of a pill sequence into a visible prefix and a
// hidden suffix
type Layout struct {
	Visible []model.Pill
	Hidden  []model.Pill
}

// HiddenCount returns the number of pills behind the overflow indicator
func (l Layout) HiddenCount() int {
	return len(l.Hidden)
}

// HasOverflow reports whether an overflow indicator is shown
func (l Layout) HasOverflow() bool {
	return len(l.Hidden) > 0
}

// IndicatorLabel returns the overflow indicator text
func (l Layout) IndicatorLabel() string {
	return IndicatorLabel(len(l.Hidden))
}

// IndicatorLabel formats the overflow indicator for n hidden pills
func IndicatorLabel(n int) string {
	return fmt.Sprintf("+%d more", n)
}

// Partition returns how many leading pills fit in maxWidth.
//
// Pills are scanned in order with a running total. Every pill except the
// last must also leave room for the overflow indicator. The scan stops at
// the first pill whose budget is strictly greater than maxWidth. The first
// pill is always taken, so a lone oversized pill is still shown.
func Partition(widths []int, indicatorWidth, maxWidth int) int {
	total, count := 0, 0
	for i, w := range widths {
		reserve := indicatorWidth
		if i == len(widths)-1 {
			reserve = 0
		}

		if i > 0 && total+w+reserve > maxWidth {
			break
		}

		total += w
		count++
	}
	return count
}

// Compute measures pills and partitions them for a row of maxWidth
func Compute(pills []model.Pill, m Measurer, maxWidth int) Layout {
	widths := make([]int, len(pills))
	for i, p := range pills {
		widths[i] = m.Width(p.Title)
	}
	return split(pills, Partition(widths, indicatorWidth(m, len(pills)), maxWidth))
}

// indicatorWidth measures the widest indicator a row of n pills can show.
// The first pill is always visible, so at most n-1 pills are hidden.
func indicatorWidth(m Measurer, n int) int {
	if n < 2 {
		return 0
	}
	return m.Width(IndicatorLabel(n - 1))
}

func split(pills []model.Pill, visible int) Layout {
	if len(pills) == 0 {
		return Layout{}
	}
	return Layout{
		Visible: pills[:visible:visible],
		Hidden:  pills[visible:],
	}
}
