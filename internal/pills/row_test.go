package pills

import (
	"testing"

	"github.com/ppiankov/libris/internal/model"
)

type countingMeasurer struct {
	calls int
}

func (c *countingMeasurer) Width(label string) int {
	c.calls++
	return 10 * len(label)
}

func TestRow_RecomputesOnlyOnChange(t *testing.T) {
	m := &countingMeasurer{}
	row := NewRow(m, 100)

	pills := makePills(4) // "p0".."p3", 20 wide each
	first := row.Compute(pills)
	calls := m.calls

	second := row.Compute(makePills(4))
	if m.calls != calls {
		t.Errorf("Expected no measuring for an equal sequence, got %d extra calls", m.calls-calls)
	}
	if len(first.Visible) != len(second.Visible) {
		t.Errorf("Layouts differ for equal input: %d vs %d", len(first.Visible), len(second.Visible))
	}

	reordered := []model.Pill{pills[3], pills[0], pills[1], pills[2]}
	third := row.Compute(reordered)
	if len(third.Visible) == 0 || third.Visible[0] != pills[3] {
		t.Errorf("Expected a recompute after reordering, got %+v", third.Visible)
	}
}

func TestRow_WidthCacheReused(t *testing.T) {
	m := &countingMeasurer{}
	row := NewRow(m, 1000)

	row.Compute(makePills(3))
	calls := m.calls

	row.Compute(makePills(4))
	// Only the new pill and the new indicator label are measured
	if got := m.calls - calls; got != 2 {
		t.Errorf("Expected 2 new measurements, got %d", got)
	}
}

func TestRow_DoesNotKeepCallerSlice(t *testing.T) {
	row := NewRow(&countingMeasurer{}, 1000)
	pills := makePills(2)
	row.Compute(pills)

	pills[0].Title = "changed"
	layout := row.Compute(pills)
	if layout.Visible[0].Title != "changed" {
		t.Error("Expected mutation of the caller slice to trigger a recompute")
	}
}

func TestRow_DefaultMaxWidth(t *testing.T) {
	if got := NewRow(&countingMeasurer{}, 0).MaxWidth(); got != DefaultMaxWidth {
		t.Errorf("MaxWidth() = %d, want %d", got, DefaultMaxWidth)
	}
}
